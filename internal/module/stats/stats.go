package stats

import (
	"fmt"
	"time"

	"student-activity-system/internal/global/database"
	"student-activity-system/internal/global/response"
	"student-activity-system/internal/model"
	"student-activity-system/tools"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"
)

// GetActivitySummary 按状态统计一场活动的参与人数
func GetActivitySummary(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.Fail(c, response.ErrInvalidRequest.WithTips("活动ID不能为空"))
		return
	}

	var activity model.Activity
	if err := database.DB.First(&activity, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			response.Fail(c, response.ErrNotFound.WithTips("活动不存在"))
			return
		}
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}

	type statusCount struct {
		Status string `json:"status"`
		Count  int64  `json:"count"`
	}
	var counts []statusCount
	if err := database.DB.Model(&model.Participation{}).
		Select("status, count(*) as count").
		Where("activity_id = ?", activity.ID).
		Group("status").
		Scan(&counts).Error; err != nil {
		log.Error("统计参与人数失败", "error", err, "activity_id", activity.ID)
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}

	summary := gin.H{
		"registered":  int64(0),
		"checked_in":  int64(0),
		"checked_out": int64(0),
		"completed":   int64(0),
	}
	var total int64
	for _, sc := range counts {
		summary[sc.Status] = sc.Count
		total += sc.Count
	}

	response.Success(c, gin.H{
		"activity_id":      activity.ID,
		"activity_title":   activity.Title,
		"max_participants": activity.MaxParticipants,
		"total":            total,
		"by_status":        summary,
	})
}

// rosterRow 导出名单的行结构，列名取自 excel 标签
type rosterRow struct {
	StudentID    string `excel:"学号"`
	Name         string `excel:"姓名"`
	Status       string `excel:"参与状态"`
	CheckedInAt  string `excel:"签到时间"`
	CheckedOutAt string `excel:"签退时间"`
	Notes        string `excel:"备注"`
}

// ExportActivityRoster 导出一场活动的签到名单为 xlsx
func ExportActivityRoster(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.Fail(c, response.ErrInvalidRequest.WithTips("活动ID不能为空"))
		return
	}

	var activity model.Activity
	if err := database.DB.First(&activity, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			response.Fail(c, response.ErrNotFound.WithTips("活动不存在"))
			return
		}
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}

	var participations []model.Participation
	if err := database.DB.Where("activity_id = ?", activity.ID).
		Order("checked_in_at").
		Find(&participations).Error; err != nil {
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}

	rows := make([]rosterRow, 0, len(participations))
	for _, p := range participations {
		var u model.User
		name := ""
		if err := database.DB.First(&u, "student_id = ?", p.UserID).Error; err == nil {
			name = u.DisplayName()
		}
		rows = append(rows, rosterRow{
			StudentID:    p.UserID,
			Name:         name,
			Status:       p.Status,
			CheckedInAt:  formatTimestamp(p.CheckedInAt),
			CheckedOutAt: formatTimestamp(p.CheckedOutAt),
			Notes:        p.Notes,
		})
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := tools.ExportToExcel(f, "签到名单", rows); err != nil {
		log.Error("生成名单工作表失败", "error", err, "activity_id", activity.ID)
		response.Fail(c, response.ErrServerInternal.WithOrigin(err))
		return
	}
	f.DeleteSheet("Sheet1")

	fileName := fmt.Sprintf("%s-签到名单.xlsx", activity.Title)
	tools.SendAttachmentHeader(c, fileName, tools.ExcelContentType)
	if err := f.Write(c.Writer); err != nil {
		log.Error("写出名单文件失败", "error", err, "activity_id", activity.ID)
	}
}

func formatTimestamp(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format("2006-01-02 15:04:05")
}
