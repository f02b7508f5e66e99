package scan

import (
	"strconv"
	"time"

	"student-activity-system/internal/model"
	"student-activity-system/internal/module/qrtoken"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// ScanRequest 扫码请求体，签到和签退共用
type ScanRequest struct {
	QRData string `json:"qr_data" binding:"required"` // 二维码内容
}

// CheckIn 签到入口：registered|<无记录> → checked_in
// 闸门顺序：令牌解码 → 活动状态/日期 → 学生状态 → 重复检查 → 资格 → 容量 → 原子写入
func CheckIn(c *gin.Context) {
	activityID, ok := parseActivityID(c)
	if !ok {
		return
	}

	var req ScanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		scanFail(c, newScanError(CodeValidationError, "缺少活动或二维码数据"))
		return
	}

	now := time.Now()

	// 解码令牌，任何查库之前先行判定
	claim, err := qrtoken.Decode(req.QRData, now)
	if err != nil {
		if errors.Is(err, qrtoken.ErrExpired) {
			scanFail(c, newScanError(CodeQRExpired, "二维码已过期，请刷新后重试"))
			return
		}
		scanFail(c, newScanError(CodeQRInvalid, "二维码无效或已损坏"))
		return
	}

	db := ledgerDB()

	// 活动必须存在且处于进行中
	var act model.Activity
	if err := db.First(&act, "id = ?", activityID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			scanFail(c, newScanError(CodeActivityNotFound, "指定的活动不存在"))
			return
		}
		failInternal(c, "查询活动失败", err)
		return
	}
	if scanErr := activityStatusError(&act); scanErr != nil {
		scanFail(c, scanErr)
		return
	}
	if scanErr := activityWindowError(&act, dateInt(now)); scanErr != nil {
		scanFail(c, scanErr)
		return
	}

	// 学生必须存在且账号可用
	var u model.User
	if err := db.First(&u, "student_id = ?", claim.UID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			scanFail(c, newScanError(CodeStudentNotFound, "系统中不存在该学生"))
			return
		}
		failInternal(c, "查询学生失败", err)
		return
	}
	if scanErr := userStatusError(&u); scanErr != nil {
		scanFail(c, scanErr)
		return
	}

	// 资格闸门
	if scanErr, err := checkEligibility(db, &act, &u); scanErr != nil || err != nil {
		if err != nil {
			failInternal(c, "资格判定失败", err)
			return
		}
		scanFail(c, scanErr)
		return
	}

	// 先做一次普通读取以便在容量判定前报告重复（重复签到不占名额）
	if existing, err := loadParticipation(db, act.ID, u.StudentID); err != nil {
		failInternal(c, "查询参与记录失败", err)
		return
	} else if existing != nil {
		if scanErr := duplicateCheckInError(existing); scanErr != nil {
			reportDuplicate(c, act.ID, u.StudentID, scanErr)
			return
		}
	}

	// 容量闸门：计数在写事务之外，是有意的软限制
	count, err := countCheckedIn(db, act.ID)
	if err != nil {
		failInternal(c, "统计签到人数失败", err)
		return
	}
	if !hasCapacity(&act, count) {
		scanFail(c, newScanError(CodeMaxParticipantsReached, "活动人数已满，无法签到").
			WithDetails(gin.H{
				"max_participants":     act.MaxParticipants,
				"current_participants": count,
			}))
		return
	}

	// 原子写入，事务内复核重复状态
	p, created, scanErr, err := applyCheckIn(db, act.ID, u.StudentID, now)
	if err != nil {
		failInternal(c, "签到写入失败", err)
		return
	}
	if scanErr != nil {
		reportDuplicate(c, act.ID, u.StudentID, scanErr)
		return
	}

	clearDuplicate(c.Request.Context(), act.ID, u.StudentID)

	log.Info("签到成功",
		"activity_id", act.ID,
		"student_id", u.StudentID,
		"new_participation", created)

	scanOK(c, CodeCheckInSuccess, "签到成功", gin.H{
		"user_name":            u.DisplayName(),
		"student_id":           u.StudentID,
		"participation_status": p.Status,
		"checked_in_at":        p.CheckedInAt.Format(time.RFC3339),
		"activity_title":       act.Title,
		"is_new_participation": created,
	})
}

// reportDuplicate 上报重复扫码：无害重复累计次数，达到阈值升级提示
// 流程违规（已签退/已结算）不参与累计，直接返回
func reportDuplicate(c *gin.Context, activityID uint, studentID string, scanErr *ScanError) {
	if scanErr.Category() == CategoryAlreadyDone &&
		bumpDuplicate(c.Request.Context(), activityID, studentID) {
		scanFail(c, newScanError(CodeRepeatedDuplicate, "该学生已多次重复扫码，请确认操作").
			WithDetails(scanErr.Details))
		return
	}
	scanFail(c, scanErr)
}

// parseActivityID 解析路径中的活动ID
func parseActivityID(c *gin.Context) (uint, bool) {
	idStr := c.Param("activity_id")
	id, err := strconv.ParseUint(idStr, 10, 64)
	if err != nil || id == 0 {
		scanFail(c, newScanError(CodeValidationError, "活动ID无效"))
		return 0, false
	}
	return uint(id), true
}

// failInternal 内部错误统一处理：细节只进日志，不回给操作端
func failInternal(c *gin.Context, msg string, err error) {
	log.Error(msg, "error", err)
	scanFail(c, newScanError(CodeInternalError, "系统内部错误，请稍后重试"))
}
