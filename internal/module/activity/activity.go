package activity

import (
	"time"

	"student-activity-system/internal/global/database"
	"student-activity-system/internal/global/jwt"
	"student-activity-system/internal/global/response"
	"student-activity-system/internal/model"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// ActivityCreateReq 定义创建活动请求的结构体
type ActivityCreateReq struct {
	Title           string `json:"title" binding:"required"`      // 活动名称
	Description     string `json:"description"`                   // 活动描述
	Location        string `json:"location"`                      // 活动地点
	Level           string `json:"level"`                         // 活动级别 faculty/university
	EligibleOrgs    []uint `json:"eligible_orgs"`                 // 可参与组织ID列表
	StartDate       int64  `json:"start_date" binding:"required"` // 开始日期 yyyymmdd
	EndDate         int64  `json:"end_date" binding:"required"`   // 结束日期 yyyymmdd
	StartTime       string `json:"start_time"`                    // 当日开始时刻 HH:MM
	EndTime         string `json:"end_time"`                      // 当日结束时刻 HH:MM
	Hours           uint   `json:"hours"`                         // 活动学时
	MaxParticipants uint   `json:"max_participants"`              // 人数上限，0表示不限制
}

// ActivityUpdateReq 定义更新活动请求的结构体，使用指针类型支持部分更新
type ActivityUpdateReq struct {
	Title           *string `json:"title"`            // 活动名称，可选
	Description     *string `json:"description"`      // 活动描述，可选
	Location        *string `json:"location"`         // 活动地点，可选
	Level           *string `json:"level"`            // 活动级别，可选
	EligibleOrgs    *[]uint `json:"eligible_orgs"`    // 可参与组织ID列表，可选
	StartDate       *int64  `json:"start_date"`       // 开始日期，可选
	EndDate         *int64  `json:"end_date"`         // 结束日期，可选
	StartTime       *string `json:"start_time"`       // 当日开始时刻，可选
	EndTime         *string `json:"end_time"`         // 当日结束时刻，可选
	Hours           *uint   `json:"hours"`            // 活动学时，可选
	MaxParticipants *uint   `json:"max_participants"` // 人数上限，可选
}

// CreateActivity 处理创建活动请求
func CreateActivity(c *gin.Context) {
	// 获取认证信息
	userPayload, exists := jwt.GetUserPayload(c)
	if !exists {
		response.Fail(c, response.ErrUnauthorized)
		return
	}
	studentID := userPayload.StudentID

	// 定义请求结构体并绑定 JSON 数据
	var req ActivityCreateReq
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Error("绑定创建活动请求失败", "error", err)
		response.Fail(c, response.ErrInvalidRequest.WithOrigin(err))
		return
	}

	if req.StartDate > req.EndDate {
		response.Fail(c, response.ErrInvalidRequest.WithTips("开始日期不能晚于结束日期"))
		return
	}

	level := req.Level
	if level == "" {
		level = model.ActivityLevelFaculty
	}
	if level != model.ActivityLevelFaculty && level != model.ActivityLevelUniversity {
		response.Fail(c, response.ErrInvalidRequest.WithTips("活动级别无效"))
		return
	}

	var existing model.Activity
	// 查询同名同日期的活动是否已存在
	err := database.DB.Where("title = ? AND start_date = ?", req.Title, req.StartDate).First(&existing).Error
	if err == nil {
		log.Warn("活动已存在", "title", req.Title, "start_date", req.StartDate)
		response.Fail(c, response.ErrAlreadyExists.WithTips("活动已存在"))
		return
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		log.Error("数据库查询失败", "error", err, "title", req.Title)
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}

	activity := model.Activity{
		Title:           req.Title,
		Description:     req.Description,
		Location:        req.Location,
		OwnerID:         studentID,
		Status:          model.ActivityStatusDraft,
		Level:           level,
		EligibleOrgs:    req.EligibleOrgs,
		StartDate:       req.StartDate,
		EndDate:         req.EndDate,
		StartTime:       req.StartTime,
		EndTime:         req.EndTime,
		Hours:           req.Hours,
		MaxParticipants: req.MaxParticipants,
	}

	if err := database.DB.Create(&activity).Error; err != nil {
		log.Error("创建活动失败", "error", err, "title", req.Title)
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}

	log.Info("活动创建成功",
		"title", req.Title,
		"owner_id", studentID,
	)

	response.Success(c, gin.H{
		"activity_id": activity.ID,
	})
}

// ListActivitiesReq 定义获取活动列表的查询参数结构体
type ListActivitiesReq struct {
	OwnerID  string `form:"owner_id" json:"owner_id"`   // 创建人学号筛选
	Status   string `form:"status" json:"status"`       // 活动状态筛选
	Level    string `form:"level" json:"level"`         // 活动级别筛选
	Page     int    `form:"page" json:"page"`           // 页码，默认为1
	PageSize int    `form:"page_size" json:"page_size"` // 每页大小，默认为10
	Title    string `form:"title" json:"title"`         // 活动名称模糊查询
}

// ListActivities 获取活动列表（支持查询参数）
func ListActivities(c *gin.Context) {
	// 绑定查询参数到结构体
	var req ListActivitiesReq
	if err := c.ShouldBindQuery(&req); err != nil {
		log.Error("绑定查询参数失败", "error", err)
		response.Fail(c, response.ErrInvalidRequest.WithOrigin(err))
		return
	}

	// 设置默认值
	if req.Page <= 0 {
		req.Page = 1
	}
	if req.PageSize <= 0 {
		req.PageSize = 10
	}

	// 构建查询条件
	query := database.DB.Model(&model.Activity{})

	if req.OwnerID != "" {
		query = query.Where("owner_id = ?", req.OwnerID)
	}
	if req.Status != "" {
		query = query.Where("status = ?", req.Status)
	}
	if req.Level != "" {
		query = query.Where("level = ?", req.Level)
	}
	if req.Title != "" {
		query = query.Where("title LIKE ?", "%"+req.Title+"%")
	}

	// 计算总数
	var total int64
	if err := query.Count(&total).Error; err != nil {
		log.Error("获取活动总数失败", "error", err)
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}

	var activities []model.Activity
	offset := (req.Page - 1) * req.PageSize
	if err := query.Offset(offset).Limit(req.PageSize).Find(&activities).Error; err != nil {
		log.Error("获取活动列表失败", "error", err)
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}

	result := map[string]any{
		"activities":  activities,
		"total":       total,
		"page":        req.Page,
		"page_size":   req.PageSize,
		"total_pages": (total + int64(req.PageSize) - 1) / int64(req.PageSize),
	}

	response.Success(c, result)
}

// GetActivity 获取活动详情
func GetActivity(c *gin.Context) {
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
		log.Error("查询活动失败", "error", err, "id", id)
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}

	response.Success(c, activity)
}

// UpdateActivity 处理更新活动请求
func UpdateActivity(c *gin.Context) {
	userPayload, exists := jwt.GetUserPayload(c)
	if !exists {
		response.Fail(c, response.ErrUnauthorized)
		return
	}
	studentID := userPayload.StudentID

	id := c.Param("id")
	if id == "" {
		response.Fail(c, response.ErrInvalidRequest.WithTips("活动ID不能为空"))
		return
	}

	var req ActivityUpdateReq
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Error("绑定更新活动请求失败", "error", err, "id", id)
		response.Fail(c, response.ErrInvalidRequest.WithOrigin(err))
		return
	}

	// 查询活动是否存在
	var activity model.Activity
	if err := database.DB.First(&activity, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			log.Warn("活动不存在", "id", id)
			response.Fail(c, response.ErrNotFound.WithTips("活动不存在"))
			return
		}
		log.Error("查询活动失败", "error", err, "id", id)
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}

	// 权限检查
	if activity.OwnerID != studentID {
		log.Warn("无权限更新活动", "id", id, "owner_id", activity.OwnerID, "student_id", studentID)
		response.Fail(c, response.ErrForbidden.WithTips("无权限更新该活动"))
		return
	}

	if req.Title != nil {
		activity.Title = *req.Title
	}
	if req.Description != nil {
		activity.Description = *req.Description
	}
	if req.Location != nil {
		activity.Location = *req.Location
	}
	if req.Level != nil {
		activity.Level = *req.Level
	}
	if req.EligibleOrgs != nil {
		activity.EligibleOrgs = *req.EligibleOrgs
	}
	if req.StartDate != nil {
		activity.StartDate = *req.StartDate
	}
	if req.EndDate != nil {
		activity.EndDate = *req.EndDate
	}
	if req.StartTime != nil {
		activity.StartTime = *req.StartTime
	}
	if req.EndTime != nil {
		activity.EndTime = *req.EndTime
	}
	if req.Hours != nil {
		activity.Hours = *req.Hours
	}
	if req.MaxParticipants != nil {
		activity.MaxParticipants = *req.MaxParticipants
	}

	if err := database.DB.Save(&activity).Error; err != nil {
		log.Error("更新活动失败", "error", err, "id", id)
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}

	response.Success(c, activity)
}

// StatusUpdateReq 活动状态流转请求
type StatusUpdateReq struct {
	Status string `json:"status" binding:"required"` // 目标状态
}

// allowedTransitions 活动状态只能沿生命周期前进，cancelled 可从未完成的任意状态进入
var allowedTransitions = map[string][]string{
	model.ActivityStatusDraft:     {model.ActivityStatusPublished, model.ActivityStatusCancelled},
	model.ActivityStatusPublished: {model.ActivityStatusOngoing, model.ActivityStatusCancelled},
	model.ActivityStatusOngoing:   {model.ActivityStatusCompleted, model.ActivityStatusCancelled},
}

// UpdateActivityStatus 活动状态流转
func UpdateActivityStatus(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.Fail(c, response.ErrInvalidRequest.WithTips("活动ID不能为空"))
		return
	}

	var req StatusUpdateReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, response.ErrInvalidRequest.WithOrigin(err))
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

	allowed := false
	for _, next := range allowedTransitions[activity.Status] {
		if next == req.Status {
			allowed = true
			break
		}
	}
	if !allowed {
		log.Warn("非法的活动状态流转",
			"id", id, "from", activity.Status, "to", req.Status)
		response.Fail(c, response.ErrInvalidRequest.WithTips("不允许的状态流转"))
		return
	}

	activity.Status = req.Status
	if err := database.DB.Save(&activity).Error; err != nil {
		log.Error("更新活动状态失败", "error", err, "id", id)
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}

	log.Info("活动状态更新成功", "id", id, "status", req.Status)
	response.Success(c, activity)
}

// Participate 学生报名，创建 registered 状态的参与记录
func Participate(c *gin.Context) {
	userPayload, exists := jwt.GetUserPayload(c)
	if !exists {
		response.Fail(c, response.ErrUnauthorized)
		return
	}
	studentID := userPayload.StudentID

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

	// 仅开放报名中的活动可报名
	if activity.Status != model.ActivityStatusPublished && activity.Status != model.ActivityStatusOngoing {
		response.Fail(c, response.ErrInvalidRequest.WithTips("活动未开放报名"))
		return
	}

	now := time.Now()
	participation := model.Participation{
		ActivityID:   activity.ID,
		UserID:       studentID,
		Status:       model.ParticipationRegistered,
		RegisteredAt: &now,
	}

	if err := database.DB.Create(&participation).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			response.Fail(c, response.ErrAlreadyExists.WithTips("已报名该活动"))
			return
		}
		log.Error("创建参与记录失败", "error", err, "activity_id", activity.ID, "student_id", studentID)
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}

	log.Info("报名成功", "activity_id", activity.ID, "student_id", studentID)
	response.Success(c, gin.H{
		"participation_id": participation.ID,
		"status":           participation.Status,
	})
}
