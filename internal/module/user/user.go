package user

import (
	"student-activity-system/internal/global/database"
	"student-activity-system/internal/global/jwt"
	"student-activity-system/internal/global/response"
	"student-activity-system/internal/model"
	"student-activity-system/tools"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// LoginReq 定义登录请求的结构体
type LoginReq struct {
	StudentID string `json:"student_id" binding:"required"` // 学号，唯一标识用户
	Password  string `json:"password" binding:"required"`   // 密码
}

// Login 处理用户登录请求
func Login(c *gin.Context) {
	// 定义请求结构体并绑定 JSON 数据
	var req LoginReq
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Error("绑定登录请求失败", "error", err)
		response.Fail(c, response.ErrInvalidRequest.WithOrigin(err))
		return
	}

	// 查询用户是否存在
	var user model.User
	err := database.DB.Where("student_id = ?", req.StudentID).First(&user).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		log.Warn("用户不存在", "student_id", req.StudentID)
		response.Fail(c, response.ErrNotFound.WithTips("用户不存在"))
		return
	case err != nil:
		log.Error("数据库查询失败", "error", err, "student_id", req.StudentID)
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}

	// 验证密码
	if !tools.PasswordCompare(req.Password, user.Password) {
		log.Warn("密码错误", "student_id", req.StudentID)
		response.Fail(c, response.ErrInvalidPassword)
		return
	}

	// 停用账号不允许登录
	if user.Status == model.UserStatusSuspended {
		log.Warn("停用账号尝试登录", "student_id", req.StudentID)
		response.Fail(c, response.ErrForbidden.WithTips("账号已被停用"))
		return
	}

	log.Info("用户登录成功",
		"student_id", user.StudentID,
		"role_id", user.RoleID)

	// 生成 JWT 令牌并返回用户信息
	response.Success(c, map[string]interface{}{
		"token": jwt.CreateToken(jwt.Payload{
			StudentID: user.StudentID,
			RoleID:    user.RoleID,
		}),
		"student_id": user.StudentID,
		"role_id":    user.RoleID,
	})
}

// CreateUserReq 定义创建用户请求的结构体
type CreateUserReq struct {
	StudentID    string `json:"student_id" binding:"required"` // 学号
	Password     string `json:"password" binding:"required"`   // 初始密码
	NickName     string `json:"nick_name" binding:"required"`  // 昵称
	FirstName    string `json:"first_name"`                    // 名
	LastName     string `json:"last_name"`                     // 姓
	RoleID       int    `json:"role_id"`                       // 0 学生，1 管理员
	DepartmentID *uint  `json:"department_id"`                 // 所属系所ID，可空
}

// CreateUser 管理员创建用户
func CreateUser(c *gin.Context) {
	var req CreateUserReq
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Error("绑定创建用户请求失败", "error", err)
		response.Fail(c, response.ErrInvalidRequest.WithOrigin(err))
		return
	}

	// 系所存在性校验
	if req.DepartmentID != nil {
		var dept model.Department
		if err := database.DB.First(&dept, "id = ?", *req.DepartmentID).Error; err != nil {
			response.Fail(c, response.ErrNotFound.WithTips("系所不存在"))
			return
		}
	}

	hashed, err := tools.PasswordHash(req.Password)
	if err != nil {
		log.Error("密码加密失败", "error", err)
		response.Fail(c, response.ErrServerInternal.WithOrigin(err))
		return
	}

	user := model.User{
		StudentID:    req.StudentID,
		Password:     hashed,
		NickName:     req.NickName,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		RoleID:       req.RoleID,
		Status:       model.UserStatusActive,
		DepartmentID: req.DepartmentID,
	}

	if err := database.DB.Create(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			response.Fail(c, response.ErrAlreadyExists.WithTips("学号已存在"))
			return
		}
		log.Error("创建用户失败", "error", err, "student_id", req.StudentID)
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}

	log.Info("用户创建成功", "student_id", user.StudentID, "role_id", user.RoleID)
	response.Success(c, gin.H{
		"student_id": user.StudentID,
	})
}

// ListUsersReq 定义获取用户列表的查询参数结构体
type ListUsersReq struct {
	Status       string `form:"status" json:"status"`               // 账号状态筛选
	DepartmentID uint   `form:"department_id" json:"department_id"` // 系所筛选
	Page         int    `form:"page" json:"page"`                   // 页码，默认为1
	PageSize     int    `form:"page_size" json:"page_size"`         // 每页大小，默认为10
}

// ListUsers 获取用户列表（支持查询参数）
func ListUsers(c *gin.Context) {
	var req ListUsersReq
	if err := c.ShouldBindQuery(&req); err != nil {
		response.Fail(c, response.ErrInvalidRequest.WithOrigin(err))
		return
	}

	if req.Page <= 0 {
		req.Page = 1
	}
	if req.PageSize <= 0 {
		req.PageSize = 10
	}

	query := database.DB.Model(&model.User{})
	if req.Status != "" {
		query = query.Where("status = ?", req.Status)
	}
	if req.DepartmentID != 0 {
		query = query.Where("department_id = ?", req.DepartmentID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}

	var users []model.User
	offset := (req.Page - 1) * req.PageSize
	if err := query.Offset(offset).Limit(req.PageSize).Find(&users).Error; err != nil {
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}

	response.Success(c, map[string]any{
		"users":       users,
		"total":       total,
		"page":        req.Page,
		"page_size":   req.PageSize,
		"total_pages": (total + int64(req.PageSize) - 1) / int64(req.PageSize),
	})
}

// UserStatusReq 修改账号状态请求
type UserStatusReq struct {
	Status string `json:"status" binding:"required"` // active/inactive/suspended
}

// UpdateUserStatus 管理员修改用户账号状态
func UpdateUserStatus(c *gin.Context) {
	studentID := c.Param("student_id")
	if studentID == "" {
		response.Fail(c, response.ErrInvalidRequest.WithTips("学号不能为空"))
		return
	}

	var req UserStatusReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, response.ErrInvalidRequest.WithOrigin(err))
		return
	}

	switch req.Status {
	case model.UserStatusActive, model.UserStatusInactive, model.UserStatusSuspended:
	default:
		response.Fail(c, response.ErrInvalidRequest.WithTips("账号状态无效"))
		return
	}

	var user model.User
	if err := database.DB.First(&user, "student_id = ?", studentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			response.Fail(c, response.ErrNotFound.WithTips("用户不存在"))
			return
		}
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}

	user.Status = req.Status
	if err := database.DB.Save(&user).Error; err != nil {
		log.Error("更新账号状态失败", "error", err, "student_id", studentID)
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}

	log.Info("账号状态更新成功", "student_id", studentID, "status", req.Status)
	response.Success(c, user)
}

// GetUser 管理员按学号查询用户
func GetUser(c *gin.Context) {
	studentID := c.Param("student_id")
	if studentID == "" {
		response.Fail(c, response.ErrInvalidRequest.WithTips("学号不能为空"))
		return
	}

	var user model.User
	if err := database.DB.First(&user, "student_id = ?", studentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			response.Fail(c, response.ErrNotFound.WithTips("用户不存在"))
			return
		}
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}

	response.Success(c, user)
}

// GetProfile 获取当前登录用户信息
func GetProfile(c *gin.Context) {
	userPayload, exists := jwt.GetUserPayload(c)
	if !exists {
		response.Fail(c, response.ErrUnauthorized)
		return
	}

	var user model.User
	if err := database.DB.First(&user, "student_id = ?", userPayload.StudentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			response.Fail(c, response.ErrNotFound.WithTips("用户不存在"))
			return
		}
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}

	response.Success(c, user)
}
