package user

import (
	"student-activity-system/internal/global/middleware"

	"github.com/gin-gonic/gin"
)

func (u *ModuleUser) InitRouter(r *gin.RouterGroup) {
	// 定义用户模块的路由组，所有用户相关端点以 /user 为前缀
	userGroup := r.Group("/user")

	// 登录端点无需认证
	userGroup.POST("/login", Login)

	// 管理员与普通用户各用独立子分组，避免中间件相互叠加
	adminGroup := userGroup.Group("")
	adminGroup.Use(middleware.Auth(1))
	{
		// 创建用户端点
		adminGroup.POST("/create", CreateUser)
		// 获取用户列表端点
		adminGroup.GET("/list", ListUsers)
		// 按学号查询用户端点
		adminGroup.GET("/get/:student_id", GetUser)
		// 修改用户账号状态端点
		adminGroup.PUT("/status/:student_id", UpdateUserStatus)
	}

	commonGroup := userGroup.Group("")
	commonGroup.Use(middleware.Auth(0))
	{
		// 获取个人信息端点
		commonGroup.GET("/profile", GetProfile)
	}
}
