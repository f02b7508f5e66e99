package activity

import (
	"student-activity-system/internal/global/middleware"

	"github.com/gin-gonic/gin"
)

func (a *ModuleActivity) InitRouter(r *gin.RouterGroup) {
	// 定义活动模块的路由组，所有活动相关端点以 /activity 为前缀
	activityGroup := r.Group("/activity")

	// 管理员与普通用户各用独立子分组，避免中间件相互叠加
	adminGroup := activityGroup.Group("")
	adminGroup.Use(middleware.Auth(1))
	{
		// 创建活动端点
		adminGroup.POST("/create", CreateActivity)
		// 修改活动端点
		adminGroup.PUT("/update/:id", UpdateActivity)
		// 活动状态流转端点
		adminGroup.PUT("/status/:id", UpdateActivityStatus)
	}

	commonGroup := activityGroup.Group("")
	commonGroup.Use(middleware.Auth(0))
	{
		// 获取活动列表端点
		commonGroup.GET("/list", ListActivities)
		// 获取活动详情端点
		commonGroup.GET("/:id", GetActivity)
		// 学生报名端点
		commonGroup.POST("/participate/:id", Participate)
	}
}
