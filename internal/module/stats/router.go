package stats

import (
	"student-activity-system/internal/global/middleware"

	"github.com/gin-gonic/gin"
)

func (s *ModuleStats) InitRouter(r *gin.RouterGroup) {
	statsGroup := r.Group("/stats")

	adminGroup := statsGroup.Use(middleware.Auth(1))
	{
		// 活动参与汇总端点
		adminGroup.GET("/activity/:id", GetActivitySummary)
		// 活动签到名单导出端点
		adminGroup.GET("/activity/:id/export", ExportActivityRoster)
	}
}
