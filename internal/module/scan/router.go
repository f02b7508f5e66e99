package scan

import (
	"student-activity-system/internal/global/middleware"

	"github.com/gin-gonic/gin"
)

func (s *ModuleScan) InitRouter(r *gin.RouterGroup) {
	// 扫码端点仅管理员（扫码设备）可用
	scanGroup := r.Group("/scan")

	adminGroup := scanGroup.Use(middleware.Auth(1))
	{
		// 签到端点
		adminGroup.POST("/:activity_id/checkin", CheckIn)
		// 签退端点
		adminGroup.POST("/:activity_id/checkout", CheckOut)
	}
}
