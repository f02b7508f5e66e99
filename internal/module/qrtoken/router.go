package qrtoken

import (
	"student-activity-system/internal/global/middleware"

	"github.com/gin-gonic/gin"
)

func (q *ModuleQRToken) InitRouter(r *gin.RouterGroup) {
	qrGroup := r.Group("/qr")

	commonGroup := qrGroup.Use(middleware.Auth(0))
	{
		// 生成个人签到二维码端点
		commonGroup.POST("/generate", GenerateQR)
	}
}
