package response

import (
	"net/http"

	"student-activity-system/config"
	"student-activity-system/internal/global/logger"
	"student-activity-system/internal/global/sentry"

	"github.com/gin-gonic/gin"
)

// ResponseBody 统一响应体结构
type ResponseBody struct {
	Code int32  `json:"code"`
	Msg  string `json:"msg"`
	Data any    `json:"data"`
}

// Success 返回成功响应，code 固定为 200
func Success(c *gin.Context, data any) {
	c.JSON(http.StatusOK, ResponseBody{
		Code: 200,
		Msg:  "success",
		Data: data,
	})
}

// Fail 返回失败响应，HTTP 状态码始终为 200，业务码区分错误
// 服务器内部错误（5xx 码）同时上报 Sentry
func Fail(c *gin.Context, err *Error) {
	sentry.CaptureException(c, err)

	body := ResponseBody{
		Code: err.Code,
		Msg:  err.Message,
	}
	// 原始错误只在 debug 模式下暴露给前端
	if err.Origin != "" && config.Get().Mode == config.ModeDebug {
		body.Data = gin.H{"origin": err.Origin}
	}
	c.JSON(http.StatusOK, body)
}

// Recovery 捕获处理过程中的 panic，记录日志并返回通用错误
func Recovery(c *gin.Context) {
	if r := recover(); r != nil {
		logger.New("Recovery").Error("handler panic",
			"panic", r,
			"path", c.Request.URL.Path,
			"method", c.Request.Method,
		)
		Fail(c, ErrServerInternal)
		c.Abort()
	}
}
