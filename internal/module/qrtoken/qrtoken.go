package qrtoken

import (
	"context"
	"time"

	"student-activity-system/config"
	"student-activity-system/internal/global/database"
	"student-activity-system/internal/global/jwt"
	"student-activity-system/internal/global/response"
	"student-activity-system/tools"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// jtiRetryLimit jti 冲突时的重试上限
const jtiRetryLimit = 3

// GenerateQR 为当前登录学生签发二维码令牌
// 有效期由配置决定（默认180秒），jti 写入 Redis 供后续追踪
func GenerateQR(c *gin.Context) {
	// 获取认证信息
	userPayload, exists := jwt.GetUserPayload(c)
	if !exists {
		response.Fail(c, response.ErrUnauthorized)
		return
	}

	now := time.Now()
	ttl := time.Duration(config.Get().QR.TokenExpire) * time.Second
	expiresAt := now.Add(ttl)

	jti := newJTI(c.Request.Context(), ttl)

	claim := &Claim{
		UID: userPayload.StudentID,
		TS:  now.UnixMilli(),
		Exp: expiresAt.UnixMilli(),
		JTI: jti,
	}

	qrData := Encode(claim)
	if qrData == "" {
		response.Fail(c, response.ErrServerInternal)
		return
	}

	log.Info("二维码令牌签发成功",
		"student_id", userPayload.StudentID,
		"jti", jti,
		"expires_at", expiresAt.UnixMilli())

	response.Success(c, gin.H{
		"id":         jti,
		"user_id":    userPayload.StudentID,
		"qr_data":    qrData,
		"expires_at": expiresAt.UnixMilli(),
	})
}

// newJTI 生成带有限重试的唯一令牌ID
// Redis 可用时用 SETNX 占位去重，不可用时直接使用 uuid
func newJTI(ctx context.Context, ttl time.Duration) string {
	rdb := database.RDB
	if rdb == nil {
		return uuid.NewString()
	}
	return tools.GenerateUniqueKey(jtiRetryLimit,
		uuid.NewString,
		func(key string) bool {
			ok, err := rdb.SetNX(ctx, "qr:jti:"+key, 1, ttl).Result()
			if err != nil {
				// Redis 故障时不阻塞签发
				return true
			}
			return ok
		},
	)
}
