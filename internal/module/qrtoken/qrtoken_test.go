package qrtoken

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"student-activity-system/config"
	"student-activity-system/internal/global/jwt"
	"student-activity-system/internal/global/response"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	(&ModuleQRToken{}).Init()
	os.Exit(m.Run())
}

// doGenerate 以指定登录身份调用签发端点
func doGenerate(t *testing.T, payload *jwt.Claims) (resp response.ResponseBody) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/qr/generate", bytes.NewReader(nil))
	if payload != nil {
		c.Set("payload", payload)
	}
	GenerateQR(c)
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	return
}

func TestGenerateQRUnauthorized(t *testing.T) {
	resp := doGenerate(t, nil)
	assert.EqualValues(t, response.ErrUnauthorized.Code, resp.Code)
}

// 签发出的令牌必须能被解码回同一学号，且有效期与配置一致
func TestGenerateQRRoundTrip(t *testing.T) {
	resp := doGenerate(t, &jwt.Claims{
		Payload: jwt.Payload{StudentID: "202301001", RoleID: 0},
	})
	require.EqualValues(t, 200, resp.Code)

	data, ok := resp.Data.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "202301001", data["user_id"])
	assert.NotEmpty(t, data["id"])

	qrData, ok := data["qr_data"].(string)
	require.True(t, ok)

	claim, err := Decode(qrData, time.Now())
	require.NoError(t, err)
	assert.Equal(t, "202301001", claim.UID)
	assert.Equal(t, data["id"], claim.JTI)

	// 过期时间落在配置的有效期附近
	ttl := time.Duration(config.Get().QR.TokenExpire) * time.Second
	remaining := time.UnixMilli(claim.Exp).Sub(time.Now())
	assert.Greater(t, remaining, ttl-10*time.Second)
	assert.LessOrEqual(t, remaining, ttl)

	// 到期后同一令牌必须被拒绝
	_, err = Decode(qrData, time.UnixMilli(claim.Exp).Add(time.Second))
	assert.ErrorIs(t, err, ErrExpired)
}
