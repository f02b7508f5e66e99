package jwt

import (
	"time"

	"student-activity-system/config"

	"github.com/golang-jwt/jwt"
)

// Payload 登录令牌携带的业务字段
type Payload struct {
	StudentID string `json:"student_id"`
	RoleID    int    `json:"role_id"`
}

type Claims struct {
	Payload
	jwt.StandardClaims
}

// CreateToken 签发 HS256 登录令牌
func CreateToken(payload Payload) string {
	cfg := config.Get().JWT
	now := time.Now()
	claims := Claims{
		Payload: payload,
		StandardClaims: jwt.StandardClaims{
			IssuedAt:  now.Unix(),
			ExpiresAt: now.Add(time.Duration(cfg.AccessExpire) * time.Second).Unix(),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(cfg.AccessSecret))
	if err != nil {
		return ""
	}
	return signed
}

// ParseToken 解析并校验登录令牌
func ParseToken(tokenStr string) (*Claims, bool) {
	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(t *jwt.Token) (any, error) {
		return []byte(config.Get().JWT.AccessSecret), nil
	})
	if err != nil || !token.Valid {
		return nil, false
	}
	claims, ok := token.Claims.(*Claims)
	if !ok {
		return nil, false
	}
	return claims, true
}
