package qrtoken

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"time"
)

// 解码失败的两种情形，调用方据此映射扫码状态码
var (
	ErrInvalid = errors.New("qr token invalid")
	ErrExpired = errors.New("qr token expired")
)

// Claim 二维码载荷，外部签发方生成
// exp 为毫秒时间戳，缺省表示不过期
type Claim struct {
	UID string `json:"uid"`           // 学号
	SID string `json:"sid,omitempty"` // 签发会话ID
	TS  int64  `json:"ts,omitempty"`  // 签发时间（毫秒）
	Exp int64  `json:"exp,omitempty"` // 过期时间（毫秒）
	JTI string `json:"jti,omitempty"` // 令牌唯一ID
}

// Decode 解析二维码载荷
// 先尝试 base64 解码后按 JSON 解析，失败再按原始 JSON 解析
// 两者都失败、缺少 uid 或已过期时返回对应错误，纯函数无副作用
func Decode(raw string, now time.Time) (*Claim, error) {
	var claim *Claim
	if decoded, err := base64.StdEncoding.DecodeString(raw); err == nil {
		claim = parseClaim(decoded)
	}
	if claim == nil {
		if decoded, err := base64.URLEncoding.DecodeString(raw); err == nil {
			claim = parseClaim(decoded)
		}
	}
	if claim == nil {
		claim = parseClaim([]byte(raw))
	}
	if claim == nil || claim.UID == "" {
		return nil, ErrInvalid
	}
	if claim.Exp > 0 && now.UnixMilli() > claim.Exp {
		return nil, ErrExpired
	}
	return claim, nil
}

// Encode 将载荷编码为二维码内容（base64 JSON）
func Encode(claim *Claim) string {
	data, err := json.Marshal(claim)
	if err != nil {
		return ""
	}
	return base64.StdEncoding.EncodeToString(data)
}

func parseClaim(data []byte) *Claim {
	var claim Claim
	if err := json.Unmarshal(data, &claim); err != nil {
		return nil
	}
	return &claim
}
