package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/leehwangjae/student-success-system-v2/pkg/jwt"
	"github.com/leehwangjae/student-success-system-v2/pkg/response"
)

// MustGetUserID Gin 컨텍스트에서 user_id 를 안전하게 추출한다.
// JWT 미들웨어가 주입하지 않았으면 401 을 기록하고 false 를 반환하므로
// 호출자는 ok=false 일 때 바로 return 해야 한다.
func MustGetUserID(c *gin.Context) (string, bool) {
	v, exists := c.Get("user_id")
	if !exists {
		response.Unauthorized(c, 10002, "인증되지 않았습니다")
		return "", false
	}
	s, ok := v.(string)
	if !ok || s == "" {
		response.Unauthorized(c, 10002, "인증되지 않았습니다")
		return "", false
	}
	return s, true
}

// MustGetRole Gin 컨텍스트에서 role 을 안전하게 추출한다.
func MustGetRole(c *gin.Context) (string, bool) {
	v, exists := c.Get("role")
	if !exists {
		response.Unauthorized(c, 10002, "인증되지 않았습니다")
		return "", false
	}
	s, ok := v.(string)
	if !ok || s == "" {
		response.Unauthorized(c, 10002, "인증되지 않았습니다")
		return "", false
	}
	return s, true
}

// MustGetClaims Gin 컨텍스트에서 JWT 클레임 전체를 추출한다 (로그아웃용).
func MustGetClaims(c *gin.Context) (*jwt.Claims, bool) {
	v, exists := c.Get("claims")
	if !exists {
		response.Unauthorized(c, 10002, "인증되지 않았습니다")
		return nil, false
	}
	claims, ok := v.(*jwt.Claims)
	if !ok {
		response.Unauthorized(c, 10002, "인증되지 않았습니다")
		return nil, false
	}
	return claims, true
}
