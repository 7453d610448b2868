package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/leehwangjae/student-success-system-v2/pkg/jwt"
	"github.com/leehwangjae/student-success-system-v2/pkg/redis"
	"github.com/leehwangjae/student-success-system-v2/pkg/response"
)

// JWTAuth JWT 인증 미들웨어
// Authorization: Bearer <token> 에서 Access Token 을 추출해 검증한다.
// rdb 가 있으면 로그아웃된 토큰(블랙리스트)을 차단한다.
func JWTAuth(jwtMgr *jwt.Manager, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			response.Unauthorized(c, 10002, "인증 헤더가 없습니다")
			c.Abort()
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			response.Unauthorized(c, 10002, "인증 헤더 형식이 올바르지 않습니다")
			c.Abort()
			return
		}

		claims, err := jwtMgr.ParseToken(parts[1])
		if err != nil {
			response.Unauthorized(c, 10002, "토큰이 유효하지 않거나 만료되었습니다")
			c.Abort()
			return
		}

		if claims.TokenType != "access" {
			response.Unauthorized(c, 10002, "토큰 유형이 올바르지 않습니다")
			c.Abort()
			return
		}

		// 블랙리스트 확인. Redis 장애 시에는 통과시킨다
		if rdb != nil {
			if blacklisted, err := rdb.IsBlacklisted(c.Request.Context(), claims.ID); err == nil && blacklisted {
				response.Unauthorized(c, 10002, "로그아웃된 토큰입니다")
				c.Abort()
				return
			}
		}

		// 사용자 정보를 컨텍스트에 주입
		c.Set("user_id", claims.UserID)
		c.Set("role", claims.Role)
		c.Set("field", claims.Field)
		c.Set("claims", claims)

		c.Next()
	}
}

// RoleAuth 역할 권한 미들웨어
// 현재 사용자가 지정 역할 중 하나인지 확인한다
func RoleAuth(allowedRoles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role, exists := c.Get("role")
		if !exists {
			response.Unauthorized(c, 10002, "인증되지 않았습니다")
			c.Abort()
			return
		}

		userRole := role.(string)
		for _, r := range allowedRoles {
			if userRole == r {
				c.Next()
				return
			}
		}

		response.Forbidden(c, 10003, "접근 권한이 없습니다")
		c.Abort()
	}
}
