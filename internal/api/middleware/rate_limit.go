package middleware

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/leehwangjae/student-success-system-v2/pkg/redis"
	"github.com/leehwangjae/student-success-system-v2/pkg/response"
)

// RateLimit Redis 고정 윈도우 기반 속도 제한 미들웨어
// limit: 윈도우 내 허용 최대 요청 수
// window: 윈도우 길이
// rdb 가 nil 이거나 Redis 장애 시에는 통과시킨다
func RateLimit(rdb *redis.Client, limit int, window time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		if rdb == nil {
			c.Next()
			return
		}

		key := fmt.Sprintf("rate_limit:%s:%s", c.ClientIP(), c.FullPath())
		allowed, err := rdb.CheckRateLimit(c.Request.Context(), key, limit, window)
		if err != nil {
			c.Next()
			return
		}

		if !allowed {
			response.Error(c, http.StatusTooManyRequests, 10004, "요청이 너무 잦습니다. 잠시 후 다시 시도해주세요")
			c.Abort()
			return
		}

		c.Next()
	}
}
