package redis

import (
	"context"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/leehwangjae/student-success-system-v2/config"
)

// Client Redis 클라이언트 래퍼
// 현재 토큰 블랙리스트와 요청 속도 제한에 사용
type Client struct {
	rdb    *goredis.Client
	logger *zap.Logger
}

// NewClient Redis 연결 생성 및 Ping 헬스체크 수행
func NewClient(cfg *config.RedisConfig, logger *zap.Logger) (*Client, error) {
	rdb := goredis.NewClient(&goredis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("Redis 연결 실패: %w", err)
	}

	logger.Info("Redis 연결 성공", zap.String("addr", cfg.Addr))

	return &Client{rdb: rdb, logger: logger}, nil
}

// ── 토큰 블랙리스트 ──

const blacklistPrefix = "token:blacklist:"

// BlacklistToken JWT ID 를 블랙리스트에 등록, TTL 은 토큰의 남은 유효기간과 동일
func (c *Client) BlacklistToken(ctx context.Context, jti string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil // 이미 만료된 토큰은 등록 불필요
	}
	return c.rdb.Set(ctx, blacklistPrefix+jti, "1", ttl).Err()
}

// IsBlacklisted JWT ID 가 블랙리스트에 있는지 확인
func (c *Client) IsBlacklisted(ctx context.Context, jti string) (bool, error) {
	n, err := c.rdb.Exists(ctx, blacklistPrefix+jti).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// ── 요청 속도 제한 ──

// CheckRateLimit 고정 윈도우 방식으로 요청 허용 여부 확인
// 윈도우 내 카운트가 limit 이하이면 true
func (c *Client) CheckRateLimit(ctx context.Context, key string, limit int, window time.Duration) (bool, error) {
	count, err := c.rdb.Incr(ctx, key).Result()
	if err != nil {
		return false, err
	}
	if count == 1 {
		if err := c.rdb.Expire(ctx, key, window).Err(); err != nil {
			return false, err
		}
	}
	return count <= int64(limit), nil
}

// Close Redis 연결 종료
func (c *Client) Close() error {
	return c.rdb.Close()
}
