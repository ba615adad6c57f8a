package auth

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/user/seriestrack/internal/utils"
)

// RevocationList 已注销令牌（按 jti）列表，条目在令牌过期后失效
type RevocationList interface {
	Revoke(ctx context.Context, jti string, ttl time.Duration) error
	IsRevoked(ctx context.Context, jti string) (bool, error)
}

// MemoryRevocationList 进程内实现，适合单实例部署
type MemoryRevocationList struct {
	cache *utils.TTLCache[struct{}]
}

func NewMemoryRevocationList(size int) *MemoryRevocationList {
	return &MemoryRevocationList{cache: utils.NewTTLCache[struct{}](size, 24*time.Hour)}
}

func (m *MemoryRevocationList) Revoke(_ context.Context, jti string, ttl time.Duration) error {
	if jti == "" || ttl <= 0 {
		return nil
	}
	m.cache.SetWithTTL(jti, struct{}{}, ttl)
	return nil
}

func (m *MemoryRevocationList) IsRevoked(_ context.Context, jti string) (bool, error) {
	if jti == "" {
		return false, nil
	}
	_, ok := m.cache.Get(jti)
	return ok, nil
}

// Sweep 清理已过期的条目
func (m *MemoryRevocationList) Sweep(context.Context) (int, error) {
	return m.cache.PurgeExpired(), nil
}

const revokedKeyPrefix = "seriestrack:revoked:"

// RedisRevocationList 多实例共享的实现
type RedisRevocationList struct {
	client *redis.Client
}

func NewRedisRevocationList(client *redis.Client) *RedisRevocationList {
	return &RedisRevocationList{client: client}
}

func (r *RedisRevocationList) Revoke(ctx context.Context, jti string, ttl time.Duration) error {
	if jti == "" || ttl <= 0 {
		return nil
	}
	// 只关心 key 是否存在
	return r.client.Set(ctx, revokedKeyPrefix+jti, "1", ttl).Err()
}

func (r *RedisRevocationList) IsRevoked(ctx context.Context, jti string) (bool, error) {
	if jti == "" {
		return false, nil
	}
	_, err := r.client.Get(ctx, revokedKeyPrefix+jti).Result()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}
