//go:build integration

package auth

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	tcredis "github.com/testcontainers/testcontainers-go/modules/redis"
)

type RedisRevocationSuite struct {
	suite.Suite
	container *tcredis.RedisContainer
	client    *redis.Client
	list      *RedisRevocationList
}

func TestRedisRevocationSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(RedisRevocationSuite))
}

func (s *RedisRevocationSuite) SetupSuite() {
	ctx := context.Background()

	container, err := tcredis.Run(ctx, "redis:7-alpine")
	s.Require().NoError(err)
	s.container = container

	addr, err := container.ConnectionString(ctx)
	s.Require().NoError(err)
	opts, err := redis.ParseURL(addr)
	s.Require().NoError(err)

	s.client = redis.NewClient(opts)
	s.Require().NoError(s.client.Ping(ctx).Err())
	s.list = NewRedisRevocationList(s.client)
}

func (s *RedisRevocationSuite) TearDownSuite() {
	if s.client != nil {
		_ = s.client.Close()
	}
	if s.container != nil {
		_ = testcontainers.TerminateContainer(s.container)
	}
}

func (s *RedisRevocationSuite) SetupTest() {
	s.Require().NoError(s.client.FlushAll(context.Background()).Err())
}

func (s *RedisRevocationSuite) TestRevokeAndCheck() {
	ctx := context.Background()

	revoked, err := s.list.IsRevoked(ctx, "jti-1")
	s.Require().NoError(err)
	s.False(revoked)

	s.Require().NoError(s.list.Revoke(ctx, "jti-1", time.Minute))
	revoked, err = s.list.IsRevoked(ctx, "jti-1")
	s.Require().NoError(err)
	s.True(revoked)

	ttl, err := s.client.TTL(ctx, revokedKeyPrefix+"jti-1").Result()
	s.Require().NoError(err)
	s.Positive(ttl)
}

func (s *RedisRevocationSuite) TestEntriesExpire() {
	ctx := context.Background()
	s.Require().NoError(s.list.Revoke(ctx, "short", time.Second))

	s.Eventually(func() bool {
		revoked, err := s.list.IsRevoked(ctx, "short")
		return err == nil && !revoked
	}, 5*time.Second, 100*time.Millisecond)
}
