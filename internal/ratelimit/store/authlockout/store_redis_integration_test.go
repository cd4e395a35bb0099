//go:build integration

package authlockout_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"screenboard/internal/ratelimit/store/authlockout"
	"screenboard/pkg/requestcontext"
	"screenboard/pkg/testutil/containers"
)

type RedisStoreSuite struct {
	suite.Suite
	redis *containers.RedisContainer
	store *authlockout.RedisStore
}

func TestRedisStoreSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(RedisStoreSuite))
}

func (s *RedisStoreSuite) SetupSuite() {
	s.redis = containers.GetManager().GetRedis(s.T())
	s.store = authlockout.NewRedis(s.redis.Client)
}

func (s *RedisStoreSuite) SetupTest() {
	s.Require().NoError(s.redis.FlushAll(context.Background()))
}

func (s *RedisStoreSuite) TestCountsWithinWindow() {
	start := time.Date(2026, 6, 1, 8, 0, 0, 0, time.UTC)
	key := "auth_lockout:a@example.com"

	for i := 0; i < 3; i++ {
		ctx := requestcontext.WithTime(context.Background(), start.Add(time.Duration(i)*time.Second))
		record, err := s.store.RecordFailure(ctx, key, time.Minute)
		s.Require().NoError(err)
		s.Equal(i+1, record.FailureCount)
		s.True(start.Equal(record.WindowStart))
	}

	record, err := s.store.Get(context.Background(), key)
	s.Require().NoError(err)
	s.Require().NotNil(record)
	s.Equal(3, record.FailureCount)
	s.True(start.Add(2 * time.Second).Equal(record.LastFailureAt))

	ttl, err := s.redis.Client.PTTL(context.Background(), key).Result()
	s.Require().NoError(err)
	s.Greater(ttl, time.Duration(0))
}

func (s *RedisStoreSuite) TestExpiryEndsWindow() {
	key := "auth_lockout:b@example.com"
	_, err := s.store.RecordFailure(context.Background(), key, 50*time.Millisecond)
	s.Require().NoError(err)

	s.Eventually(func() bool {
		record, err := s.store.Get(context.Background(), key)
		return err == nil && record == nil
	}, 2*time.Second, 20*time.Millisecond)
}

func (s *RedisStoreSuite) TestClear() {
	key := "auth_lockout:c@example.com"
	_, err := s.store.RecordFailure(context.Background(), key, time.Minute)
	s.Require().NoError(err)
	s.Require().NoError(s.store.Clear(context.Background(), key))

	record, err := s.store.Get(context.Background(), key)
	s.Require().NoError(err)
	s.Nil(record)
}
