package authlockout

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"screenboard/internal/ratelimit/models"
	"screenboard/pkg/requestcontext"
)

// recordFailureScript increments the counter and, on the first failure of a window,
// stamps the window start and arms the expiry. Expiry ends the window.
var recordFailureScript = redis.NewScript(`
local count = redis.call('HINCRBY', KEYS[1], 'count', 1)
if count == 1 then
  redis.call('HSET', KEYS[1], 'window_start', ARGV[1])
  redis.call('PEXPIRE', KEYS[1], ARGV[2])
end
redis.call('HSET', KEYS[1], 'last_failure', ARGV[1])
return {count, redis.call('HGET', KEYS[1], 'window_start')}
`)

// RedisStore shares lockout counters across instances.
type RedisStore struct {
	client redis.UniversalClient
}

func NewRedis(client redis.UniversalClient) *RedisStore {
	return &RedisStore{client: client}
}

func (s *RedisStore) Get(ctx context.Context, identifier string) (*models.AuthLockout, error) {
	fields, err := s.client.HGetAll(ctx, identifier).Result()
	if err != nil {
		return nil, fmt.Errorf("get auth lockout: %w", err)
	}
	if len(fields) == 0 {
		return nil, nil
	}
	count, err := strconv.Atoi(fields["count"])
	if err != nil {
		return nil, fmt.Errorf("parse auth lockout count: %w", err)
	}
	start, err := parseUnixNano(fields["window_start"])
	if err != nil {
		return nil, err
	}
	last, err := parseUnixNano(fields["last_failure"])
	if err != nil {
		return nil, err
	}
	return &models.AuthLockout{
		Identifier:    identifier,
		FailureCount:  count,
		WindowStart:   start,
		LastFailureAt: last,
	}, nil
}

func (s *RedisStore) RecordFailure(ctx context.Context, identifier string, window time.Duration) (*models.AuthLockout, error) {
	now := requestcontext.Now(ctx)
	res, err := recordFailureScript.Run(ctx, s.client, []string{identifier},
		strconv.FormatInt(now.UnixNano(), 10), window.Milliseconds()).Slice()
	if err != nil {
		return nil, fmt.Errorf("record auth failure: %w", err)
	}
	if len(res) != 2 {
		return nil, errors.New("record auth failure: unexpected script result")
	}
	count, ok := res[0].(int64)
	if !ok {
		return nil, errors.New("record auth failure: count is not an integer")
	}
	rawStart, _ := res[1].(string)
	start, err := parseUnixNano(rawStart)
	if err != nil {
		return nil, err
	}
	return &models.AuthLockout{
		Identifier:    identifier,
		FailureCount:  int(count),
		WindowStart:   start,
		LastFailureAt: now,
	}, nil
}

func (s *RedisStore) Clear(ctx context.Context, identifier string) error {
	if err := s.client.Del(ctx, identifier).Err(); err != nil {
		return fmt.Errorf("clear auth lockout: %w", err)
	}
	return nil
}

func parseUnixNano(v string) (time.Time, error) {
	if v == "" {
		return time.Time{}, nil
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse auth lockout timestamp: %w", err)
	}
	return time.Unix(0, n).UTC(), nil
}
