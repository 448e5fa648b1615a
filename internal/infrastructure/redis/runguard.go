package redisstore

import (
	"context"
	"sync"
	"time"

	"fxrates-watch/internal/application"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

var _ application.RunGuard = (*Store)(nil)

// releaseScript deletes the key only while it still holds our token, so an
// expired reservation taken over by another run is left alone.
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

type Store struct {
	Client *redis.Client
	TTL    time.Duration

	mu     sync.Mutex
	tokens map[string]string
}

func New(client *redis.Client, ttl time.Duration) *Store {
	return &Store{Client: client, TTL: ttl, tokens: map[string]string{}}
}

func (s *Store) TryReserve(ctx context.Context, key string) (bool, error) {
	token := uuid.NewString()
	ok, err := s.Client.SetNX(ctx, key, token, s.TTL).Result()
	if err != nil {
		return false, err
	}
	if ok {
		s.mu.Lock()
		if s.tokens == nil {
			s.tokens = map[string]string{}
		}
		s.tokens[key] = token
		s.mu.Unlock()
	}
	return ok, nil
}

func (s *Store) Release(ctx context.Context, key string) error {
	s.mu.Lock()
	token, ok := s.tokens[key]
	delete(s.tokens, key)
	s.mu.Unlock()
	if !ok {
		return nil
	}
	return releaseScript.Run(ctx, s.Client, []string{key}, token).Err()
}
