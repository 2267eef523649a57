package session

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	redis "github.com/redis/go-redis/v9"
)

type RedisStore struct {
	client      *redis.Client
	sessionTTL  time.Duration
	rememberTTL time.Duration
}

func NewRedisStore(url string, sessionTTL, rememberTTL time.Duration) (*RedisStore, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	return &RedisStore{
		client:      redis.NewClient(opts),
		sessionTTL:  sessionTTL,
		rememberTTL: rememberTTL,
	}, nil
}

func (s *RedisStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

func (s *RedisStore) Close() error {
	return s.client.Close()
}

func sessionKey(token string) string     { return "session:" + token }
func rememberKey(clientID string) string { return "remember:" + clientID }

func (s *RedisStore) SaveSession(ctx context.Context, sess Session) error {
	payload, err := json.Marshal(sess)
	if err != nil {
		return err
	}
	ttl := s.sessionTTL
	if until := time.Until(sess.ExpiresAt); until > 0 && until < ttl {
		ttl = until
	}
	return s.client.Set(ctx, sessionKey(sess.Token), payload, ttl).Err()
}

func (s *RedisStore) FindSession(ctx context.Context, token string) (Session, error) {
	val, err := s.client.Get(ctx, sessionKey(token)).Result()
	if err == redis.Nil {
		return Session{}, ErrNotFound
	}
	if err != nil {
		return Session{}, err
	}
	var sess Session
	if err := json.Unmarshal([]byte(val), &sess); err != nil {
		return Session{}, err
	}
	return sess, nil
}

func (s *RedisStore) DeleteSession(ctx context.Context, token string) error {
	return s.client.Del(ctx, sessionKey(token)).Err()
}

func (s *RedisStore) SaveRemembered(ctx context.Context, clientID string, login RememberedLogin) error {
	payload, err := json.Marshal(login)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, rememberKey(clientID), payload, s.rememberTTL).Err()
}

func (s *RedisStore) FindRemembered(ctx context.Context, clientID string) (RememberedLogin, error) {
	val, err := s.client.Get(ctx, rememberKey(clientID)).Result()
	if err == redis.Nil {
		return RememberedLogin{}, ErrNotFound
	}
	if err != nil {
		return RememberedLogin{}, err
	}
	var login RememberedLogin
	if err := json.Unmarshal([]byte(val), &login); err != nil {
		return RememberedLogin{}, err
	}
	return login, nil
}

func (s *RedisStore) DeleteRemembered(ctx context.Context, clientID string) error {
	return s.client.Del(ctx, rememberKey(clientID)).Err()
}
