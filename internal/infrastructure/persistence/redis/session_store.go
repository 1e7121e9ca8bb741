package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"skill-community/internal/domain/session"

	goredis "github.com/redis/go-redis/v9"
)

const sessionKeyPrefix = "community:session:"

type SessionStore struct {
	client *goredis.Client
}

func NewSessionStore(client *goredis.Client) *SessionStore {
	return &SessionStore{client: client}
}

func sessionKey(id string) string {
	return sessionKeyPrefix + id
}

func (s *SessionStore) Save(ctx context.Context, sess session.Session, ttl time.Duration) error {
	if s == nil || s.client == nil {
		return errors.New("nil redis client")
	}
	if sess.ID == "" {
		return fmt.Errorf("save session: empty id")
	}
	b, err := json.Marshal(sess)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, sessionKey(sess.ID), b, ttl).Err()
}

func (s *SessionStore) Get(ctx context.Context, id string) (session.Session, error) {
	if s == nil || s.client == nil {
		return session.Session{}, errors.New("nil redis client")
	}
	b, err := s.client.Get(ctx, sessionKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return session.Session{}, session.ErrNotFound
		}
		return session.Session{}, err
	}

	var sess session.Session
	if err := json.Unmarshal(b, &sess); err != nil {
		return session.Session{}, fmt.Errorf("decode session: %w", err)
	}
	return sess, nil
}

func (s *SessionStore) Delete(ctx context.Context, id string) error {
	if s == nil || s.client == nil {
		return errors.New("nil redis client")
	}
	return s.client.Del(ctx, sessionKey(id)).Err()
}

var _ session.Store = (*SessionStore)(nil)
