package memory

import (
	"context"
	"fmt"
	"time"

	"skill-community/internal/domain/session"

	"github.com/patrickmn/go-cache"
)

// SessionStore keeps sessions in process memory. Used when Redis is not
// reachable; sessions do not survive a restart.
type SessionStore struct {
	cache *cache.Cache
}

func NewSessionStore(defaultTTL time.Duration) *SessionStore {
	if defaultTTL <= 0 {
		defaultTTL = time.Hour
	}
	return &SessionStore{cache: cache.New(defaultTTL, 10*time.Minute)}
}

func (s *SessionStore) Save(_ context.Context, sess session.Session, ttl time.Duration) error {
	if sess.ID == "" {
		return fmt.Errorf("save session: empty id")
	}
	if ttl <= 0 {
		ttl = cache.DefaultExpiration
	}
	s.cache.Set(sess.ID, sess, ttl)
	return nil
}

func (s *SessionStore) Get(_ context.Context, id string) (session.Session, error) {
	x, found := s.cache.Get(id)
	if !found {
		return session.Session{}, session.ErrNotFound
	}
	sess, ok := x.(session.Session)
	if !ok {
		return session.Session{}, session.ErrNotFound
	}
	return sess, nil
}

func (s *SessionStore) Delete(_ context.Context, id string) error {
	s.cache.Delete(id)
	return nil
}

var _ session.Store = (*SessionStore)(nil)
