package session

import (
	"context"
	"errors"
	"time"

	"skill-community/internal/domain/user"
)

var ErrNotFound = errors.New("session not found")

// Session is the authenticated identity used for backend calls.
type Session struct {
	ID        string    `json:"id"`
	UserID    user.ID   `json:"user_id"`
	AuthToken string    `json:"auth_token"`
	CreatedAt time.Time `json:"created_at"`
}

func (s Session) Valid() bool {
	return s.ID != "" && !s.UserID.IsZero() && s.AuthToken != ""
}

type Store interface {
	Save(ctx context.Context, s Session, ttl time.Duration) error
	Get(ctx context.Context, id string) (Session, error)
	Delete(ctx context.Context, id string) error
}
