package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"skill-community/internal/domain/session"
	"skill-community/internal/domain/user"
	"skill-community/internal/pkg/jwt"
	"skill-community/internal/pkg/logger"

	"github.com/google/uuid"
)

type SessionUsecase interface {
	Begin(ctx context.Context, userID user.ID, authToken string) (SessionGrant, error)
	Resolve(ctx context.Context, token string) (session.Session, error)
	End(ctx context.Context, sessionID string) error
	Expire(ctx context.Context, s session.Session, reason string) error
}

// SessionGrant is what the client keeps: a signed reference to the stored session.
type SessionGrant struct {
	Session   session.Session
	Token     string
	ExpiresAt time.Time
}

type Sessions struct {
	store  session.Store
	jwt    jwt.Service
	ttl    time.Duration
	logger logger.Logger

	now   func() time.Time
	newID func() string
}

func NewSessionUsecase(store session.Store, jwtSvc jwt.Service, ttl time.Duration, log logger.Logger) *Sessions {
	if log == nil {
		log = logger.NewNop()
	}
	return &Sessions{
		store:  store,
		jwt:    jwtSvc,
		ttl:    ttl,
		logger: log,
		now:    time.Now,
		newID:  uuid.NewString,
	}
}

func (s *Sessions) Begin(ctx context.Context, userID user.ID, authToken string) (SessionGrant, error) {
	authToken = strings.TrimSpace(authToken)
	if userID.IsZero() || authToken == "" {
		return SessionGrant{}, ErrInvalidInput
	}

	sess := session.Session{
		ID:        s.newID(),
		UserID:    userID,
		AuthToken: authToken,
		CreatedAt: s.now().UTC(),
	}
	if err := s.store.Save(ctx, sess, s.ttl); err != nil {
		s.logger.Error("Session", "save failed", map[string]any{"error": err})
		return SessionGrant{}, ErrInternal
	}

	token, exp, err := s.jwt.GenerateSessionToken(sess.ID, sess.UserID.String())
	if err != nil {
		_ = s.store.Delete(ctx, sess.ID)
		return SessionGrant{}, ErrInternal
	}

	s.logger.Info("Session", "session started", map[string]any{"session_id": sess.ID, "user_id": sess.UserID})
	return SessionGrant{Session: sess, Token: token, ExpiresAt: exp}, nil
}

// Resolve maps a signed session token to its stored session. Any failure is
// ErrNoSession, except store outages which are ErrInternal.
func (s *Sessions) Resolve(ctx context.Context, token string) (session.Session, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return session.Session{}, ErrNoSession
	}

	claims, err := s.jwt.ValidateToken(token)
	if err != nil {
		return session.Session{}, ErrNoSession
	}

	sess, err := s.store.Get(ctx, claims.SessionID)
	if err != nil {
		if errors.Is(err, session.ErrNotFound) {
			return session.Session{}, ErrNoSession
		}
		s.logger.Error("Session", "lookup failed", map[string]any{"error": err})
		return session.Session{}, ErrInternal
	}
	if !sess.Valid() || sess.UserID.String() != claims.UserID {
		return session.Session{}, ErrNoSession
	}
	return sess, nil
}

func (s *Sessions) End(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return nil
	}
	if err := s.store.Delete(ctx, sessionID); err != nil {
		s.logger.Error("Session", "delete failed", map[string]any{"error": err})
		return ErrInternal
	}
	s.logger.Info("Session", "session ended", map[string]any{"session_id": sessionID})
	return nil
}

// Expire tears a session down after the backend rejected its credentials.
func (s *Sessions) Expire(ctx context.Context, sess session.Session, reason string) error {
	if err := s.store.Delete(ctx, sess.ID); err != nil {
		s.logger.Error("Session", "expire failed", map[string]any{"error": err, "session_id": sess.ID})
		return ErrInternal
	}
	s.logger.Warn("Session", "session expired", map[string]any{
		"session_id": sess.ID, "user_id": sess.UserID, "reason": reason,
	})
	return nil
}

var _ SessionUsecase = (*Sessions)(nil)
