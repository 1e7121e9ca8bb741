package usecase

import (
	"context"
	"sync"
	"time"

	"skill-community/internal/domain/connection"
	"skill-community/internal/domain/session"
	"skill-community/internal/domain/user"
	"skill-community/internal/infrastructure/backend"
	"skill-community/internal/pkg/logger"

	"golang.org/x/sync/errgroup"
)

// CardState is the resolved relationship of one card.
type CardState struct {
	Status connection.Status
	Error  string
}

// StatusResolver resolves card states for a page of targets.
type StatusResolver interface {
	ResolveStatuses(ctx context.Context, sess session.Session, targets []user.ID) map[user.ID]CardState
}

func relationshipCacheKey(id user.ID) string {
	return "community:relationships:" + id.String()
}

// Relationships loads a user's pending and connected sets with one call each
// and caches the snapshot briefly.
type Relationships struct {
	client backend.Client
	cache  RelationshipCache
	ttl    time.Duration
	logger logger.Logger
}

func NewRelationships(client backend.Client, cache RelationshipCache, ttl time.Duration, log logger.Logger) *Relationships {
	if log == nil {
		log = logger.NewNop()
	}
	return &Relationships{client: client, cache: cache, ttl: ttl, logger: log}
}

func (r *Relationships) Snapshot(ctx context.Context, sess session.Session) (connection.Snapshot, error) {
	key := relationshipCacheKey(sess.UserID)
	if r.cache != nil && r.ttl > 0 {
		var cached connection.Snapshot
		if ok, err := r.cache.GetJSON(ctx, key, &cached); err == nil && ok {
			return cached, nil
		}
	}

	var pending, connected []user.User
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		pending, err = r.client.ListPending(gctx, sess.AuthToken, sess.UserID)
		return err
	})
	g.Go(func() error {
		var err error
		connected, err = r.client.ListConnections(gctx, sess.AuthToken, sess.UserID)
		return err
	})
	if err := g.Wait(); err != nil {
		return connection.Snapshot{}, err
	}

	snap := connection.NewSnapshot(pending, connected)
	if overlap := snap.Overlaps(); len(overlap) > 0 {
		r.logger.Debug("Relationships", "users both pending and connected, treating as pending", map[string]any{
			"user_id": sess.UserID, "ids": overlap,
		})
	}

	if r.cache != nil && r.ttl > 0 {
		if err := r.cache.SetJSON(ctx, key, snap, r.ttl); err != nil {
			r.logger.Warn("Relationships", "cache write failed", map[string]any{"error": err.Error()})
		}
	}
	return snap, nil
}

// Invalidate drops cached snapshots of the given users.
func (r *Relationships) Invalidate(ctx context.Context, ids ...user.ID) {
	if r.cache == nil || len(ids) == 0 {
		return
	}
	keys := make([]string, 0, len(ids))
	for _, id := range ids {
		if id.IsZero() {
			continue
		}
		keys = append(keys, relationshipCacheKey(id))
	}
	if err := r.cache.Delete(ctx, keys...); err != nil {
		r.logger.Warn("Relationships", "cache invalidation failed", map[string]any{"error": err.Error()})
	}
}

// ResolveStatuses resolves every target from a single snapshot. A failed
// snapshot leaves valid targets UNKNOWN with an inline error.
func (r *Relationships) ResolveStatuses(ctx context.Context, sess session.Session, targets []user.ID) map[user.ID]CardState {
	out := make(map[user.ID]CardState, len(targets))

	needLookup := false
	for _, t := range targets {
		if !connection.ValidPair(sess.UserID, t) {
			out[t] = CardState{Status: connection.StatusInvalid}
			continue
		}
		needLookup = true
	}
	if !needLookup {
		return out
	}

	snap, err := r.Snapshot(ctx, sess)
	if err != nil {
		msg := backend.MessageOf(err, MessageStatusFailed)
		for _, t := range targets {
			if _, done := out[t]; done {
				continue
			}
			out[t] = CardState{Status: connection.StatusUnknown, Error: msg}
		}
		return out
	}

	for _, t := range targets {
		if _, done := out[t]; done {
			continue
		}
		out[t] = CardState{Status: snap.Resolve(sess.UserID, t)}
	}
	return out
}

// PerCardResolver resolves each target with its own backend calls, at most
// workers at a time.
type PerCardResolver struct {
	cards   CardUsecase
	workers int
}

func NewPerCardResolver(cards CardUsecase, workers int) *PerCardResolver {
	return &PerCardResolver{cards: cards, workers: workers}
}

func (p *PerCardResolver) ResolveStatuses(ctx context.Context, sess session.Session, targets []user.ID) map[user.ID]CardState {
	var mu sync.Mutex
	out := make(map[user.ID]CardState, len(targets))

	var g errgroup.Group
	if p.workers > 0 {
		g.SetLimit(p.workers)
	}
	for _, t := range targets {
		target := t
		g.Go(func() error {
			if ctx.Err() != nil {
				return nil
			}
			card := p.cards.ResolveStatus(ctx, &sess, target)
			mu.Lock()
			out[target] = CardState{Status: card.Status, Error: card.Error}
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait()

	for _, t := range targets {
		if _, ok := out[t]; !ok {
			out[t] = CardState{Status: connection.StatusUnknown, Error: MessageStatusFailed}
		}
	}
	return out
}

var (
	_ StatusResolver = (*Relationships)(nil)
	_ StatusResolver = (*PerCardResolver)(nil)
)
