package usecase

import (
	"context"
	"time"
)

// RelationshipCache is the JSON cache used for relationship snapshots.
type RelationshipCache interface {
	GetJSON(ctx context.Context, key string, out any) (bool, error)
	SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
}
