package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"skill-community/internal/domain/connection"
	"skill-community/internal/domain/session"
	"skill-community/internal/domain/user"
	"skill-community/internal/infrastructure/cache"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCache(t *testing.T) *cache.Redis {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return cache.NewRedisFromClient(client, nil)
}

func TestRelationships_ResolveStatusesUsesOneSnapshot(t *testing.T) {
	fb := &fakeBackend{
		pending:     []user.User{{ID: "2"}, {ID: "4"}},
		connections: []user.User{{ID: "3"}, {ID: "4"}},
	}
	rels := NewRelationships(fb, nil, 0, nil)
	sess := session.Session{ID: "sid", UserID: "1", AuthToken: "tok"}

	got := rels.ResolveStatuses(context.Background(), sess, []user.ID{"1", "2", "3", "4", "5"})

	assert.Equal(t, connection.StatusInvalid, got["1"].Status)
	assert.Equal(t, connection.StatusPending, got["2"].Status)
	assert.Equal(t, connection.StatusConnected, got["3"].Status)
	assert.Equal(t, connection.StatusPending, got["4"].Status)
	assert.Equal(t, connection.StatusNone, got["5"].Status)
	assert.Equal(t, 1, fb.count("ListPending"))
	assert.Equal(t, 1, fb.count("ListConnections"))
}

func TestRelationships_OnlySelfSkipsLookup(t *testing.T) {
	fb := &fakeBackend{}
	rels := NewRelationships(fb, nil, 0, nil)

	got := rels.ResolveStatuses(context.Background(), session.Session{UserID: "1"}, []user.ID{"1"})
	assert.Equal(t, connection.StatusInvalid, got["1"].Status)
	assert.Empty(t, fb.Calls())
}

func TestRelationships_FailureLeavesCardsUnknown(t *testing.T) {
	fb := &fakeBackend{connectionErr: errors.New("boom")}
	rels := NewRelationships(fb, nil, 0, nil)

	got := rels.ResolveStatuses(context.Background(), session.Session{UserID: "1"}, []user.ID{"1", "2"})
	assert.Equal(t, connection.StatusInvalid, got["1"].Status)
	assert.Equal(t, connection.StatusUnknown, got["2"].Status)
	assert.Equal(t, MessageStatusFailed, got["2"].Error)
}

func TestRelationships_CachesAndInvalidates(t *testing.T) {
	fb := &fakeBackend{pending: []user.User{{ID: "2"}}}
	rels := NewRelationships(fb, newTestCache(t), time.Minute, nil)
	sess := session.Session{UserID: "1", AuthToken: "tok"}
	ctx := context.Background()

	_, err := rels.Snapshot(ctx, sess)
	require.NoError(t, err)
	snap, err := rels.Snapshot(ctx, sess)
	require.NoError(t, err)
	assert.Equal(t, []user.ID{"2"}, snap.Pending)
	assert.Equal(t, 1, fb.count("ListPending"))

	rels.Invalidate(ctx, "1")
	_, err = rels.Snapshot(ctx, sess)
	require.NoError(t, err)
	assert.Equal(t, 2, fb.count("ListPending"))
}

func TestPerCardResolver(t *testing.T) {
	fb := &fakeBackend{pending: []user.User{{ID: "2"}}, connections: []user.User{{ID: "3"}}}
	resolver := NewPerCardResolver(NewCardUsecase(fb, nil, nil, nil), 2)
	sess := session.Session{ID: "sid", UserID: "1", AuthToken: "tok"}

	got := resolver.ResolveStatuses(context.Background(), sess, []user.ID{"1", "2", "3", "4"})
	assert.Equal(t, connection.StatusInvalid, got["1"].Status)
	assert.Equal(t, connection.StatusPending, got["2"].Status)
	assert.Equal(t, connection.StatusConnected, got["3"].Status)
	assert.Equal(t, connection.StatusNone, got["4"].Status)
	assert.Equal(t, 3, fb.count("ListPending"))
	assert.Equal(t, 2, fb.count("ListConnections"))
}

func TestPerCardResolver_CanceledLeavesCardsUnknown(t *testing.T) {
	fb := &fakeBackend{connections: []user.User{{ID: "3"}}}
	resolver := NewPerCardResolver(NewCardUsecase(fb, nil, nil, nil), 1)
	sess := session.Session{ID: "sid", UserID: "1", AuthToken: "tok"}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	got := resolver.ResolveStatuses(ctx, sess, []user.ID{"2", "3"})
	require.Len(t, got, 2)
	for _, id := range []user.ID{"2", "3"} {
		assert.Equal(t, connection.StatusUnknown, got[id].Status)
		assert.Equal(t, MessageStatusFailed, got[id].Error)
	}
	assert.Empty(t, fb.Calls())
}
