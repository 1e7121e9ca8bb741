package usecase

import (
	"context"
	"errors"
	"testing"

	"skill-community/internal/domain/connection"
	"skill-community/internal/domain/session"
	"skill-community/internal/domain/user"
	"skill-community/internal/infrastructure/backend"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testSession() *session.Session {
	return &session.Session{ID: "sid", UserID: "1", AuthToken: "tok"}
}

func TestCard_ResolveStatus_SelfIsInvalidWithoutCalls(t *testing.T) {
	fb := &fakeBackend{}
	uc := NewCardUsecase(fb, nil, nil, nil)

	card := uc.ResolveStatus(context.Background(), testSession(), "1")
	assert.Equal(t, connection.StatusInvalid, card.Status)
	assert.False(t, card.Actions.ConnectEnabled)
	assert.False(t, card.Actions.ChatEnabled)
	assert.Empty(t, fb.Calls())
}

func TestCard_ResolveStatus_NoSessionIsInvalid(t *testing.T) {
	fb := &fakeBackend{}
	uc := NewCardUsecase(fb, nil, nil, nil)

	card := uc.ResolveStatus(context.Background(), nil, "2")
	assert.Equal(t, connection.StatusInvalid, card.Status)
	assert.Empty(t, fb.Calls())
}

func TestCard_ResolveStatus_PendingTakesPrecedence(t *testing.T) {
	fb := &fakeBackend{
		pending:     []user.User{{ID: "2"}},
		connections: []user.User{{ID: "2"}},
	}
	uc := NewCardUsecase(fb, nil, nil, nil)

	card := uc.ResolveStatus(context.Background(), testSession(), "2")
	assert.Equal(t, connection.StatusPending, card.Status)
	assert.Equal(t, connection.LabelRequestSent, card.Actions.ConnectLabel)
	assert.Equal(t, []string{"ListPending"}, fb.Calls())
}

func TestCard_ResolveStatus_ConnectedAndNone(t *testing.T) {
	fb := &fakeBackend{connections: []user.User{{ID: "3"}}}
	uc := NewCardUsecase(fb, nil, nil, nil)

	connected := uc.ResolveStatus(context.Background(), testSession(), "3")
	assert.Equal(t, connection.StatusConnected, connected.Status)
	assert.True(t, connected.Actions.ChatEnabled)
	assert.False(t, connected.Actions.ConnectEnabled)

	none := uc.ResolveStatus(context.Background(), testSession(), "4")
	assert.Equal(t, connection.StatusNone, none.Status)
	assert.True(t, none.Actions.ConnectEnabled)
	assert.False(t, none.Actions.ChatEnabled)
}

func TestCard_ResolveStatus_CheckFailure(t *testing.T) {
	fb := &fakeBackend{pendingErr: errors.New("network down")}
	uc := NewCardUsecase(fb, nil, nil, nil)

	card := uc.ResolveStatus(context.Background(), testSession(), "2")
	assert.Equal(t, connection.StatusUnknown, card.Status)
	assert.Equal(t, MessageStatusFailed, card.Error)
	assert.False(t, card.Actions.ConnectEnabled)
	assert.False(t, card.Actions.ChatEnabled)

	fb = &fakeBackend{connectionErr: &backend.APIError{StatusCode: 500, Message: "graph offline"}}
	card = NewCardUsecase(fb, nil, nil, nil).ResolveStatus(context.Background(), testSession(), "2")
	assert.Equal(t, connection.StatusUnknown, card.Status)
	assert.Equal(t, "graph offline", card.Error)
}

func TestCard_Connect_SuccessMovesToPending(t *testing.T) {
	fb := &fakeBackend{connectRes: backend.ConnectResult{Success: true}}
	n := &fakeNotifier{}
	uc := NewCardUsecase(fb, nil, n, nil)

	card, err := uc.Connect(context.Background(), testSession(), "2")
	require.NoError(t, err)
	assert.Equal(t, connection.StatusPending, card.Status)
	assert.Equal(t, "Request Sent", card.Actions.ConnectLabel)
	assert.False(t, card.Actions.ConnectEnabled)
	assert.Empty(t, card.Error)
	assert.Equal(t, [][2]user.ID{{"1", "2"}}, n.pairs)
}

func TestCard_Connect_FailureKeepsNone(t *testing.T) {
	tests := []struct {
		name    string
		res     backend.ConnectResult
		err     error
		wantMsg string
	}{
		{name: "success false", res: backend.ConnectResult{Success: false}, wantMsg: MessageConnectFailed},
		{name: "success false with message", res: backend.ConnectResult{Message: "Request already exists"}, wantMsg: "Request already exists"},
		{name: "transport error", err: errors.New("dial tcp"), wantMsg: MessageConnectFailed},
		{name: "backend message", err: &backend.APIError{StatusCode: 400, Message: "Cannot connect"}, wantMsg: "Cannot connect"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fb := &fakeBackend{connectRes: tt.res, connectErr: tt.err}
			n := &fakeNotifier{}
			card, err := NewCardUsecase(fb, nil, n, nil).Connect(context.Background(), testSession(), "2")
			require.NoError(t, err)
			assert.Equal(t, connection.StatusNone, card.Status)
			assert.Equal(t, tt.wantMsg, card.Error)
			assert.Empty(t, n.pairs)
		})
	}
}

func TestCard_Connect_Guards(t *testing.T) {
	fb := &fakeBackend{}
	uc := NewCardUsecase(fb, nil, nil, nil)

	_, err := uc.Connect(context.Background(), nil, "2")
	assert.ErrorIs(t, err, ErrNoSession)

	card, err := uc.Connect(context.Background(), testSession(), "1")
	assert.ErrorIs(t, err, ErrInvalidTarget)
	assert.Equal(t, connection.StatusInvalid, card.Status)
	assert.Empty(t, fb.Calls())
}

func TestCard_ChatRoute(t *testing.T) {
	fb := &fakeBackend{pending: []user.User{{ID: "2"}}, connections: []user.User{{ID: "3"}}}
	uc := NewCardUsecase(fb, nil, nil, nil)
	ctx := context.Background()

	route, card, err := uc.ChatRoute(ctx, testSession(), "3")
	require.NoError(t, err)
	assert.Equal(t, "/chat/3", route)
	assert.Equal(t, connection.StatusConnected, card.Status)

	tests := []struct {
		name       string
		target     user.ID
		wantErr    error
		wantStatus connection.Status
		wantMsg    string
	}{
		{name: "non numeric id", target: "abc", wantErr: ErrInvalidUserID, wantStatus: connection.StatusInvalid, wantMsg: MessageInvalidUserID},
		{name: "own card", target: "1", wantErr: ErrInvalidTarget, wantStatus: connection.StatusInvalid, wantMsg: MessageInvalidConnection},
		{name: "pending user", target: "2", wantErr: ErrChatUnavailable, wantStatus: connection.StatusPending, wantMsg: MessageChatUnavailable},
		{name: "unconnected user", target: "4", wantErr: ErrChatUnavailable, wantStatus: connection.StatusNone, wantMsg: MessageChatUnavailable},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			route, card, err := uc.ChatRoute(ctx, testSession(), tt.target)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Empty(t, route)
			assert.Equal(t, tt.wantStatus, card.Status)
			assert.Equal(t, tt.wantMsg, card.Error)
			assert.False(t, card.Actions.ChatEnabled)
		})
	}
}

func TestCard_ChatRoute_RequiresSession(t *testing.T) {
	fb := &fakeBackend{connections: []user.User{{ID: "3"}}}

	route, _, err := NewCardUsecase(fb, nil, nil, nil).ChatRoute(context.Background(), nil, "3")
	assert.ErrorIs(t, err, ErrNoSession)
	assert.Empty(t, route)
	assert.Empty(t, fb.Calls())
}

func TestCard_ChatRoute_StatusFailureStaysInline(t *testing.T) {
	fb := &fakeBackend{pendingErr: errors.New("down")}

	_, card, err := NewCardUsecase(fb, nil, nil, nil).ChatRoute(context.Background(), testSession(), "3")
	assert.ErrorIs(t, err, ErrChatUnavailable)
	assert.Equal(t, connection.StatusUnknown, card.Status)
	assert.Equal(t, MessageStatusFailed, card.Error)
}
