package usecase

import (
	"context"

	"skill-community/internal/domain/connection"
	"skill-community/internal/domain/session"
	"skill-community/internal/domain/user"
	"skill-community/internal/infrastructure/backend"
	"skill-community/internal/pkg/logger"
)

// CardView is one profile card's relationship state and controls.
type CardView struct {
	TargetID user.ID
	Status   connection.Status
	Actions  connection.Actions
	Error    string
}

// RelationshipNotifier is told about relationship changes so open directory
// streams of both users can refresh.
type RelationshipNotifier interface {
	NotifyRelationshipChanged(a, b user.ID)
}

type CardUsecase interface {
	ResolveStatus(ctx context.Context, sess *session.Session, target user.ID) CardView
	Connect(ctx context.Context, sess *session.Session, target user.ID) (CardView, error)
	ChatRoute(ctx context.Context, sess *session.Session, target user.ID) (string, CardView, error)
}

type Card struct {
	client   backend.Client
	rels     *Relationships
	notifier RelationshipNotifier
	logger   logger.Logger
}

func NewCardUsecase(client backend.Client, rels *Relationships, notifier RelationshipNotifier, log logger.Logger) *Card {
	if log == nil {
		log = logger.NewNop()
	}
	return &Card{client: client, rels: rels, notifier: notifier, logger: log}
}

func newCardView(current, target user.ID, status connection.Status, errMsg string) CardView {
	return CardView{
		TargetID: target,
		Status:   status,
		Actions:  connection.ActionsFor(status, current, target),
		Error:    errMsg,
	}
}

// ResolveStatus checks the pending list first and only falls through to the
// connections list when target is not pending.
func (u *Card) ResolveStatus(ctx context.Context, sess *session.Session, target user.ID) CardView {
	var current user.ID
	if sess != nil {
		current = sess.UserID
	}
	if sess == nil || !connection.ValidPair(current, target) {
		return newCardView(current, target, connection.StatusInvalid, "")
	}

	pending, err := u.client.ListPending(ctx, sess.AuthToken, current)
	if err != nil {
		return newCardView(current, target, connection.StatusUnknown, backend.MessageOf(err, MessageStatusFailed))
	}
	if user.ContainsID(pending, target) {
		return newCardView(current, target, connection.StatusPending, "")
	}

	connected, err := u.client.ListConnections(ctx, sess.AuthToken, current)
	if err != nil {
		return newCardView(current, target, connection.StatusUnknown, backend.MessageOf(err, MessageStatusFailed))
	}
	if user.ContainsID(connected, target) {
		return newCardView(current, target, connection.StatusConnected, "")
	}
	return newCardView(current, target, connection.StatusNone, "")
}

// Connect sends a connection request. On success the card moves to PENDING;
// on any failure it stays NONE and carries the error inline.
func (u *Card) Connect(ctx context.Context, sess *session.Session, target user.ID) (CardView, error) {
	if sess == nil || !sess.Valid() {
		return CardView{}, ErrNoSession
	}
	current := sess.UserID
	if !connection.ValidPair(current, target) {
		return newCardView(current, target, connection.StatusInvalid, MessageInvalidConnection), ErrInvalidTarget
	}

	res, err := u.client.Connect(ctx, sess.AuthToken, current, target)
	if err != nil {
		u.logger.Warn("Card", "connect failed", map[string]any{"sender": current, "receiver": target, "error": err.Error()})
		return newCardView(current, target, connection.StatusNone, backend.MessageOf(err, MessageConnectFailed)), nil
	}
	if !res.Success {
		msg := res.Message
		if msg == "" {
			msg = MessageConnectFailed
		}
		return newCardView(current, target, connection.StatusNone, msg), nil
	}

	if u.rels != nil {
		u.rels.Invalidate(ctx, current, target)
	}
	if u.notifier != nil {
		u.notifier.NotifyRelationshipChanged(current, target)
	}
	u.logger.Info("Card", "connection request sent", map[string]any{"sender": current, "receiver": target})
	return newCardView(current, target, connection.StatusPending, ""), nil
}

// ChatRoute returns the chat path for target. The id must be numeric and the
// target must be a connection of the session user; otherwise the returned card
// carries the inline error.
func (u *Card) ChatRoute(ctx context.Context, sess *session.Session, target user.ID) (string, CardView, error) {
	if sess == nil || !sess.Valid() {
		return "", CardView{}, ErrNoSession
	}
	current := sess.UserID
	if !target.IsNumeric() {
		return "", newCardView(current, target, connection.StatusInvalid, MessageInvalidUserID), ErrInvalidUserID
	}
	if !connection.ValidPair(current, target) {
		return "", newCardView(current, target, connection.StatusInvalid, MessageInvalidConnection), ErrInvalidTarget
	}

	card := u.ResolveStatus(ctx, sess, target)
	if card.Status != connection.StatusConnected {
		if card.Error == "" {
			card.Error = MessageChatUnavailable
		}
		return "", card, ErrChatUnavailable
	}
	return "/chat/" + target.String(), card, nil
}

var _ CardUsecase = (*Card)(nil)
