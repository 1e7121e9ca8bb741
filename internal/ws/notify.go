package ws

import (
	"encoding/json"
	"time"

	"skill-community/internal/delivery/http/dto"
	"skill-community/internal/domain/user"
	"skill-community/internal/usecase"
)

const (
	EventLoading             = "loading"
	EventDirectory           = "directory"
	EventRelationshipChanged = "relationship_changed"
	EventError               = "error"
)

type LoadingEvent struct {
	Type string `json:"type"`
	Seq  uint64 `json:"seq"`
}

type DirectoryEvent struct {
	Type string                `json:"type"`
	Seq  uint64                `json:"seq"`
	Data dto.DirectoryResponse `json:"data"`
}

type RelationshipChangedEvent struct {
	Type      string   `json:"type"`
	UserIDs   []string `json:"user_ids"`
	Timestamp string   `json:"timestamp"`
}

type ErrorEvent struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

// NotifyRelationshipChanged pushes a relationship_changed event to both users'
// sockets and makes each of them reload its directory.
func (h *Hub) NotifyRelationshipChanged(a, b user.ID) {
	if h == nil {
		return
	}
	evt := RelationshipChangedEvent{
		Type:      EventRelationshipChanged,
		UserIDs:   []string{a.String(), b.String()},
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}
	msg, err := json.Marshal(evt)
	if err != nil {
		return
	}
	h.SendToUser(a, msg, true)
	if b != a {
		h.SendToUser(b, msg, true)
	}
}

func encodePipelineEvent(ev usecase.PipelineEvent) ([]byte, error) {
	if ev.Type == usecase.PipelineDirectory && ev.View != nil {
		return json.Marshal(DirectoryEvent{Type: EventDirectory, Seq: ev.Seq, Data: dto.NewDirectoryResponse(*ev.View)})
	}
	return json.Marshal(LoadingEvent{Type: EventLoading, Seq: ev.Seq})
}

func encodeError(message string) []byte {
	b, _ := json.Marshal(ErrorEvent{Type: EventError, Message: message})
	return b
}

var _ usecase.RelationshipNotifier = (*Hub)(nil)
