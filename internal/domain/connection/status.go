package connection

import "skill-community/internal/domain/user"

// Status is the relationship between the session user and one target user.
type Status string

const (
	StatusUnknown   Status = "UNKNOWN"
	StatusNone      Status = "NONE"
	StatusPending   Status = "PENDING"
	StatusConnected Status = "CONNECTED"
	StatusInvalid   Status = "INVALID"
)

const (
	LabelConnect     = "Connect"
	LabelRequestSent = "Request Sent"
	LabelConnected   = "Connected"
	LabelChecking    = "Checking..."
	LabelChat        = "Chat"
)

// ValidPair reports whether a card for target may carry actions for current.
func ValidPair(current, target user.ID) bool {
	return !current.IsZero() && !target.IsZero() && current != target
}

// Snapshot is the pending and connected id sets of one user, as returned by
// the backend at a point in time.
type Snapshot struct {
	Pending   []user.ID `json:"pending"`
	Connected []user.ID `json:"connected"`
}

func NewSnapshot(pending, connected []user.User) Snapshot {
	return Snapshot{Pending: user.IDs(pending), Connected: user.IDs(connected)}
}

// Resolve checks pending before connected; a target present in both lists
// resolves to StatusPending.
func (s Snapshot) Resolve(current, target user.ID) Status {
	if !ValidPair(current, target) {
		return StatusInvalid
	}
	if containsID(s.Pending, target) {
		return StatusPending
	}
	if containsID(s.Connected, target) {
		return StatusConnected
	}
	return StatusNone
}

// Overlaps returns ids present in both lists.
func (s Snapshot) Overlaps() []user.ID {
	var out []user.ID
	for _, id := range s.Pending {
		if containsID(s.Connected, id) {
			out = append(out, id)
		}
	}
	return out
}

func containsID(ids []user.ID, id user.ID) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}

type Actions struct {
	ConnectLabel   string `json:"connect_label"`
	ConnectEnabled bool   `json:"connect_enabled"`
	ChatLabel      string `json:"chat_label"`
	ChatEnabled    bool   `json:"chat_enabled"`
}

// ActionsFor derives the card controls. Connect is enabled only for NONE with a
// valid id pair; chat only for CONNECTED.
func ActionsFor(status Status, current, target user.ID) Actions {
	valid := ValidPair(current, target)
	a := Actions{ChatLabel: LabelChat}

	switch status {
	case StatusPending:
		a.ConnectLabel = LabelRequestSent
	case StatusConnected:
		a.ConnectLabel = LabelConnected
	case StatusUnknown:
		a.ConnectLabel = LabelChecking
	default:
		a.ConnectLabel = LabelConnect
	}

	a.ConnectEnabled = valid && status == StatusNone
	a.ChatEnabled = valid && status == StatusConnected
	return a
}
