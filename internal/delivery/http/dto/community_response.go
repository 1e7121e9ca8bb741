package dto

import (
	"time"

	"skill-community/internal/domain/connection"
	"skill-community/internal/domain/user"
	"skill-community/internal/usecase"
)

type UserResponse struct {
	ID           string   `json:"id"`
	Username     string   `json:"username"`
	Role         string   `json:"role"`
	Bio          string   `json:"bio"`
	Skills       []string `json:"skills"`
	Timezone     string   `json:"timezone"`
	Availability string   `json:"availability"`
	ProfileURL   string   `json:"profile_url"`
}

type ActionsResponse struct {
	ConnectLabel   string `json:"connect_label"`
	ConnectEnabled bool   `json:"connect_enabled"`
	ChatLabel      string `json:"chat_label"`
	ChatEnabled    bool   `json:"chat_enabled"`
}

type CardResponse struct {
	User    *UserResponse   `json:"user,omitempty"`
	UserID  string          `json:"user_id"`
	Status  string          `json:"status"`
	Actions ActionsResponse `json:"actions"`
	Error   string          `json:"error,omitempty"`
}

type FilterResponse struct {
	Skills   []string `json:"skills"`
	Role     string   `json:"role"`
	Timezone string   `json:"timezone"`
}

type SkillPickerResponse struct {
	Query    string   `json:"query"`
	Visible  []string `json:"visible"`
	Overflow []string `json:"overflow"`
	Selected []string `json:"selected"`
}

type FilterOptionsResponse struct {
	Skills    []string `json:"skills"`
	Roles     []string `json:"roles"`
	Timezones []string `json:"timezones"`
}

type DirectoryResponse struct {
	State          string                `json:"state"`
	Message        string                `json:"message,omitempty"`
	SessionCleared bool                  `json:"session_cleared,omitempty"`
	CurrentUser    *UserResponse         `json:"current_user"`
	Filter         FilterResponse        `json:"filter"`
	SkillPicker    SkillPickerResponse   `json:"skill_picker"`
	FilterOptions  FilterOptionsResponse `json:"filter_options"`
	Cards          []CardResponse        `json:"cards"`
}

type SessionResponse struct {
	Token     string    `json:"token,omitempty"`
	UserID    string    `json:"user_id"`
	ExpiresAt time.Time `json:"expires_at,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

type ChatResponse struct {
	NavigateTo string `json:"navigate_to"`
}

func NewUserResponse(u user.User) UserResponse {
	return UserResponse{
		ID:           u.ID.String(),
		Username:     u.Username,
		Role:         u.Role,
		Bio:          u.Bio,
		Skills:       u.SkillNames(),
		Timezone:     u.Timezone,
		Availability: u.Availability,
		ProfileURL:   u.ProfileURL,
	}
}

func NewActionsResponse(a connection.Actions) ActionsResponse {
	return ActionsResponse{
		ConnectLabel:   a.ConnectLabel,
		ConnectEnabled: a.ConnectEnabled,
		ChatLabel:      a.ChatLabel,
		ChatEnabled:    a.ChatEnabled,
	}
}

func NewCardResponse(v usecase.CardView) CardResponse {
	return CardResponse{
		UserID:  v.TargetID.String(),
		Status:  string(v.Status),
		Actions: NewActionsResponse(v.Actions),
		Error:   v.Error,
	}
}

func NewSkillPickerResponse(p usecase.SkillPicker) SkillPickerResponse {
	return SkillPickerResponse{
		Query:    p.Query,
		Visible:  nonNil(p.Visible),
		Overflow: nonNil(p.Overflow),
		Selected: nonNil(p.Selected),
	}
}

func NewDirectoryResponse(v usecase.DirectoryView) DirectoryResponse {
	out := DirectoryResponse{
		State:          string(v.State),
		Message:        v.Message,
		SessionCleared: v.SessionCleared,
		Filter: FilterResponse{
			Skills:   nonNil(v.Filter.Skills),
			Role:     v.Filter.Role,
			Timezone: v.Filter.Timezone,
		},
		SkillPicker: NewSkillPickerResponse(v.SkillPicker),
		FilterOptions: FilterOptionsResponse{
			Skills:    nonNil(v.Options.Skills),
			Roles:     nonNil(v.Options.Roles),
			Timezones: nonNil(v.Options.Timezones),
		},
		Cards: make([]CardResponse, 0, len(v.Cards)),
	}
	if v.CurrentUser != nil {
		cu := NewUserResponse(*v.CurrentUser)
		out.CurrentUser = &cu
	}
	for _, card := range v.Cards {
		u := NewUserResponse(card.User)
		out.Cards = append(out.Cards, CardResponse{
			User:    &u,
			UserID:  u.ID,
			Status:  string(card.Status),
			Actions: NewActionsResponse(card.Actions),
			Error:   card.Error,
		})
	}
	return out
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
