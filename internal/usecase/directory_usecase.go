package usecase

import (
	"context"
	"errors"

	"skill-community/internal/domain/connection"
	"skill-community/internal/domain/filter"
	"skill-community/internal/domain/session"
	"skill-community/internal/domain/skill"
	"skill-community/internal/domain/user"
	"skill-community/internal/infrastructure/backend"
	"skill-community/internal/pkg/logger"
)

type DirectoryState string

const (
	DirectoryLoginRequired DirectoryState = "login_required"
	DirectoryError         DirectoryState = "error"
	DirectoryResults       DirectoryState = "results"
)

type DirectoryQuery struct {
	Filter      filter.State
	SkillSearch string
}

type DirectoryCard struct {
	User    user.User
	Status  connection.Status
	Actions connection.Actions
	Error   string
}

type SkillPicker struct {
	skill.SearchResult
	Selected []string
}

type FilterOptions struct {
	Skills    []string
	Roles     []string
	Timezones []string
}

type DirectoryView struct {
	State          DirectoryState
	Message        string
	SessionCleared bool
	CurrentUser    *user.User
	Filter         filter.State
	SkillPicker    SkillPicker
	Options        FilterOptions
	Cards          []DirectoryCard
}

type DirectoryUsecase interface {
	Load(ctx context.Context, sess *session.Session, q DirectoryQuery) DirectoryView
}

type Directory struct {
	client   backend.Client
	sessions SessionUsecase
	skills   SkillUsecase
	statuses StatusResolver
	logger   logger.Logger
}

func NewDirectoryUsecase(client backend.Client, sessions SessionUsecase, skills SkillUsecase, statuses StatusResolver, log logger.Logger) *Directory {
	if log == nil {
		log = logger.NewNop()
	}
	return &Directory{client: client, sessions: sessions, skills: skills, statuses: statuses, logger: log}
}

// Load builds the directory for sess. Without a session it makes no backend
// calls. A failed current-user lookup expires the session.
func (u *Directory) Load(ctx context.Context, sess *session.Session, q DirectoryQuery) DirectoryView {
	view := DirectoryView{
		Filter:      q.Filter,
		SkillPicker: u.skillPicker(q),
		Options:     u.options(),
		Cards:       []DirectoryCard{},
	}

	if sess == nil || !sess.Valid() {
		view.State = DirectoryLoginRequired
		view.Message = MessageLoginRequired
		return view
	}

	me, err := u.client.GetUser(ctx, sess.AuthToken, sess.UserID)
	if err != nil {
		if ctx.Err() != nil {
			view.State = DirectoryError
			view.Message = ctx.Err().Error()
			return view
		}
		u.logger.Warn("Directory", "current user lookup failed, expiring session", map[string]any{
			"user_id": sess.UserID, "error": err.Error(),
		})
		view.State = DirectoryError
		view.Message = backend.MessageOf(err, MessageSessionExpired)
		if u.sessions != nil {
			// keep the cookie when the stored session could not be removed
			if u.sessions.Expire(ctx, *sess, err.Error()) != nil {
				return view
			}
		}
		view.SessionCleared = true
		return view
	}
	view.CurrentUser = &me

	var users []user.User
	if q.Filter.Active() {
		users, err = u.client.FilterUsers(ctx, sess.AuthToken, q.Filter)
	} else {
		users, err = u.client.ListUsers(ctx, sess.AuthToken)
	}
	if err != nil {
		view.State = DirectoryError
		if errors.Is(err, backend.ErrUnexpectedResponse) {
			view.Message = MessageUnexpected
		} else {
			view.Message = backend.MessageOf(err, MessageUsersFailed)
		}
		u.logger.Warn("Directory", "user list failed", map[string]any{"filtered": q.Filter.Active(), "error": err.Error()})
		return view
	}

	view.State = DirectoryResults
	view.Cards = u.cards(ctx, *sess, users)
	return view
}

func (u *Directory) cards(ctx context.Context, sess session.Session, users []user.User) []DirectoryCard {
	targets := make([]user.ID, 0, len(users))
	for _, usr := range users {
		targets = append(targets, usr.ID)
	}

	var states map[user.ID]CardState
	if u.statuses != nil {
		states = u.statuses.ResolveStatuses(ctx, sess, targets)
	}

	out := make([]DirectoryCard, 0, len(users))
	for _, usr := range users {
		st, ok := states[usr.ID]
		if !ok {
			st = CardState{Status: connection.StatusUnknown}
			if !connection.ValidPair(sess.UserID, usr.ID) {
				st.Status = connection.StatusInvalid
			}
		}
		out = append(out, DirectoryCard{
			User:    usr,
			Status:  st.Status,
			Actions: connection.ActionsFor(st.Status, sess.UserID, usr.ID),
			Error:   st.Error,
		})
	}
	return out
}

func (u *Directory) skillPicker(q DirectoryQuery) SkillPicker {
	var res skill.SearchResult
	if u.skills != nil {
		res = u.skills.Search(q.SkillSearch)
	} else {
		res = skill.NewVocabulary(nil).Search(q.SkillSearch)
	}
	selected := append([]string{}, q.Filter.Skills...)
	return SkillPicker{SearchResult: res, Selected: selected}
}

func (u *Directory) options() FilterOptions {
	var names []string
	if u.skills != nil {
		names = u.skills.Vocabulary().Names()
	} else {
		names = skill.NewVocabulary(nil).Names()
	}
	return FilterOptions{
		Skills:    names,
		Roles:     append([]string(nil), filter.DefaultRoles...),
		Timezones: append([]string(nil), filter.DefaultTimezones...),
	}
}

var _ DirectoryUsecase = (*Directory)(nil)
