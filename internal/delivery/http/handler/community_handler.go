package handler

import (
	"skill-community/internal/delivery/http/dto"
	"skill-community/internal/delivery/http/middleware"
	"skill-community/internal/domain/filter"
	"skill-community/internal/pkg/response"
	"skill-community/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type CommunityHandler struct {
	directory usecase.DirectoryUsecase
	skills    usecase.SkillUsecase
	cookie    middleware.SessionCookie
}

func NewCommunityHandler(directory usecase.DirectoryUsecase, skills usecase.SkillUsecase, cookie middleware.SessionCookie) *CommunityHandler {
	return &CommunityHandler{directory: directory, skills: skills, cookie: cookie}
}

func (h *CommunityHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Get("/", h.Directory)
	r.Get("/skills", h.SearchSkills)
}

// Directory renders the directory view model. Every state, including
// login_required and error, is a 200 carrying the view.
func (h *CommunityHandler) Directory(c fiber.Ctx) error {
	q := DirectoryQueryFromRequest(c)
	view := h.directory.Load(c.Context(), middleware.SessionFromCtx(c), q)

	if view.SessionCleared {
		h.cookie.Clear(c)
	}

	msg := view.Message
	if msg == "" {
		msg = response.MessageOK
	}
	return response.Success(c, fiber.StatusOK, msg, dto.NewDirectoryResponse(view))
}

func (h *CommunityHandler) SearchSkills(c fiber.Ctx) error {
	res := h.skills.Search(c.Query("q"))
	selected := filter.New(filter.ParseSkills(c.Query("selected")), "", "").Skills
	picker := usecase.SkillPicker{SearchResult: res, Selected: selected}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewSkillPickerResponse(picker))
}

// DirectoryQueryFromRequest reads skills (comma separated), role, timezone and
// skill_search from the query string.
func DirectoryQueryFromRequest(c fiber.Ctx) usecase.DirectoryQuery {
	return usecase.DirectoryQuery{
		Filter:      filter.New(filter.ParseSkills(c.Query("skills")), c.Query("role"), c.Query("timezone")),
		SkillSearch: c.Query("skill_search"),
	}
}
