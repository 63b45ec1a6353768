// AngelaMos | 2026
// handler.go

package member

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/angelamos/repairdesk/internal/core"
	"github.com/angelamos/repairdesk/internal/middleware"
)

type Handler struct {
	service   *Service
	validator *validator.Validate
}

func NewHandler(service *Service) *Handler {
	return &Handler{
		service:   service,
		validator: validator.New(validator.WithRequiredStructEnabled()),
	}
}

func (h *Handler) RegisterRoutes(
	r chi.Router,
	authenticator func(http.Handler) http.Handler,
) {
	r.Route("/team-members", func(r chi.Router) {
		r.Use(authenticator)

		r.Get("/", h.List)
		r.Post("/", h.Create)
		r.Get("/{memberID}", h.Get)
		r.Put("/{memberID}", h.Update)
		r.Delete("/{memberID}", h.Delete)
	})
}

func targetUserID(r *http.Request) string {
	return r.URL.Query().Get("user_id")
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	requesterID := middleware.GetUserID(r.Context())

	members, err := h.service.List(r.Context(), requesterID, targetUserID(r))
	if err != nil {
		writeMemberError(w, err)
		return
	}

	core.OK(w, ToMemberResponseList(members))
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	requesterID := middleware.GetUserID(r.Context())
	memberID := chi.URLParam(r, "memberID")

	member, err := h.service.Get(
		r.Context(),
		requesterID,
		targetUserID(r),
		memberID,
	)
	if err != nil {
		writeMemberError(w, err)
		return
	}

	core.OK(w, ToMemberResponse(member))
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	requesterID := middleware.GetUserID(r.Context())

	var req CreateMemberRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	member, password, err := h.service.Create(r.Context(), requesterID, req)
	if err != nil {
		writeMemberError(w, err)
		return
	}

	core.Created(w, ToCreatedMemberResponse(member, password))
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	requesterID := middleware.GetUserID(r.Context())
	memberID := chi.URLParam(r, "memberID")

	var req UpdateMemberRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	member, err := h.service.Update(
		r.Context(),
		requesterID,
		targetUserID(r),
		memberID,
		req,
	)
	if err != nil {
		writeMemberError(w, err)
		return
	}

	core.OK(w, ToMemberResponse(member))
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	requesterID := middleware.GetUserID(r.Context())
	memberID := chi.URLParam(r, "memberID")

	err := h.service.Delete(
		r.Context(),
		requesterID,
		targetUserID(r),
		memberID,
	)
	if err != nil {
		writeMemberError(w, err)
		return
	}

	core.NoContent(w)
}

func writeMemberError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, core.ErrInvalidTenantID):
		core.JSONError(w, core.InvalidTenantError())
	case errors.Is(err, core.ErrForbidden):
		core.Forbidden(w, "access to this tenant is denied")
	case errors.Is(err, core.ErrNotFound):
		core.NotFound(w, "team member")
	case errors.Is(err, core.ErrDuplicateKey):
		core.JSONError(w, core.DuplicateError("team member"))
	case errors.Is(err, core.ErrInvalidInput):
		core.BadRequest(w, err.Error())
	case errors.Is(err, core.ErrProvisioning):
		core.JSONError(w, core.ProvisioningFailedError())
	default:
		core.InternalServerError(w, err)
	}
}
