// AngelaMos | 2026
// handler.go

package ticket

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
	r.Route("/tickets", func(r chi.Router) {
		r.Use(authenticator)

		r.Get("/", h.List)
		r.Post("/", h.Create)
		r.Get("/{ticketID}", h.Get)
		r.Put("/{ticketID}", h.Update)
		r.Put("/{ticketID}/status", h.UpdateStatus)
		r.Delete("/{ticketID}", h.Delete)
	})
}

// targetUserID returns whose rows the request addresses: the optional
// user_id query parameter, or the authenticated user. The tenant guard
// decides whether the requester may actually see that user's tenant.
func targetUserID(r *http.Request) string {
	return r.URL.Query().Get("user_id")
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	requesterID := middleware.GetUserID(r.Context())

	tickets, err := h.service.List(r.Context(), requesterID, targetUserID(r))
	if err != nil {
		writeTicketError(w, err)
		return
	}

	core.OK(w, ToTicketResponseList(tickets))
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	requesterID := middleware.GetUserID(r.Context())
	ticketID := chi.URLParam(r, "ticketID")

	ticket, err := h.service.Get(
		r.Context(),
		requesterID,
		targetUserID(r),
		ticketID,
	)
	if err != nil {
		writeTicketError(w, err)
		return
	}

	core.OK(w, ToTicketResponse(ticket))
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	requesterID := middleware.GetUserID(r.Context())

	var req CreateTicketRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	ticket, err := h.service.Create(r.Context(), requesterID, req)
	if err != nil {
		writeTicketError(w, err)
		return
	}

	core.Created(w, ToTicketResponse(ticket))
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	requesterID := middleware.GetUserID(r.Context())
	ticketID := chi.URLParam(r, "ticketID")

	var req UpdateTicketRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	ticket, err := h.service.Update(
		r.Context(),
		requesterID,
		targetUserID(r),
		ticketID,
		req,
	)
	if err != nil {
		writeTicketError(w, err)
		return
	}

	core.OK(w, ToTicketResponse(ticket))
}

func (h *Handler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	requesterID := middleware.GetUserID(r.Context())
	ticketID := chi.URLParam(r, "ticketID")

	var req UpdateTicketStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	ticket, err := h.service.UpdateStatus(
		r.Context(),
		requesterID,
		targetUserID(r),
		ticketID,
		req.Status,
	)
	if err != nil {
		writeTicketError(w, err)
		return
	}

	core.OK(w, ToTicketResponse(ticket))
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	requesterID := middleware.GetUserID(r.Context())
	ticketID := chi.URLParam(r, "ticketID")

	err := h.service.Delete(
		r.Context(),
		requesterID,
		targetUserID(r),
		ticketID,
	)
	if err != nil {
		writeTicketError(w, err)
		return
	}

	core.NoContent(w)
}

// Denials are always explicit: a 403 body rather than an empty list, so a
// blocked cross-tenant read is distinguishable from "no data".
func writeTicketError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, core.ErrInvalidTenantID):
		core.JSONError(w, core.InvalidTenantError())
	case errors.Is(err, core.ErrForbidden):
		core.Forbidden(w, "access to this tenant is denied")
	case errors.Is(err, core.ErrNotFound):
		core.NotFound(w, "ticket")
	case errors.Is(err, core.ErrInvalidInput):
		core.BadRequest(w, err.Error())
	case errors.Is(err, core.ErrProvisioning):
		core.JSONError(w, core.ProvisioningFailedError())
	default:
		core.InternalServerError(w, err)
	}
}
