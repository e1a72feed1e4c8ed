package handler

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/hagiodex/hagiodex/internal/handler/dto"
	"github.com/hagiodex/hagiodex/internal/middleware"
	"github.com/hagiodex/hagiodex/internal/service"
)

// SaintHandler handles HTTP requests for the saint catalog.
type SaintHandler struct {
	svc    *service.SaintService
	logger *slog.Logger
}

// NewSaintHandler creates a new SaintHandler.
func NewSaintHandler(svc *service.SaintService, logger *slog.Logger) *SaintHandler {
	return &SaintHandler{
		svc:    svc,
		logger: logger,
	}
}

// List handles GET /saints.
func (h *SaintHandler) List(w http.ResponseWriter, r *http.Request) {
	saints, err := h.svc.ListSaints(r.Context())
	if err != nil {
		handleServiceError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, dto.ToSaintListResponse(saints))
}

// Get handles GET /saints/{id}, where id may also be a name.
func (h *SaintHandler) Get(w http.ResponseWriter, r *http.Request) {
	saint, err := h.svc.GetSaint(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		handleServiceError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, dto.ToSaintResponse(saint))
}

// Create handles POST /saints.
func (h *SaintHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.SaintRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	saint, err := h.svc.CreateSaint(r.Context(), toSaintInput(req))
	if err != nil {
		handleServiceError(w, h.logger, err)
		return
	}

	h.logger.Info("saint_created", "saint_id", saint.ID)

	writeJSON(w, http.StatusCreated, dto.ToSaintResponse(saint))
}

// Update handles PATCH /saints/{id}.
func (h *SaintHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := middleware.ParseID(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_ID", "Invalid id")
		return
	}

	var req dto.SaintRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	saint, err := h.svc.UpdateSaint(r.Context(), id, toSaintInput(req))
	if err != nil {
		handleServiceError(w, h.logger, err)
		return
	}

	h.logger.Info("saint_updated", "saint_id", saint.ID)

	writeJSON(w, http.StatusOK, dto.ToSaintResponse(saint))
}

// Delete handles DELETE /saints/{id}.
func (h *SaintHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := middleware.ParseID(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_ID", "Invalid id")
		return
	}

	if err := h.svc.DeleteSaint(r.Context(), id); err != nil {
		handleServiceError(w, h.logger, err)
		return
	}

	h.logger.Info("saint_deleted", "saint_id", id)

	w.WriteHeader(http.StatusNoContent)
}

func toSaintInput(req dto.SaintRequest) service.SaintInput {
	return service.SaintInput{
		Name:       req.Name,
		Patronage:  req.Patronage,
		FeastDay:   req.FeastDay,
		Veneration: req.Veneration,
		Birthplace: req.Birthplace,
		BirthDate:  req.BirthDate,
		DeathDate:  req.DeathDate,
		History:    req.History,
		Attributes: req.Attributes,
	}
}
