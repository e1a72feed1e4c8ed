package handler

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/hagiodex/hagiodex/internal/handler/dto"
	"github.com/hagiodex/hagiodex/internal/service"
)

// CreatureHandler handles HTTP requests for the creature catalog.
type CreatureHandler struct {
	svc    *service.CreatureService
	logger *slog.Logger
}

// NewCreatureHandler creates a new CreatureHandler.
func NewCreatureHandler(svc *service.CreatureService, logger *slog.Logger) *CreatureHandler {
	return &CreatureHandler{
		svc:    svc,
		logger: logger,
	}
}

// List handles GET /creatures.
func (h *CreatureHandler) List(w http.ResponseWriter, r *http.Request) {
	creatures, err := h.svc.ListCreatures(r.Context())
	if err != nil {
		handleServiceError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, dto.ToCreatureListResponse(creatures))
}

// Get handles GET /creatures/{idOrName}.
func (h *CreatureHandler) Get(w http.ResponseWriter, r *http.Request) {
	creature, err := h.svc.GetCreature(r.Context(), chi.URLParam(r, "idOrName"))
	if err != nil {
		handleServiceError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, dto.ToCreatureResponse(creature))
}

// Create handles POST /creatures.
func (h *CreatureHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateCreatureRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	creature, err := h.svc.CreateCreature(r.Context(), service.CreateCreatureInput{
		Name:    req.Name,
		Types:   req.Types,
		HP:      req.Stats.HP,
		Attack:  req.Stats.Attack,
		Defense: req.Stats.Defense,
	})
	if err != nil {
		handleServiceError(w, h.logger, err)
		return
	}

	h.logger.Info("creature_created", "creature_id", creature.ID, "name", creature.Name)

	writeJSON(w, http.StatusCreated, dto.ToCreatureResponse(creature))
}
