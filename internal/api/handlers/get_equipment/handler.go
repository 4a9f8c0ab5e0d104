package get_equipment

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/heavyrent/rental-service/internal/api/handlers"
	"github.com/heavyrent/rental-service/internal/service/equipment"
)

const (
	msgInvalidEquipmentID = "invalid equipment id"
	msgEquipmentNotFound  = "equipment not found"
)

type Handler struct {
	service EquipmentService
	logger  Logger
}

func NewHandler(service EquipmentService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/equipment/{equipmentId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["equipmentId"])
	if err != nil {
		h.logger.Warn("GET /equipment/{id} - Invalid equipment id: %v", err)
		handlers.RespondBadRequest(w, msgInvalidEquipmentID)
		return
	}

	item, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, equipment.ErrEquipmentNotFound) {
			h.logger.Warn("GET /equipment/{id} - Equipment not found: equipment_id=%s", id)
			handlers.RespondNotFound(w, msgEquipmentNotFound)
			return
		}
		h.logger.Error("GET /equipment/{id} - Failed to get equipment: equipment_id=%s, error=%v", id, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /equipment/{id} - Equipment retrieved: equipment_id=%s", id)
	handlers.RespondOK(w, http.StatusOK, handlers.Envelope{"equipment": item})
}
