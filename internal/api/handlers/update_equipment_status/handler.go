package update_equipment_status

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/heavyrent/rental-service/internal/api/handlers"
	"github.com/heavyrent/rental-service/internal/api/middleware"
	"github.com/heavyrent/rental-service/internal/service/equipment"
	"github.com/heavyrent/rental-service/internal/service/equipment/models"
	"github.com/heavyrent/rental-service/internal/service/profiles"
)

const (
	msgMissingSession     = "authentication required"
	msgInvalidRequestBody = "invalid request body"
	msgInvalidEquipmentID = "invalid equipment id"
	msgValidationFailed   = "invalid equipment status"
	msgEquipmentNotFound  = "equipment not found"
	msgProfileNotFound    = "profile not found"
	msgNotOwner           = "only the owner can change this equipment"
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

// Handle PATCH /api/v1/equipment/{equipmentId}/status
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	session, ok := middleware.GetSession(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgMissingSession)
		return
	}

	id, err := uuid.Parse(mux.Vars(r)["equipmentId"])
	if err != nil {
		h.logger.Warn("PATCH /equipment/{id}/status - Invalid equipment id: %v", err)
		handlers.RespondBadRequest(w, msgInvalidEquipmentID)
		return
	}

	var req models.UpdateStatusRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /equipment/{id}/status - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	item, err := h.service.UpdateStatus(r.Context(), session, id, &req)
	if err != nil {
		switch {
		case errors.Is(err, equipment.ErrEquipmentNotFound):
			h.logger.Warn("PATCH /equipment/{id}/status - Equipment not found: equipment_id=%s", id)
			handlers.RespondNotFound(w, msgEquipmentNotFound)

		case errors.Is(err, equipment.ErrNotOwner):
			h.logger.Warn("PATCH /equipment/{id}/status - Not the owner: equipment_id=%s, user_id=%s", id, session.UserID)
			handlers.RespondForbidden(w, msgNotOwner)

		case errors.Is(err, profiles.ErrProfileNotFound):
			h.logger.Warn("PATCH /equipment/{id}/status - Profile not found: user_id=%s", session.UserID)
			handlers.RespondNotFound(w, msgProfileNotFound)

		case handlers.IsBusinessError(err):
			h.logger.Warn("PATCH /equipment/{id}/status - Rejected: equipment_id=%s, error=%v", id, err)
			handlers.RespondCategorized(w, err, msgValidationFailed)

		default:
			h.logger.Error("PATCH /equipment/{id}/status - Failed to update: equipment_id=%s, error=%v", id, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /equipment/{id}/status - Status updated: equipment_id=%s, status=%s", id, req.Status)
	handlers.RespondOK(w, http.StatusOK, handlers.Envelope{"equipment": item})
}
