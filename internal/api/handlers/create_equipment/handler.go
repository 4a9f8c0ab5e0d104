package create_equipment

import (
	"errors"
	"net/http"

	"github.com/heavyrent/rental-service/internal/api/handlers"
	"github.com/heavyrent/rental-service/internal/api/middleware"
	"github.com/heavyrent/rental-service/internal/service/equipment"
	"github.com/heavyrent/rental-service/internal/service/equipment/models"
	"github.com/heavyrent/rental-service/internal/service/profiles"
)

const (
	msgMissingSession     = "authentication required"
	msgInvalidRequestBody = "invalid request body"
	msgValidationFailed   = "invalid equipment"
	msgProfileNotFound    = "create a profile before listing equipment"
	msgNotOperator        = "only operators can list equipment"
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

// Handle POST /api/v1/equipment
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	session, ok := middleware.GetSession(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgMissingSession)
		return
	}

	var req models.CreateEquipmentRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /equipment - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	item, err := h.service.Create(r.Context(), session, &req)
	if err != nil {
		switch {
		case errors.Is(err, equipment.ErrNotOperator):
			h.logger.Warn("POST /equipment - Not an operator: user_id=%s", session.UserID)
			handlers.RespondForbidden(w, msgNotOperator)

		case errors.Is(err, profiles.ErrProfileNotFound):
			h.logger.Warn("POST /equipment - Profile not found: user_id=%s", session.UserID)
			handlers.RespondNotFound(w, msgProfileNotFound)

		case handlers.IsBusinessError(err):
			h.logger.Warn("POST /equipment - Rejected: user_id=%s, error=%v", session.UserID, err)
			handlers.RespondCategorized(w, err, msgValidationFailed)

		default:
			h.logger.Error("POST /equipment - Failed to create equipment: user_id=%s, error=%v", session.UserID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /equipment - Equipment created: equipment_id=%s, owner_id=%s", item.ID, item.OwnerID)
	handlers.RespondOK(w, http.StatusCreated, handlers.Envelope{"equipment": item})
}
