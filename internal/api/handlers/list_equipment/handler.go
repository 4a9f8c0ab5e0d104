package list_equipment

import (
	"net/http"

	"github.com/heavyrent/rental-service/internal/api/handlers"
	"github.com/heavyrent/rental-service/internal/domain"
)

const msgInvalidFilters = "invalid equipment filters"

type Handler struct {
	useCase ListEquipmentUseCase
	logger  Logger
}

func NewHandler(useCase ListEquipmentUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/equipment
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	page, limit, err := handlers.ParsePagination(r, domain.DefaultEquipmentPageLimit)
	if err != nil {
		h.logger.Warn("GET /equipment - Invalid pagination: %v", err)
		handlers.RespondBadRequest(w, err.Error())
		return
	}

	req, err := parseQuery(r.URL.Query(), page, limit)
	if err != nil {
		h.logger.Warn("GET /equipment - Invalid filters: %v", err)
		handlers.RespondCategorized(w, err, msgInvalidFilters)
		return
	}

	result, err := h.useCase.Execute(r.Context(), req)
	if err != nil {
		if handlers.IsBusinessError(err) {
			h.logger.Warn("GET /equipment - Rejected filters: %v", err)
			handlers.RespondCategorized(w, err, msgInvalidFilters)
			return
		}
		h.logger.Error("GET /equipment - Failed to list equipment: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /equipment - Found %d items: total=%d, page=%d", len(result.Equipment), result.Total, result.Page)
	pagination := handlers.Pagination{
		Total:   result.Total,
		Page:    result.Page,
		Limit:   result.Limit,
		HasMore: result.HasMore,
	}
	handlers.RespondOK(w, http.StatusOK, handlers.Envelope{
		"equipment":  result.Equipment,
		"pagination": pagination,
	})
}
