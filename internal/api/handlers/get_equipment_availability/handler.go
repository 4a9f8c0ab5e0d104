package get_equipment_availability

import (
	"errors"
	"net/http"
	"net/url"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/heavyrent/rental-service/internal/api/handlers"
	"github.com/heavyrent/rental-service/internal/domain"
	getAvailability "github.com/heavyrent/rental-service/internal/usecase/get_equipment_availability"
)

const (
	dateLayout = "2006-01-02"

	msgInvalidEquipmentID = "invalid equipment id"
	msgInvalidRange       = "invalid availability range"
	msgEquipmentNotFound  = "equipment not found"
)

type Handler struct {
	useCase AvailabilityUseCase
	logger  Logger
}

func NewHandler(useCase AvailabilityUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/equipment/{equipmentId}/availability?from=YYYY-MM-DD&to=YYYY-MM-DD
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["equipmentId"])
	if err != nil {
		h.logger.Warn("GET /equipment/{id}/availability - Invalid equipment id: %v", err)
		handlers.RespondBadRequest(w, msgInvalidEquipmentID)
		return
	}

	req, verr := parseRange(r.URL.Query())
	if verr != nil {
		h.logger.Warn("GET /equipment/{id}/availability - Invalid range: %v", verr)
		handlers.RespondValidation(w, msgInvalidRange, verr)
		return
	}
	req.EquipmentID = id

	resp, err := h.useCase.Execute(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, getAvailability.ErrEquipmentNotFound):
			h.logger.Warn("GET /equipment/{id}/availability - Equipment not found: equipment_id=%s", id)
			handlers.RespondNotFound(w, msgEquipmentNotFound)
		case handlers.IsBusinessError(err):
			h.logger.Warn("GET /equipment/{id}/availability - Rejected: equipment_id=%s, error=%v", id, err)
			handlers.RespondCategorized(w, err, msgInvalidRange)
		default:
			h.logger.Error("GET /equipment/{id}/availability - Failed: equipment_id=%s, error=%v", id, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /equipment/{id}/availability - Calendar built: equipment_id=%s, booked=%d, free=%d",
		id, len(resp.Booked), len(resp.Free))
	handlers.RespondOK(w, http.StatusOK, handlers.Envelope{"availability": resp})
}

// parseRange reads the optional from and to dates. Missing values are left zero.
func parseRange(q url.Values) (*getAvailability.Request, *domain.ValidationError) {
	verr := domain.NewValidationError()
	req := &getAvailability.Request{}

	for _, f := range []struct {
		name string
		dst  *time.Time
	}{
		{"from", &req.From},
		{"to", &req.To},
	} {
		raw := q.Get(f.name)
		if raw == "" {
			continue
		}
		t, err := time.Parse(dateLayout, raw)
		if err != nil {
			verr.Add(f.name, "must be a date in YYYY-MM-DD format")
			continue
		}
		*f.dst = t
	}

	if verr.HasErrors() {
		return nil, verr
	}
	return req, nil
}
