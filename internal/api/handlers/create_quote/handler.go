package create_quote

import (
	"net/http"

	"github.com/heavyrent/rental-service/internal/api/handlers"
	"github.com/heavyrent/rental-service/internal/api/middleware"
	createQuote "github.com/heavyrent/rental-service/internal/usecase/create_quote"
)

const (
	msgInvalidRequestBody = "invalid request body"
	msgValidationFailed   = "invalid quote request"
	msgQuoteReceived      = "Quote request received. Our team will contact you shortly."
)

type Handler struct {
	useCase CreateQuoteUseCase
	logger  Logger
}

func NewHandler(useCase CreateQuoteUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/quotes
// Anonymous requests are accepted; a bearer token links the quote to the caller's profile.
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req createQuote.Request
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /quotes - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	session, _ := middleware.GetSession(r.Context())

	quote, err := h.useCase.Execute(r.Context(), session, &req)
	if err != nil {
		if handlers.IsBusinessError(err) {
			h.logger.Warn("POST /quotes - Rejected: %v", err)
			handlers.RespondCategorized(w, err, msgValidationFailed)
			return
		}
		h.logger.Error("POST /quotes - Failed to create quote: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("POST /quotes - Quote created: quote_id=%s, equipment_type=%q", quote.ID, quote.EquipmentType)
	handlers.RespondOK(w, http.StatusCreated, handlers.Envelope{
		"message": msgQuoteReceived,
		"quote":   quote,
	})
}
