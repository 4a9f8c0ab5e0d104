package create_quote

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/heavyrent/rental-service/internal/api/handlers"
	"github.com/heavyrent/rental-service/internal/api/middleware"
	"github.com/heavyrent/rental-service/internal/domain"
	createQuote "github.com/heavyrent/rental-service/internal/usecase/create_quote"
	"github.com/heavyrent/rental-service/pkg/logger"
)

type MockUseCase struct {
	mock.Mock
}

func (m *MockUseCase) Execute(ctx context.Context, session *domain.Session, req *createQuote.Request) (*createQuote.QuoteResponse, error) {
	args := m.Called(ctx, session, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*createQuote.QuoteResponse), args.Error(1)
}

const body = `{
	"name": "Vikram Singh",
	"phone": "+919876543210",
	"equipmentType": "tower crane",
	"projectDescription": "Eight storey residential block in Wakad",
	"location": "Wakad, Pune",
	"duration": "3 months"
}`

func serve(uc *MockUseCase, session *domain.Session, payload string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/quotes", strings.NewReader(payload))
	if session != nil {
		req = req.WithContext(middleware.WithSession(req.Context(), session))
	}
	rec := httptest.NewRecorder()
	NewHandler(uc, logger.NewNop()).Handle(rec, req)
	return rec
}

func TestHandle_Anonymous(t *testing.T) {
	uc := new(MockUseCase)
	uc.On("Execute", mock.Anything, (*domain.Session)(nil), mock.MatchedBy(func(r *createQuote.Request) bool {
		return r.EquipmentType == "tower crane" && r.Duration == "3 months"
	})).Return(&createQuote.QuoteResponse{ID: uuid.New(), EquipmentType: "tower crane", Status: "pending"}, nil)

	rec := serve(uc, nil, body)

	assert.Equal(t, http.StatusCreated, rec.Code)
	var resp struct {
		Success bool                       `json:"success"`
		Quote   *createQuote.QuoteResponse `json:"quote"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, "pending", resp.Quote.Status)
	uc.AssertExpectations(t)
}

func TestHandle_PassesSession(t *testing.T) {
	uc := new(MockUseCase)
	session := &domain.Session{UserID: uuid.New(), Email: "vikram@example.in"}
	uc.On("Execute", mock.Anything, session, mock.Anything).
		Return(&createQuote.QuoteResponse{ID: uuid.New(), Email: "vikram@example.in"}, nil)

	rec := serve(uc, session, body)

	assert.Equal(t, http.StatusCreated, rec.Code)
	uc.AssertExpectations(t)
}

func TestHandle_Validation(t *testing.T) {
	uc := new(MockUseCase)
	uc.On("Execute", mock.Anything, mock.Anything, mock.Anything).
		Return(nil, domain.FieldError("projectDescription", "must be between 10 and 2000 characters"))

	rec := serve(uc, nil, body)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	var resp handlers.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Contains(t, resp.Details, "projectDescription")
}

func TestHandle_InternalError(t *testing.T) {
	uc := new(MockUseCase)
	uc.On("Execute", mock.Anything, mock.Anything, mock.Anything).Return(nil, errors.New("db down"))

	rec := serve(uc, nil, body)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
