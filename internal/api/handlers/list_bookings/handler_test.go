package list_bookings

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/heavyrent/rental-service/internal/api/handlers"
	"github.com/heavyrent/rental-service/internal/api/middleware"
	"github.com/heavyrent/rental-service/internal/domain"
	"github.com/heavyrent/rental-service/internal/service/bookings/models"
	"github.com/heavyrent/rental-service/pkg/logger"
)

type MockService struct {
	mock.Mock
}

func (m *MockService) List(ctx context.Context, session *domain.Session, req *models.ListBookingsRequest) (*models.BookingListResponse, error) {
	args := m.Called(ctx, session, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.BookingListResponse), args.Error(1)
}

func serve(svc *MockService, target string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, target, nil)
	req = req.WithContext(middleware.WithSession(req.Context(), &domain.Session{UserID: uuid.New()}))
	rec := httptest.NewRecorder()
	NewHandler(svc, logger.NewNop()).Handle(rec, req)
	return rec
}

func TestHandle_PassesFilters(t *testing.T) {
	svc := new(MockService)
	svc.On("List", mock.Anything, mock.Anything, mock.MatchedBy(func(r *models.ListBookingsRequest) bool {
		return r.Role == "client" && r.Status != nil && *r.Status == "pending" && r.Page == 2 && r.Limit == 5
	})).Return(&models.BookingListResponse{
		Bookings: []*models.BookingResponse{{ID: uuid.New()}},
		Total:    6,
		Page:     2,
		Limit:    5,
	}, nil)

	rec := serve(svc, "/api/v1/bookings?role=client&status=pending&page=2&limit=5")

	assert.Equal(t, http.StatusOK, rec.Code)
	var resp struct {
		Success    bool                      `json:"success"`
		Bookings   []*models.BookingResponse `json:"bookings"`
		Pagination handlers.Pagination       `json:"pagination"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Len(t, resp.Bookings, 1)
	assert.Equal(t, 6, resp.Pagination.Total)
	assert.False(t, resp.Pagination.HasMore)
	svc.AssertExpectations(t)
}

func TestHandle_DefaultPaging(t *testing.T) {
	svc := new(MockService)
	svc.On("List", mock.Anything, mock.Anything, mock.MatchedBy(func(r *models.ListBookingsRequest) bool {
		return r.Role == "" && r.Status == nil && r.Page == 1 && r.Limit == domain.DefaultBookingsPageLimit
	})).Return(&models.BookingListResponse{Bookings: []*models.BookingResponse{}, Page: 1, Limit: 10}, nil)

	rec := serve(svc, "/api/v1/bookings")

	assert.Equal(t, http.StatusOK, rec.Code)
	svc.AssertExpectations(t)
}

func TestHandle_InvalidPaging(t *testing.T) {
	svc := new(MockService)

	rec := serve(svc, "/api/v1/bookings?limit=500")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	svc.AssertNotCalled(t, "List", mock.Anything, mock.Anything, mock.Anything)
}

func TestHandle_InvalidStatus(t *testing.T) {
	svc := new(MockService)
	svc.On("List", mock.Anything, mock.Anything, mock.Anything).
		Return(nil, domain.FieldError("status", "must be one of pending confirmed active completed cancelled"))

	rec := serve(svc, "/api/v1/bookings?status=lost")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	var resp handlers.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Contains(t, resp.Details, "status")
}
