package update_equipment_status

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/heavyrent/rental-service/internal/api/handlers"
	"github.com/heavyrent/rental-service/internal/api/middleware"
	"github.com/heavyrent/rental-service/internal/domain"
	"github.com/heavyrent/rental-service/internal/service/equipment"
	"github.com/heavyrent/rental-service/internal/service/equipment/models"
	"github.com/heavyrent/rental-service/pkg/logger"
)

type MockService struct {
	mock.Mock
}

func (m *MockService) UpdateStatus(ctx context.Context, session *domain.Session, id uuid.UUID, req *models.UpdateStatusRequest) (*models.EquipmentResponse, error) {
	args := m.Called(ctx, session, id, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.EquipmentResponse), args.Error(1)
}

func serve(svc *MockService, id, payload string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPatch, "/api/v1/equipment/"+id+"/status", strings.NewReader(payload))
	req = mux.SetURLVars(req, map[string]string{"equipmentId": id})
	req = req.WithContext(middleware.WithSession(req.Context(), &domain.Session{UserID: uuid.New()}))
	rec := httptest.NewRecorder()
	NewHandler(svc, logger.NewNop()).Handle(rec, req)
	return rec
}

func TestHandle(t *testing.T) {
	id := uuid.New()

	tests := []struct {
		name   string
		result *models.EquipmentResponse
		err    error
		status int
		code   string
	}{
		{"updated", &models.EquipmentResponse{ID: id, Status: "maintenance"}, nil, http.StatusOK, ""},
		{"not owner", nil, equipment.ErrNotOwner, http.StatusOK, handlers.CodeForbidden},
		{"not found", nil, equipment.ErrEquipmentNotFound, http.StatusOK, handlers.CodeNotFound},
		{"bad status", nil, domain.FieldError("status", "must be one of available rented maintenance unavailable"), http.StatusBadRequest, handlers.CodeValidation},
		{"internal", nil, equipment.ErrInternal, http.StatusInternalServerError, handlers.CodeInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(MockService)
			call := svc.On("UpdateStatus", mock.Anything, mock.Anything, id, &models.UpdateStatusRequest{Status: "maintenance"})
			if tt.result != nil {
				call.Return(tt.result, nil)
			} else {
				call.Return(nil, tt.err)
			}

			rec := serve(svc, id.String(), `{"status":"maintenance"}`)

			assert.Equal(t, tt.status, rec.Code)
			if tt.code != "" {
				var resp handlers.ErrorResponse
				require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
				assert.Equal(t, tt.code, resp.Code)
			}
			svc.AssertExpectations(t)
		})
	}
}

func TestHandle_InvalidID(t *testing.T) {
	svc := new(MockService)

	rec := serve(svc, "7", `{"status":"maintenance"}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
