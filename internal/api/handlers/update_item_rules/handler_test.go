package update_item_rules

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/m04kA/SMC-BookingWindowService/internal/api/middleware"
	"github.com/m04kA/SMC-BookingWindowService/internal/service/rules"
	"github.com/m04kA/SMC-BookingWindowService/internal/service/rules/models"
	"github.com/m04kA/SMC-BookingWindowService/pkg/logger"
	"github.com/m04kA/SMC-BookingWindowService/pkg/ptr"
)

type MockRulesService struct {
	mock.Mock
}

func (m *MockRulesService) Upsert(ctx context.Context, req *models.UpsertRulesRequest) (*models.RulesResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.RulesResponse), args.Error(1)
}

const validBody = `{
	"furthest": {"mode": "daily", "number": 2, "unit": "months"},
	"closest": {"mode": "same-day", "timeIncrement": 45}
}`

func newRouter(svc *MockRulesService) *mux.Router {
	h := NewHandler(svc, logger.NewNop())
	r := mux.NewRouter()
	protected := r.PathPrefix("/api/v1").Subrouter()
	protected.Use(middleware.Auth)
	protected.HandleFunc("/booking-rules/default", h.HandleDefault).Methods(http.MethodPut)
	protected.HandleFunc("/items/{itemId}/booking-rules", h.Handle).Methods(http.MethodPut)
	return r
}

func put(r http.Handler, target, body, userID string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPut, target, strings.NewReader(body))
	if userID != "" {
		req.Header.Set(middleware.UserIDHeader, userID)
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestHandle_UpsertsItemRules(t *testing.T) {
	svc := new(MockRulesService)
	svc.On("Upsert", mock.Anything, &models.UpsertRulesRequest{
		UserID:     12,
		MenuItemID: ptr.Ptr(int64(5)),
		Rules: models.RulesInput{
			FurthestMode:         "daily",
			FurthestNumber:       2,
			FurthestUnit:         ptr.Ptr("months"),
			ClosestMode:          "same-day",
			ClosestTimeIncrement: ptr.Ptr(45),
		},
	}).Return(&models.RulesResponse{ID: 3, MenuItemID: ptr.Ptr(int64(5)), Level: "item"}, nil)

	rec := put(newRouter(svc), "/api/v1/items/5/booking-rules", validBody, "12")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"level":"item"`)
	svc.AssertExpectations(t)
}

func TestHandleDefault_PassesNilItem(t *testing.T) {
	svc := new(MockRulesService)
	svc.On("Upsert", mock.Anything, mock.MatchedBy(func(req *models.UpsertRulesRequest) bool {
		return req.MenuItemID == nil && req.UserID == 12
	})).Return(&models.RulesResponse{ID: 1, Level: "restaurant"}, nil)

	rec := put(newRouter(svc), "/api/v1/booking-rules/default", validBody, "12")

	assert.Equal(t, http.StatusOK, rec.Code)
	svc.AssertExpectations(t)
}

func TestHandle_Errors(t *testing.T) {
	tests := []struct {
		name       string
		target     string
		body       string
		userID     string
		svcErr     error
		wantStatus int
	}{
		{name: "no user", target: "/api/v1/items/5/booking-rules", body: validBody, wantStatus: http.StatusUnauthorized},
		{name: "bad item", target: "/api/v1/items/five/booking-rules", body: validBody, userID: "1", wantStatus: http.StatusBadRequest},
		{name: "bad json", target: "/api/v1/items/5/booking-rules", body: `{"furthest":`, userID: "1", wantStatus: http.StatusBadRequest},
		{name: "unknown field", target: "/api/v1/items/5/booking-rules", body: `{"slotDuration": 30}`, userID: "1", wantStatus: http.StatusBadRequest},
		{name: "invalid rule", target: "/api/v1/items/5/booking-rules", body: validBody, userID: "1", svcErr: rules.ErrInvalidInput, wantStatus: http.StatusBadRequest},
		{name: "unknown item", target: "/api/v1/items/5/booking-rules", body: validBody, userID: "1", svcErr: rules.ErrMenuItemNotFound, wantStatus: http.StatusNotFound},
		{name: "not bookable", target: "/api/v1/items/5/booking-rules", body: validBody, userID: "1", svcErr: rules.ErrMenuItemNotBookable, wantStatus: http.StatusUnprocessableEntity},
		{name: "conflict", target: "/api/v1/items/5/booking-rules", body: validBody, userID: "1", svcErr: rules.ErrRulesConflict, wantStatus: http.StatusConflict},
		{name: "internal", target: "/api/v1/items/5/booking-rules", body: validBody, userID: "1", svcErr: rules.ErrInternal, wantStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(MockRulesService)
			if tt.svcErr != nil {
				svc.On("Upsert", mock.Anything, mock.Anything).Return(nil, tt.svcErr)
			}

			rec := put(newRouter(svc), tt.target, tt.body, tt.userID)

			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}
