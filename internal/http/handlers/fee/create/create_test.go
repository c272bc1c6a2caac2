package create

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/go-chi/chi/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/school-fees-platform/internal/http/middlewarectx"
	"github.com/magabrotheeeer/school-fees-platform/internal/models"
)

// MockService реализует интерфейс create.Service
type MockService struct {
	mock.Mock
}

func (m *MockService) Create(ctx context.Context, organizationUID string, req models.DummyFee) (int, error) {
	args := m.Called(ctx, organizationUID, req)
	return args.Int(0), args.Error(1)
}

func TestCreateHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))

	validFee := models.DummyFee{
		StudentUID:    "550e8400-e29b-41d4-a716-446655440000",
		StudentName:   "Ivan Petrov",
		GuardianEmail: "guardian@example.com",
		ClassID:       1,
		SessionID:     1,
		Amount:        15000,
		DueDate:       "01-03-2026",
	}

	tests := []struct {
		name            string
		requestBody     interface{}
		organizationUID string
		setupMock       func(*MockService)
		expectedStatus  int
		expectedBody    string
	}{
		{
			name:            "успешное создание платежа",
			requestBody:     validFee,
			organizationUID: "org-001",
			setupMock: func(m *MockService) {
				m.On("Create", mock.Anything, "org-001", mock.AnythingOfType("models.DummyFee")).
					Return(123, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `{"status":"OK","data":{"last_added_id":123}}`,
		},
		{
			name:            "невалидные данные",
			requestBody:     models.DummyFee{},
			organizationUID: "org-001",
			setupMock:       func(_ *MockService) {},
			expectedStatus:  http.StatusUnprocessableEntity,
			expectedBody: `{"status":"Error","error":"field StudentUID is a required field, ` +
				`field StudentName is a required field, field GuardianEmail is a required field, ` +
				`field ClassID is a required field, field SessionID is a required field, ` +
				`field Amount is a required field, field DueDate is a required field"}`,
		},
		{
			name:            "некорректный JSON",
			requestBody:     "not a json",
			organizationUID: "org-001",
			setupMock:       func(_ *MockService) {},
			expectedStatus:  http.StatusBadRequest,
			expectedBody:    `{"status":"Error","error":"invalid request body"}`,
		},
		{
			name:            "отсутствует авторизация",
			requestBody:     validFee,
			organizationUID: "",
			setupMock:       func(_ *MockService) {},
			expectedStatus:  http.StatusUnauthorized,
			expectedBody:    `{"status":"Error","error":"unauthorized"}`,
		},
		{
			name:            "ошибка сервиса",
			requestBody:     validFee,
			organizationUID: "org-001",
			setupMock: func(m *MockService) {
				m.On("Create", mock.Anything, "org-001", mock.AnythingOfType("models.DummyFee")).
					Return(0, errors.New("db error"))
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `{"status":"Error","error":"could not create student fee"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockService)
			tt.setupMock(mockService)

			handler := New(logger, mockService)

			var body []byte
			var err error
			if str, ok := tt.requestBody.(string); ok {
				body = []byte(str)
			} else {
				body, err = json.Marshal(tt.requestBody)
				require.NoError(t, err)
			}

			req := httptest.NewRequest(http.MethodPost, "/api/v1/fees", bytes.NewReader(body))
			req.Header.Set("Content-Type", "application/json")

			ctx := context.WithValue(req.Context(), middlewarectx.Organization, tt.organizationUID)
			ctx = context.WithValue(ctx, middleware.RequestIDKey, "req-id")
			req = req.WithContext(ctx)

			w := httptest.NewRecorder()

			handler.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.JSONEq(t, tt.expectedBody, w.Body.String())
			mockService.AssertExpectations(t)
		})
	}
}
