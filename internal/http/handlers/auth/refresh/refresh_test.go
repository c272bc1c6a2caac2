package refresh

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/go-chi/chi/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	services "github.com/magabrotheeeer/school-fees-platform/internal/services/auth"
)

// MockService реализует интерфейс refresh.Service
type MockService struct {
	mock.Mock
}

func (m *MockService) RefreshToken(ctx context.Context, token string) (string, error) {
	args := m.Called(ctx, token)
	return args.String(0), args.Error(1)
}

func TestRefreshHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))

	tests := []struct {
		name           string
		authHeader     string
		setupMock      func(*MockService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name:       "успешное обновление токена",
			authHeader: "Bearer old-token",
			setupMock: func(m *MockService) {
				m.On("RefreshToken", mock.Anything, "old-token").Return("new-token", nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `{"token":"new-token","message":"token refreshed successfully"}`,
		},
		{
			name:           "отсутствует заголовок Authorization",
			authHeader:     "",
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusUnauthorized,
			expectedBody:   `{"status":"Error","error":"missing or invalid authorization header"}`,
		},
		{
			name:       "истекший токен",
			authHeader: "Bearer expired-token",
			setupMock: func(m *MockService) {
				m.On("RefreshToken", mock.Anything, "expired-token").Return("", services.ErrInvalidToken)
			},
			expectedStatus: http.StatusUnauthorized,
			expectedBody:   `{"status":"Error","error":"invalid or expired token"}`,
		},
		{
			name:       "внутренняя ошибка сервиса",
			authHeader: "Bearer old-token",
			setupMock: func(m *MockService) {
				m.On("RefreshToken", mock.Anything, "old-token").Return("", errors.New("signing error"))
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `{"status":"Error","error":"failed to refresh token"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockService)
			tt.setupMock(mockService)

			handler := New(logger, mockService)

			req := httptest.NewRequest(http.MethodPost, "/api/v1/refresh", nil)
			if tt.authHeader != "" {
				req.Header.Set("Authorization", tt.authHeader)
			}
			ctx := context.WithValue(req.Context(), middleware.RequestIDKey, "req-id")
			req = req.WithContext(ctx)

			w := httptest.NewRecorder()

			handler.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.JSONEq(t, tt.expectedBody, w.Body.String())
			mockService.AssertExpectations(t)
		})
	}
}
