package process

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/go-chi/chi/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/magabrotheeeer/school-fees-platform/internal/models"
)

// MockService реализует интерфейс process.Service
type MockService struct {
	mock.Mock
}

func (m *MockService) Run(ctx context.Context, now time.Time) (*models.LateFeeSummary, error) {
	args := m.Called(ctx, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.LateFeeSummary), args.Error(1)
}

func TestProcessHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
	processedDate := time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name           string
		setupMock      func(*MockService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name: "успешный прогон без ошибок",
			setupMock: func(m *MockService) {
				m.On("Run", mock.Anything, mock.AnythingOfType("time.Time")).
					Return(&models.LateFeeSummary{
						ProcessedDate:         processedDate,
						TotalOverdueFees:      5,
						SuccessfullyProcessed: 5,
						Errors:                0,
					}, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody: `{"success":true,"message":"late fee processing completed",` +
				`"processedDate":"2026-03-15","totalOverdueFees":5,"successfullyProcessed":5,` +
				`"errors":0,"summary":"processed 5 of 5 overdue fees, 0 errors"}`,
		},
		{
			name: "прогон с ошибками по отдельным записям возвращает 200",
			setupMock: func(m *MockService) {
				m.On("Run", mock.Anything, mock.AnythingOfType("time.Time")).
					Return(&models.LateFeeSummary{
						ProcessedDate:         processedDate,
						TotalOverdueFees:      4,
						SuccessfullyProcessed: 3,
						Errors:                1,
					}, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody: `{"success":true,"message":"late fee processing completed",` +
				`"processedDate":"2026-03-15","totalOverdueFees":4,"successfullyProcessed":3,` +
				`"errors":1,"summary":"processed 3 of 4 overdue fees, 1 errors"}`,
		},
		{
			name: "прогон не удалось выполнить",
			setupMock: func(m *MockService) {
				m.On("Run", mock.Anything, mock.AnythingOfType("time.Time")).
					Return(nil, errors.New("db down"))
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody: `{"success":false,"message":"late fee processing failed",` +
				`"processedDate":"","totalOverdueFees":0,"successfullyProcessed":0,` +
				`"errors":0,"summary":""}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockService)
			tt.setupMock(mockService)

			handler := New(logger, mockService)

			req := httptest.NewRequest(http.MethodPost, "/api/v1/fees/process-late-fees", nil)
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
