// Package process реализует HTTP-обработчик ручного запуска начисления пени.
//
// Ответ отдается плоским JSON без общего конверта: его читают внешние
// биллинговые интеграции. Ошибки по отдельным платежам не считаются ошибкой
// запуска, код 500 возвращается только если прогон не удалось выполнить.
package process

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/school-fees-platform/internal/lib/sl"
	"github.com/magabrotheeeer/school-fees-platform/internal/models"
)

// Response — итог прогона задачи начисления пени.
type Response struct {
	Success               bool   `json:"success"`
	Message               string `json:"message"`
	ProcessedDate         string `json:"processedDate"`
	TotalOverdueFees      int    `json:"totalOverdueFees"`
	SuccessfullyProcessed int    `json:"successfullyProcessed"`
	Errors                int    `json:"errors"`
	Summary               string `json:"summary"`
}

// Service описывает интерфейс задачи начисления пени.
type Service interface {
	Run(ctx context.Context, now time.Time) (*models.LateFeeSummary, error)
}

// Handler обрабатывает HTTP-запросы на запуск начисления пени.
type Handler struct {
	log     *slog.Logger
	service Service
}

// New создает новый Handler с переданным логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Запустить начисление пени
// @Description Выполняет прогон задачи начисления пени по всем просроченным платежам
// @Tags LateFees
// @Accept  json
// @Produce  json
// @Success 200 {object} Response "Итог прогона"
// @Failure 500 {object} Response "Прогон не удалось выполнить"
// @Router /fees/process-late-fees [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.latefee.process"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	summary, err := h.service.Run(r.Context(), time.Now())
	if err != nil {
		log.Error("late fee run failed", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, Response{
			Success: false,
			Message: "late fee processing failed",
		})
		return
	}

	log.Info("late fee run finished",
		slog.Int("total", summary.TotalOverdueFees),
		slog.Int("processed", summary.SuccessfullyProcessed),
		slog.Int("errors", summary.Errors))

	render.JSON(w, r, Response{
		Success:               true,
		Message:               "late fee processing completed",
		ProcessedDate:         summary.ProcessedDate.Format("2006-01-02"),
		TotalOverdueFees:      summary.TotalOverdueFees,
		SuccessfullyProcessed: summary.SuccessfullyProcessed,
		Errors:                summary.Errors,
		Summary: fmt.Sprintf("processed %d of %d overdue fees, %d errors",
			summary.SuccessfullyProcessed, summary.TotalOverdueFees, summary.Errors),
	})
}
