// Package list реализует HTTP-обработчик получения платежей ученика.
package list

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/school-fees-platform/internal/http/middlewarectx"
	"github.com/magabrotheeeer/school-fees-platform/internal/http/response"
	"github.com/magabrotheeeer/school-fees-platform/internal/lib/sl"
	"github.com/magabrotheeeer/school-fees-platform/internal/models"
)

// Service описывает интерфейс бизнес-логики получения платежей ученика.
type Service interface {
	ListByStudent(ctx context.Context, organizationUID, studentUID string, limit, offset int) ([]*models.StudentFee, error)
}

// Handler обрабатывает HTTP-запросы на получение списка платежей ученика.
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
// @Summary Платежи ученика
// @Description Возвращает платежные обязательства ученика с пагинацией
// @Tags Fees
// @Accept  json
// @Produce  json
// @Param student_uid path string true "UID ученика"
// @Param limit query int false "Количество записей (по умолчанию 10)"
// @Param offset query int false "Смещение (по умолчанию 0)"
// @Success 200 {object} map[string]any "Список платежей"
// @Failure 400 {object} response.ErrorResponse "Некорректный UID"
// @Failure 401 {object} response.ErrorResponse "Нет авторизации"
// @Failure 500 {object} response.ErrorResponse "Ошибка при получении списка"
// @Router /fees/student/{student_uid} [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.fee.list"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	organizationUID, ok := r.Context().Value(middlewarectx.Organization).(string)
	if !ok || organizationUID == "" {
		log.Error("missing organization in context")
		w.WriteHeader(http.StatusUnauthorized)
		render.JSON(w, r, response.Error("unauthorized"))
		return
	}

	studentUID := chi.URLParam(r, "student_uid")
	if studentUID == "" {
		log.Error("missing student uid")
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid student uid"))
		return
	}

	limit, err := strconv.Atoi(r.URL.Query().Get("limit"))
	if err != nil || limit <= 0 {
		limit = 10
	}
	offset, err := strconv.Atoi(r.URL.Query().Get("offset"))
	if err != nil || offset < 0 {
		offset = 0
	}

	fees, err := h.service.ListByStudent(r.Context(), organizationUID, studentUID, limit, offset)
	if err != nil {
		log.Error("failed to list student fees", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not list student fees"))
		return
	}

	log.Info("success to list student fees", slog.Int("count", len(fees)))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"fees": fees,
	}))
}
