// Package list реализует HTTP-обработчик получения списка объявлений организации.
package list

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/school-fees-platform/internal/http/middlewarectx"
	"github.com/magabrotheeeer/school-fees-platform/internal/http/response"
	"github.com/magabrotheeeer/school-fees-platform/internal/lib/sl"
	"github.com/magabrotheeeer/school-fees-platform/internal/models"
)

// Service описывает интерфейс бизнес-логики получения объявлений.
type Service interface {
	List(ctx context.Context, organizationUID string, limit, offset int) ([]*models.Announcement, error)
}

// Handler обрабатывает HTTP-запросы на получение списка объявлений.
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
// @Summary Список объявлений
// @Description Возвращает активные объявления организации с пагинацией
// @Tags Announcements
// @Accept  json
// @Produce  json
// @Param limit query int false "Количество записей (по умолчанию 10)"
// @Param offset query int false "Смещение (по умолчанию 0)"
// @Success 200 {object} map[string]any "Список объявлений"
// @Failure 401 {object} response.ErrorResponse "Нет авторизации"
// @Failure 500 {object} response.ErrorResponse "Ошибка при получении списка"
// @Router /announcements [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.announcement.list"

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

	limit, err := strconv.Atoi(r.URL.Query().Get("limit"))
	if err != nil || limit <= 0 {
		limit = 10
	}
	offset, err := strconv.Atoi(r.URL.Query().Get("offset"))
	if err != nil || offset < 0 {
		offset = 0
	}

	announcements, err := h.service.List(r.Context(), organizationUID, limit, offset)
	if err != nil {
		log.Error("failed to list announcements", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not list announcements"))
		return
	}

	log.Info("success to list announcements", slog.Int("count", len(announcements)))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"announcements": announcements,
	}))
}
