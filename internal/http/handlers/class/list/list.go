// Package list реализует HTTP-обработчик получения списка классов организации.
package list

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/school-fees-platform/internal/http/middlewarectx"
	"github.com/magabrotheeeer/school-fees-platform/internal/http/response"
	"github.com/magabrotheeeer/school-fees-platform/internal/lib/sl"
	"github.com/magabrotheeeer/school-fees-platform/internal/models"
)

// Service описывает интерфейс бизнес-логики получения классов.
type Service interface {
	ListClasses(ctx context.Context, organizationUID string) ([]*models.Class, error)
}

// Handler обрабатывает HTTP-запросы на получение списка классов.
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
// @Summary Список классов
// @Description Возвращает активные классы организации
// @Tags School
// @Accept  json
// @Produce  json
// @Success 200 {object} map[string]any "Список классов"
// @Failure 401 {object} response.ErrorResponse "Нет авторизации"
// @Failure 500 {object} response.ErrorResponse "Ошибка при получении списка"
// @Router /classes [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.class.list"

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

	classes, err := h.service.ListClasses(r.Context(), organizationUID)
	if err != nil {
		log.Error("failed to list classes", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not list classes"))
		return
	}

	log.Info("success to list classes", slog.Int("count", len(classes)))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"classes": classes,
	}))
}
