// Package remove реализует HTTP-обработчик скрытия объявления организации.
//
// Удаление мягкое: запись остается в базе с is_active=false.
package remove

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
)

// Service описывает интерфейс бизнес-логики удаления объявления.
type Service interface {
	Remove(ctx context.Context, id int, organizationUID string) (int, error)
}

// Handler обрабатывает HTTP-запросы на удаление объявления по идентификатору.
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
// @Summary Удалить объявление по ID
// @Description Скрывает объявление организации. Возвращает количество изменённых записей.
// @Tags Announcements
// @Accept  json
// @Produce  json
// @Param id path int true "ID объявления"
// @Success 200 {object} map[string]any "Объявление удалено"
// @Failure 400 {object} response.ErrorResponse "Некорректный ID"
// @Failure 401 {object} response.ErrorResponse "Нет авторизации"
// @Failure 500 {object} response.ErrorResponse "Ошибка при удалении"
// @Router /announcements/{id} [delete]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.announcement.remove"

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

	idStr := chi.URLParam(r, "id")
	id, err := strconv.Atoi(idStr)
	if err != nil {
		log.Error("invalid id format", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid id"))
		return
	}

	res, err := h.service.Remove(r.Context(), id, organizationUID)
	if err != nil {
		log.Error("failed to delete announcement", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not delete announcement"))
		return
	}

	log.Info("success to delete announcement", slog.Any("deleted entries", res))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"deleted_count": res,
	}))
}
