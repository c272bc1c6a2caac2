// Package create реализует HTTP-обработчик создания объявлений организации.
package create

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/school-fees-platform/internal/http/middlewarectx"
	"github.com/magabrotheeeer/school-fees-platform/internal/http/response"
	"github.com/magabrotheeeer/school-fees-platform/internal/lib/sl"
	"github.com/magabrotheeeer/school-fees-platform/internal/models"
)

// Service описывает интерфейс бизнес-логики создания объявления.
type Service interface {
	Create(ctx context.Context, organizationUID string, req models.DummyAnnouncement) (int, error)
}

// Handler обрабатывает HTTP-запросы на создание объявления.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// New создает новый Handler с переданным логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		validate: validator.New(),
	}
}

// ServeHTTP godoc
// @Summary Создать объявление
// @Description Создает объявление в рамках организации текущего пользователя
// @Tags Announcements
// @Accept  json
// @Produce  json
// @Param request body models.DummyAnnouncement true "Данные объявления"
// @Success 200 {object} map[string]any "Объявление создано"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON"
// @Failure 401 {object} response.ErrorResponse "Нет авторизации"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации данных"
// @Failure 500 {object} response.ErrorResponse "Ошибка при создании"
// @Router /announcements [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.announcement.create"

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

	var req models.DummyAnnouncement
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request body", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}

	if err := h.validate.Struct(req); err != nil {
		log.Error("validation failed", sl.Err(err))
		w.WriteHeader(http.StatusUnprocessableEntity)
		render.JSON(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}

	id, err := h.service.Create(r.Context(), organizationUID, req)
	if err != nil {
		log.Error("failed to create announcement", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not create announcement"))
		return
	}

	log.Info("success to create announcement", slog.Int("id", id))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"last_added_id": id,
	}))
}
