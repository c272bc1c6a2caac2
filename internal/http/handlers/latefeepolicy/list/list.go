// Package list реализует HTTP-обработчик получения политик пени организации.
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

// Service описывает интерфейс бизнес-логики получения политик пени.
type Service interface {
	ListPolicies(ctx context.Context, organizationUID string) ([]*models.LateFeePolicy, error)
}

// Handler обрабатывает HTTP-запросы на получение списка политик пени.
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
// @Summary Список политик пени
// @Description Возвращает активные политики пени организации
// @Tags LateFees
// @Accept  json
// @Produce  json
// @Success 200 {object} map[string]any "Список политик"
// @Failure 401 {object} response.ErrorResponse "Нет авторизации"
// @Failure 500 {object} response.ErrorResponse "Ошибка при получении списка"
// @Router /late-fee-policies [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.latefeepolicy.list"

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

	policies, err := h.service.ListPolicies(r.Context(), organizationUID)
	if err != nil {
		log.Error("failed to list late fee policies", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not list late fee policies"))
		return
	}

	log.Info("success to list late fee policies", slog.Int("count", len(policies)))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"policies": policies,
	}))
}
