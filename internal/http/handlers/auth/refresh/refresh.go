// Package refresh реализует HTTP-обработчик обновления JWT.
//
// В отличие от остальных обработчиков, ответ отдается плоским JSON
// {token, message} без общего конверта: этот формат читает клиентский
// менеджер токенов.
package refresh

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/school-fees-platform/internal/http/response"
	"github.com/magabrotheeeer/school-fees-platform/internal/lib/sl"
	services "github.com/magabrotheeeer/school-fees-platform/internal/services/auth"
)

// Response — плоский ответ с новым токеном.
type Response struct {
	Token   string `json:"token"`
	Message string `json:"message"`
}

// Service определяет методы бизнес-логики для обновления токена.
type Service interface {
	RefreshToken(ctx context.Context, token string) (string, error)
}

// Handler обрабатывает HTTP-запросы обновления JWT.
type Handler struct {
	log     *slog.Logger
	service Service
}

// New создает новый экземпляр Handler с заданным логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Обновление JWT
// @Description Принимает действующий токен в заголовке Authorization и выдает новый
// @Tags Auth
// @Accept  json
// @Produce  json
// @Success 200 {object} Response "Новый токен"
// @Failure 401 {object} response.ErrorResponse "Невалидный или истекший токен"
// @Router /refresh [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth.refresh"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	authHeader := r.Header.Get("Authorization")
	if !strings.HasPrefix(authHeader, "Bearer ") {
		log.Error("missing or invalid authorization header")
		w.WriteHeader(http.StatusUnauthorized)
		render.JSON(w, r, response.Error("missing or invalid authorization header"))
		return
	}
	tokenStr := strings.TrimPrefix(authHeader, "Bearer ")

	newToken, err := h.service.RefreshToken(r.Context(), tokenStr)
	if err != nil {
		if errors.Is(err, services.ErrInvalidToken) {
			log.Error("refresh rejected", sl.Err(err))
			w.WriteHeader(http.StatusUnauthorized)
			render.JSON(w, r, response.Error("invalid or expired token"))
			return
		}
		log.Error("failed to refresh token", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to refresh token"))
		return
	}

	log.Info("token refreshed")
	render.JSON(w, r, Response{
		Token:   newToken,
		Message: "token refreshed successfully",
	})
}
