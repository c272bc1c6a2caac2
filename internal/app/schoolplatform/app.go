// Package schoolplatform собирает HTTP-сервис школьной платформы:
// хранилище, кеш, брокер сообщений, бизнес-сервисы и маршруты.
package schoolplatform

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi"
	"github.com/streadway/amqp"

	"github.com/magabrotheeeer/school-fees-platform/internal/cache"
	"github.com/magabrotheeeer/school-fees-platform/internal/config"
	"github.com/magabrotheeeer/school-fees-platform/internal/lib/jwt"
	"github.com/magabrotheeeer/school-fees-platform/internal/lib/rabbitmq"
	"github.com/magabrotheeeer/school-fees-platform/internal/lib/sl"
	"github.com/magabrotheeeer/school-fees-platform/internal/migrations"
	announcementservice "github.com/magabrotheeeer/school-fees-platform/internal/services/announcement"
	authservice "github.com/magabrotheeeer/school-fees-platform/internal/services/auth"
	feeservice "github.com/magabrotheeeer/school-fees-platform/internal/services/fee"
	latefeeservice "github.com/magabrotheeeer/school-fees-platform/internal/services/latefee"
	schoolservice "github.com/magabrotheeeer/school-fees-platform/internal/services/school"
	"github.com/magabrotheeeer/school-fees-platform/internal/storage/repository"
)

// App представляет HTTP-приложение школьной платформы.
type App struct {
	server *http.Server
	logger *slog.Logger
	db     *repository.Storage
	conn   *amqp.Connection
	ch     *amqp.Channel
}

// New инициализирует все зависимости и собирает приложение.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	db, err := repository.New(cfg.StorageConnectionString)
	if err != nil {
		return nil, err
	}
	if err = migrations.Run(db.DB, cfg.MigrationsPath); err != nil {
		return nil, err
	}

	cacheRedis, err := cache.InitServer(ctx, cfg.RedisConnection)
	if err != nil {
		return nil, err
	}

	// Брокер нужен только ручному запуску начисления пени. Если он
	// недоступен, платформа работает без публикации уведомлений.
	var conn *amqp.Connection
	var ch *amqp.Channel
	var publisher latefeeservice.EventPublisher
	conn, err = rabbitmq.Connect(cfg.RabbitMQURL, cfg.RabbitMQMaxRetries, cfg.RabbitMQRetryDelay)
	if err != nil {
		logger.Warn("rabbitmq unavailable, late fee notices disabled", sl.Err(err))
	} else {
		ch, err = rabbitmq.SetupChannel(conn, rabbitmq.GetNotificationQueues())
		if err != nil {
			logger.Warn("failed to setup rabbitmq channel, late fee notices disabled", sl.Err(err))
		} else {
			publisher = rabbitmq.NewNoticePublisher(ch, "notifications")
		}
	}

	jwtMaker := jwt.NewJWTMaker(cfg.JWTSecretKey, cfg.TokenTTL)

	authService := authservice.NewAuthService(db, jwtMaker)
	announcementService := announcementservice.NewAnnouncementService(db, cacheRedis, logger)
	schoolService := schoolservice.NewSchoolService(db, logger)
	feeService := feeservice.NewFeeService(db, logger)
	lateFeeService := latefeeservice.NewLateFeeService(db, publisher, logger)

	router := chi.NewRouter()
	RegisterRoutes(router, logger, authService, announcementService, schoolService, feeService, lateFeeService)

	srv := &http.Server{
		Addr:         cfg.AddressHTTP,
		Handler:      router,
		ReadTimeout:  cfg.TimeoutHTTP,
		WriteTimeout: cfg.TimeoutHTTP,
		IdleTimeout:  cfg.IdleTimeout,
	}

	return &App{
		server: srv,
		logger: logger,
		db:     db,
		conn:   conn,
		ch:     ch,
	}, nil
}

// Run запускает HTTP-сервер и останавливает его при отмене контекста.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("HTTP server starting on", slog.String("address", a.server.Addr))
		err := a.server.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			errCh <- nil
		} else {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		timeoutCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		a.logger.Info("shutting down HTTP server gracefully")
		err := a.server.Shutdown(timeoutCtx)
		if a.ch != nil {
			_ = a.ch.Close()
		}
		if a.conn != nil {
			_ = a.conn.Close()
		}
		_ = a.db.DB.Close()
		return err
	}
}
