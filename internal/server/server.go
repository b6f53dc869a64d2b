// Пакет server — HTTP-сервер API Module с graceful shutdown.
// Без TLS — HTTP внутри кластера, TLS termination на API Gateway.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/rl-Rahul/balu-property-sub001/internal/api/envelope"
	"github.com/rl-Rahul/balu-property-sub001/internal/api/handlers"
	"github.com/rl-Rahul/balu-property-sub001/internal/api/middleware"
	"github.com/rl-Rahul/balu-property-sub001/internal/config"
	"github.com/rl-Rahul/balu-property-sub001/internal/domain/role"
)

// Server — HTTP-сервер API Module.
type Server struct {
	httpServer *http.Server
	logger     *slog.Logger
	cfg        *config.Config
}

// New создаёт HTTP-сервер с настроенными маршрутами и middleware.
// jwtAuth может быть nil — тогда защищённые маршруты недоступны
// (используется в тестах публичной части).
func New(
	cfg *config.Config,
	logger *slog.Logger,
	env *envelope.Writer,
	api *handlers.APIHandler,
	health *handlers.HealthHandler,
	jwtAuth *middleware.JWTAuth,
) *Server {
	router := chi.NewRouter()

	// Глобальные middleware (применяются ко ВСЕМ маршрутам)
	router.Use(middleware.MetricsMiddleware())
	router.Use(middleware.RequestLogger(logger))
	router.Use(middleware.RequestContext(cfg.DefaultLocale))

	// Служебные endpoints — без аутентификации.
	router.Get("/health/live", health.HealthLive)
	router.Get("/health/ready", health.HealthReady)
	router.Get("/metrics", health.GetMetrics)
	router.Get("/.well-known/jwks.json", health.GetJWKS)

	// Публичная часть API.
	router.Post("/api/v1/auth/register", api.Register)
	router.Post("/api/v1/auth/login", api.Login)

	// Защищённая часть API.
	if jwtAuth != nil {
		router.Group(func(r chi.Router) {
			r.Use(jwtAuth.Middleware())

			r.Get("/api/v1/profile", api.GetProfile)
			r.Put("/api/v1/profile", api.UpdateProfile)

			r.Get("/api/v1/directories/{type}", api.ListDirectory)
			r.Post("/api/v1/directory", api.CreateDirectory)
			r.Put("/api/v1/directory/{id}", api.UpdateDirectory)
			r.Delete("/api/v1/directory/{id}", api.DeleteDirectory)

			r.Get("/api/v1/messages", api.ListMessages)
			r.Post("/api/v1/messages", api.SendMessage)
			r.Post("/api/v1/messages/archive", api.ArchiveMessages)
			r.Get("/api/v1/messages/{id}", api.GetMessage)
			r.Put("/api/v1/messages/{id}/read", api.ReadMessage)

			r.Get("/api/v1/notifications", api.ListNotifications)
			r.Post("/api/v1/notifications/read", api.ReadNotifications)

			r.Get("/api/v1/property-groups", api.ListPropertyGroups)
			r.Post("/api/v1/property-groups", api.CreatePropertyGroup)
			r.Put("/api/v1/property-groups/{id}", api.UpdatePropertyGroup)
			r.Delete("/api/v1/property-groups/{id}", api.DeletePropertyGroup)

			r.Post("/api/v1/devices", api.RegisterDevice)
			r.Delete("/api/v1/devices/{token}", api.RemoveDevice)

			r.Post("/api/v1/files", api.UploadFile)
			r.Get("/api/v1/files/{id}", api.ServeFile)

			// Административные маршруты: отказ по роли происходит
			// ДО обработчиков, бизнес-логика не выполняется.
			r.Group(func(admin chi.Router) {
				admin.Use(middleware.RequireRole(env, role.RoleSuperAdmin))

				admin.Get("/api/v1/admin/users", api.ListUsers)
				admin.Get("/api/v1/admin/companies", api.ListCompanies)
				admin.Get("/api/v1/admin/companies/{id}", api.GetCompany)
				admin.Put("/api/v1/admin/users/{id}/role", api.AssignRole)
				admin.Put("/api/v1/admin/users/{id}/status", api.SetUserStatus)
				admin.Delete("/api/v1/admin/users/{id}", api.DeleteUser)
			})
		})
	}

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      router,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	return &Server{
		httpServer: srv,
		logger:     logger,
		cfg:        cfg,
	}
}

// Handler возвращает корневой HTTP-handler (для httptest).
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// Run запускает сервер и ожидает сигнала завершения (SIGINT, SIGTERM).
// При получении сигнала выполняется graceful shutdown.
func (s *Server) Run() error {
	errCh := make(chan error, 1)

	go func() {
		s.logger.Info("HTTP-сервер запущен",
			slog.String("addr", s.httpServer.Addr),
		)

		err := s.httpServer.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-quit:
		s.logger.Info("Получен сигнал завершения", slog.String("signal", sig.String()))
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("ошибка HTTP-сервера: %w", err)
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout)
	defer cancel()

	s.logger.Info("Выполняется graceful shutdown...")
	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("ошибка при graceful shutdown: %w", err)
	}

	s.logger.Info("HTTP-сервер остановлен")
	return nil
}
