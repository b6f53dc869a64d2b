// Точка входа API Module платформы Balu Property.
// Загружает конфигурацию, подключается к PostgreSQL, применяет
// миграции, инициализирует i18n-каталоги, подписанта JWT, сервисный
// слой и API handlers, запускает HTTP-сервер с graceful shutdown.
package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/rl-Rahul/balu-property-sub001/internal/api/envelope"
	"github.com/rl-Rahul/balu-property-sub001/internal/api/handlers"
	"github.com/rl-Rahul/balu-property-sub001/internal/api/middleware"
	"github.com/rl-Rahul/balu-property-sub001/internal/cache"
	"github.com/rl-Rahul/balu-property-sub001/internal/config"
	"github.com/rl-Rahul/balu-property-sub001/internal/database"
	"github.com/rl-Rahul/balu-property-sub001/internal/i18n"
	"github.com/rl-Rahul/balu-property-sub001/internal/password"
	"github.com/rl-Rahul/balu-property-sub001/internal/pushclient"
	"github.com/rl-Rahul/balu-property-sub001/internal/repository"
	"github.com/rl-Rahul/balu-property-sub001/internal/server"
	"github.com/rl-Rahul/balu-property-sub001/internal/service"
	"github.com/rl-Rahul/balu-property-sub001/internal/token"
)

func main() {
	// 1. Загрузка конфигурации из переменных окружения
	cfg, err := config.Load()
	if err != nil {
		slog.Error("Ошибка загрузки конфигурации", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// 2. Настройка логирования
	logger := config.SetupLogger(cfg)
	logger.Info("API Module запускается",
		slog.String("version", config.Version),
		slog.Int("port", cfg.Port),
	)

	// 3. Применение миграций БД
	logger.Info("Применение миграций БД...")
	if err := database.Migrate(cfg, logger); err != nil {
		logger.Error("Ошибка миграций БД", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// 4. Подключение к PostgreSQL (pgxpool)
	ctx := context.Background()
	pool, err := database.Connect(ctx, cfg, logger)
	if err != nil {
		logger.Error("Ошибка подключения к PostgreSQL", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer pool.Close()

	// 5. Каталоги локализации
	bundle := i18n.NewBundle(logger)
	if err := i18n.LoadFromEmbedFS(bundle, logger); err != nil {
		logger.Error("Ошибка загрузки каталогов локализации", slog.String("error", err.Error()))
		os.Exit(1)
	}
	env := envelope.NewWriter(bundle, cfg.DefaultLocale)

	// 6. Подписант JWT платформы
	signer, err := token.NewSigner(cfg.JWTPrivateKeyPath, cfg.JWTIssuer, cfg.JWTTokenTTL)
	if err != nil {
		logger.Error("Ошибка загрузки ключа подписи", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// 7. Push-клиент (заглушка, если шлюз не настроен)
	var push pushclient.Sender = pushclient.NopSender{}
	if cfg.PushGatewayURL != "" {
		push = pushclient.New(cfg.PushGatewayURL, cfg.PushAPIKey, cfg.PushTimeout, logger)
		logger.Info("Push-шлюз настроен", slog.String("url", cfg.PushGatewayURL))
	} else {
		logger.Warn("BP_PUSH_GATEWAY_URL не задан, push-уведомления отключены")
	}

	// 8. Repositories
	txRunner := repository.NewTxRunner(pool)
	userRepo := repository.NewUserRepository(pool)
	companyRepo := repository.NewCompanyRepository(pool)
	dirRepo := repository.NewDirectoryRepository(pool)
	msgRepo := repository.NewMessageRepository(pool)
	notifRepo := repository.NewNotificationRepository(pool)
	groupRepo := repository.NewPropertyGroupRepository(pool)
	fileRepo := repository.NewFileRepository(pool)
	deviceRepo := repository.NewDeviceRepository(pool)

	// 9. Services
	hasher := password.NewHasher()
	identityCache := cache.NewIdentityCache(cfg.CacheSize, cfg.CacheTTL)

	registrationSvc := service.NewRegistrationService(userRepo, companyRepo, txRunner, hasher, logger)
	authSvc := service.NewAuthService(userRepo, hasher, signer, logger)
	profileSvc := service.NewProfileService(userRepo, companyRepo, txRunner, identityCache, logger)
	accessSvc := service.NewAccessService(userRepo, logger)
	directorySvc := service.NewDirectoryService(dirRepo, txRunner, logger)
	messageSvc := service.NewMessageService(msgRepo, userRepo, deviceRepo, txRunner, push, logger)
	notificationSvc := service.NewNotificationService(notifRepo, logger)
	groupSvc := service.NewPropertyGroupService(groupRepo, accessSvc, txRunner, logger)
	deviceSvc := service.NewDeviceService(deviceRepo, txRunner, logger)
	uploadSvc := service.NewUploadService(fileRepo, txRunner, cfg.UploadDir, cfg.FileBaseURL, cfg.MaxUploadSize, logger)
	adminSvc := service.NewAdminService(userRepo, companyRepo, txRunner, identityCache, logger)

	// 10. API handlers
	api := handlers.NewAPIHandler(
		env,
		registrationSvc, authSvc, profileSvc,
		directorySvc, messageSvc, notificationSvc,
		groupSvc, deviceSvc, uploadSvc,
		accessSvc, adminSvc,
		logger,
	)
	health := handlers.NewHealthHandler(database.NewReadinessChecker(pool), signer)

	// 11. JWT middleware на собственных ключах платформы
	kf, err := signer.Keyfunc()
	if err != nil {
		logger.Error("Ошибка создания keyfunc", slog.String("error", err.Error()))
		os.Exit(1)
	}
	jwtAuth := middleware.NewJWTAuth(kf, cfg.JWTIssuer, cfg.JWTLeeway, profileSvc, env)

	// 12. HTTP-сервер с graceful shutdown
	srv := server.New(cfg, logger, env, api, health, jwtAuth)
	if err := srv.Run(); err != nil {
		logger.Error("Ошибка HTTP-сервера", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
