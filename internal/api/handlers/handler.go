// handler.go — основной обработчик API Module.
// Объединяет доменные сервисы и делегирует им запросы; исход каждой
// операции оформляется единым конвертом {currentRole, data, error, message}.
package handlers

import (
	"log/slog"
	"net/http"

	"github.com/rl-Rahul/balu-property-sub001/internal/api/envelope"
	"github.com/rl-Rahul/balu-property-sub001/internal/apperr"
	"github.com/rl-Rahul/balu-property-sub001/internal/service"
)

// APIHandler — основной обработчик API.
type APIHandler struct {
	env          *envelope.Writer
	registration *service.RegistrationService
	auth         *service.AuthService
	profile      *service.ProfileService
	directory    *service.DirectoryService
	messages     *service.MessageService
	notification *service.NotificationService
	groups       *service.PropertyGroupService
	devices      *service.DeviceService
	uploads      *service.UploadService
	access       *service.AccessService
	admin        *service.AdminService
	logger       *slog.Logger
}

// NewAPIHandler создаёт основной обработчик API.
func NewAPIHandler(
	env *envelope.Writer,
	registration *service.RegistrationService,
	auth *service.AuthService,
	profile *service.ProfileService,
	directory *service.DirectoryService,
	messages *service.MessageService,
	notification *service.NotificationService,
	groups *service.PropertyGroupService,
	devices *service.DeviceService,
	uploads *service.UploadService,
	access *service.AccessService,
	admin *service.AdminService,
	logger *slog.Logger,
) *APIHandler {
	return &APIHandler{
		env:          env,
		registration: registration,
		auth:         auth,
		profile:      profile,
		directory:    directory,
		messages:     messages,
		notification: notification,
		groups:       groups,
		devices:      devices,
		uploads:      uploads,
		access:       access,
		admin:        admin,
		logger:       logger.With(slog.String("component", "api_handler")),
	}
}

// respondError оформляет ошибку операции единым конвертом.
// Категория ошибки определяет HTTP-статус; текст инфраструктурных
// ошибок остаётся в логах и наружу не уходит.
func (h *APIHandler) respondError(w http.ResponseWriter, r *http.Request, route string, err error) {
	appErr := apperr.From(err)

	if appErr.Kind == apperr.KindInternal {
		h.logger.Error("ошибка обработки запроса",
			slog.String("route", route),
			slog.String("error", err.Error()),
		)
	} else {
		h.logger.Warn("запрос отклонён",
			slog.String("route", route),
			slog.String("message_key", appErr.MessageKey),
		)
	}

	var data any
	if appErr.Kind == apperr.KindValidation {
		// Упорядоченный список переведённых сообщений о полях.
		fields := make([]string, 0, len(appErr.Fields))
		for _, f := range appErr.Fields {
			fields = append(fields, h.env.Translate(r.Context(), f))
		}
		data = fields
	}

	h.env.Failure(r.Context(), w, appErr.HTTPStatus(), appErr.MessageKey, data)
}

// validate прогоняет форму и оформляет нарушения ошибкой валидации.
// Возвращает false, если запрос уже завершён ответом.
func (h *APIHandler) validate(w http.ResponseWriter, r *http.Request, route string, violations []string) bool {
	if len(violations) == 0 {
		return true
	}
	h.respondError(w, r, route, apperr.Validation(violations))
	return false
}
