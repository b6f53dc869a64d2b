// Пакет pushclient — HTTP-клиент для отправки push-уведомлений
// через внешний push-шлюз. Операция: Send (POST /v1/push).
package pushclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"
)

// PushMessage — полезная нагрузка push-уведомления.
type PushMessage struct {
	Tokens []string          `json:"tokens"`
	Title  string            `json:"title"`
	Body   string            `json:"body"`
	Data   map[string]string `json:"data,omitempty"`
}

// pushResponse — ответ шлюза на POST /v1/push.
type pushResponse struct {
	Delivered int `json:"delivered"`
	Failed    int `json:"failed"`
}

// Sender — интерфейс отправки push-уведомлений.
// Позволяет подменять клиент в тестах.
type Sender interface {
	Send(ctx context.Context, msg PushMessage) error
}

// Client — HTTP-клиент push-шлюза.
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	logger     *slog.Logger
}

// New создаёт клиент push-шлюза.
// baseURL — адрес шлюза; apiKey — ключ авторизации запросов.
func New(baseURL, apiKey string, timeout time.Duration, logger *slog.Logger) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		logger:     logger.With(slog.String("component", "push_client")),
	}
}

// Send отправляет уведомление на все переданные токены.
// Пустой список токенов — no-op.
func (c *Client) Send(ctx context.Context, msg PushMessage) error {
	if len(msg.Tokens) == 0 {
		return nil
	}

	payload, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("сериализация push-запроса: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/push", bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("создание push-запроса: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("запрос к push-шлюзу: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("push-шлюз вернул статус %d: %s", resp.StatusCode, string(body))
	}

	var pr pushResponse
	if err := json.NewDecoder(resp.Body).Decode(&pr); err != nil {
		return fmt.Errorf("декодирование ответа push-шлюза: %w", err)
	}

	c.logger.Debug("push-уведомление отправлено",
		slog.Int("delivered", pr.Delivered),
		slog.Int("failed", pr.Failed),
	)
	return nil
}

// NopSender — заглушка, используется когда push-шлюз не настроен.
type NopSender struct{}

// Send ничего не делает.
func (NopSender) Send(_ context.Context, _ PushMessage) error { return nil }
