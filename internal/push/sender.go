package push

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"
)

// ErrProviderNotConfigured - адрес провайдера push-уведомлений не задан
var ErrProviderNotConfigured = errors.New("push provider is not configured")

// Sender доставляет одно сообщение внешнему провайдеру
type Sender interface {
	Send(ctx context.Context, msg Message) error
}

// HTTPSender отправляет сообщения в FCM-совместимый HTTP API
type HTTPSender struct {
	url        string
	serverKey  string
	httpClient *http.Client
}

func NewHTTPSender(url, serverKey string, timeout time.Duration) *HTTPSender {
	return &HTTPSender{
		url:       url,
		serverKey: serverKey,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

type providerNotification struct {
	Title string `json:"title"`
	Body  string `json:"body"`
}

type providerRequest struct {
	To           string               `json:"to"`
	Notification providerNotification `json:"notification"`
	Data         map[string]string    `json:"data,omitempty"`
}

func (s *HTTPSender) Send(ctx context.Context, msg Message) error {
	if s.url == "" {
		return ErrProviderNotConfigured
	}

	body, err := json.Marshal(providerRequest{
		To:           msg.Token,
		Notification: providerNotification{Title: msg.Title, Body: msg.Body},
		Data:         msg.Data,
	})
	if err != nil {
		return fmt.Errorf("failed to marshal push request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create push request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if s.serverKey != "" {
		req.Header.Set("Authorization", "key="+s.serverKey)
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send push request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("push provider responded with status %d", resp.StatusCode)
	}
	return nil
}
