package notify

import (
	"context"
	"errors"
	"fmt"
	"time"

	"fxrates-watch/internal/application"
	infraconfig "fxrates-watch/internal/infrastructure/config"
	"fxrates-watch/internal/infrastructure/httpx"
)

var _ application.Notifier = (*Webhook)(nil)

// Webhook posts {"content": message} to a Discord-style webhook. One attempt only.
type Webhook struct {
	Client  *httpx.Client
	Timeout time.Duration
}

type webhookPayload struct {
	Content string `json:"content"`
}

func (w *Webhook) Notify(ctx context.Context, webhookURL, message string) error {
	if webhookURL == "" {
		return errors.New("webhook: empty url")
	}
	if w.Client == nil {
		return errors.New("webhook: missing client")
	}
	timeout := w.Timeout
	if timeout <= 0 {
		timeout = infraconfig.DefaultNotifyTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	if err := w.Client.PostJSON(ctx, webhookURL, webhookPayload{Content: message}); err != nil {
		return fmt.Errorf("webhook: %w", err)
	}
	return nil
}
