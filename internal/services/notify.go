package services

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog"
)

// Notifier forwards a human-readable log line to the operational
// notification sink. Delivery is best-effort: implementations swallow
// failures and must never let them affect a user-facing action.
type Notifier interface {
	Notify(ctx context.Context, text string)
}

// NotifierFunc adapts a function to the Notifier interface.
type NotifierFunc func(ctx context.Context, text string)

func (f NotifierFunc) Notify(ctx context.Context, text string) { f(ctx, text) }

// NoopNotifier discards every notification.
type NoopNotifier struct{}

func (NoopNotifier) Notify(context.Context, string) {}

// TelegramNotifier relays log lines to a Telegram chat via the bot API.
// Notify returns immediately; the send happens in the background with its
// own timeout, and errors are logged locally and dropped.
type TelegramNotifier struct {
	botToken string
	chatID   string
	baseURL  string
	client   *http.Client
	logger   zerolog.Logger
}

// NewTelegramNotifier builds a notifier for the given bot credentials. With
// empty credentials the notifier only logs locally, which keeps development
// setups working without a bot.
func NewTelegramNotifier(botToken, chatID string, logger zerolog.Logger) *TelegramNotifier {
	return &TelegramNotifier{
		botToken: botToken,
		chatID:   chatID,
		baseURL:  "https://api.telegram.org",
		client:   &http.Client{Timeout: 5 * time.Second},
		logger:   logger,
	}
}

// Notify queues the text for delivery and returns without waiting.
func (n *TelegramNotifier) Notify(ctx context.Context, text string) {
	n.logger.Info().Str("text", text).Msg("notification")

	if n.botToken == "" || n.chatID == "" {
		return
	}
	go n.send(context.WithoutCancel(ctx), text)
}

func (n *TelegramNotifier) send(ctx context.Context, text string) {
	payload, err := json.Marshal(map[string]string{
		"chat_id": n.chatID,
		"text":    text,
	})
	if err != nil {
		n.logger.Warn().Err(err).Msg("encode telegram payload")
		return
	}

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	url := n.baseURL + "/bot" + n.botToken + "/sendMessage"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		n.logger.Warn().Err(err).Msg("build telegram request")
		return
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.client.Do(req)
	if err != nil {
		n.logger.Warn().Err(err).Msg("send telegram notification")
		return
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	if resp.StatusCode != http.StatusOK {
		n.logger.Warn().Int("status", resp.StatusCode).Msg("telegram rejected notification")
	}
}
