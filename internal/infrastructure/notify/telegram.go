// Package notify delivers order payloads to the external Telegram
// notification endpoint and builds the human-mediated fallback deep
// link used when automated delivery fails.
package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"go.uber.org/zap"

	"github.com/pzf-studio/MAshop-sub000/internal/domain/order"
	"github.com/pzf-studio/MAshop-sub000/internal/domain/shared"
)

// Config holds the notification channel settings.
type Config struct {
	BotToken   string
	ChatID     string
	BotName    string // fallback deep-link target, e.g. "MA_Furniture_bot"
	APIBaseURL string // override for tests; default api.telegram.org
	Timeout    time.Duration
}

const defaultAPIBaseURL = "https://api.telegram.org"

// sendMessageRequest is the outbound endpoint payload.
type sendMessageRequest struct {
	ChatID    string `json:"chat_id"`
	Text      string `json:"text"`
	ParseMode string `json:"parse_mode"`
}

// sendMessageResponse is the endpoint acknowledgement. Delivery counts
// only when OK is true; anything else is a delivery failure.
type sendMessageResponse struct {
	OK          bool   `json:"ok"`
	Description string `json:"description"`
	Result      struct {
		MessageID int64 `json:"message_id"`
	} `json:"result"`
}

// TelegramNotifier sends order messages through the Bot API.
type TelegramNotifier struct {
	cfg    Config
	client *http.Client
	logger *zap.Logger
}

// NewTelegramNotifier creates a notifier. A zero Timeout defaults to
// ten seconds.
func NewTelegramNotifier(cfg Config, logger *zap.Logger) *TelegramNotifier {
	if cfg.APIBaseURL == "" {
		cfg.APIBaseURL = defaultAPIBaseURL
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}
	return &TelegramNotifier{
		cfg:    cfg,
		client: &http.Client{Timeout: cfg.Timeout},
		logger: logger,
	}
}

// SendOrder makes exactly one delivery attempt. Transport errors,
// non-JSON bodies and a false acknowledgement all come back as
// DELIVERY_FAILED domain errors; the caller decides about the
// fallback, never this client.
func (n *TelegramNotifier) SendOrder(ctx context.Context, payload order.Payload) error {
	body, err := json.Marshal(sendMessageRequest{
		ChatID:    n.cfg.ChatID,
		Text:      FormatOrderHTML(payload),
		ParseMode: "HTML",
	})
	if err != nil {
		return err
	}

	endpoint := fmt.Sprintf("%s/bot%s/sendMessage", n.cfg.APIBaseURL, n.cfg.BotToken)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.client.Do(req)
	if err != nil {
		return shared.NewDeliveryError("notification endpoint unreachable: " + err.Error())
	}
	defer resp.Body.Close()

	var ack sendMessageResponse
	if err := json.NewDecoder(resp.Body).Decode(&ack); err != nil {
		return shared.NewDeliveryError("notification endpoint returned an unreadable response")
	}
	if !ack.OK {
		msg := ack.Description
		if msg == "" {
			msg = fmt.Sprintf("notification endpoint rejected the order (status %d)", resp.StatusCode)
		}
		return shared.NewDeliveryError(msg)
	}

	n.logger.Info("order delivered to notification endpoint",
		zap.Int64("message_id", ack.Result.MessageID),
		zap.Int64("order_total", payload.Total),
	)
	return nil
}

// FallbackLink builds the pre-filled deep link into the messaging
// client carrying a plain-text rendering of the same payload. Opening
// it is a human-mediated, unconfirmed delivery path.
func (n *TelegramNotifier) FallbackLink(payload order.Payload) string {
	return fmt.Sprintf("https://t.me/%s?text=%s",
		n.cfg.BotName, url.QueryEscape(FormatOrderText(payload)))
}
