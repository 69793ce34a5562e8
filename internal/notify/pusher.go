// Package notify records notifications and pushes them to user devices.
package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/go-telegram/bot"
	"github.com/vmkteam/embedlog"
)

// Pusher delivers a title and body to a device token.
type Pusher interface {
	Name() string
	Push(ctx context.Context, deviceToken, title, body string) error
}

// TelegramPusher pushes through a Telegram bot. Device tokens are chat IDs.
type TelegramPusher struct {
	api *bot.Bot
}

// NewTelegramPusher creates a TelegramPusher. Extra options are passed to the bot client.
func NewTelegramPusher(token string, opts ...bot.Option) (*TelegramPusher, error) {
	if token == "" {
		return nil, errors.New("telegram token is required")
	}

	opts = append([]bot.Option{bot.WithSkipGetMe()}, opts...)
	api, err := bot.New(token, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create bot: %w", err)
	}

	return &TelegramPusher{api: api}, nil
}

// Name implements Pusher.
func (p *TelegramPusher) Name() string { return "telegram" }

// Push implements Pusher.
func (p *TelegramPusher) Push(ctx context.Context, deviceToken, title, body string) error {
	var chatID any = deviceToken
	if id, err := strconv.ParseInt(deviceToken, 10, 64); err == nil {
		chatID = id
	}

	_, err := p.api.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: chatID,
		Text:   title + "\n" + body,
	})
	if err != nil {
		return fmt.Errorf("telegram send: %w", err)
	}
	return nil
}

type webhookPayload struct {
	Token string `json:"token"`
	Title string `json:"title"`
	Body  string `json:"body"`
}

// WebhookPusher posts notifications as JSON to a push gateway.
type WebhookPusher struct {
	url    string
	apiKey string
	client *http.Client
}

// NewWebhookPusher creates a WebhookPusher. apiKey is sent as a bearer token when set.
func NewWebhookPusher(url, apiKey string, client *http.Client) *WebhookPusher {
	if client == nil {
		client = http.DefaultClient
	}
	return &WebhookPusher{url: url, apiKey: apiKey, client: client}
}

// Name implements Pusher.
func (p *WebhookPusher) Name() string { return "webhook" }

// Push implements Pusher.
func (p *WebhookPusher) Push(ctx context.Context, deviceToken, title, body string) error {
	payload, err := json.Marshal(webhookPayload{Token: deviceToken, Title: title, Body: body})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.url, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if p.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+p.apiKey)
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return fmt.Errorf("push gateway: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("push gateway returned %d: %s", resp.StatusCode, bytes.TrimSpace(msg))
	}
	return nil
}

// LogPusher only logs notifications.
type LogPusher struct {
	log embedlog.Logger
}

// NewLogPusher creates a LogPusher.
func NewLogPusher(log embedlog.Logger) *LogPusher {
	return &LogPusher{log: log}
}

// Name implements Pusher.
func (p *LogPusher) Name() string { return "log" }

// Push implements Pusher.
func (p *LogPusher) Push(ctx context.Context, deviceToken, title, body string) error {
	p.log.Print(ctx, "push", "device_token", deviceToken, "title", title, "body", body)
	return nil
}
