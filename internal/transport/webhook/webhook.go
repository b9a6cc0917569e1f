package webhook

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"fotobot/internal/transport"
)

// Client шлёт исходящие сообщения в шлюз мессенджера обычным POST с JSON.
// Сам шлюз (телеграм, что угодно) живёт за этим URL.
type Client struct {
	url    string
	client *http.Client
}

func New(url string) *Client {
	return &Client{
		url: url,
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

type outMessage struct {
	Type    string             `json:"type"`
	UserID  int64              `json:"user_id,omitempty"`
	ChatID  int64              `json:"chat_id,omitempty"`
	Text    string             `json:"text,omitempty"`
	Prompt  string             `json:"prompt,omitempty"`
	Markup  string             `json:"markup,omitempty"`
	Choices []transport.Choice `json:"choices,omitempty"`
}

func (c *Client) SendText(ctx context.Context, userID int64, text string, opts transport.SendOptions) error {
	return c.post(ctx, outMessage{
		Type:   "text",
		UserID: userID,
		Text:   text,
		Markup: string(opts.Markup),
	})
}

func (c *Client) SendChoices(ctx context.Context, userID int64, prompt string, choices []transport.Choice) error {
	return c.post(ctx, outMessage{
		Type:    "choices",
		UserID:  userID,
		Prompt:  prompt,
		Choices: choices,
	})
}

func (c *Client) SendToChannel(ctx context.Context, chatID int64, text string) error {
	return c.post(ctx, outMessage{
		Type:   "channel",
		ChatID: chatID,
		Text:   text,
		Markup: string(transport.MarkupMarkdown),
	})
}

func (c *Client) post(ctx context.Context, msg outMessage) error {
	const op = "transport.webhook.post"

	body, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("%s: ошибка отправки в шлюз: %w", op, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("%s: шлюз вернул статус %d", op, resp.StatusCode)
	}
	return nil
}
