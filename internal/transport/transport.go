package transport

import "context"

type Markup string

const (
	MarkupPlain    Markup = "plain"
	MarkupMarkdown Markup = "markdown"
)

type SendOptions struct {
	Markup Markup
}

// Choice — кнопка: подпись для пользователя и токен, который вернётся
// обратно при нажатии.
type Choice struct {
	Label string `json:"label"`
	Token string `json:"token"`
}

// Sender — исходящая сторона шлюза мессенджера. Таймауты и ретраи
// отправки — забота реализации, не ядра.
type Sender interface {
	SendText(ctx context.Context, userID int64, text string, opts SendOptions) error
	SendChoices(ctx context.Context, userID int64, prompt string, choices []Choice) error
	SendToChannel(ctx context.Context, chatID int64, text string) error
}
