package notify

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
	tele "gopkg.in/telebot.v4"

	"github.com/hyperifyio/jobdigest/internal/httpclient"
)

// DefaultTelegramAPI is the public Bot API base URL.
const DefaultTelegramAPI = "https://api.telegram.org"

// TelegramConfig identifies the bot and the destination chat.
type TelegramConfig struct {
	Token string
	// ChatID is a numeric chat id or an @channel username.
	ChatID  string
	APIURL  string
	Timeout time.Duration
}

// Telegram sends messages through the Bot API sendMessage method with link
// previews disabled.
type Telegram struct {
	bot  *tele.Bot
	chat chatRecipient
}

// chatRecipient lets string chat ids (numeric or @username) reach telebot as-is.
type chatRecipient string

func (c chatRecipient) Recipient() string { return string(c) }

// NewTelegram builds an offline bot: no getMe round-trip happens until the
// first Send.
func NewTelegram(cfg TelegramConfig) (*Telegram, error) {
	if strings.TrimSpace(cfg.Token) == "" {
		return nil, errors.New("telegram token is empty")
	}
	if strings.TrimSpace(cfg.ChatID) == "" {
		return nil, errors.New("telegram chat id is empty")
	}
	api := strings.TrimRight(strings.TrimSpace(cfg.APIURL), "/")
	if api == "" {
		api = DefaultTelegramAPI
	}
	b, err := tele.NewBot(tele.Settings{
		URL:     api,
		Token:   strings.TrimSpace(cfg.Token),
		Offline: true,
		Client:  httpclient.NewHTTPClient(cfg.Timeout),
	})
	if err != nil {
		return nil, fmt.Errorf("telegram bot: %w", err)
	}
	return &Telegram{bot: b, chat: chatRecipient(strings.TrimSpace(cfg.ChatID))}, nil
}

func (t *Telegram) Name() string { return "telegram" }

// Send posts text to the configured chat. It is a single attempt.
// telebot takes no context, so cancellation is only honored before the
// request starts; an in-flight request is bounded by the client timeout.
func (t *Telegram) Send(ctx context.Context, text string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	msg, err := t.bot.Send(t.chat, text, &tele.SendOptions{DisableWebPagePreview: true})
	if err != nil {
		return fmt.Errorf("telegram send: %w", err)
	}
	if msg != nil {
		zerolog.Ctx(ctx).Debug().Int("message_id", msg.ID).Msg("telegram delivered digest")
	}
	return nil
}
