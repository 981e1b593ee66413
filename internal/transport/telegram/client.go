package telegram

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// API is the slice of the Bot API the client uses. Satisfied by
// *tgbotapi.BotAPI; narrowed so tests can substitute a double.
type API interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

// Client delivers chat messages and documents over the Telegram Bot API.
// It satisfies the dispatcher's Sender interface.
type Client struct {
	api       API
	parseMode string
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithAPI substitutes the underlying Bot API. Used in tests.
func WithAPI(api API) ClientOption {
	return func(c *Client) {
		if api != nil {
			c.api = api
		}
	}
}

// WithParseMode sets the message parse mode. Defaults to Markdown.
func WithParseMode(mode string) ClientOption {
	return func(c *Client) {
		if mode != "" {
			c.parseMode = mode
		}
	}
}

// NewClient connects to the Bot API using the configured token.
func NewClient(cfg Config, opts ...ClientOption) (*Client, error) {
	c := &Client{parseMode: tgbotapi.ModeMarkdown}
	for _, opt := range opts {
		opt(c)
	}

	if c.api == nil {
		api, err := tgbotapi.NewBotAPI(cfg.BotToken)
		if err != nil {
			return nil, fmt.Errorf("connect telegram bot api: %w", err)
		}
		api.Debug = cfg.Debug
		c.api = api
	}

	return c, nil
}

// Send delivers a text message to the chat. The context is honored up front;
// the underlying HTTP call is bounded by the Bot API client's own timeout.
func (c *Client) Send(ctx context.Context, chatID, text string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	id, err := parseChatID(chatID)
	if err != nil {
		return err
	}

	msg := tgbotapi.NewMessage(id, text)
	msg.ParseMode = c.parseMode
	if _, err := c.api.Send(msg); err != nil {
		return errors.Join(ErrSendFailed, err)
	}
	return nil
}

// SendDocument uploads a file to the chat with an optional caption.
func (c *Client) SendDocument(ctx context.Context, chatID, filename string, data []byte, caption string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	id, err := parseChatID(chatID)
	if err != nil {
		return err
	}

	doc := tgbotapi.NewDocument(id, tgbotapi.FileBytes{Name: filename, Bytes: data})
	doc.Caption = caption
	if _, err := c.api.Send(doc); err != nil {
		return errors.Join(ErrSendFailed, err)
	}
	return nil
}

// updatePoller is implemented by *tgbotapi.BotAPI; test doubles usually
// don't poll.
type updatePoller interface {
	GetUpdatesChan(config tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel
	StopReceivingUpdates()
}

// Updates starts long polling and returns the update channel plus a stop
// function. Fails when the underlying API does not support polling.
func (c *Client) Updates(cfg Config) (tgbotapi.UpdatesChannel, func(), error) {
	poller, ok := c.api.(updatePoller)
	if !ok {
		return nil, nil, ErrPollingUnsupported
	}

	u := tgbotapi.NewUpdate(0)
	u.Timeout = cfg.UpdateTimeout

	return poller.GetUpdatesChan(u), poller.StopReceivingUpdates, nil
}

func parseChatID(chatID string) (int64, error) {
	id, err := strconv.ParseInt(chatID, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidChatID, chatID)
	}
	return id, nil
}
