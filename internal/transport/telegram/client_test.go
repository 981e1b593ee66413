package telegram_test

import (
	"context"
	"errors"
	"testing"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/margianalogistics/logibot/internal/transport/telegram"
)

type stubAPI struct {
	sent []tgbotapi.Chattable
	err  error
}

func (s *stubAPI) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	if s.err != nil {
		return tgbotapi.Message{}, s.err
	}
	s.sent = append(s.sent, c)
	return tgbotapi.Message{MessageID: len(s.sent)}, nil
}

func newTestClient(t *testing.T, api *stubAPI) *telegram.Client {
	t.Helper()
	c, err := telegram.NewClient(telegram.Config{BotToken: "test-token"}, telegram.WithAPI(api))
	require.NoError(t, err)
	return c
}

func TestSend(t *testing.T) {
	api := &stubAPI{}
	c := newTestClient(t, api)

	require.NoError(t, c.Send(context.Background(), "123456", "hello"))

	require.Len(t, api.sent, 1)
	msg, ok := api.sent[0].(tgbotapi.MessageConfig)
	require.True(t, ok)
	assert.Equal(t, int64(123456), msg.ChatID)
	assert.Equal(t, "hello", msg.Text)
	assert.Equal(t, tgbotapi.ModeMarkdown, msg.ParseMode)
}

func TestSend_InvalidChatID(t *testing.T) {
	c := newTestClient(t, &stubAPI{})

	err := c.Send(context.Background(), "not-a-number", "hello")
	assert.ErrorIs(t, err, telegram.ErrInvalidChatID)
}

func TestSend_APIError(t *testing.T) {
	c := newTestClient(t, &stubAPI{err: errors.New("403: bot was blocked")})

	err := c.Send(context.Background(), "123", "hello")
	assert.ErrorIs(t, err, telegram.ErrSendFailed)
}

func TestSend_CanceledContext(t *testing.T) {
	api := &stubAPI{}
	c := newTestClient(t, api)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := c.Send(ctx, "123", "hello")
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, api.sent)
}

func TestSendDocument(t *testing.T) {
	api := &stubAPI{}
	c := newTestClient(t, api)

	data := []byte("%PDF-1.4 test")
	require.NoError(t, c.SendDocument(context.Background(), "987", "report.pdf", data, "Weekly report"))

	require.Len(t, api.sent, 1)
	doc, ok := api.sent[0].(tgbotapi.DocumentConfig)
	require.True(t, ok)
	assert.Equal(t, int64(987), doc.ChatID)
	assert.Equal(t, "Weekly report", doc.Caption)

	file, ok := doc.File.(tgbotapi.FileBytes)
	require.True(t, ok)
	assert.Equal(t, "report.pdf", file.Name)
	assert.Equal(t, data, file.Bytes)
}
