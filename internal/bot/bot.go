package bot

import (
	"context"
	"log/slog"
	"strconv"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/margianalogistics/logibot/internal/order"
	"github.com/margianalogistics/logibot/internal/subscription"
	"github.com/margianalogistics/logibot/pkg/logger"
)

// Transport delivers replies back to the chat.
type Transport interface {
	Send(ctx context.Context, chatID, text string) error
	SendDocument(ctx context.Context, chatID, filename string, data []byte, caption string) error
}

// ReportRenderer produces archived PDF reports.
type ReportRenderer interface {
	OrderReport(ctx context.Context, o order.Order, generatedAt time.Time) ([]byte, string, error)
	SummaryReport(ctx context.Context, stats order.Statistics, generatedAt time.Time) ([]byte, string, error)
}

// Healthcheck probes one dependency; nil means healthy.
type Healthcheck func(ctx context.Context) error

// Bot routes incoming chat commands to the order store, subscription
// registry, and report renderer, and replies over the transport.
type Bot struct {
	orders      order.Store
	subs        subscription.Registry
	reports     ReportRenderer
	transport   Transport
	checks      map[string]Healthcheck
	admins      map[string]bool
	contacts    string
	defaultLead time.Duration
	now         func() time.Time
	log         *slog.Logger
}

// Option configures a Bot.
type Option func(*Bot)

// WithHealthchecks registers named dependency probes for /dbstatus.
func WithHealthchecks(checks map[string]Healthcheck) Option {
	return func(b *Bot) { b.checks = checks }
}

// WithAdmins restricts /dbstatus to the given chat ids. An empty list
// leaves the command open to everyone.
func WithAdmins(chatIDs []string) Option {
	return func(b *Bot) {
		if len(chatIDs) == 0 {
			return
		}
		b.admins = make(map[string]bool, len(chatIDs))
		for _, id := range chatIDs {
			b.admins[id] = true
		}
	}
}

// WithContacts sets the text returned by /contacts.
func WithContacts(text string) Option {
	return func(b *Bot) {
		if text != "" {
			b.contacts = text
		}
	}
}

// WithDefaultLead sets the lead window shown for recipients without a
// custom one. Must match the engine's default.
func WithDefaultLead(d time.Duration) Option {
	return func(b *Bot) {
		if d > 0 {
			b.defaultLead = d
		}
	}
}

// WithClock substitutes the time source. Used in tests.
func WithClock(now func() time.Time) Option {
	return func(b *Bot) {
		if now != nil {
			b.now = now
		}
	}
}

// WithBotLogger sets the logger for the Bot.
func WithBotLogger(log *slog.Logger) Option {
	return func(b *Bot) {
		if log != nil {
			b.log = log
		}
	}
}

// New creates a bot over its collaborators.
func New(orders order.Store, subs subscription.Registry, reports ReportRenderer, transport Transport, opts ...Option) *Bot {
	b := &Bot{
		orders:      orders,
		subs:        subs,
		reports:     reports,
		transport:   transport,
		contacts:    defaultContacts,
		defaultLead: 48 * time.Hour,
		now:         time.Now,
		log:         slog.Default(),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Run consumes updates until ctx is canceled or the channel closes.
// Handler failures are logged per update and never stop the loop.
func (b *Bot) Run(ctx context.Context, updates <-chan tgbotapi.Update) error {
	b.log.InfoContext(ctx, "bot update loop starting")

	for {
		select {
		case <-ctx.Done():
			b.log.InfoContext(ctx, "bot update loop stopping")
			return ctx.Err()
		case update, ok := <-updates:
			if !ok {
				return nil
			}
			b.HandleUpdate(ctx, update)
		}
	}
}

// HandleUpdate processes one incoming update. Non-command messages and
// non-message updates are ignored.
func (b *Bot) HandleUpdate(ctx context.Context, update tgbotapi.Update) {
	msg := update.Message
	if msg == nil || !msg.IsCommand() {
		return
	}

	chatID := strconv.FormatInt(msg.Chat.ID, 10)
	command := msg.Command()
	args := strings.TrimSpace(msg.CommandArguments())

	reply, err := b.dispatch(ctx, chatID, command, args)
	if err != nil {
		b.log.ErrorContext(ctx, "command failed",
			slog.String("command", command),
			logger.ChatID(chatID),
			logger.Error(err))
		reply = "Something went wrong, please try again later."
	}
	if reply == "" {
		return
	}

	if err := b.transport.Send(ctx, chatID, reply); err != nil {
		b.log.ErrorContext(ctx, "failed to send reply",
			slog.String("command", command),
			logger.ChatID(chatID),
			logger.Error(err))
	}
}

func (b *Bot) dispatch(ctx context.Context, chatID, command, args string) (string, error) {
	switch command {
	case "start":
		return b.handleStart(ctx, chatID)
	case "help":
		return helpText, nil
	case "active":
		return b.handleActive(ctx, args)
	case "today":
		return b.handleToday(ctx)
	case "search":
		return b.handleSearch(ctx, args)
	case "status":
		return b.handleStatus(ctx, args)
	case "summary":
		return b.handleSummary(ctx, args)
	case "report":
		return b.handleReport(ctx, chatID, args)
	case "contacts":
		return b.contacts, nil
	case "subscribe":
		return b.handleSubscribe(ctx, chatID)
	case "unsubscribe":
		return b.handleUnsubscribe(ctx, chatID)
	case "settings":
		return b.handleSettings(ctx, chatID, args)
	case "dbstatus":
		if len(b.admins) > 0 && !b.admins[chatID] {
			return "This command is restricted to administrators.", nil
		}
		return b.handleDBStatus(ctx)
	default:
		return "Unknown command. Try /help.", nil
	}
}
