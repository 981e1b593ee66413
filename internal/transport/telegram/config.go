package telegram

// Config holds Telegram transport settings loaded from the environment.
type Config struct {
	BotToken      string `env:"TELEGRAM_BOT_TOKEN,required"`
	Debug         bool   `env:"TELEGRAM_DEBUG" envDefault:"false"`
	UpdateTimeout int    `env:"TELEGRAM_UPDATE_TIMEOUT" envDefault:"30"`
}
