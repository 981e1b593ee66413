package syncsvc

import "time"

// Config holds settings for the upstream order sync. An empty APIURL
// disables the sync job entirely.
type Config struct {
	APIURL   string        `env:"SYNC_API_URL"`
	APIToken string        `env:"SYNC_API_TOKEN"`
	Interval time.Duration `env:"SYNC_INTERVAL" envDefault:"15m"`
	Timeout  time.Duration `env:"SYNC_HTTP_TIMEOUT" envDefault:"30s"`
	Retries  int           `env:"SYNC_MAX_RETRIES" envDefault:"3"`
}

// Enabled reports whether sync is configured.
func (c Config) Enabled() bool {
	return c.APIURL != ""
}
