package postmarktx

import (
	"errors"
	"fmt"
	"sync"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config holds the Postmark integration configuration.
// ServerToken is required for any outbound sending. AccountToken is only
// needed for administrative API calls and may stay empty.
// ShouldJoinTx controls the default dispatch policy: when true, sends are
// deferred until the request's unit of work commits.
type Config struct {
	ServerToken  string `env:"POSTMARK_SERVER_TOKEN,required"`
	AccountToken string `env:"POSTMARK_ACCOUNT_TOKEN"`
	ShouldJoinTx bool   `env:"POSTMARK_SHOULD_JOIN_TX" envDefault:"true"`
	DefaultFrom  string `env:"POSTMARK_DEFAULT_FROM"`
	ReplyTo      string `env:"POSTMARK_REPLY_TO"`
}

var defaultEnvLoaded sync.Once

// LoadConfig parses Config from environment variables.
// The default .env file is loaded once per process if present.
func LoadConfig() (Config, error) {
	defaultEnvLoaded.Do(func() {
		// Ignore errors - the .env file might not exist and that's ok
		_ = godotenv.Load()
	})

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, errors.Join(ErrInvalidConfig, err)
	}
	return cfg, nil
}

// MustLoadConfig works like LoadConfig but panics on failure.
// Missing credentials should prevent startup rather than surface as runtime
// send errors.
func MustLoadConfig() Config {
	cfg, err := LoadConfig()
	if err != nil {
		panic(fmt.Sprintf("postmarktx: failed to load configuration: %v", err))
	}
	return cfg
}
