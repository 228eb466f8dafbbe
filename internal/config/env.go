package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "KUDASTAT_"

// DotEnvFile is read into the environment before overrides are applied.
const DotEnvFile = ".env"

// LoadDotEnv copies variables from the dotenv file at path into the process
// environment. Variables already set win. A missing file is not an error.
func LoadDotEnv(path string) error {
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("loading %s: %w", path, err)
	}
	return nil
}

// envOverrides mirrors the settings that can be overridden from the
// environment. Unset variables leave their field nil.
type envOverrides struct {
	LogLevel       *string        `koanf:"KUDASTAT_LOG_LEVEL"`
	LogJSON        *bool          `koanf:"KUDASTAT_LOG_JSON"`
	ServerAddr     *string        `koanf:"KUDASTAT_SERVER_ADDR"`
	MaxUploadBytes *int64         `koanf:"KUDASTAT_SERVER_MAX_UPLOAD_BYTES"`
	RateInterval   *time.Duration `koanf:"KUDASTAT_RATE_LIMIT_INTERVAL"`
	RateBurst      *int           `koanf:"KUDASTAT_RATE_LIMIT_BURST"`
	SavingsKeyword *string        `koanf:"KUDASTAT_SAVINGS_KEYWORD"`
	TopRecipients  *int           `koanf:"KUDASTAT_TOP_RECIPIENTS"`
	CurrencySymbol *string        `koanf:"KUDASTAT_CURRENCY_SYMBOL"`
}

// ApplyEnv overrides cfg with any KUDASTAT_* environment variables.
func ApplyEnv(cfg *Config) error {
	k := koanf.New(".")
	if err := k.Load(env.Provider(EnvPrefix, ".", nil), nil); err != nil {
		return fmt.Errorf("loading environment: %w", err)
	}

	var o envOverrides
	if err := k.UnmarshalWithConf("", &o, koanf.UnmarshalConf{Tag: "koanf", FlatPaths: true}); err != nil {
		return fmt.Errorf("parsing environment: %w", err)
	}

	set(&cfg.Log.Level, o.LogLevel)
	set(&cfg.Log.JSON, o.LogJSON)
	set(&cfg.Server.Addr, o.ServerAddr)
	set(&cfg.Server.MaxUploadBytes, o.MaxUploadBytes)
	set(&cfg.Server.RateLimit.Interval, o.RateInterval)
	set(&cfg.Server.RateLimit.Burst, o.RateBurst)
	set(&cfg.Report.SavingsKeyword, o.SavingsKeyword)
	set(&cfg.Report.TopRecipients, o.TopRecipients)
	set(&cfg.Report.CurrencySymbol, o.CurrencySymbol)
	return nil
}

func set[T any](dst *T, v *T) {
	if v != nil {
		*dst = *v
	}
}
