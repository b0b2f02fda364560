// Package config resolves calcexam settings from flags, CALCEXAM_*
// environment variables and an optional calcexam.yaml file, in that order
// of precedence.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/abhisek/calcexam/internal/answer"
	"github.com/abhisek/calcexam/internal/bank"
	"github.com/abhisek/calcexam/internal/i18n"
	"github.com/abhisek/calcexam/internal/logger"
	"github.com/abhisek/calcexam/internal/timing"
)

// EnvPrefix prefixes environment overrides, e.g. CALCEXAM_LANG.
const EnvPrefix = "CALCEXAM"

// Flag names double as viper keys.
const (
	KeyConfig                = "config"
	KeyBank                  = "bank"
	KeyLang                  = "lang"
	KeySlowMultiplier        = "slow-multiplier"
	KeyFastFactor            = "fast-factor"
	KeyAcceptInfinityAliases = "accept-infinity-aliases"
	KeyVariable              = "variable"
	KeyLogLevel              = "log-level"
	KeyLogFormat             = "log-format"
	KeyLogFile               = "log-file"
	KeyAddr                  = "addr"
	KeySeed                  = "seed"
)

// Config holds the resolved settings.
type Config struct {
	// Bank is a bank file path; empty selects the built-in bank.
	Bank string

	// Lang is the UI and report language.
	Lang string

	SlowMultiplier        float64
	FastFactor            float64
	AcceptInfinityAliases bool

	// Variable is the free variable answers are written in.
	Variable string

	LogLevel  string
	LogFormat string
	LogFile   string

	// Addr is the HTTP listen address for serve.
	Addr string

	// Seed shuffles question order when non-zero.
	Seed uint64

	// File is the config file that was read, if any.
	File string
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		Lang:           i18n.DefaultLang,
		SlowMultiplier: timing.DefaultSlowMultiplier,
		FastFactor:     timing.DefaultFastFactor,
		Variable:       answer.DefaultVariable,
		LogLevel:       "info",
		LogFormat:      "console",
		Addr:           ":8080",
	}
}

// RegisterFlags adds every setting to fs with its default.
func RegisterFlags(fs *pflag.FlagSet) {
	d := Default()
	fs.String(KeyConfig, "", "Config file (default: calcexam.yaml in ., $HOME/.config/calcexam, /etc/calcexam)")
	fs.StringP(KeyBank, "b", d.Bank, "Question bank file (YAML or JSON); empty uses the built-in bank")
	fs.StringP(KeyLang, "l", d.Lang, "Language ("+strings.Join(i18n.Supported(), ", ")+")")
	fs.Float64(KeySlowMultiplier, d.SlowMultiplier, "Flag answers slower than this many times the minimum expected time")
	fs.Float64(KeyFastFactor, d.FastFactor, "Flag answers faster than this fraction of the minimum expected time")
	fs.Bool(KeyAcceptInfinityAliases, d.AcceptInfinityAliases, "Accept inf, infinity and ∞ as positive infinity (oo and zoo are always accepted)")
	fs.String(KeyVariable, d.Variable, "Free variable used in answers")
	fs.String(KeyLogLevel, d.LogLevel, "Log level (debug, info, warn, error)")
	fs.String(KeyLogFormat, d.LogFormat, "Log format (console, json)")
	fs.String(KeyLogFile, d.LogFile, "Write logs to this file")
	fs.StringP(KeyAddr, "a", d.Addr, "HTTP listen address")
	fs.Uint64(KeySeed, d.Seed, "Shuffle question order with this seed (0 keeps bank order)")
}

// Load resolves the settings for fs, which must have been set up with
// RegisterFlags.
func Load(fs *pflag.FlagSet) (Config, error) {
	v := viper.New()
	if err := v.BindPFlags(fs); err != nil {
		return Config{}, fmt.Errorf("bind flags: %w", err)
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if path := v.GetString(KeyConfig); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config %s: %w", path, err)
		}
	} else {
		v.SetConfigName("calcexam")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.config/calcexam")
		v.AddConfigPath("/etc/calcexam")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return Config{}, fmt.Errorf("read config: %w", err)
			}
		}
	}

	c := Config{
		Bank:                  v.GetString(KeyBank),
		Lang:                  v.GetString(KeyLang),
		SlowMultiplier:        v.GetFloat64(KeySlowMultiplier),
		FastFactor:            v.GetFloat64(KeyFastFactor),
		AcceptInfinityAliases: v.GetBool(KeyAcceptInfinityAliases),
		Variable:              v.GetString(KeyVariable),
		LogLevel:              v.GetString(KeyLogLevel),
		LogFormat:             v.GetString(KeyLogFormat),
		LogFile:               v.GetString(KeyLogFile),
		Addr:                  v.GetString(KeyAddr),
		Seed:                  v.GetUint64(KeySeed),
		File:                  v.ConfigFileUsed(),
	}
	return c, c.Validate()
}

// Validate checks the settings for consistency.
func (c Config) Validate() error {
	var errs []error
	if err := c.Policy().Validate(); err != nil {
		errs = append(errs, err)
	}
	if c.Variable == "" {
		errs = append(errs, errors.New("variable must not be empty"))
	}
	if _, err := logger.ParseLevel(c.LogLevel); err != nil {
		errs = append(errs, err)
	}
	switch strings.ToLower(c.LogFormat) {
	case "", "console", "text", "json":
	default:
		errs = append(errs, fmt.Errorf("unknown log format %q", c.LogFormat))
	}
	return errors.Join(errs...)
}

// Policy returns the timing thresholds.
func (c Config) Policy() timing.Policy {
	return timing.Policy{FastFactor: c.FastFactor, SlowMultiplier: c.SlowMultiplier}
}

// NormalizerOptions returns the answer normalizer settings.
func (c Config) NormalizerOptions() answer.Options {
	return answer.Options{Variable: c.Variable, AcceptInfinityAliases: c.AcceptInfinityAliases}
}

// LoggerOptions returns the logger settings.
func (c Config) LoggerOptions() logger.Options {
	return logger.Options{Level: c.LogLevel, Format: c.LogFormat, File: c.LogFile}
}

// LoadBank returns the configured bank, shuffled when Seed is set.
func (c Config) LoadBank(n *answer.Normalizer) (*bank.Bank, error) {
	b := bank.Default()
	if c.Bank != "" {
		var err error
		if b, err = bank.LoadFile(c.Bank, n); err != nil {
			return nil, err
		}
	}
	return b.Shuffled(c.Seed), nil
}
