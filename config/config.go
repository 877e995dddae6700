/*
Package config loads session settings from a YAML file, .env files and SENDGRID_*
environment variables, in increasing order of precedence.
*/
package config

import (
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/neone/sendgrid-go/auth"
	"github.com/neone/sendgrid-go/encoding"
	"github.com/neone/sendgrid-go/sgerrors"
	"github.com/neone/sendgrid-go/validation"
	"golang.org/x/xerrors"
	"gopkg.in/yaml.v2"
)

// DefaultBaseURL is the root of the v3 API.
const DefaultBaseURL = "https://api.sendgrid.com"

// DefaultTimeout bounds a single call when the session builds its own http client.
const DefaultTimeout = 30 * time.Second

// Config is everything needed to build a session.
type Config struct {
	APIKey     string `yaml:"api_key"`
	Username   string `yaml:"username"`
	Password   string `yaml:"password"`
	OnBehalfOf string `yaml:"on_behalf_of"`

	BaseURL string        `yaml:"base_url" validate:"required,url"`
	Timeout time.Duration `yaml:"timeout" validate:"gte=0"`

	Log LogConfig `yaml:"log"`

	// Default strategies, applied to requests that keep the package defaults.
	Encoding StrategyConfig `yaml:"encoding"`
	Decoding StrategyConfig `yaml:"decoding"`
}

// LogConfig selects the logger output.
type LogConfig struct {
	Env   string `yaml:"env"`
	Level string `yaml:"level"`
}

// StrategyConfig names a date and binary policy.
type StrategyConfig struct {
	Dates      string `yaml:"dates"`
	DateLayout string `yaml:"date_layout"`
	Binary     string `yaml:"binary"`
}

// Default returns the configuration used when nothing is set.
func Default() *Config {
	return &Config{
		BaseURL: DefaultBaseURL,
		Timeout: DefaultTimeout,
		Log:     LogConfig{Env: "production", Level: "info"},
	}
}

// Parse reads YAML over the defaults. Environment variables are not applied.
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	if err := yaml.UnmarshalStrict(data, cfg); err != nil {
		return nil, xerrors.Errorf("error parsing config: %w", err)
	}
	return cfg, nil
}

/*
Load builds a Config from the YAML file at path, if path is not empty, then from
envFiles, then from the process environment. Env files never override variables
that are already set. The result is validated.
*/
func Load(path string, envFiles ...string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, xerrors.Errorf("error reading config: %w", err)
		}
		if cfg, err = Parse(data); err != nil {
			return nil, err
		}
	}

	if len(envFiles) > 0 {
		if err := godotenv.Load(envFiles...); err != nil {
			return nil, xerrors.Errorf("error loading env files: %w", err)
		}
	}

	if err := cfg.ApplyEnv(os.LookupEnv); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ApplyEnv overrides fields with the SENDGRID_* variables lookup finds.
func (cfg *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	fields := map[string]*string{
		"SENDGRID_API_KEY":         &cfg.APIKey,
		"SENDGRID_USERNAME":        &cfg.Username,
		"SENDGRID_PASSWORD":        &cfg.Password,
		"SENDGRID_ON_BEHALF_OF":    &cfg.OnBehalfOf,
		"SENDGRID_BASE_URL":        &cfg.BaseURL,
		"SENDGRID_LOG_ENV":         &cfg.Log.Env,
		"SENDGRID_LOG_LEVEL":       &cfg.Log.Level,
		"SENDGRID_DATE_ENCODING":   &cfg.Encoding.Dates,
		"SENDGRID_DATE_LAYOUT":     &cfg.Encoding.DateLayout,
		"SENDGRID_BINARY_ENCODING": &cfg.Encoding.Binary,
		"SENDGRID_DATE_DECODING":   &cfg.Decoding.Dates,
		"SENDGRID_DECODING_LAYOUT": &cfg.Decoding.DateLayout,
		"SENDGRID_BINARY_DECODING": &cfg.Decoding.Binary,
	}
	for name, field := range fields {
		if value, ok := lookup(name); ok {
			*field = value
		}
	}

	if value, ok := lookup("SENDGRID_TIMEOUT"); ok {
		timeout, err := time.ParseDuration(value)
		if err != nil {
			return sgerrors.InvalidParameter.New(
				"SENDGRID_TIMEOUT is not a duration", map[string]interface{}{"value": value}, err,
			)
		}
		cfg.Timeout = timeout
	}
	return nil
}

// Validate checks the base url, the timeout and the strategy names.
func (cfg *Config) Validate() error {
	if err := validation.Struct(cfg); err != nil {
		return err
	}
	if _, err := cfg.EncodingStrategy(); err != nil {
		return err
	}
	_, err := cfg.DecodingStrategy()
	return err
}

// Authentication returns the API key if one is set, else the username and
// password. It fails with sgerrors.AuthenticationMissing if neither is set.
func (cfg *Config) Authentication() (auth.Authentication, error) {
	if key := strings.TrimSpace(cfg.APIKey); key != "" {
		return auth.NewAPIKey(key), nil
	}
	if cfg.Username != "" || cfg.Password != "" {
		credential := auth.NewCredential(cfg.Username, cfg.Password)
		return credential, credential.Validate()
	}
	return auth.Authentication{}, sgerrors.AuthenticationMissing.New(
		"config has no api key or credential", nil, nil,
	)
}

// EncodingStrategy builds the configured default encoding strategy.
func (cfg *Config) EncodingStrategy() (encoding.EncodingStrategy, error) {
	dates, layout, binary, err := cfg.Encoding.parse()
	if err != nil {
		return encoding.EncodingStrategy{}, err
	}
	strategy := encoding.EncodingStrategy{Dates: dates, DateLayout: layout, Binary: binary}
	return strategy, strategy.Validate()
}

// DecodingStrategy builds the configured default decoding strategy.
func (cfg *Config) DecodingStrategy() (encoding.DecodingStrategy, error) {
	dates, layout, binary, err := cfg.Decoding.parse()
	if err != nil {
		return encoding.DecodingStrategy{}, err
	}
	strategy := encoding.DecodingStrategy{Dates: dates, DateLayout: layout, Binary: binary}
	return strategy, strategy.Validate()
}

func (strategy StrategyConfig) parse() (
	encoding.DateEncoding, string, encoding.BinaryEncoding, error,
) {
	dates, err := encoding.ParseDateEncoding(strategy.Dates)
	if err != nil {
		return 0, "", 0, err
	}
	binary, err := encoding.ParseBinaryEncoding(strategy.Binary)
	if err != nil {
		return 0, "", 0, err
	}
	return dates, strategy.DateLayout, binary, nil
}
