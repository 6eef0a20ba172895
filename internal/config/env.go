package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/kelseyhightower/envconfig"
	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/AlexZinkM/qsafe-wallet/internal/crypto"
	"github.com/AlexZinkM/qsafe-wallet/internal/keys"
	"github.com/AlexZinkM/qsafe-wallet/internal/storage"
)

// Config contains all configuration parameters for the application.
// Passwords are never read from the environment; see PromptForPassword.
type Config struct {
	Port             string `envconfig:"PORT" default:"8080"`
	StoreBackend     string `envconfig:"WALLET_STORE_BACKEND" default:"file"`
	StorePath        string `envconfig:"WALLET_STORE_PATH" default:"wallet.json"`
	Network          string `envconfig:"WALLET_NETWORK" default:"mainnet"`
	StrictMnemonic   bool   `envconfig:"WALLET_STRICT_MNEMONIC" default:"false"`
	ScryptN          int    `envconfig:"WALLET_SCRYPT_N" default:"262144"`
	ScryptR          int    `envconfig:"WALLET_SCRYPT_R" default:"8"`
	ScryptP          int    `envconfig:"WALLET_SCRYPT_P" default:"1"`
	MinPasswordScore int    `envconfig:"WALLET_MIN_PASSWORD_SCORE" default:"0"`
	LogLevel         string `envconfig:"LOG_LEVEL" default:"info"`
	LogJSON          bool   `envconfig:"LOG_JSON" default:"true"`
}

// cfg is the global configuration instance
var cfg *Config

// Init loads configuration from environment variables.
func Init() error {
	c, err := Load()
	if err != nil {
		return err
	}
	cfg = c
	return nil
}

// Load reads and validates configuration without touching the global.
func Load() (*Config, error) {
	c := &Config{}
	if err := envconfig.Process("", c); err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// Validate checks values envconfig cannot check by itself.
func (c *Config) Validate() error {
	kind, err := storage.ParseKind(c.StoreBackend)
	if err != nil {
		return fmt.Errorf("invalid WALLET_STORE_BACKEND: %w", err)
	}
	c.StoreBackend = string(kind)
	if _, err := keys.ParseNetwork(c.Network); err != nil {
		return fmt.Errorf("invalid WALLET_NETWORK: %w", err)
	}
	if err := c.ScryptParams().Validate(); err != nil {
		return fmt.Errorf("invalid scrypt params: %w", err)
	}
	if c.MinPasswordScore < 0 || c.MinPasswordScore > 4 {
		return fmt.Errorf("WALLET_MIN_PASSWORD_SCORE must be 0..4, got %d", c.MinPasswordScore)
	}
	if _, err := zap.ParseAtomicLevel(c.LogLevel); err != nil {
		return fmt.Errorf("invalid LOG_LEVEL: %w", err)
	}
	return nil
}

// Get returns the global configuration instance.
// Panics if Init() was not called.
func Get() *Config {
	if cfg == nil {
		panic("config not initialized, call Init() first")
	}
	return cfg
}

// ScryptParams returns the cipher cost for new encryptions.
func (c *Config) ScryptParams() crypto.Params {
	return crypto.Params{N: c.ScryptN, R: c.ScryptR, P: c.ScryptP}
}

// NetworkID returns the parsed network. Validate guarantees it parses.
func (c *Config) NetworkID() keys.Network {
	n, err := keys.ParseNetwork(c.Network)
	if err != nil {
		return keys.Mainnet
	}
	return n
}

// GetPort returns port from configuration
func GetPort() string {
	return Get().Port
}

// OpenStore opens the configured storage backend.
func (c *Config) OpenStore() (storage.Backend, error) {
	return storage.Open(c.StoreBackend, c.StorePath)
}

// NewLogger builds a JSON production logger or a console development one.
func (c *Config) NewLogger() (*zap.Logger, error) {
	level, err := zap.ParseAtomicLevel(c.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("invalid LOG_LEVEL: %w", err)
	}
	zc := zap.NewDevelopmentConfig()
	if c.LogJSON {
		zc = zap.NewProductionConfig()
	}
	zc.Level = level
	return zc.Build()
}

// PromptForPassword prompts for a password in the terminal without echo.
// Caller must zero the returned slice after use.
func PromptForPassword(prompt string) ([]byte, error) {
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return nil, errors.New("stdin is not a terminal: run the app interactively to enter password")
	}
	fmt.Fprint(os.Stderr, prompt)
	defer fmt.Fprintln(os.Stderr)

	raw, err := term.ReadPassword(int(os.Stdin.Fd()))
	if err != nil {
		return nil, fmt.Errorf("failed to read password: %w", err)
	}
	if len(raw) == 0 {
		return nil, errors.New("password cannot be empty")
	}
	return raw, nil
}
