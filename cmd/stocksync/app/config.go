package app

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/agentstation/stocksync/internal/config"
	"github.com/agentstation/stocksync/pkg/errors"
)

// Config holds the CLI configuration: global flags and logging settings.
// Marketplace settings are resolved separately by LoadSettings.
type Config struct {
	// Global flags
	Verbose bool
	Quiet   bool
	NoColor bool
	Format  string

	// Config file
	ConfigFile string

	// Logging configuration
	LogLevel  string
	LogFormat string
	LogOutput string
}

// LoadConfig loads the CLI configuration. Precedence, highest first:
// command-line flags (applied later by UpdateFromFlags), environment
// variables, .env files, defaults.
func LoadConfig() (*Config, error) {
	loadEnvFiles()

	v := viper.GetViper()
	config.SetDefaults(v)
	if err := config.BindEnv(v); err != nil {
		return nil, err
	}

	return &Config{
		Verbose:   v.GetBool("verbose"),
		Quiet:     v.GetBool("quiet"),
		NoColor:   v.GetBool("no-color"),
		Format:    v.GetString("format"),
		LogLevel:  os.Getenv("LOG_LEVEL"),
		LogFormat: getEnvOrDefault("LOG_FORMAT", "auto"),
		LogOutput: getEnvOrDefault("LOG_OUTPUT", "stderr"),
	}, nil
}

// LoadSettings reads the optional config file and resolves marketplace,
// feed and history settings from viper.
func (c *Config) LoadSettings() (*config.Config, error) {
	v := viper.GetViper()

	if c.ConfigFile != "" {
		v.SetConfigFile(c.ConfigFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, errors.NewConfigError("config file", c.ConfigFile, err)
		}
	} else {
		v.SetConfigName("stocksync")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(home + "/.config/stocksync")
		}
		// A missing default config file is fine.
		_ = v.ReadInConfig()
	}

	return config.Load(v)
}

// UpdateFromFlags updates config values from parsed command flags.
func (c *Config) UpdateFromFlags(verbose, quiet, noColor bool, format, logLevel string) {
	c.Verbose = verbose
	c.Quiet = quiet
	c.NoColor = noColor
	if format != "" {
		c.Format = format
	}
	if logLevel != "" {
		c.LogLevel = logLevel
	}
}

// loadEnvFiles loads .env then .env.local. godotenv never overrides
// variables that are already set, so the real environment wins.
func loadEnvFiles() {
	for _, envFile := range []string{".env", ".env.local"} {
		_ = godotenv.Load(envFile)
	}
}

// getEnvOrDefault returns the environment variable value or the default if not set.
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
