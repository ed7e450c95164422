package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Config represents the application configuration
type Config struct {
	Server struct {
		Port int `koanf:"port"`
	} `koanf:"server"`

	Provider struct {
		BaseURL string `koanf:"base_url"`
		// Separate keys per flow: each flow is backed by its own provider
		// app. An absent review key is the recognized demo state, not an
		// error; the combat flow calls the provider regardless.
		CombatKey            string  `koanf:"combat_key"`
		ReviewKey            string  `koanf:"review_key"`
		CombatTimeoutSeconds int     `koanf:"combat_timeout_seconds"`
		ReviewTimeoutSeconds int     `koanf:"review_timeout_seconds"`
		RequestsPerSecond    float64 `koanf:"requests_per_second"`
	} `koanf:"provider"`

	Extract struct {
		Repair bool `koanf:"repair"`
	} `koanf:"extract"`

	Stages struct {
		Path string `koanf:"path"`
	} `koanf:"stages"`
}

// CombatTimeout is the wall-clock budget for one combat provider call.
func (c *Config) CombatTimeout() time.Duration {
	return time.Duration(c.Provider.CombatTimeoutSeconds) * time.Second
}

// ReviewTimeout is the wall-clock budget for one review workflow run. The
// multimodal path is slower, so it gets a longer ceiling.
func (c *Config) ReviewTimeout() time.Duration {
	return time.Duration(c.Provider.ReviewTimeoutSeconds) * time.Second
}

// LoadConfig loads the configuration from a file
func LoadConfig(configPath string) (*Config, error) {
	var k = koanf.New(".")

	// Set up default configuration
	k.Load(confmap.Provider(map[string]interface{}{
		"server.port":                     8888,
		"provider.combat_timeout_seconds": 30,
		"provider.review_timeout_seconds": 60,
		"provider.requests_per_second":    0,
		"extract.repair":                  false,
	}, "."), nil)

	// Load from TOML file if it exists
	if configPath != "" {
		if err := k.Load(file.Provider(configPath), toml.Parser()); err != nil {
			return nil, fmt.Errorf("error loading config: %w", err)
		}
	} else {
		// Try to load from default locations
		defaultPaths := []string{"./salesguard.toml", "$HOME/.salesguard.toml"}
		for _, path := range defaultPaths {
			path = os.ExpandEnv(path)
			if _, err := os.Stat(path); err == nil {
				if err := k.Load(file.Provider(path), toml.Parser()); err == nil {
					break
				}
			}
		}
	}

	// Load from environment variables with prefix SALESGUARD_. Double
	// underscore separates sections so keys like base_url survive:
	// SALESGUARD_PROVIDER__BASE_URL -> provider.base_url.
	k.Load(env.Provider("SALESGUARD_", ".", func(s string) string {
		return strings.Replace(strings.ToLower(
			strings.TrimPrefix(s, "SALESGUARD_")), "__", ".", -1)
	}), nil)

	// Unmarshal into Config struct
	var config Config
	if err := k.Unmarshal("", &config); err != nil {
		return nil, fmt.Errorf("error unmarshalling config: %w", err)
	}

	return &config, nil
}

// InitConfig initializes a new configuration file
func InitConfig(configPath string) error {
	// Check if file already exists
	if _, err := os.Stat(configPath); err == nil {
		return fmt.Errorf("configuration file already exists at %s", configPath)
	}

	sampleConfig := `# SalesGuard Configuration

[server]
port = 8888

[provider]
base_url = "https://workflow.example.com/v1"
combat_key = "your-combat-app-key"
# Leave review_key empty to serve the deterministic demo review result.
review_key = ""
combat_timeout_seconds = 30
review_timeout_seconds = 60
requests_per_second = 0

[extract]
# Opt-in lenient JSON repair strategy for models known to emit broken JSON.
repair = false

[stages]
# Optional TOML file overriding the compiled-in stage/trigger library.
path = ""
`

	return os.WriteFile(configPath, []byte(sampleConfig), 0644)
}

// Validate validates the configuration
func Validate(config *Config) error {
	if config.Server.Port <= 0 || config.Server.Port > 65535 {
		return fmt.Errorf("server port %d is out of range", config.Server.Port)
	}

	if config.Provider.BaseURL == "" {
		return fmt.Errorf("provider base_url is required")
	}

	if config.Provider.CombatTimeoutSeconds <= 0 {
		return fmt.Errorf("combat timeout must be positive")
	}

	if config.Provider.ReviewTimeoutSeconds <= 0 {
		return fmt.Errorf("review timeout must be positive")
	}

	if config.Provider.RequestsPerSecond < 0 {
		return fmt.Errorf("requests_per_second cannot be negative")
	}

	return nil
}
