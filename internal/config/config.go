package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Config holds the application configuration
type Config struct {
	Provider ProviderConfig `mapstructure:"provider"`
	Agent    AgentConfig    `mapstructure:"agent"`
	Document DocumentConfig `mapstructure:"document"`
	UI       UIConfig       `mapstructure:"ui"`
}

// ProviderConfig holds the language-model provider settings
type ProviderConfig struct {
	Endpoint    string  `mapstructure:"endpoint"`
	APIKey      string  `mapstructure:"api_key"`
	Model       string  `mapstructure:"model"`
	Temperature float64 `mapstructure:"temperature"`
}

// AgentConfig holds reasoning-loop settings
type AgentConfig struct {
	// MaxIterations caps the number of reasoning steps per user query.
	MaxIterations int `mapstructure:"max_iterations"`
	// MemoryWindow is the number of most recent exchanges kept in
	// conversation memory.
	MemoryWindow int `mapstructure:"memory_window"`
}

// DocumentConfig selects how the financial report is supplied to the tools
type DocumentConfig struct {
	// Mode is "text" (extract locally and inline the text into prompts)
	// or "upload" (push the PDF to the provider and reference it by URI).
	Mode string `mapstructure:"mode"`
	// DataDir is where report PDFs are looked up.
	DataDir string `mapstructure:"data_dir"`
	// UploadEndpoint overrides the provider endpoint for file uploads.
	// Empty means the provider endpoint is used.
	UploadEndpoint string `mapstructure:"upload_endpoint"`
}

// UIConfig holds UI-specific configuration
type UIConfig struct {
	ColorEnabled bool `mapstructure:"color_enabled"`
	ShowSpinner  bool `mapstructure:"show_spinner"`
}

// LoadConfig loads the configuration from file and environment
func LoadConfig() (Config, error) {
	config := DefaultConfig()

	viper.SetConfigName(".finsight")
	viper.SetConfigType("yaml")

	// Search the current directory first, then the home directory
	viper.AddConfigPath(".")
	homeDir, err := os.UserHomeDir()
	if err == nil {
		viper.AddConfigPath(homeDir)
	}

	viper.SetEnvPrefix("finsight")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	// FINSIGHT_API_KEY is the documented way to supply credentials
	_ = viper.BindEnv("provider.api_key", "FINSIGHT_API_KEY")
	_ = viper.BindEnv("provider.model", "FINSIGHT_MODEL")

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			// Return error only if it's not a "config file not found" error
			return config, fmt.Errorf("reading config: %w", err)
		}
		// Config file not found - continue with defaults
	}

	if err := viper.Unmarshal(&config); err != nil {
		return config, fmt.Errorf("unmarshaling config: %w", err)
	}

	return config, nil
}

// Validate reports configuration errors that must stop startup.
func (c Config) Validate() error {
	if c.Provider.APIKey == "" {
		return fmt.Errorf("missing API key: set provider.api_key or FINSIGHT_API_KEY")
	}
	if c.Provider.Model == "" {
		return fmt.Errorf("missing model identifier: set provider.model or FINSIGHT_MODEL")
	}
	if c.Document.Mode != ModeText && c.Document.Mode != ModeUpload {
		return fmt.Errorf("invalid document.mode %q: must be %q or %q", c.Document.Mode, ModeText, ModeUpload)
	}
	if c.Agent.MaxIterations < 1 {
		return fmt.Errorf("agent.max_iterations must be at least 1")
	}
	if c.Agent.MemoryWindow < 1 {
		return fmt.Errorf("agent.memory_window must be at least 1")
	}
	return nil
}

// GetDataDir returns the application data directory, creating it if needed
func GetDataDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("getting home dir: %w", err)
	}

	dataDir := filepath.Join(homeDir, ".finsight")
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return "", fmt.Errorf("creating data dir: %w", err)
	}

	return dataDir, nil
}
