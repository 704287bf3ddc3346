package config

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

//go:embed default.yaml
var DefaultConfigYAML []byte

type Config struct {
	Assistant Assistant `yaml:"assistant"`
	Knowledge Knowledge `yaml:"knowledge"`
	Sources   Sources   `yaml:"sources"`
	Server    Server    `yaml:"server"`
	Logging   Logging   `yaml:"logging"`
}

type Assistant struct {
	Provider       string `yaml:"provider"`
	Model          string `yaml:"model"`
	APIKeyEnv      string `yaml:"api_key_env"`
	OllamaModel    string `yaml:"ollama_model"`
	OllamaURL      string `yaml:"ollama_url"`
	MaxTokens      int    `yaml:"max_tokens"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
}

type Knowledge struct {
	DataDir    string `yaml:"data_dir"`
	WikiAPIURL string `yaml:"wiki_api_url"`
}

type Sources struct {
	Feeds []Feed `yaml:"feeds"`
}

type Feed struct {
	URL  string `yaml:"url"`
	Name string `yaml:"name"`
}

type Server struct {
	Port int `yaml:"port"`
}

type Logging struct {
	Level string `yaml:"level"`
}

// ConfigDir returns the XDG config directory for koompi.
func ConfigDir() string {
	return filepath.Join(homeDir(), ".config", "koompi")
}

// DataDir returns the XDG data directory for koompi.
func DataDir() string {
	return filepath.Join(homeDir(), ".local", "share", "koompi")
}

// ResolveConfigPath finds the config file following priority:
// explicit path > ~/.config/koompi/config.yaml > ./config.yaml
func ResolveConfigPath(explicit string) (string, error) {
	if explicit != "" {
		if _, err := os.Stat(explicit); err != nil {
			return "", fmt.Errorf("config file not found: %s", explicit)
		}
		return explicit, nil
	}

	xdgConfig := filepath.Join(ConfigDir(), "config.yaml")
	if _, err := os.Stat(xdgConfig); err == nil {
		return xdgConfig, nil
	}

	cwdConfig := "config.yaml"
	if _, err := os.Stat(cwdConfig); err == nil {
		return cwdConfig, nil
	}

	return "", fmt.Errorf(
		"no config file found; searched:\n  %s\n  ./config.yaml\n\nRun 'koompi init' to create a default config",
		xdgConfig,
	)
}

// Load reads and parses a config YAML file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	return parse(data)
}

// LoadOrDefault loads the resolved config file, falling back to the
// embedded defaults when none exists. The assistant must work out of
// the box without an init step.
func LoadOrDefault(explicit string) (*Config, error) {
	path, err := ResolveConfigPath(explicit)
	if err != nil {
		if explicit != "" {
			return nil, err
		}
		return parse(DefaultConfigYAML)
	}
	return Load(path)
}

// parse parses YAML bytes into a Config, applying defaults.
func parse(data []byte) (*Config, error) {
	cfg := &Config{
		Assistant: Assistant{
			Provider:       "gemini",
			Model:          "gemini-1.5-flash",
			APIKeyEnv:      "GEMINI_API_KEY",
			OllamaModel:    "llama3.2",
			OllamaURL:      "http://localhost:11434",
			MaxTokens:      2048,
			TimeoutSeconds: 30,
		},
		Knowledge: Knowledge{
			WikiAPIURL: "https://wiki.archlinux.org/api.php",
		},
		Server:  Server{Port: 8000},
		Logging: Logging{Level: "INFO"},
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	return cfg, nil
}

// GetDataDir returns the effective data directory from config or XDG default.
func (c *Config) GetDataDir() string {
	if c.Knowledge.DataDir != "" {
		return c.Knowledge.DataDir
	}
	return DataDir()
}

// DBPath returns the knowledge database path under the data directory.
func (c *Config) DBPath() string {
	return filepath.Join(c.GetDataDir(), "knowledge.db")
}

// Timeout returns the remote call timeout as a duration.
func (c *Config) Timeout() time.Duration {
	if c.Assistant.TimeoutSeconds <= 0 {
		return 30 * time.Second
	}
	return time.Duration(c.Assistant.TimeoutSeconds) * time.Second
}

func homeDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return home
}
