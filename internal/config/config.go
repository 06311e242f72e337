package config

import (
	"os"

	"gopkg.in/yaml.v3"

	"github.com/calebmartin/inkwell/internal/rotation"
)

// ModelConfig controls the content-generation request.
type ModelConfig struct {
	Name      string `yaml:"name"`
	MaxTokens int64  `yaml:"max-tokens"`
	Timeout   int    `yaml:"timeout"` // seconds
}

// PublishConfig controls the optional push of generated posts to a
// GitHub repository. The token comes from GITHUB_TOKEN, never the file.
type PublishConfig struct {
	Enabled bool   `yaml:"enabled"`
	Owner   string `yaml:"owner"`
	Repo    string `yaml:"repo"`
	Branch  string `yaml:"branch"`
	Dir     string `yaml:"dir"`
}

type Config struct {
	Name       string           `yaml:"name"`
	ContentDir string           `yaml:"content-dir"`
	DataDir    string           `yaml:"data-dir"`
	Cooldown   string           `yaml:"cooldown"`
	Schedule   string           `yaml:"schedule"`
	Topics     []rotation.Topic `yaml:"topics"`
	Model      ModelConfig      `yaml:"model"`
	Publish    PublishConfig    `yaml:"publish"`
}

// Load reads a YAML config file and returns a validated Config with
// defaults applied.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	if err := Validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
