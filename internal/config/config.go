package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Project struct {
		Root string `yaml:"root"`
	} `yaml:"project"`
	Julia struct {
		Bin            string   `yaml:"bin"`
		LintScript     string   `yaml:"lint_script"`
		TimeoutSeconds int      `yaml:"timeout_seconds"`
		Modules        []string `yaml:"modules"` // library scopes probed after Main
	} `yaml:"julia"`
}

// Default returns the configuration used when no config file is present.
func Default() *Config {
	var cfg Config
	cfg.Julia.Bin = "julia"
	cfg.Julia.LintScript = "scripts/lint.jl"
	cfg.Julia.TimeoutSeconds = 30
	cfg.Julia.Modules = []string{"JUDI"}
	return &cfg
}

func LoadConfig(path string) (*Config, error) {
	// 1. Load .env if exists
	_ = godotenv.Load()

	cfg := Default()

	// 2. Load YAML config
	file, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(file, cfg); err != nil {
		return cfg, err
	}

	// 3. Override with Environment Variables if present
	if bin := os.Getenv("JUDIDOC_JULIA_BIN"); bin != "" {
		cfg.Julia.Bin = bin
	}
	if root := os.Getenv("JUDIDOC_PROJECT_ROOT"); root != "" {
		cfg.Project.Root = root
	}
	if timeout := os.Getenv("JUDIDOC_TIMEOUT_SECONDS"); timeout != "" {
		if secs, err := strconv.Atoi(timeout); err == nil {
			cfg.Julia.TimeoutSeconds = secs
		}
	}

	applyDefaults(cfg)
	return cfg, nil
}

func applyDefaults(cfg *Config) {
	def := Default()
	if cfg.Julia.Bin == "" {
		cfg.Julia.Bin = def.Julia.Bin
	}
	if cfg.Julia.LintScript == "" {
		cfg.Julia.LintScript = def.Julia.LintScript
	}
	if cfg.Julia.TimeoutSeconds <= 0 {
		cfg.Julia.TimeoutSeconds = def.Julia.TimeoutSeconds
	}
	if len(cfg.Julia.Modules) == 0 {
		cfg.Julia.Modules = def.Julia.Modules
	}
}
