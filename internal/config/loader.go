package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"gopkg.in/yaml.v3"
)

// FileName is the configuration file name looked up in the search path.
const FileName = "runner.yaml"

// EmbeddedSource is reported as the source path when the embedded defaults were used.
const EmbeddedSource = "<embedded>"

// LoadRunner loads the runner configuration.
// Search order: customPath -> ~/.arcade/configs/runner.yaml -> ./configs/runner.yaml -> embedded default.
// It returns the configuration and the path it came from.
// A customPath that cannot be read, parsed or validated is an error; the
// other candidates are skipped with a warning and the search continues.
func LoadRunner(customPath string, logger *log.Logger) (RunnerConfig, string, error) {
	if customPath != "" {
		cfg, err := LoadFile(customPath)
		if err != nil {
			return DefaultRunnerConfig(), "", err
		}
		return cfg, customPath, nil
	}

	candidates := []string{LocalConfigPath()}
	if userCfgPath := UserConfigPath(); userCfgPath != "" {
		candidates = []string{userCfgPath, LocalConfigPath()}
	}

	for _, path := range candidates {
		if _, err := os.Stat(path); err != nil {
			continue
		}
		cfg, err := LoadFile(path)
		if err != nil {
			if logger != nil {
				logger.Warn("ignoring config file", "path", path, "error", err)
			}
			continue
		}
		return cfg, path, nil
	}

	cfg, err := Parse(defaultRunnerYAML)
	if err != nil {
		if logger != nil {
			logger.Error("embedded config is invalid, using built-in defaults", "error", err)
		}
		return DefaultRunnerConfig(), EmbeddedSource, nil
	}
	return cfg, EmbeddedSource, nil
}

// LoadFile reads, parses and validates a single configuration file.
func LoadFile(path string) (RunnerConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return RunnerConfig{}, fmt.Errorf("failed to read config %s: %w", path, err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return RunnerConfig{}, fmt.Errorf("failed to load config %s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes YAML on top of the defaults, so partial files only override
// the keys they name, and validates the result.
func Parse(data []byte) (RunnerConfig, error) {
	cfg := DefaultRunnerConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return RunnerConfig{}, fmt.Errorf("parse: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return RunnerConfig{}, err
	}
	return cfg, nil
}

// Marshal encodes a configuration as YAML.
func Marshal(cfg RunnerConfig) ([]byte, error) {
	return yaml.Marshal(cfg)
}

// UserConfigPath returns the path to the user config file, or empty if home is unavailable.
func UserConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".arcade", "configs", FileName)
}

// LocalConfigPath returns the project-local config path.
func LocalConfigPath() string {
	return filepath.Join("configs", FileName)
}
