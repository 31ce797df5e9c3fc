// FILE: logsift/src/internal/config/loader.go
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	lconfig "github.com/lixenwraith/config"
)

// Overrides carries command-line values that take precedence over every
// other configuration source.
type Overrides struct {
	Column     string
	Output     string
	OutputFile string
	Serve      bool
	LogLevel   string
	LogOutput  string
}

// Load builds the effective configuration: defaults, then the TOML
// file, then environment, then CLI overrides.
func Load(overrides *Overrides) (*Config, error) {
	configPath := GetConfigPath()

	cfg, err := lconfig.NewBuilder().
		WithDefaults(defaults()).
		WithEnvPrefix("LOGSIFT_").
		WithFile(configPath).
		WithEnvTransform(customEnvTransform).
		WithSources(
			lconfig.SourceEnv,
			lconfig.SourceFile,
			lconfig.SourceDefault,
		).
		Build()

	if err != nil {
		if !strings.Contains(err.Error(), "not found") {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
	}

	finalConfig := &Config{}
	if err := cfg.Scan(finalConfig, ""); err != nil {
		return nil, fmt.Errorf("failed to scan config: %w", err)
	}

	finalConfig.applyOverrides(overrides)

	return finalConfig, finalConfig.validate()
}

func (c *Config) applyOverrides(overrides *Overrides) {
	if overrides == nil {
		return
	}
	if overrides.Column != "" {
		c.Input.Column = overrides.Column
	}
	if overrides.Output != "" {
		c.Output.Target = overrides.Output
	}
	if overrides.OutputFile != "" {
		c.Output.Target = "file"
		c.Output.File = overrides.OutputFile
	}
	if overrides.Serve {
		c.Serve.Enabled = true
	}
	if overrides.LogLevel != "" {
		c.Logging.Level = overrides.LogLevel
	}
	if overrides.LogOutput != "" {
		c.Logging.Output = overrides.LogOutput
	}
}

func customEnvTransform(path string) string {
	env := strings.ReplaceAll(path, ".", "_")
	env = strings.ToUpper(env)
	env = "LOGSIFT_" + env
	return env
}

// GetConfigPath resolves the config file location from environment,
// falling back to the user config directory.
func GetConfigPath() string {
	if configFile := os.Getenv("LOGSIFT_CONFIG_FILE"); configFile != "" {
		if filepath.IsAbs(configFile) {
			return configFile
		}
		if configDir := os.Getenv("LOGSIFT_CONFIG_DIR"); configDir != "" {
			return filepath.Join(configDir, configFile)
		}
		return configFile
	}

	if configDir := os.Getenv("LOGSIFT_CONFIG_DIR"); configDir != "" {
		return filepath.Join(configDir, "logsift.toml")
	}

	if homeDir, err := os.UserHomeDir(); err == nil {
		return filepath.Join(homeDir, ".config", "logsift.toml")
	}

	return "logsift.toml"
}
