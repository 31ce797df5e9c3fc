// FILE: logsift/src/internal/config/validation.go
package config

import (
	"fmt"
)

func (c *Config) validate() error {
	if err := c.validateInput(); err != nil {
		return fmt.Errorf("input config: %w", err)
	}
	if err := c.validateOutput(); err != nil {
		return fmt.Errorf("output config: %w", err)
	}
	if err := c.validateServe(); err != nil {
		return fmt.Errorf("serve config: %w", err)
	}
	if err := c.validateLogging(); err != nil {
		return fmt.Errorf("logging config: %w", err)
	}
	return nil
}

func (c *Config) validateInput() error {
	if c.Input.Column == "" {
		return fmt.Errorf("message column name cannot be empty")
	}
	return nil
}

func (c *Config) validateOutput() error {
	switch c.Output.Target {
	case "stdout":
		return nil
	case "file":
		if c.Output.File == "" {
			return fmt.Errorf("output target is 'file' but no file path given")
		}
		return nil
	default:
		return fmt.Errorf("invalid output target: %s (valid: stdout, file)", c.Output.Target)
	}
}

func (c *Config) validateServe() error {
	if !c.Serve.Enabled {
		return nil
	}
	if c.Serve.Port < 1 || c.Serve.Port > 65535 {
		return fmt.Errorf("invalid port: %d", c.Serve.Port)
	}
	if c.Serve.BufferSize < 1 {
		return fmt.Errorf("buffer size must be positive: %d", c.Serve.BufferSize)
	}
	if c.Serve.StreamPath == "" || c.Serve.StreamPath[0] != '/' {
		return fmt.Errorf("stream path must start with '/': %q", c.Serve.StreamPath)
	}
	if c.Serve.StatusPath == "" || c.Serve.StatusPath[0] != '/' {
		return fmt.Errorf("status path must start with '/': %q", c.Serve.StatusPath)
	}
	if c.Serve.StreamPath == c.Serve.StatusPath {
		return fmt.Errorf("stream and status paths collide: %q", c.Serve.StreamPath)
	}
	if c.Serve.RateLimit < 0 {
		return fmt.Errorf("rate limit cannot be negative: %f", c.Serve.RateLimit)
	}
	if c.Serve.Heartbeat.Enabled && c.Serve.Heartbeat.IntervalSeconds < 1 {
		return fmt.Errorf("heartbeat interval must be positive: %d", c.Serve.Heartbeat.IntervalSeconds)
	}
	return nil
}

func (c *Config) validateLogging() error {
	validOutputs := map[string]bool{
		"file": true, "stdout": true, "stderr": true, "none": true,
	}
	if !validOutputs[c.Logging.Output] {
		return fmt.Errorf("invalid log output mode: %s", c.Logging.Output)
	}

	validLevels := map[string]bool{
		"debug": true, "info": true, "warn": true, "error": true,
	}
	if !validLevels[c.Logging.Level] {
		return fmt.Errorf("invalid log level: %s", c.Logging.Level)
	}

	if c.Logging.Output == "file" && c.Logging.File == nil {
		return fmt.Errorf("log output is 'file' but no file section given")
	}

	return nil
}
