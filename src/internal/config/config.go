// FILE: logsift/src/internal/config/config.go
package config

type Config struct {
	Input   InputConfig   `toml:"input"`
	Output  OutputConfig  `toml:"output"`
	Serve   ServeConfig   `toml:"serve"`
	Logging LoggingConfig `toml:"logging"`
}

// InputConfig controls how the input table is read.
type InputConfig struct {
	// Header name of the column holding the embedded log record
	Column string `toml:"column"`
}

// OutputConfig selects where formatted lines go in run mode.
type OutputConfig struct {
	Target string `toml:"target"` // "stdout" or "file"
	File   string `toml:"file"`
}

// ServeConfig controls the HTTP streaming sink.
type ServeConfig struct {
	Enabled    bool            `toml:"enabled"`
	Host       string          `toml:"host"`
	Port       int64           `toml:"port"`
	StreamPath string          `toml:"stream_path"`
	StatusPath string          `toml:"status_path"`
	BufferSize int64           `toml:"buffer_size"`
	Heartbeat  HeartbeatConfig `toml:"heartbeat"`

	// Per-client request limiting
	RateLimit float64 `toml:"rate_limit"` // requests per second, 0 disables
	RateBurst int64   `toml:"rate_burst"`
}

type HeartbeatConfig struct {
	Enabled         bool  `toml:"enabled"`
	IntervalSeconds int64 `toml:"interval_seconds"`
}

type LoggingConfig struct {
	Level  string         `toml:"level"`  // debug, info, warn, error
	Output string         `toml:"output"` // stderr, stdout, file, none
	File   *LogFileConfig `toml:"file"`
}

type LogFileConfig struct {
	Directory      string `toml:"directory"`
	Name           string `toml:"name"`
	MaxSizeMB      int64  `toml:"max_size_mb"`
	MaxTotalSizeMB int64  `toml:"max_total_size_mb"`
}

func defaults() *Config {
	return &Config{
		Input: InputConfig{
			Column: "ExtractedMessage",
		},
		Output: OutputConfig{
			Target: "stdout",
		},
		Serve: ServeConfig{
			Enabled:    false,
			Host:       "127.0.0.1",
			Port:       8080,
			StreamPath: "/stream",
			StatusPath: "/status",
			BufferSize: 1000,
			Heartbeat: HeartbeatConfig{
				Enabled:         true,
				IntervalSeconds: 30,
			},
			RateLimit: 0,
			RateBurst: 10,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Output: "stderr",
		},
	}
}
