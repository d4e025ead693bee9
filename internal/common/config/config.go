package config

import "time"

// Config is the main application configuration struct.
type Config struct {
	App        AppConfig        `mapstructure:"app"`
	LLM        LLMConfig        `mapstructure:"llm"`
	Collectors CollectorsConfig `mapstructure:"collectors"`
	Metrics    MetricsConfig    `mapstructure:"metrics"`
	Logging    LoggingConfig    `mapstructure:"logging"`
}

type AppConfig struct {
	Name        string `mapstructure:"name"`
	Version     string `mapstructure:"version"`
	Environment string `mapstructure:"environment"`
}

// LLMConfig holds settings for the language-model service boundary.
// Parse and Synthesize carry the per-stage sampling settings.
type LLMConfig struct {
	BaseURL    string      `mapstructure:"base_url"`
	APIKey     string      `mapstructure:"api_key"`
	Model      string      `mapstructure:"model"`
	Timeout    int         `mapstructure:"timeout"` // milliseconds
	Parse      StageConfig `mapstructure:"parse"`
	Synthesize StageConfig `mapstructure:"synthesize"`
}

type StageConfig struct {
	Temperature float64 `mapstructure:"temperature"`
	MaxTokens   int     `mapstructure:"max_tokens"`
}

// GetTimeout returns the LLM call timeout as a duration.
func (l LLMConfig) GetTimeout() time.Duration {
	return time.Duration(l.Timeout) * time.Millisecond
}

// CollectorsConfig holds settings for the system collectors.
type CollectorsConfig struct {
	ProcessLimit int `mapstructure:"process_limit"` // top-N processes reported
	CPUSampleMs  int `mapstructure:"cpu_sample_ms"` // CPU usage sampling window
}

// CPUSampleInterval returns the CPU sampling window as a duration.
func (c CollectorsConfig) CPUSampleInterval() time.Duration {
	return time.Duration(c.CPUSampleMs) * time.Millisecond
}

// MetricsConfig holds settings for the Prometheus endpoint.
type MetricsConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Address string `mapstructure:"address"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}
