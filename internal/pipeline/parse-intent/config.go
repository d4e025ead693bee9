package parseintent

import (
	"time"

	"sysmon-agent/internal/common/config"
)

type Config struct {
	Temperature float64
	MaxTokens   int
	Timeout     time.Duration
}

// NewConfig derives the stage config from the llm config section.
func NewConfig(cfg config.LLMConfig) *Config {
	return &Config{
		Temperature: cfg.Parse.Temperature,
		MaxTokens:   cfg.Parse.MaxTokens,
		Timeout:     cfg.GetTimeout(),
	}
}
