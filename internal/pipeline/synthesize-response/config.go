package synthesizeresponse

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
		Temperature: cfg.Synthesize.Temperature,
		MaxTokens:   cfg.Synthesize.MaxTokens,
		Timeout:     cfg.GetTimeout(),
	}
}
