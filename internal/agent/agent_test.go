package agent

import (
	"context"
	"errors"
	"testing"

	"github.com/openai/openai-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sysmon-agent/internal/collector"
	"sysmon-agent/internal/common/config"
	"sysmon-agent/internal/common/logger"
)

// scriptedChat replays a fixed sequence of completions, one per call.
type scriptedChat struct {
	replies []reply
	calls   int
}

type reply struct {
	content string
	err     error
}

func (s *scriptedChat) Complete(context.Context, openai.ChatCompletionNewParams) (*openai.ChatCompletion, error) {
	var r reply
	if s.calls < len(s.replies) {
		r = s.replies[s.calls]
	} else {
		r = reply{err: errors.New("no scripted reply left")}
	}
	s.calls++

	if r.err != nil {
		return nil, r.err
	}
	return &openai.ChatCompletion{
		Choices: []openai.ChatCompletionChoice{
			{Message: openai.ChatCompletionMessage{Content: r.content}},
		},
	}, nil
}

func testLLMConfig() config.LLMConfig {
	return config.LLMConfig{
		Model:      "gpt-4o-mini",
		Timeout:    5000,
		Parse:      config.StageConfig{Temperature: 0.1, MaxTokens: 200},
		Synthesize: config.StageConfig{Temperature: 0.3, MaxTokens: 300},
	}
}

func batteryOnlyRegistry(t *testing.T) *collector.Registry {
	t.Helper()
	r := collector.NewRegistry(logger.NewTestLogger(t))
	require.NoError(t, r.Register("get_battery_info", "Battery percentage, charging status, time remaining",
		func(context.Context) (collector.Payload, error) {
			return collector.Payload{"percentage": 87.0, "plugged_in": true}, nil
		}))
	return r
}

func TestAgent_Answer_RoundTrip(t *testing.T) {
	chat := &scriptedChat{replies: []reply{
		{content: `{"functions_to_call": ["get_battery_info"], "response_style": "brief", "focus": "battery_percentage", "reasoning": "User wants specific battery percentage"}`},
		{content: "Your battery is at 87% and plugged in."},
	}}
	ag := New(batteryOnlyRegistry(t), chat, testLLMConfig(), nil, logger.NewTestLogger(t))

	answer := ag.Answer(context.Background(), "What's my battery percentage?")

	assert.Contains(t, answer, "87")
	assert.Equal(t, 2, chat.calls)
}

func TestAgent_Answer_AllStagesDegraded(t *testing.T) {
	// Both LLM calls fail: parse falls back to the default triple, and
	// synthesis falls back to quoting the raw bundle.
	chat := &scriptedChat{replies: []reply{
		{err: errors.New("connection refused")},
		{err: errors.New("connection refused")},
	}}
	ag := New(batteryOnlyRegistry(t), chat, testLLMConfig(), nil, logger.NewTestLogger(t))

	var answer string
	assert.NotPanics(t, func() {
		answer = ag.Answer(context.Background(), "What's my battery percentage?")
	})

	assert.NotEmpty(t, answer)
	assert.Contains(t, answer, "87")
	// Fallback descriptor names cpu and memory too; the registry only has
	// battery, so those come back as embedded error records.
	assert.Contains(t, answer, "get_cpu_info")
	assert.Contains(t, answer, "Unknown function")
}

func TestAgent_ListFunctions(t *testing.T) {
	ag := New(batteryOnlyRegistry(t), &scriptedChat{}, testLLMConfig(), nil, logger.NewTestLogger(t))

	assert.Equal(t, []string{"get_battery_info"}, ag.ListFunctions())
}

func TestAgent_RawSystemData(t *testing.T) {
	ag := New(batteryOnlyRegistry(t), &scriptedChat{}, testLLMConfig(), nil, logger.NewTestLogger(t))

	bundle := ag.RawSystemData(context.Background(), []string{"get_battery_info", "get_disk_info"})

	require.Len(t, bundle, 2)
	assert.Equal(t, collector.Payload{"percentage": 87.0, "plugged_in": true}, bundle["get_battery_info"])
	assert.Contains(t, bundle["get_disk_info"], "error")
}

func TestAgent_HealthCheck(t *testing.T) {
	registry := collector.NewRegistry(logger.NewTestLogger(t))
	require.NoError(t, registry.Register("get_cpu_info", "cpu", func(context.Context) (collector.Payload, error) {
		return collector.Payload{"usage_percent": 17.0}, nil
	}))

	t.Run("registry healthy, llm unreachable", func(t *testing.T) {
		chat := &scriptedChat{replies: []reply{{err: errors.New("dial tcp: no route to host")}}}
		ag := New(registry, chat, testLLMConfig(), nil, logger.NewTestLogger(t))

		results := ag.HealthCheck(context.Background())

		assert.Equal(t, map[string]bool{
			ComponentRegistry: true,
			ComponentLLM:      false,
		}, results)
	})

	t.Run("answer stays callable after failed health check", func(t *testing.T) {
		chat := &scriptedChat{replies: []reply{
			{err: errors.New("dial tcp: no route to host")}, // health check
			{err: errors.New("dial tcp: no route to host")}, // parse
			{err: errors.New("dial tcp: no route to host")}, // synthesize
		}}
		ag := New(registry, chat, testLLMConfig(), nil, logger.NewTestLogger(t))

		results := ag.HealthCheck(context.Background())
		assert.False(t, results[ComponentLLM])

		answer := ag.Answer(context.Background(), "how busy is my cpu?")
		assert.NotEmpty(t, answer)
		assert.Contains(t, answer, "usage_percent")
	})

	t.Run("llm healthy when canned prompt answers OK", func(t *testing.T) {
		chat := &scriptedChat{replies: []reply{{content: "OK"}}}
		ag := New(registry, chat, testLLMConfig(), nil, logger.NewTestLogger(t))

		results := ag.HealthCheck(context.Background())

		assert.True(t, results[ComponentLLM])
	})
}
