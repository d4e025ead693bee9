package parseintent

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/openai/openai-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sysmon-agent/internal/collector"
	"sysmon-agent/internal/common/logger"
)

// mockChat scripts the chat completion response for a test.
type mockChat struct {
	content string
	err     error
	params  openai.ChatCompletionNewParams
	calls   int
}

func (m *mockChat) Complete(_ context.Context, params openai.ChatCompletionNewParams) (*openai.ChatCompletion, error) {
	m.calls++
	m.params = params
	if m.err != nil {
		return nil, m.err
	}
	return &openai.ChatCompletion{
		Choices: []openai.ChatCompletionChoice{
			{Message: openai.ChatCompletionMessage{Content: m.content}},
		},
	}, nil
}

func testConfig() *Config {
	return &Config{
		Temperature: 0.1,
		MaxTokens:   200,
		Timeout:     5 * time.Second,
	}
}

func testCatalogue() []collector.FunctionSpec {
	return []collector.FunctionSpec{
		{Name: "get_battery_info", Description: "Battery percentage, charging status, time remaining"},
		{Name: "get_cpu_info", Description: "CPU usage, cores, frequency"},
		{Name: "get_memory_info", Description: "RAM usage, available memory, swap"},
	}
}

func fallbackExpectation() *IntentDescriptor {
	return &IntentDescriptor{
		FunctionsToCall: []string{"get_battery_info", "get_cpu_info", "get_memory_info"},
		ResponseStyle:   "brief",
		Focus:           "general",
	}
}

func TestHandler_Execute_Success(t *testing.T) {
	tests := []struct {
		name     string
		content  string
		expected *IntentDescriptor
	}{
		{
			name:    "plain JSON object",
			content: `{"functions_to_call": ["get_battery_info"], "response_style": "brief", "focus": "battery_percentage", "reasoning": "User wants specific battery percentage"}`,
			expected: &IntentDescriptor{
				FunctionsToCall: []string{"get_battery_info"},
				ResponseStyle:   "brief",
				Focus:           "battery_percentage",
				Reasoning:       "User wants specific battery percentage",
			},
		},
		{
			name: "JSON wrapped in markdown fences",
			content: "```json\n" +
				`{"functions_to_call": ["get_cpu_info", "get_memory_info"], "response_style": "detailed", "focus": "performance", "reasoning": "Performance question"}` +
				"\n```",
			expected: &IntentDescriptor{
				FunctionsToCall: []string{"get_cpu_info", "get_memory_info"},
				ResponseStyle:   "detailed",
				Focus:           "performance",
				Reasoning:       "Performance question",
			},
		},
		{
			name:    "empty function list is legal",
			content: `{"functions_to_call": [], "response_style": "brief", "focus": "chitchat", "reasoning": "No system data needed"}`,
			expected: &IntentDescriptor{
				FunctionsToCall: []string{},
				ResponseStyle:   "brief",
				Focus:           "chitchat",
				Reasoning:       "No system data needed",
			},
		},
		{
			name:    "non-enumerated response_style passes through untouched",
			content: `{"functions_to_call": ["get_cpu_info"], "response_style": "haiku", "focus": "cpu", "reasoning": "Stylistic request"}`,
			expected: &IntentDescriptor{
				FunctionsToCall: []string{"get_cpu_info"},
				ResponseStyle:   "haiku",
				Focus:           "cpu",
				Reasoning:       "Stylistic request",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			chat := &mockChat{content: tt.content}
			h := NewHandler(testConfig(), chat, logger.NewTestLogger(t))

			descriptor := h.Execute(context.Background(), "test query", testCatalogue())

			assert.Equal(t, tt.expected, descriptor)
			assert.Equal(t, 1, chat.calls)
		})
	}
}

func TestHandler_Execute_PromptContainsCatalogue(t *testing.T) {
	chat := &mockChat{content: `{"functions_to_call": [], "response_style": "brief", "focus": "general", "reasoning": "n/a"}`}
	h := NewHandler(testConfig(), chat, logger.NewTestLogger(t))

	h.Execute(context.Background(), "What's my battery percentage?", testCatalogue())

	require.NotEmpty(t, chat.params.Messages)
	system := chat.params.Messages[0].OfSystem.Content.OfString.Value
	assert.Contains(t, system, "get_battery_info: Battery percentage, charging status, time remaining")
	assert.Contains(t, system, "get_memory_info: RAM usage, available memory, swap")
	assert.Contains(t, system, `"functions_to_call"`)
}

func TestHandler_Execute_FallbackPaths(t *testing.T) {
	tests := []struct {
		name              string
		chat              *mockChat
		expectedReasoning string
	}{
		{
			name:              "transport failure",
			chat:              &mockChat{err: errors.New("connection refused")},
			expectedReasoning: "Fallback due to API error",
		},
		{
			name:              "response is not JSON",
			chat:              &mockChat{content: "I cannot answer that."},
			expectedReasoning: "Fallback due to parsing error",
		},
		{
			name:              "missing required field",
			chat:              &mockChat{content: `{"response_style": "brief", "focus": "general", "reasoning": "no functions field"}`},
			expectedReasoning: "Fallback due to parsing error",
		},
		{
			name:              "wrong field type",
			chat:              &mockChat{content: `{"functions_to_call": "get_cpu_info", "response_style": "brief", "focus": "general", "reasoning": "string instead of array"}`},
			expectedReasoning: "Fallback due to parsing error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewHandler(testConfig(), tt.chat, logger.NewTestLogger(t))

			var descriptor *IntentDescriptor
			assert.NotPanics(t, func() {
				descriptor = h.Execute(context.Background(), "test query", testCatalogue())
			})

			expected := fallbackExpectation()
			assert.Equal(t, expected.FunctionsToCall, descriptor.FunctionsToCall)
			assert.Equal(t, expected.ResponseStyle, descriptor.ResponseStyle)
			assert.Equal(t, expected.Focus, descriptor.Focus)
			assert.Equal(t, tt.expectedReasoning, descriptor.Reasoning)

			// One call, one fallback, no retry.
			assert.LessOrEqual(t, tt.chat.calls, 1)
		})
	}
}

func TestExtractJSON(t *testing.T) {
	assert.Equal(t, `{"a": 1}`, extractJSON(`{"a": 1}`))
	assert.Equal(t, `{"a": 1}`, extractJSON("```json\n{\"a\": 1}\n```"))
	assert.Equal(t, `{"a": 1}`, extractJSON(`Here you go: {"a": 1}`))
	assert.Equal(t, "", extractJSON("no json here"))
	assert.Equal(t, "", extractJSON("{broken"))
}
