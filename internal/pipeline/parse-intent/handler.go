// Package parseintent translates a free-text query into an
// IntentDescriptor naming the collectors to invoke.
package parseintent

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/openai/openai-go"
	"github.com/tidwall/gjson"
	"github.com/xeipuuv/gojsonschema"

	"sysmon-agent/internal/collector"
	"sysmon-agent/internal/common/llm"
	"sysmon-agent/internal/common/logger"
	"sysmon-agent/internal/common/metrics"
)

const Stage = "parse-intent"

var (
	ErrIntentParsingFailed = errors.New("INTENT_PARSING_FAILED")
	ErrIntentAPIFailed     = errors.New("INTENT_API_FAILED")
)

// descriptorSchema is the required four-field shape of the model's
// response. Extra fields are tolerated, missing ones are not.
const descriptorSchema = `{
	"type": "object",
	"required": ["functions_to_call", "response_style", "focus", "reasoning"],
	"properties": {
		"functions_to_call": {"type": "array", "items": {"type": "string"}},
		"response_style": {"type": "string"},
		"focus": {"type": "string"},
		"reasoning": {"type": "string"}
	}
}`

// fallbackFunctions is the fixed default triple used when parsing cannot
// complete. General-purpose collectors that answer most casual queries.
var fallbackFunctions = []string{
	collector.FuncBatteryInfo,
	collector.FuncCPUInfo,
	collector.FuncMemoryInfo,
}

type Handler struct {
	config *Config
	llm    llm.ChatClient
	logger logger.Logger
	schema *gojsonschema.Schema
}

func NewHandler(config *Config, chat llm.ChatClient, log logger.Logger) *Handler {
	schema, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(descriptorSchema))
	if err != nil {
		panic(fmt.Sprintf("descriptor schema does not compile: %v", err))
	}
	return &Handler{
		config: config,
		llm:    chat,
		logger: log.With(map[string]interface{}{"stage": Stage}),
		schema: schema,
	}
}

// Execute translates the query into an IntentDescriptor. It never fails:
// transport and shape errors both degrade to the fixed fallback
// descriptor, one call, no retry.
func (h *Handler) Execute(ctx context.Context, query string, catalogue []collector.FunctionSpec) *IntentDescriptor {
	descriptor, err := h.parse(ctx, query, catalogue)
	if err == nil {
		metrics.LLMRequests.WithLabelValues(Stage, "ok").Inc()
		h.logger.Info("intent parsed", map[string]interface{}{
			"functions": descriptor.FunctionsToCall,
			"style":     descriptor.ResponseStyle,
			"focus":     descriptor.Focus,
		})
		return descriptor
	}

	reason := "Fallback due to parsing error"
	metricReason := "parse"
	if errors.Is(err, ErrIntentAPIFailed) {
		reason = "Fallback due to API error"
		metricReason = "transport"
	}

	metrics.LLMRequests.WithLabelValues(Stage, "error").Inc()
	metrics.StageFallbacks.WithLabelValues(Stage, metricReason).Inc()
	h.logger.Warn("intent parsing degraded to fallback", map[string]interface{}{
		"error": err.Error(),
	})

	return &IntentDescriptor{
		FunctionsToCall: append([]string(nil), fallbackFunctions...),
		ResponseStyle:   "brief",
		Focus:           "general",
		Reasoning:       reason,
	}
}

func (h *Handler) parse(ctx context.Context, query string, catalogue []collector.FunctionSpec) (*IntentDescriptor, error) {
	if h.config.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, h.config.Timeout)
		defer cancel()
	}

	resp, err := h.llm.Complete(ctx, openai.ChatCompletionNewParams{
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(buildSystemPrompt(catalogue)),
			openai.UserMessage(query),
		},
		Temperature: openai.Float(h.config.Temperature),
		MaxTokens:   openai.Int(int64(h.config.MaxTokens)),
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrIntentAPIFailed, err)
	}

	raw := extractJSON(llm.FirstContent(resp))
	if raw == "" {
		return nil, fmt.Errorf("%w: response contains no JSON object", ErrIntentParsingFailed)
	}

	result, err := h.schema.Validate(gojsonschema.NewStringLoader(raw))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrIntentParsingFailed, err)
	}
	if !result.Valid() {
		return nil, fmt.Errorf("%w: %s", ErrIntentParsingFailed, formatSchemaErrors(result))
	}

	var descriptor IntentDescriptor
	if err := json.Unmarshal([]byte(raw), &descriptor); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrIntentParsingFailed, err)
	}

	return &descriptor, nil
}

func buildSystemPrompt(catalogue []collector.FunctionSpec) string {
	var parts []string

	parts = append(parts, "You are a system monitor query parser. Your job is to analyze user queries about computer system information and determine which system functions to call.")
	parts = append(parts, "\nAvailable functions:")
	for _, spec := range catalogue {
		parts = append(parts, fmt.Sprintf("- %s: %s", spec.Name, spec.Description))
	}

	parts = append(parts, "\nRespond with a JSON object containing:")
	parts = append(parts, `1. "functions_to_call": Array of function names to call`)
	parts = append(parts, `2. "response_style": How to format the response ("brief", "detailed", "conversational")`)
	parts = append(parts, `3. "focus": What aspect the user is most interested in`)
	parts = append(parts, `4. "reasoning": Brief explanation of your parsing`)

	parts = append(parts, "\nExamples:")
	parts = append(parts, `Query: "What's my battery percentage?"`)
	parts = append(parts, `Response: {"functions_to_call": ["get_battery_info"], "response_style": "brief", "focus": "battery_percentage", "reasoning": "User wants specific battery percentage"}`)
	parts = append(parts, `Query: "Give me a full system overview"`)
	parts = append(parts, `Response: {"functions_to_call": ["get_battery_info", "get_cpu_info", "get_memory_info", "get_disk_info"], "response_style": "detailed", "focus": "system_overview", "reasoning": "User wants comprehensive system status"}`)
	parts = append(parts, `Query: "Is my laptop running hot?"`)
	parts = append(parts, `Response: {"functions_to_call": ["get_temperature_info", "get_cpu_info"], "response_style": "conversational", "focus": "temperature", "reasoning": "User concerned about system temperature"}`)

	return strings.Join(parts, "\n")
}

// extractJSON pulls the outermost JSON object out of the model's text,
// tolerating markdown fences and surrounding prose.
func extractJSON(text string) string {
	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start < 0 || end <= start {
		return ""
	}
	candidate := text[start : end+1]
	if !gjson.Valid(candidate) {
		return ""
	}
	return candidate
}

func formatSchemaErrors(result *gojsonschema.Result) string {
	msgs := make([]string, 0, len(result.Errors()))
	for _, desc := range result.Errors() {
		msgs = append(msgs, desc.String())
	}
	return strings.Join(msgs, "; ")
}
