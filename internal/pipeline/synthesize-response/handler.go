// Package synthesizeresponse turns collected system data back into a
// natural-language answer.
package synthesizeresponse

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/openai/openai-go"

	"sysmon-agent/internal/collector"
	"sysmon-agent/internal/common/llm"
	"sysmon-agent/internal/common/logger"
	"sysmon-agent/internal/common/metrics"
	parseintent "sysmon-agent/internal/pipeline/parse-intent"
)

const Stage = "synthesize-response"

var ErrSynthesisFailed = errors.New("SYNTHESIS_FAILED")

type Handler struct {
	config *Config
	llm    llm.ChatClient
	logger logger.Logger
}

func NewHandler(config *Config, chat llm.ChatClient, log logger.Logger) *Handler {
	return &Handler{
		config: config,
		llm:    chat,
		logger: log.With(map[string]interface{}{"stage": Stage}),
	}
}

// Execute produces the final answer text. It never fails: when the model
// call cannot complete the user gets a fixed fallback string carrying the
// raw data bundle, never a silent failure.
func (h *Handler) Execute(ctx context.Context, query string, bundle collector.DataBundle, descriptor *parseintent.IntentDescriptor) string {
	answer, err := h.synthesize(ctx, query, bundle, descriptor)
	if err == nil {
		metrics.LLMRequests.WithLabelValues(Stage, "ok").Inc()
		return answer
	}

	metrics.LLMRequests.WithLabelValues(Stage, "error").Inc()
	metrics.StageFallbacks.WithLabelValues(Stage, "transport").Inc()
	h.logger.Warn("synthesis degraded to fallback", map[string]interface{}{
		"error": err.Error(),
	})

	return fmt.Sprintf("I gathered your system information but had trouble generating a response. Here's the raw data: %s", renderBundle(bundle))
}

func (h *Handler) synthesize(ctx context.Context, query string, bundle collector.DataBundle, descriptor *parseintent.IntentDescriptor) (string, error) {
	if h.config.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, h.config.Timeout)
		defer cancel()
	}

	resp, err := h.llm.Complete(ctx, openai.ChatCompletionNewParams{
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(buildSystemPrompt(query, bundle, descriptor)),
			openai.UserMessage(fmt.Sprintf("Please respond to: %s", query)),
		},
		Temperature: openai.Float(h.config.Temperature),
		MaxTokens:   openai.Int(int64(h.config.MaxTokens)),
	})
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrSynthesisFailed, err)
	}

	answer := strings.TrimSpace(llm.FirstContent(resp))
	if answer == "" {
		return "", fmt.Errorf("%w: empty completion", ErrSynthesisFailed)
	}

	return answer, nil
}

func buildSystemPrompt(query string, bundle collector.DataBundle, descriptor *parseintent.IntentDescriptor) string {
	descriptorJSON, _ := json.MarshalIndent(descriptor, "", "  ")

	var parts []string

	parts = append(parts, "You are a helpful system monitor assistant. Generate a natural, conversational response to the user's query about their computer system.")
	parts = append(parts, fmt.Sprintf("\nUser's query: %q", query))
	parts = append(parts, "Parsing result:")
	parts = append(parts, string(descriptorJSON))
	parts = append(parts, "System data:")
	parts = append(parts, renderBundle(bundle))

	parts = append(parts, "\nGuidelines:")
	parts = append(parts, fmt.Sprintf("- Use the response_style from parsing: %s", descriptor.ResponseStyle))
	parts = append(parts, fmt.Sprintf("- Focus on what the user asked about: %s", descriptor.Focus))
	parts = append(parts, "- If there are any errors in the data, mention them helpfully")
	parts = append(parts, "- Convert technical units to user-friendly formats")
	parts = append(parts, "- Be concise but informative")

	parts = append(parts, "\nGenerate a response that directly answers the user's question using the system data provided.")

	return strings.Join(parts, "\n")
}

func renderBundle(bundle collector.DataBundle) string {
	data, err := json.MarshalIndent(bundle, "", "  ")
	if err != nil {
		return fmt.Sprintf("%v", bundle)
	}
	return string(data)
}
