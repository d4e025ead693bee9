// Package agent sequences the query pipeline: intent parsing, data
// collection, response synthesis.
package agent

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/openai/openai-go"

	"sysmon-agent/internal/collector"
	"sysmon-agent/internal/common/config"
	"sysmon-agent/internal/common/llm"
	"sysmon-agent/internal/common/logger"
	"sysmon-agent/internal/common/metrics"
	"sysmon-agent/internal/common/observability"
	collectdata "sysmon-agent/internal/pipeline/collect-data"
	parseintent "sysmon-agent/internal/pipeline/parse-intent"
	synthesizeresponse "sysmon-agent/internal/pipeline/synthesize-response"
)

// Health check component names.
const (
	ComponentRegistry = "metrics_registry"
	ComponentLLM      = "llm_connection"
)

// Agent owns one registry and one chat client for its lifetime and runs
// each query through the three stages in order. The stages hold all
// fallback policy; the agent only sequences.
type Agent struct {
	registry    *collector.Registry
	parser      *parseintent.Handler
	executor    *collectdata.Handler
	synthesizer *synthesizeresponse.Handler
	llm         llm.ChatClient
	obs         *observability.Observability
	logger      logger.Logger
}

// New wires the pipeline from explicitly passed collaborators. Nothing
// here is a package-level singleton, so tests can run parallel agents
// with stubbed registries and chat clients.
func New(registry *collector.Registry, chat llm.ChatClient, llmCfg config.LLMConfig, obs *observability.Observability, log logger.Logger) *Agent {
	return &Agent{
		registry:    registry,
		parser:      parseintent.NewHandler(parseintent.NewConfig(llmCfg), chat, log),
		executor:    collectdata.NewHandler(registry, log),
		synthesizer: synthesizeresponse.NewHandler(synthesizeresponse.NewConfig(llmCfg), chat, log),
		llm:         chat,
		obs:         obs,
		logger:      log.With(map[string]interface{}{"component": "agent"}),
	}
}

// Answer runs the full pipeline for one query. It always returns an
// answer string: every stage absorbs its own failures.
func (a *Agent) Answer(ctx context.Context, query string) string {
	queryID := uuid.NewString()
	log := a.logger.With(map[string]interface{}{"queryId": queryID})
	log.Info("processing query", map[string]interface{}{"query": query})

	start := time.Now()
	metrics.QueriesTotal.Inc()

	catalogue := a.registry.Catalogue()
	descriptor := a.parser.Execute(ctx, query, catalogue)
	bundle := a.executor.Execute(ctx, descriptor)
	answer := a.synthesizer.Execute(ctx, query, bundle, descriptor)

	elapsed := time.Since(start)
	metrics.QueryDuration.Observe(elapsed.Seconds())
	if a.obs != nil {
		a.obs.RecordQueryProcessed(ctx, "ok")
		a.obs.RecordQueryDuration(ctx, elapsed, "ok")
	}

	log.Info("query answered", map[string]interface{}{
		"durationMs": elapsed.Milliseconds(),
		"functions":  descriptor.FunctionsToCall,
	})

	return answer
}

// ListFunctions returns the registered collector names.
func (a *Agent) ListFunctions() []string {
	return a.registry.List()
}

// RawSystemData invokes the named collectors without any LLM processing.
func (a *Agent) RawSystemData(ctx context.Context, names []string) collector.DataBundle {
	return a.registry.InvokeMany(ctx, names)
}

// HealthCheck verifies each component independently. Diagnostic only: a
// failing component never blocks Answer.
func (a *Agent) HealthCheck(ctx context.Context) map[string]bool {
	results := map[string]bool{
		ComponentRegistry: a.checkRegistry(ctx),
		ComponentLLM:      a.checkLLM(ctx),
	}

	a.logger.Info("health check completed", map[string]interface{}{
		ComponentRegistry: results[ComponentRegistry],
		ComponentLLM:      results[ComponentLLM],
	})

	return results
}

func (a *Agent) checkRegistry(ctx context.Context) bool {
	payload := a.registry.Invoke(ctx, collector.FuncCPUInfo)
	_, failed := payload["error"]
	return !failed
}

func (a *Agent) checkLLM(ctx context.Context) bool {
	resp, err := a.llm.Complete(ctx, openai.ChatCompletionNewParams{
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage("Hello, respond with 'OK' if you can hear me."),
		},
		MaxTokens: openai.Int(10),
	})
	if err != nil {
		a.logger.Warn("llm connection check failed", map[string]interface{}{
			"error": err.Error(),
		})
		return false
	}
	return strings.Contains(llm.FirstContent(resp), "OK")
}

// SelfTest invokes the core collectors once at startup and logs any
// failures. Never fatal: a desktop without a battery still runs.
func (a *Agent) SelfTest(ctx context.Context) {
	core := []string{collector.FuncBatteryInfo, collector.FuncCPUInfo, collector.FuncMemoryInfo}
	for name, payload := range a.registry.InvokeMany(ctx, core) {
		if msg, failed := payload["error"]; failed {
			a.logger.Warn("core collector self-test failed", map[string]interface{}{
				"collector": name,
				"error":     msg,
			})
		}
	}
}
