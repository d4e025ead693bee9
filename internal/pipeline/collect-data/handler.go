// Package collectdata runs the collector calls named by an intent
// descriptor against the registry.
package collectdata

import (
	"context"

	"sysmon-agent/internal/collector"
	"sysmon-agent/internal/common/logger"
	parseintent "sysmon-agent/internal/pipeline/parse-intent"
)

const Stage = "collect-data"

type Handler struct {
	registry *collector.Registry
	logger   logger.Logger
}

func NewHandler(registry *collector.Registry, log logger.Logger) *Handler {
	return &Handler{
		registry: registry,
		logger:   log.With(map[string]interface{}{"stage": Stage}),
	}
}

// Execute forwards the descriptor's function list to the registry. An
// empty list is legal and yields an empty bundle. Unknown names are not
// filtered here: the registry reports them per entry as error records.
func (h *Handler) Execute(ctx context.Context, descriptor *parseintent.IntentDescriptor) collector.DataBundle {
	if len(descriptor.FunctionsToCall) == 0 {
		h.logger.Info("no functions requested", nil)
		return collector.DataBundle{}
	}

	h.logger.Info("collecting system data", map[string]interface{}{
		"functions": descriptor.FunctionsToCall,
	})

	return h.registry.InvokeMany(ctx, descriptor.FunctionsToCall)
}
