// Package collector implements the system telemetry registry: a fixed,
// named set of read-only collectors dispatched by function name.
package collector

import (
	"context"
	"fmt"

	stderrors "sysmon-agent/internal/common/errors"
	"sysmon-agent/internal/common/logger"
	"sysmon-agent/internal/common/metrics"
)

// Payload is a single collector result. A failed invocation is reported
// as a Payload holding only an "error" key, never as a Go error.
type Payload map[string]interface{}

// Func is the signature of a collector implementation.
type Func func(ctx context.Context) (Payload, error)

// FunctionSpec describes one registered collector for the intent prompt.
type FunctionSpec struct {
	Name        string
	Description string
}

// DataBundle maps function names to their results. Duplicate names in the
// invocation list collapse to one key, last write wins.
type DataBundle map[string]Payload

// Registry holds the named collectors. Registration order is preserved so
// the catalogue is stable across calls.
type Registry struct {
	names      []string
	collectors map[string]registration
	logger     logger.Logger
}

type registration struct {
	description string
	fn          Func
}

func NewRegistry(log logger.Logger) *Registry {
	return &Registry{
		collectors: make(map[string]registration),
		logger:     log.With(map[string]interface{}{"component": "collector-registry"}),
	}
}

// Register adds a collector under a unique name. Names are validated here
// so dispatch never has to handle a malformed registration.
func (r *Registry) Register(name, description string, fn Func) error {
	if name == "" {
		return fmt.Errorf("collector name must not be empty")
	}
	if fn == nil {
		return fmt.Errorf("collector %s: nil func", name)
	}
	if _, exists := r.collectors[name]; exists {
		return fmt.Errorf("collector %s already registered", name)
	}
	r.collectors[name] = registration{description: description, fn: fn}
	r.names = append(r.names, name)
	return nil
}

// MustRegister is Register for the fixed startup set.
func (r *Registry) MustRegister(name, description string, fn Func) {
	if err := r.Register(name, description, fn); err != nil {
		panic(err)
	}
}

// List returns the registered names in registration order.
func (r *Registry) List() []string {
	out := make([]string, len(r.names))
	copy(out, r.names)
	return out
}

// Catalogue returns the ordered (name, description) pairs rendered into
// the intent parsing prompt.
func (r *Registry) Catalogue() []FunctionSpec {
	out := make([]FunctionSpec, 0, len(r.names))
	for _, name := range r.names {
		out = append(out, FunctionSpec{Name: name, Description: r.collectors[name].description})
	}
	return out
}

// Invoke runs one collector by name. Unknown names and collector failures
// both come back as an error record; Invoke never returns a Go error and
// never lets a collector panic escape.
func (r *Registry) Invoke(ctx context.Context, name string) Payload {
	reg, ok := r.collectors[name]
	if !ok {
		metrics.CollectorInvocations.WithLabelValues(name, "unknown").Inc()
		return errorPayload(stderrors.NewCollectorNotFoundError(name).Message)
	}

	payload, err := r.invokeSafe(ctx, name, reg.fn)
	if err != nil {
		metrics.CollectorInvocations.WithLabelValues(name, "error").Inc()
		r.logger.Warn("collector failed", map[string]interface{}{
			"collector": name,
			"error":     err.Error(),
		})
		return errorPayload(stderrors.NewCollectorFailedError(name, err).Message)
	}

	metrics.CollectorInvocations.WithLabelValues(name, "ok").Inc()
	return payload
}

// InvokeMany applies Invoke to each name in input order.
func (r *Registry) InvokeMany(ctx context.Context, names []string) DataBundle {
	bundle := make(DataBundle, len(names))
	for _, name := range names {
		bundle[name] = r.Invoke(ctx, name)
	}
	return bundle
}

func (r *Registry) invokeSafe(ctx context.Context, name string, fn Func) (payload Payload, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			payload = nil
			err = fmt.Errorf("panic in %s: %v", name, rec)
		}
	}()
	return fn(ctx)
}

func errorPayload(msg string) Payload {
	return Payload{"error": msg}
}
