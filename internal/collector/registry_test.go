package collector

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sysmon-agent/internal/common/logger"
)

func staticCollector(payload Payload) Func {
	return func(context.Context) (Payload, error) {
		return payload, nil
	}
}

func TestRegistry_Register_Validation(t *testing.T) {
	r := NewRegistry(logger.NewNoOpLogger())

	assert.Error(t, r.Register("", "empty name", staticCollector(Payload{})))
	assert.Error(t, r.Register("get_cpu_info", "nil func", nil))

	require.NoError(t, r.Register("get_cpu_info", "CPU usage", staticCollector(Payload{"usage_percent": 12.5})))
	assert.Error(t, r.Register("get_cpu_info", "duplicate", staticCollector(Payload{})))
}

func TestRegistry_List_PreservesRegistrationOrder(t *testing.T) {
	r := NewRegistry(logger.NewNoOpLogger())
	names := []string{"get_battery_info", "get_cpu_info", "get_memory_info", "get_disk_info"}
	for _, name := range names {
		require.NoError(t, r.Register(name, name, staticCollector(Payload{})))
	}

	assert.Equal(t, names, r.List())

	catalogue := r.Catalogue()
	require.Len(t, catalogue, len(names))
	for i, spec := range catalogue {
		assert.Equal(t, names[i], spec.Name)
	}
}

func TestRegistry_Invoke_UnknownName(t *testing.T) {
	r := NewRegistry(logger.NewNoOpLogger())

	payload := r.Invoke(context.Background(), "get_quantum_info")

	require.Contains(t, payload, "error")
	assert.Contains(t, payload["error"], "Unknown function: get_quantum_info")
}

func TestRegistry_Invoke_CollectorError(t *testing.T) {
	r := NewRegistry(logger.NewNoOpLogger())
	require.NoError(t, r.Register("get_battery_info", "battery", func(context.Context) (Payload, error) {
		return nil, fmt.Errorf("battery information not available")
	}))

	payload := r.Invoke(context.Background(), "get_battery_info")

	require.Contains(t, payload, "error")
	assert.Contains(t, payload["error"], "Error calling get_battery_info")
	assert.Contains(t, payload["error"], "battery information not available")
}

func TestRegistry_Invoke_RecoversPanic(t *testing.T) {
	r := NewRegistry(logger.NewNoOpLogger())
	require.NoError(t, r.Register("get_cpu_info", "cpu", func(context.Context) (Payload, error) {
		panic("sensor exploded")
	}))

	var payload Payload
	assert.NotPanics(t, func() {
		payload = r.Invoke(context.Background(), "get_cpu_info")
	})

	require.Contains(t, payload, "error")
	assert.Contains(t, payload["error"], "sensor exploded")
}

func TestRegistry_InvokeMany(t *testing.T) {
	r := NewRegistry(logger.NewNoOpLogger())
	require.NoError(t, r.Register("get_cpu_info", "cpu", staticCollector(Payload{"usage_percent": 40.0})))
	require.NoError(t, r.Register("get_memory_info", "memory", staticCollector(Payload{"percentage": 61.2})))

	t.Run("empty input yields empty bundle", func(t *testing.T) {
		bundle := r.InvokeMany(context.Background(), nil)
		assert.Empty(t, bundle)
	})

	t.Run("unknown names substitute error records in place", func(t *testing.T) {
		bundle := r.InvokeMany(context.Background(), []string{"get_cpu_info", "get_gpu_info", "get_memory_info"})

		require.Len(t, bundle, 3)
		assert.Equal(t, Payload{"usage_percent": 40.0}, bundle["get_cpu_info"])
		assert.Contains(t, bundle["get_gpu_info"], "error")
		assert.Equal(t, Payload{"percentage": 61.2}, bundle["get_memory_info"])
	})

	t.Run("duplicates collapse to one key, last write wins", func(t *testing.T) {
		calls := 0
		require.NoError(t, r.Register("get_uptime_info", "uptime", func(context.Context) (Payload, error) {
			calls++
			return Payload{"call": calls}, nil
		}))

		bundle := r.InvokeMany(context.Background(), []string{"get_uptime_info", "get_uptime_info"})

		require.Len(t, bundle, 1)
		assert.Equal(t, 2, calls)
		assert.Equal(t, Payload{"call": 2}, bundle["get_uptime_info"])
	})
}
