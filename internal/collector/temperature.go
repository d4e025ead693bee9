package collector

import (
	"context"
	"fmt"

	"github.com/shirou/gopsutil/v4/sensors"
)

// TemperatureInfo reports sensor readings grouped by sensor key. Machines
// without exposed sensors get a message rather than an error record.
func TemperatureInfo(ctx context.Context) (Payload, error) {
	temps, err := sensors.TemperaturesWithContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("reading temperature sensors: %w", err)
	}
	if len(temps) == 0 {
		return Payload{"message": "Temperature sensors not available"}, nil
	}

	payload := Payload{}
	for _, t := range temps {
		payload[t.SensorKey] = map[string]interface{}{
			"current":  round1(t.Temperature),
			"high":     round1(t.High),
			"critical": round1(t.Critical),
		}
	}

	return payload, nil
}
