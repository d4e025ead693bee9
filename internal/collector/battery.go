package collector

import (
	"context"
	"fmt"

	"github.com/distatus/battery"
)

// BatteryInfo reports charge level and charging state of the first
// battery. Desktop machines without one produce an error record.
func BatteryInfo(_ context.Context) (Payload, error) {
	batteries, err := battery.GetAll()
	if err != nil {
		return nil, fmt.Errorf("reading batteries: %w", err)
	}
	if len(batteries) == 0 {
		return nil, fmt.Errorf("battery information not available (desktop system?)")
	}

	b := batteries[0]
	percentage := 0.0
	if b.Full > 0 {
		percentage = round1(b.Current / b.Full * 100)
	}

	pluggedIn := b.State.Raw == battery.Charging ||
		b.State.Raw == battery.Idle ||
		b.State.Raw == battery.Full

	payload := Payload{
		"percentage": percentage,
		"plugged_in": pluggedIn,
		"state":      b.State.String(),
	}

	// Time estimate only makes sense while draining.
	if b.State.Raw == battery.Discharging && b.ChargeRate > 0 {
		seconds := int(b.Current / b.ChargeRate * 3600)
		payload["time_left_seconds"] = seconds
		payload["time_left_formatted"] = fmt.Sprintf("%dh %dm", seconds/3600, (seconds%3600)/60)
	} else {
		payload["time_left_seconds"] = nil
		payload["time_left_formatted"] = "Charging/Unknown"
	}

	return payload, nil
}
