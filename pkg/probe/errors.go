package probe

import (
	"fmt"

	"github.com/nmasdoufi/check-hwgroup/pkg/device"
)

// SensorNotFoundError means neither physical slot carries the requested id.
type SensorNotFoundError struct {
	ID int
}

func (e *SensorNotFoundError) Error() string {
	return fmt.Sprintf("sensor ID (%d) not found", e.ID)
}

// SensorValueUnavailableError means the device flags the sensor state as
// invalid, e.g. a disconnected probe.
type SensorValueUnavailableError struct {
	Name  string
	Slot  int
	State string
}

func (e *SensorValueUnavailableError) Error() string {
	return fmt.Sprintf("getting sensor values failed: %s (slot %d) reports state %s", e.Name, e.Slot, e.State)
}

// DecodeError reports a field whose raw value cannot be interpreted.
type DecodeError struct {
	Field string
	Raw   string
	Err   error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode %s %q: %v", e.Field, e.Raw, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// UnsupportedProbeError means the family has no table for the request kind.
type UnsupportedProbeError struct {
	Family device.Family
	Kind   string
}

func (e *UnsupportedProbeError) Error() string {
	return fmt.Sprintf("%s devices have no %s table", e.Family, e.Kind)
}
