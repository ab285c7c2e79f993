// Package probe turns a device family and a measurement request into a metric.
package probe

import (
	"fmt"

	"github.com/nmasdoufi/check-hwgroup/pkg/device"
	"github.com/nmasdoufi/check-hwgroup/pkg/logging"
	"github.com/nmasdoufi/check-hwgroup/pkg/snmp"
)

// sensorSlots is the number of physical sensor inputs on every family.
const sensorSlots = 2

// Device values are reported in tenths of a unit.
const valueScale = 10

// Columns of the dry contact table.
const (
	contactValue      = 2
	contactName       = 3
	contactAlarmSetup = 4
	contactAlarmState = 5
)

// Columns of the relay output table.
const (
	outputValue = 2
	outputName  = 3
	outputType  = 4
	outputMode  = 5
)

// Prober issues the request sequence for one measurement.
type Prober struct {
	getter snmp.Getter
	logger *logging.Logger
}

// New creates a prober issuing requests through getter.
func New(getter snmp.Getter, logger *logging.Logger) *Prober {
	return &Prober{getter: getter, logger: logger}
}

// Probe reads the measurement req selects from a device of the given family.
func (p *Prober) Probe(family device.Family, req Request) (Metric, error) {
	layout, ok := device.LayoutFor(family)
	if !ok {
		return Metric{}, fmt.Errorf("no OID layout for %s", family)
	}
	switch r := req.(type) {
	case SensorRequest:
		return p.probeSensor(layout, r.ID)
	case ContactRequest:
		if !layout.HasIO() {
			return Metric{}, &UnsupportedProbeError{Family: family, Kind: r.Kind()}
		}
		return p.probeContact(layout, r.ID)
	case OutputRequest:
		if !layout.HasIO() {
			return Metric{}, &UnsupportedProbeError{Family: family, Kind: r.Kind()}
		}
		return p.probeOutput(layout, r.ID)
	default:
		return Metric{}, fmt.Errorf("unknown probe request %T", req)
	}
}

func (p *Prober) probeSensor(layout device.Layout, id int) (Metric, error) {
	slot, ok := p.findSlot(layout, id)
	if !ok {
		return Metric{}, &SensorNotFoundError{ID: id}
	}
	p.logger.Debugf("sensor %d is on slot %d", id, slot)

	nameOID, stateOID, valueOID := layout.SensorFieldOIDs(slot)
	fields, err := p.fetch(nameOID, stateOID, valueOID)
	if err != nil {
		return Metric{}, err
	}
	name, rawState, rawValue := fields[0], fields[1], fields[2]

	state, err := parseInt("sensor state", rawState)
	if err != nil {
		return Metric{}, err
	}
	if state == 0 {
		return Metric{}, &SensorValueUnavailableError{Name: name, Slot: slot, State: rawState}
	}
	value, err := parseFloat("sensor value", rawValue)
	if err != nil {
		return Metric{}, err
	}
	return Metric{Label: name, Value: value / valueScale}, nil
}

// findSlot scans the index column of both slots. A slot that cannot be read
// or does not hold an integer is skipped, not fatal.
func (p *Prober) findSlot(layout device.Layout, id int) (int, bool) {
	for slot := 1; slot <= sensorSlots; slot++ {
		raw, err := p.getter.Get(layout.SensorIndexOID(slot))
		if err != nil {
			p.logger.Debugf("slot %d: %v", slot, err)
			continue
		}
		sensorID, err := parseInt("sensor id", raw)
		if err != nil {
			p.logger.Debugf("slot %d: %v", slot, err)
			continue
		}
		if sensorID == id {
			return slot, true
		}
	}
	return 0, false
}

func (p *Prober) probeContact(layout device.Layout, id int) (Metric, error) {
	fields, err := p.fetch(
		layout.ContactOID(contactValue, id),
		layout.ContactOID(contactName, id),
		layout.ContactOID(contactAlarmSetup, id),
		layout.ContactOID(contactAlarmState, id),
	)
	if err != nil {
		return Metric{}, err
	}
	rawValue, name, rawSetup, rawState := fields[0], fields[1], fields[2], fields[3]

	state, err := decodeEnum("alarm state", rawState, alarmStates)
	if err != nil {
		return Metric{}, err
	}
	setup, err := decodeEnum("alarm setup", rawSetup, alarmSetups)
	if err != nil {
		return Metric{}, err
	}
	value, err := parseFloat("contact value", rawValue)
	if err != nil {
		return Metric{}, err
	}
	return Metric{
		Label: fmt.Sprintf("%s [AlarmState: %s, AlarmSetup: %s]", name, state, setup),
		Value: value,
	}, nil
}

func (p *Prober) probeOutput(layout device.Layout, id int) (Metric, error) {
	fields, err := p.fetch(
		layout.OutputOID(outputValue, id),
		layout.OutputOID(outputName, id),
		layout.OutputOID(outputType, id),
		layout.OutputOID(outputMode, id),
	)
	if err != nil {
		return Metric{}, err
	}
	rawValue, name, rawType, rawMode := fields[0], fields[1], fields[2], fields[3]

	outType, err := decodeEnum("output type", rawType, outputTypes)
	if err != nil {
		return Metric{}, err
	}
	mode, err := decodeEnum("output mode", rawMode, outputModes)
	if err != nil {
		return Metric{}, err
	}
	value, err := parseFloat("output value", rawValue)
	if err != nil {
		return Metric{}, err
	}
	return Metric{
		Label: fmt.Sprintf("%s [Type: %s, Mode: %s]", name, outType, mode),
		Value: value,
	}, nil
}

// fetch reads every oid in order and stops at the first transport error,
// which is returned as is.
func (p *Prober) fetch(oids ...string) ([]string, error) {
	values := make([]string, 0, len(oids))
	for _, oid := range oids {
		v, err := p.getter.Get(oid)
		if err != nil {
			return nil, err
		}
		values = append(values, v)
	}
	return values, nil
}
