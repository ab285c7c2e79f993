// Package device identifies HW group units and holds their OID layouts.
package device

import (
	"fmt"
	"strconv"
)

// EnterpriseOID is the HW group private enterprise subtree.
const EnterpriseOID = ".1.3.6.1.4.1.21796"

// SysDescrOID is the standard system description.
const SysDescrOID = ".1.3.6.1.2.1.1.1.0"

// Family is a supported hardware product line.
type Family int

// Declaration order is detection priority: STE2 precedes STE because
// "STE" is a substring of "STE2".
const (
	Poseidon Family = iota
	Damocles
	STE2
	STE
	WLD
	familyCount
)

var familyNames = [familyCount]string{
	Poseidon: "Poseidon",
	Damocles: "Damocles",
	STE2:     "STE2",
	STE:      "STE",
	WLD:      "WLD",
}

func (f Family) String() string {
	if f < 0 || f >= familyCount {
		return "Family(" + strconv.Itoa(int(f)) + ")"
	}
	return familyNames[f]
}

// Families lists every family in detection priority order.
func Families() []Family {
	out := make([]Family, 0, familyCount)
	for f := Family(0); f < familyCount; f++ {
		out = append(out, f)
	}
	return out
}

// SensorFields are the name, state and value columns of a sensor table.
type SensorFields struct {
	Name  string
	State string
	Value string
}

// Layout is the OID map of one family. Fragments are relative to
// EnterpriseOID. IOBase is the branch under .3 holding the dry contact and
// relay output tables; zero means the family has neither.
type Layout struct {
	SensorIndex string
	Sensor      SensorFields
	IOBase      int
}

var layouts = [familyCount]Layout{
	Poseidon: {
		SensorIndex: "3.3.3.1.8",
		Sensor:      SensorFields{Name: "3.3.3.1.2", State: "3.3.3.1.4", Value: "3.3.3.1.6"},
		IOBase:      3,
	},
	Damocles: {
		SensorIndex: "3.4.3.1.8",
		Sensor:      SensorFields{Name: "3.4.3.1.2", State: "3.4.3.1.4", Value: "3.4.3.1.6"},
		IOBase:      4,
	},
	STE2: {
		SensorIndex: "4.9.3.1.8",
		Sensor:      SensorFields{Name: "4.9.3.1.2", State: "4.9.3.1.3", Value: "4.9.3.1.5"},
	},
	STE: {
		SensorIndex: "4.1.3.1.8",
		Sensor:      SensorFields{Name: "4.1.3.1.2", State: "4.1.3.1.3", Value: "4.1.3.1.5"},
	},
	WLD: {
		SensorIndex: "4.5.4.1.5",
		Sensor:      SensorFields{Name: "4.5.4.1.2", State: "4.5.4.1.3", Value: "4.5.4.1.6"},
	},
}

// LayoutFor returns the OID layout of f.
func LayoutFor(f Family) (Layout, bool) {
	if f < 0 || f >= familyCount {
		return Layout{}, false
	}
	l := layouts[f]
	if l.SensorIndex == "" {
		return Layout{}, false
	}
	return l, true
}

// SensorIndexOID is the id column read for a physical slot.
func (l Layout) SensorIndexOID(slot int) string {
	return fmt.Sprintf("%s.%s.%d", EnterpriseOID, l.SensorIndex, slot)
}

// SensorFieldOIDs returns the name, state and value OIDs of slot.
func (l Layout) SensorFieldOIDs(slot int) (name, state, value string) {
	return fmt.Sprintf("%s.%s.%d", EnterpriseOID, l.Sensor.Name, slot),
		fmt.Sprintf("%s.%s.%d", EnterpriseOID, l.Sensor.State, slot),
		fmt.Sprintf("%s.%s.%d", EnterpriseOID, l.Sensor.Value, slot)
}

// HasIO reports whether the family exposes dry contacts and relay outputs.
func (l Layout) HasIO() bool {
	return l.IOBase != 0
}

// ContactOID addresses column field of dry contact id.
func (l Layout) ContactOID(field, id int) string {
	return l.ioOID(1, field, id)
}

// OutputOID addresses column field of relay output id.
func (l Layout) OutputOID(field, id int) string {
	return l.ioOID(2, field, id)
}

func (l Layout) ioOID(table, field, id int) string {
	return fmt.Sprintf("%s.3.%d.%d.1.%d.%d", EnterpriseOID, l.IOBase, table, field, id)
}
