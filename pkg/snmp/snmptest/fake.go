// Package snmptest provides an in-memory snmp.Session for tests.
package snmptest

import (
	"errors"

	"github.com/nmasdoufi/check-hwgroup/pkg/snmp"
)

// Fake answers GETs from fixed tables and records every requested OID.
type Fake struct {
	Values map[string]string
	Errors map[string]error
	Calls  []string
	Closed bool
}

// New returns a Fake serving values.
func New(values map[string]string) *Fake {
	return &Fake{Values: values, Errors: map[string]error{}}
}

// Fail makes GETs of oid return a transport error wrapping err.
func (f *Fake) Fail(oid string, err error) *Fake {
	if f.Errors == nil {
		f.Errors = map[string]error{}
	}
	f.Errors[oid] = err
	return f
}

// Get implements snmp.Getter. Unknown OIDs behave like noSuchInstance.
func (f *Fake) Get(oid string) (string, error) {
	f.Calls = append(f.Calls, oid)
	if err, ok := f.Errors[oid]; ok {
		return "", &snmp.TransportError{OID: oid, Err: err}
	}
	v, ok := f.Values[oid]
	if !ok {
		return "", &snmp.TransportError{OID: oid, Err: errors.New("noSuchInstance")}
	}
	return v, nil
}

// Close implements snmp.Session.
func (f *Fake) Close() error {
	f.Closed = true
	return nil
}
