package device

import (
	"fmt"
	"strings"

	"github.com/nmasdoufi/check-hwgroup/pkg/logging"
	"github.com/nmasdoufi/check-hwgroup/pkg/snmp"
)

// UnsupportedDeviceError means sysDescr named none of the known families.
type UnsupportedDeviceError struct {
	Identity string
}

func (e *UnsupportedDeviceError) Error() string {
	return fmt.Sprintf("device '%s' not supported", e.Identity)
}

// Classify matches identity against the family names in priority order.
func Classify(identity string) (Family, bool) {
	for _, f := range Families() {
		if strings.Contains(identity, f.String()) {
			return f, true
		}
	}
	return 0, false
}

// Resolver determines which family answers at the other end of a session.
type Resolver struct {
	getter snmp.Getter
	logger *logging.Logger
}

// NewResolver creates a resolver issuing requests through getter.
func NewResolver(getter snmp.Getter, logger *logging.Logger) *Resolver {
	return &Resolver{getter: getter, logger: logger}
}

// Resolve reads sysDescr once and classifies it. Transport errors are
// returned unchanged.
func (r *Resolver) Resolve() (string, Family, error) {
	identity, err := r.getter.Get(SysDescrOID)
	if err != nil {
		return "", 0, err
	}
	r.logger.Debugf("sysDescr: %s", identity)

	family, ok := Classify(identity)
	if !ok {
		return identity, 0, &UnsupportedDeviceError{Identity: identity}
	}
	if _, ok := LayoutFor(family); !ok {
		return identity, 0, &UnsupportedDeviceError{Identity: identity}
	}
	r.logger.Infof("detected %s device", family)
	return identity, family, nil
}
