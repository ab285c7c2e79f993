package probe

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var errOutOfRange = errors.New("index out of range")

var (
	alarmStates = []string{"normal", "alarm"}
	alarmSetups = []string{"inactive", "activeOff", "activeOn"}
	outputTypes = []string{"relay (off,on)", "rts (-10V,+10V)", "dtr (0V,+10V)"}
	outputModes = []string{"manual", "autoAlarm", "autoTriggerEq", "autoTriggerHi", "autoTriggerLo"}
)

// decodeEnum maps a numeric code onto its name in values.
func decodeEnum(field, raw string, values []string) (string, error) {
	idx, err := parseInt(field, raw)
	if err != nil {
		return "", err
	}
	if idx < 0 || idx >= len(values) {
		return "", &DecodeError{Field: field, Raw: raw, Err: fmt.Errorf("%w: %d not in [0,%d]", errOutOfRange, idx, len(values)-1)}
	}
	return values[idx], nil
}

func parseInt(field, raw string) (int, error) {
	v, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, &DecodeError{Field: field, Raw: raw, Err: err}
	}
	return v, nil
}

func parseFloat(field, raw string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return 0, &DecodeError{Field: field, Raw: raw, Err: err}
	}
	return v, nil
}
