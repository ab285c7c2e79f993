package check

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Range is a monitoring-plugin threshold range: "10" means 0:10, "10:" means
// 10 or more, "~:10" has no lower bound and a leading "@" alerts inside the
// range instead of outside.
type Range struct {
	Start  float64
	End    float64
	Inside bool
	raw    string
}

// ParseRange parses s in the standard threshold syntax.
func ParseRange(s string) (Range, error) {
	raw := strings.TrimSpace(s)
	if raw == "" {
		return Range{}, fmt.Errorf("empty threshold range")
	}
	r := Range{Start: 0, End: math.Inf(1), raw: raw}
	body := raw
	if strings.HasPrefix(body, "@") {
		r.Inside = true
		body = body[1:]
	}

	start, end, hasColon := strings.Cut(body, ":")
	if !hasColon {
		end, start = start, ""
	}
	switch start {
	case "":
	case "~":
		r.Start = math.Inf(-1)
	default:
		v, err := strconv.ParseFloat(start, 64)
		if err != nil {
			return Range{}, fmt.Errorf("invalid range %q: %w", raw, err)
		}
		r.Start = v
	}
	if end != "" {
		v, err := strconv.ParseFloat(end, 64)
		if err != nil {
			return Range{}, fmt.Errorf("invalid range %q: %w", raw, err)
		}
		r.End = v
	} else if !hasColon {
		return Range{}, fmt.Errorf("invalid range %q", raw)
	}
	if r.Start > r.End {
		return Range{}, fmt.Errorf("invalid range %q: start exceeds end", raw)
	}
	return r, nil
}

// MustParseRange is ParseRange for constants.
func MustParseRange(s string) Range {
	r, err := ParseRange(s)
	if err != nil {
		panic(err)
	}
	return r
}

// Violated reports whether v raises an alert against r.
func (r Range) Violated(v float64) bool {
	inside := v >= r.Start && v <= r.End
	if r.Inside {
		return inside
	}
	return !inside
}

// String renders the range as start:end.
func (r Range) String() string {
	var b strings.Builder
	if r.Inside {
		b.WriteByte('@')
	}
	if math.IsInf(r.Start, -1) {
		b.WriteByte('~')
	} else {
		b.WriteString(formatFloat(r.Start))
	}
	b.WriteByte(':')
	if !math.IsInf(r.End, 1) {
		b.WriteString(formatFloat(r.End))
	}
	return b.String()
}

// Raw is the range as given, used for performance data.
func (r Range) Raw() string {
	if r.raw == "" {
		return r.String()
	}
	return r.raw
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
