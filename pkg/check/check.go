// Package check evaluates a metric against thresholds and renders the
// monitoring-plugin status line.
package check

import (
	"fmt"
	"io"
	"regexp"
	"strings"

	"github.com/nmasdoufi/check-hwgroup/pkg/probe"
)

// DefaultName labels output when the device could not be identified.
const DefaultName = "CHECK_HWGROUP"

// Status is a plugin state; its value is the process exit code.
type Status int

const (
	OK Status = iota
	Warning
	Critical
	Unknown
)

func (s Status) String() string {
	switch s {
	case OK:
		return "OK"
	case Warning:
		return "WARNING"
	case Critical:
		return "CRITICAL"
	default:
		return "UNKNOWN"
	}
}

// Thresholds pairs the warning and critical ranges of a check.
type Thresholds struct {
	Warning  Range
	Critical Range
}

// Result is one rendered plugin outcome.
type Result struct {
	Name    string
	Status  Status
	Summary string
	Perf    string
}

// Evaluate classifies m. Critical takes precedence over warning.
func Evaluate(name string, m probe.Metric, th Thresholds) Result {
	res := Result{
		Name:    checkName(name),
		Status:  OK,
		Summary: fmt.Sprintf("%s is %s", m.Label, formatFloat(m.Value)),
		Perf:    perfData(m, th),
	}
	var violated *Range
	switch {
	case th.Critical.Violated(m.Value):
		res.Status = Critical
		violated = &th.Critical
	case th.Warning.Violated(m.Value):
		res.Status = Warning
		violated = &th.Warning
	}
	if violated != nil {
		hint := "outside range"
		if violated.Inside {
			hint = "inside range"
		}
		res.Summary += fmt.Sprintf(" (%s %s)", hint, strings.TrimPrefix(violated.String(), "@"))
	}
	return res
}

// Fail reports err as UNKNOWN.
func Fail(name string, err error) Result {
	return Result{Name: checkName(name), Status: Unknown, Summary: err.Error()}
}

// String renders the status line without a trailing newline.
func (r Result) String() string {
	line := fmt.Sprintf("%s %s - %s", r.Name, r.Status, r.Summary)
	if r.Perf != "" {
		line += " | " + r.Perf
	}
	return line
}

// Report writes r to w and returns the exit code.
func Report(w io.Writer, r Result) int {
	fmt.Fprintln(w, r.String())
	return int(r.Status)
}

func checkName(name string) string {
	name = strings.Join(strings.Fields(name), " ")
	if name == "" {
		return DefaultName
	}
	return strings.ToUpper(name)
}

var plainLabel = regexp.MustCompile(`^[A-Za-z0-9_.-]+$`)

func perfData(m probe.Metric, th Thresholds) string {
	label := m.Label
	if !plainLabel.MatchString(label) {
		label = "'" + strings.ReplaceAll(label, "'", "''") + "'"
	}
	return fmt.Sprintf("%s=%s;%s;%s", label, formatFloat(m.Value), th.Warning.Raw(), th.Critical.Raw())
}
