package main

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/pflag"

	"github.com/nmasdoufi/check-hwgroup/pkg/check"
	"github.com/nmasdoufi/check-hwgroup/pkg/config"
	"github.com/nmasdoufi/check-hwgroup/pkg/probe"
)

type options struct {
	host        string
	community   string
	port        int
	timeout     time.Duration
	retries     int
	snmpVersion string
	configPath  string
	verbose     int
	showVersion bool

	thresholds check.Thresholds
	request    probe.Request

	// flags given on the command line, which win over the config file
	set map[string]bool
}

var errUsage = errors.New("usage")

// parseArgs validates the command line without touching the network.
func parseArgs(args []string, usage io.Writer) (*options, error) {
	defaults := config.Default()
	defaultTimeout, _ := defaults.SNMP.TimeoutDuration()

	opts := &options{set: map[string]bool{}}
	var warning, critical string
	var sensor, contact, output int

	fs := pflag.NewFlagSet("check_hwgroup", pflag.ContinueOnError)
	fs.SetOutput(usage)
	fs.SortFlags = false
	fs.StringVarP(&opts.host, "host", "H", "", "The hostname or ipaddress of the hwgroup device")
	fs.StringVarP(&opts.community, "community", "C", defaults.SNMP.Community, "The snmp community of the hwgroup device")
	fs.IntVarP(&opts.port, "port", "P", defaults.SNMP.Port, "The snmp port of the hwgroup device")
	fs.StringVarP(&warning, "warning", "w", "", "Warning threshold range")
	fs.StringVarP(&critical, "critical", "c", "", "Critical threshold range")
	fs.IntVarP(&sensor, "sensor", "S", 0, "The sensor to check")
	fs.IntVarP(&contact, "contact", "I", 0, "The dry contact to check")
	fs.IntVarP(&output, "output", "O", 0, "The relay output to check")
	fs.DurationVarP(&opts.timeout, "timeout", "t", defaultTimeout, "SNMP timeout per request")
	fs.IntVarP(&opts.retries, "retries", "r", defaults.SNMP.Retries, "SNMP retries per request")
	fs.StringVar(&opts.snmpVersion, "snmp-version", defaults.SNMP.Version, "SNMP version (1 or 2c)")
	fs.StringVar(&opts.configPath, "config", "", "Optional YAML/JSON config file")
	fs.CountVarP(&opts.verbose, "verbose", "v", "Increase log verbosity on stderr")
	fs.BoolVarP(&opts.showVersion, "version", "V", false, "Print version and exit")

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return nil, errUsage
		}
		return nil, err
	}
	if opts.showVersion {
		return opts, nil
	}
	if fs.NArg() > 0 {
		return nil, fmt.Errorf("unexpected arguments: %s", strings.Join(fs.Args(), " "))
	}
	fs.Visit(func(f *pflag.Flag) { opts.set[f.Name] = true })

	var missing []string
	for _, name := range []string{"host", "warning", "critical"} {
		if !opts.set[name] {
			missing = append(missing, "--"+name)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("required flag(s) not set: %s", strings.Join(missing, ", "))
	}

	var chosen []string
	for _, name := range []string{"sensor", "contact", "output"} {
		if opts.set[name] {
			chosen = append(chosen, "--"+name)
		}
	}
	switch len(chosen) {
	case 0:
		return nil, errors.New("one of the flags --sensor, --contact, --output is required")
	case 1:
	default:
		return nil, fmt.Errorf("flags %s are mutually exclusive", strings.Join(chosen, " and "))
	}
	switch {
	case opts.set["sensor"]:
		opts.request = probe.SensorRequest{ID: sensor}
	case opts.set["contact"]:
		opts.request = probe.ContactRequest{ID: contact}
	default:
		opts.request = probe.OutputRequest{ID: output}
	}

	if opts.port < 1 || opts.port > 65535 {
		return nil, fmt.Errorf("invalid port %d: must be within 1-65535", opts.port)
	}
	var err error
	if opts.thresholds.Warning, err = check.ParseRange(warning); err != nil {
		return nil, fmt.Errorf("warning: %w", err)
	}
	if opts.thresholds.Critical, err = check.ParseRange(critical); err != nil {
		return nil, fmt.Errorf("critical: %w", err)
	}
	return opts, nil
}

// apply overlays explicitly given flags onto cfg.
func (o *options) apply(cfg *config.Config) {
	if o.set["community"] {
		cfg.SNMP.Community = o.community
	}
	if o.set["port"] {
		cfg.SNMP.Port = o.port
	}
	if o.set["timeout"] {
		cfg.SNMP.Timeout = o.timeout.String()
	}
	if o.set["retries"] {
		cfg.SNMP.Retries = o.retries
	}
	if o.set["snmp-version"] {
		cfg.SNMP.Version = o.snmpVersion
	}
}
