package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/nmasdoufi/check-hwgroup/pkg/check"
	"github.com/nmasdoufi/check-hwgroup/pkg/config"
	"github.com/nmasdoufi/check-hwgroup/pkg/device"
	"github.com/nmasdoufi/check-hwgroup/pkg/logging"
	"github.com/nmasdoufi/check-hwgroup/pkg/probe"
	"github.com/nmasdoufi/check-hwgroup/pkg/snmp"
)

const version = "1.0.0"

// openSession is replaced in tests.
var openSession = func(cfg snmp.Config, logger *logging.Logger) (snmp.Session, error) {
	client, err := snmp.Dial(cfg, logger)
	if err != nil {
		return nil, err
	}
	return client, nil
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	opts, err := parseArgs(args, stderr)
	if err != nil {
		if errors.Is(err, errUsage) {
			return int(check.Unknown)
		}
		return check.Report(stdout, check.Fail("", err))
	}
	if opts.showVersion {
		fmt.Fprintf(stdout, "check_hwgroup %s\n", version)
		return int(check.OK)
	}

	cfg := config.Default()
	if opts.configPath != "" {
		if cfg, err = config.Load(opts.configPath); err != nil {
			return check.Report(stdout, check.Fail("", err))
		}
	}
	opts.apply(cfg)
	if err := cfg.Validate(); err != nil {
		return check.Report(stdout, check.Fail("", err))
	}

	level := logging.Raise(logging.ParseLevel(cfg.Logging.Level), opts.verbose)
	logger, err := logging.New(stderr, cfg.Logging.Path, level, cfg.Logging.Format)
	if err != nil {
		return check.Report(stdout, check.Fail("", err))
	}
	logger = logger.With("host", opts.host)

	snmpCfg, err := transportConfig(opts.host, cfg.SNMP)
	if err != nil {
		return check.Report(stdout, check.Fail("", err))
	}
	session, err := openSession(snmpCfg, logger)
	if err != nil {
		logger.Errorf("%v", err)
		return check.Report(stdout, check.Fail("", err))
	}
	defer session.Close()

	identity, family, err := device.NewResolver(session, logger).Resolve()
	if err != nil {
		logger.Errorf("%v", err)
		return check.Report(stdout, check.Fail(identity, err))
	}

	metric, err := probe.New(session, logger).Probe(family, opts.request)
	if err != nil {
		logger.Errorf("%s: %v", opts.request, err)
		return check.Report(stdout, check.Fail(identity, err))
	}
	logger.Infof("%s: %s = %v", opts.request, metric.Label, metric.Value)

	return check.Report(stdout, check.Evaluate(identity, metric, opts.thresholds))
}

func transportConfig(host string, c config.SNMPConfig) (snmp.Config, error) {
	ver, err := snmp.ParseVersion(c.Version)
	if err != nil {
		return snmp.Config{}, err
	}
	timeout, err := c.TimeoutDuration()
	if err != nil {
		return snmp.Config{}, err
	}
	return snmp.Config{
		Target:    host,
		Port:      uint16(c.Port),
		Community: c.Community,
		Version:   ver,
		Timeout:   timeout,
		Retries:   c.Retries,
	}, nil
}
