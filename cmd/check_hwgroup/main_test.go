package main

import (
	"bytes"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/gosnmp/gosnmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nmasdoufi/check-hwgroup/pkg/config"
	"github.com/nmasdoufi/check-hwgroup/pkg/device"
	"github.com/nmasdoufi/check-hwgroup/pkg/logging"
	"github.com/nmasdoufi/check-hwgroup/pkg/probe"
	"github.com/nmasdoufi/check-hwgroup/pkg/snmp"
	"github.com/nmasdoufi/check-hwgroup/pkg/snmp/snmptest"
)

const ent = device.EnterpriseOID

// withSession swaps openSession for the duration of a test and records the
// transport config it was called with.
func withSession(t *testing.T, fake *snmptest.Fake) *[]snmp.Config {
	t.Helper()
	var calls []snmp.Config
	orig := openSession
	openSession = func(cfg snmp.Config, _ *logging.Logger) (snmp.Session, error) {
		calls = append(calls, cfg)
		return fake, nil
	}
	t.Cleanup(func() { openSession = orig })
	return &calls
}

func runCheck(args ...string) (int, string) {
	stdout := &bytes.Buffer{}
	code := run(args, stdout, io.Discard)
	return code, stdout.String()
}

func TestParseArgs(t *testing.T) {
	opts, err := parseArgs([]string{"-H", "localhost", "-C", "foobar", "-w", "5", "-c", "10", "-S", "216"}, io.Discard)
	require.NoError(t, err)
	assert.Equal(t, "localhost", opts.host)
	assert.Equal(t, "foobar", opts.community)
	assert.Equal(t, 161, opts.port)
	assert.Equal(t, 10.0, opts.thresholds.Critical.End)
	assert.Equal(t, 5.0, opts.thresholds.Warning.End)
	assert.Equal(t, probe.SensorRequest{ID: 216}, opts.request)
}

func TestParseArgsLongFlags(t *testing.T) {
	opts, err := parseArgs([]string{
		"--host=10.0.0.5", "--port=1161", "--warning=10:30", "--critical=5:35",
		"--output", "2", "--timeout", "2s", "-vv",
	}, io.Discard)
	require.NoError(t, err)
	assert.Equal(t, probe.OutputRequest{ID: 2}, opts.request)
	assert.Equal(t, 1161, opts.port)
	assert.Equal(t, 2*time.Second, opts.timeout)
	assert.Equal(t, 2, opts.verbose)
	assert.True(t, opts.set["timeout"])
	assert.False(t, opts.set["community"])
}

func TestParseArgsSensorZeroIsAnID(t *testing.T) {
	opts, err := parseArgs([]string{"-H", "h", "-w", "1", "-c", "2", "-I", "0"}, io.Discard)
	require.NoError(t, err)
	assert.Equal(t, probe.ContactRequest{ID: 0}, opts.request)
}

func TestParseArgsRejects(t *testing.T) {
	cases := map[string][]string{
		"sensor and contact": {"-H", "h", "-w", "1", "-c", "2", "-S", "1", "-I", "2"},
		"no measurement":     {"-H", "h", "-w", "1", "-c", "2"},
		"missing host":       {"-w", "1", "-c", "2", "-S", "1"},
		"missing critical":   {"-H", "h", "-w", "1", "-S", "1"},
		"bad warning":        {"-H", "h", "-w", "warm", "-c", "2", "-S", "1"},
		"port zero":          {"-H", "h", "-P", "0", "-w", "1", "-c", "2", "-S", "1"},
		"port too high":      {"-H", "h", "-P", "70000", "-w", "1", "-c", "2", "-S", "1"},
		"non integer sensor": {"-H", "h", "-w", "1", "-c", "2", "-S", "one"},
		"stray argument":     {"-H", "h", "-w", "1", "-c", "2", "-S", "1", "extra"},
	}
	for name, args := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := parseArgs(args, io.Discard)
			require.Error(t, err)
		})
	}
}

func TestArgumentErrorBeforeNetwork(t *testing.T) {
	calls := withSession(t, snmptest.New(nil))

	code, out := runCheck("-H", "localhost", "-w", "5", "-c", "10", "-S", "1", "-I", "2")
	assert.Equal(t, 3, code)
	assert.Contains(t, out, "CHECK_HWGROUP UNKNOWN - ")
	assert.Contains(t, out, "mutually exclusive")
	assert.Empty(t, *calls)
}

func TestVersion(t *testing.T) {
	code, out := runCheck("-V")
	assert.Equal(t, 0, code)
	assert.Equal(t, "check_hwgroup "+version+"\n", out)
}

func TestRunPoseidonSensor(t *testing.T) {
	fake := snmptest.New(map[string]string{
		device.SysDescrOID:   "Poseidon 1337",
		ent + ".3.3.3.1.8.1": "666",
		ent + ".3.3.3.1.2.1": "poseidon",
		ent + ".3.3.3.1.4.1": "111",
		ent + ".3.3.3.1.6.1": "333",
	})
	calls := withSession(t, fake)

	code, out := runCheck("-H", "192.0.2.10", "-C", "secret", "-w", "30", "-c", "40", "-S", "666")
	assert.Equal(t, 1, code)
	assert.Equal(t, "POSEIDON 1337 WARNING - poseidon is 33.3 (outside range 0:30) | poseidon=33.3;30;40\n", out)
	assert.True(t, fake.Closed)

	require.Len(t, *calls, 1)
	cfg := (*calls)[0]
	assert.Equal(t, "192.0.2.10", cfg.Target)
	assert.Equal(t, uint16(161), cfg.Port)
	assert.Equal(t, "secret", cfg.Community)
	assert.Equal(t, gosnmp.Version2c, cfg.Version)
}

func TestRunOK(t *testing.T) {
	withSession(t, snmptest.New(map[string]string{
		device.SysDescrOID:   "HWg-STE: Ethernet thermometer",
		ent + ".4.1.3.1.8.1": "1",
		ent + ".4.1.3.1.8.2": "2",
		ent + ".4.1.3.1.2.2": "Rack",
		ent + ".4.1.3.1.3.2": "1",
		ent + ".4.1.3.1.5.2": "215",
	}))

	code, out := runCheck("-H", "ste", "-w", "25", "-c", "30", "-S", "2")
	assert.Equal(t, 0, code)
	assert.Equal(t, "HWG-STE: ETHERNET THERMOMETER OK - Rack is 21.5 | Rack=21.5;25;30\n", out)
}

func TestRunContactCritical(t *testing.T) {
	withSession(t, snmptest.New(map[string]string{
		device.SysDescrOID:   "Damocles 2404",
		ent + ".3.4.1.1.2.4": "1",
		ent + ".3.4.1.1.3.4": "Door",
		ent + ".3.4.1.1.4.4": "2",
		ent + ".3.4.1.1.5.4": "1",
	}))

	code, out := runCheck("-H", "dam", "-w", "0", "-c", "0", "-I", "4")
	assert.Equal(t, 2, code)
	assert.Contains(t, out, "DAMOCLES 2404 CRITICAL - Door [AlarmState: alarm, AlarmSetup: activeOn] is 1 (outside range 0:0)")
}

func TestRunDamoclesSensorNotFound(t *testing.T) {
	withSession(t, snmptest.New(map[string]string{
		device.SysDescrOID:   "Damocles",
		ent + ".3.4.3.1.8.1": "",
		ent + ".3.4.3.1.8.2": "",
	}))

	code, out := runCheck("-H", "dam", "-w", "1", "-c", "2", "-S", "5")
	assert.Equal(t, 3, code)
	assert.Equal(t, "DAMOCLES UNKNOWN - sensor ID (5) not found\n", out)
}

func TestRunUnsupportedDevice(t *testing.T) {
	withSession(t, snmptest.New(map[string]string{device.SysDescrOID: "Foobar Bar 1337"}))

	code, out := runCheck("-H", "foo", "-w", "1", "-c", "2", "-S", "1")
	assert.Equal(t, 3, code)
	assert.Equal(t, "FOOBAR BAR 1337 UNKNOWN - device 'Foobar Bar 1337' not supported\n", out)
}

func TestRunTransportError(t *testing.T) {
	withSession(t, snmptest.New(nil).Fail(device.SysDescrOID, errors.New("request timeout (after 1 retries)")))

	code, out := runCheck("-H", "gone", "-w", "1", "-c", "2", "-S", "1")
	assert.Equal(t, 3, code)
	assert.Equal(t, "CHECK_HWGROUP UNKNOWN - snmp get .1.3.6.1.2.1.1.1.0: request timeout (after 1 retries)\n", out)
}

func TestRunDialError(t *testing.T) {
	orig := openSession
	openSession = func(snmp.Config, *logging.Logger) (snmp.Session, error) {
		return nil, &snmp.TransportError{Err: errors.New("no route to host")}
	}
	t.Cleanup(func() { openSession = orig })

	code, out := runCheck("-H", "gone", "-w", "1", "-c", "2", "-S", "1")
	assert.Equal(t, 3, code)
	assert.Equal(t, "CHECK_HWGROUP UNKNOWN - snmp: no route to host\n", out)
}

func TestRunConfigFileAndOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "check.yaml")
	body := "snmp:\n  community: fromfile\n  port: 1161\n  version: 1\n  timeout: 2s\n  retries: 4\n"
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))

	calls := withSession(t, snmptest.New(map[string]string{device.SysDescrOID: "unknown"}))

	runCheck("--config", path, "-H", "h", "-r", "0", "-w", "1", "-c", "2", "-S", "1")
	require.Len(t, *calls, 1)
	cfg := (*calls)[0]
	assert.Equal(t, "fromfile", cfg.Community)
	assert.Equal(t, uint16(1161), cfg.Port)
	assert.Equal(t, gosnmp.Version1, cfg.Version)
	assert.Equal(t, 2*time.Second, cfg.Timeout)
	assert.Equal(t, 0, cfg.Retries)
}

func TestApplyOnlyOverridesSetFlags(t *testing.T) {
	opts, err := parseArgs([]string{"-H", "h", "-w", "1", "-c", "2", "-S", "1", "-C", "private"}, io.Discard)
	require.NoError(t, err)

	cfg := config.Default()
	cfg.SNMP.Port = 1161
	opts.apply(cfg)
	assert.Equal(t, "private", cfg.SNMP.Community)
	assert.Equal(t, 1161, cfg.SNMP.Port)
}
