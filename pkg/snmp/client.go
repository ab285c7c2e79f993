// Package snmp adapts gosnmp to the single-value GET the check needs.
package snmp

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/gosnmp/gosnmp"

	"github.com/nmasdoufi/check-hwgroup/pkg/logging"
)

// Getter performs one synchronous GET and returns the value as text.
type Getter interface {
	Get(oid string) (string, error)
}

// Session is a Getter bound to an open connection.
type Session interface {
	Getter
	Close() error
}

// Config describes a single target.
type Config struct {
	Target    string
	Port      uint16
	Community string
	Version   gosnmp.SnmpVersion
	Timeout   time.Duration
	Retries   int
}

// TransportError reports a failed request or an agent-side error.
type TransportError struct {
	OID string
	Err error
}

func (e *TransportError) Error() string {
	if e.OID == "" {
		return fmt.Sprintf("snmp: %v", e.Err)
	}
	return fmt.Sprintf("snmp get %s: %v", e.OID, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// ParseVersion maps "1" and "2c" (optionally "v"-prefixed) to gosnmp versions.
func ParseVersion(v string) (gosnmp.SnmpVersion, error) {
	switch strings.TrimPrefix(strings.ToLower(strings.TrimSpace(v)), "v") {
	case "1":
		return gosnmp.Version1, nil
	case "2c", "2":
		return gosnmp.Version2c, nil
	default:
		return 0, fmt.Errorf("unsupported snmp version %q", v)
	}
}

// Client wraps gosnmp.GoSNMP.
type Client struct {
	conn   *gosnmp.GoSNMP
	logger *logging.Logger
}

// Dial opens the UDP socket for cfg. No packet is sent until Get.
func Dial(cfg Config, logger *logging.Logger) (*Client, error) {
	if cfg.Target == "" {
		return nil, &TransportError{Err: errors.New("target host required")}
	}
	conn := &gosnmp.GoSNMP{
		Target:    cfg.Target,
		Port:      cfg.Port,
		Community: cfg.Community,
		Version:   cfg.Version,
		Timeout:   cfg.Timeout,
		Retries:   cfg.Retries,
	}
	if err := conn.Connect(); err != nil {
		return nil, &TransportError{Err: fmt.Errorf("connect %s:%d: %w", cfg.Target, cfg.Port, err)}
	}
	logger.Debugf("snmp v%v session to %s:%d (timeout %s, retries %d)", cfg.Version, cfg.Target, cfg.Port, cfg.Timeout, cfg.Retries)
	return &Client{conn: conn, logger: logger}, nil
}

// Get fetches a single OID.
func (c *Client) Get(oid string) (string, error) {
	result, err := c.conn.Get([]string{oid})
	if err != nil {
		return "", &TransportError{OID: oid, Err: err}
	}
	if result.Error != gosnmp.NoError {
		return "", &TransportError{OID: oid, Err: fmt.Errorf("agent error-status %v at index %d", result.Error, result.ErrorIndex)}
	}
	if len(result.Variables) == 0 {
		return "", &TransportError{OID: oid, Err: errors.New("empty response")}
	}
	value, err := convertVariable(result.Variables[0])
	if err != nil {
		return "", &TransportError{OID: oid, Err: err}
	}
	c.logger.Tracef("GET %s = %q", oid, value)
	return value, nil
}

// Close releases the socket.
func (c *Client) Close() error {
	if c.conn == nil || c.conn.Conn == nil {
		return nil
	}
	return c.conn.Conn.Close()
}

// convertVariable renders a varbind the way the device's own web UI shows it:
// octet strings as text, numeric types in decimal.
func convertVariable(pdu gosnmp.SnmpPDU) (string, error) {
	switch pdu.Type {
	case gosnmp.NoSuchObject, gosnmp.NoSuchInstance, gosnmp.EndOfMibView:
		return "", fmt.Errorf("%s: %v", pdu.Name, pdu.Type)
	case gosnmp.Null:
		return "", nil
	case gosnmp.OctetString, gosnmp.ObjectDescription:
		switch v := pdu.Value.(type) {
		case []byte:
			return string(v), nil
		case string:
			return v, nil
		default:
			return "", fmt.Errorf("%s: unexpected %T for %v", pdu.Name, pdu.Value, pdu.Type)
		}
	case gosnmp.Integer, gosnmp.Counter32, gosnmp.Gauge32, gosnmp.TimeTicks,
		gosnmp.Counter64, gosnmp.Uinteger32:
		return gosnmp.ToBigInt(pdu.Value).String(), nil
	default:
		return fmt.Sprint(pdu.Value), nil
	}
}
