package types

import (
	"context"
	"regexp"
	"time"
)

// Vendor selects which driver talks to the OLT
type Vendor string

const (
	VendorGeneric Vendor = "generic" // Any OLT reachable over SSH with the OLT> / OLT# shell
	VendorMock    Vendor = "mock"    // In-memory shell for simulation and tests
)

// EquipmentConfig contains the connection settings for one OLT
type EquipmentConfig struct {
	// Name is a label used in logs
	Name string

	// Vendor selects the driver
	Vendor Vendor

	// Address is the management IP/hostname
	Address string

	// Port is the SSH port (default 22)
	Port int

	// Username for authentication
	Username string

	// Password for authentication
	Password string

	// Timeout bounds each wait for an expected prompt
	Timeout time.Duration

	// ConnectTimeout bounds the SSH dial and authentication
	ConnectTimeout time.Duration

	// Verbose logs the raw session traffic
	Verbose bool

	// SNMP settings for the optional ONT inventory
	SNMP SNMPConfig
}

// SNMPConfig holds the settings of the read-only SNMP inventory
type SNMPConfig struct {
	// Community enables the inventory when non-empty
	Community string

	// Port is the agent port (default 161)
	Port int

	// ONTCountOID is the table column holding the registered ONT count per PON port
	ONTCountOID string

	// Timeout bounds each SNMP request (default 5s). It is kept short and
	// separate from the SSH timeouts since the inventory is informational.
	Timeout time.Duration
}

// Enabled reports whether an SNMP community was configured
func (c SNMPConfig) Enabled() bool {
	return c.Community != ""
}

// Driver is the interface implemented by OLT session drivers.
// An exchange sends one line and blocks until the expected pattern shows up.
type Driver interface {
	// Connect opens the interactive session
	Connect(ctx context.Context, config *EquipmentConfig) error

	// Disconnect closes the session
	Disconnect(ctx context.Context) error

	// IsConnected returns true if connected
	IsConnected() bool

	// Exchange sends command followed by a newline and waits for expect.
	// The returned output has the command echo and the matched prompt removed.
	Exchange(ctx context.Context, command string, expect *regexp.Regexp) (string, error)
}

// Inventory reads the number of registered ONTs per PON port
type Inventory interface {
	Connect(ctx context.Context) error
	Disconnect(ctx context.Context) error
	RegisteredONTs(ctx context.Context, ports []int) (map[int]int, error)
}
