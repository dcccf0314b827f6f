package snmp

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/gosnmp/gosnmp"

	"github.com/nanoncore/ont-cleaner/types"
	"github.com/nanoncore/ont-cleaner/vendors/common"
)

// DefaultONTCountOID is the PON port table column with the registered ONT
// count, indexed by PON port number.
const DefaultONTCountOID = "1.3.6.1.4.1.37950.1.1.6.1.2.1.5"

const (
	// DefaultTimeout bounds each SNMP request
	DefaultTimeout = 5 * time.Second

	// retries after the first attempt
	retries = 1
)

// walker is the part of *gosnmp.GoSNMP used for the inventory
type walker interface {
	BulkWalk(rootOid string, walkFn gosnmp.WalkFunc) error
}

// Driver reads registered ONT counts over SNMP v2c.
// It never writes; deletions always go through the CLI driver.
type Driver struct {
	config *types.EquipmentConfig
	snmp   walker
	conn   *gosnmp.GoSNMP
}

// NewDriver creates a new SNMP inventory driver
func NewDriver(config *types.EquipmentConfig) (*Driver, error) {
	if config == nil {
		return nil, fmt.Errorf("config is required")
	}

	if config.Address == "" {
		return nil, fmt.Errorf("address is required")
	}

	if !config.SNMP.Enabled() {
		return nil, fmt.Errorf("SNMP community is required")
	}

	// Default SNMP port
	if config.SNMP.Port == 0 {
		config.SNMP.Port = 161
	}

	if config.SNMP.ONTCountOID == "" {
		config.SNMP.ONTCountOID = DefaultONTCountOID
	}

	if config.SNMP.Timeout <= 0 {
		config.SNMP.Timeout = DefaultTimeout
	}

	return &Driver{
		config: config,
	}, nil
}

// Connect opens the UDP socket. A silent agent costs at most
// SNMP.Timeout * (retries+1) per request.
func (d *Driver) Connect(ctx context.Context) error {
	client := d.newClient(ctx)

	if err := client.Connect(); err != nil {
		return types.NewError(types.ErrConnection, "snmp connect "+d.config.Address, err)
	}

	d.snmp = client
	d.conn = client

	return nil
}

func (d *Driver) newClient(ctx context.Context) *gosnmp.GoSNMP {
	port := d.config.SNMP.Port
	if port < 0 || port > 65535 {
		port = 161
	}

	return &gosnmp.GoSNMP{
		Target:    d.config.Address,
		Port:      uint16(port), //nolint:gosec // validated above
		Community: d.config.SNMP.Community,
		Version:   gosnmp.Version2c,
		Timeout:   d.config.SNMP.Timeout,
		Retries:   retries,
		Context:   ctx,
	}
}

// Disconnect closes the SNMP connection
func (d *Driver) Disconnect(ctx context.Context) error {
	if d.conn != nil && d.conn.Conn != nil {
		err := d.conn.Conn.Close()
		d.conn = nil
		d.snmp = nil
		return err
	}
	d.snmp = nil
	return nil
}

// RegisteredONTs walks the ONT count column and returns the count for each
// requested port. Ports the agent does not report are left out.
func (d *Driver) RegisteredONTs(ctx context.Context, ports []int) (map[int]int, error) {
	if d.snmp == nil {
		return nil, fmt.Errorf("not connected")
	}

	wanted := make(map[int]bool, len(ports))
	for _, p := range ports {
		wanted[p] = true
	}

	root := d.config.SNMP.ONTCountOID
	counts := make(map[int]int)

	err := d.snmp.BulkWalk(root, func(pdu gosnmp.SnmpPDU) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		index := strings.TrimPrefix(strings.TrimPrefix(pdu.Name, "."), strings.TrimPrefix(root, "."))
		port, ok := common.LastOIDComponent(index)
		if !ok || !wanted[port] {
			return nil
		}
		n, ok := common.ParseIntSNMPValue(pdu.Value)
		if !ok || n == common.SNMPInvalidValue || n < 0 {
			return nil
		}
		counts[port] = int(n)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("SNMP WALK failed: %w", err)
	}

	return counts, nil
}

// Ensure Driver implements types.Inventory
var _ types.Inventory = (*Driver)(nil)
