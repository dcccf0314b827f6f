package ontcleaner

import (
	"fmt"

	"github.com/nanoncore/ont-cleaner/drivers/cli"
	"github.com/nanoncore/ont-cleaner/drivers/mock"
	"github.com/nanoncore/ont-cleaner/drivers/snmp"
)

// NewDriver creates the session driver for vendor. An empty vendor selects
// the generic SSH CLI driver.
func NewDriver(vendor Vendor, config *EquipmentConfig) (Driver, error) {
	if vendor == "" {
		vendor = VendorGeneric
	}

	switch vendor {
	case VendorGeneric:
		d, err := cli.NewDriver(config)
		if err != nil {
			return nil, fmt.Errorf("failed to create cli driver: %w", err)
		}
		return d, nil
	case VendorMock:
		d, err := mock.NewDriver(config)
		if err != nil {
			return nil, fmt.Errorf("failed to create mock driver: %w", err)
		}
		return d, nil
	default:
		return nil, fmt.Errorf("unsupported vendor %q, supported: %v", vendor, GetSupportedVendors())
	}
}

// NewInventory creates the SNMP inventory, or returns nil when no SNMP
// community is configured.
func NewInventory(config *EquipmentConfig) (Inventory, error) {
	if config == nil || !config.SNMP.Enabled() {
		return nil, nil
	}
	d, err := snmp.NewDriver(config)
	if err != nil {
		return nil, fmt.Errorf("failed to create snmp driver: %w", err)
	}
	return d, nil
}

// GetSupportedVendors returns the vendors NewDriver accepts
func GetSupportedVendors() []Vendor {
	return []Vendor{VendorGeneric, VendorMock}
}
