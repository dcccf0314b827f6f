package ontcleaner

// Re-export the driver types so callers only need the root package

import (
	"github.com/nanoncore/ont-cleaner/types"
)

// Type aliases
type (
	Vendor          = types.Vendor
	EquipmentConfig = types.EquipmentConfig
	SNMPConfig      = types.SNMPConfig
	Driver          = types.Driver
	Inventory       = types.Inventory
)

// Re-export constants
const (
	VendorGeneric = types.VendorGeneric
	VendorMock    = types.VendorMock
)
