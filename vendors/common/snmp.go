package common

import (
	"strconv"
	"strings"
)

// SNMPInvalidValue is the magic value some OLTs return for an unreadable cell
const SNMPInvalidValue int64 = 2147483647

// ParseIntSNMPValue extracts an int64 from the numeric types gosnmp returns.
func ParseIntSNMPValue(value interface{}) (int64, bool) {
	if value == nil {
		return 0, false
	}

	switch v := value.(type) {
	case int:
		return int64(v), true
	case int32:
		return int64(v), true
	case int64:
		return v, true
	case uint:
		return int64(v), true
	case uint32:
		return int64(v), true
	case uint64:
		return int64(v), true
	default:
		return 0, false
	}
}

// LastOIDComponent returns the final numeric arc of an OID or walk index,
// e.g. "3" for ".1.3.6.1.4.1.37950.1.1.6.1.2.1.5.3".
func LastOIDComponent(oid string) (int, bool) {
	oid = strings.TrimSuffix(oid, ".")
	i := strings.LastIndex(oid, ".")
	n, err := strconv.Atoi(oid[i+1:])
	if err != nil {
		return 0, false
	}
	return n, true
}
