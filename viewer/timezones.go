package viewer

import (
	"time"
	_ "time/tzdata" // the viewer runs in minimal containers without zoneinfo
)

// TimestampLayout renders a record's instant in the selected zone
const TimestampLayout = "2006-01-02 15:04:05 MST"

// Zone is one entry of the timezone selector
type Zone struct {
	Name  string // IANA name, also the query value
	Label string
}

// DefaultZone is used when no zone or an unknown zone is requested
var DefaultZone = Zone{Name: "UTC", Label: "UTC"}

// Zones lists the selectable timezones in display order
var Zones = []Zone{
	DefaultZone,
	{Name: "America/Argentina/Buenos_Aires", Label: "Argentina"},
	{Name: "America/Santiago", Label: "Chile"},
	{Name: "America/Bogota", Label: "Colombia"},
	{Name: "America/Mexico_City", Label: "México"},
	{Name: "America/Lima", Label: "Perú"},
	{Name: "America/Caracas", Label: "Venezuela"},
	{Name: "Europe/Madrid", Label: "España"},
}

// ResolveZone returns the curated zone called name, or DefaultZone
func ResolveZone(name string) Zone {
	for _, z := range Zones {
		if z.Name == name {
			return z
		}
	}
	return DefaultZone
}

// Location loads the zone, falling back to UTC
func (z Zone) Location() *time.Location {
	loc, err := time.LoadLocation(z.Name)
	if err != nil {
		return time.UTC
	}
	return loc
}

// FormatTimestamp converts t to loc and renders it with TimestampLayout.
// Stored instants are UTC; a zone-less value is treated as UTC.
func FormatTimestamp(t time.Time, loc *time.Location) string {
	if loc == nil {
		loc = time.UTC
	}
	return t.In(loc).Format(TimestampLayout)
}
