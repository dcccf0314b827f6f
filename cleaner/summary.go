package cleaner

import (
	"strings"

	"github.com/sirupsen/logrus"
)

var banner = strings.Repeat("=", 50)

// Summary is the outcome of a completed run
type Summary struct {
	// Ports is the requested range in processing order
	Ports []int

	// Deleted maps each recorded port to its deleted count
	Deleted map[int]int

	// Recorded lists the ports in Deleted in processing order
	Recorded []int

	// Skipped lists ports whose output had no success marker
	Skipped []int

	// Registered is the pre-flight SNMP count per port, nil without inventory
	Registered map[int]int

	// Total is the sum of Deleted
	Total int
}

func newSummary(ports []int) *Summary {
	return &Summary{
		Ports:   ports,
		Deleted: make(map[int]int),
	}
}

func (s *Summary) add(port, count int) {
	s.Deleted[port] = count
	s.Recorded = append(s.Recorded, port)
	s.Total += count
}

// Log writes the operation summary block
func (s *Summary) Log(log logrus.FieldLogger) {
	log.Info(banner)
	log.Info("OPERATION SUMMARY")
	log.Info(banner)
	log.Infof("Total ONTs deleted: %d", s.Total)
	log.Info("Breakdown by port:")
	for _, port := range s.Recorded {
		if before, ok := s.Registered[port]; ok {
			log.Infof("  Port %d: %d ONTs (%d registered before)", port, s.Deleted[port], before)
			continue
		}
		log.Infof("  Port %d: %d ONTs", port, s.Deleted[port])
	}
	for _, port := range s.Skipped {
		log.Warnf("  Port %d: no success marker in device output, not recorded", port)
	}
	log.Info(banner)
}
