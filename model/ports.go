package model

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/nanoncore/ont-cleaner/types"
)

// DefaultPorts is processed when no --ports value is given
var DefaultPorts = []int{1, 2, 3, 4}

// MaxPort is the highest GPON port number accepted in a range
const MaxPort = 255

// ParsePortRange resolves a --ports value into the ordered list of ports.
//
//	""    -> DefaultPorts
//	"N"   -> [N]
//	"A-B" -> A, A+1, ..., B (empty when A > B)
//
// Any token that is not an integer in 0..MaxPort yields an INVALID_FORMAT error.
func ParsePortRange(spec string) ([]int, error) {
	if spec == "" {
		ports := make([]int, len(DefaultPorts))
		copy(ports, DefaultPorts)
		return ports, nil
	}

	if !strings.Contains(spec, "-") {
		n, err := parsePortToken(spec)
		if err != nil {
			return nil, invalidPortRange(spec, err)
		}
		return []int{n}, nil
	}

	parts := strings.Split(spec, "-")
	if len(parts) != 2 {
		return nil, invalidPortRange(spec, fmt.Errorf("expected START-END"))
	}
	start, err := parsePortToken(parts[0])
	if err != nil {
		return nil, invalidPortRange(spec, err)
	}
	end, err := parsePortToken(parts[1])
	if err != nil {
		return nil, invalidPortRange(spec, err)
	}

	if start > end {
		return []int{}, nil
	}
	ports := make([]int, 0, end-start+1)
	for p := start; p <= end; p++ {
		ports = append(ports, p)
	}
	return ports, nil
}

func parsePortToken(token string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(token))
	if err != nil {
		return 0, fmt.Errorf("%q is not an integer", token)
	}
	if n < 0 || n > MaxPort {
		return 0, fmt.Errorf("port %d outside 0-%d", n, MaxPort)
	}
	return n, nil
}

func invalidPortRange(spec string, err error) error {
	return types.NewError(types.ErrInvalidFormat, fmt.Sprintf("parse port range %q", spec), err)
}
