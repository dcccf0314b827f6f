package mock

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"sync"

	"github.com/nanoncore/ont-cleaner/types"
)

// Hostname is the name the simulated shell puts in its prompts
const Hostname = "OLT"

type shellMode int

const (
	modeUser shellMode = iota
	modePrivileged
	modeConfig
	modeInterface
)

// Driver implements a simulated OLT shell for rehearsals and tests.
// It understands the enable / config / interface gpon / ont delete dialogue
// and answers with the same prompts a real OLT prints.
type Driver struct {
	config    *types.EquipmentConfig
	connected bool
	mu        sync.Mutex
	mode      shellMode
	iface     string
	onts      map[int]int
	overrides map[int]string
	failures  map[string]string
	pending   int
	history   []string
}

// NewDriver creates a simulated OLT with the given registered ONT count on
// each of ports 1..8.
func NewDriver(config *types.EquipmentConfig) (*Driver, error) {
	if config == nil {
		return nil, fmt.Errorf("config is required")
	}

	d := &Driver{
		config:    config,
		onts:      make(map[int]int),
		overrides: make(map[int]string),
		failures:  make(map[string]string),
		pending:   -1,
		history:   make([]string, 0),
	}

	d.generateONTs()

	return d, nil
}

// generateONTs seeds a few registrations per port so rehearsals have
// something to delete
func (d *Driver) generateONTs() {
	for port := 1; port <= 8; port++ {
		d.onts[port] = (port*7)%13 + 1
	}
}

// SetONTs sets the number of ONTs registered on port
func (d *Driver) SetONTs(port, count int) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.onts[port] = count
}

// ONTs returns the number of ONTs still registered on port
func (d *Driver) ONTs(port int) int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.onts[port]
}

// SetDeleteOutput replaces the text printed after confirming a deletion on port
func (d *Driver) SetDeleteOutput(port int, output string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.overrides[port] = output
}

// FailCommand makes the shell answer command with output and no prompt
func (d *Driver) FailCommand(command, output string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.failures[command] = output
}

// Connect simulates connecting to equipment
func (d *Driver) Connect(ctx context.Context, config *types.EquipmentConfig) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if config != nil {
		d.config = config
	}

	if err := ctx.Err(); err != nil {
		return err
	}

	d.connected = true
	d.mode = modeUser
	d.pending = -1
	d.recordCommand("connect")

	return nil
}

// Disconnect closes the simulated connection
func (d *Driver) Disconnect(ctx context.Context) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.connected = false
	d.recordCommand("disconnect")

	return nil
}

// IsConnected returns connection status
func (d *Driver) IsConnected() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.connected
}

// Exchange feeds command to the simulated shell and checks the reply against expect
func (d *Driver) Exchange(ctx context.Context, command string, expect *regexp.Regexp) (string, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if !d.connected {
		return "", types.NewError(types.ErrConnection, "exchange", fmt.Errorf("not connected to device"))
	}
	if expect == nil {
		return "", fmt.Errorf("no expected pattern for command %q", command)
	}

	if err := ctx.Err(); err != nil {
		return "", err
	}

	d.recordCommand(command)
	body, prompt := d.respond(strings.TrimSpace(command))

	reply := body
	if prompt != "" {
		if reply != "" {
			reply += "\n"
		}
		reply += prompt
	}

	if !expect.MatchString(reply) {
		op := fmt.Sprintf("waiting for %q after %q", expect.String(), command)
		err := fmt.Errorf("timer expired, got %q", reply)
		if human := types.DescribeDeviceOutput(reply); human != "" {
			err = fmt.Errorf("%s: %w", human, err)
		}
		return reply, types.NewError(types.ErrProtocolMismatch, op, err)
	}

	return body, nil
}

// respond returns the output and the prompt printed after command
func (d *Driver) respond(command string) (string, string) {
	if out, ok := d.failures[command]; ok {
		return out, ""
	}

	if d.pending >= 0 {
		port := d.pending
		d.pending = -1
		switch command {
		case "y", "Y":
			return d.deleteAll(port), d.prompt()
		default:
			return "Operation cancelled.", d.prompt()
		}
	}

	fields := strings.Fields(command)
	switch {
	case command == "":
		return "", d.prompt()
	case command == "enable" && d.mode == modeUser:
		d.mode = modePrivileged
		return "", d.prompt()
	case command == "config" && d.mode == modePrivileged:
		d.mode = modeConfig
		return "", d.prompt()
	case len(fields) == 3 && fields[0] == "interface" && fields[1] == "gpon" && d.mode == modeConfig:
		d.mode = modeInterface
		d.iface = fields[2]
		return "", d.prompt()
	case command == "exit":
		if d.mode > modeUser {
			d.mode--
		}
		return "", d.prompt()
	case len(fields) == 4 && fields[0] == "ont" && fields[1] == "delete" && fields[3] == "all" && d.mode == modeInterface:
		port, err := strconv.Atoi(fields[2])
		if err != nil || port < 1 {
			return "% Invalid input detected at '^' marker.", d.prompt()
		}
		d.pending = port
		return "", fmt.Sprintf("Are you sure to delete all ONTs on port %d? (y/n):", port)
	default:
		return "% Unknown command.", d.prompt()
	}
}

func (d *Driver) deleteAll(port int) string {
	if out, ok := d.overrides[port]; ok {
		d.onts[port] = 0
		return out
	}
	count := d.onts[port]
	d.onts[port] = 0
	return fmt.Sprintf("ONT delete success: %d", count)
}

func (d *Driver) prompt() string {
	switch d.mode {
	case modePrivileged:
		return Hostname + "#"
	case modeConfig:
		return Hostname + "(config)#"
	case modeInterface:
		return fmt.Sprintf("%s(config-interface-gpon-%s)#", Hostname, d.iface)
	default:
		return Hostname + ">"
	}
}

// recordCommand adds a command to the history (must be called with lock held)
func (d *Driver) recordCommand(cmd string) {
	d.history = append(d.history, cmd)
}

// History returns every command the shell received, including connect/disconnect
func (d *Driver) History() []string {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make([]string, len(d.history))
	copy(out, d.history)
	return out
}

// Ensure Driver implements types.Driver
var _ types.Driver = (*Driver)(nil)
