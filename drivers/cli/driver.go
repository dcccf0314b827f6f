package cli

import (
	"context"
	"fmt"
	"net"
	"regexp"
	"strconv"
	"time"

	"golang.org/x/crypto/ssh"

	"github.com/nanoncore/ont-cleaner/types"
)

// Driver implements the types.Driver interface using SSH CLI
type Driver struct {
	config        *types.EquipmentConfig
	sshClient     *ssh.Client
	expectSession *ExpectSession
}

// NewDriver creates a new CLI driver
func NewDriver(config *types.EquipmentConfig) (*Driver, error) {
	if config == nil {
		return nil, fmt.Errorf("config is required")
	}

	if config.Address == "" {
		return nil, fmt.Errorf("address is required")
	}

	// Default SSH port
	if config.Port == 0 {
		config.Port = 22
	}

	if config.Timeout == 0 {
		config.Timeout = 30 * time.Second
	}
	if config.ConnectTimeout == 0 {
		config.ConnectTimeout = 60 * time.Second
	}

	return &Driver{
		config: config,
	}, nil
}

// Connect establishes the SSH connection and spawns the interactive shell
func (d *Driver) Connect(ctx context.Context, config *types.EquipmentConfig) error {
	if config != nil {
		d.config = config
	}

	// Some OLTs only offer keyboard-interactive instead of password
	keyboardInteractive := ssh.KeyboardInteractive(func(user, instruction string, questions []string, echos []bool) ([]string, error) {
		answers := make([]string, len(questions))
		for i := range questions {
			answers[i] = d.config.Password
		}
		return answers, nil
	})

	sshConfig := &ssh.ClientConfig{
		User: d.config.Username,
		Auth: []ssh.AuthMethod{
			ssh.Password(d.config.Password),
			keyboardInteractive,
		},
		Timeout:         d.config.ConnectTimeout,
		HostKeyCallback: ssh.InsecureIgnoreHostKey(), //nolint:gosec // OLT host keys are not managed
	}

	target := net.JoinHostPort(d.config.Address, strconv.Itoa(d.config.Port))

	client, err := dialContext(ctx, target, sshConfig)
	if err != nil {
		return types.NewError(types.ErrConnection, "dial "+target, err)
	}

	d.sshClient = client

	expectSession, err := NewExpectSession(ExpectSessionConfig{
		SSHClient: client,
		Timeout:   d.config.Timeout,
		Verbose:   d.config.Verbose,
	})
	if err != nil {
		client.Close()
		d.sshClient = nil
		return types.NewError(types.ErrConnection, "open shell on "+target, err)
	}

	d.expectSession = expectSession

	return nil
}

// dialContext is ssh.Dial honouring ctx for the TCP connect
func dialContext(ctx context.Context, target string, cfg *ssh.ClientConfig) (*ssh.Client, error) {
	dialer := net.Dialer{Timeout: cfg.Timeout}
	conn, err := dialer.DialContext(ctx, "tcp", target)
	if err != nil {
		return nil, err
	}
	c, chans, reqs, err := ssh.NewClientConn(conn, target, cfg)
	if err != nil {
		conn.Close()
		return nil, err
	}
	return ssh.NewClient(c, chans, reqs), nil
}

// Disconnect closes the SSH connection
func (d *Driver) Disconnect(ctx context.Context) error {
	if d.expectSession != nil {
		_ = d.expectSession.Close()
		d.expectSession = nil
	}
	if d.sshClient != nil {
		err := d.sshClient.Close()
		d.sshClient = nil
		return err
	}
	return nil
}

// IsConnected returns true if connected
func (d *Driver) IsConnected() bool {
	return d.sshClient != nil && d.expectSession != nil
}

// Exchange implements types.Driver
func (d *Driver) Exchange(ctx context.Context, command string, expect *regexp.Regexp) (string, error) {
	if !d.IsConnected() {
		return "", types.NewError(types.ErrConnection, "exchange", fmt.Errorf("not connected to device"))
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	return d.expectSession.Exchange(command, expect)
}

// Ensure Driver implements types.Driver
var _ types.Driver = (*Driver)(nil)
