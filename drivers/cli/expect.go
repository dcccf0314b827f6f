package cli

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	expect "github.com/google/goexpect"
	"golang.org/x/crypto/ssh"

	"github.com/nanoncore/ont-cleaner/types"
	"github.com/nanoncore/ont-cleaner/vendors/common"
)

// expecter is the subset of *expect.GExpect the session needs
type expecter interface {
	Send(in string) error
	Expect(re *regexp.Regexp, timeout time.Duration) (string, []string, error)
	Close() error
}

// ExpectSession wraps google/goexpect for an interactive OLT shell.
// Every exchange names the prompt it waits for; there is no default prompt.
type ExpectSession struct {
	expecter expecter
	timeout  time.Duration
}

// ExpectSessionConfig holds configuration for creating an expect session
type ExpectSessionConfig struct {
	SSHClient *ssh.Client
	Timeout   time.Duration

	// Verbose makes goexpect log every send and match
	Verbose bool
}

// NewExpectSession spawns an interactive shell over an established SSH client
func NewExpectSession(cfg ExpectSessionConfig) (*ExpectSession, error) {
	if cfg.SSHClient == nil {
		return nil, fmt.Errorf("SSH client is required")
	}

	if cfg.Timeout == 0 {
		cfg.Timeout = 30 * time.Second
	}

	exp, _, err := expect.SpawnSSH(cfg.SSHClient, cfg.Timeout,
		expect.Verbose(cfg.Verbose),
		expect.CheckDuration(500*time.Millisecond),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to spawn SSH expect session: %w", err)
	}

	return newExpectSession(exp, cfg.Timeout), nil
}

func newExpectSession(exp expecter, timeout time.Duration) *ExpectSession {
	return &ExpectSession{expecter: exp, timeout: timeout}
}

// Exchange sends a command and waits until re matches, returning the output
// between the command echo and the matched prompt.
func (s *ExpectSession) Exchange(command string, re *regexp.Regexp) (string, error) {
	if s.expecter == nil {
		return "", fmt.Errorf("expect session not initialized")
	}
	if re == nil {
		return "", fmt.Errorf("no expected pattern for command %q", command)
	}

	if err := s.expecter.Send(command + "\n"); err != nil {
		return "", types.NewError(types.ErrConnection, fmt.Sprintf("send %q", command), err)
	}

	output, _, err := s.expecter.Expect(re, s.timeout)
	if err != nil {
		return output, mismatchError(command, re, output, err)
	}

	return cleanOutput(output, command, re), nil
}

func mismatchError(command string, re *regexp.Regexp, output string, err error) error {
	op := fmt.Sprintf("waiting for %q after %q", re.String(), command)
	if human := types.DescribeDeviceOutput(output); human != "" {
		err = fmt.Errorf("%s: %w", human, err)
	}
	return types.NewError(types.ErrProtocolMismatch, op, err)
}

// cleanOutput removes the command echo and the matched prompt from output
func cleanOutput(output, command string, re *regexp.Regexp) string {
	lines := strings.Split(common.NormalizeOutput(output), "\n")
	var cleaned []string

	echo := strings.TrimSpace(command)
	for i, line := range lines {
		trimmed := strings.TrimSpace(line)
		// The first line is the echo of what we typed
		if i == 0 && isEcho(trimmed, echo) {
			continue
		}
		if loc := re.FindStringIndex(line); loc != nil {
			line = line[:loc[0]] + line[loc[1]:]
			if strings.TrimSpace(line) == "" {
				continue
			}
		}
		cleaned = append(cleaned, line)
	}

	return strings.TrimSpace(strings.Join(cleaned, "\n"))
}

// isEcho reports whether line is the typed command, possibly still preceded by
// the prompt it was typed at.
func isEcho(line, command string) bool {
	if line == command {
		return true
	}
	if command == "" || !strings.HasSuffix(line, command) {
		return false
	}
	before := strings.TrimRight(strings.TrimSuffix(line, command), " ")
	return strings.HasSuffix(before, "#") || strings.HasSuffix(before, ">") || strings.HasSuffix(before, ":")
}

// Close closes the expect session
func (s *ExpectSession) Close() error {
	if s.expecter != nil {
		return s.expecter.Close()
	}
	return nil
}
