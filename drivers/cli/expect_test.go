package cli

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/nanoncore/ont-cleaner/types"
)

// fakeExpecter replays canned buffers, one per Expect call
type fakeExpecter struct {
	sent    []string
	replies []string
	err     error
	closed  bool
}

func (f *fakeExpecter) Send(in string) error {
	f.sent = append(f.sent, in)
	return nil
}

func (f *fakeExpecter) Expect(re *regexp.Regexp, timeout time.Duration) (string, []string, error) {
	if len(f.replies) == 0 {
		return "", nil, errors.New("expect: timer expired")
	}
	out := f.replies[0]
	f.replies = f.replies[1:]
	if f.err != nil {
		return out, nil, f.err
	}
	if !re.MatchString(out) {
		return out, nil, errors.New("expect: timer expired")
	}
	return out, re.FindStringSubmatch(out), nil
}

func (f *fakeExpecter) Close() error {
	f.closed = true
	return nil
}

var (
	ifacePrompt   = regexp.MustCompile(`OLT\(config-interface-gpon-0\/0\)#`)
	confirmPrompt = regexp.MustCompile(`\(y/n\):`)
)

func TestCleanOutput(t *testing.T) {
	tests := []struct {
		name    string
		output  string
		command string
		re      *regexp.Regexp
		want    string
	}{
		{
			name:    "confirmation with count",
			output:  "y\r\n  success: 12\r\nOLT(config-interface-gpon-0/0)#",
			command: "y",
			re:      ifacePrompt,
			want:    "success: 12",
		},
		{
			name:    "echo after prompt fragment",
			output:  " ont delete 2 all\r\nDelete all ONTs on port 2? (y/n):",
			command: "ont delete 2 all",
			re:      confirmPrompt,
			want:    "Delete all ONTs on port 2?",
		},
		{
			name:    "probe",
			output:  "\r\nOLT>",
			command: "",
			re:      regexp.MustCompile(`OLT>`),
			want:    "",
		},
		{
			name:    "ansi decorated",
			output:  "y\r\n\x1b[32msuccess: 3\x1b[0m\r\nOLT(config-interface-gpon-0/0)#",
			command: "y",
			re:      ifacePrompt,
			want:    "success: 3",
		},
		{
			name:    "echo behind prompt",
			output:  "OLT(config)# interface gpon 0/0\r\nOLT(config-interface-gpon-0/0)#",
			command: "interface gpon 0/0",
			re:      ifacePrompt,
			want:    "",
		},
		{
			name:    "body ending like the command is kept",
			output:  "Deleted successfully\r\nOLT(config-interface-gpon-0/0)#",
			command: "y",
			re:      ifacePrompt,
			want:    "Deleted successfully",
		},
		{
			name:    "no echo",
			output:  "No ONT found on port 5\r\nOLT(config-interface-gpon-0/0)#",
			command: "y",
			re:      ifacePrompt,
			want:    "No ONT found on port 5",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := cleanOutput(tt.output, tt.command, tt.re); got != tt.want {
				t.Errorf("cleanOutput() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestExchange(t *testing.T) {
	fake := &fakeExpecter{replies: []string{"y\r\nsuccess: 4\r\nOLT(config-interface-gpon-0/0)#"}}
	s := newExpectSession(fake, time.Second)

	out, err := s.Exchange("y", ifacePrompt)
	if err != nil {
		t.Fatalf("Exchange() error: %v", err)
	}
	if out != "success: 4" {
		t.Errorf("Exchange() = %q", out)
	}
	if len(fake.sent) != 1 || fake.sent[0] != "y\n" {
		t.Errorf("sent = %q, want [\"y\\n\"]", fake.sent)
	}
}

func TestExchangeMismatch(t *testing.T) {
	fake := &fakeExpecter{replies: []string{"enable\r\n% Unknown command.\r\nOLT>"}}
	s := newExpectSession(fake, time.Second)

	_, err := s.Exchange("enable", regexp.MustCompile(`OLT#`))
	if err == nil {
		t.Fatal("Exchange() should fail when the prompt does not match")
	}
	if code := types.GetErrorCode(err); code != types.ErrProtocolMismatch {
		t.Errorf("code = %s, want %s", code, types.ErrProtocolMismatch)
	}
}

func TestExchangeNilPattern(t *testing.T) {
	s := newExpectSession(&fakeExpecter{}, time.Second)
	if _, err := s.Exchange("enable", nil); err == nil {
		t.Error("Exchange() with nil pattern should fail")
	}
}

func TestSessionClose(t *testing.T) {
	fake := &fakeExpecter{}
	s := newExpectSession(fake, time.Second)
	if err := s.Close(); err != nil {
		t.Fatalf("Close() error: %v", err)
	}
	if !fake.closed {
		t.Error("Close() did not close the expecter")
	}
}

func TestNewDriverDefaults(t *testing.T) {
	if _, err := NewDriver(nil); err == nil {
		t.Error("NewDriver(nil) should fail")
	}
	if _, err := NewDriver(&types.EquipmentConfig{}); err == nil {
		t.Error("NewDriver without address should fail")
	}

	cfg := &types.EquipmentConfig{Address: "10.0.0.1"}
	d, err := NewDriver(cfg)
	if err != nil {
		t.Fatalf("NewDriver() error: %v", err)
	}
	if cfg.Port != 22 || cfg.Timeout != 30*time.Second || cfg.ConnectTimeout != 60*time.Second {
		t.Errorf("defaults not applied: %+v", cfg)
	}
	if d.IsConnected() {
		t.Error("new driver reports connected")
	}
	if _, err := d.Exchange(context.Background(), "enable", regexp.MustCompile(`OLT#`)); !types.IsCode(err, types.ErrConnection) {
		t.Errorf("Exchange() on disconnected driver = %v, want CONNECTION error", err)
	}
}
