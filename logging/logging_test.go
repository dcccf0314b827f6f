package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/nanoncore/ont-cleaner/types"
)

func TestNewWritesToStdoutAndFile(t *testing.T) {
	var stdout bytes.Buffer
	path := filepath.Join(t.TempDir(), "cleaner.log")

	logger, closer, err := New(Options{Level: "debug", File: path, Stdout: &stdout})
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	logger.WithField("port", 3).Info("ONTs deleted on port 3: 4")
	logger.Debug("Output: success: 4")
	if err := closer.Close(); err != nil {
		t.Fatalf("Close() error: %v", err)
	}

	file, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}

	for name, got := range map[string]string{"stdout": stdout.String(), "file": string(file)} {
		if !strings.Contains(got, "ONTs deleted on port 3: 4") || !strings.Contains(got, "port=3") {
			t.Errorf("%s missing info line: %q", name, got)
		}
		if !strings.Contains(got, "level=debug") {
			t.Errorf("%s missing debug line: %q", name, got)
		}
	}
}

func TestNewLevelFilters(t *testing.T) {
	var stdout bytes.Buffer
	logger, _, err := New(Options{Level: "warn", Stdout: &stdout})
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	logger.Info("hidden")
	logger.Warn("shown")

	if strings.Contains(stdout.String(), "hidden") || !strings.Contains(stdout.String(), "shown") {
		t.Errorf("output = %q", stdout.String())
	}
}

func TestNewDefaultsToInfo(t *testing.T) {
	logger, closer, err := New(Options{Stdout: &bytes.Buffer{}})
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	if closer == nil {
		t.Fatal("closer is nil")
	}
	if logger.GetLevel().String() != "info" {
		t.Errorf("level = %s, want info", logger.GetLevel())
	}
}

func TestNewInvalidLevel(t *testing.T) {
	_, _, err := New(Options{Level: "chatty"})
	if !types.IsCode(err, types.ErrInvalidFormat) {
		t.Errorf("New() error = %v, want INVALID_FORMAT", err)
	}
}
