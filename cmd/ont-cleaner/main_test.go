package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/nanoncore/ont-cleaner/types"
)

func testEnv(t *testing.T) string {
	t.Helper()
	t.Setenv("LOG_FILE", "")
	t.Setenv("LOG_LEVEL", "info")
	return filepath.Join(t.TempDir(), "missing.env")
}

func TestSimulateRun(t *testing.T) {
	envFile := testEnv(t)
	var out bytes.Buffer

	cmd := newRootCmd(&out)
	cmd.SetArgs([]string{"--simulate", "--ports", "2-3", "--env-file", envFile})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("Execute() error: %v\n%s", err, out.String())
	}

	logs := out.String()
	for _, want := range []string{
		"run_id=",
		"Running command: ont delete 2 all",
		"Running command: ont delete 3 all",
		"OPERATION SUMMARY",
		"CLEANUP COMPLETED SUCCESSFULLY",
		"Simulated record",
	} {
		if !strings.Contains(logs, want) {
			t.Errorf("log output missing %q", want)
		}
	}
	if strings.Contains(logs, "ont delete 4 all") {
		t.Error("port outside the range was processed")
	}
}

func TestInvalidInputIsLogged(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		env     map[string]string
		wantLog string
	}{
		{
			name:    "port range",
			args:    []string{"--simulate", "--ports", "1-"},
			wantLog: "Invalid port range",
		},
		{
			name:    "port range too wide",
			args:    []string{"--simulate", "--ports", "1-9223372036854775807"},
			wantLog: "Invalid port range",
		},
		{
			name:    "malformed environment",
			args:    []string{"--simulate"},
			env:     map[string]string{"SSH_PORT": "twenty-two"},
			wantLog: "Invalid configuration",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			envFile := testEnv(t)
			logFile := filepath.Join(t.TempDir(), "cleaner.log")
			t.Setenv("LOG_FILE", logFile)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			var out bytes.Buffer

			cmd := newRootCmd(&out)
			cmd.SetArgs(append(tt.args, "--env-file", envFile))
			err := cmd.Execute()
			if !types.IsCode(err, types.ErrInvalidFormat) {
				t.Fatalf("Execute() error = %v, want INVALID_FORMAT", err)
			}

			file, readErr := os.ReadFile(logFile)
			if readErr != nil {
				t.Fatalf("log file not written: %v", readErr)
			}
			for name, logs := range map[string]string{"stdout": out.String(), "file": string(file)} {
				if !strings.Contains(logs, tt.wantLog) || !strings.Contains(logs, "level=error") {
					t.Errorf("%s missing %q: %q", name, tt.wantLog, logs)
				}
				if strings.Contains(logs, "Running command") {
					t.Errorf("%s shows device commands after invalid input", name)
				}
			}
		})
	}
}

func TestMissingDeviceConfig(t *testing.T) {
	envFile := testEnv(t)
	t.Setenv("MONGO_HOST", "")
	t.Setenv("SSH_HOST", "")

	cmd := newRootCmd(&bytes.Buffer{})
	cmd.SetArgs([]string{"--env-file", envFile})
	if err := cmd.Execute(); !types.IsCode(err, types.ErrInvalidFormat) {
		t.Errorf("Execute() error = %v, want INVALID_FORMAT", err)
	}
}
