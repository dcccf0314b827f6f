package types

import (
	"errors"
	"fmt"
	"testing"
)

func TestGetErrorCode(t *testing.T) {
	base := errors.New("boom")

	tests := []struct {
		name string
		err  error
		want ErrorCode
	}{
		{"nil", nil, ErrUnknown},
		{"plain error", base, ErrUnknown},
		{"direct", NewError(ErrConnection, "dial", base), ErrConnection},
		{"wrapped", fmt.Errorf("run: %w", NewError(ErrProtocolMismatch, "enable", base)), ErrProtocolMismatch},
		{"no inner error", &Error{Code: ErrStore, Op: "insert"}, ErrStore},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := GetErrorCode(tt.err); got != tt.want {
				t.Errorf("GetErrorCode() = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestErrorUnwrap(t *testing.T) {
	base := errors.New("connection refused")
	err := NewError(ErrConnection, "dial 10.0.0.1:22", base)

	if !errors.Is(err, base) {
		t.Error("errors.Is should find the wrapped error")
	}
	if !IsCode(err, ErrConnection) {
		t.Error("IsCode(ErrConnection) = false")
	}
	if IsCode(nil, ErrConnection) {
		t.Error("IsCode(nil) = true")
	}
	want := "[CONNECTION] dial 10.0.0.1:22: connection refused"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}

func TestDescribeDeviceOutput(t *testing.T) {
	tests := []struct {
		name   string
		output string
		want   string
	}{
		{"empty", "", ""},
		{"clean output", "ONT delete success: 4", ""},
		{"unknown command", "  % Unknown command.\r\nOLT#", "command not recognized by the OLT"},
		{"invalid input upper case", "% INVALID INPUT detected at '^' marker.", "command rejected as invalid input"},
		{"first phrase wins", "Error: port not exist\n% Unknown command", "GPON port does not exist"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DescribeDeviceOutput(tt.output); got != tt.want {
				t.Errorf("DescribeDeviceOutput(%q) = %q, want %q", tt.output, got, tt.want)
			}
		})
	}
}
