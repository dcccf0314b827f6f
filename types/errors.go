package types

import (
	"errors"
	"fmt"
	"strings"
)

// ErrorCode classifies a failure of a cleaning run or a listing request
type ErrorCode string

const (
	ErrInvalidFormat    ErrorCode = "INVALID_FORMAT"    // bad port range or configuration value
	ErrConnection       ErrorCode = "CONNECTION"        // device or store unreachable
	ErrProtocolMismatch ErrorCode = "PROTOCOL_MISMATCH" // expected prompt never appeared
	ErrUnexpectedOutput ErrorCode = "UNEXPECTED_OUTPUT" // success marker without a count
	ErrStore            ErrorCode = "STORE"             // insert/count/find failed
	ErrUnknown          ErrorCode = "UNKNOWN"
)

// Error is a classified failure. Op names the step or operation that failed.
type Error struct {
	Code ErrorCode
	Op   string
	Err  error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("[%s] %s", e.Code, e.Op)
	}
	return fmt.Sprintf("[%s] %s: %v", e.Code, e.Op, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// NewError wraps err with a code and operation name
func NewError(code ErrorCode, op string, err error) error {
	return &Error{Code: code, Op: op, Err: err}
}

// GetErrorCode returns the code of the first *Error in the chain
func GetErrorCode(err error) ErrorCode {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ErrUnknown
}

// IsCode reports whether err carries the given code
func IsCode(err error, code ErrorCode) bool {
	return err != nil && GetErrorCode(err) == code
}

// deviceErrorPatterns maps phrases the OLT shell prints on a rejected command
// to a readable description. Keys are lower case.
var deviceErrorPatterns = map[string]string{
	"% unknown command":     "command not recognized by the OLT",
	"invalid input":         "command rejected as invalid input",
	"incomplete command":    "command is incomplete",
	"ambiguous command":     "command is ambiguous",
	"permission denied":     "insufficient privilege for command",
	"access denied":         "insufficient privilege for command",
	"port not exist":        "GPON port does not exist",
	"invalid port":          "GPON port does not exist",
	"configuration is lock": "configuration is locked by another session",
}

// DescribeDeviceOutput returns a description of a known error phrase found in
// output captured from the device, or "" when none is present.
func DescribeDeviceOutput(output string) string {
	lower := strings.ToLower(output)
	best := ""
	bestAt := -1
	for pattern, human := range deviceErrorPatterns {
		if at := strings.Index(lower, pattern); at >= 0 && (bestAt < 0 || at < bestAt) {
			best, bestAt = human, at
		}
	}
	return best
}
