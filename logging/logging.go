// Package logging builds the logrus logger shared by both executables
package logging

import (
	"fmt"
	"io"
	"os"

	log "github.com/sirupsen/logrus"

	"github.com/nanoncore/ont-cleaner/types"
)

// TimestampFormat matches the timestamps operators grep the log file for
const TimestampFormat = "2006-01-02 15:04:05"

// Options selects the level and destinations
type Options struct {
	// Level is a logrus level name, "info" when empty
	Level string

	// File is appended to in addition to Stdout. Empty disables it.
	File string

	// Stdout defaults to os.Stdout
	Stdout io.Writer
}

// New returns a logger and a closer for its file. The closer is never nil.
func New(opts Options) (*log.Logger, io.Closer, error) {
	if opts.Level == "" {
		opts.Level = "info"
	}
	lvl, err := log.ParseLevel(opts.Level)
	if err != nil {
		return nil, nil, types.NewError(types.ErrInvalidFormat, "LOG_LEVEL", err)
	}

	out := opts.Stdout
	if out == nil {
		out = os.Stdout
	}

	var closer io.Closer = nopCloser{}
	if opts.File != "" {
		f, err := os.OpenFile(opts.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("open log file: %w", err)
		}
		out = io.MultiWriter(out, f)
		closer = f
	}

	logger := log.New()
	logger.SetLevel(lvl)
	logger.SetOutput(out)
	logger.SetFormatter(&log.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: TimestampFormat,
		DisableColors:   true,
	})

	return logger, closer, nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
