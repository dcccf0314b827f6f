// Package recorder writes one deletion record per processed GPON port.
package recorder

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/nanoncore/ont-cleaner/model"
	"github.com/nanoncore/ont-cleaner/store"
)

// Recorder persists deletion results
type Recorder struct {
	store store.Store
	log   logrus.FieldLogger
	now   func() time.Time
}

// Option configures a Recorder
type Option func(*Recorder)

// WithClock overrides the time source
func WithClock(now func() time.Time) Option {
	return func(r *Recorder) { r.now = now }
}

// WithLogger sets the logger
func WithLogger(log logrus.FieldLogger) Option {
	return func(r *Recorder) { r.log = log }
}

// New creates a recorder writing to s
func New(s store.Store, opts ...Option) *Recorder {
	r := &Recorder{
		store: s,
		log:   logrus.StandardLogger(),
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Record stores a success record for port stamped with the current UTC time.
// Store errors are returned unchanged so the run aborts.
func (r *Recorder) Record(ctx context.Context, port, ontsDeleted int) error {
	rec := model.NewDeletionRecord(r.now(), port, ontsDeleted)
	if err := r.store.Insert(ctx, rec); err != nil {
		r.log.WithError(err).WithField("port", port).Error("Failed to save deletion record")
		return err
	}
	r.log.WithField("port", port).Infof("Saved deletion record for port %d", port)
	return nil
}
