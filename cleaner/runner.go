package cleaner

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/nanoncore/ont-cleaner/types"
)

// Recorder receives the deleted count of every port that reported one
type Recorder interface {
	Record(ctx context.Context, port, ontsDeleted int) error
}

// Runner executes the deletion dialogue against one OLT
type Runner struct {
	driver    types.Driver
	config    *types.EquipmentConfig
	recorder  Recorder
	inventory types.Inventory
	log       logrus.FieldLogger
	now       func() time.Time
}

// Option configures a Runner
type Option func(*Runner)

// WithInventory enables the pre-flight SNMP count
func WithInventory(inv types.Inventory) Option {
	return func(r *Runner) { r.inventory = inv }
}

// WithLogger sets the logger
func WithLogger(log logrus.FieldLogger) Option {
	return func(r *Runner) { r.log = log }
}

// WithClock overrides the time source used in the start banner
func WithClock(now func() time.Time) Option {
	return func(r *Runner) { r.now = now }
}

// NewRunner creates a runner. The driver is connected by Run.
func NewRunner(driver types.Driver, config *types.EquipmentConfig, recorder Recorder, opts ...Option) *Runner {
	r := &Runner{
		driver:   driver,
		config:   config,
		recorder: recorder,
		log:      logrus.StandardLogger(),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run deletes all ONTs on each port in order and records every reported count.
// Any failure aborts the run; records already written stay in the store.
func (r *Runner) Run(ctx context.Context, ports []int) (*Summary, error) {
	r.log.Info(banner)
	r.log.Info("STARTING ONT CLEANUP")
	r.log.Infof("Date and time: %s", r.now().UTC().Format("2006-01-02 15:04:05 UTC"))
	r.log.Infof("Ports to process: %v", ports)
	r.log.Info(banner)

	summary := newSummary(ports)
	summary.Registered = r.preflight(ctx, ports)

	if err := r.driver.Connect(ctx, r.config); err != nil {
		r.log.WithError(err).Error("Failed to connect to the OLT")
		return nil, err
	}

	if err := r.execute(ctx, ports, summary); err != nil {
		r.log.WithError(err).Error("Failed to run commands on the OLT")
		// The session may be left at any prompt; closing it is best effort
		_ = r.driver.Disconnect(ctx)
		return summary, err
	}

	summary.Log(r.log)

	if err := r.driver.Disconnect(ctx); err != nil {
		r.log.WithError(err).Warn("Failed to close the OLT session cleanly")
	}

	r.log.Info(banner)
	r.log.Info("CLEANUP COMPLETED SUCCESSFULLY")
	r.log.Info(banner)

	return summary, nil
}

func (r *Runner) execute(ctx context.Context, ports []int, summary *Summary) error {
	for _, step := range SetupSteps {
		if _, err := r.exchange(ctx, step); err != nil {
			return err
		}
	}

	for _, port := range ports {
		var output string
		for _, step := range DeletionSteps(port) {
			out, err := r.exchange(ctx, step)
			if err != nil {
				return err
			}
			output = out
		}

		count, ok, err := ParseDeletedCount(output)
		if err != nil {
			return fmt.Errorf("port %d: %w", port, err)
		}
		if !ok {
			r.log.WithField("port", port).Warnf("No %q in output for port %d, skipping", SuccessMarker, port)
			summary.Skipped = append(summary.Skipped, port)
			continue
		}

		r.log.WithField("port", port).Infof("ONTs deleted on port %d: %d", port, count)
		summary.add(port, count)

		if err := r.recorder.Record(ctx, port, count); err != nil {
			return fmt.Errorf("port %d: %w", port, err)
		}
	}

	return nil
}

func (r *Runner) exchange(ctx context.Context, step Step) (string, error) {
	if step.Command == "" {
		r.log.Info("Waiting for initial prompt...")
	} else {
		r.log.Infof("Running command: %s", step.Command)
	}

	out, err := r.driver.Exchange(ctx, step.Command, step.Expect)
	if err != nil {
		return "", fmt.Errorf("%s: %w", step.Name, err)
	}

	r.log.WithField("step", step.Name).Debugf("Output: %s", out)
	return out, nil
}

// preflight logs the registered ONT count per port. It never fails the run.
func (r *Runner) preflight(ctx context.Context, ports []int) map[int]int {
	if r.inventory == nil {
		return nil
	}

	if err := r.inventory.Connect(ctx); err != nil {
		r.log.WithError(err).Warn("SNMP inventory unavailable")
		return nil
	}
	defer r.inventory.Disconnect(ctx)

	counts, err := r.inventory.RegisteredONTs(ctx, ports)
	if err != nil {
		r.log.WithError(err).Warn("SNMP inventory walk failed")
		return nil
	}

	for _, port := range ports {
		if n, ok := counts[port]; ok {
			r.log.WithField("port", port).Infof("Registered ONTs on port %d before cleanup: %d", port, n)
		}
	}
	return counts
}
