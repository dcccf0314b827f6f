// ont-cleaner deletes every ONT registered on a range of GPON ports of an OLT
// and records the deleted count per port in MongoDB.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	ontcleaner "github.com/nanoncore/ont-cleaner"
	"github.com/nanoncore/ont-cleaner/cleaner"
	"github.com/nanoncore/ont-cleaner/config"
	"github.com/nanoncore/ont-cleaner/logging"
	"github.com/nanoncore/ont-cleaner/model"
	"github.com/nanoncore/ont-cleaner/recorder"
	"github.com/nanoncore/ont-cleaner/store"
)

// storeTimeout bounds the MongoDB connect and ping
const storeTimeout = 10 * time.Second

type options struct {
	ports    string
	simulate bool
	envFile  string
}

func newRootCmd(stdout io.Writer) *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:   "ont-cleaner",
		Short: "Delete all ONTs on a range of GPON ports",
		Long: `ont-cleaner logs into the OLT over SSH, enters interface gpon 0/0 and runs
"ont delete <port> all" for each requested port, confirming every prompt.
The count the OLT reports for each port is saved to olt_operations.ont_deletions.

Ports are given as a single number ("3") or an inclusive range ("1-4").`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return run(ctx, opts, stdout)
		},
	}

	cmd.Flags().StringVar(&opts.ports, "ports", "1-4", `port or range to clean, e.g. "3" or "1-4"`)
	cmd.Flags().BoolVar(&opts.simulate, "simulate", false, "run against a simulated OLT and an in-memory store")
	cmd.Flags().StringVar(&opts.envFile, "env-file", ".env", "file with environment variables, ignored if missing")

	return cmd
}

func run(ctx context.Context, opts *options, stdout io.Writer) error {
	// A broken configuration is still logged, to the default destinations
	cfg, cfgErr := config.Load(opts.envFile)
	logOpts := logging.Options{Stdout: stdout}
	if cfgErr == nil {
		logOpts.Level, logOpts.File = cfg.LogLevel, cfg.LogFile
	} else {
		logOpts.Level, logOpts.File = config.LogSettings()
	}

	logger, closer, err := logging.New(logOpts)
	if err != nil {
		return errors.Join(cfgErr, err)
	}
	defer closer.Close()

	log := logger.WithField("run_id", uuid.New().String())

	if cfgErr != nil {
		log.WithError(cfgErr).Error("Invalid configuration")
		return cfgErr
	}

	ports, err := model.ParsePortRange(opts.ports)
	if err != nil {
		log.WithError(err).WithField("ports", opts.ports).Error("Invalid port range")
		return err
	}

	if opts.simulate {
		return simulate(ctx, cfg, ports, log)
	}

	if err := cfg.ValidateCleaner(); err != nil {
		log.WithError(err).Error("Invalid configuration")
		return err
	}

	connectCtx, cancel := context.WithTimeout(ctx, storeTimeout)
	mongo, err := store.ConnectMongo(connectCtx, cfg.Mongo)
	cancel()
	if err != nil {
		log.WithError(err).Error("Failed to connect to MongoDB")
		return err
	}
	defer mongo.Close(context.Background())

	driver, err := ontcleaner.NewDriver(cfg.Device.Vendor, &cfg.Device)
	if err != nil {
		log.WithError(err).Error("Failed to create the OLT driver")
		return err
	}

	runnerOpts := []cleaner.Option{cleaner.WithLogger(log)}
	inventory, err := ontcleaner.NewInventory(&cfg.Device)
	if err != nil {
		log.WithError(err).Warn("SNMP inventory disabled")
	} else if inventory != nil {
		runnerOpts = append(runnerOpts, cleaner.WithInventory(inventory))
	}

	rec := recorder.New(mongo, recorder.WithLogger(log))
	_, err = cleaner.NewRunner(driver, &cfg.Device, rec, runnerOpts...).Run(ctx, ports)
	return err
}

// simulate runs the same dialogue against the simulated shell and keeps the
// records in memory
func simulate(ctx context.Context, cfg *config.Config, ports []int, log logrus.FieldLogger) error {
	device := cfg.Device
	device.Vendor = ontcleaner.VendorMock

	driver, err := ontcleaner.NewDriver(device.Vendor, &device)
	if err != nil {
		return err
	}

	mem := store.NewMemory()
	log.Warn("Simulation mode: no device or database will be touched")

	rec := recorder.New(mem, recorder.WithLogger(log))
	if _, err := cleaner.NewRunner(driver, &device, rec, cleaner.WithLogger(log)).Run(ctx, ports); err != nil {
		return err
	}

	for _, r := range mem.All() {
		log.WithField("port", r.Port).Infof("Simulated record: %s port=%d onts_deleted=%d status=%s",
			r.Timestamp.Format(time.RFC3339), r.Port, r.ONTsDeleted, r.Status)
	}
	return nil
}

func main() {
	if err := newRootCmd(os.Stdout).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "ont-cleaner failed:", err)
		os.Exit(1)
	}
}
