package main

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"github.com/AntonStoeckl/lending-library-go/catalog"
	"github.com/AntonStoeckl/lending-library-go/config"
	"github.com/AntonStoeckl/lending-library-go/core"
	"github.com/AntonStoeckl/lending-library-go/internal/sampledata"
	"github.com/AntonStoeckl/lending-library-go/journal"
	"github.com/AntonStoeckl/lending-library-go/lending"
)

const (
	flagConfig    = "config"
	flagLogLevel  = "log-level"
	flagTelemetry = "telemetry"
)

// app holds what the persistent flags set up for all subcommands.
type app struct {
	configPath string
	logLevel   string
	telemetry  bool

	cfg          config.Config
	logger       *slog.Logger
	journal      journal.Journal
	closeJournal func() error
	otel         *telemetry
	stderr       io.Writer
}

func run(ctx context.Context, args []string, stdout io.Writer, stderr io.Writer) error {
	a := &app{stderr: stderr}
	root := newRootCommand(a)
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)

	err := root.ExecuteContext(ctx)

	return errors.Join(err, a.tearDown(ctx, stdout))
}

func newRootCommand(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:           "lendinglibrary",
		Short:         "Check out, return and sweep books and series of a sample library",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setUp(cmd.Context())
		},
	}

	root.PersistentFlags().StringVar(&a.configPath, flagConfig, "", "path to a YAML config file, defaults apply without one")
	root.PersistentFlags().StringVar(&a.logLevel, flagLogLevel, "", "overrides log.level of the config (debug, info, warn, error)")
	root.PersistentFlags().BoolVar(&a.telemetry, flagTelemetry, false, "record OpenTelemetry metrics and spans and print a summary")

	root.AddCommand(
		newDemoCommand(a),
		newSweepCommand(a),
		newHistoryCommand(a),
	)

	return root
}

func (a *app) setUp(ctx context.Context) error {
	cfg := config.Default()
	if a.configPath != "" {
		loaded, err := config.Load(a.configPath)
		if err != nil {
			return err
		}

		cfg = loaded
	}

	if a.logLevel != "" {
		cfg.Log.Level = a.logLevel
	}

	logger, err := config.NewLogger(cfg.Log, a.stderr)
	if err != nil {
		return err
	}

	j, closeJournal, err := config.OpenJournal(ctx, cfg.Journal, logger)
	if err != nil {
		return err
	}

	a.cfg = cfg
	a.logger = logger
	a.journal = j
	a.closeJournal = closeJournal

	if a.telemetry {
		a.otel = newTelemetry()
	}

	return nil
}

func (a *app) tearDown(ctx context.Context, out io.Writer) error {
	var errs []error

	if a.otel != nil {
		errs = append(errs, a.otel.writeSummary(ctx, out), a.otel.shutdown(ctx))
		a.otel = nil
	}

	if a.closeJournal != nil {
		errs = append(errs, a.closeJournal())
		a.closeJournal = nil
	}

	return errors.Join(errs...)
}

// serviceOptions returns the options every Service of a command gets, followed by extra.
func (a *app) serviceOptions(extra ...lending.Option) []lending.Option {
	options := []lending.Option{
		lending.WithLoanPolicy(a.cfg.Policy.LoanPolicy()),
		lending.WithJournal(a.journal),
	}

	if a.otel != nil {
		options = append(options, a.otel.serviceOptions(a.logger.Handler())...)
	} else {
		options = append(options, lending.WithLogger(a.logger))
	}

	return append(options, extra...)
}

// newSampleLibrary seeds a fresh catalog and returns a Service on it.
func (a *app) newSampleLibrary(ctx context.Context, extra ...lending.Option) (*catalog.Catalog, *lending.Service, error) {
	c := catalog.New()

	service, err := lending.NewService(c, a.serviceOptions(extra...)...)
	if err != nil {
		return nil, nil, err
	}

	if err := sampledata.Seed(ctx, service.Registry()); err != nil {
		return nil, nil, err
	}

	return c, service, nil
}

// parseDateFlag parses an ISO date, an empty value means today.
func parseDateFlag(name string, value string) (time.Time, error) {
	if value == "" {
		return time.Now(), nil
	}

	date, err := core.ParseDate(value)
	if err != nil {
		return time.Time{}, errors.Join(errors.New("--"+name+" must be a date like 2025-03-10"), err)
	}

	return date, nil
}
