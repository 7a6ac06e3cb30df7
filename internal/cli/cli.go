package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	crerr "github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	"github.com/elmoro10/fagerborg-tabeller/internal/config"
	"github.com/elmoro10/fagerborg-tabeller/internal/logger"
	"github.com/elmoro10/fagerborg-tabeller/internal/pipeline"
	"github.com/elmoro10/fagerborg-tabeller/internal/scraper"
	"github.com/elmoro10/fagerborg-tabeller/internal/storage"
)

const (
	ExitSuccess = 0
	ExitError   = 1
	ExitRefused = 2
)

const defaultConfigPath = "tabeller.json5"

var (
	flagConfig   string
	flagOut      string
	flagFiksA    string
	flagFiksB    string
	flagVerbose  bool
	flagLogLevel string
	flagFile     string
	flagFormat   string
)

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tabeller",
		Short: "Publish league tables for Fagerborg's teams",
		Long: `A batch tool that scrapes standings and recent results for two competitions
from fotball.no and publishes them as one JSON feed for the club's table page.
A run never replaces a published table with an empty one.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.AddCommand(newRunCmd(), newShowCmd())
	return cmd
}

func newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Fetch both competitions and publish the feed",
		RunE:  runPublish,
	}

	cmd.Flags().StringVar(&flagConfig, "config", defaultConfigPath, "Config file (JSON5); a <name>.local.json5 next to it overrides it")
	cmd.Flags().StringVar(&flagOut, "out", "", "Feed file to write (overrides config output)")
	cmd.Flags().StringVar(&flagFiksA, "fiks-a", "", "fiksId of competition a (overrides config)")
	cmd.Flags().StringVar(&flagFiksB, "fiks-b", "", "fiksId of competition b (overrides config)")
	cmd.Flags().BoolVar(&flagVerbose, "verbose", false, "Enable verbose logging")
	cmd.Flags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn or error")

	return cmd
}

func newShowCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print a published feed",
		RunE:  runShow,
	}

	cmd.Flags().StringVar(&flagFile, "file", config.Default().Output, "Feed file to read")
	cmd.Flags().StringVar(&flagFormat, "format", "text", "Output format: text or json")

	return cmd
}

// runPublish is the main command logic
func runPublish(cmd *cobra.Command, args []string) error {
	level := logger.ParseLevel(flagLogLevel)
	if flagVerbose {
		level = logger.LevelDebug
	}
	logger.SetDefault(logger.New(level, cmd.ErrOrStderr()))
	defer func() { _ = logger.Default().Sync() }()

	cfg, err := loadConfig(cmd.Flags().Changed("config"))
	if err != nil {
		return err
	}
	cfg = cfg.WithFiksIDs(flagFiksA, flagFiksB).WithOutput(flagOut)

	store, err := storage.New(cfg.Output)
	if err != nil {
		return crerr.Wrap(err, "initializing storage")
	}

	runner, err := pipeline.New(cfg, scraper.New(cfg.UserAgent, cfg.FetchTimeout()), store)
	if err != nil {
		return err
	}

	_, err = runner.Run(cmd.Context())
	logger.Info("run finished", logger.Fields{
		"metrics": logger.GetMetricsSnapshot(),
		"ok":      err == nil,
	})
	return err
}

// loadConfig reads --config. A missing file at the default path is not an error.
func loadConfig(explicit bool) (config.Config, error) {
	cfg, err := config.Load(flagConfig)
	if err == nil {
		logger.Debug("loaded config", logger.Fields{"path": flagConfig})
		return cfg, nil
	}
	if !explicit && crerr.Is(err, os.ErrNotExist) {
		logger.Info("no config file found, using defaults", logger.Fields{"path": flagConfig})
		return config.Default(), nil
	}
	return cfg, err
}

func runShow(cmd *cobra.Command, args []string) error {
	format, err := ParseFormat(flagFormat)
	if err != nil {
		return err
	}

	feed, err := storage.Read(flagFile)
	if err != nil {
		return err
	}

	return WriteOutput(cmd.OutOrStdout(), feed, format)
}

// ExitCode maps an error returned by a command to the process exit code.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return ExitSuccess
	case crerr.Is(err, storage.ErrExtractionRegression):
		return ExitRefused
	default:
		return ExitError
	}
}

// Run executes the CLI with args and returns the exit code.
func Run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	cmd := NewRootCmd()
	cmd.SetArgs(args)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	err := cmd.ExecuteContext(ctx)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
	}
	return ExitCode(err)
}

// Execute runs the CLI
func Execute() {
	os.Exit(Run(context.Background(), os.Args[1:], os.Stdout, os.Stderr))
}
