package main

import (
	"context"
	"fmt"
	"os"
	"runtime"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ajitpratap0/arff/pkg/config"
	"github.com/ajitpratap0/arff/pkg/logger"
	"github.com/ajitpratap0/arff/pkg/observability"
)

var version = "0.1.0"

// app carries the state shared by every subcommand
type app struct {
	configFile string

	// flags maps viper keys to the names of the flags that override them
	flags    map[string]string
	config   *config.LoaderConfig
	logger   *zap.Logger
	shutdown func(context.Context) error
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	a := &app{flags: map[string]string{}}

	root := &cobra.Command{
		Use:   "arff",
		Short: "Inspect and convert ARFF relations",
		Long: `arff loads Attribute-Relation File Format files, optionally compressed
with gzip, zstd, lz4 or s2, and prints or exports their contents.

Flags take precedence over ARFF_* environment variables, which are also read
from a .env file in the working directory, and both override --config.`,
		SilenceUsage:      true,
		PersistentPreRunE: a.setup,
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			return a.teardown(cmd.Context())
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&a.configFile, "config", "", "Path to a YAML, JSON or TOML config file")
	flags.String("log-level", "", "Log level (debug, info, warn, error)")
	flags.String("log-encoding", "", "Log encoding (json, console)")
	flags.String("compression", "", "Input compression (auto, none, gzip, zstd, lz4, s2)")
	flags.Bool("batch", false, "Parse every row up front instead of streaming")
	flags.Bool("mmap", false, "Memory-map uncompressed input files")
	flags.Bool("tracing", false, "Print OpenTelemetry spans to stderr")
	a.bind("log.level", "log-level")
	a.bind("log.encoding", "log-encoding")
	a.bind("compression", "compression")
	a.bind("batch", "batch")
	a.bind("memory_map", "mmap")
	a.bind("tracing.enabled", "tracing")

	root.AddCommand(
		newVersionCommand(),
		newInspectCommand(a),
		newHeadCommand(a),
		newExportCommand(a),
	)
	return root
}

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "arff v%s\n", version)
			fmt.Fprintf(out, "Go version: %s\n", runtime.Version())
			fmt.Fprintf(out, "OS/Arch: %s/%s\n", runtime.GOOS, runtime.GOARCH)
		},
	}
}

// bind makes flag override the config key
func (a *app) bind(key, flag string) {
	a.flags[key] = flag
}

// setup resolves the configuration and installs logging and tracing
func (a *app) setup(cmd *cobra.Command, args []string) error {
	v, err := config.NewViper(a.configFile)
	if err != nil {
		return err
	}
	for key, name := range a.flags {
		// flags of other subcommands are not registered on cmd
		flag := cmd.Flags().Lookup(name)
		if flag == nil {
			continue
		}
		if err := v.BindPFlag(key, flag); err != nil {
			return err
		}
	}

	cfg, err := config.FromViper(v)
	if err != nil {
		return err
	}
	a.config = cfg

	if err := logger.Init(logger.Config{
		Level:       cfg.Log.Level,
		Encoding:    cfg.Log.Encoding,
		Development: cfg.Log.Development,
		OutputPaths: []string{"stderr"},
	}); err != nil {
		return err
	}
	a.logger = logger.Get()

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	loadID := uuid.NewString()
	ctx = logger.WithLoadID(ctx, loadID)

	if cfg.Tracing.Enabled {
		shutdown, err := observability.InitTracing(ctx, observability.DefaultTracingConfig(cfg.Tracing.ServiceName))
		if err != nil {
			return err
		}
		a.shutdown = shutdown
	}

	cmd.SetContext(ctx)
	a.logger.Debug("configuration resolved",
		zap.String("load_id", loadID),
		zap.String("command", cmd.Name()),
		zap.Bool("batch", cfg.Batch),
		zap.String("compression", cfg.Compression))
	return nil
}

func (a *app) teardown(ctx context.Context) error {
	if a.shutdown != nil {
		if err := a.shutdown(ctx); err != nil {
			return err
		}
	}
	_ = logger.Sync()
	return nil
}
