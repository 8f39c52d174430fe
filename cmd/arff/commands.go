package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ajitpratap0/arff/pkg/arff"
	"github.com/ajitpratap0/arff/pkg/compression"
	"github.com/ajitpratap0/arff/pkg/formats/columnar"
	jsonpool "github.com/ajitpratap0/arff/pkg/json"
	"github.com/ajitpratap0/arff/pkg/logger"
)

func newInspectCommand(a *app) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "inspect <file>",
		Short: "Summarize the attributes and rows of a relation",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			ds, err := arff.NewLoader(a.config, a.logger).Load(ctx, args[0], a.config.Batch)
			if err != nil {
				return err
			}
			defer ds.Close()

			summary, err := summarize(ctx, ds)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if asJSON {
				data, err := jsonpool.MarshalIndent(summary, "", "  ")
				if err != nil {
					return err
				}
				_, err = fmt.Fprintln(out, string(data))
				return err
			}
			return summary.write(out)
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the summary as JSON")
	return cmd
}

func newHeadCommand(a *app) *cobra.Command {
	var n int

	cmd := &cobra.Command{
		Use:   "head <file>",
		Short: "Print the header and the first rows of a relation",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			ds, err := arff.NewLoader(a.config, a.logger).Load(ctx, args[0], a.config.Batch)
			if err != nil {
				return err
			}
			defer ds.Close()

			out := cmd.OutOrStdout()
			if _, err := io.WriteString(out, arff.FormatHeader(ds.Name(), ds.Headers())); err != nil {
				return err
			}

			printed := 0
			for row, err := range ds.Rows(ctx) {
				if printed >= n {
					break
				}
				if err != nil {
					return err
				}
				if _, err := fmt.Fprintln(out, arff.FormatRow(row)); err != nil {
					return err
				}
				printed++
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&n, "lines", "n", 10, "Number of rows to print")
	return cmd
}

func newExportCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export <file>",
		Short: "Convert a relation to Arrow, Avro or JSON lines",
		Long: `Convert a relation to Arrow IPC, Avro OCF or line-delimited JSON.

Numeric attributes become nullable doubles and nominal attributes nullable
strings holding the label. An output path ending in .gz, .zst, .lz4 or .s2 is
compressed accordingly.

Example:
  arff export weather.arff --format avro --avro-codec deflate -o weather.avro`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.export(cmd, args[0])
		},
	}

	flags := cmd.Flags()
	flags.String("format", "", "Export format (arrow, avro, json)")
	flags.StringP("output", "o", "", `Output path, "-" for stdout`)
	flags.String("avro-codec", "", "Avro block codec (null, deflate, snappy)")
	flags.Int("batch-size", 0, "Rows per Arrow record batch or Avro block")
	flags.Bool("index-columns", false, "Add the class index of each nominal attribute as a column")
	a.bind("export.format", "format")
	a.bind("export.output", "output")
	a.bind("export.compression", "avro-codec")
	a.bind("export.batch_size", "batch-size")
	a.bind("export.index_columns", "index-columns")
	return cmd
}

func (a *app) export(cmd *cobra.Command, filename string) error {
	ctx := cmd.Context()
	cfg := a.config.Export
	start := time.Now()

	ds, err := arff.NewLoader(a.config, a.logger).Load(ctx, filename, a.config.Batch)
	if err != nil {
		return err
	}
	defer ds.Close()

	var out io.Writer = cmd.OutOrStdout()
	var closers []io.Closer
	if cfg.Output != "-" {
		f, err := os.Create(cfg.Output)
		if err != nil {
			return err
		}
		out = f
		closers = append(closers, f)

		if alg := compression.AlgorithmFromPath(cfg.Output); alg != compression.None {
			cw, err := compression.NewWriter(f, alg, compression.Default)
			if err != nil {
				_ = f.Close()
				return err
			}
			out = cw
			// the compressor must flush before the file closes
			closers = append([]io.Closer{cw}, closers...)
		}
	}

	rows, err := columnar.Export(ctx, out, ds, &columnar.WriterConfig{
		Format:       columnar.Format(cfg.Format),
		Compression:  cfg.Compression,
		BatchSize:    cfg.BatchSize,
		IndexColumns: cfg.IndexColumns,
	})
	for _, c := range closers {
		if cerr := c.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}
	if err != nil {
		return err
	}

	logger.FromContext(ctx, a.logger).Info("exported relation",
		zap.String("relation", ds.Name()),
		zap.String("format", cfg.Format),
		zap.String("output", cfg.Output),
		zap.Int64("rows", rows),
		zap.Duration("duration", time.Since(start)))
	return nil
}
