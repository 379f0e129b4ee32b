package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/Xin-10/Netflix-Data-Visualization/internal/charts"
	"github.com/Xin-10/Netflix-Data-Visualization/internal/config"
	"github.com/Xin-10/Netflix-Data-Visualization/internal/dashboard"
	"github.com/Xin-10/Netflix-Data-Visualization/internal/dataprocessing"
	apperrors "github.com/Xin-10/Netflix-Data-Visualization/internal/errors"
	"github.com/Xin-10/Netflix-Data-Visualization/internal/infrastructure"
	"github.com/Xin-10/Netflix-Data-Visualization/internal/services"
	"github.com/Xin-10/Netflix-Data-Visualization/internal/validation"
	"github.com/Xin-10/Netflix-Data-Visualization/pkg/contracts"
)

// globalOptions are the persistent flags shared by every subcommand
type globalOptions struct {
	dataPath   string
	configPath string
	logLevel   string

	cfg       *config.Config
	logger    *slog.Logger
	validator *validation.FileValidator
}

func newRootCmd() *cobra.Command {
	opts := &globalOptions{}

	root := &cobra.Command{
		Use:           "chartexport",
		Short:         "Export Netflix dashboard charts without running the server",
		Version:       contracts.GetVersionString(),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.load(cmd)
		},
	}

	root.PersistentFlags().StringVar(&opts.dataPath, "data", "", "Dataset file (default: data/netflix_final_merged.csv next to the executable)")
	root.PersistentFlags().StringVar(&opts.configPath, "config", "", "YAML config file (default: $NETFLIX_CONFIG or ./config.yaml)")
	root.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "Log level: debug, info, warn or error")

	root.AddCommand(newListCmd(opts))
	root.AddCommand(newTablesCmd(opts))
	root.AddCommand(newSVGCmd(opts))
	root.AddCommand(newPageCmd(opts))
	return root
}

// load resolves configuration and a stderr logger before any subcommand runs
func (o *globalOptions) load(cmd *cobra.Command) error {
	var (
		cfg *config.Config
		err error
	)
	if o.configPath != "" {
		cfg, err = config.LoadFile(o.configPath)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return apperrors.NewConfigError("failed to load configuration", err).WithContext("path", o.configPath)
	}

	if o.logLevel != "" {
		cfg.Logging.Level = o.logLevel
	}
	if o.dataPath != "" {
		abs, err := filepath.Abs(o.dataPath)
		if err != nil {
			return fmt.Errorf("failed to resolve --data: %w", err)
		}
		cfg.Data.File = abs
	}

	o.cfg = cfg
	o.logger = infrastructure.WithComponent(
		infrastructure.NewLoggerWithWriter(cmd.ErrOrStderr(), cfg.Logging.Level, "text"), "chartexport")
	cmd.SetContext(infrastructure.EnsureTraceID(cmd.Context()))
	o.validator = validation.NewFileValidator(o.logger)
	return nil
}

// build loads the dataset and computes every chart
func (o *globalOptions) build(ctx context.Context) (*services.DashboardService, error) {
	path, err := o.cfg.DatasetPath()
	if err != nil {
		return nil, err
	}

	if err := o.validator.ValidateDataset(path); err != nil {
		return nil, apperrors.NewDataLoadError("failed to load dataset", err).WithContext("path", path)
	}

	ctx, cancel := context.WithTimeout(ctx, o.cfg.Dashboard.BuildTimeout)
	defer cancel()

	records, err := dataprocessing.NewLoader(o.logger).Load(ctx, path)
	if err != nil {
		return nil, apperrors.NewDataLoadError("failed to load dataset", err).WithContext("path", path)
	}

	assembler, err := dashboard.NewAssembler(o.logger)
	if err != nil {
		return nil, err
	}
	registry := charts.NewRegistry(charts.WithJitter(charts.NewRandomJitter(o.cfg.Dashboard.JitterSeed)))
	renderer := dashboard.NewRenderer(o.cfg.Dashboard.ChartWidth, o.cfg.Dashboard.ChartHeight, o.logger)

	svc := services.NewDashboardService(registry, renderer, assembler, o.logger)
	if _, err := svc.Build(ctx, dataprocessing.NewSnapshot(records, path)); err != nil {
		return nil, err
	}
	return svc, nil
}

func newListCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List every chart with its row count",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := opts.build(cmd.Context())
			if err != nil {
				return err
			}
			list, err := svc.List(cmd.Context())
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tSECTION\tROWS\tTITLE")
			for _, c := range list {
				fmt.Fprintf(w, "%s\t%s\t%d\t%s\n", c.ID, c.Section, c.Rows, c.Title)
			}
			return w.Flush()
		},
	}
}

func newTablesCmd(opts *globalOptions) *cobra.Command {
	var (
		format string
		outDir string
	)
	cmd := &cobra.Command{
		Use:   "tables",
		Short: "Write every chart table as csv or xlsx",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if outDir == "" {
				dir, err := opts.cfg.ExportDir()
				if err != nil {
					return err
				}
				outDir = dir
			}
			if err := opts.validator.ValidateOutputDirectory(outDir); err != nil {
				return err
			}

			svc, err := opts.build(cmd.Context())
			if err != nil {
				return err
			}
			paths, err := svc.ExportAll(cmd.Context(), outDir, format)
			if err != nil {
				return err
			}
			for _, p := range paths {
				fmt.Fprintln(cmd.OutOrStdout(), p)
			}
			opts.logger.Info("tables exported",
				slog.Int("files", len(paths)),
				slog.String("dir", outDir),
				slog.String("format", format))
			return nil
		},
	}
	cmd.Flags().StringVar(&format, "format", "csv", "Output format: csv or xlsx")
	cmd.Flags().StringVar(&outDir, "out", "", "Output directory (default: configured export dir)")
	return cmd
}

func newSVGCmd(opts *globalOptions) *cobra.Command {
	var outDir string
	cmd := &cobra.Command{
		Use:   "svg",
		Short: "Write every rendered chart as <id>.svg",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := opts.build(cmd.Context())
			if err != nil {
				return err
			}
			list, err := svc.List(cmd.Context())
			if err != nil {
				return err
			}
			if err := opts.validator.ValidateOutputDirectory(outDir); err != nil {
				return err
			}

			for _, c := range list {
				svg, err := svc.SVG(cmd.Context(), c.ID)
				if err != nil {
					return err
				}
				path := filepath.Join(outDir, c.ID+".svg")
				if err := os.WriteFile(path, svg, 0644); err != nil {
					return fmt.Errorf("failed to write %s: %w", path, err)
				}
				fmt.Fprintln(cmd.OutOrStdout(), path)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&outDir, "out", "charts", "Output directory")
	return cmd
}

func newPageCmd(opts *globalOptions) *cobra.Command {
	var outPath string
	cmd := &cobra.Command{
		Use:   "page",
		Short: "Write the assembled dashboard page",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			start := time.Now()
			svc, err := opts.build(cmd.Context())
			if err != nil {
				return err
			}
			page, err := svc.Page(cmd.Context())
			if err != nil {
				return err
			}

			if err := opts.validator.ValidateOutputDirectory(filepath.Dir(outPath)); err != nil {
				return err
			}
			if err := os.WriteFile(outPath, page, 0644); err != nil {
				return fmt.Errorf("failed to write %s: %w", outPath, err)
			}

			fmt.Fprintln(cmd.OutOrStdout(), outPath)
			opts.logger.Info("page written",
				slog.String("path", outPath),
				slog.Int("bytes", len(page)),
				slog.Duration("duration", time.Since(start)))
			return nil
		},
	}
	cmd.Flags().StringVar(&outPath, "out", "dashboard.html", "Output HTML file")
	return cmd
}
