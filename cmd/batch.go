package main

import (
	"context"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/sells-group/company-scraper/internal/export"
	"github.com/sells-group/company-scraper/internal/model"
	"github.com/sells-group/company-scraper/internal/pipeline"
	"github.com/sells-group/company-scraper/internal/roster"
	"github.com/sells-group/company-scraper/internal/store"
)

var (
	batchInput string
	batchLimit int
	batchXLSX  string
	batchJSON  string
)

var batchCmd = &cobra.Command{
	Use:   "batch",
	Short: "Extract profiles for every company in a roster file",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		if batchLimit > 0 {
			cfg.Batch.Limit = batchLimit
		}
		if batchXLSX != "" {
			cfg.Output.XLSX = batchXLSX
		}
		if batchJSON != "" {
			cfg.Output.JSON = batchJSON
		}
		if err := cfg.Validate("batch"); err != nil {
			return err
		}

		companies, err := roster.Load(batchInput)
		if err != nil {
			return err
		}
		if err := roster.Validate(companies); err != nil {
			return err
		}

		p, err := buildPipeline(cfg)
		if err != nil {
			return err
		}

		st, err := openStore(ctx, cfg)
		if err != nil {
			return err
		}
		if st != nil {
			defer st.Close() //nolint:errcheck
		}

		return processBatch(ctx, p, st, companies, batchOptions{
			Limit:    cfg.Batch.Limit,
			XLSXPath: cfg.Output.XLSX,
			JSONPath: cfg.Output.JSON,
			Now:      time.Now,
		}, os.Stdout)
	},
}

func init() {
	batchCmd.Flags().StringVar(&batchInput, "input", "companies.yaml", "roster file (yaml, json, csv or xlsx)")
	batchCmd.Flags().IntVar(&batchLimit, "limit", 0, "max number of companies to process (default from config, 0 = all)")
	batchCmd.Flags().StringVar(&batchXLSX, "xlsx", "", "workbook output path (default from config)")
	batchCmd.Flags().StringVar(&batchJSON, "json", "", "JSON output path (default from config)")
	rootCmd.AddCommand(batchCmd)
}

// batchOptions controls processBatch.
type batchOptions struct {
	Limit    int
	XLSXPath string
	JSONPath string
	Now      func() time.Time
}

// processBatch applies limit, extracts every company in order, then writes
// the workbook, the JSON backup and the store records concurrently before
// printing the quality summary to w. st may be nil.
func processBatch(ctx context.Context, p *pipeline.Pipeline, st store.Store, companies []model.CompanyMeta, opts batchOptions, w io.Writer) error {
	if len(companies) == 0 {
		zap.L().Info("no companies to process")
		return nil
	}

	// Apply limit
	if opts.Limit > 0 && len(companies) > opts.Limit {
		companies = companies[:opts.Limit]
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}

	zap.L().Info("processing batch", zap.Int("companies", len(companies)))

	results := p.RunAll(ctx, companies)
	if len(results) == 0 {
		return eris.Wrap(ctx.Err(), "batch: no companies processed")
	}

	// Outputs are written even when the batch was interrupted.
	runID := store.NewRunID()
	g, gctx := errgroup.WithContext(context.WithoutCancel(ctx))
	if opts.XLSXPath != "" {
		g.Go(func() error {
			return export.WriteXLSX(opts.XLSXPath, export.Flatten(results, opts.Now()))
		})
	}
	if opts.JSONPath != "" {
		g.Go(func() error {
			return export.WriteJSON(opts.JSONPath, results)
		})
	}
	if st != nil {
		g.Go(func() error {
			return persistResults(gctx, st, runID, results)
		})
	}
	if err := g.Wait(); err != nil {
		return eris.Wrap(err, "batch: write outputs")
	}

	zap.L().Info("batch complete",
		zap.String("run_id", runID),
		zap.Int("processed", len(results)),
		zap.Int("requested", len(companies)),
		zap.String("xlsx", opts.XLSXPath),
		zap.String("json", opts.JSONPath),
	)

	pipeline.WriteQualitySummary(w, results)
	return nil
}
