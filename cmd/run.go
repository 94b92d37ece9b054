package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/company-scraper/internal/model"
	"github.com/sells-group/company-scraper/internal/pipeline"
	"github.com/sells-group/company-scraper/internal/store"
)

var (
	runURL    string
	runName   string
	runID     int
	runSector string
	runHQ     string
	runReport bool
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Extract a profile for a single company",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		if err := cfg.Validate("run"); err != nil {
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

		meta := model.CompanyMeta{
			ID:         runID,
			Name:       runName,
			Website:    runURL,
			Sector:     runSector,
			ExpectedHQ: runHQ,
		}
		result := p.Run(ctx, meta)

		if st != nil {
			if err := persistResults(ctx, st, store.NewRunID(), []*model.ExtractionResult{result}); err != nil {
				zap.L().Warn("persist result failed", zap.Error(err))
			}
		}

		return writeResult(os.Stdout, result, runReport)
	},
}

// writeResult prints result as indented JSON, or as a markdown report.
func writeResult(w io.Writer, result *model.ExtractionResult, report bool) error {
	if report {
		_, err := fmt.Fprint(w, pipeline.FormatReport(result))
		return eris.Wrap(err, "write report")
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return eris.Wrap(enc.Encode(result), "write result")
}

func init() {
	runCmd.Flags().StringVar(&runURL, "url", "", "company website URL (required)")
	runCmd.Flags().StringVar(&runName, "name", "", "company name (required)")
	runCmd.Flags().IntVar(&runID, "id", 1, "company id")
	runCmd.Flags().StringVar(&runSector, "sector", "", "company sector, selects description selectors")
	runCmd.Flags().StringVar(&runHQ, "hq", "", "expected headquarters location")
	runCmd.Flags().BoolVar(&runReport, "report", false, "print a markdown report instead of JSON")
	_ = runCmd.MarkFlagRequired("url")
	_ = runCmd.MarkFlagRequired("name")
	rootCmd.AddCommand(runCmd)
}
