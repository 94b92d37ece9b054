package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/sells-group/company-scraper/internal/model"
	"github.com/sells-group/company-scraper/internal/pipeline"
	"github.com/sells-group/company-scraper/internal/store"
)

var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "Inspect stored extraction results",
}

// -- runs list --

var runsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored extraction results",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()

		if err := cfg.Validate("runs"); err != nil {
			return err
		}

		grade, _ := cmd.Flags().GetString("grade")
		runID, _ := cmd.Flags().GetString("run")
		limit, _ := cmd.Flags().GetInt("limit")

		filter := store.ResultFilter{RunID: runID, Limit: limit}
		if grade != "" {
			g, ok := model.ParseGrade(grade)
			if !ok {
				return eris.Errorf("runs list: unknown grade %q", grade)
			}
			filter.Grade = g
		}

		st, err := openStore(ctx, cfg)
		if err != nil {
			return err
		}
		defer st.Close() //nolint:errcheck

		return listResults(ctx, st, filter, os.Stdout)
	},
}

// listResults renders the stored results matching filter to w.
func listResults(ctx context.Context, st store.Store, filter store.ResultFilter, w io.Writer) error {
	records, err := st.ListResults(ctx, filter)
	if err != nil {
		return eris.Wrap(err, "runs list")
	}
	if len(records) == 0 {
		fmt.Fprintln(os.Stderr, "No results found.")
		return nil
	}

	results := make([]*model.ExtractionResult, len(records))
	for i := range records {
		results[i] = &records[i].Result
	}
	pipeline.WriteResultsTable(w, results)
	return nil
}

func init() {
	runsListCmd.Flags().String("grade", "", "filter by quality grade (Excellent, Good, Fair, Poor, Failed, Fallback)")
	runsListCmd.Flags().String("run", "", "filter by run id")
	runsListCmd.Flags().Int("limit", store.DefaultListLimit, "max results to list")

	runsCmd.AddCommand(runsListCmd)
	rootCmd.AddCommand(runsCmd)
}
