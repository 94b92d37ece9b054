package pipeline

import (
	"fmt"
	"io"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/sells-group/company-scraper/internal/model"
	"github.com/sells-group/company-scraper/internal/scorer"
)

// FormatReport renders one profile as a human-readable report.
func FormatReport(r *model.ExtractionResult) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# %s (%d)\n", r.CompanyName, r.CompanyID)
	fmt.Fprintf(&b, "URL: %s\n", r.CompanyWebsite)
	fmt.Fprintf(&b, "Sector: %s\n", r.Sector)
	fmt.Fprintf(&b, "Quality: %s\n", r.QualityGrade)
	fmt.Fprintf(&b, "Scraped: %s\n\n", r.ScrapeTimestamp)

	b.WriteString("## Description\n")
	b.WriteString(r.Description)
	b.WriteString("\n\n")

	b.WriteString("## Offices\n")
	if len(r.Offices) == 0 {
		b.WriteString("None found.\n")
	}
	for _, o := range r.Offices {
		hq := ""
		if o.IsHQ {
			hq = " [HQ]"
		}
		fmt.Fprintf(&b, "- %s%s\n", o.Location, hq)
	}
	b.WriteString("\n")

	b.WriteString("## Clients\n")
	if len(r.Clients) == 0 {
		b.WriteString("None found.\n")
	}
	for _, c := range r.Clients {
		fmt.Fprintf(&b, "- %s\n", c)
	}
	b.WriteString("\n")

	b.WriteString("## News\n")
	for _, n := range r.News {
		fmt.Fprintf(&b, "- %s (%s) %s\n", n.Title, n.Date, n.URL)
	}

	if e := r.Evidence; e != nil {
		b.WriteString("\n## Evidence\n")
		fmt.Fprintf(&b, "- description: %s\n", orDefault(e.Description, "none"))
		fmt.Fprintf(&b, "- offices: %s\n", orDefault(e.Offices, "none"))
		fmt.Fprintf(&b, "- clients: %s\n", orDefault(e.Clients, "none"))
		fmt.Fprintf(&b, "- news: %s\n", orDefault(e.News, "none"))
	}

	return b.String()
}

// WriteQualitySummary renders the per-grade counts of a run as a table.
func WriteQualitySummary(w io.Writer, results []*model.ExtractionResult) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetTitle("Data Quality Summary")
	t.AppendHeader(table.Row{"Grade", "Companies"})
	for _, gc := range scorer.Summarize(results) {
		t.AppendRow(table.Row{gc.Grade, gc.Count})
	}
	t.AppendFooter(table.Row{"Total", len(results)})
	t.Render()
}

// WriteResultsTable renders one row per profile.
func WriteResultsTable(w io.Writer, results []*model.ExtractionResult) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.AppendHeader(table.Row{"ID", "Company", "Sector", "Quality", "Offices", "Clients", "News", "Scraped"})
	for _, r := range results {
		t.AppendRow(table.Row{
			r.CompanyID, r.CompanyName, r.Sector, r.QualityGrade,
			len(r.Offices), len(r.Clients), len(r.News), r.ScrapeTimestamp,
		})
	}
	t.Render()
}
