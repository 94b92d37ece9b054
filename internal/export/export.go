// Package export flattens extraction results into relational tables and
// writes them as a multi-sheet workbook and a JSON backup.
package export

import (
	"fmt"
	"time"

	"github.com/sells-group/company-scraper/internal/model"
)

// CompanyRow is one line of the Companies sheet.
type CompanyRow struct {
	CompanyID       int
	CompanyName     string
	CompanyWebsite  string
	Sector          string
	Description     string
	DataQuality     string
	ScrapeTimestamp string
}

// OfficeRow is one line of the Offices sheet.
type OfficeRow struct {
	CompanyID int
	OfficeID  string
	Location  string
	Address   string
	IsHQ      bool
}

// ClientRow is one line of the Clients sheet.
type ClientRow struct {
	CompanyID  int
	ClientID   string
	ClientName string
}

// NewsRow is one line of the News sheet.
type NewsRow struct {
	CompanyID int
	NewsID    string
	Title     string
	Date      string
	URL       string
	Summary   string
}

// Summary totals a batch.
type Summary struct {
	TotalCompanies int
	TotalOffices   int
	TotalClients   int
	TotalNews      int
	RunTimestamp   string
}

// Tables is the relational view of a batch of results.
type Tables struct {
	Companies []CompanyRow
	Offices   []OfficeRow
	Clients   []ClientRow
	News      []NewsRow
	Summary   Summary
}

// Flatten converts results into rows. Child rows get 1-based composite ids
// such as "7_office_2". Nil results are skipped.
func Flatten(results []*model.ExtractionResult, now time.Time) Tables {
	var t Tables
	for _, r := range results {
		if r == nil {
			continue
		}
		t.Companies = append(t.Companies, CompanyRow{
			CompanyID:       r.CompanyID,
			CompanyName:     r.CompanyName,
			CompanyWebsite:  r.CompanyWebsite,
			Sector:          r.Sector,
			Description:     r.Description,
			DataQuality:     string(r.QualityGrade),
			ScrapeTimestamp: r.ScrapeTimestamp,
		})
		for i, o := range r.Offices {
			t.Offices = append(t.Offices, OfficeRow{
				CompanyID: r.CompanyID,
				OfficeID:  childID(r.CompanyID, "office", i),
				Location:  o.Location,
				Address:   o.Address,
				IsHQ:      o.IsHQ,
			})
		}
		for i, c := range r.Clients {
			t.Clients = append(t.Clients, ClientRow{
				CompanyID:  r.CompanyID,
				ClientID:   childID(r.CompanyID, "client", i),
				ClientName: c,
			})
		}
		for i, n := range r.News {
			t.News = append(t.News, NewsRow{
				CompanyID: r.CompanyID,
				NewsID:    childID(r.CompanyID, "news", i),
				Title:     n.Title,
				Date:      n.Date,
				URL:       n.URL,
				Summary:   n.Summary,
			})
		}
	}
	t.Summary = Summary{
		TotalCompanies: len(t.Companies),
		TotalOffices:   len(t.Offices),
		TotalClients:   len(t.Clients),
		TotalNews:      len(t.News),
		RunTimestamp:   now.Format(time.RFC3339),
	}
	return t
}

func childID(companyID int, kind string, i int) string {
	return fmt.Sprintf("%d_%s_%d", companyID, kind, i+1)
}
