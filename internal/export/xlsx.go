package export

import (
	"github.com/rotisserie/eris"
	"github.com/tealeg/xlsx/v2"
)

// Sheet names in the exported workbook.
const (
	SheetCompanies = "Companies"
	SheetOffices   = "Offices"
	SheetClients   = "Clients"
	SheetNews      = "News"
	SheetSummary   = "Summary"
)

// WriteXLSX saves t as a workbook at path. Offices, Clients and News sheets
// are only written when they have rows; Companies and Summary always are.
func WriteXLSX(path string, t Tables) error {
	f := xlsx.NewFile()

	companies, err := addSheet(f, SheetCompanies,
		"company_id", "company_name", "company_website", "sector", "description", "data_quality", "scrape_timestamp")
	if err != nil {
		return err
	}
	for _, c := range t.Companies {
		addRow(companies, c.CompanyID, c.CompanyName, c.CompanyWebsite, c.Sector, c.Description, c.DataQuality, c.ScrapeTimestamp)
	}

	if len(t.Offices) > 0 {
		sheet, err := addSheet(f, SheetOffices, "company_id", "office_id", "location", "address", "is_headquarters")
		if err != nil {
			return err
		}
		for _, o := range t.Offices {
			addRow(sheet, o.CompanyID, o.OfficeID, o.Location, o.Address, o.IsHQ)
		}
	}

	if len(t.Clients) > 0 {
		sheet, err := addSheet(f, SheetClients, "company_id", "client_id", "client_name")
		if err != nil {
			return err
		}
		for _, c := range t.Clients {
			addRow(sheet, c.CompanyID, c.ClientID, c.ClientName)
		}
	}

	if len(t.News) > 0 {
		sheet, err := addSheet(f, SheetNews, "company_id", "news_id", "news_title", "news_date", "news_url", "news_summary")
		if err != nil {
			return err
		}
		for _, n := range t.News {
			addRow(sheet, n.CompanyID, n.NewsID, n.Title, n.Date, n.URL, n.Summary)
		}
	}

	summary, err := addSheet(f, SheetSummary,
		"Total Companies", "Total Offices", "Total Clients", "Total News Items", "Scrape Date")
	if err != nil {
		return err
	}
	s := t.Summary
	addRow(summary, s.TotalCompanies, s.TotalOffices, s.TotalClients, s.TotalNews, s.RunTimestamp)

	if err := f.Save(path); err != nil {
		return eris.Wrapf(err, "export: save %s", path)
	}
	return nil
}

func addSheet(f *xlsx.File, name string, header ...string) (*xlsx.Sheet, error) {
	sheet, err := f.AddSheet(name)
	if err != nil {
		return nil, eris.Wrapf(err, "export: add sheet %s", name)
	}
	row := sheet.AddRow()
	for _, h := range header {
		row.AddCell().SetString(h)
	}
	return sheet, nil
}

func addRow(sheet *xlsx.Sheet, values ...any) {
	row := sheet.AddRow()
	for _, v := range values {
		cell := row.AddCell()
		switch v := v.(type) {
		case int:
			cell.SetInt(v)
		case bool:
			cell.SetBool(v)
		case string:
			cell.SetString(v)
		default:
			cell.SetValue(v)
		}
	}
}
