package export

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tealeg/xlsx/v2"

	"github.com/sells-group/company-scraper/internal/model"
)

var runAt = time.Date(2026, 10, 19, 9, 30, 0, 0, time.UTC)

func sampleResults() []*model.ExtractionResult {
	return []*model.ExtractionResult{
		{
			CompanyID:      7,
			CompanyName:    "Helios Grid",
			CompanyWebsite: "https://helios.example",
			Sector:         "Solar Energy",
			Description:    "Helios Grid builds utility-scale solar farms across Texas and the Gulf coast.",
			Offices: []model.Office{
				{Location: "Austin, TX", Address: "Austin, TX", IsHQ: true},
				{Location: "Houston, TX", Address: "Houston, TX"},
			},
			Clients:         []string{"Blue Ridge Power", "Lone Star Utilities"},
			News:            []model.NewsItem{{Title: "Helios opens Houston office", Date: "2026-09-01", URL: "https://helios.example/news/1", Summary: "New office..."}},
			ScrapeTimestamp: "2026-10-19T09:30:00Z",
			QualityGrade:    model.GradeExcellent,
		},
		nil,
		{
			CompanyID:       9,
			CompanyName:     "Zürich Wärme & Co",
			CompanyWebsite:  "https://zuerich.example",
			Offices:         []model.Office{},
			Clients:         []string{},
			News:            []model.NewsItem{},
			ScrapeTimestamp: "2026-10-19T09:31:00Z",
			QualityGrade:    model.GradeFailed,
		},
	}
}

func TestFlatten(t *testing.T) {
	tables := Flatten(sampleResults(), runAt)

	require.Len(t, tables.Companies, 2)
	assert.Equal(t, "Excellent", tables.Companies[0].DataQuality)

	require.Len(t, tables.Offices, 2)
	assert.Equal(t, "7_office_1", tables.Offices[0].OfficeID)
	assert.Equal(t, "7_office_2", tables.Offices[1].OfficeID)
	assert.True(t, tables.Offices[0].IsHQ)

	require.Len(t, tables.Clients, 2)
	assert.Equal(t, "7_client_2", tables.Clients[1].ClientID)
	assert.Equal(t, "Lone Star Utilities", tables.Clients[1].ClientName)

	require.Len(t, tables.News, 1)
	assert.Equal(t, "7_news_1", tables.News[0].NewsID)

	assert.Equal(t, Summary{
		TotalCompanies: 2,
		TotalOffices:   2,
		TotalClients:   2,
		TotalNews:      1,
		RunTimestamp:   "2026-10-19T09:30:00Z",
	}, tables.Summary)
}

func TestFlatten_Empty(t *testing.T) {
	tables := Flatten(nil, runAt)
	assert.Empty(t, tables.Companies)
	assert.Equal(t, 0, tables.Summary.TotalCompanies)
}

func TestWriteXLSX(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.xlsx")
	require.NoError(t, WriteXLSX(path, Flatten(sampleResults(), runAt)))

	f, err := xlsx.OpenFile(path)
	require.NoError(t, err)

	var names []string
	for _, s := range f.Sheets {
		names = append(names, s.Name)
	}
	assert.Equal(t, []string{SheetCompanies, SheetOffices, SheetClients, SheetNews, SheetSummary}, names)

	companies := f.Sheet[SheetCompanies]
	require.Len(t, companies.Rows, 3)
	assert.Equal(t, "company_id", companies.Rows[0].Cells[0].String())
	assert.Equal(t, "7", companies.Rows[1].Cells[0].String())
	assert.Equal(t, "Zürich Wärme & Co", companies.Rows[2].Cells[1].String())

	offices := f.Sheet[SheetOffices]
	require.Len(t, offices.Rows, 3)
	assert.Equal(t, "7_office_2", offices.Rows[2].Cells[1].String())
	assert.True(t, offices.Rows[1].Cells[4].Bool())

	summary := f.Sheet[SheetSummary]
	require.Len(t, summary.Rows, 2)
	assert.Equal(t, "2", summary.Rows[1].Cells[0].String())
	assert.Equal(t, "2026-10-19T09:30:00Z", summary.Rows[1].Cells[4].String())
}

func TestWriteXLSX_SkipsEmptySheets(t *testing.T) {
	results := sampleResults()[2:]
	path := filepath.Join(t.TempDir(), "out.xlsx")
	require.NoError(t, WriteXLSX(path, Flatten(results, runAt)))

	f, err := xlsx.OpenFile(path)
	require.NoError(t, err)

	assert.Contains(t, f.Sheet, SheetCompanies)
	assert.Contains(t, f.Sheet, SheetSummary)
	assert.NotContains(t, f.Sheet, SheetOffices)
	assert.NotContains(t, f.Sheet, SheetClients)
	assert.NotContains(t, f.Sheet, SheetNews)
}

func TestWriteXLSX_BadPath(t *testing.T) {
	err := WriteXLSX(filepath.Join(t.TempDir(), "missing", "out.xlsx"), Flatten(nil, runAt))
	assert.Error(t, err)
}

func TestWriteJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.json")
	require.NoError(t, WriteJSON(path, sampleResults()[:1]))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "[\n  {"))
	assert.Contains(t, string(data), `"data_quality": "Excellent"`)
	assert.Contains(t, string(data), `"is_headquarters": true`)

	var decoded []model.ExtractionResult
	require.NoError(t, json.Unmarshal(data, &decoded))
	require.Len(t, decoded, 1)
	assert.Equal(t, "Helios Grid", decoded[0].CompanyName)
}

func TestWriteJSON_PreservesText(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.json")
	require.NoError(t, WriteJSON(path, sampleResults()[2:]))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "Zürich Wärme & Co")
	assert.NotContains(t, string(data), `\u0026`)
}

func TestWriteJSON_Nil(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.json")
	require.NoError(t, WriteJSON(path, nil))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "[]\n", string(data))
}
