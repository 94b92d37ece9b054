package main

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/company-scraper/internal/config"
	"github.com/sells-group/company-scraper/internal/model"
	"github.com/sells-group/company-scraper/internal/pipeline"
)

func TestWriteResult_JSON(t *testing.T) {
	r := pipeline.Fallback(model.CompanyMeta{ID: 3, Name: "Acme & Sons", Website: "https://acme.example", Sector: "Solar Energy", ExpectedHQ: "India"}, fixedNow)

	var out bytes.Buffer
	require.NoError(t, writeResult(&out, r, false))
	assert.True(t, strings.HasPrefix(out.String(), "{\n  \"company_id\": 3"))
	assert.Contains(t, out.String(), "Acme & Sons")

	var decoded model.ExtractionResult
	require.NoError(t, json.Unmarshal(out.Bytes(), &decoded))
	assert.Equal(t, model.GradeFallback, decoded.QualityGrade)
}

func TestWriteResult_Report(t *testing.T) {
	r := pipeline.Fallback(model.CompanyMeta{ID: 3, Name: "Acme", Website: "https://acme.example"}, fixedNow)

	var out bytes.Buffer
	require.NoError(t, writeResult(&out, r, true))
	assert.Equal(t, pipeline.FormatReport(r), out.String())
}

func TestBuildPipeline(t *testing.T) {
	c := &config.Config{}
	c.Fetch.TimeoutSecs = 5
	c.Fetch.MaxAttempts = 1
	c.Scrape.Engines = []string{"colly", "local"}
	c.Scrape.ExcludePaths = []string{"/careers/*"}
	c.Extract.MaxSubpages = 1

	p, err := buildPipeline(c)
	require.NoError(t, err)
	assert.NotNil(t, p)

	c.Scrape.Engines = []string{"headless"}
	_, err = buildPipeline(c)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown engine")
}
