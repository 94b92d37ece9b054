package main

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/sells-group/company-scraper/internal/pipeline"
	"github.com/sells-group/company-scraper/internal/scrape"
	"github.com/sells-group/company-scraper/internal/store"
)

var fixedNow = time.Date(2026, 10, 19, 9, 30, 0, 0, time.UTC)

func fixedClock() time.Time { return fixedNow }

const companyHTML = `<html><head>
<title>Helios Grid | Solar for Business</title>
<meta name="description" content="Helios Grid designs, builds and operates utility-scale solar farms and battery storage for commercial customers across Texas.">
</head><body>
<section class="clients"><img src="a.png" alt="Blue Ridge Power"><img src="b.png" alt="Lone Star Utilities"></section>
<footer>Visit our headquarters at 100 Congress Avenue, Austin, TX 78701</footer>
</body></html>`

// newSiteServer serves a small company homepage at "/".
func newSiteServer(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write([]byte(companyHTML))
	}))
	t.Cleanup(srv.Close)
	return srv
}

// newTestPipeline builds a pipeline over the real local scraper without retries.
func newTestPipeline() *pipeline.Pipeline {
	local := scrape.NewLocalScraper(scrape.LocalOptions{Timeout: 2 * time.Second})
	return pipeline.New(scrape.NewChain(nil, local),
		pipeline.WithClock(fixedClock),
		pipeline.WithMaxSubpages(0),
	)
}

func newTestStore(t *testing.T) store.Store {
	t.Helper()
	st, err := store.Open(context.Background(), store.DriverSQLite, filepath.Join(t.TempDir(), "results.db"))
	require.NoError(t, err)
	require.NotNil(t, st)
	t.Cleanup(func() { st.Close() }) //nolint:errcheck
	require.NoError(t, st.Migrate(context.Background()))
	return st
}
