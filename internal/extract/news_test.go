package extract

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/company-scraper/internal/model"
)

func articles(prefix string, n int) string {
	var b strings.Builder
	for i := 1; i <= n; i++ {
		fmt.Fprintf(&b, `<article><h2>%s headline %d</h2><a href="post-%d">more</a></article>`, prefix, i, i)
	}
	return b.String()
}

func TestNews_SubpagesThenMainPage(t *testing.T) {
	e, f := newTestExtractor(map[string]string{
		site + "/press/": `<html><body>` + articles("Press", 1) + `</body></html>`,
	})
	doc := mustDoc(t, `<html><body>
		<a href="/press/">Press Releases</a>
		<a href="/careers">Careers</a>
		`+articles("Home", 1)+`
	</body></html>`)

	out := e.News(context.Background(), doc, model.CompanyMeta{Website: site})

	assert.Equal(t, []string{site + "/press/"}, f.calls)
	assert.Equal(t, "articles", out.Strategy)
	require.Len(t, out.Value, 2)
	assert.Equal(t, "Press headline 1", out.Value[0].Title)
	assert.Equal(t, site+"/press/post-1", out.Value[0].URL, "sub-page links resolve against the sub-page")
	assert.Equal(t, "Home headline 1", out.Value[1].Title)
	assert.Equal(t, site+"/post-1", out.Value[1].URL)
}

func TestNews_CapsAtFive(t *testing.T) {
	e, _ := newTestExtractor(map[string]string{
		site + "/blog": `<html><body>` + articles("Blog", 5) + `</body></html>`,
	})
	doc := mustDoc(t, `<html><body><a href="/blog">Blog</a>`+articles("Home", 3)+`</body></html>`)

	out := e.News(context.Background(), doc, model.CompanyMeta{Website: site})
	require.Len(t, out.Value, 5)
	for _, n := range out.Value {
		assert.True(t, strings.HasPrefix(n.Title, "Blog"), n.Title)
	}
}

func TestNews_FollowsAtMostTwoLinks(t *testing.T) {
	e, f := newTestExtractor(nil)
	doc := mustDoc(t, `<html><body>
		<a href="/news">News</a>
		<a href="/media">Media Kit</a>
		<a href="/updates">Product Updates</a>
	</body></html>`)

	e.News(context.Background(), doc, model.CompanyMeta{Website: site})
	assert.Equal(t, []string{site + "/news", site + "/media"}, f.calls)
}

func TestNews_Synthesized(t *testing.T) {
	e, _ := newTestExtractor(nil)
	doc := mustDoc(t, `<html><head><title>Acme Solar | Home</title></head><body><p>hi</p></body></html>`)

	out := e.News(context.Background(), doc, model.CompanyMeta{Website: site})
	assert.Equal(t, "synthesized", out.Strategy)
	assert.Equal(t, []model.NewsItem{{
		Title:   "Latest Updates from Acme Solar",
		Date:    "2026-10-19",
		URL:     site,
		Summary: "Stay updated with the latest developments and innovations from our team.",
	}}, out.Value)
}
