package scrape

import (
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDetectBlock(t *testing.T) {
	cf := http.Header{}
	cf.Set("cf-ray", "abc123")

	bigContact := "<html><body>" + strings.Repeat("<p>Contact our team today.</p>", 400) +
		`<script src="https://www.google.com/recaptcha/api.js"></script></body></html>`

	tests := []struct {
		name   string
		status int
		header http.Header
		body   string
		want   BlockType
	}{
		{"cloudflare header", 403, cf, "denied", BlockCloudflare},
		{"cloudflare body", 200, http.Header{}, "<h1>Checking your browser before accessing</h1>", BlockCloudflare},
		{"captcha wall", 200, http.Header{}, "<form>Please solve the CAPTCHA</form>", BlockCaptcha},
		{"contact form with recaptcha", 200, http.Header{}, bigContact, BlockNone},
		{"normal page", 200, http.Header{}, "<html><body>Hello</body></html>", BlockNone},
		{"403 without cloudflare", 403, http.Header{}, "forbidden", BlockNone},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			blocked, kind := DetectBlock(tt.status, tt.header, []byte(tt.body))
			assert.Equal(t, tt.want != BlockNone, blocked)
			assert.Equal(t, tt.want, kind)
		})
	}
}
