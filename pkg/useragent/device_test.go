package useragent

import (
	"net/http/httptest"
	"runtime"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestString(t *testing.T) {
	assert.True(t, strings.HasPrefix(String(), "photoshare/"))
	assert.True(t, strings.HasSuffix(String(), "("+runtime.GOOS+")"))
}

func TestDescribe(t *testing.T) {
	tests := map[string]string{
		"":                           "unknown client",
		"photoshare/1.2.0 (linux)":   "photoshare 1.2.0 on linux",
		"photoshare/dev":             "photoshare dev",
		"Go-http-client/1.1":         "Go HTTP client",
		"Mozilla/5.0 (X11; Linux x86_64; rv:120.0) Gecko/20100101 Firefox/120.0": "Firefox on Linux",
		"Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/17.0 Safari/605.1.15": "Safari on macOS",
		"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0 Safari/537.36 Edg/120.0": "Edge on Windows",
	}
	for ua, want := range tests {
		req := httptest.NewRequest("GET", "/", nil)
		if ua != "" {
			req.Header.Set("User-Agent", ua)
		}
		assert.Equal(t, want, Describe(req), ua)
	}
}
