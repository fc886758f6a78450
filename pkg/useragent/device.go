package useragent

import (
	"fmt"
	"net/http"
	"runtime"
	"strings"
)

const product = "photoshare"

// Version is stamped into the CLI's User-Agent.
var Version = "dev"

// String is the User-Agent the CLI sends, e.g. "photoshare/dev (linux)".
func String() string {
	return fmt.Sprintf("%s/%s (%s)", product, Version, runtime.GOOS)
}

// Describe summarises the caller for request logs: "photoshare dev on
// linux" for the CLI, "Firefox on Linux" for browsers.
func Describe(r *http.Request) string {
	ua := r.Header.Get("User-Agent")
	if ua == "" {
		return "unknown client"
	}

	if rest, ok := strings.CutPrefix(ua, product+"/"); ok {
		version, platform, _ := strings.Cut(rest, " ")
		platform = strings.Trim(platform, "()")
		if platform == "" {
			return product + " " + version
		}
		return product + " " + version + " on " + platform
	}

	browser := "Unknown Browser"
	switch {
	case strings.Contains(ua, "Edg/"):
		browser = "Edge"
	case strings.Contains(ua, "Chrome/"):
		browser = "Chrome"
	case strings.Contains(ua, "Firefox/"):
		browser = "Firefox"
	case strings.Contains(ua, "Safari/"):
		browser = "Safari"
	case strings.HasPrefix(ua, "Go-http-client/"):
		return "Go HTTP client"
	}

	os := "Unknown OS"
	switch {
	case strings.Contains(ua, "Android"):
		os = "Android"
	case strings.Contains(ua, "iPhone") || strings.Contains(ua, "iPad"):
		os = "iOS"
	case strings.Contains(ua, "Windows"):
		os = "Windows"
	case strings.Contains(ua, "Mac OS X") || strings.Contains(ua, "Macintosh"):
		os = "macOS"
	case strings.Contains(ua, "Linux"):
		os = "Linux"
	}
	return browser + " on " + os
}
