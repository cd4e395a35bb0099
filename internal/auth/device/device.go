// Package device turns User-Agent headers into short descriptions for audit events.
package device

import (
	"strings"

	"github.com/mssola/useragent"
)

// ParseUserAgent returns "<browser> on <os>", falling back to "Unknown Device" for an
// empty header.
func ParseUserAgent(userAgent string) string {
	if strings.TrimSpace(userAgent) == "" {
		return "Unknown Device"
	}

	ua := useragent.New(userAgent)
	browser, _ := ua.Browser()
	if browser == "" {
		browser = "Unknown Browser"
	}

	platform := ua.OS()
	if platform == "" {
		platform = ua.Platform()
	}
	if platform == "" {
		platform = "Unknown OS"
	}

	return strings.TrimSpace(browser) + " on " + strings.TrimSpace(platform)
}
