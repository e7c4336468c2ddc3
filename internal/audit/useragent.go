package audit

import "strings"

// ClassifyUserAgent derives a coarse device type, browser and OS from a
// raw User-Agent header. It only needs to be good enough for the login
// statistics breakdown, so unknown agents fall through to empty fields.
func ClassifyUserAgent(ua string) (deviceType, browser, osType string) {
	lower := strings.ToLower(ua)

	switch {
	case strings.Contains(lower, "ipad") || strings.Contains(lower, "tablet"):
		deviceType = "tablet"
	case strings.Contains(lower, "mobile") || strings.Contains(lower, "iphone") || strings.Contains(lower, "android"):
		deviceType = "mobile"
	case lower != "":
		deviceType = "desktop"
	}

	switch {
	case strings.Contains(lower, "edg/"):
		browser = "Edge"
	case strings.Contains(lower, "opr/") || strings.Contains(lower, "opera"):
		browser = "Opera"
	case strings.Contains(lower, "chrome/"):
		browser = "Chrome"
	case strings.Contains(lower, "firefox/"):
		browser = "Firefox"
	case strings.Contains(lower, "safari/"):
		browser = "Safari"
	}

	switch {
	case strings.Contains(lower, "windows"):
		osType = "Windows"
	case strings.Contains(lower, "android"):
		osType = "Android"
	case strings.Contains(lower, "iphone") || strings.Contains(lower, "ipad") || strings.Contains(lower, "ios"):
		osType = "iOS"
	case strings.Contains(lower, "mac os"):
		osType = "macOS"
	case strings.Contains(lower, "linux"):
		osType = "Linux"
	}

	return deviceType, browser, osType
}
