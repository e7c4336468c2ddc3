package audit

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifyUserAgent(t *testing.T) {
	cases := []struct {
		name    string
		ua      string
		device  string
		browser string
		osType  string
	}{
		{
			name:    "windows chrome",
			ua:      "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 Chrome/120.0.0.0 Safari/537.36",
			device:  "desktop",
			browser: "Chrome",
			osType:  "Windows",
		},
		{
			name:    "android mobile chrome",
			ua:      "Mozilla/5.0 (Linux; Android 14; Pixel 8) AppleWebKit/537.36 Chrome/120.0.0.0 Mobile Safari/537.36",
			device:  "mobile",
			browser: "Chrome",
			osType:  "Android",
		},
		{
			name:    "iphone safari",
			ua:      "Mozilla/5.0 (iPhone; CPU iPhone OS 17_0 like Mac OS X) AppleWebKit/605.1.15 Version/17.0 Mobile/15E148 Safari/604.1",
			device:  "mobile",
			browser: "Safari",
			osType:  "iOS",
		},
		{
			name:    "ipad tablet",
			ua:      "Mozilla/5.0 (iPad; CPU OS 17_0 like Mac OS X) AppleWebKit/605.1.15 Safari/604.1",
			device:  "tablet",
			browser: "Safari",
			osType:  "iOS",
		},
		{
			name:    "edge on windows",
			ua:      "Mozilla/5.0 (Windows NT 10.0) AppleWebKit/537.36 Chrome/120.0.0.0 Safari/537.36 Edg/120.0.0.0",
			device:  "desktop",
			browser: "Edge",
			osType:  "Windows",
		},
		{
			name:    "firefox on linux",
			ua:      "Mozilla/5.0 (X11; Linux x86_64; rv:121.0) Gecko/20100101 Firefox/121.0",
			device:  "desktop",
			browser: "Firefox",
			osType:  "Linux",
		},
		{
			name:   "curl is desktop with unknown browser",
			ua:     "curl/8.4.0",
			device: "desktop",
		},
		{
			name: "empty agent",
			ua:   "",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			device, browser, osType := ClassifyUserAgent(tc.ua)
			assert.Equal(t, tc.device, device)
			assert.Equal(t, tc.browser, browser)
			assert.Equal(t, tc.osType, osType)
		})
	}
}
