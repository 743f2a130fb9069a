package pinger

import "time"

// StatusAwake is the only status a successful run reports.
const StatusAwake = "awake"

// Config controls a single ping run.
type Config struct {
	// NavigationTimeout bounds loading the page until the network is quiet.
	NavigationTimeout time.Duration

	// RenderDelay gives a sleep banner time to render after load.
	RenderDelay time.Duration

	// SettleDelay gives the app time to resume after the wake control is clicked.
	SettleDelay time.Duration

	// ActionTimeout bounds each of the lookup, click and screenshot steps.
	ActionTimeout time.Duration

	// Selectors are CSS selectors for known wake-up controls. The first
	// element in document order matching any of them is clicked. Only
	// standard CSS works since the browser runs the click lookup.
	Selectors []string

	// ScreenshotPath is where the full-page PNG is written.
	ScreenshotPath string
}

// DefaultSelectors covers the wake-up buttons rendered by common free-tier
// hosts.
var DefaultSelectors = []string{
	`button[data-testid="wakeup-button-owner"]`,
	`button[data-testid="wakeup-button-viewer"]`,
	`button[data-testid="wakeup-button"]`,
	`#wake-up-button`,
	`button.wakeup-button`,
}

// DefaultConfig returns the fixed timings of the original workflow script.
func DefaultConfig() Config {
	return Config{
		NavigationTimeout: 30 * time.Second,
		RenderDelay:       2 * time.Second,
		SettleDelay:       5 * time.Second,
		ActionTimeout:     30 * time.Second,
		Selectors:         append([]string(nil), DefaultSelectors...),
		ScreenshotPath:    "screenshot.png",
	}
}
