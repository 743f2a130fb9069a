package browser

import "time"

// Config controls how the headless browser is launched.
type Config struct {
	// Headless runs Chrome without a window. Turn off for local debugging.
	Headless bool

	// ExecPath overrides the Chrome binary; empty means chromedp's lookup.
	ExecPath string

	// NoSandbox disables the Chrome sandbox, needed in most CI containers.
	NoSandbox bool

	WindowWidth  int
	WindowHeight int

	// UserAgent overrides the browser user agent when non-empty.
	UserAgent string

	// IdleAfter is how long the network must stay quiet before a page
	// counts as loaded.
	IdleAfter time.Duration
}

// DefaultConfig returns a Config suited to CI runners.
func DefaultConfig() Config {
	return Config{
		Headless:     true,
		NoSandbox:    true,
		WindowWidth:  1366,
		WindowHeight: 900,
		IdleAfter:    500 * time.Millisecond,
	}
}
