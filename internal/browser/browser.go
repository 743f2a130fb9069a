// Package browser provides the headless browser session used to load and
// interact with a single page.
package browser

import "context"

// Session is one exclusively owned browser tab. Implementations must be
// safe to Close more than once.
type Session interface {
	// Navigate loads url and returns once the network has gone quiet.
	Navigate(ctx context.Context, url string) error

	// HTML returns the rendered document markup.
	HTML(ctx context.Context) (string, error)

	// Click clicks the first element matching the CSS selector.
	Click(ctx context.Context, selector string) error

	// Screenshot captures the full page as PNG.
	Screenshot(ctx context.Context) ([]byte, error)

	Close() error
}

// Opener acquires a new Session.
type Opener func(ctx context.Context) (Session, error)
