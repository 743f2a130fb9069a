// Package testutil provides shared test doubles for use across package tests.
// All dummies implement the corresponding interfaces from the production code,
// allowing injection into components under test without a real browser.
package testutil

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/raysh454/appwake/internal/browser"
	"github.com/raysh454/appwake/internal/logging"
)

// ─── Logger ────────────────────────────────────────────────────────────

// DummyLogger implements logging.Logger with in-memory recording. Each
// recorded entry is the message followed by its field values.
type DummyLogger struct {
	mu     sync.Mutex
	Errors []string
	Infos  []string
	Debugs []string
	Warns  []string
}

func render(msg string, fields []logging.Field) string {
	var b strings.Builder
	b.WriteString(msg)
	for _, f := range fields {
		b.WriteString(" ")
		b.WriteString(f.Key)
		b.WriteString("=")
		if s, ok := f.Value.(string); ok {
			b.WriteString(s)
		}
	}
	return b.String()
}

func (l *DummyLogger) Debug(msg string, fields ...logging.Field) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.Debugs = append(l.Debugs, render(msg, fields))
}

func (l *DummyLogger) Info(msg string, fields ...logging.Field) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.Infos = append(l.Infos, render(msg, fields))
}

func (l *DummyLogger) Warn(msg string, fields ...logging.Field) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.Warns = append(l.Warns, render(msg, fields))
}

func (l *DummyLogger) Error(msg string, fields ...logging.Field) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.Errors = append(l.Errors, render(msg, fields))
}

func (l *DummyLogger) With(_ ...logging.Field) logging.Logger { return l }

// ErrorLines returns a copy of the recorded error entries.
func (l *DummyLogger) ErrorLines() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]string(nil), l.Errors...)
}

// ─── Browser ───────────────────────────────────────────────────────────

// DummySession implements browser.Session over a fixed page.
// Set the *Err fields to force a step to fail. NavigateDelay makes
// Navigate block until the delay passes or ctx is done.
type DummySession struct {
	Page          string
	Shot          []byte
	NavigateDelay time.Duration

	NavigateErr   error
	HTMLErr       error
	ClickErr      error
	ScreenshotErr error
	CloseErr      error

	mu      sync.Mutex
	Visited []string
	Clicks  []string
	Shots   int
	Closes  int
}

var _ browser.Session = (*DummySession)(nil)

func (d *DummySession) Navigate(ctx context.Context, url string) error {
	if d.NavigateDelay > 0 {
		select {
		case <-time.After(d.NavigateDelay):
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	d.mu.Lock()
	d.Visited = append(d.Visited, url)
	d.mu.Unlock()
	return d.NavigateErr
}

func (d *DummySession) HTML(context.Context) (string, error) {
	if d.HTMLErr != nil {
		return "", d.HTMLErr
	}
	return d.Page, nil
}

func (d *DummySession) Click(_ context.Context, selector string) error {
	d.mu.Lock()
	d.Clicks = append(d.Clicks, selector)
	d.mu.Unlock()
	return d.ClickErr
}

func (d *DummySession) Screenshot(context.Context) ([]byte, error) {
	if d.ScreenshotErr != nil {
		return nil, d.ScreenshotErr
	}
	d.mu.Lock()
	d.Shots++
	d.mu.Unlock()
	if d.Shot == nil {
		return []byte("\x89PNG\r\n\x1a\n"), nil
	}
	return d.Shot, nil
}

func (d *DummySession) Close() error {
	d.mu.Lock()
	d.Closes++
	d.mu.Unlock()
	return d.CloseErr
}

// Opener returns a browser.Opener that always hands out d.
func (d *DummySession) Opener() browser.Opener {
	return func(context.Context) (browser.Session, error) { return d, nil }
}

// FailingOpener returns a browser.Opener that always fails with err.
func FailingOpener(err error) browser.Opener {
	return func(context.Context) (browser.Session, error) { return nil, err }
}
