// Package pinger wakes a suspended hosted app: it loads the page in a
// headless browser, clicks the wake-up control if the app is asleep and
// captures a screenshot of the result.
package pinger

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/raysh454/appwake/internal/browser"
	"github.com/raysh454/appwake/internal/logging"
)

// Result describes a successful run.
type Result struct {
	Status          string
	URL             string
	WokeUp          bool
	MatchedSelector string
	ScreenshotPath  string
	State           State
	Duration        time.Duration
}

// Runner performs one detect-and-wake sequence per Ping call. It keeps no
// state between calls.
type Runner struct {
	cfg    Config
	open   browser.Opener
	logger logging.Logger
}

// New creates a Runner. open is called once per Ping to acquire a browser.
func New(cfg Config, open browser.Opener, logger logging.Logger) *Runner {
	return &Runner{
		cfg:    cfg,
		open:   open,
		logger: logger.With(logging.F("component", "pinger")),
	}
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Ping runs the sequence against url. The browser is released on every
// path. Any failure is logged and returned as *PingError.
func (r *Runner) Ping(ctx context.Context, url string) (res *Result, err error) {
	start := time.Now()
	state := StateNotStarted
	log := r.logger.With(logging.F("url", url))

	defer func() {
		if err != nil {
			log.Error("ping failed",
				logging.Err(err),
				logging.F("state", StateFailed.String()))
		}
	}()

	if err := ValidateSelectors(r.cfg.Selectors); err != nil {
		return nil, fail("configuration", state, err)
	}

	log.Info("launching headless browser")
	session, err := r.open(ctx)
	if err != nil {
		return nil, fail("browser launch", state, err)
	}
	closed := false
	defer func() {
		if closed {
			return
		}
		if cerr := session.Close(); cerr != nil {
			log.Warn("closing browser after failure", logging.Err(cerr))
		}
	}()

	log.Info("navigating", logging.F("timeout", r.cfg.NavigationTimeout.String()))
	if err := r.navigate(ctx, session, url); err != nil {
		return nil, fail("navigation", state, err)
	}
	state = StateNavigated

	if err := sleepCtx(ctx, r.cfg.RenderDelay); err != nil {
		return nil, fail("render delay", state, err)
	}

	log.Info("looking for wake-up control", logging.F("selectors", len(r.cfg.Selectors)))
	selector, found, err := r.detect(ctx, session)
	if err != nil {
		return nil, fail("wake-up control lookup", state, err)
	}

	if found {
		log.Info("app is asleep, clicking wake-up control", logging.F("selector", selector))
		if err := r.withTimeout(ctx, func(ctx context.Context) error {
			return session.Click(ctx, selector)
		}); err != nil {
			return nil, fail("wake-up click", state, err)
		}
		state = StateWokeUp
		log.Info("waiting for app to resume", logging.F("delay", r.cfg.SettleDelay.String()))
		if err := sleepCtx(ctx, r.cfg.SettleDelay); err != nil {
			return nil, fail("settle delay", state, err)
		}
	} else {
		state = StateAlreadyAwake
		log.Info("no wake-up control found, app is already awake")
	}

	path, err := r.screenshot(ctx, session)
	if err != nil {
		return nil, fail("screenshot", state, err)
	}
	state = StateScreenshotTaken
	log.Info("screenshot saved", logging.F("path", path))

	closed = true
	if cerr := session.Close(); cerr != nil {
		log.Warn("closing browser", logging.Err(cerr))
	}
	state = StateClosed

	res = &Result{
		Status:          StatusAwake,
		URL:             url,
		WokeUp:          found,
		MatchedSelector: selector,
		ScreenshotPath:  path,
		State:           state,
		Duration:        time.Since(start),
	}
	log.Info("app is awake",
		logging.F("woke_up", res.WokeUp),
		logging.F("duration", res.Duration.Round(time.Millisecond).String()))
	return res, nil
}

func (r *Runner) navigate(ctx context.Context, s browser.Session, url string) error {
	navCtx, cancel := context.WithTimeout(ctx, r.cfg.NavigationTimeout)
	defer cancel()

	err := s.Navigate(navCtx, url)
	if err != nil && errors.Is(navCtx.Err(), context.DeadlineExceeded) && ctx.Err() == nil {
		return fmt.Errorf("navigation timeout of %s exceeded: %w", r.cfg.NavigationTimeout, context.DeadlineExceeded)
	}
	return err
}

func (r *Runner) withTimeout(ctx context.Context, fn func(context.Context) error) error {
	if r.cfg.ActionTimeout <= 0 {
		return fn(ctx)
	}
	actCtx, cancel := context.WithTimeout(ctx, r.cfg.ActionTimeout)
	defer cancel()
	return fn(actCtx)
}

func (r *Runner) detect(ctx context.Context, s browser.Session) (string, bool, error) {
	var html string
	if err := r.withTimeout(ctx, func(ctx context.Context) error {
		var err error
		html, err = s.HTML(ctx)
		return err
	}); err != nil {
		return "", false, err
	}
	return FindWakeControl(html, r.cfg.Selectors)
}

func (r *Runner) screenshot(ctx context.Context, s browser.Session) (string, error) {
	var buf []byte
	if err := r.withTimeout(ctx, func(ctx context.Context) error {
		var err error
		buf, err = s.Screenshot(ctx)
		return err
	}); err != nil {
		return "", err
	}

	path := r.cfg.ScreenshotPath
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return "", fmt.Errorf("create screenshot dir: %w", err)
		}
	}
	if err := os.WriteFile(path, buf, 0o644); err != nil {
		return "", fmt.Errorf("write screenshot: %w", err)
	}
	return path, nil
}
