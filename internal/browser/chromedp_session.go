package browser

import (
	"context"
	"fmt"
	"sync"

	"github.com/chromedp/cdproto/network"
	"github.com/chromedp/chromedp"
	"github.com/raysh454/appwake/internal/logging"
)

// ChromedpSession drives a single Chrome tab through chromedp.
type ChromedpSession struct {
	cfg    Config
	logger logging.Logger

	ctx         context.Context
	cancel      context.CancelFunc
	allocCancel context.CancelFunc

	closeOnce sync.Once
	closeErr  error
}

var _ Session = (*ChromedpSession)(nil)

func allocatorOptions(cfg Config) []chromedp.ExecAllocatorOption {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", cfg.Headless),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.Flag("mute-audio", true),
	)
	if cfg.NoSandbox {
		opts = append(opts, chromedp.NoSandbox)
	}
	if cfg.WindowWidth > 0 && cfg.WindowHeight > 0 {
		opts = append(opts, chromedp.WindowSize(cfg.WindowWidth, cfg.WindowHeight))
	}
	if cfg.ExecPath != "" {
		opts = append(opts, chromedp.ExecPath(cfg.ExecPath))
	}
	if cfg.UserAgent != "" {
		opts = append(opts, chromedp.UserAgent(cfg.UserAgent))
	}
	return opts
}

// NewChromedpSession launches Chrome and opens a blank tab. The browser
// lives until Close; ctx only bounds the launch.
func NewChromedpSession(ctx context.Context, cfg Config, logger logging.Logger) (*ChromedpSession, error) {
	if cfg.IdleAfter <= 0 {
		cfg.IdleAfter = DefaultConfig().IdleAfter
	}
	componentLogger := logger.With(logging.F("component", "browser"))

	allocCtx, allocCancel := chromedp.NewExecAllocator(context.Background(), allocatorOptions(cfg)...)
	browserCtx, cancel := chromedp.NewContext(allocCtx,
		chromedp.WithLogf(func(format string, args ...any) {
			componentLogger.Debug(fmt.Sprintf(format, args...))
		}),
		chromedp.WithErrorf(func(format string, args ...any) {
			componentLogger.Debug("chromedp: " + fmt.Sprintf(format, args...))
		}),
	)

	s := &ChromedpSession{
		cfg:         cfg,
		logger:      componentLogger,
		ctx:         browserCtx,
		cancel:      cancel,
		allocCancel: allocCancel,
	}

	// The first Run allocates the browser. It must run on the browser
	// context itself; a cancelled child here would tear the browser down.
	started := make(chan error, 1)
	go func() { started <- chromedp.Run(browserCtx) }()
	select {
	case err := <-started:
		if err != nil {
			s.Close()
			return nil, fmt.Errorf("start chrome: %w", err)
		}
	case <-ctx.Done():
		s.Close()
		return nil, fmt.Errorf("start chrome: %w", ctx.Err())
	}

	componentLogger.Debug("chrome started",
		logging.F("headless", cfg.Headless),
		logging.F("idle_after", cfg.IdleAfter.String()))
	return s, nil
}

// NewOpener returns an Opener launching a fresh ChromedpSession per call.
func NewOpener(cfg Config, logger logging.Logger) Opener {
	return func(ctx context.Context) (Session, error) {
		s, err := NewChromedpSession(ctx, cfg, logger)
		if err != nil {
			return nil, err
		}
		return s, nil
	}
}

// child returns a context that carries the chromedp target and is also
// cancelled when ctx is. Cancelling it aborts the pending actions only.
func (s *ChromedpSession) child(ctx context.Context) (context.Context, context.CancelFunc) {
	runCtx, cancel := context.WithCancel(s.ctx)
	stop := context.AfterFunc(ctx, cancel)
	return runCtx, func() {
		stop()
		cancel()
	}
}

func (s *ChromedpSession) run(ctx context.Context, actions ...chromedp.Action) error {
	runCtx, cancel := s.child(ctx)
	defer cancel()

	if err := chromedp.Run(runCtx, actions...); err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return err
	}
	return nil
}

// Navigate loads url, waits for the load event, then for a quiet network.
func (s *ChromedpSession) Navigate(ctx context.Context, url string) error {
	runCtx, cancel := s.child(ctx)
	defer cancel()

	w := newIdleWatcher(s.cfg.IdleAfter)
	defer w.stop()
	chromedp.ListenTarget(runCtx, w.handle)

	if err := chromedp.Run(runCtx, network.Enable(), chromedp.Navigate(url)); err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return err
	}

	w.arm()
	select {
	case <-w.Idle():
		s.logger.Debug("network idle", logging.F("url", url))
		return nil
	case <-runCtx.Done():
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return runCtx.Err()
	}
}

func (s *ChromedpSession) HTML(ctx context.Context) (string, error) {
	var html string
	if err := s.run(ctx, chromedp.OuterHTML("html", &html, chromedp.ByQuery)); err != nil {
		return "", err
	}
	return html, nil
}

// Click waits for the first node matching selector to be visible and
// clicks it.
func (s *ChromedpSession) Click(ctx context.Context, selector string) error {
	return s.run(ctx, chromedp.Click(selector, chromedp.ByQuery))
}

// Screenshot captures the whole page as a PNG (quality 100 selects PNG).
func (s *ChromedpSession) Screenshot(ctx context.Context) ([]byte, error) {
	var buf []byte
	if err := s.run(ctx, chromedp.FullScreenshot(&buf, 100)); err != nil {
		return nil, err
	}
	return buf, nil
}

// Close shuts Chrome down and releases the allocator. Safe to call twice.
func (s *ChromedpSession) Close() error {
	s.closeOnce.Do(func() {
		if err := chromedp.Cancel(s.ctx); err != nil && s.ctx.Err() == nil {
			s.closeErr = fmt.Errorf("close chrome: %w", err)
		}
		s.cancel()
		s.allocCancel()
		s.logger.Debug("chrome closed")
	})
	return s.closeErr
}
