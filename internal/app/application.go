package app

import (
	"context"

	"github.com/google/uuid"

	"github.com/raysh454/appwake/internal/browser"
	"github.com/raysh454/appwake/internal/logging"
	"github.com/raysh454/appwake/internal/pinger"
	"github.com/raysh454/appwake/internal/report"
)

// Process exit codes.
const (
	ExitOK      = 0
	ExitFailure = 1
	ExitUsage   = 2
)

// Application holds what a single run needs. Pass already-constructed parts
// so tests can swap the browser and the reporter.
type Application struct {
	Config   *Config
	Logger   logging.Logger
	Reporter *report.Reporter

	// Open acquires the browser. Defaults to a chromedp session.
	Open browser.Opener
}

// NewApplication constructs an Application from the provided parts.
func NewApplication(cfg *Config, logger logging.Logger, reporter *report.Reporter) *Application {
	return &Application{
		Config:   cfg,
		Logger:   logger,
		Reporter: reporter,
		Open:     browser.NewOpener(cfg.Browser, logger),
	}
}

// Run pings the configured URL once, reports the outcome and returns the
// process exit code.
func (a *Application) Run(ctx context.Context) int {
	logger := a.Logger.With(logging.F("run_id", uuid.NewString()))

	r := pinger.New(a.Config.Pinger, a.Open, logger)
	res, err := r.Ping(ctx, a.Config.URL)
	if err != nil {
		a.Reporter.Failure(err)
		return ExitFailure
	}

	a.Reporter.Success(res)
	return ExitOK
}
