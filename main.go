// Command appwake opens a hosted app in headless Chrome, clicks its wake-up
// button if the app has been suspended, and reports the outcome to the
// calling GitHub Actions workflow.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/raysh454/appwake/internal/app"
	"github.com/raysh454/appwake/internal/cli"
	"github.com/raysh454/appwake/internal/logging"
	"github.com/raysh454/appwake/internal/report"
)

func main() {
	os.Exit(run())
}

func run() int {
	args, err := cli.ParseArgs(os.Args[1:], os.Getenv)
	if errors.Is(err, flag.ErrHelp) {
		fmt.Fprint(os.Stderr, cli.Usage())
		return app.ExitOK
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "appwake: %v\n\n%s", err, cli.Usage())
		return app.ExitUsage
	}

	reporter := report.New()
	cfg, err := app.Configure(args, reporter.Input)
	if err != nil {
		fmt.Fprintf(os.Stderr, "appwake: %v\n", err)
		return app.ExitUsage
	}

	logger, err := logging.New(cfg.Log, "appwake")
	if err != nil {
		fmt.Fprintf(os.Stderr, "appwake: %v\n", err)
		return app.ExitUsage
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return app.NewApplication(cfg, logger, reporter).Run(ctx)
}
