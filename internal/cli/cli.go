package cli

import (
	"bytes"
	"flag"
	"fmt"
	"io"
	"strings"
	"time"
)

// CLIArgs are the command-line arguments for a single ping run. Only flags
// present in Set were given explicitly; the rest hold their defaults and
// must not override the config file.
type CLIArgs struct {
	// URL is the app to wake, from -url only.
	URL string

	// EnvURL is $APPWAKE_URL, the last fallback for the target URL.
	EnvURL string

	// ConfigPath is an optional YAML config file.
	ConfigPath string

	// Selectors replaces the wake-up control selectors when given.
	Selectors []string

	Screenshot  string
	Timeout     time.Duration
	RenderDelay time.Duration
	SettleDelay time.Duration
	Headless    bool
	ChromePath  string
	LogFormat   string
	LogLevel    string

	// Set records which flags appeared on the command line.
	Set map[string]bool

	// RawArgs is the original args slice (useful for debugging/tests).
	RawArgs []string
}

// stringList is a repeatable string flag.
type stringList []string

func (s *stringList) String() string { return strings.Join(*s, ", ") }

func (s *stringList) Set(v string) error {
	*s = append(*s, v)
	return nil
}

func newFlagSet(a *CLIArgs) *flag.FlagSet {
	fs := flag.NewFlagSet("appwake", flag.ContinueOnError)
	fs.StringVar(&a.URL, "url", "", "URL of the app to wake (falls back to the config file, the 'url' workflow input, then $APPWAKE_URL)")
	fs.StringVar(&a.ConfigPath, "config", "", "Path to a YAML config file")
	fs.Var((*stringList)(&a.Selectors), "selector", "CSS selector of a wake-up control (repeatable, replaces the defaults)")
	fs.StringVar(&a.Screenshot, "screenshot", "screenshot.png", "Where to write the full-page screenshot")
	fs.DurationVar(&a.Timeout, "timeout", 30*time.Second, "Navigation timeout")
	fs.DurationVar(&a.RenderDelay, "render-delay", 2*time.Second, "Pause after load before looking for the wake-up control")
	fs.DurationVar(&a.SettleDelay, "settle-delay", 5*time.Second, "Pause after clicking the wake-up control")
	fs.BoolVar(&a.Headless, "headless", true, "Run Chrome headless")
	fs.StringVar(&a.ChromePath, "chrome", "", "Path to the Chrome binary")
	fs.StringVar(&a.LogFormat, "log-format", "text", "Log format: text|json")
	fs.StringVar(&a.LogLevel, "log-level", "info", "Log level: debug|info|warn|error")
	return fs
}

// ParseArgs parses a slice of args and returns CLIArgs. getenv supplies
// environment fallbacks so tests do not depend on the process environment.
// flag.ErrHelp is returned as-is for -h.
func ParseArgs(args []string, getenv func(string) string) (*CLIArgs, error) {
	a := &CLIArgs{Set: map[string]bool{}, RawArgs: args}
	fs := newFlagSet(a)
	fs.SetOutput(io.Discard)

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() > 0 {
		return nil, fmt.Errorf("unexpected arguments: %v", fs.Args())
	}
	fs.Visit(func(f *flag.Flag) { a.Set[f.Name] = true })
	a.URL = strings.TrimSpace(a.URL)
	a.EnvURL = strings.TrimSpace(getenv("APPWAKE_URL"))
	if a.Timeout <= 0 {
		return nil, fmt.Errorf("-timeout must be positive, got %s", a.Timeout)
	}
	return a, nil
}

// Usage returns the flag help text.
func Usage() string {
	var buf bytes.Buffer
	fs := newFlagSet(&CLIArgs{})
	fs.SetOutput(&buf)
	fmt.Fprintln(&buf, "Usage: appwake -url <app url> [flags]")
	fs.PrintDefaults()
	return buf.String()
}
