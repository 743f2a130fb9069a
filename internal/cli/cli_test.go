package cli_test

import (
	"errors"
	"flag"
	"strings"
	"testing"
	"time"

	"github.com/raysh454/appwake/internal/cli"
)

func env(m map[string]string) func(string) string {
	return func(k string) string { return m[k] }
}

func TestParseArgs_Defaults(t *testing.T) {
	t.Parallel()
	args, err := cli.ParseArgs([]string{"-url", "https://app.example"}, env(nil))
	if err != nil {
		t.Fatalf("ParseArgs returned error: %v", err)
	}
	if args.URL != "https://app.example" {
		t.Errorf("URL = %q", args.URL)
	}
	if args.Timeout != 30*time.Second || args.RenderDelay != 2*time.Second || args.SettleDelay != 5*time.Second {
		t.Errorf("unexpected default timings: %+v", args)
	}
	if !args.Headless {
		t.Error("headless should default to true")
	}
	if !args.Set["url"] || args.Set["timeout"] {
		t.Errorf("Set = %v, want only url", args.Set)
	}
}

func TestParseArgs_RepeatableSelector(t *testing.T) {
	t.Parallel()
	args, err := cli.ParseArgs([]string{"-selector", "#a", "-selector", "button.b", "-timeout", "10s"}, env(nil))
	if err != nil {
		t.Fatalf("ParseArgs returned error: %v", err)
	}
	if strings.Join(args.Selectors, "|") != "#a|button.b" {
		t.Errorf("Selectors = %v", args.Selectors)
	}
	if args.Timeout != 10*time.Second || !args.Set["timeout"] {
		t.Errorf("timeout = %s set=%v", args.Timeout, args.Set["timeout"])
	}
}

func TestParseArgs_URLFromEnv(t *testing.T) {
	t.Parallel()
	args, err := cli.ParseArgs(nil, env(map[string]string{"APPWAKE_URL": "https://env.example"}))
	if err != nil {
		t.Fatalf("ParseArgs returned error: %v", err)
	}
	if args.EnvURL != "https://env.example" {
		t.Errorf("EnvURL = %q", args.EnvURL)
	}
	if args.URL != "" || args.Set["url"] {
		t.Errorf("the environment must not count as -url, URL = %q set=%v", args.URL, args.Set["url"])
	}
}

func TestParseArgs_Errors(t *testing.T) {
	t.Parallel()
	if _, err := cli.ParseArgs([]string{"-timeout", "0s"}, env(nil)); err == nil {
		t.Error("expected error for zero timeout")
	}
	if _, err := cli.ParseArgs([]string{"stray"}, env(nil)); err == nil {
		t.Error("expected error for positional arguments")
	}
	if _, err := cli.ParseArgs([]string{"-bogus"}, env(nil)); err == nil {
		t.Error("expected error for unknown flag")
	}
	if _, err := cli.ParseArgs([]string{"-h"}, env(nil)); !errors.Is(err, flag.ErrHelp) {
		t.Errorf("expected flag.ErrHelp, got %v", err)
	}
}

func TestUsage_ListsFlags(t *testing.T) {
	t.Parallel()
	u := cli.Usage()
	for _, name := range []string{"-url", "-selector", "-screenshot", "-timeout"} {
		if !strings.Contains(u, name) {
			t.Errorf("usage missing %s", name)
		}
	}
}
