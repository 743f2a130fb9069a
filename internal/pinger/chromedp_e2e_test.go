package pinger_test

import (
	"context"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/raysh454/appwake/internal/browser"
	"github.com/raysh454/appwake/internal/demoserver"
	"github.com/raysh454/appwake/internal/pinger"
	"github.com/raysh454/appwake/internal/testutil"
)

// TestPing_Chromedp_WakesDemoServer drives a real Chrome against the demo
// server. Skipped when Chrome cannot be started.
func TestPing_Chromedp_WakesDemoServer(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping browser test in short mode")
	}

	ds := demoserver.NewDemoServer(demoserver.DefaultConfig())
	srv := httptest.NewServer(ds.Handler())
	defer srv.Close()

	logger := &testutil.DummyLogger{}
	bcfg := browser.DefaultConfig()

	probe, err := browser.NewChromedpSession(context.Background(), bcfg, logger)
	if err != nil {
		t.Skipf("Skipping chromedp test (environment does not support chromedp): %v", err)
	}
	_ = probe.Close()

	cfg := pinger.DefaultConfig()
	cfg.RenderDelay = 200 * time.Millisecond
	cfg.SettleDelay = time.Second
	cfg.ScreenshotPath = filepath.Join(t.TempDir(), "screenshot.png")
	r := pinger.New(cfg, browser.NewOpener(bcfg, logger), logger)

	res, err := r.Ping(context.Background(), srv.URL+"/")
	if err != nil {
		t.Fatalf("first Ping returned error: %v", err)
	}
	if !res.WokeUp {
		t.Error("first run should have clicked the wake-up control")
	}
	if st := ds.Status(); st.Asleep || st.Wakes != 1 {
		t.Errorf("demo status after wake = %+v", st)
	}

	res, err = r.Ping(context.Background(), srv.URL+"/")
	if err != nil {
		t.Fatalf("second Ping returned error: %v", err)
	}
	if res.WokeUp {
		t.Error("second run should find the app already awake")
	}
}
