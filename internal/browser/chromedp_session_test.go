package browser_test

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/raysh454/appwake/internal/browser"
	"github.com/raysh454/appwake/internal/testutil"
)

func newSession(t *testing.T) *browser.ChromedpSession {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping browser test in short mode")
	}
	s, err := browser.NewChromedpSession(context.Background(), browser.DefaultConfig(), &testutil.DummyLogger{})
	if err != nil {
		t.Skipf("Skipping chromedp test (environment does not support chromedp): %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func pageServer() *httptest.Server {
	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `<html><body>
			<p id="out">idle</p>
			<button id="go" onclick="document.getElementById('out').textContent='clicked'">Go</button>
			<img src="/slow.png">
		</body></html>`)
	})
	mux.HandleFunc("/slow.png", func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(300 * time.Millisecond)
		w.WriteHeader(http.StatusNotFound)
	})
	return httptest.NewServer(mux)
}

func TestChromedpSession_NavigateClickScreenshot(t *testing.T) {
	s := newSession(t)
	srv := pageServer()
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Second)
	defer cancel()

	if err := s.Navigate(ctx, srv.URL+"/"); err != nil {
		t.Fatalf("Navigate returned error: %v", err)
	}
	if err := s.Click(ctx, "#go"); err != nil {
		t.Fatalf("Click returned error: %v", err)
	}
	html, err := s.HTML(ctx)
	if err != nil {
		t.Fatalf("HTML returned error: %v", err)
	}
	if !strings.Contains(html, "clicked") {
		t.Errorf("click did not run the handler, html: %s", html)
	}

	shot, err := s.Screenshot(ctx)
	if err != nil {
		t.Fatalf("Screenshot returned error: %v", err)
	}
	if !bytes.HasPrefix(shot, []byte("\x89PNG")) {
		t.Errorf("screenshot is not a PNG (first bytes %q)", shot[:min(8, len(shot))])
	}
}

func TestChromedpSession_NavigateHonoursDeadline(t *testing.T) {
	s := newSession(t)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(3 * time.Second)
	}))
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 300*time.Millisecond)
	defer cancel()

	err := s.Navigate(ctx, srv.URL)
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected deadline exceeded, got %v", err)
	}
}

func TestChromedpSession_CloseTwice(t *testing.T) {
	s := newSession(t)
	if err := s.Close(); err != nil {
		t.Fatalf("first Close returned error: %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("second Close returned error: %v", err)
	}
}
