package browser

import (
	"testing"
	"time"

	"github.com/chromedp/cdproto/network"
)

func waitIdle(w *idleWatcher, d time.Duration) bool {
	select {
	case <-w.Idle():
		return true
	case <-time.After(d):
		return false
	}
}

func TestIdleWatcher_NoRequestsGoesIdle(t *testing.T) {
	w := newIdleWatcher(20 * time.Millisecond)
	w.arm()
	if !waitIdle(w, time.Second) {
		t.Fatal("expected idle with no requests in flight")
	}
}

func TestIdleWatcher_WaitsForInflight(t *testing.T) {
	w := newIdleWatcher(20 * time.Millisecond)
	w.handle(&network.EventRequestWillBeSent{RequestID: "1"})
	w.arm()

	if waitIdle(w, 100*time.Millisecond) {
		t.Fatal("went idle while a request was still in flight")
	}

	w.handle(&network.EventLoadingFinished{RequestID: "1"})
	if !waitIdle(w, time.Second) {
		t.Fatal("expected idle after the request finished")
	}
}

func TestIdleWatcher_RedirectCountsOnce(t *testing.T) {
	w := newIdleWatcher(20 * time.Millisecond)
	w.handle(&network.EventRequestWillBeSent{RequestID: "r"})
	w.handle(&network.EventRequestWillBeSent{RequestID: "r"})
	w.arm()
	w.handle(&network.EventLoadingFailed{RequestID: "r"})

	if !waitIdle(w, time.Second) {
		t.Fatal("redirected request should be tracked once")
	}
}

func TestIdleWatcher_NotArmedStaysBusy(t *testing.T) {
	w := newIdleWatcher(10 * time.Millisecond)
	w.handle(&network.EventRequestWillBeSent{RequestID: "1"})
	w.handle(&network.EventLoadingFinished{RequestID: "1"})

	if waitIdle(w, 100*time.Millisecond) {
		t.Fatal("watcher signalled idle before being armed")
	}
	w.stop()
}
