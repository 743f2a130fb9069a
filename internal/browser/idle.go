package browser

import (
	"sync"
	"time"

	"github.com/chromedp/cdproto/network"
)

// idleWatcher reports when no network request has been in flight for
// idleAfter. Requests are keyed by ID so redirects, which reuse the ID,
// are not double counted.
type idleWatcher struct {
	idleAfter time.Duration

	mu       sync.Mutex
	inflight map[network.RequestID]struct{}
	timer    *time.Timer
	armed    bool
	idle     chan struct{}
	once     sync.Once
}

func newIdleWatcher(idleAfter time.Duration) *idleWatcher {
	return &idleWatcher{
		idleAfter: idleAfter,
		inflight:  make(map[network.RequestID]struct{}),
		idle:      make(chan struct{}),
	}
}

// handle is registered with chromedp.ListenTarget. It runs on the event
// loop and must not block.
func (w *idleWatcher) handle(ev any) {
	switch e := ev.(type) {
	case *network.EventRequestWillBeSent:
		w.mu.Lock()
		w.inflight[e.RequestID] = struct{}{}
		if w.timer != nil {
			w.timer.Stop()
		}
		w.mu.Unlock()
	case *network.EventLoadingFinished:
		w.finish(e.RequestID)
	case *network.EventLoadingFailed:
		w.finish(e.RequestID)
	}
}

func (w *idleWatcher) finish(id network.RequestID) {
	w.mu.Lock()
	defer w.mu.Unlock()
	delete(w.inflight, id)
	if w.armed && len(w.inflight) == 0 {
		w.resetLocked()
	}
}

// arm starts idle detection. Events seen before arm still update the
// in-flight set but cannot signal idle.
func (w *idleWatcher) arm() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.armed = true
	if len(w.inflight) == 0 {
		w.resetLocked()
	}
}

func (w *idleWatcher) resetLocked() {
	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(w.idleAfter, func() {
		w.mu.Lock()
		quiet := len(w.inflight) == 0
		w.mu.Unlock()
		if quiet {
			w.once.Do(func() { close(w.idle) })
		}
	})
}

// Idle is closed once the network has been quiet for idleAfter.
func (w *idleWatcher) Idle() <-chan struct{} {
	return w.idle
}

func (w *idleWatcher) stop() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.timer != nil {
		w.timer.Stop()
	}
}
