// Package demoserver imitates a free-tier hosted app that suspends itself
// after inactivity and offers a button to wake it back up.
package demoserver

import (
	"encoding/json"
	"fmt"
	"html/template"
	"net/http"
	"sync"
)

// DemoServer serves either the sleeping page or the running app.
type DemoServer struct {
	cfg    Config
	mu     sync.RWMutex
	asleep bool
	wakes  int
}

// Status is the JSON body of /demo/status.
type Status struct {
	Asleep bool `json:"asleep"`
	Wakes  int  `json:"wakes"`
}

// NewDemoServer creates a new demo server instance.
func NewDemoServer(cfg Config) *DemoServer {
	if cfg.AppName == "" {
		cfg.AppName = DefaultConfig().AppName
	}
	return &DemoServer{cfg: cfg, asleep: cfg.StartAsleep}
}

// Handler returns the server's routes, usable with httptest.
func (s *DemoServer) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/", s.pageHandler)
	mux.HandleFunc("/demo/wake", s.wakeHandler)
	mux.HandleFunc("/demo/sleep", s.sleepHandler)
	mux.HandleFunc("/demo/status", s.statusHandler)
	return mux
}

// Start starts the demo server.
func (s *DemoServer) Start() error {
	addr := fmt.Sprintf(":%d", s.cfg.Port)
	fmt.Printf("Demo server starting on http://localhost%s\n", addr)
	fmt.Printf("Status at http://localhost%s/demo/status\n", addr)
	return http.ListenAndServe(addr, s.Handler())
}

// Status reports the current state.
func (s *DemoServer) Status() Status {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return Status{Asleep: s.asleep, Wakes: s.wakes}
}

// Sleep puts the app back to sleep.
func (s *DemoServer) Sleep() {
	s.mu.Lock()
	s.asleep = true
	s.mu.Unlock()
}

func (s *DemoServer) pageHandler(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}

	st := s.Status()
	tmpl := awakeTmpl
	if st.Asleep {
		tmpl = asleepTmpl
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_ = tmpl.Execute(w, struct {
		AppName string
		Wakes   int
	}{AppName: s.cfg.AppName, Wakes: st.Wakes})
}

func (s *DemoServer) wakeHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	s.mu.Lock()
	if s.asleep {
		s.asleep = false
		s.wakes++
	}
	s.mu.Unlock()

	s.statusHandler(w, r)
}

func (s *DemoServer) sleepHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	s.Sleep()
	s.statusHandler(w, r)
}

func (s *DemoServer) statusHandler(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(s.Status())
}

var asleepTmpl = template.Must(template.New("asleep").Parse(`<!DOCTYPE html>
<html>
<head><title>{{.AppName}} is asleep</title></head>
<body>
    <div class="sleeping-app">
        <h1>Zzzz</h1>
        <p>This app has gone to sleep due to inactivity. Would you like to wake it back up?</p>
        <button data-testid="wakeup-button-viewer" onclick="wake(this)">Yes, get this app back up!</button>
    </div>
    <script>
        function wake(btn) {
            btn.disabled = true;
            fetch('/demo/wake', {method: 'POST'}).then(() => location.reload());
        }
    </script>
</body>
</html>`))

var awakeTmpl = template.Must(template.New("awake").Parse(`<!DOCTYPE html>
<html>
<head><title>{{.AppName}}</title></head>
<body>
    <main id="app">
        <h1>{{.AppName}} is running</h1>
        <p>Woken {{.Wakes}} time(s).</p>
    </main>
</body>
</html>`))
