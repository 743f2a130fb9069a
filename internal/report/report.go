// Package report surfaces a run's outcome through the GitHub Actions
// input/output convention.
package report

import (
	"errors"
	"strconv"
	"strings"

	"github.com/sethvargo/go-githubactions"

	"github.com/raysh454/appwake/internal/pinger"
)

// Reporter writes step outputs and annotations for the calling workflow.
type Reporter struct {
	action *githubactions.Action
}

// New creates a Reporter. With no options it uses the process environment
// and stdout, as the Actions runner expects.
func New(opts ...githubactions.Option) *Reporter {
	return &Reporter{action: githubactions.New(opts...)}
}

// Input returns the workflow input name, read from INPUT_<NAME>.
func (r *Reporter) Input(name string) string {
	return strings.TrimSpace(r.action.GetInput(name))
}

// Success sets status=awake plus the woke_up and screenshot outputs.
func (r *Reporter) Success(res *pinger.Result) {
	r.action.SetOutput("status", res.Status)
	r.action.SetOutput("woke_up", strconv.FormatBool(res.WokeUp))
	r.action.SetOutput("screenshot", res.ScreenshotPath)
	if res.WokeUp {
		r.action.Noticef("Woke up %s", res.URL)
	} else {
		r.action.Noticef("%s was already awake", res.URL)
	}
}

// Failure annotates the step with the error. The status output stays unset.
func (r *Reporter) Failure(err error) {
	var pe *pinger.PingError
	if errors.As(err, &pe) {
		r.action.WithFieldsMap(map[string]string{"title": "Ping failed: " + pe.Step}).Errorf("%s", err.Error())
		return
	}
	r.action.Errorf("%s", err.Error())
}
