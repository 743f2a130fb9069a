package pinger

// State is where a run currently is. Any failure moves straight to Failed.
type State int

const (
	StateNotStarted State = iota
	StateNavigated
	StateWokeUp
	StateAlreadyAwake
	StateScreenshotTaken
	StateClosed
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateNotStarted:
		return "not_started"
	case StateNavigated:
		return "navigated"
	case StateWokeUp:
		return "woke_up"
	case StateAlreadyAwake:
		return "already_awake"
	case StateScreenshotTaken:
		return "screenshot_taken"
	case StateClosed:
		return "closed"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}
