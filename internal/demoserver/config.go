package demoserver

// Config holds configuration for the demo server.
type Config struct {
	// Port is the port on which the demo server listens.
	Port int

	// StartAsleep makes the app show the wake-up page until woken.
	StartAsleep bool

	// AppName is shown in the page titles.
	AppName string
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Port:        9999,
		StartAsleep: true,
		AppName:     "demo-app",
	}
}
