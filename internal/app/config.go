package app

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/raysh454/appwake/internal/browser"
	"github.com/raysh454/appwake/internal/cli"
	"github.com/raysh454/appwake/internal/logging"
	"github.com/raysh454/appwake/internal/pinger"
	"github.com/raysh454/appwake/internal/utils"
)

// ErrNoURL is returned when no target URL was supplied anywhere.
var ErrNoURL = errors.New("no target URL: pass -url, set APPWAKE_URL or the 'url' workflow input")

// Config gathers the per-package configuration for one run.
type Config struct {
	// URL is the app to wake.
	URL string

	Pinger  pinger.Config
	Browser browser.Config
	Log     logging.Config
}

// DefaultConfig returns a Config populated with the defaults of each package.
func DefaultConfig() *Config {
	return &Config{
		Pinger:  pinger.DefaultConfig(),
		Browser: browser.DefaultConfig(),
		Log:     logging.DefaultConfig(),
	}
}

// fileConfig is the YAML layout of a config file. Absent keys keep the
// value already in Config.
type fileConfig struct {
	URL               string        `yaml:"url"`
	NavigationTimeout time.Duration `yaml:"navigation_timeout"`
	RenderDelay       time.Duration `yaml:"render_delay"`
	SettleDelay       time.Duration `yaml:"settle_delay"`
	ActionTimeout     time.Duration `yaml:"action_timeout"`
	Selectors         []string      `yaml:"selectors"`
	Screenshot        string        `yaml:"screenshot"`
	Browser           struct {
		Headless     bool          `yaml:"headless"`
		ExecPath     string        `yaml:"exec_path"`
		NoSandbox    bool          `yaml:"no_sandbox"`
		WindowWidth  int           `yaml:"window_width"`
		WindowHeight int           `yaml:"window_height"`
		UserAgent    string        `yaml:"user_agent"`
		IdleAfter    time.Duration `yaml:"idle_after"`
	} `yaml:"browser"`
	Log struct {
		Format string `yaml:"format"`
		Level  string `yaml:"level"`
	} `yaml:"log"`
}

func toFile(cfg *Config) fileConfig {
	var fc fileConfig
	fc.URL = cfg.URL
	fc.NavigationTimeout = cfg.Pinger.NavigationTimeout
	fc.RenderDelay = cfg.Pinger.RenderDelay
	fc.SettleDelay = cfg.Pinger.SettleDelay
	fc.ActionTimeout = cfg.Pinger.ActionTimeout
	fc.Selectors = cfg.Pinger.Selectors
	fc.Screenshot = cfg.Pinger.ScreenshotPath
	fc.Browser.Headless = cfg.Browser.Headless
	fc.Browser.ExecPath = cfg.Browser.ExecPath
	fc.Browser.NoSandbox = cfg.Browser.NoSandbox
	fc.Browser.WindowWidth = cfg.Browser.WindowWidth
	fc.Browser.WindowHeight = cfg.Browser.WindowHeight
	fc.Browser.UserAgent = cfg.Browser.UserAgent
	fc.Browser.IdleAfter = cfg.Browser.IdleAfter
	fc.Log.Format = string(cfg.Log.Format)
	fc.Log.Level = cfg.Log.Level
	return fc
}

func (fc fileConfig) apply(cfg *Config) {
	cfg.URL = fc.URL
	cfg.Pinger.NavigationTimeout = fc.NavigationTimeout
	cfg.Pinger.RenderDelay = fc.RenderDelay
	cfg.Pinger.SettleDelay = fc.SettleDelay
	cfg.Pinger.ActionTimeout = fc.ActionTimeout
	cfg.Pinger.Selectors = fc.Selectors
	cfg.Pinger.ScreenshotPath = fc.Screenshot
	cfg.Browser.Headless = fc.Browser.Headless
	cfg.Browser.ExecPath = fc.Browser.ExecPath
	cfg.Browser.NoSandbox = fc.Browser.NoSandbox
	cfg.Browser.WindowWidth = fc.Browser.WindowWidth
	cfg.Browser.WindowHeight = fc.Browser.WindowHeight
	cfg.Browser.UserAgent = fc.Browser.UserAgent
	cfg.Browser.IdleAfter = fc.Browser.IdleAfter
	cfg.Log.Format = logging.Format(fc.Log.Format)
	cfg.Log.Level = fc.Log.Level
}

// LoadFile overlays the YAML file at path onto cfg. Unknown keys are an
// error so typos do not silently fall back to defaults.
func LoadFile(path string, cfg *Config) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open config: %w", err)
	}
	defer f.Close()

	fc := toFile(cfg)
	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(&fc); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("parse config %s: %w", path, err)
	}
	fc.apply(cfg)
	return nil
}

// Configure builds the run configuration: defaults, then the config file,
// then explicit flags. The URL comes from -url, the config file, the 'url'
// workflow input read through input, then $APPWAKE_URL, in that order.
func Configure(args *cli.CLIArgs, input func(string) string) (*Config, error) {
	cfg := DefaultConfig()

	if args.ConfigPath != "" {
		if err := LoadFile(args.ConfigPath, cfg); err != nil {
			return nil, err
		}
	}

	if args.Set["url"] {
		cfg.URL = args.URL
	}
	if len(args.Selectors) > 0 {
		cfg.Pinger.Selectors = args.Selectors
	}
	if args.Set["screenshot"] {
		cfg.Pinger.ScreenshotPath = args.Screenshot
	}
	if args.Set["timeout"] {
		cfg.Pinger.NavigationTimeout = args.Timeout
	}
	if args.Set["render-delay"] {
		cfg.Pinger.RenderDelay = args.RenderDelay
	}
	if args.Set["settle-delay"] {
		cfg.Pinger.SettleDelay = args.SettleDelay
	}
	if args.Set["headless"] {
		cfg.Browser.Headless = args.Headless
	}
	if args.Set["chrome"] {
		cfg.Browser.ExecPath = args.ChromePath
	}
	if args.Set["log-format"] {
		cfg.Log.Format = logging.Format(args.LogFormat)
	}
	if args.Set["log-level"] {
		cfg.Log.Level = args.LogLevel
	}

	if cfg.URL == "" && input != nil {
		cfg.URL = input("url")
	}
	if cfg.URL == "" {
		cfg.URL = args.EnvURL
	}
	if cfg.URL == "" {
		return nil, ErrNoURL
	}
	target, err := utils.NormalizeTarget(cfg.URL, "https")
	if err != nil {
		return nil, fmt.Errorf("target url: %w", err)
	}
	cfg.URL = target

	if cfg.Pinger.NavigationTimeout <= 0 {
		return nil, fmt.Errorf("navigation timeout must be positive, got %s", cfg.Pinger.NavigationTimeout)
	}
	if err := pinger.ValidateSelectors(cfg.Pinger.Selectors); err != nil {
		return nil, err
	}
	return cfg, nil
}
