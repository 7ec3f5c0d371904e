// Package config loads runtime settings for the authgate CLI.
//
// Sources are layered: built-in defaults, then an optional JSON file
// (-c/-config), then command-line flags. Later sources take precedence.
package config

import "time"

// Config holds runtime settings for the CLI.
//
// Fields:
//   - ServerBaseURL: base URL of the identity service, e.g. "http://localhost:8000".
//   - RequestTimeout: per-request timeout for API calls.
//   - DatabasePath: path to the local SQLite database holding the session.
//   - KeyFilePath: path to the at-rest sealing key for the session store.
//   - RedirectDelay: pause between a verify/reset success message and the
//     navigation back to the login view.
type Config struct {
	ServerBaseURL  string
	RequestTimeout time.Duration
	DatabasePath   string
	KeyFilePath    string
	RedirectDelay  time.Duration
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerBaseURL = "http://localhost:8000"
	c.RequestTimeout = 12 * time.Second
	c.DatabasePath = "authgate.db"
	c.KeyFilePath = "authgate.key"
	c.RedirectDelay = 2 * time.Second
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if a config file was named) and command-line flags.
func LoadConfig(args []string) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()
	if err := parseJSON(cfg, args); err != nil {
		return nil, err
	}
	if err := parseFlags(cfg, args); err != nil {
		return nil, err
	}
	return cfg, nil
}
