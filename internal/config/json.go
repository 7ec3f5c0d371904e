package config

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/akarpovs/authgate/internal/timex"
)

// jsonConfig is a DTO used exclusively for JSON unmarshalling. It relies on
// timex.Duration so files can spell intervals as "3s" rather than integer
// nanoseconds. Parsed values are copied into the runtime Config.
type jsonConfig struct {
	ServerBaseURL  string         `json:"server_base_url"`
	RequestTimeout timex.Duration `json:"request_timeout"`
	DatabasePath   string         `json:"database_path"`
	KeyFilePath    string         `json:"key_file_path"`
	RedirectDelay  timex.Duration `json:"redirect_delay"`
}

// configFilePath extracts the -c/-config value from args without touching
// any other flag. Unknown flags are tolerated here; parseFlags owns them.
func configFilePath(args []string) string {
	fs := flag.NewFlagSet("config-file", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	var path string
	fs.StringVar(&path, "config", "", "path to JSON config file")
	fs.StringVar(&path, "c", "", "path to JSON config file (short)")

	// Walk the args so a parse failure on an unrelated flag does not hide -c.
	for i := 0; i < len(args); i++ {
		if args[i] == "-c" || args[i] == "-config" || args[i] == "--config" {
			_ = fs.Parse(args[i:])
			break
		}
	}
	return path
}

// parseJSON overlays cfg with values from the JSON file named by -c/-config.
// A missing flag means no file is loaded. Only fields present in the file
// override the current values.
func parseJSON(cfg *Config, args []string) error {
	path := configFilePath(args)
	if path == "" {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}

	var jc jsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}

	if jc.ServerBaseURL != "" {
		cfg.ServerBaseURL = jc.ServerBaseURL
	}
	if jc.RequestTimeout.Duration != 0 {
		cfg.RequestTimeout = jc.RequestTimeout.Duration
	}
	if jc.DatabasePath != "" {
		cfg.DatabasePath = jc.DatabasePath
	}
	if jc.KeyFilePath != "" {
		cfg.KeyFilePath = jc.KeyFilePath
	}
	if jc.RedirectDelay.Duration != 0 {
		cfg.RedirectDelay = jc.RedirectDelay.Duration
	}
	return nil
}
