package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// AppConfig holds the application configuration, typically loaded from `cyberintel.yaml`.
// It defines settings for the API connection and local behavior of the client.
type AppConfig struct {
	// APIBaseURL is the root of the sibling analysis API, e.g. "http://127.0.0.1:5555/api".
	// Every endpoint path is resolved relative to it.
	APIBaseURL string `yaml:"apibaseurl"`

	// RequestTimeoutSeconds is the timeout applied to every API request.
	// The client applies no retry or backoff; a timed-out request is a terminal
	// failure for that invocation.
	RequestTimeoutSeconds int `yaml:"requesttimeoutseconds"`

	// LogLevel is the minimum level written to the session log ("DEBUG", "INFO", "WARN", "ERROR").
	LogLevel string `yaml:"loglevel"`

	// LogFile is the path of the JSON-lines session log. Falls back to stderr
	// when the file cannot be opened.
	LogFile string `yaml:"logfile"`

	// MaxToasts bounds the number of notifications visible at once. Oldest
	// entries are dropped first when the bound is exceeded.
	MaxToasts int `yaml:"maxtoasts"`

	// DefaultHeaders is a map of HTTP headers applied to all outgoing API requests.
	// Example: {"User-Agent": "CyberIntel TUI/1.0"}
	DefaultHeaders map[string]string `yaml:"defaultheaders"`
}

// UIState holds the small amount of interface state that survives restarts,
// stored in a JSON file like `~/.cyberintel/state.json`. Analysis results and
// chat history are deliberately not persisted.
type UIState struct {
	// LastView is the identifier of the view that was active when the
	// application last exited.
	LastView string `json:"lastview"`

	// LastTargetURL stores the most recent URL submitted to the URL scanner.
	LastTargetURL string `json:"lasttargeturl"`
}

// LoadAppConfig reads a YAML configuration file specified by `filePath`,
// unmarshals it into an AppConfig struct, and returns it.
// If the file does not exist, it returns a default AppConfig with predefined values
// (local API on port 5555, 30 second timeout) and no error.
// Errors during file reading (other than not found) or YAML unmarshaling are returned.
func LoadAppConfig(filePath string) (*AppConfig, error) {
	// Default configuration values.
	config := &AppConfig{
		APIBaseURL:            "http://127.0.0.1:5555/api",
		RequestTimeoutSeconds: 30,
		LogLevel:              "INFO",
		LogFile:               "cyberintel_session.log",
		MaxToasts:             5,
		DefaultHeaders:        make(map[string]string),
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		if os.IsNotExist(err) {
			// File not found, return the default config and no error.
			return config, nil
		}
		// Other file read error.
		return nil, err
	}

	// Unmarshal the YAML data into the config struct.
	err = yaml.Unmarshal(data, config)
	if err != nil {
		// YAML parsing error.
		return nil, err
	}

	// Ensure maps are not nil and numeric fields are sane if YAML parsing
	// results in them being zeroed (e.g. a config file only setting loglevel).
	if config.DefaultHeaders == nil {
		config.DefaultHeaders = make(map[string]string)
	}
	if config.APIBaseURL == "" {
		config.APIBaseURL = "http://127.0.0.1:5555/api"
	}
	if config.RequestTimeoutSeconds <= 0 {
		config.RequestTimeoutSeconds = 30
	}
	if config.MaxToasts <= 0 {
		config.MaxToasts = 5
	}

	return config, nil
}

// LoadUIState reads a JSON file specified by `filePath`,
// unmarshals it into a UIState struct, and returns it.
// If the file does not exist, it returns a default (empty) UIState struct and no error.
// Errors during file reading (other than not found) or JSON unmarshaling are returned.
func LoadUIState(filePath string) (*UIState, error) {
	state := &UIState{} // Default empty state.

	data, err := os.ReadFile(expandHome(filePath))
	if err != nil {
		if os.IsNotExist(err) {
			// File not found, return default state and no error.
			return state, nil
		}
		// Other file read error.
		return nil, err
	}

	// Unmarshal the JSON data into the state struct.
	err = json.Unmarshal(data, state)
	if err != nil {
		// JSON parsing error.
		return nil, err
	}

	return state, nil
}

// SaveUIState marshals the provided UIState struct to JSON and
// writes it to the file specified by `filePath`.
// It ensures that the directory for `filePath` is created if it doesn't already exist.
// Paths starting with "~/" are resolved against the user's home directory.
// File permissions are set to 0600 for the state file and 0750 for created directories.
func SaveUIState(filePath string, state *UIState) error {
	filePath = expandHome(filePath)
	dir := filepath.Dir(filePath)

	// Create directory if it doesn't exist.
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		err = os.MkdirAll(dir, 0750) // Use 0750 for directory permissions.
		if err != nil {
			return err
		}
	}

	// Marshal UIState to JSON with indentation.
	data, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return err
	}

	// Write JSON data to the file.
	return os.WriteFile(filePath, data, 0600) // Use 0600 for user-private file permissions.
}

// SaveAppConfig marshals the provided AppConfig struct to YAML and writes it to the
// file specified by `filePath`. It overwrites the file if it already exists.
// File permissions are set to 0644.
func SaveAppConfig(filePath string, cfg *AppConfig) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(filePath, data, 0644) // Use 0644 for config files (readable by owner/group).
}

// expandHome resolves a leading "~/" in a path to the user's home directory.
// The path is returned unchanged when expansion is not possible.
func expandHome(path string) string {
	if !strings.HasPrefix(path, "~/") {
		return path
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(homeDir, path[2:])
}
