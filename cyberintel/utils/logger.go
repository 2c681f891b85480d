package utils

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"
)

// LogLevel defines the severity level for log messages.
type LogLevel int

// Constants for predefined log levels.
// These determine the verbosity and importance of log messages.
const (
	LevelDebug LogLevel = iota // Debug: Detailed information for diagnosing problems.
	LevelInfo                  // Info: General operational information.
	LevelWarn                  // Warn: Potential issues or unusual occurrences.
	LevelError                 // Error: Errors that occurred but allow the application to continue.
)

// levelToString maps LogLevel enum values to their string representations (e.g., "INFO", "ERROR").
var levelToString = map[LogLevel]string{
	LevelDebug: "DEBUG",
	LevelInfo:  "INFO",
	LevelWarn:  "WARN",
	LevelError: "ERROR",
}

// stringToLevel maps string representations of log levels to LogLevel enum values.
// This is useful for parsing log levels from configuration.
var stringToLevel = map[string]LogLevel{
	"DEBUG": LevelDebug,
	"INFO":  LevelInfo,
	"WARN":  LevelWarn,
	"ERROR": LevelError,
}

// LogEntry represents a single structured log record.
// It's designed to be marshaled into JSON format for logging.
// Fields are tagged with `json:"...,omitempty"` to exclude them from JSON output if they are zero-valued.
type LogEntry struct {
	Timestamp      string                 `json:"timestamp"`                 // ISO 8601 format (UTC) timestamp of the log event.
	Level          string                 `json:"level"`                     // Severity level of the log (e.g., "INFO", "ERROR").
	Message        string                 `json:"message"`                   // The main log message.
	SessionID      string                 `json:"session_id,omitempty"`      // ID of the UI session (one per program run).
	RequestID      string                 `json:"request_id,omitempty"`      // ID of an individual API invocation, if applicable.
	Panel          string                 `json:"panel,omitempty"`           // The analysis panel that triggered the event.
	Endpoint       string                 `json:"endpoint,omitempty"`        // API endpoint path, if applicable.
	HTTPStatus     int                    `json:"http_status,omitempty"`     // HTTP status code received in the response.
	DurationMs     int64                  `json:"duration_ms,omitempty"`     // Wall-clock duration of the request in milliseconds.
	Outcome        string                 `json:"outcome,omitempty"`         // Result of an operation (e.g., "accepted", "failed").
	Error          string                 `json:"error,omitempty"`           // Error message if an error occurred.
	AdditionalData map[string]interface{} `json:"additional_data,omitempty"` // A map for any other contextual data relevant to the log entry.
}

// Logger provides a structured JSON logger that writes log entries to an io.Writer.
// It supports different log levels and ensures thread-safe write operations.
type Logger struct {
	writer   io.Writer  // Destination for log output (e.g., os.Stderr, a file).
	minLevel LogLevel   // Minimum log level to output; messages below this level are suppressed.
	mu       sync.Mutex // Mutex to ensure thread-safe writes to the writer.
}

// NewLogger creates and returns a new Logger instance.
//
// Parameters:
//   - writer: The io.Writer where log entries will be written (e.g., os.Stderr, a file).
//   - minLevelStr: The minimum log level as a string (e.g., "INFO", "DEBUG").
//     If an invalid string is provided, it defaults to LevelInfo.
func NewLogger(writer io.Writer, minLevelStr string) *Logger {
	level, ok := stringToLevel[strings.ToUpper(minLevelStr)] // Ensure case-insensitivity for level string.
	if !ok {
		level = LevelInfo // Default to INFO if the provided string is invalid.
	}
	return &Logger{
		writer:   writer,
		minLevel: level,
	}
}

// Log writes a LogEntry at the specified LogLevel if the level is at or above the Logger's minimum level.
// The LogEntry is augmented with a timestamp and string representation of the level before being
// marshaled to JSON and written to the Logger's io.Writer.
// Writes are thread-safe. If JSON marshaling fails, a fallback plain text error is logged.
func (l *Logger) Log(level LogLevel, entry LogEntry) {
	if level < l.minLevel {
		return // Suppress messages below the minimum level.
	}

	// Populate standard fields.
	entry.Timestamp = time.Now().UTC().Format(time.RFC3339Nano) // High-precision timestamp.
	entry.Level = levelToString[level]

	l.mu.Lock() // Ensure thread-safe write to the output.
	defer l.mu.Unlock()

	jsonData, err := json.Marshal(entry)
	if err != nil {
		// Fallback to a simple error log if marshaling fails, to avoid losing error information.
		fmt.Fprintf(l.writer, "{\"timestamp\":\"%s\",\"level\":\"ERROR\",\"message\":\"Failed to marshal log entry\",\"original_level\":\"%s\",\"error\":\"%s\"}\n",
			time.Now().UTC().Format(time.RFC3339Nano), entry.Level, err.Error())
		return
	}

	// Write the JSON data followed by a newline (JSON Lines format). A write
	// failure is swallowed; there is nowhere safer to report it from here.
	_, _ = fmt.Fprintln(l.writer, string(jsonData))
}

// Debug logs a message at LevelDebug.
func (l *Logger) Debug(entry LogEntry) {
	l.Log(LevelDebug, entry)
}

// Info logs a message at LevelInfo.
func (l *Logger) Info(entry LogEntry) {
	l.Log(LevelInfo, entry)
}

// Warn logs a message at LevelWarn.
func (l *Logger) Warn(entry LogEntry) {
	l.Log(LevelWarn, entry)
}

// Error logs a message at LevelError.
func (l *Logger) Error(entry LogEntry) {
	l.Log(LevelError, entry)
}

// RequestEntry is a helper to quickly create a LogEntry for a single API call.
// This is useful for the common logging scenario in the API client where only
// a few fields are needed.
//
// Parameters:
//   - message: The main log message.
//   - panel: The analysis panel that triggered the call. Can be empty.
//   - endpoint: The API endpoint path. Can be empty.
//   - outcome: The result of the operation (e.g., "accepted", "failed"). Can be empty.
//   - err: An error object, if an error occurred. Its message will be stored. Can be nil.
//
// Returns:
//
//	A LogEntry struct populated with the provided fields.
func RequestEntry(message string, panel string, endpoint string, outcome string, err error) LogEntry {
	entry := LogEntry{
		Message:  message,
		Panel:    panel,
		Endpoint: endpoint,
		Outcome:  outcome,
	}
	if err != nil {
		entry.Error = err.Error()
	}
	return entry
}
