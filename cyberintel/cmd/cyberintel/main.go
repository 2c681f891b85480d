package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"cyberintel/cyberintel/api"
	"cyberintel/cyberintel/config"
	"cyberintel/cyberintel/tui"
	"cyberintel/cyberintel/utils"
)

// appLogo is the ASCII art banner displayed at application startup.
const appLogo = `
   _______   ______  _____ ____  ___ _   _ _____ _____ _
  / ___\ \ / / __ )| ____|  _ \|_ _| \ | |_   _| ____| |
 | |    \ V /|  _ \|  _| | |_) || ||  \| | | | |  _| | |
 | |___  | | | |_) | |___|  _ < | || |\  | | | | |___| |___
  \____| |_| |____/|_____|_| \_\___|_| \_| |_| |_____|_____|
`

// version defaults to "dev" and can be overridden during the build using
// ldflags (e.g. go build -ldflags="-X main.version=1.0.0").
var version = "dev"

var (
	cfgFile   string
	stateFile string
	apiBase   string
	logLevel  string
)

func newRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "cyberintel",
		Short: "Terminal dashboard for the CyberIntel security analytics service",
		Long: `CyberIntel is a terminal dashboard for a security analytics backend.
It bundles a URL reputation scanner, a password strength lab, a phishing
text detector, a breach database check and the Sentinel AI assistant
behind a single keyboard-driven interface.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run()
		},
	}

	rootCmd.Flags().StringVarP(&cfgFile, "config", "c", "config/cyberintel.yaml", "config file path")
	rootCmd.Flags().StringVar(&stateFile, "state", "~/.cyberintel/state.json", "UI state file path")
	rootCmd.Flags().StringVar(&apiBase, "api", "", "override the API base URL from the config file")
	rootCmd.Flags().StringVar(&logLevel, "log-level", "", "override the minimum log level (DEBUG, INFO, WARN, ERROR)")

	rootCmd.AddCommand(newVersionCommand())
	return rootCmd
}

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("CyberIntel %s\n", version)
		},
	}
}

func run() error {
	fmt.Print(appLogo + "\n")
	fmt.Printf("CyberIntel version %s\n\n", version)

	// 1. Load application configuration. A missing or unreadable file is
	// not fatal; the defaults carry the session.
	appCfg, err := config.LoadAppConfig(cfgFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: error loading config: %v. Proceeding with defaults.\n", err)
	}
	if appCfg == nil {
		appCfg = &config.AppConfig{
			APIBaseURL:            "http://127.0.0.1:5555/api",
			RequestTimeoutSeconds: 30,
			LogLevel:              "INFO",
			LogFile:               "cyberintel_session.log",
			MaxToasts:             5,
			DefaultHeaders:        make(map[string]string),
		}
	}
	if apiBase != "" {
		appCfg.APIBaseURL = apiBase
	}
	if logLevel != "" {
		appCfg.LogLevel = logLevel
	}

	// 2. Initialize the session logger. Falls back to stderr if the log
	// file cannot be opened.
	var appLogger *utils.Logger
	logFile, logFileErr := os.OpenFile(appCfg.LogFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if logFileErr != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open log file %q: %v. Logging to stderr.\n", appCfg.LogFile, logFileErr)
		appLogger = utils.NewLogger(os.Stderr, appCfg.LogLevel)
	} else {
		appLogger = utils.NewLogger(logFile, appCfg.LogLevel)
		defer func() {
			appLogger.Info(utils.LogEntry{Message: "CyberIntel shutting down. Closing log file."})
			logFile.Close()
		}()
	}

	// 3. Restore the saved UI state. Errors degrade to a fresh state.
	uiState, err := config.LoadUIState(stateFile)
	if err != nil {
		appLogger.Warn(utils.LogEntry{Message: "Could not load UI state, starting fresh", Error: err.Error()})
		uiState = &config.UIState{}
	}

	// 4. One session ID ties the TUI log lines and the API request log
	// lines together.
	sessionID := uuid.NewString()
	appLogger.Info(utils.LogEntry{SessionID: sessionID, Message: "CyberIntel TUI starting"})

	client := api.NewClient(appCfg, appLogger, sessionID)
	initialModel := tui.NewModel(appCfg, uiState, appLogger, client, sessionID)

	program := tea.NewProgram(initialModel, tea.WithAltScreen())
	finalModel, err := program.Run()
	if err != nil {
		appLogger.Error(utils.LogEntry{SessionID: sessionID, Message: "TUI program exited with error", Error: err.Error()})
		return fmt.Errorf("running TUI: %w", err)
	}

	// 5. Persist the UI state so the next session resumes where this one
	// left off.
	if m, ok := finalModel.(tui.Model); ok {
		if err := config.SaveUIState(stateFile, m.UIState()); err != nil {
			appLogger.Warn(utils.LogEntry{SessionID: sessionID, Message: "Could not save UI state", Error: err.Error()})
		}
	}

	appLogger.Info(utils.LogEntry{SessionID: sessionID, Message: "CyberIntel TUI exited cleanly"})
	return nil
}

func main() {
	if err := newRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
