package tui

import (
	"context"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"cyberintel/cyberintel/api"
	"cyberintel/cyberintel/notify"
	"cyberintel/cyberintel/panel"
)

// Service is the slice of the API client the panel sessions depend on.
// Declaring it here keeps the orchestration logic testable against a fake
// without a live API or a rendered surface.
type Service interface {
	DashboardStats(ctx context.Context) (*api.DashboardStats, error)
	AnalyzeURL(ctx context.Context, target string) (*api.URLAnalysis, error)
	AnalyzePassword(ctx context.Context, password string) (*api.PasswordAnalysis, error)
	AnalyzeText(ctx context.Context, text string) (*api.TextAnalysis, error)
	CheckBreach(ctx context.Context, email string) (*api.BreachResult, error)
	Chat(ctx context.Context, message string) (*api.ChatReply, error)
}

// Control identifiers and labels for the busy-state controller. Each
// network-triggering button is bound to exactly one control.
const (
	controlScanURL      = "btn-analyze-url"
	controlAnalyzePwd   = "btn-analyze-pwd"
	controlScanText     = "btn-analyze-email"
	controlSearchBreach = "btn-check-breach"

	labelScanURL      = "Scan Now"
	labelAnalyzePwd   = "Analyze"
	labelScanText     = "Scan Text"
	labelSearchBreach = "Search Database"
	labelBusy         = "Processing..."
)

// Completion messages, one per request kind. Each is delivered wrapped in a
// busy.DoneMsg for explicit-submit panels so the release path is uniform.
type statsLoadedMsg struct {
	stats *api.DashboardStats
	err   error
}

type urlScannedMsg struct {
	result *api.URLAnalysis
	err    error
}

type pwdAnalyzedMsg struct {
	result *api.PasswordAnalysis
	err    error
}

// pwdLiveMsg is the live-path variant. The sequence number implements
// last-response-wins: a response older than the last rendered one is dropped.
type pwdLiveMsg struct {
	seq    int
	result *api.PasswordAnalysis
	err    error
}

type textScannedMsg struct {
	result *api.TextAnalysis
	err    error
}

type breachCheckedMsg struct {
	result *api.BreachResult
	err    error
}

type chatReplyMsg struct {
	reply *api.ChatReply
	err   error
}

// loadStatsCmd is the one-shot dashboard summary loader. It is fired once at
// startup and never again for the lifetime of the program.
func (m *Model) loadStatsCmd() tea.Cmd {
	client := m.client
	return func() tea.Msg {
		stats, err := client.DashboardStats(context.Background())
		return statsLoadedMsg{stats: stats, err: err}
	}
}

// submitURL runs one URL-scanner invocation: validate, acquire the busy
// scope, issue the request. A conflict on the busy scope silently ignores
// the submission, which is the double-click guard.
func (m *Model) submitURL() tea.Cmd {
	input := strings.TrimSpace(m.urlInput.Value())
	if input == "" {
		return m.toast("Please enter a URL to scan.", notify.SeverityWarning)
	}
	if err := m.actions.Begin(controlScanURL, labelBusy); err != nil {
		return nil
	}
	m.lastTargetURL = input

	client := m.client
	return m.actions.Scope(controlScanURL, func() tea.Msg {
		result, err := client.AnalyzeURL(context.Background(), input)
		return urlScannedMsg{result: result, err: err}
	})
}

// submitPassword is the explicit-submit path of the password panel. It is
// decoupled from the live keystroke path: empty input warns here, and the
// result renders through the same view model the live path uses.
func (m *Model) submitPassword() tea.Cmd {
	input := m.pwdInput.Value()
	if strings.TrimSpace(input) == "" {
		return m.toast("Please enter a password.", notify.SeverityWarning)
	}
	if err := m.actions.Begin(controlAnalyzePwd, labelBusy); err != nil {
		return nil
	}

	client := m.client
	return m.actions.Scope(controlAnalyzePwd, func() tea.Msg {
		result, err := client.AnalyzePassword(context.Background(), input)
		return pwdAnalyzedMsg{result: result, err: err}
	})
}

// livePasswordCmd issues one live-path analysis for the full current field
// value. Callers must not invoke it for an empty value; clearing the field
// hides the result region without contacting the service.
func (m *Model) livePasswordCmd(value string, seq int) tea.Cmd {
	client := m.client
	return func() tea.Msg {
		result, err := client.AnalyzePassword(context.Background(), value)
		return pwdLiveMsg{seq: seq, result: result, err: err}
	}
}

// submitText runs one phishing-detector invocation.
func (m *Model) submitText() tea.Cmd {
	input := strings.TrimSpace(m.textInput.Value())
	if input == "" {
		return m.toast("Please paste email or SMS text to scan.", notify.SeverityWarning)
	}
	if err := m.actions.Begin(controlScanText, labelBusy); err != nil {
		return nil
	}

	client := m.client
	return m.actions.Scope(controlScanText, func() tea.Msg {
		result, err := client.AnalyzeText(context.Background(), input)
		return textScannedMsg{result: result, err: err}
	})
}

// submitBreach runs one breach-lookup invocation. The result region is
// hidden up front so stale results are never visible while the new request
// is in flight.
func (m *Model) submitBreach() tea.Cmd {
	input := strings.TrimSpace(m.breachInput.Value())
	if input == "" {
		return m.toast("Please enter an email address.", notify.SeverityWarning)
	}
	if err := m.actions.Begin(controlSearchBreach, labelBusy); err != nil {
		return nil
	}
	m.breachReport = nil

	client := m.client
	return m.actions.Scope(controlSearchBreach, func() tea.Msg {
		result, err := client.CheckBreach(context.Background(), input)
		return breachCheckedMsg{result: result, err: err}
	})
}

// submitChat appends the user's turn immediately, shows the typing
// indicator and issues the chat request. A second send while the indicator
// is up is ignored, so at most one assistant reply is pending at a time.
func (m *Model) submitChat() tea.Cmd {
	text := strings.TrimSpace(m.chatInput.Value())
	if text == "" {
		return m.toast("Please enter a message.", notify.SeverityWarning)
	}
	if m.chatTyping {
		return nil
	}

	m.chatInput.Reset()
	m.chatLog = append(m.chatLog, panel.NewChatTurn(panel.SpeakerUser, text))
	m.chatTyping = true
	m.syncChatViewport()

	client := m.client
	request := func() tea.Msg {
		reply, err := client.Chat(context.Background(), text)
		return chatReplyMsg{reply: reply, err: err}
	}
	return tea.Batch(request, m.chatSpinner.Tick)
}

// toast posts a notification and returns its fade-scheduling command.
func (m *Model) toast(message string, severity notify.Severity) tea.Cmd {
	_, cmd := m.toasts.Post(message, severity)
	return cmd
}
