package tui

import (
	"context"
	"errors"
	"io"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cyberintel/cyberintel/api"
	"cyberintel/cyberintel/busy"
	"cyberintel/cyberintel/config"
	"cyberintel/cyberintel/notify"
	"cyberintel/cyberintel/panel"
	"cyberintel/cyberintel/utils"
)

// fakeService counts invocations and returns canned responses, so the
// orchestration logic can be exercised without a live API.
type fakeService struct {
	statsCalls    int
	urlCalls      int
	passwordCalls int
	textCalls     int
	breachCalls   int
	chatCalls     int

	err error
}

func (f *fakeService) DashboardStats(ctx context.Context) (*api.DashboardStats, error) {
	f.statsCalls++
	if f.err != nil {
		return nil, f.err
	}
	return &api.DashboardStats{TotalScans: 10, ThreatsDetected: 2, RiskScore: 48}, nil
}

func (f *fakeService) AnalyzeURL(ctx context.Context, target string) (*api.URLAnalysis, error) {
	f.urlCalls++
	if f.err != nil {
		return nil, f.err
	}
	return &api.URLAnalysis{RiskScore: 12, BadgeClass: "safe", Verdict: "Safe"}, nil
}

func (f *fakeService) AnalyzePassword(ctx context.Context, password string) (*api.PasswordAnalysis, error) {
	f.passwordCalls++
	if f.err != nil {
		return nil, f.err
	}
	return &api.PasswordAnalysis{Score: 42, CrackTime: "3 days", Entropy: 40.1}, nil
}

func (f *fakeService) AnalyzeText(ctx context.Context, text string) (*api.TextAnalysis, error) {
	f.textCalls++
	if f.err != nil {
		return nil, f.err
	}
	return &api.TextAnalysis{Probability: 11, BadgeClass: "safe", Verdict: "Looks Clean"}, nil
}

func (f *fakeService) CheckBreach(ctx context.Context, email string) (*api.BreachResult, error) {
	f.breachCalls++
	if f.err != nil {
		return nil, f.err
	}
	return &api.BreachResult{Status: "safe", Message: "Good news! No breaches found."}, nil
}

func (f *fakeService) Chat(ctx context.Context, message string) (*api.ChatReply, error) {
	f.chatCalls++
	if f.err != nil {
		return nil, f.err
	}
	return &api.ChatReply{Response: "Stay **vigilant**."}, nil
}

func newTestModel(t *testing.T, fake *fakeService, startView string) Model {
	t.Helper()
	cfg := &config.AppConfig{
		APIBaseURL:            "http://127.0.0.1:5555/api",
		RequestTimeoutSeconds: 5,
		MaxToasts:             5,
	}
	logger := utils.NewLogger(io.Discard, "ERROR")
	return NewModel(cfg, &config.UIState{LastView: startView}, logger, fake, "test-session")
}

func applyMsg(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	updated, cmd := m.Update(msg)
	next, ok := updated.(Model)
	require.True(t, ok, "Update should return the concrete model")
	return next, cmd
}

func enterKey() tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyEnter}
}

// TestEmptySubmitWarnsWithoutRequest checks that submitting an empty field
// warns exactly once and never contacts the service.
func TestEmptySubmitWarnsWithoutRequest(t *testing.T) {
	fake := &fakeService{}
	m := newTestModel(t, fake, "URL Scanner")

	m, cmd := applyMsg(t, m, enterKey())
	require.NotNil(t, cmd, "empty submit should still schedule the toast fade")

	items := m.toasts.Items()
	require.Len(t, items, 1, "empty submit should post exactly one toast")
	assert.Equal(t, notify.SeverityWarning, items[0].Severity, "empty-input toast should be a warning")
	assert.Zero(t, fake.urlCalls, "no request should be issued for empty input")
	assert.False(t, m.actions.IsBusy(controlScanURL), "control should stay idle on empty input")
}

// TestDoubleSubmitWhileBusy checks that a second submission while the
// control is busy is silently ignored, and that completion releases the
// control and restores its idle label.
func TestDoubleSubmitWhileBusy(t *testing.T) {
	fake := &fakeService{}
	m := newTestModel(t, fake, "URL Scanner")
	m.urlInput.SetValue("https://example.com")

	m, cmd := applyMsg(t, m, enterKey())
	require.NotNil(t, cmd, "first submit should produce a command")
	assert.True(t, m.actions.IsBusy(controlScanURL), "control should be busy while the request is in flight")
	assert.Equal(t, labelBusy, m.actions.BusyLabel(controlScanURL, labelScanURL), "busy label should show while in flight")

	m, second := applyMsg(t, m, enterKey())
	assert.Nil(t, second, "second submit while busy should be silently ignored")

	msg := cmd()
	assert.Equal(t, 1, fake.urlCalls, "exactly one request should be issued")

	done, ok := msg.(busy.DoneMsg)
	require.True(t, ok, "request completion should arrive as a DoneMsg")
	m, _ = applyMsg(t, m, done)

	assert.False(t, m.actions.IsBusy(controlScanURL), "completion should release the control")
	assert.Equal(t, labelScanURL, m.actions.BusyLabel(controlScanURL, labelScanURL), "idle label should be restored")
	require.NotNil(t, m.urlReport, "successful scan should render a report")
	assert.Equal(t, 12, m.urlReport.Score, "report should carry the response score")
}

// TestFailedSubmitReleasesControl checks that a failed request still
// releases the control and posts an error toast.
func TestFailedSubmitReleasesControl(t *testing.T) {
	fake := &fakeService{err: errors.New("connection refused")}
	m := newTestModel(t, fake, "URL Scanner")
	m.urlInput.SetValue("https://example.com")

	m, cmd := applyMsg(t, m, enterKey())
	require.NotNil(t, cmd, "submit should produce a command")

	m, _ = applyMsg(t, m, cmd())

	assert.False(t, m.actions.IsBusy(controlScanURL), "failure must still release the control")
	assert.Nil(t, m.urlReport, "failed scan should not render a report")

	items := m.toasts.Items()
	require.Len(t, items, 1, "failure should post one toast")
	assert.Equal(t, notify.SeverityError, items[0].Severity, "failure toast should be an error")
}

// TestLivePasswordStaleResponseDropped checks last-response-wins on the
// live password path.
func TestLivePasswordStaleResponseDropped(t *testing.T) {
	fake := &fakeService{}
	m := newTestModel(t, fake, "Password Lab")

	fresh := &api.PasswordAnalysis{Score: 80, CrackTime: "centuries"}
	m, _ = applyMsg(t, m, pwdLiveMsg{seq: 2, result: fresh})
	require.NotNil(t, m.pwdReport, "live response should render a report")
	assert.Equal(t, 80, m.pwdReport.Score, "fresh response should render")

	stale := &api.PasswordAnalysis{Score: 10, CrackTime: "instant"}
	m, _ = applyMsg(t, m, pwdLiveMsg{seq: 1, result: stale})
	assert.Equal(t, 80, m.pwdReport.Score, "stale response must not overwrite a newer one")

	newer := &api.PasswordAnalysis{Score: 95, CrackTime: "centuries"}
	m, _ = applyMsg(t, m, pwdLiveMsg{seq: 3, result: newer})
	assert.Equal(t, 95, m.pwdReport.Score, "newer response should render")
}

// TestLivePasswordFailureIsSilent checks that a live-path failure neither
// toasts nor clears the rendered report.
func TestLivePasswordFailureIsSilent(t *testing.T) {
	fake := &fakeService{}
	m := newTestModel(t, fake, "Password Lab")

	m, _ = applyMsg(t, m, pwdLiveMsg{seq: 1, result: &api.PasswordAnalysis{Score: 55}})
	m, cmd := applyMsg(t, m, pwdLiveMsg{seq: 2, err: errors.New("timeout")})

	assert.Nil(t, cmd, "live-path failure should produce no command")
	assert.Zero(t, m.toasts.Len(), "live-path failure should not toast")
	require.NotNil(t, m.pwdReport, "live-path failure should keep the rendered report")
	assert.Equal(t, 55, m.pwdReport.Score, "rendered report should be unchanged")
}

// TestTypingIssuesLiveRequest checks that editing the password field bumps
// the sequence number and that clearing it hides the report instead.
func TestTypingIssuesLiveRequest(t *testing.T) {
	fake := &fakeService{}
	m := newTestModel(t, fake, "Password Lab")

	m, cmd := applyMsg(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("a")})
	require.NotNil(t, cmd, "an edit should issue a live request")
	assert.Equal(t, 1, m.pwdSeq, "first edit should be sequence 1")

	m, _ = applyMsg(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("b")})
	assert.Equal(t, 2, m.pwdSeq, "second edit should be sequence 2")

	report := panel.PasswordReport{Score: 20}
	m.pwdReport = &report
	m, cmd = applyMsg(t, m, tea.KeyMsg{Type: tea.KeyBackspace})
	m, cmd = applyMsg(t, m, tea.KeyMsg{Type: tea.KeyBackspace})
	assert.Equal(t, "", m.pwdInput.Value(), "backspaces should clear the field")
	assert.Nil(t, m.pwdReport, "clearing the field should hide the report")
	_ = cmd
}

// TestStatsFailureFallsBack checks that a failed dashboard load renders the
// fixed fallback summary instead of an empty gauge.
func TestStatsFailureFallsBack(t *testing.T) {
	fake := &fakeService{}
	m := newTestModel(t, fake, "Dashboard")

	m, _ = applyMsg(t, m, statsLoadedMsg{err: errors.New("connection refused")})

	require.NotNil(t, m.summary, "a failed load must still render a summary")
	assert.Equal(t, panel.FallbackRiskScore, m.summary.RiskScore, "fallback summary should use the fixed gauge score")
	assert.Zero(t, m.toasts.Len(), "stats fallback should be silent")
}

// TestChatSubmitAndOutage checks the chat turn lifecycle: the user turn
// appends immediately, a second send is ignored while the reply is pending,
// and a failed reply degrades to the outage message.
func TestChatSubmitAndOutage(t *testing.T) {
	fake := &fakeService{err: errors.New("service down")}
	m := newTestModel(t, fake, "Sentinel AI")
	m.chatInput.SetValue("are my accounts safe?")

	m, cmd := applyMsg(t, m, enterKey())
	require.NotNil(t, cmd, "chat submit should produce a command")
	require.Len(t, m.chatLog, 1, "user turn should append immediately")
	assert.Equal(t, panel.SpeakerUser, m.chatLog[0].Speaker, "first turn should be the user's")
	assert.True(t, m.chatTyping, "typing indicator should be up while the reply is pending")
	assert.Empty(t, m.chatInput.Value(), "submit should clear the input")

	m.chatInput.SetValue("hello again")
	m, second := applyMsg(t, m, enterKey())
	assert.Nil(t, second, "a second send while a reply is pending should be ignored")
	assert.Len(t, m.chatLog, 1, "ignored send should not append a turn")

	m, _ = applyMsg(t, m, chatReplyMsg{err: errors.New("service down")})
	require.Len(t, m.chatLog, 2, "failed reply should append the outage turn")
	assert.Equal(t, panel.SpeakerAssistant, m.chatLog[1].Speaker, "outage turn should come from the assistant")
	assert.Equal(t, panel.OutageReply, m.chatLog[1].Text, "outage turn should carry the fixed outage text")
	assert.False(t, m.chatTyping, "typing indicator should drop when the reply lands")
	assert.Zero(t, m.toasts.Len(), "chat failure should not toast")
}

// TestBreachSubmitHidesStaleResult checks that a new breach lookup hides
// the previous result while the request is in flight.
func TestBreachSubmitHidesStaleResult(t *testing.T) {
	fake := &fakeService{}
	m := newTestModel(t, fake, "Breach Check")
	m.breachReport = &panel.BreachReport{Safe: false, Message: "old result"}
	m.breachInput.SetValue("user@example.com")

	m, cmd := applyMsg(t, m, enterKey())
	require.NotNil(t, cmd, "submit should produce a command")
	assert.Nil(t, m.breachReport, "stale result should be hidden while the request is in flight")

	m, _ = applyMsg(t, m, cmd())
	require.NotNil(t, m.breachReport, "completed lookup should render")
	assert.True(t, m.breachReport.Safe, "safe status should mark the report safe")

	items := m.toasts.Items()
	require.Len(t, items, 1, "completed lookup should toast")
	assert.Equal(t, notify.SeveritySuccess, items[0].Severity, "completion toast should be a success")
}

// TestPanicInActionReleasesControl checks the recovery path end to end: a
// panicking request still releases its control and surfaces an error toast.
func TestPanicInActionReleasesControl(t *testing.T) {
	fake := &fakeService{}
	m := newTestModel(t, fake, "URL Scanner")

	require.NoError(t, m.actions.Begin(controlScanURL, labelBusy), "Begin should succeed")
	cmd := m.actions.Scope(controlScanURL, func() tea.Msg {
		panic("boom")
	})

	m, _ = applyMsg(t, m, cmd())

	assert.False(t, m.actions.IsBusy(controlScanURL), "panic must still release the control")
	items := m.toasts.Items()
	require.Len(t, items, 1, "panic should surface one toast")
	assert.Equal(t, notify.SeverityError, items[0].Severity, "panic toast should be an error")
}

// TestNavigationCyclesViews checks forward and backward navigation wrap
// around the view ring.
func TestNavigationCyclesViews(t *testing.T) {
	fake := &fakeService{}
	m := newTestModel(t, fake, "Dashboard")

	m, _ = applyMsg(t, m, tea.KeyMsg{Type: tea.KeyCtrlN})
	assert.Equal(t, URLScannerView, m.router.Active(), "ctrl+n should advance to the next view")

	m, _ = applyMsg(t, m, tea.KeyMsg{Type: tea.KeyCtrlP})
	m, _ = applyMsg(t, m, tea.KeyMsg{Type: tea.KeyCtrlP})
	assert.Equal(t, ChatView, m.router.Active(), "ctrl+p should wrap backward from the dashboard")
}

// TestUIStatePersistsViewAndURL checks the state handed back for
// persistence on exit.
func TestUIStatePersistsViewAndURL(t *testing.T) {
	fake := &fakeService{}
	m := newTestModel(t, fake, "Breach Check")
	m.lastTargetURL = "https://example.com/login"

	state := m.UIState()
	assert.Equal(t, "Breach Check", state.LastView, "active view should persist by name")
	assert.Equal(t, "https://example.com/login", state.LastTargetURL, "last scanned URL should persist")
}
