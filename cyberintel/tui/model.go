package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"

	"cyberintel/cyberintel/busy"
	"cyberintel/cyberintel/config"
	"cyberintel/cyberintel/notify"
	"cyberintel/cyberintel/panel"
	"cyberintel/cyberintel/utils"
)

// Model holds the state of the TUI: the view router, the shared notification
// queue and busy-state controller, and one region of render state per panel.
// Panel regions are independent: a slow response that completes after the
// user navigated away still lands in its own region without touching the
// now-active view.
type Model struct {
	sessionID string
	appConfig *config.AppConfig
	uiState   *config.UIState
	logger    *utils.Logger
	client    Service

	router  *Router
	toasts  *notify.Queue
	actions *busy.Controller

	width  int
	height int

	// Dashboard
	summary        *panel.Summary
	statsRequested bool

	// URL scanner
	urlInput      textinput.Model
	urlReport     *panel.VerdictReport
	lastTargetURL string

	// Password lab
	pwdInput    textinput.Model
	pwdRevealed bool
	pwdReport   *panel.PasswordReport
	pwdSeq      int // last issued live request
	pwdRendered int // last rendered live response

	// Phishing detector
	textInput  textarea.Model
	textReport *panel.VerdictReport

	// Breach check
	breachInput  textinput.Model
	breachReport *panel.BreachReport

	// Chat
	chatInput   textinput.Model
	chatLog     []panel.ChatTurn
	chatTyping  bool
	chatSpinner spinner.Model
	chatView    viewport.Model

	// Header
	searchMode  bool
	searchInput textinput.Model
}

// NewModel creates the initial TUI model. The previously active view is
// restored from the saved UI state; everything else starts empty.
func NewModel(cfg *config.AppConfig, state *config.UIState, logger *utils.Logger, client Service, sessionID string) Model {
	if sessionID == "" {
		sessionID = uuid.NewString()
	}
	m := Model{
		sessionID: sessionID,
		appConfig: cfg,
		uiState:   state,
		logger:    logger,
		client:    client,
		router:    NewRouter(),
		toasts:    notify.NewQueue(cfg.MaxToasts),
		actions:   busy.NewController(),
	}

	m.urlInput = textinput.New()
	m.urlInput.Placeholder = "https://example.com/login"
	m.urlInput.CharLimit = 2048
	m.urlInput.SetValue(state.LastTargetURL)

	m.pwdInput = textinput.New()
	m.pwdInput.Placeholder = "Type a password to analyze"
	m.pwdInput.EchoMode = textinput.EchoPassword
	m.pwdInput.EchoCharacter = '•'

	m.textInput = textarea.New()
	m.textInput.Placeholder = "Paste the suspicious email or SMS text here"

	m.breachInput = textinput.New()
	m.breachInput.Placeholder = "you@example.com"

	m.chatInput = textinput.New()
	m.chatInput.Placeholder = "Ask Sentinel AI anything about your security posture"

	m.searchInput = textinput.New()
	m.searchInput.Placeholder = "Search knowledge base"

	m.chatSpinner = spinner.New(
		spinner.WithSpinner(spinner.Dot),
		spinner.WithStyle(InfoTextStyle),
	)
	m.chatView = viewport.New(0, 0)

	if err := m.router.SwitchTo(ViewByName(state.LastView)); err != nil {
		// Stored name did not resolve; the router stays on the dashboard.
		m.logger.Warn(utils.LogEntry{SessionID: m.sessionID, Message: "Ignoring unknown saved view", Error: err.Error()})
	}
	m.focusActive()

	return m
}

// Init fires the one-shot dashboard summary loader and the startup toast.
// The loader is never re-fired, no matter how often the dashboard view is
// re-entered.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{textinput.Blink}
	if !m.statsRequested {
		// statsRequested is flipped in Update when the message lands; the
		// guard here keeps a re-Init (alt-screen restore) from double firing.
		cmds = append(cmds, m.loadStatsCmd())
	}
	_, toastCmd := m.toasts.Post("CyberIntel UI initialized.", notify.SeveritySuccess)
	cmds = append(cmds, toastCmd)
	return tea.Batch(cmds...)
}

// UIState returns the state to persist on exit.
func (m Model) UIState() *config.UIState {
	return &config.UIState{
		LastView:      m.router.Active().String(),
		LastTargetURL: m.lastTargetURL,
	}
}

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resizeInputs()
		m.syncChatViewport()
		return m, nil

	case busy.DoneMsg:
		// The single release point: whatever the outcome of a guarded
		// action, its control goes back to idle before the result is seen.
		m.actions.End(msg.Control)
		return m.Update(msg.Inner)

	case busy.PanicMsg:
		m.logger.Error(utils.LogEntry{
			SessionID: m.sessionID,
			Message:   "Recovered panic in panel action",
			Error:     fmt.Sprintf("%v", msg.Value),
			AdditionalData: map[string]interface{}{
				"control": msg.Control,
			},
		})
		return m, m.toast("Internal error. The action was aborted.", notify.SeverityError)

	case notify.FadeMsg:
		return m, m.toasts.Fade(msg.ID)

	case notify.ExpireMsg:
		m.toasts.Remove(msg.ID)
		return m, nil

	case statsLoadedMsg:
		m.statsRequested = true
		if msg.err != nil {
			// The gauge must never be left unrendered: fall back to the
			// fixed default score.
			m.logger.Warn(utils.RequestEntry("Dashboard stats unavailable, using fallback", "dashboard", "/dashboard-stats", "fallback", msg.err))
			summary := panel.FallbackSummary()
			m.summary = &summary
			return m, nil
		}
		summary := panel.BuildSummary(msg.stats)
		m.summary = &summary
		return m, nil

	case urlScannedMsg:
		if msg.err != nil {
			return m, m.toast("API Error: Could not analyze URL.", notify.SeverityError)
		}
		report := panel.BuildURLReport(msg.result)
		m.urlReport = &report
		return m, m.toast("URL Analysis complete.", notify.SeveritySuccess)

	case pwdAnalyzedMsg:
		if msg.err != nil {
			return m, m.toast("API Error: Could not analyze password.", notify.SeverityError)
		}
		report := panel.BuildPasswordReport(msg.result)
		m.pwdReport = &report
		return m, m.toast("Analysis complete.", notify.SeveritySuccess)

	case pwdLiveMsg:
		// The live path is deliberately silent on failure so normal typing
		// cadence cannot flood the notification queue.
		if msg.err != nil {
			return m, nil
		}
		if msg.seq <= m.pwdRendered {
			return m, nil // Stale response; a newer one already rendered.
		}
		m.pwdRendered = msg.seq
		report := panel.BuildPasswordReport(msg.result)
		m.pwdReport = &report
		return m, nil

	case textScannedMsg:
		if msg.err != nil {
			return m, m.toast("API Error: Could not analyze text.", notify.SeverityError)
		}
		report := panel.BuildTextReport(msg.result)
		m.textReport = &report
		return m, m.toast("Text Scan complete.", notify.SeveritySuccess)

	case breachCheckedMsg:
		if msg.err != nil {
			return m, m.toast("API Error: Could not check breach database.", notify.SeverityError)
		}
		report := panel.BuildBreachReport(msg.result)
		m.breachReport = &report
		return m, m.toast("Breach database search complete.", notify.SeveritySuccess)

	case chatReplyMsg:
		m.chatTyping = false
		if msg.err != nil {
			m.chatLog = append(m.chatLog, panel.NewChatTurn(panel.SpeakerAssistant, panel.OutageReply))
		} else {
			m.chatLog = append(m.chatLog, panel.NewChatTurn(panel.SpeakerAssistant, msg.reply.Response))
		}
		m.syncChatViewport()
		return m, nil

	case spinner.TickMsg:
		if !m.chatTyping {
			return m, nil
		}
		var cmd tea.Cmd
		m.chatSpinner, cmd = m.chatSpinner.Update(msg)
		m.syncChatViewport()
		return m, cmd

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

// handleKey processes one key event: global bindings first, then the input
// of the active view.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit

	case "ctrl+n":
		m.switchView((m.router.Active() + 1) % numViews)
		return m, nil

	case "ctrl+p":
		m.switchView((m.router.Active() - 1 + numViews) % numViews)
		return m, nil

	case "ctrl+b":
		return m, m.toast("System alerts are currently empty.", notify.SeverityInfo)

	case "ctrl+o":
		m.router.ToggleOverlay()
		return m, nil

	case "ctrl+f":
		m.searchMode = !m.searchMode
		if m.searchMode {
			m.blurAll()
			m.searchInput.Focus()
		} else {
			m.searchInput.Reset()
			m.focusActive()
		}
		return m, nil

	case "esc":
		if m.searchMode {
			m.searchMode = false
			m.searchInput.Reset()
			m.focusActive()
			return m, nil
		}
		if m.router.OverlayOpen() {
			m.router.CloseOverlay()
			return m, nil
		}
		return m, nil

	case "ctrl+t":
		if m.router.Active() == PasswordLabView {
			m.pwdRevealed = !m.pwdRevealed
			if m.pwdRevealed {
				m.pwdInput.EchoMode = textinput.EchoNormal
			} else {
				m.pwdInput.EchoMode = textinput.EchoPassword
			}
		}
		return m, nil

	case "ctrl+s":
		if m.router.Active() == PhishingView {
			return m, m.submitText()
		}
		return m, nil

	case "enter":
		if m.searchMode {
			query := m.searchInput.Value()
			m.searchInput.Reset()
			m.searchMode = false
			m.focusActive()
			if query != "" {
				return m, m.toast(fmt.Sprintf("Searching knowledge base for: %s", query), notify.SeveritySuccess)
			}
			return m, nil
		}
		switch m.router.Active() {
		case URLScannerView:
			return m, m.submitURL()
		case PasswordLabView:
			return m, m.submitPassword()
		case BreachView:
			return m, m.submitBreach()
		case ChatView:
			return m, m.submitChat()
		}
		// Dashboard has no submit action; the phishing textarea keeps enter
		// for newlines and submits on ctrl+s.
	}

	return m.updateActiveInput(msg)
}

// updateActiveInput routes a key event into the focused input. The password
// field additionally drives the live analysis path: every edit issues a
// request with the full current value, and clearing the field hides the
// result region without a request.
func (m Model) updateActiveInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.searchMode {
		var cmd tea.Cmd
		m.searchInput, cmd = m.searchInput.Update(msg)
		return m, cmd
	}

	var cmd tea.Cmd
	switch m.router.Active() {
	case URLScannerView:
		m.urlInput, cmd = m.urlInput.Update(msg)

	case PasswordLabView:
		before := m.pwdInput.Value()
		m.pwdInput, cmd = m.pwdInput.Update(msg)
		after := m.pwdInput.Value()
		if after == before {
			return m, cmd
		}
		if after == "" {
			m.pwdReport = nil
			return m, cmd
		}
		m.pwdSeq++
		return m, tea.Batch(cmd, m.livePasswordCmd(after, m.pwdSeq))

	case PhishingView:
		m.textInput, cmd = m.textInput.Update(msg)

	case BreachView:
		m.breachInput, cmd = m.breachInput.Update(msg)

	case ChatView:
		m.chatInput, cmd = m.chatInput.Update(msg)
	}
	return m, cmd
}

// switchView routes every navigation through the Router and refocuses the
// active view's input. Unknown targets cannot occur from the key bindings,
// but the error path still logs rather than silently deactivating.
func (m *Model) switchView(v View) {
	if err := m.router.SwitchTo(v); err != nil {
		m.logger.Warn(utils.LogEntry{SessionID: m.sessionID, Message: "Rejected view switch", Error: err.Error()})
		return
	}
	m.searchMode = false
	m.focusActive()
}

// focusActive focuses the primary input of the active view and blurs the
// others.
func (m *Model) focusActive() {
	m.blurAll()
	switch m.router.Active() {
	case URLScannerView:
		m.urlInput.Focus()
	case PasswordLabView:
		m.pwdInput.Focus()
	case PhishingView:
		m.textInput.Focus()
	case BreachView:
		m.breachInput.Focus()
	case ChatView:
		m.chatInput.Focus()
	}
}

func (m *Model) blurAll() {
	m.urlInput.Blur()
	m.pwdInput.Blur()
	m.textInput.Blur()
	m.breachInput.Blur()
	m.chatInput.Blur()
	m.searchInput.Blur()
}

// resizeInputs spreads the window width across the input fields.
func (m *Model) resizeInputs() {
	fieldWidth := m.width - 12
	if fieldWidth < 20 {
		fieldWidth = 20
	}
	m.urlInput.Width = fieldWidth
	m.pwdInput.Width = fieldWidth
	m.breachInput.Width = fieldWidth
	m.chatInput.Width = fieldWidth
	m.searchInput.Width = fieldWidth / 2
	m.textInput.SetWidth(fieldWidth)
	m.textInput.SetHeight(6)
}
