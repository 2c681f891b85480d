package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"

	"cyberintel/cyberintel/notify"
	"cyberintel/cyberintel/panel"
)

// View renders the TUI: header with navigation, the active panel, the toast
// stack and a help footer.
func (m Model) View() string {
	var s strings.Builder

	s.WriteString(m.renderHeader())
	s.WriteString("\n")

	if m.router.OverlayOpen() {
		s.WriteString(m.renderProfileOverlay())
		s.WriteString("\n")
	}

	switch m.router.Active() {
	case DashboardView:
		s.WriteString(m.renderDashboard())
	case URLScannerView:
		s.WriteString(m.renderURLScanner())
	case PasswordLabView:
		s.WriteString(m.renderPasswordLab())
	case PhishingView:
		s.WriteString(m.renderPhishing())
	case BreachView:
		s.WriteString(m.renderBreach())
	case ChatView:
		s.WriteString(m.renderChat())
	}

	if toasts := m.renderToasts(); toasts != "" {
		s.WriteString("\n")
		s.WriteString(toasts)
	}

	s.WriteString("\n")
	s.WriteString(m.renderFooter())
	return s.String()
}

// renderHeader draws the title row and the navigation bar. The active nav
// entry is derived from the router, so the indicator can never disagree with
// the active view.
func (m Model) renderHeader() string {
	title := HeaderStyle.Render("CYBERINTEL " + SymbolArrowRight + " Security Analytics")

	entries := make([]string, 0, int(numViews))
	for v := View(0); v < numViews; v++ {
		name := v.String()
		if v == m.router.Active() {
			entries = append(entries, ActiveNavItemStyle.Render(SymbolActiveNav+" "+name))
		} else {
			entries = append(entries, NavItemStyle.Render(name))
		}
	}
	nav := strings.Join(entries, NavSeparator.Render("|"))

	if m.searchMode {
		nav += "\n" + InfoTextStyle.Render("Search: ") + m.searchInput.View()
	}
	return title + "\n" + nav + "\n"
}

// renderProfileOverlay draws the transient profile popup. Any navigation
// closes it.
func (m Model) renderProfileOverlay() string {
	content := strings.Join([]string{
		NormalTextStyle.Render("Operator: analyst"),
		SubtleTextStyle.Render("Session " + m.sessionID[:8]),
		SubtleTextStyle.Render("esc to close"),
	}, "\n")
	return ActiveBoxStyle.Render(content)
}

func (m Model) renderDashboard() string {
	var s strings.Builder
	s.WriteString(HeaderStyle.Render("Threat Overview"))
	s.WriteString("\n")

	if m.summary == nil {
		s.WriteString(SubtleTextStyle.Render("Loading dashboard metrics..."))
		s.WriteString("\n")
		return s.String()
	}

	counters := fmt.Sprintf("Total Scans: %s    Threats Detected: %s",
		NormalTextStyle.Bold(true).Render(fmt.Sprintf("%d", m.summary.TotalScans)),
		ErrorTextStyle.Render(fmt.Sprintf("%d", m.summary.ThreatsDetected)))
	s.WriteString(counters)
	s.WriteString("\n\n")

	s.WriteString(SubtleTextStyle.Render("Risk Score"))
	s.WriteString("\n")
	s.WriteString(renderGauge(m.summary.RiskScore, 21))
	s.WriteString("\n")

	s.WriteString(HeaderStyle.Render("Recent Activity"))
	s.WriteString("\n")
	if len(m.summary.Activity) == 0 {
		s.WriteString(SubtleTextStyle.Render("No recent activity."))
		s.WriteString("\n")
	}
	for _, act := range m.summary.Activity {
		badge := activityBadgeStyle(act.Level).Render(act.Status)
		s.WriteString(fmt.Sprintf(" %s %s %s %s\n",
			SymbolListItem,
			NormalTextStyle.Render(act.Action),
			SubtleTextStyle.Render(act.Time),
			badge))
	}
	return s.String()
}

func (m Model) renderURLScanner() string {
	var s strings.Builder
	s.WriteString(HeaderStyle.Render("URL Reputation Scanner"))
	s.WriteString("\n")
	s.WriteString(m.urlInput.View())
	s.WriteString("\n\n")
	s.WriteString(m.renderActionButton(controlScanURL, labelScanURL))
	s.WriteString("\n")

	if m.urlReport != nil {
		s.WriteString("\n")
		s.WriteString(renderVerdictReport(*m.urlReport, "Risk Score"))
	}
	return s.String()
}

func (m Model) renderPasswordLab() string {
	var s strings.Builder
	s.WriteString(HeaderStyle.Render("Password Strength Lab"))
	s.WriteString("\n")
	s.WriteString(m.pwdInput.View())
	s.WriteString("\n")
	if m.pwdRevealed {
		s.WriteString(SubtleTextStyle.Render("ctrl+t to hide password"))
	} else {
		s.WriteString(SubtleTextStyle.Render("ctrl+t to reveal password"))
	}
	s.WriteString("\n\n")
	s.WriteString(m.renderActionButton(controlAnalyzePwd, labelAnalyzePwd))
	s.WriteString("\n")

	if m.pwdReport == nil {
		return s.String()
	}
	r := *m.pwdReport

	s.WriteString("\n")
	bandStyle := colorClassStyle(r.Band.Class)
	s.WriteString(renderMeter(r.Score, 30, r.Band.Class))
	s.WriteString("  ")
	s.WriteString(bandStyle.Render(r.Band.Label))
	s.WriteString("\n\n")
	s.WriteString(fmt.Sprintf("Crack Time: %s    Entropy: %s\n",
		NormalTextStyle.Bold(true).Render(r.CrackTime),
		NormalTextStyle.Bold(true).Render(fmt.Sprintf("%.1f", r.Entropy))))

	if r.Warning != "" {
		s.WriteString("\n")
		s.WriteString(WarningTextStyle.Render(SymbolWarning + " " + r.Warning))
		s.WriteString("\n")
	}
	if len(r.Suggestions) > 0 {
		s.WriteString("\n")
		for _, suggestion := range r.Suggestions {
			s.WriteString(fmt.Sprintf(" %s %s\n", SymbolListSubItem, NormalTextStyle.Render(suggestion)))
		}
	}
	return s.String()
}

func (m Model) renderPhishing() string {
	var s strings.Builder
	s.WriteString(HeaderStyle.Render("Phishing Text Detector"))
	s.WriteString("\n")
	s.WriteString(m.textInput.View())
	s.WriteString("\n\n")
	s.WriteString(m.renderActionButton(controlScanText, labelScanText))
	s.WriteString(SubtleTextStyle.Render("  (ctrl+s)"))
	s.WriteString("\n")

	if m.textReport != nil {
		s.WriteString("\n")
		s.WriteString(renderVerdictReport(*m.textReport, "Phishing Probability"))
	}
	return s.String()
}

func (m Model) renderBreach() string {
	var s strings.Builder
	s.WriteString(HeaderStyle.Render("Breach Database Check"))
	s.WriteString("\n")
	s.WriteString(m.breachInput.View())
	s.WriteString("\n\n")
	s.WriteString(m.renderActionButton(controlSearchBreach, labelSearchBreach))
	s.WriteString("\n")

	if m.breachReport == nil {
		return s.String()
	}
	r := *m.breachReport

	s.WriteString("\n")
	if r.Safe {
		s.WriteString(SuccessTextStyle.Render(SymbolSuccess + " " + r.Message))
		s.WriteString("\n")
		return s.String()
	}

	s.WriteString(ErrorTextStyle.Render(SymbolWarning + " " + r.Message))
	s.WriteString("\n\n")
	for _, card := range r.Cards {
		var c strings.Builder
		c.WriteString(ErrorTextStyle.Render(card.BreachName))
		c.WriteString(SubtleTextStyle.Render("  " + card.Date))
		c.WriteString("\n")
		c.WriteString(NormalTextStyle.Render(card.Description))
		c.WriteString("\n")
		c.WriteString(SubtleTextStyle.Render("Compromised Data: "))
		tags := make([]string, len(card.DataCompromised))
		for i, tag := range card.DataCompromised {
			tags[i] = WarningTextStyle.Render("[" + tag + "]")
		}
		c.WriteString(strings.Join(tags, " "))
		s.WriteString(BoxStyle.Render(c.String()))
		s.WriteString("\n")
	}
	return s.String()
}

func (m Model) renderChat() string {
	var s strings.Builder
	s.WriteString(HeaderStyle.Render("Sentinel AI Assistant"))
	s.WriteString("\n")
	s.WriteString(m.chatView.View())
	s.WriteString("\n")
	s.WriteString(m.chatInput.View())
	s.WriteString("\n")
	return s.String()
}

// syncChatViewport rebuilds the chat transcript in the viewport and scrolls
// to the newest turn.
func (m *Model) syncChatViewport() {
	width := m.width - 8
	if width < 24 {
		width = 24
	}
	height := m.height - 12
	if height < 5 {
		height = 5
	}
	m.chatView.Width = width
	m.chatView.Height = height

	var s strings.Builder
	for _, turn := range m.chatLog {
		s.WriteString(renderChatTurn(turn, width))
		s.WriteString("\n")
	}
	if m.chatTyping {
		s.WriteString(AssistantBubbleStyle.Render(m.chatSpinner.View() + " typing"))
		s.WriteString("\n")
	}
	m.chatView.SetContent(s.String())
	m.chatView.GotoBottom()
}

// renderChatTurn draws one bubble. Assistant text resolves the paired
// double-asterisk markup into bold runs.
func renderChatTurn(turn panel.ChatTurn, width int) string {
	bubbleWidth := width - 4
	if bubbleWidth < 16 {
		bubbleWidth = 16
	}

	if turn.Speaker == panel.SpeakerUser {
		body := wordwrap.String(turn.Text, bubbleWidth)
		return UserBubbleStyle.Render(SymbolUserTurn + " " + body)
	}

	var body strings.Builder
	for _, segment := range panel.SplitEmphasis(turn.Text) {
		if segment.Strong {
			body.WriteString(StrongChatStyle.Render(segment.Text))
		} else {
			body.WriteString(segment.Text)
		}
	}
	return AssistantBubbleStyle.Render(SymbolAssistantTurn + " " + wordwrap.String(body.String(), bubbleWidth))
}

// renderActionButton draws one network-triggering button, swapping in the
// busy label while its request is in flight.
func (m Model) renderActionButton(control string, idleLabel string) string {
	label := m.actions.BusyLabel(control, idleLabel)
	if m.actions.IsBusy(control) {
		return SubtleTextStyle.Render("[ " + label + " ]")
	}
	return ActiveNavItemStyle.Render("[ " + label + " ]") + SubtleTextStyle.Render("  (enter)")
}

// renderVerdictReport draws the shared score/verdict/reasons projection of
// the URL and phishing panels.
func renderVerdictReport(r panel.VerdictReport, scoreLabel string) string {
	var s strings.Builder
	scoreStyle := colorClassStyle(r.Class)

	s.WriteString(fmt.Sprintf("%s: %s\n", SubtleTextStyle.Render(scoreLabel), scoreStyle.Render(fmt.Sprintf("%d", r.Score))))
	s.WriteString(fmt.Sprintf("%s %s\n", SubtleTextStyle.Render("Verdict:"), scoreStyle.Render(r.Verdict)))

	if len(r.Reasons) > 0 {
		s.WriteString("\n")
	}
	for _, reason := range r.Reasons {
		icon, style := reasonIcon(reason.Type)
		s.WriteString(fmt.Sprintf(" %s %s\n   %s\n",
			style.Render(icon),
			NormalTextStyle.Bold(true).Render(reason.Label),
			SubtleTextStyle.Render(reason.Desc)))
	}
	return s.String()
}

// reasonIcon maps a reason severity token onto its icon and style.
func reasonIcon(reasonType string) (string, lipgloss.Style) {
	switch reasonType {
	case "danger":
		return SymbolFailure, ErrorTextStyle
	case "warning":
		return SymbolWarning, WarningTextStyle
	default:
		return SymbolSuccess, SuccessTextStyle
	}
}

// activityBadgeStyle maps an activity level onto its badge style.
func activityBadgeStyle(level panel.ActivityLevel) lipgloss.Style {
	switch level {
	case panel.ActivityDanger:
		return BadgeDangerStyle
	case panel.ActivityWarning:
		return BadgeWarningStyle
	default:
		return BadgeSafeStyle
	}
}

// renderToasts draws the notification stack, oldest first. Fading toasts
// dim out before removal.
func (m Model) renderToasts() string {
	items := m.toasts.Items()
	if len(items) == 0 {
		return ""
	}

	rendered := make([]string, 0, len(items))
	for _, n := range items {
		icon, style := toastIcon(n.Severity)
		line := style.Render(icon) + " " + NormalTextStyle.Render(n.Message)
		box := ToastStyle.Copy().BorderForeground(toastBorder(n.Severity)).Render(line)
		if n.Phase == notify.PhaseFading {
			box = FadingToastStyle.Render(box)
		}
		rendered = append(rendered, box)
	}
	return lipgloss.JoinVertical(lipgloss.Left, rendered...)
}

func toastIcon(severity notify.Severity) (string, lipgloss.Style) {
	switch severity {
	case notify.SeverityError:
		return SymbolFailure, ErrorTextStyle
	case notify.SeverityWarning:
		return SymbolWarning, WarningTextStyle
	case notify.SeverityInfo:
		return SymbolInfo, InfoTextStyle
	default:
		return SymbolSuccess, SuccessTextStyle
	}
}

func toastBorder(severity notify.Severity) lipgloss.Color {
	switch severity {
	case notify.SeverityError:
		return ErrorColor
	case notify.SeverityWarning:
		return WarningColor
	case notify.SeverityInfo:
		return InfoColor
	default:
		return SuccessColor
	}
}

func (m Model) renderFooter() string {
	return HelpTextStyle.Render("ctrl+n/ctrl+p views " + SymbolListSubItem + " ctrl+f search " + SymbolListSubItem + " ctrl+b alerts " + SymbolListSubItem + " ctrl+o profile " + SymbolListSubItem + " ctrl+c quit")
}
