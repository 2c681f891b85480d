package tui

import (
	"github.com/charmbracelet/lipgloss"

	"cyberintel/cyberintel/panel"
)

// UI Symbols & Icons
// These constants provide a consistent set of visual cues across the TUI.
const (
	// Prompts & Pointers
	SymbolPrompt     = "❯" // Heavy right-pointing angle quotation mark
	SymbolArrowRight = "»" // Right-pointing double angle quotation mark

	// Status Indicators
	SymbolSuccess = "✔" // Heavy Check Mark
	SymbolFailure = "✘" // Heavy Ballot X
	SymbolWarning = "⚠" // Warning Sign
	SymbolInfo    = "ℹ" // Information Source

	// List Markers
	SymbolListItem    = "▪" // Black Small Square
	SymbolListSubItem = "•" // Bullet

	// Meter / Gauge blocks
	SymbolMeterFill  = "█" // Full Block
	SymbolMeterEmpty = "░" // Light Shade
	SymbolGaugeFill  = "▓" // Dark Shade
	SymbolGaugeEmpty = "░" // Light Shade

	// Nav / Focus
	SymbolActiveNav  = "▶" // Black Right-Pointing Triangle
	SymbolFocused    = "▸" // Black Right-Pointing Small Triangle
	SymbolNotFocused = " " // Space for alignment

	// Chat
	SymbolUserTurn      = "❯" // Prefix for user turns
	SymbolAssistantTurn = "◈" // Prefix for assistant turns
)

// Color Palette (Inspired by the cyber/neon dashboard theme)
// Using ANSI 256 color codes for wider compatibility.
var (
	// Base Colors
	BaseText       = lipgloss.Color("252") // Light Grey / Off-white
	SubtleGreyText = lipgloss.Color("244") // Medium Grey

	// Primary/Accent Colors (Cyber blues)
	PrimaryBlue = lipgloss.Color("39")  // Deep Sky Blue (#00AFFF)
	BrightCyan  = lipgloss.Color("51")  // Bright Cyan highlight
	DarkerBlue  = lipgloss.Color("25")  // Dimmer blue for secondary chrome

	// Status Colors
	SuccessColor = lipgloss.Color("77")  // Bright Green
	ErrorColor   = lipgloss.Color("160") // Bright Red
	WarningColor = lipgloss.Color("220") // Bright Yellow
	InfoColor    = lipgloss.Color("75")  // Bright Cyan/Blue

	// Border and UI Element Colors
	BorderColor         = lipgloss.Color("240") // Medium-Dark Grey
	ActiveBorderColor   = PrimaryBlue
	InactiveBorderColor = lipgloss.Color("238") // Darker Grey
)

// General Application Styles
var (
	// HeaderStyle for section titles within views.
	HeaderStyle = lipgloss.NewStyle().
			Foreground(PrimaryBlue).
			Bold(true).
			MarginBottom(1)

	// NormalTextStyle for general body text.
	NormalTextStyle = lipgloss.NewStyle().
			Foreground(BaseText)

	// SubtleTextStyle for less important information or disabled elements.
	SubtleTextStyle = lipgloss.NewStyle().
			Foreground(SubtleGreyText)

	// HelpTextStyle for keybinding hints and footer text.
	HelpTextStyle = lipgloss.NewStyle().
			Foreground(SubtleGreyText).
			PaddingTop(1)
)

// Navigation Styles
var (
	// NavItemStyle is for an individual, inactive navigation entry.
	NavItemStyle = lipgloss.NewStyle().
			Foreground(SubtleGreyText).
			Padding(0, 1)

	// ActiveNavItemStyle is for the currently selected navigation entry.
	ActiveNavItemStyle = NavItemStyle.Copy().
				Foreground(PrimaryBlue).
				Bold(true)

	// NavSeparator defines the style for the separator between nav entries.
	NavSeparator = lipgloss.NewStyle().
			Foreground(InactiveBorderColor)
)

// Status Message Styles
var (
	SuccessTextStyle = lipgloss.NewStyle().
				Foreground(SuccessColor).
				Bold(true)

	ErrorTextStyle = lipgloss.NewStyle().
			Foreground(ErrorColor).
			Bold(true)

	WarningTextStyle = lipgloss.NewStyle().
				Foreground(WarningColor).
				Bold(true)

	InfoTextStyle = lipgloss.NewStyle().
			Foreground(InfoColor)
)

// Toast Styles
var (
	ToastStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			Padding(0, 1)

	// FadingToastStyle dims a toast during its fade phase.
	FadingToastStyle = lipgloss.NewStyle().
				Foreground(SubtleGreyText).
				Faint(true)
)

// Badge Styles (activity log, verdicts)
var (
	BadgeSafeStyle = lipgloss.NewStyle().
			Foreground(SuccessColor).
			Bold(true)

	BadgeWarningStyle = lipgloss.NewStyle().
				Foreground(WarningColor).
				Bold(true)

	BadgeDangerStyle = lipgloss.NewStyle().
				Foreground(ErrorColor).
				Bold(true)
)

// Chat Styles
var (
	UserBubbleStyle = lipgloss.NewStyle().
			Foreground(BaseText).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(DarkerBlue).
			Padding(0, 1)

	AssistantBubbleStyle = lipgloss.NewStyle().
				Foreground(BaseText).
				Border(lipgloss.RoundedBorder()).
				BorderForeground(BorderColor).
				Padding(0, 1)

	StrongChatStyle = lipgloss.NewStyle().Bold(true).Foreground(BrightCyan)
)

// Container/Box Styles
var (
	// General purpose box with a border
	BoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(BorderColor).
			Padding(1, 2)

	ActiveBoxStyle = BoxStyle.Copy().
			BorderForeground(ActiveBorderColor)
)

// colorClassStyle picks the text style matching a view-model color class.
func colorClassStyle(c panel.ColorClass) lipgloss.Style {
	switch c {
	case panel.ClassGreen:
		return SuccessTextStyle
	case panel.ClassYellow:
		return WarningTextStyle
	default:
		return ErrorTextStyle
	}
}
