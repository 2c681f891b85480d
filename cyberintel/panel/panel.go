// Package panel holds the pure view-model layer of the client: score bands,
// badge and verdict classification, and the per-panel report projections the
// TUI renders. Nothing in this package touches the terminal or the network,
// which keeps the orchestration logic testable without a rendered surface.
package panel

import "strings"

// Kind identifies one analysis panel.
type Kind int

const (
	KindDashboard Kind = iota
	KindURL
	KindPassword
	KindPhishing
	KindBreach
	KindChat
)

// String returns the panel name used in logs.
func (k Kind) String() string {
	switch k {
	case KindDashboard:
		return "dashboard"
	case KindURL:
		return "url"
	case KindPassword:
		return "password"
	case KindPhishing:
		return "phishing"
	case KindBreach:
		return "breach"
	case KindChat:
		return "chat"
	default:
		return "unknown"
	}
}

// ColorClass is the categorical color a rendered value carries.
type ColorClass int

const (
	ClassGreen ColorClass = iota
	ClassYellow
	ClassRed
)

// Band is the qualitative strength band of a password score.
type Band struct {
	Label string
	Class ColorClass
}

// BandFor maps a numeric score onto its qualitative band. The mapping is
// total on [0,100]: [0,30) Weak, [30,70) Moderate, [70,100] Strong. Values
// outside the range clamp into the nearest band rather than failing.
func BandFor(score int) Band {
	switch {
	case score < 30:
		return Band{Label: "Weak", Class: ClassRed}
	case score < 70:
		return Band{Label: "Moderate", Class: ClassYellow}
	default:
		return Band{Label: "Strong", Class: ClassGreen}
	}
}

// VerdictClass maps a server badge_class token onto a render color. "safe"
// is the only contractually recognized value; "warning" gets the middle
// color and everything else falls into the danger branch.
func VerdictClass(badgeClass string) ColorClass {
	switch badgeClass {
	case "safe":
		return ClassGreen
	case "warning":
		return ClassYellow
	default:
		return ClassRed
	}
}

// ActivityLevel classifies one recent-activity entry for badge rendering.
type ActivityLevel int

const (
	ActivitySafe ActivityLevel = iota
	ActivityWarning
	ActivityDanger
)

// ClassifyActivity derives the badge level of an activity entry from its
// status text by case-insensitive substring match. First match wins: danger
// tokens are checked before the warning token, so a status mentioning both
// "phishing" and "weak" classifies as danger.
func ClassifyActivity(status string) ActivityLevel {
	lower := strings.ToLower(status)
	if strings.Contains(lower, "phishing") || strings.Contains(lower, "found") {
		return ActivityDanger
	}
	if strings.Contains(lower, "weak") {
		return ActivityWarning
	}
	return ActivitySafe
}
