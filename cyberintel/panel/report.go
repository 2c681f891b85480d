package panel

import "cyberintel/cyberintel/api"

// StrongPasswordPraise is the fixed suggestion substituted when the analyzer
// returns no suggestions for a score in the Strong band.
const StrongPasswordPraise = "Great job! This password is highly secure."

// FallbackRiskScore is the gauge value rendered when the dashboard stats
// request fails, so the gauge is never left empty.
const FallbackRiskScore = 35

// VerdictReport is the shared projection of the URL and phishing-text
// responses: a score, a verdict colored by badge class, and the ordered
// evidence list.
type VerdictReport struct {
	Score      int
	BadgeClass string
	Class      ColorClass
	Verdict    string
	Reasons    []api.Reason
}

// BuildURLReport projects a URL analysis response into its view model.
func BuildURLReport(resp *api.URLAnalysis) VerdictReport {
	return VerdictReport{
		Score:      resp.RiskScore,
		BadgeClass: resp.BadgeClass,
		Class:      VerdictClass(resp.BadgeClass),
		Verdict:    resp.Verdict,
		Reasons:    resp.Reasons,
	}
}

// BuildTextReport projects a phishing-text analysis response into its view
// model. The phishing endpoint omits per-reason severity, so every reason
// inherits a type from the overall badge class: informational when safe,
// warning otherwise.
func BuildTextReport(resp *api.TextAnalysis) VerdictReport {
	reasonType := "safe"
	if resp.BadgeClass != "safe" {
		reasonType = "warning"
	}
	reasons := make([]api.Reason, len(resp.Reasons))
	for i, r := range resp.Reasons {
		reasons[i] = api.Reason{Type: reasonType, Label: r.Label, Desc: r.Desc}
	}
	return VerdictReport{
		Score:      resp.Probability,
		BadgeClass: resp.BadgeClass,
		Class:      VerdictClass(resp.BadgeClass),
		Verdict:    resp.Verdict,
		Reasons:    reasons,
	}
}

// PasswordReport is the view model of one password strength response.
type PasswordReport struct {
	Score       int
	Band        Band
	CrackTime   string
	Entropy     float64
	Warning     string
	Suggestions []string
}

// BuildPasswordReport projects a password analysis response. When the
// analyzer has no suggestions and the score is in the Strong band, a single
// congratulatory line is substituted.
func BuildPasswordReport(resp *api.PasswordAnalysis) PasswordReport {
	suggestions := resp.Feedback.Suggestions
	if len(suggestions) == 0 && resp.Score >= 70 {
		suggestions = []string{StrongPasswordPraise}
	}
	return PasswordReport{
		Score:       resp.Score,
		Band:        BandFor(resp.Score),
		CrackTime:   resp.CrackTime,
		Entropy:     resp.Entropy,
		Warning:     resp.Feedback.Warning,
		Suggestions: suggestions,
	}
}

// BreachReport is the view model of one breach lookup response. Safe
// determines whether the card list is shown at all; on a safe status only
// the banner message renders.
type BreachReport struct {
	Safe    bool
	Message string
	Cards   []api.BreachRecord
}

// BuildBreachReport projects a breach lookup response. Cards keep the order
// the server provided; on a safe status they are dropped entirely rather
// than rendered empty.
func BuildBreachReport(resp *api.BreachResult) BreachReport {
	if resp.Status == "safe" {
		return BreachReport{Safe: true, Message: resp.Message}
	}
	return BreachReport{
		Safe:    false,
		Message: resp.Message,
		Cards:   resp.Breaches,
	}
}

// Activity is one classified recent-activity row.
type Activity struct {
	Action string
	Time   string
	Status string
	Level  ActivityLevel
}

// Summary is the view model of the dashboard: the counters, the swept gauge
// score and the classified activity feed.
type Summary struct {
	TotalScans      int
	ThreatsDetected int
	RiskScore       int
	Activity        []Activity
}

// BuildSummary projects the dashboard stats response, classifying each
// activity entry as it goes.
func BuildSummary(resp *api.DashboardStats) Summary {
	activity := make([]Activity, len(resp.RecentActivity))
	for i, a := range resp.RecentActivity {
		activity[i] = Activity{
			Action: a.Action,
			Time:   a.Time,
			Status: a.Status,
			Level:  ClassifyActivity(a.Status),
		}
	}
	return Summary{
		TotalScans:      resp.TotalScans,
		ThreatsDetected: resp.ThreatsDetected,
		RiskScore:       resp.RiskScore,
		Activity:        activity,
	}
}

// FallbackSummary is the summary rendered when the stats request fails: no
// counters or activity, just the fixed fallback gauge score.
func FallbackSummary() Summary {
	return Summary{RiskScore: FallbackRiskScore}
}
