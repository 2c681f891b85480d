package api

// Request bodies. Each endpoint consumes a JSON object with a single field.

type urlRequest struct {
	URL string `json:"url"`
}

type passwordRequest struct {
	Password string `json:"password"`
}

type textRequest struct {
	Text string `json:"text"`
}

type emailRequest struct {
	Email string `json:"email"`
}

type chatRequest struct {
	Message string `json:"message"`
}

// Reason is one evidence entry explaining a verdict.
// Type is a severity token ("safe", "warning", "danger"); the phishing
// endpoint omits it.
type Reason struct {
	Type  string `json:"type,omitempty"`
	Label string `json:"label"`
	Desc  string `json:"desc"`
}

// URLAnalysis is the response of POST /analyze-url.
type URLAnalysis struct {
	RiskScore  int      `json:"risk_score"`
	BadgeClass string   `json:"badge_class"`
	Verdict    string   `json:"verdict"`
	Reasons    []Reason `json:"reasons"`
}

// PasswordFeedback carries the decomposed feedback structure of the password
// analyzer: at most one warning plus a list of suggestions.
type PasswordFeedback struct {
	Warning     string   `json:"warning"`
	Suggestions []string `json:"suggestions"`
}

// PasswordAnalysis is the response of POST /analyze-password.
type PasswordAnalysis struct {
	Score     int              `json:"score"`
	CrackTime string           `json:"crack_time"`
	Entropy   float64          `json:"entropy"`
	Feedback  PasswordFeedback `json:"feedback"`
}

// TextAnalysis is the response of POST /analyze-email (phishing-text detection).
type TextAnalysis struct {
	Probability int      `json:"probability"`
	BadgeClass  string   `json:"badge_class"`
	Verdict     string   `json:"verdict"`
	Reasons     []Reason `json:"reasons"`
}

// BreachRecord describes one breach a looked-up address appeared in.
type BreachRecord struct {
	BreachName      string   `json:"breach_name"`
	Date            string   `json:"date"`
	Description     string   `json:"description"`
	DataCompromised []string `json:"data_compromised"`
}

// BreachResult is the response of POST /check-breach. Status is "safe" when
// the address was not found; any other value means Breaches is populated.
type BreachResult struct {
	Status   string         `json:"status"`
	Message  string         `json:"message"`
	Breaches []BreachRecord `json:"breaches"`
}

// ChatReply is the response of POST /chat. Response may contain paired
// double-asterisk emphasis markup.
type ChatReply struct {
	Response string `json:"response"`
}

// ActivityEntry is one row of the dashboard's recent-activity feed.
type ActivityEntry struct {
	Action string `json:"action"`
	Time   string `json:"time"`
	Status string `json:"status"`
}

// DashboardStats is the response of GET /dashboard-stats.
type DashboardStats struct {
	TotalScans      int             `json:"total_scans"`
	ThreatsDetected int             `json:"threats_detected"`
	RiskScore       int             `json:"risk_score"`
	RecentActivity  []ActivityEntry `json:"recent_activity"`
}
