package api

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cyberintel/cyberintel/config"
	"cyberintel/cyberintel/utils"
)

func newTestClient(t *testing.T, handler http.Handler) (*Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	cfg := &config.AppConfig{
		APIBaseURL:            srv.URL,
		RequestTimeoutSeconds: 5,
		DefaultHeaders:        map[string]string{"X-Client": "cyberintel-test"},
	}
	logger := utils.NewLogger(io.Discard, "ERROR")
	return NewClient(cfg, logger, "test-session"), srv
}

// TestAnalyzeURL checks the request shape and response decoding of the URL
// scanner endpoint.
func TestAnalyzeURL(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method, "endpoint should be POSTed")
		assert.Equal(t, "/analyze-url", r.URL.Path, "request path")
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"), "JSON content type expected")
		assert.Equal(t, "cyberintel-test", r.Header.Get("X-Client"), "default headers should be sent")

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body), "request body should be JSON")
		assert.Equal(t, "http://evil.example", body["url"], "payload should carry the url field")

		json.NewEncoder(w).Encode(URLAnalysis{
			RiskScore:  91,
			BadgeClass: "danger",
			Verdict:    "Dangerous",
			Reasons:    []Reason{{Type: "danger", Label: "Blacklisted", Desc: "Domain is on a blocklist"}},
		})
	}))

	analysis, err := client.AnalyzeURL(context.Background(), "http://evil.example")
	require.NoError(t, err, "AnalyzeURL should succeed")
	assert.Equal(t, 91, analysis.RiskScore, "risk score should decode")
	assert.Equal(t, "danger", analysis.BadgeClass, "badge class should decode")
	require.Len(t, analysis.Reasons, 1, "reasons should decode")
	assert.Equal(t, "Blacklisted", analysis.Reasons[0].Label, "reason label should decode")
}

// TestAnalyzePassword checks the password endpoint's payload field name and
// nested feedback decoding.
func TestAnalyzePassword(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/analyze-password", r.URL.Path, "request path")

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body), "request body should be JSON")
		assert.Equal(t, "hunter2", body["password"], "payload should carry the password field")

		json.NewEncoder(w).Encode(PasswordAnalysis{
			Score:     18,
			CrackTime: "less than a second",
			Entropy:   21.5,
			Feedback: PasswordFeedback{
				Warning:     "This is a commonly used password.",
				Suggestions: []string{"Add more words."},
			},
		})
	}))

	analysis, err := client.AnalyzePassword(context.Background(), "hunter2")
	require.NoError(t, err, "AnalyzePassword should succeed")
	assert.Equal(t, 18, analysis.Score, "score should decode")
	assert.Equal(t, "This is a commonly used password.", analysis.Feedback.Warning, "nested warning should decode")
	assert.InDelta(t, 21.5, analysis.Entropy, 0.001, "entropy should decode")
}

// TestAnalyzeText checks that the phishing detector posts to the email
// analysis path with a text field.
func TestAnalyzeText(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/analyze-email", r.URL.Path, "phishing text posts to the email analysis path")

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body), "request body should be JSON")
		assert.Equal(t, "URGENT: verify your account", body["text"], "payload should carry the text field")

		json.NewEncoder(w).Encode(TextAnalysis{Probability: 96, BadgeClass: "danger", Verdict: "Highly Suspicious"})
	}))

	analysis, err := client.AnalyzeText(context.Background(), "URGENT: verify your account")
	require.NoError(t, err, "AnalyzeText should succeed")
	assert.Equal(t, 96, analysis.Probability, "probability should decode")
}

// TestCheckBreach checks the breach lookup payload and card decoding.
func TestCheckBreach(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/check-breach", r.URL.Path, "request path")

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body), "request body should be JSON")
		assert.Equal(t, "user@example.com", body["email"], "payload should carry the email field")

		json.NewEncoder(w).Encode(BreachResult{
			Status:  "pwned",
			Message: "Oh no! Found in 1 breach.",
			Breaches: []BreachRecord{
				{BreachName: "MegaCorp", Date: "2023-01-15", Description: "Customer DB leak", DataCompromised: []string{"Emails", "Passwords"}},
			},
		})
	}))

	result, err := client.CheckBreach(context.Background(), "user@example.com")
	require.NoError(t, err, "CheckBreach should succeed")
	assert.Equal(t, "pwned", result.Status, "status should decode")
	require.Len(t, result.Breaches, 1, "breach record should decode")
	assert.Equal(t, []string{"Emails", "Passwords"}, result.Breaches[0].DataCompromised, "compromised data tags should decode")
}

// TestChat checks the chat endpoint payload and reply decoding.
func TestChat(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat", r.URL.Path, "request path")

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body), "request body should be JSON")
		assert.Equal(t, "how do I pick a password?", body["message"], "payload should carry the message field")

		json.NewEncoder(w).Encode(ChatReply{Response: "Use **long passphrases**."})
	}))

	reply, err := client.Chat(context.Background(), "how do I pick a password?")
	require.NoError(t, err, "Chat should succeed")
	assert.Equal(t, "Use **long passphrases**.", reply.Response, "reply text should decode")
}

// TestDashboardStats checks that the stats endpoint is fetched with GET and
// no body.
func TestDashboardStats(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method, "stats should be fetched with GET")
		assert.Equal(t, "/dashboard-stats", r.URL.Path, "request path")

		json.NewEncoder(w).Encode(DashboardStats{
			TotalScans:      42,
			ThreatsDetected: 3,
			RiskScore:       57,
			RecentActivity:  []ActivityEntry{{Action: "URL Scan", Time: "1 min ago", Status: "Scan Complete"}},
		})
	}))

	stats, err := client.DashboardStats(context.Background())
	require.NoError(t, err, "DashboardStats should succeed")
	assert.Equal(t, 42, stats.TotalScans, "counters should decode")
	require.Len(t, stats.RecentActivity, 1, "activity feed should decode")
}

// TestNonSuccessStatus checks that any non-2xx answer surfaces as a
// StatusError carrying the endpoint and code.
func TestNonSuccessStatus(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))

	_, err := client.AnalyzeURL(context.Background(), "http://example.com")
	require.Error(t, err, "a 500 answer should fail the call")

	var statusErr *StatusError
	require.ErrorAs(t, err, &statusErr, "error should be a StatusError")
	assert.Equal(t, http.StatusInternalServerError, statusErr.Code, "status code should be carried")
	assert.Equal(t, "/analyze-url", statusErr.Endpoint, "endpoint should be carried")
}

// TestMalformedResponse checks that a 200 with a non-JSON body still fails
// the call.
func TestMalformedResponse(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("<html>not json</html>"))
	}))

	_, err := client.Chat(context.Background(), "hello")
	assert.Error(t, err, "a malformed body should fail the call even on 200")
}

// TestContextCancellation checks that an already-cancelled context aborts
// the request.
func TestContextCancellation(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(ChatReply{Response: "too late"})
	}))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := client.Chat(ctx, "hello")
	assert.Error(t, err, "a cancelled context should abort the request")
}
