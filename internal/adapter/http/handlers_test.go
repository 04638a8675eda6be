package adapthttp_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"math/rand"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"

	adapthttp "ecoguardian/internal/adapter/http"
	"ecoguardian/internal/adapter/memory"
	"ecoguardian/internal/ai"
	"ecoguardian/internal/app"
)

// stubClient lets tests script the remote model.
type stubClient func(ctx context.Context, systemPrompt, userPrompt string, maxTokens int, temperature float64) (string, error)

func (f stubClient) Complete(ctx context.Context, systemPrompt, userPrompt string, maxTokens int, temperature float64) (string, error) {
	return f(ctx, systemPrompt, userPrompt, maxTokens, temperature)
}

func newTestServer(t *testing.T, client ai.Client) (*httptest.Server, *http.Client) {
	t.Helper()

	db := memory.New()
	authSvc := app.NewAuthService(db, db, time.Hour)
	entrySvc := app.NewEntryService(db)
	goalSvc := app.NewGoalService(db)
	insightsSvc := app.NewInsightsService(db)

	if client == nil {
		client = stubClient(func(_ context.Context, _, _ string, _ int, _ float64) (string, error) {
			return "stub reply", nil
		})
	}
	advisor := ai.NewAdvisor(client)
	predictSvc := app.NewPredictionService(db, advisor)
	routeSvc := app.NewRouteService(rand.New(rand.NewSource(1)))

	webDir := t.TempDir()
	if err := os.WriteFile(filepath.Join(webDir, "index.html"), []byte("<html></html>"), 0o600); err != nil {
		t.Fatal(err)
	}

	srv := adapthttp.New(authSvc, entrySvc, goalSvc, insightsSvc, predictSvc, routeSvc, advisor, adapthttp.OIDCConfig{}, zerolog.Nop(), webDir)
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)

	jar, err := cookiejar.New(nil)
	if err != nil {
		t.Fatal(err)
	}
	return ts, &http.Client{Jar: jar}
}

func signup(t *testing.T, ts *httptest.Server, hc *http.Client, username string) {
	t.Helper()
	resp := postJSON(t, ts, hc, "/api/auth/signup", map[string]any{
		"username": username,
		"password": "secret123",
	})
	defer resp.Body.Close() //nolint:errcheck
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("signup: expected 201, got %d", resp.StatusCode)
	}
}

func postJSON(t *testing.T, ts *httptest.Server, hc *http.Client, path string, payload any) *http.Response {
	t.Helper()
	b, _ := json.Marshal(payload)
	resp, err := hc.Post(ts.URL+path, "application/json", bytes.NewReader(b))
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	return resp
}

func decodeBody(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()
	var m map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&m); err != nil {
		t.Fatalf("failed to decode response body: %v", err)
	}
	return m
}

// ---------------------------------------------------------------------------
// Tests
// ---------------------------------------------------------------------------

func TestHealthEndpoint(t *testing.T) {
	ts, hc := newTestServer(t, nil)

	resp, err := hc.Get(ts.URL + "/api/health")
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close() //nolint:errcheck

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	body := decodeBody(t, resp)
	if body["ok"] != true {
		t.Fatalf("expected ok=true, got %v", body["ok"])
	}
}

func TestSignupLoginFlow(t *testing.T) {
	ts, hc := newTestServer(t, nil)
	signup(t, ts, hc, "alice")

	// Duplicate username is rejected
	resp := postJSON(t, ts, hc, "/api/auth/signup", map[string]any{"username": "alice", "password": "secret123"})
	resp.Body.Close() //nolint:errcheck
	if resp.StatusCode != http.StatusConflict {
		t.Fatalf("expected 409, got %d", resp.StatusCode)
	}

	// Session cookie grants access to /auth/me
	resp, err := hc.Get(ts.URL + "/api/auth/me")
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close() //nolint:errcheck
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	body := decodeBody(t, resp)
	if body["username"] != "alice" {
		t.Fatalf("expected username alice, got %v", body["username"])
	}

	// Wrong password
	resp = postJSON(t, ts, hc, "/api/auth/login", map[string]any{"username": "alice", "password": "wrong"})
	resp.Body.Close() //nolint:errcheck
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", resp.StatusCode)
	}
}

func TestLogoutClearsSession(t *testing.T) {
	ts, hc := newTestServer(t, nil)
	signup(t, ts, hc, "alice")

	resp := postJSON(t, ts, hc, "/api/auth/logout", map[string]any{})
	resp.Body.Close() //nolint:errcheck
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	resp, err := hc.Get(ts.URL + "/api/auth/me")
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	resp.Body.Close() //nolint:errcheck
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected 401 after logout, got %d", resp.StatusCode)
	}
}

func TestEntriesRequireAuth(t *testing.T) {
	ts, hc := newTestServer(t, nil)

	resp, err := hc.Get(ts.URL + "/api/carbon-entries")
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	resp.Body.Close() //nolint:errcheck
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", resp.StatusCode)
	}
}

func TestEntryCreateAndList(t *testing.T) {
	ts, hc := newTestServer(t, nil)
	signup(t, ts, hc, "alice")

	resp := postJSON(t, ts, hc, "/api/carbon-entries", map[string]any{
		"category":    "transportation",
		"amount":      12.5,
		"description": "bus to work",
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("expected 201, got %d", resp.StatusCode)
	}
	created := decodeBody(t, resp)
	resp.Body.Close() //nolint:errcheck
	if created["id"] == "" || created["category"] != "transportation" {
		t.Fatalf("unexpected entry: %v", created)
	}

	// Invalid category
	resp = postJSON(t, ts, hc, "/api/carbon-entries", map[string]any{"category": "aviation", "amount": 1})
	resp.Body.Close() //nolint:errcheck
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}

	resp, err := hc.Get(ts.URL + "/api/carbon-entries")
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	body := decodeBody(t, resp)
	resp.Body.Close() //nolint:errcheck
	items, ok := body["items"].([]any)
	if !ok || len(items) != 1 {
		t.Fatalf("expected 1 item, got %v", body["items"])
	}
}

func TestEntryListRange(t *testing.T) {
	ts, hc := newTestServer(t, nil)
	signup(t, ts, hc, "alice")

	resp := postJSON(t, ts, hc, "/api/carbon-entries", map[string]any{"category": "food", "amount": 2})
	resp.Body.Close() //nolint:errcheck

	from := time.Now().UTC().Add(-24 * time.Hour).Format(time.RFC3339)
	resp, err := hc.Get(ts.URL + "/api/carbon-entries?from=" + from)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	body := decodeBody(t, resp)
	resp.Body.Close() //nolint:errcheck
	if items, ok := body["items"].([]any); !ok || len(items) != 1 {
		t.Fatalf("expected 1 item in range, got %v", body["items"])
	}

	resp, err = hc.Get(ts.URL + "/api/carbon-entries?from=not-a-date")
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	resp.Body.Close() //nolint:errcheck
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400 for bad from, got %d", resp.StatusCode)
	}
}

func TestStatsAndDashboard(t *testing.T) {
	ts, hc := newTestServer(t, nil)
	signup(t, ts, hc, "alice")

	resp := postJSON(t, ts, hc, "/api/carbon-entries", map[string]any{"category": "energy", "amount": 10})
	resp.Body.Close() //nolint:errcheck

	resp, err := hc.Get(ts.URL + "/api/carbon-entries/stats")
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	stats := decodeBody(t, resp)
	resp.Body.Close() //nolint:errcheck
	if stats["total"] != 10.0 {
		t.Fatalf("expected total 10, got %v", stats["total"])
	}

	resp, err = hc.Get(ts.URL + "/api/dashboard-metrics")
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	metrics := decodeBody(t, resp)
	resp.Body.Close() //nolint:errcheck
	for _, field := range []string{"carbonSavedToday", "sustainabilityScore", "todayTotal", "averageDaily"} {
		if _, ok := metrics[field]; !ok {
			t.Fatalf("dashboard response missing %q: %v", field, metrics)
		}
	}

	resp, err = hc.Get(ts.URL + "/api/carbon-entries/analytics")
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	analytics := decodeBody(t, resp)
	resp.Body.Close() //nolint:errcheck
	if daily, ok := analytics["dailyTotals"].([]any); !ok || len(daily) != 30 {
		t.Fatalf("expected 30 daily totals, got %v", analytics["dailyTotals"])
	}
}

func TestGoals(t *testing.T) {
	ts, hc := newTestServer(t, nil)
	signup(t, ts, hc, "alice")

	resp := postJSON(t, ts, hc, "/api/goals", map[string]any{
		"category":     "food",
		"targetAmount": 25,
		"period":       "week",
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("expected 201, got %d", resp.StatusCode)
	}
	resp.Body.Close() //nolint:errcheck

	resp = postJSON(t, ts, hc, "/api/goals", map[string]any{"category": "food", "targetAmount": 0, "period": "week"})
	resp.Body.Close() //nolint:errcheck
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400 for zero target, got %d", resp.StatusCode)
	}

	resp, err := hc.Get(ts.URL + "/api/goals/active")
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	body := decodeBody(t, resp)
	resp.Body.Close() //nolint:errcheck
	goal, ok := body["goal"].(map[string]any)
	if !ok || goal["category"] != "food" {
		t.Fatalf("unexpected active goal: %v", body["goal"])
	}
}

func TestChatStreamsSingleFrame(t *testing.T) {
	client := stubClient(func(_ context.Context, _, userPrompt string, _ int, _ float64) (string, error) {
		if !strings.Contains(userPrompt, "how do I cut my footprint?") {
			t.Errorf("user prompt missing message: %q", userPrompt)
		}
		return "Ride a bike.", nil
	})
	ts, hc := newTestServer(t, client)
	signup(t, ts, hc, "alice")

	resp := postJSON(t, ts, hc, "/api/chat", map[string]any{"message": "how do I cut my footprint?"})
	defer resp.Body.Close() //nolint:errcheck
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); ct != "text/event-stream" {
		t.Fatalf("expected event stream, got %q", ct)
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	frame := string(raw)
	if !strings.HasPrefix(frame, "data: ") || !strings.HasSuffix(frame, "\n\n") {
		t.Fatalf("malformed SSE frame: %q", frame)
	}

	var payload map[string]string
	if err := json.Unmarshal([]byte(strings.TrimSuffix(strings.TrimPrefix(frame, "data: "), "\n\n")), &payload); err != nil {
		t.Fatalf("frame payload not json: %v", err)
	}
	if payload["response"] != "Ride a bike." {
		t.Fatalf("unexpected response: %q", payload["response"])
	}
}

func TestChatRequiresMessage(t *testing.T) {
	ts, hc := newTestServer(t, nil)
	signup(t, ts, hc, "alice")

	resp := postJSON(t, ts, hc, "/api/chat", map[string]any{"message": "   "})
	resp.Body.Close() //nolint:errcheck
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
}

func TestRecommendationsFallBackWhenRateLimited(t *testing.T) {
	client := stubClient(func(_ context.Context, _, _ string, _ int, _ float64) (string, error) {
		return "", &ai.RemoteError{StatusCode: http.StatusTooManyRequests, Message: "rate limited"}
	})
	ts, hc := newTestServer(t, client)
	signup(t, ts, hc, "alice")

	resp, err := hc.Get(ts.URL + "/api/recommendations")
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	body := decodeBody(t, resp)
	resp.Body.Close() //nolint:errcheck
	items, ok := body["recommendations"].([]any)
	if !ok || len(items) != 5 {
		t.Fatalf("expected 5 fallback recommendations, got %v", body["recommendations"])
	}
}

func TestPredictionsEmptyHistory(t *testing.T) {
	ts, hc := newTestServer(t, nil)
	signup(t, ts, hc, "alice")

	resp, err := hc.Get(ts.URL + "/api/predictions")
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	body := decodeBody(t, resp)
	resp.Body.Close() //nolint:errcheck

	insights, ok := body["insights"].([]any)
	if !ok || len(insights) != 1 {
		t.Fatalf("unexpected insights: %v", body["insights"])
	}
	if insights[0] != "Start tracking your carbon footprint to receive AI-powered predictions" {
		t.Fatalf("unexpected insight text: %v", insights[0])
	}
}

func TestEcoRoute(t *testing.T) {
	ts, hc := newTestServer(t, nil)
	signup(t, ts, hc, "alice")

	resp, err := hc.Get(ts.URL + "/api/eco-route?start=Home&end=Office")
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	body := decodeBody(t, resp)
	resp.Body.Close() //nolint:errcheck

	eco, ok := body["ecoRoute"].(map[string]any)
	if !ok {
		t.Fatalf("response missing ecoRoute: %v", body)
	}
	waypoints, ok := eco["waypoints"].([]any)
	if !ok || len(waypoints) != 4 {
		t.Fatalf("expected 4 waypoints, got %v", eco["waypoints"])
	}

	resp, err = hc.Get(ts.URL + "/api/eco-route?start=Home")
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	resp.Body.Close() //nolint:errcheck
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400 without end, got %d", resp.StatusCode)
	}
}

func TestSSODisabledReturns404(t *testing.T) {
	ts, hc := newTestServer(t, nil)

	resp, err := hc.Get(ts.URL + "/api/auth/sso/login")
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	resp.Body.Close() //nolint:errcheck
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.StatusCode)
	}
}
