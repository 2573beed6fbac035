package vision_test

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/redrazor111/burn-back/internal/model"
	"github.com/redrazor111/burn-back/internal/provider/vision"
)

func slotJSON(status string) string {
	out := make([]string, 0, 10)
	labels := []string{"Running", "Walking", "Weight Training", "Cycling", "Swimming", "HIIT", "Yoga", "Rowing", "Jump Rope", "Hiking"}
	for _, l := range labels {
		out = append(out, fmt.Sprintf(`{"label":%q,"status":%q,"summary":"30 minutes"}`, l, status))
	}
	return "[" + strings.Join(out, ",") + "]"
}

func TestAnalyzeParsesSingleEstimate(t *testing.T) {
	t.Parallel()

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer demo" {
			t.Errorf("unexpected authorization header %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprintf(w, `{"identified_product":"Chicken Wrap","calories":540,"activities":%s}`, slotJSON("SAFE"))
	}))
	defer ts.Close()

	c := &vision.Client{APIKey: "demo", BaseURL: ts.URL, HTTPClient: ts.Client()}
	analysis, err := c.Analyze(context.Background(), "aW1hZ2U=", false, vision.UserContext{Gender: "male", AgeYears: 25, WeightKg: 70, DailyGoalCalories: 2000})
	if err != nil {
		t.Fatalf("analyze: %v", err)
	}
	if analysis.Single == nil {
		t.Fatalf("expected single estimate, got %+v", analysis)
	}
	if analysis.Single.ProductName != "Chicken Wrap" || analysis.Single.Calories != 540 {
		t.Fatalf("unexpected estimate: %+v", analysis.Single)
	}
	if len(analysis.Single.Activities) != 10 {
		t.Fatalf("expected 10 slots, got %d", len(analysis.Single.Activities))
	}
	if analysis.Single.Activities[0].Status != model.StatusHealthy {
		t.Fatalf("expected SAFE to normalize to healthy, got %q", analysis.Single.Activities[0].Status)
	}
}

func TestAnalyzeParsesCandidates(t *testing.T) {
	t.Parallel()

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprintf(w, `{"candidates":[
{"identified_product":"Beef Burrito","calories":720,"activities":%s},
{"identified_product":"Bean Burrito","calories":480,"activities":%s}
]}`, slotJSON("UNSAFE"), slotJSON("CAUTION"))
	}))
	defer ts.Close()

	c := &vision.Client{APIKey: "demo", BaseURL: ts.URL, HTTPClient: ts.Client()}
	analysis, err := c.Analyze(context.Background(), "aW1hZ2U=", true, vision.UserContext{})
	if err != nil {
		t.Fatalf("analyze: %v", err)
	}
	if analysis.Single != nil {
		t.Fatalf("expected candidate set, got single %+v", analysis.Single)
	}
	if len(analysis.Candidates) != 2 {
		t.Fatalf("expected 2 candidates, got %d", len(analysis.Candidates))
	}
	if analysis.Candidates[0].Activities[0].Status != model.StatusUnhealthy {
		t.Fatalf("expected UNSAFE to normalize to unhealthy, got %q", analysis.Candidates[0].Activities[0].Status)
	}
	if analysis.Candidates[1].Calories != 480 {
		t.Fatalf("unexpected second candidate: %+v", analysis.Candidates[1])
	}
}

func TestAnalyzeRejectsMalformedResponses(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		body string
	}{
		{"missing product", fmt.Sprintf(`{"calories":100,"activities":%s}`, slotJSON("SAFE"))},
		{"missing calories", fmt.Sprintf(`{"identified_product":"Apple","activities":%s}`, slotJSON("SAFE"))},
		{"negative calories", fmt.Sprintf(`{"identified_product":"Apple","calories":-5,"activities":%s}`, slotJSON("SAFE"))},
		{"short slot list", `{"identified_product":"Apple","calories":100,"activities":[]}`},
		{"unknown status", fmt.Sprintf(`{"identified_product":"Apple","calories":100,"activities":%s}`, slotJSON("MYSTERY"))},
		{"single candidate", fmt.Sprintf(`{"candidates":[{"identified_product":"Apple","calories":100,"activities":%s}]}`, slotJSON("SAFE"))},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				_, _ = w.Write([]byte(tc.body))
			}))
			defer ts.Close()

			c := &vision.Client{APIKey: "demo", BaseURL: ts.URL, HTTPClient: ts.Client()}
			if _, err := c.Analyze(context.Background(), "aW1hZ2U=", false, vision.UserContext{}); err == nil {
				t.Fatalf("expected rejection for %s", tc.name)
			}
		})
	}
}

func TestAnalyzeRequiresAPIKeyAndImage(t *testing.T) {
	t.Parallel()

	c := &vision.Client{}
	if _, err := c.Analyze(context.Background(), "aW1hZ2U=", false, vision.UserContext{}); err == nil {
		t.Fatalf("expected missing API key error")
	}

	c = &vision.Client{APIKey: "demo"}
	if _, err := c.Analyze(context.Background(), "", false, vision.UserContext{}); err == nil {
		t.Fatalf("expected missing image error")
	}
}

func TestAnalyzeSurfacesServerErrors(t *testing.T) {
	t.Parallel()

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"model overloaded"}`, http.StatusInternalServerError)
	}))
	defer ts.Close()

	c := &vision.Client{APIKey: "demo", BaseURL: ts.URL, HTTPClient: ts.Client()}
	if _, err := c.Analyze(context.Background(), "aW1hZ2U=", false, vision.UserContext{}); err == nil || !strings.Contains(err.Error(), "status 500") {
		t.Fatalf("expected status 500 error, got %v", err)
	}
}
