// Package vision talks to the remote meal-analysis service. The service is
// a black box: it receives a photo and the user's context and returns a
// calorie estimate with ten burn-equivalence slots. Everything it sends is
// validated here, at the boundary; malformed responses never reach the
// ledger.
package vision

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/redrazor111/burn-back/internal/model"
)

const (
	defaultBaseURL = "https://api.burnback.app"
	defaultTimeout = 30 * time.Second
)

type Client struct {
	APIKey     string
	BaseURL    string
	HTTPClient *http.Client
}

// UserContext rides along with the photo so the service can scale its
// duration estimates to the user.
type UserContext struct {
	Gender            string  `json:"gender"`
	AgeYears          int     `json:"age_years"`
	WeightKg          float64 `json:"weight_kg"`
	DailyGoalCalories int     `json:"daily_goal_calories"`
}

// Estimate is one validated interpretation of the photo.
type Estimate struct {
	ProductName string
	Calories    int
	Activities  []model.ActivitySlot
}

// Analysis is the tagged union the service can answer with: exactly one of
// Single (one confident interpretation) or Candidates (two or more
// interpretations needing user disambiguation) is set.
type Analysis struct {
	Single     *Estimate
	Candidates []Estimate
}

// Analyze submits a base64-encoded photo for analysis.
func (c *Client) Analyze(ctx context.Context, imageBase64 string, isPro bool, user UserContext) (Analysis, error) {
	if strings.TrimSpace(c.APIKey) == "" {
		return Analysis{}, fmt.Errorf("missing vision API key")
	}
	if strings.TrimSpace(imageBase64) == "" {
		return Analysis{}, fmt.Errorf("image payload is required")
	}
	baseURL := strings.TrimRight(strings.TrimSpace(c.BaseURL), "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	httpClient := c.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: defaultTimeout}
	}

	// Data URLs arrive with a media-type prefix; the service wants bare
	// base64.
	if idx := strings.Index(imageBase64, ","); idx >= 0 {
		imageBase64 = imageBase64[idx+1:]
	}

	payload, err := json.Marshal(map[string]any{
		"image_base64": imageBase64,
		"is_pro":       isPro,
		"user_context": user,
	})
	if err != nil {
		return Analysis{}, fmt.Errorf("marshal analyze payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, baseURL+"/v1/analyze", bytes.NewReader(payload))
	if err != nil {
		return Analysis{}, fmt.Errorf("create analyze request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.APIKey)

	resp, err := httpClient.Do(req)
	if err != nil {
		return Analysis{}, fmt.Errorf("execute analyze request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return Analysis{}, fmt.Errorf("read analyze response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return Analysis{}, fmt.Errorf("analyze request failed with status %d", resp.StatusCode)
	}

	var parsed wireResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return Analysis{}, fmt.Errorf("decode analyze response: %w", err)
	}
	return validateResponse(parsed)
}

type wireResponse struct {
	IdentifiedProduct string         `json:"identified_product"`
	Calories          *int           `json:"calories"`
	Activities        []wireSlot     `json:"activities"`
	Candidates        []wireEstimate `json:"candidates"`
}

type wireEstimate struct {
	IdentifiedProduct string     `json:"identified_product"`
	Calories          *int       `json:"calories"`
	Activities        []wireSlot `json:"activities"`
}

type wireSlot struct {
	Label   string `json:"label"`
	Status  string `json:"status"`
	Summary string `json:"summary"`
}

func validateResponse(resp wireResponse) (Analysis, error) {
	if len(resp.Candidates) >= 2 {
		candidates := make([]Estimate, 0, len(resp.Candidates))
		for i, c := range resp.Candidates {
			est, err := validateEstimate(c.IdentifiedProduct, c.Calories, c.Activities)
			if err != nil {
				return Analysis{}, fmt.Errorf("candidate %d: %w", i+1, err)
			}
			candidates = append(candidates, est)
		}
		return Analysis{Candidates: candidates}, nil
	}
	if len(resp.Candidates) == 1 {
		return Analysis{}, fmt.Errorf("candidate list must contain at least 2 interpretations")
	}

	est, err := validateEstimate(resp.IdentifiedProduct, resp.Calories, resp.Activities)
	if err != nil {
		return Analysis{}, err
	}
	return Analysis{Single: &est}, nil
}

func validateEstimate(product string, calories *int, slots []wireSlot) (Estimate, error) {
	product = strings.TrimSpace(product)
	if product == "" {
		return Estimate{}, fmt.Errorf("missing identified product")
	}
	if calories == nil {
		return Estimate{}, fmt.Errorf("missing calorie estimate")
	}
	if *calories < 0 {
		return Estimate{}, fmt.Errorf("negative calorie estimate %d", *calories)
	}
	if len(slots) != 10 {
		return Estimate{}, fmt.Errorf("expected 10 activity slots, got %d", len(slots))
	}

	activities := make([]model.ActivitySlot, 0, len(slots))
	for i, s := range slots {
		status, err := normalizeStatus(s.Status)
		if err != nil {
			return Estimate{}, fmt.Errorf("slot %d: %w", i+1, err)
		}
		activities = append(activities, model.ActivitySlot{
			Label:   strings.TrimSpace(s.Label),
			Status:  status,
			Summary: strings.TrimSpace(s.Summary),
		})
	}
	return Estimate{ProductName: product, Calories: *calories, Activities: activities}, nil
}

// normalizeStatus folds the service's status vocabulary into the four
// ledger tiers.
func normalizeStatus(raw string) (model.SlotStatus, error) {
	switch strings.ToUpper(strings.TrimSpace(raw)) {
	case "HEALTHY", "SAFE":
		return model.StatusHealthy, nil
	case "MODERATE", "CAUTION":
		return model.StatusModerate, nil
	case "UNHEALTHY", "UNSAFE":
		return model.StatusUnhealthy, nil
	case "LOCKED", "WAITING":
		return model.StatusLocked, nil
	default:
		return "", fmt.Errorf("unknown activity status %q", raw)
	}
}
