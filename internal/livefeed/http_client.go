package livefeed

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/ostapenko/lategoal/internal/pkg/models"
)

// HTTPFeedClient fetches live snapshots from a JSON feed endpoint.
type HTTPFeedClient struct {
	baseURL    string
	httpClient *http.Client
}

// NewHTTPFeedClient creates a new HTTP client for fetching live snapshots
func NewHTTPFeedClient(baseURL string, timeout time.Duration) *HTTPFeedClient {
	if baseURL == "" {
		return nil
	}

	baseURL = strings.TrimSuffix(baseURL, "/")

	return &HTTPFeedClient{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// snapshotsResponse represents the response from the /live endpoint
type snapshotsResponse struct {
	Matches []models.LiveSnapshot `json:"matches"`
	Meta    struct {
		Count  int    `json:"count"`
		Source string `json:"source"`
	} `json:"meta"`
}

// FetchSnapshots fetches all in-progress matches from the feed's /live endpoint
func (c *HTTPFeedClient) FetchSnapshots(ctx context.Context) ([]models.LiveSnapshot, error) {
	if c == nil {
		return nil, fmt.Errorf("HTTP client is not configured")
	}

	req, err := http.NewRequestWithContext(ctx, "GET", c.baseURL+"/live", nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch snapshots: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("unexpected status code %d: %s", resp.StatusCode, string(body))
	}

	var snapshotsResp snapshotsResponse
	if err := json.NewDecoder(resp.Body).Decode(&snapshotsResp); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	now := time.Now()
	for i := range snapshotsResp.Matches {
		if snapshotsResp.Matches[i].ObservedAt.IsZero() {
			snapshotsResp.Matches[i].ObservedAt = now
		}
	}

	return snapshotsResp.Matches, nil
}
