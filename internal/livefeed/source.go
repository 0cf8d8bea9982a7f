// Package livefeed produces LiveSnapshot values for the monitor. The engine
// itself never fetches anything; these collaborators resolve live data and
// hand it over fully parsed.
package livefeed

import (
	"context"
	"fmt"
	"time"

	"github.com/ostapenko/lategoal/internal/pkg/config"
	"github.com/ostapenko/lategoal/internal/pkg/models"
)

// Source yields one batch of snapshots per poll, one per in-progress match.
type Source interface {
	FetchSnapshots(ctx context.Context) ([]models.LiveSnapshot, error)
}

// New builds the configured source.
func New(cfg *config.LiveFeedConfig) (Source, error) {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	switch cfg.Mode {
	case "", "http":
		client := NewHTTPFeedClient(cfg.URL, timeout)
		if client == nil {
			return nil, fmt.Errorf("live_feed.url is required")
		}
		return client, nil
	case "browser":
		return NewBrowserCollector(cfg.URL, cfg.Script, cfg.UserAgent, timeout)
	default:
		return nil, fmt.Errorf("unknown live_feed.mode %q", cfg.Mode)
	}
}
