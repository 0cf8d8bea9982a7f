package livefeed

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/chromedp/chromedp"

	"github.com/ostapenko/lategoal/internal/pkg/models"
)

// defaultExtractScript pulls raw match rows out of pages that expose a
// window-level live ticker object. Site-specific layouts override it via
// live_feed.script.
const defaultExtractScript = `JSON.stringify(window.__LIVE_MATCHES__ || [])`

// BrowserCollector renders a JS-heavy livescore page in headless Chrome and
// extracts live match rows with a JS expression. Livescore sites build their
// tables client-side, so a plain HTTP GET returns an empty shell.
type BrowserCollector struct {
	pageURL   string
	script    string
	userAgent string
	timeout   time.Duration
	logger    *slog.Logger
}

func NewBrowserCollector(pageURL, script, userAgent string, timeout time.Duration) (*BrowserCollector, error) {
	if pageURL == "" {
		return nil, fmt.Errorf("live_feed.url is required")
	}
	if script == "" {
		script = defaultExtractScript
	}
	if userAgent == "" {
		userAgent = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/142.0.0.0 Safari/537.36"
	}
	return &BrowserCollector{
		pageURL:   pageURL,
		script:    script,
		userAgent: userAgent,
		timeout:   timeout,
		logger:    slog.Default(),
	}, nil
}

// rawMatch is one row as extracted from the page: everything arrives as
// strings and is parsed best-effort. A field the page did not render stays
// empty and becomes a missing (nil) stat, never zero.
type rawMatch struct {
	Country          string `json:"country"`
	League           string `json:"league"`
	HomeTeam         string `json:"home_team"`
	AwayTeam         string `json:"away_team"`
	Minute           string `json:"minute"` // "43", "45+2", "90+4"
	Score            string `json:"score"`  // "2-1"
	Possession       string `json:"possession"` // "61-39" or "61%-39%"
	Shots            string `json:"shots"`
	ShotsOnTarget    string `json:"shots_on_target"`
	Attacks          string `json:"attacks"`
	DangerousAttacks string `json:"dangerous_attacks"`
	Corners          string `json:"corners"`
	RedCards         string `json:"red_cards"`
}

// FetchSnapshots renders the page and converts the extracted rows.
func (b *BrowserCollector) FetchSnapshots(ctx context.Context) ([]models.LiveSnapshot, error) {
	ctx, cancel := context.WithTimeout(ctx, b.timeout)
	defer cancel()

	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.UserAgent(b.userAgent),
	)

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, opts...)
	defer cancelAlloc()

	browserCtx, cancelBrowser := chromedp.NewContext(allocCtx)
	defer cancelBrowser()

	var payload string
	err := chromedp.Run(browserCtx,
		chromedp.Navigate(b.pageURL),
		// Give the page's own scripts time to fill the live table.
		chromedp.Sleep(2*time.Second),
		chromedp.Evaluate(b.script, &payload),
	)
	if err != nil {
		return nil, fmt.Errorf("chromedp extraction: %w", err)
	}

	var raws []rawMatch
	if err := json.Unmarshal([]byte(payload), &raws); err != nil {
		return nil, fmt.Errorf("failed to parse extracted live rows: %w", err)
	}

	now := time.Now()
	snapshots := make([]models.LiveSnapshot, 0, len(raws))
	for _, raw := range raws {
		snap, ok := b.convert(raw, now)
		if !ok {
			continue
		}
		snapshots = append(snapshots, snap)
	}

	return snapshots, nil
}

func (b *BrowserCollector) convert(raw rawMatch, now time.Time) (models.LiveSnapshot, bool) {
	if raw.HomeTeam == "" || raw.AwayTeam == "" {
		return models.LiveSnapshot{}, false
	}

	minute, ok := parseMinute(raw.Minute)
	if !ok {
		b.logger.Warn("unparsable live minute, skipping match",
			"match", raw.HomeTeam+" vs "+raw.AwayTeam, "minute", raw.Minute)
		return models.LiveSnapshot{}, false
	}

	homeScore, awayScore, ok := parseScore(raw.Score)
	if !ok {
		b.logger.Warn("unparsable live score, skipping match",
			"match", raw.HomeTeam+" vs "+raw.AwayTeam, "score", raw.Score)
		return models.LiveSnapshot{}, false
	}

	return models.LiveSnapshot{
		Country:          raw.Country,
		League:           raw.League,
		HomeTeam:         raw.HomeTeam,
		AwayTeam:         raw.AwayTeam,
		Minute:           minute,
		HomeScore:        homeScore,
		AwayScore:        awayScore,
		Possession:       b.statPair("possession", raw.Possession),
		Shots:            b.statPair("shots", raw.Shots),
		ShotsOnTarget:    b.statPair("shots_on_target", raw.ShotsOnTarget),
		Attacks:          b.statPair("attacks", raw.Attacks),
		DangerousAttacks: b.statPair("dangerous_attacks", raw.DangerousAttacks),
		Corners:          b.statPair("corners", raw.Corners),
		RedCards:         b.statPair("red_cards", raw.RedCards),
		ObservedAt:       now,
	}, true
}

// parseMinute parses "43", "43'", "45+2", "90+4'". Stoppage time follows the
// same folding rule as historical goal minutes: "45+x" stays at 45 so the
// scheduler keeps the match inside the closed first-half window, while "90+x"
// keeps its real minute for the open-ended late window.
func parseMinute(s string) (int, bool) {
	s = strings.TrimSpace(strings.Trim(strings.TrimSpace(s), "'"))
	if s == "" {
		return 0, false
	}
	base := s
	extra := 0
	if i := strings.IndexByte(s, '+'); i >= 0 {
		base = s[:i]
		if e, err := strconv.Atoi(strings.TrimSpace(s[i+1:])); err == nil && e > 0 {
			extra = e
		}
	}
	m, err := strconv.Atoi(strings.TrimSpace(base))
	if err != nil || m < 0 {
		return 0, false
	}
	if m >= 90 {
		return m + extra, true
	}
	return m, true
}

func parseScore(s string) (home, away int, ok bool) {
	s = strings.TrimSpace(s)
	for _, sep := range []string{"-", ":", "–"} {
		parts := strings.SplitN(s, sep, 2)
		if len(parts) != 2 {
			continue
		}
		h, errH := strconv.Atoi(strings.TrimSpace(parts[0]))
		a, errA := strconv.Atoi(strings.TrimSpace(parts[1]))
		if errH != nil || errA != nil {
			continue
		}
		return h, a, true
	}
	return 0, 0, false
}

// statPair parses one raw stat cell, logging when a rendered value could not
// be parsed. An empty cell is a stat the page did not report; no warning.
func (b *BrowserCollector) statPair(name, raw string) *models.StatPair {
	p := parseStatPair(raw)
	if p == nil && strings.TrimSpace(raw) != "" {
		b.logger.Warn("unparsable live stat, treating as missing", "stat", name, "value", raw)
	}
	return p
}

// parseStatPair parses "61-39", "61%-39%" or "12 - 7" into a StatPair.
// Anything unparsable yields nil: the stat is missing, not zero.
func parseStatPair(s string) *models.StatPair {
	s = strings.ReplaceAll(strings.TrimSpace(s), "%", "")
	if s == "" {
		return nil
	}
	for _, sep := range []string{"-", ":"} {
		parts := strings.SplitN(s, sep, 2)
		if len(parts) != 2 {
			continue
		}
		h, errH := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
		a, errA := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
		if errH != nil || errA != nil {
			continue
		}
		return &models.StatPair{Home: h, Away: a}
	}
	return nil
}
