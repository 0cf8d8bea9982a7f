package models

import (
	"log/slog"
	"sort"
	"strconv"
	"strings"
)

// ParseGoalMinutes parses a raw serialized goal-minute list ("23, 45+2', 78")
// into a sorted list of strictly positive minutes. Zero/padding artifacts and
// unparsable tokens are dropped; a fully malformed input yields an empty list.
//
// First-half injury time ("45+2") folds to minute 45 so the goal stays in the
// first-half bucket. Second-half injury time ("90+3") keeps its real minute
// (93), since minutes beyond 90 are valid and belong to the late window.
func ParseGoalMinutes(raw string) []int {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}

	seen := map[int]bool{}
	var minutes []int
	var dropped []string

	for _, tok := range splitMinuteTokens(raw) {
		m, ok := parseMinuteToken(tok)
		if !ok {
			dropped = append(dropped, tok)
			continue
		}
		if m <= 0 {
			// Zero/negative minutes are padding artifacts, not malformed input.
			continue
		}
		if !seen[m] {
			seen[m] = true
			minutes = append(minutes, m)
		}
	}

	if len(dropped) > 0 {
		slog.Warn("dropped unparsable goal-minute tokens", "raw", raw, "tokens", dropped)
	}

	sort.Ints(minutes)
	return minutes
}

func splitMinuteTokens(raw string) []string {
	return strings.FieldsFunc(raw, func(r rune) bool {
		switch r {
		case ',', ';', ' ', '\t', '[', ']', '(', ')':
			return true
		}
		return false
	})
}

// parseMinuteToken parses "23", "23'", "45+2" or "45+2'".
func parseMinuteToken(tok string) (int, bool) {
	tok = strings.TrimSpace(tok)
	tok = strings.Trim(tok, "'\"`")
	if tok == "" {
		return 0, false
	}

	base := tok
	extra := ""
	if i := strings.IndexByte(tok, '+'); i >= 0 {
		base = tok[:i]
		extra = tok[i+1:]
	}

	m, err := strconv.Atoi(strings.TrimSpace(base))
	if err != nil {
		return 0, false
	}

	if extra != "" {
		e, err := strconv.Atoi(strings.TrimSpace(extra))
		if err != nil || e < 0 {
			return m, true
		}
		// Fold first-half stoppage into minute 45; keep real minutes after 90.
		if m >= 90 {
			return m + e, true
		}
		return m, true
	}

	return m, true
}

// JoinGoalMinutes is the inverse of ParseGoalMinutes for storage serialization.
func JoinGoalMinutes(minutes []int) string {
	if len(minutes) == 0 {
		return ""
	}
	parts := make([]string, 0, len(minutes))
	for _, m := range minutes {
		parts = append(parts, strconv.Itoa(m))
	}
	return strings.Join(parts, ",")
}
