package models

import "strings"

// Known club-name prefixes, longer forms first so "k.s.k. heist" is tried
// before "sk".
var teamNamePrefixes = []string{
	"k.s.k. ", "ksk ", "afc ", "fc ", "cf ", "rc ", "sc ", "ac ", "cd ",
	"sk ", "fk ", "bk ", "if ", "us ", "as ",
}

// NormalizeTeam normalizes a raw team name for keying and grouping.
// Strips common club prefixes so "RC Hades" and "Hades" get the same key,
// lowercases and collapses whitespace.
func NormalizeTeam(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return ""
	}
	s = strings.Join(strings.Fields(s), " ")
	for _, p := range teamNamePrefixes {
		if strings.HasPrefix(s, p) {
			s = strings.TrimSpace(s[len(p):])
			break
		}
	}
	s = strings.ReplaceAll(s, "|", " ")
	s = strings.Join(strings.Fields(s), " ")
	return s
}
