// Package interval defines the critical match-minute windows and decides
// which of them, if any, applies at a given live minute.
package interval

import (
	"fmt"
	"sort"
)

// Definition is a named closed minute range. An open-ended definition also
// claims every minute past End (injury/extra time of the half it closes).
type Definition struct {
	Name    string
	Start   int
	End     int
	OpenEnd bool
}

// Contains reports whether a minute falls inside the window, including the
// injury-time extension for open-ended windows.
func (d Definition) Contains(minute int) bool {
	if minute < d.Start {
		return false
	}
	return minute <= d.End || d.OpenEnd
}

// Defaults returns the canonical two windows: late first half and late second
// half. Second-half injury time (minutes beyond 90) folds into "76-90+".
func Defaults() []Definition {
	return []Definition{
		{Name: "31-45+", Start: 31, End: 45},
		{Name: "76-90+", Start: 76, End: 90, OpenEnd: true},
	}
}

// Schedule is a validated, ordered set of interval definitions.
type Schedule struct {
	defs []Definition
}

// NewSchedule validates the definitions at configuration time: exactly two
// windows, sane bounds, mutually exclusive, ordered. Membership is exclusive
// by construction so prediction-time lookups never see a conflict.
func NewSchedule(defs []Definition) (Schedule, error) {
	if len(defs) != 2 {
		return Schedule{}, fmt.Errorf("expected exactly 2 interval definitions, got %d", len(defs))
	}

	sorted := make([]Definition, len(defs))
	copy(sorted, defs)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Start < sorted[j].Start })

	for i, d := range sorted {
		if d.Name == "" {
			return Schedule{}, fmt.Errorf("interval %d has no name", i)
		}
		if d.Start < 1 || d.End < d.Start {
			return Schedule{}, fmt.Errorf("interval %q has invalid bounds %d-%d", d.Name, d.Start, d.End)
		}
	}
	if sorted[0].OpenEnd {
		return Schedule{}, fmt.Errorf("interval %q cannot be open-ended before %q starts", sorted[0].Name, sorted[1].Name)
	}
	if sorted[0].End >= sorted[1].Start {
		return Schedule{}, fmt.Errorf("intervals %q and %q overlap", sorted[0].Name, sorted[1].Name)
	}

	return Schedule{defs: sorted}, nil
}

// MustSchedule is NewSchedule for the compiled-in defaults; panics on error.
func MustSchedule(defs []Definition) Schedule {
	s, err := NewSchedule(defs)
	if err != nil {
		panic(err)
	}
	return s
}

// Definitions returns the validated definitions in ascending order.
func (s Schedule) Definitions() []Definition {
	out := make([]Definition, len(s.defs))
	copy(out, s.defs)
	return out
}

// Active returns the window containing the minute, or nil if the minute is
// outside both windows.
func (s Schedule) Active(minute int) *Definition {
	for i := range s.defs {
		if s.defs[i].Contains(minute) {
			d := s.defs[i]
			return &d
		}
	}
	return nil
}

// Next returns the nearest upcoming window, or nil if the minute is already
// inside a window or past the last one.
func (s Schedule) Next(minute int) *Definition {
	if s.Active(minute) != nil {
		return nil
	}
	for i := range s.defs {
		if minute < s.defs[i].Start {
			d := s.defs[i]
			return &d
		}
	}
	return nil
}

// Bucket returns a coarse minute-bucket label for logging and diagnostics.
func (s Schedule) Bucket(minute int) string {
	if d := s.Active(minute); d != nil {
		return d.Name
	}
	switch {
	case minute <= 15:
		return "0-15"
	case minute <= 30:
		return "16-30"
	case minute <= 60:
		return "46-60"
	case minute <= 75:
		return "61-75"
	default:
		return "outside key intervals"
	}
}
