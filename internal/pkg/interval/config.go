package interval

import "github.com/ostapenko/lategoal/internal/pkg/config"

// FromConfig builds the validated schedule from the config section, falling
// back to the compiled-in defaults when the section is absent. Misconfigured
// windows are rejected here, at startup, never at prediction time.
func FromConfig(cfgs []config.IntervalConfig) (Schedule, error) {
	if len(cfgs) == 0 {
		return NewSchedule(Defaults())
	}

	defs := make([]Definition, 0, len(cfgs))
	for _, c := range cfgs {
		defs = append(defs, Definition{
			Name:    c.Name,
			Start:   c.Start,
			End:     c.End,
			OpenEnd: c.OpenEnd,
		})
	}
	return NewSchedule(defs)
}
