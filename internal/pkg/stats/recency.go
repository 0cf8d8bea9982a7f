package stats

// RecencyWindow is the number of most recent matches the recurrence ratio
// looks at to catch form changes the long-run frequency would miss.
const RecencyWindow = 5

// RecurrenceLastN computes the fraction of the first n entries that are true.
// Input must be ordered most recent first. Returns nil when fewer than n
// entries exist: a short history is "unknown", not zero.
func RecurrenceLastN(hadGoal []bool, n int) *float64 {
	if n <= 0 || len(hadGoal) < n {
		return nil
	}
	hits := 0
	for _, h := range hadGoal[:n] {
		if h {
			hits++
		}
	}
	r := float64(hits) / float64(n)
	return &r
}
