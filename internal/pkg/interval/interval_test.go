package interval

import "testing"

func defaultSchedule(t *testing.T) Schedule {
	t.Helper()
	s, err := NewSchedule(Defaults())
	if err != nil {
		t.Fatalf("default schedule should validate: %v", err)
	}
	return s
}

func TestNewSchedule_RejectsMisconfiguration(t *testing.T) {
	tests := []struct {
		name string
		defs []Definition
	}{
		{"too few", []Definition{{Name: "31-45+", Start: 31, End: 45}}},
		{"overlap", []Definition{
			{Name: "31-45+", Start: 31, End: 45},
			{Name: "40-90", Start: 40, End: 90},
		}},
		{"inverted bounds", []Definition{
			{Name: "bad", Start: 45, End: 31},
			{Name: "76-90+", Start: 76, End: 90},
		}},
		{"first window open-ended", []Definition{
			{Name: "31-45+", Start: 31, End: 45, OpenEnd: true},
			{Name: "76-90+", Start: 76, End: 90},
		}},
		{"unnamed", []Definition{
			{Start: 31, End: 45},
			{Name: "76-90+", Start: 76, End: 90},
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewSchedule(tt.defs); err == nil {
				t.Errorf("expected configuration error, got none")
			}
		})
	}
}

func TestSchedule_ActiveAndNext(t *testing.T) {
	s := defaultSchedule(t)

	tests := []struct {
		minute     int
		wantActive string // "" = none
		wantNext   string // "" = none
	}{
		{1, "", "31-45+"},
		{30, "", "31-45+"},
		{31, "31-45+", ""},
		{45, "31-45+", ""},
		{46, "", "76-90+"},
		{50, "", "76-90+"}, // mid second half: nothing active, next is the late window
		{75, "", "76-90+"},
		{76, "76-90+", ""},
		{90, "76-90+", ""},
		{94, "76-90+", ""}, // injury time folds into the open-ended window
		{120, "76-90+", ""},
	}

	for _, tt := range tests {
		active := s.Active(tt.minute)
		next := s.Next(tt.minute)

		gotActive := ""
		if active != nil {
			gotActive = active.Name
		}
		gotNext := ""
		if next != nil {
			gotNext = next.Name
		}

		if gotActive != tt.wantActive {
			t.Errorf("Active(%d) = %q, want %q", tt.minute, gotActive, tt.wantActive)
		}
		if gotNext != tt.wantNext {
			t.Errorf("Next(%d) = %q, want %q", tt.minute, gotNext, tt.wantNext)
		}
	}
}

func TestSchedule_MembershipIsExclusive(t *testing.T) {
	s := defaultSchedule(t)
	for minute := 1; minute <= 120; minute++ {
		n := 0
		for _, d := range s.Definitions() {
			if d.Contains(minute) {
				n++
			}
		}
		if n > 1 {
			t.Fatalf("minute %d belongs to %d intervals", minute, n)
		}
	}
}

func TestSchedule_Bucket(t *testing.T) {
	s := defaultSchedule(t)

	tests := []struct {
		minute int
		want   string
	}{
		{10, "0-15"},
		{20, "16-30"},
		{40, "31-45+"},
		{50, "46-60"},
		{70, "61-75"},
		{80, "76-90+"},
		{95, "76-90+"},
	}
	for _, tt := range tests {
		if got := s.Bucket(tt.minute); got != tt.want {
			t.Errorf("Bucket(%d) = %q, want %q", tt.minute, got, tt.want)
		}
	}
}
