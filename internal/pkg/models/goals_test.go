package models

import (
	"bytes"
	"log/slog"
	"reflect"
	"strings"
	"testing"
)

func TestParseGoalMinutes(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []int
	}{
		{"empty", "", nil},
		{"simple list", "12,45,78", []int{12, 45, 78}},
		{"unsorted input", "78, 12, 45", []int{12, 45, 78}},
		{"zero padding dropped", "0,0,23,0", []int{23}},
		{"duplicates dropped", "23,23,23", []int{23}},
		{"apostrophes", "23', 67'", []int{23, 67}},
		{"brackets", "[12, 88]", []int{12, 88}},
		{"first half stoppage folds to 45", "45+2", []int{45}},
		{"second half stoppage keeps real minute", "90+3", []int{93}},
		{"mixed stoppage", "45+1, 90+4", []int{45, 94}},
		{"negative dropped", "-5, 10", []int{10}},
		{"garbage tokens skipped", "abc, 30, x1", []int{30}},
		{"fully malformed", "not a list at all", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseGoalMinutes(tt.in)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ParseGoalMinutes(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestParseGoalMinutes_WarnsOnDroppedTokens(t *testing.T) {
	var buf bytes.Buffer
	prev := slog.Default()
	slog.SetDefault(slog.New(slog.NewTextHandler(&buf, nil)))
	defer slog.SetDefault(prev)

	got := ParseGoalMinutes("12, xx, 45+1")
	if !reflect.DeepEqual(got, []int{12, 45}) {
		t.Errorf("ParseGoalMinutes = %v, want [12 45]", got)
	}
	if !strings.Contains(buf.String(), "xx") {
		t.Errorf("expected a warning naming the dropped token, got log: %s", buf.String())
	}

	// Zero padding is an artifact, not malformed input; no warning.
	buf.Reset()
	ParseGoalMinutes("0, 23")
	if buf.Len() != 0 {
		t.Errorf("unexpected warning for zero padding: %s", buf.String())
	}
}

func TestJoinGoalMinutesRoundTrip(t *testing.T) {
	minutes := []int{12, 45, 93}
	got := ParseGoalMinutes(JoinGoalMinutes(minutes))
	if !reflect.DeepEqual(got, minutes) {
		t.Errorf("round trip = %v, want %v", got, minutes)
	}

	if JoinGoalMinutes(nil) != "" {
		t.Errorf("JoinGoalMinutes(nil) should be empty")
	}
}
