package availability

import (
	"testing"

	"carslot/pkg/model"
	"carslot/pkg/timeofday"
)

func scenarioReservations() []*model.Reservation {
	return []*model.Reservation{
		reserved("Tanaka", "2024-06-01", "09:00", "10:00", "VOXY"),
		reserved("Sato", "2024-06-01", "12:00", "13:00", "VOXY"),
	}
}

func TestSelectableStarts_Scenario(t *testing.T) {
	blocked := BlockedSlots(scenarioReservations(), "VOXY", "2024-06-01")
	starts := SelectableStarts(AllSlots(), blocked, nil)

	if len(starts) != 96-8 {
		t.Fatalf("expected 88 selectable starts, got %d", len(starts))
	}

	included := make(map[timeofday.TimeOfDay]struct{}, len(starts))
	for _, s := range starts {
		included[s] = struct{}{}
	}

	for _, s := range []string{"09:00", "09:15", "09:30", "09:45", "12:00", "12:15", "12:30", "12:45"} {
		if _, ok := included[mustParse(t, s)]; ok {
			t.Errorf("%s should be excluded", s)
		}
	}
	for _, s := range []string{"08:45", "10:00", "11:45", "13:00"} {
		if _, ok := included[mustParse(t, s)]; !ok {
			t.Errorf("%s should be included", s)
		}
	}
}

func TestSelectableStarts_Ordering(t *testing.T) {
	blocked := BlockedSlots(scenarioReservations(), "VOXY", "2024-06-01")
	starts := SelectableStarts(AllSlots(), blocked, nil)

	for i := 1; i < len(starts); i++ {
		if starts[i] <= starts[i-1] {
			t.Fatalf("starts not chronological at index %d: %s then %s", i, starts[i-1], starts[i])
		}
	}
}

func TestSelectableStarts_MinStartCarryOver(t *testing.T) {
	minStart := mustParse(t, "14:00")
	starts := SelectableStarts(AllSlots(), nil, &minStart)

	if len(starts) == 0 {
		t.Fatal("expected non-empty starts")
	}
	if starts[0] != minStart {
		t.Errorf("first start = %s, want 14:00 (minStart itself remains selectable)", starts[0])
	}
	for _, s := range starts {
		if s < minStart {
			t.Errorf("start %s precedes minStart", s)
		}
	}
	if len(starts) != 40 {
		t.Errorf("expected 40 starts from 14:00 to 23:45, got %d", len(starts))
	}
}

func TestSelectableStarts_MinStartReset(t *testing.T) {
	// Changing the date drops the carry-over constraint: with no minStart
	// the full unblocked lattice comes back.
	starts := SelectableStarts(AllSlots(), nil, nil)
	if len(starts) != 96 {
		t.Errorf("expected full lattice without minStart, got %d", len(starts))
	}
}

func TestSelectableStarts_FullyBookedDay(t *testing.T) {
	blocked := make(map[timeofday.TimeOfDay]struct{})
	for _, s := range AllSlots() {
		blocked[s] = struct{}{}
	}

	starts := SelectableStarts(AllSlots(), blocked, nil)
	if len(starts) != 0 {
		t.Errorf("expected no selectable starts on a fully blocked day, got %d", len(starts))
	}
}

func TestDurationCandidates(t *testing.T) {
	candidates := DurationCandidates()

	if len(candidates) != 95 {
		t.Fatalf("expected 95 candidates (30..1440 step 15), got %d", len(candidates))
	}
	if candidates[0] != 30 {
		t.Errorf("first candidate = %d, want 30", candidates[0])
	}
	if candidates[len(candidates)-1] != 1440 {
		t.Errorf("last candidate = %d, want 1440", candidates[len(candidates)-1])
	}
	for i, d := range candidates {
		if d%15 != 0 {
			t.Errorf("candidate %d at index %d is not a multiple of 15", d, i)
		}
	}
}

func TestValidDurations_Scenario(t *testing.T) {
	// Existing: 09:00-10:00 and 12:00-13:00. From 10:00, everything up to
	// 120 minutes fits (end 12:00 touches the next window, exclusive end),
	// 135 minutes crosses into it.
	start := mustParse(t, "10:00")
	durations := ValidDurations(start, scenarioReservations(), "VOXY", "2024-06-01")

	accepted := make(map[int]struct{}, len(durations))
	for _, d := range durations {
		accepted[d] = struct{}{}
	}

	for _, d := range []int{30, 45, 60, 75, 90, 105, 120} {
		if _, ok := accepted[d]; !ok {
			t.Errorf("duration %d should be accepted", d)
		}
	}
	if _, ok := accepted[135]; ok {
		t.Error("duration 135 should be rejected (end 12:15 overlaps 12:00-13:00)")
	}
	if len(durations) != 7 {
		t.Errorf("expected exactly 7 valid durations from 10:00, got %d: %v", len(durations), durations)
	}
}

func TestValidDurations_Ascending(t *testing.T) {
	start := mustParse(t, "10:00")
	durations := ValidDurations(start, scenarioReservations(), "VOXY", "2024-06-01")

	for i := 1; i < len(durations); i++ {
		if durations[i] <= durations[i-1] {
			t.Fatalf("durations not ascending at index %d: %d then %d", i, durations[i-1], durations[i])
		}
	}
}

func TestValidDurations_EmptyDay(t *testing.T) {
	start := mustParse(t, "00:00")
	durations := ValidDurations(start, nil, "VOXY", "2024-06-01")

	if len(durations) != 95 {
		t.Errorf("expected all 95 candidates on an empty day, got %d", len(durations))
	}
}

func TestValidDurations_NoFit(t *testing.T) {
	reservations := []*model.Reservation{
		reserved("Tanaka", "2024-06-01", "10:15", "11:00", "VOXY"),
	}

	// From 10:00 even the 30-minute minimum reaches 10:30, inside the
	// existing window.
	start := mustParse(t, "10:00")
	durations := ValidDurations(start, reservations, "VOXY", "2024-06-01")

	if len(durations) != 0 {
		t.Errorf("expected no valid durations, got %v", durations)
	}
}

func TestValidDurations_PastMidnightCandidates(t *testing.T) {
	// A late start pushes most candidates past midnight. With nothing else
	// booked they are all accepted; an existing window later the same day
	// rejects every candidate that reaches it.
	start := mustParse(t, "23:00")

	all := ValidDurations(start, nil, "VOXY", "2024-06-01")
	if len(all) != 95 {
		t.Fatalf("expected all candidates from 23:00 on an empty day, got %d", len(all))
	}

	reservations := []*model.Reservation{
		reserved("Sato", "2024-06-01", "23:30", "23:45", "VOXY"),
	}
	durations := ValidDurations(start, reservations, "VOXY", "2024-06-01")
	// 23:00+30 ends exactly at 23:30, boundary-touching is allowed; every
	// longer candidate crosses the 23:30-23:45 window.
	if len(durations) != 1 || durations[0] != 30 {
		t.Errorf("expected only the 30-minute candidate, got %v", durations)
	}
}

func TestOverlaps(t *testing.T) {
	tests := []struct {
		name           string
		a0, a1, b0, b1 string
		want           bool
	}{
		{"disjoint before", "09:00", "10:00", "11:00", "12:00", false},
		{"disjoint after", "13:00", "14:00", "11:00", "12:00", false},
		{"boundary touch at end", "10:00", "12:00", "12:00", "13:00", false},
		{"boundary touch at start", "13:00", "14:00", "12:00", "13:00", false},
		{"partial overlap", "11:30", "12:30", "12:00", "13:00", true},
		{"containment", "11:00", "14:00", "12:00", "13:00", true},
		{"contained", "12:15", "12:45", "12:00", "13:00", true},
		{"identical", "12:00", "13:00", "12:00", "13:00", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a0 := mustParse(t, tt.a0)
			a1 := mustParse(t, tt.a1)
			b0 := mustParse(t, tt.b0)
			b1 := mustParse(t, tt.b1)
			if got := overlaps(a0, a1, b0, b1); got != tt.want {
				t.Errorf("overlaps([%s,%s), [%s,%s)) = %v, want %v", tt.a0, tt.a1, tt.b0, tt.b1, got, tt.want)
			}
		})
	}
}
