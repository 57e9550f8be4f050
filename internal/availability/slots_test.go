package availability

import (
	"testing"

	"carslot/pkg/model"
	"carslot/pkg/timeofday"
)

func mustParse(t *testing.T, s string) timeofday.TimeOfDay {
	t.Helper()
	tod, err := timeofday.Parse(s)
	if err != nil {
		t.Fatalf("parse %q: %v", s, err)
	}
	return tod
}

func reserved(name, date, start, end, resource string) *model.Reservation {
	return &model.Reservation{
		Name:      name,
		Date:      date,
		StartTime: start,
		EndTime:   end,
		Resource:  resource,
		Status:    model.StatusReserved,
	}
}

func TestAllSlots_LatticeCompleteness(t *testing.T) {
	slots := AllSlots()

	if len(slots) != 96 {
		t.Fatalf("expected 96 slots, got %d", len(slots))
	}
	if slots[0].String() != "00:00" {
		t.Errorf("first slot = %s, want 00:00", slots[0])
	}
	if slots[len(slots)-1].String() != "23:45" {
		t.Errorf("last slot = %s, want 23:45", slots[len(slots)-1])
	}
	for i := 1; i < len(slots); i++ {
		if slots[i] <= slots[i-1] {
			t.Fatalf("slots not strictly increasing at index %d: %s then %s", i, slots[i-1], slots[i])
		}
		if slots[i]-slots[i-1] != slotMinutes {
			t.Fatalf("slot step at index %d is %d minutes, want %d", i, slots[i]-slots[i-1], slotMinutes)
		}
	}
}

func TestBlockedSlots_Coverage(t *testing.T) {
	reservations := []*model.Reservation{
		reserved("Tanaka", "2024-06-01", "09:00", "10:00", "VOXY"),
	}

	blocked := BlockedSlots(reservations, "VOXY", "2024-06-01")

	if len(blocked) != 4 {
		t.Fatalf("expected 4 blocked slots, got %d", len(blocked))
	}
	for _, s := range []string{"09:00", "09:15", "09:30", "09:45"} {
		if _, ok := blocked[mustParse(t, s)]; !ok {
			t.Errorf("expected %s to be blocked", s)
		}
	}
	// End is exclusive.
	if _, ok := blocked[mustParse(t, "10:00")]; ok {
		t.Error("10:00 should not be blocked")
	}
	if _, ok := blocked[mustParse(t, "08:45")]; ok {
		t.Error("08:45 should not be blocked")
	}
}

func TestBlockedSlots_Filtering(t *testing.T) {
	cancelled := reserved("Sato", "2024-06-01", "11:00", "12:00", "VOXY")
	cancelled.Status = model.StatusCancelled

	reservations := []*model.Reservation{
		cancelled,
		reserved("Suzuki", "2024-06-02", "09:00", "10:00", "VOXY"),   // other date
		reserved("Takahashi", "2024-06-01", "09:00", "10:00", "HIACE"), // other resource
	}

	blocked := BlockedSlots(reservations, "VOXY", "2024-06-01")

	if len(blocked) != 0 {
		t.Errorf("expected no blocked slots, got %d", len(blocked))
	}
}

func TestBlockedSlots_DegenerateIntervals(t *testing.T) {
	reservations := []*model.Reservation{
		// Zero-length window.
		reserved("Ito", "2024-06-01", "09:00", "09:00", "VOXY"),
		// Wrapped past midnight: stored end precedes start, contributes no
		// slots on this day's lattice.
		reserved("Kato", "2024-06-01", "23:00", "01:00", "VOXY"),
	}

	blocked := BlockedSlots(reservations, "VOXY", "2024-06-01")

	if len(blocked) != 0 {
		t.Errorf("expected degenerate intervals to contribute no slots, got %d", len(blocked))
	}
}

func TestBlockedSlots_MultipleReservationsUnion(t *testing.T) {
	reservations := []*model.Reservation{
		reserved("Tanaka", "2024-06-01", "09:00", "10:00", "VOXY"),
		reserved("Sato", "2024-06-01", "12:00", "13:00", "VOXY"),
	}

	blocked := BlockedSlots(reservations, "VOXY", "2024-06-01")

	if len(blocked) != 8 {
		t.Fatalf("expected 8 blocked slots, got %d", len(blocked))
	}
	for _, s := range []string{"09:00", "09:45", "12:00", "12:45"} {
		if _, ok := blocked[mustParse(t, s)]; !ok {
			t.Errorf("expected %s to be blocked", s)
		}
	}
	for _, s := range []string{"08:45", "10:00", "11:45", "13:00"} {
		if _, ok := blocked[mustParse(t, s)]; ok {
			t.Errorf("%s should not be blocked", s)
		}
	}
}
