package availability

import (
	"carslot/pkg/model"
	"carslot/pkg/timeofday"
)

const (
	slotMinutes = timeofday.SlotMinutes
	slotsPerDay = timeofday.MinutesPerDay / slotMinutes

	// MinDurationMinutes is the shortest bookable window; candidates step by
	// the slot interval up to a full day.
	MinDurationMinutes = 30
	MaxDurationMinutes = timeofday.MinutesPerDay
)

// AllSlots returns the day's full quarter-hour lattice: 00:00, 00:15, ...,
// 23:45, in chronological order.
func AllSlots() []timeofday.TimeOfDay {
	slots := make([]timeofday.TimeOfDay, slotsPerDay)
	for i := range slots {
		slots[i] = timeofday.TimeOfDay(i * slotMinutes)
	}
	return slots
}

// BlockedSlots expands every reserved window matching resource and date into
// its constituent quarter-hour marks and unions them. Cancelled rows and
// rows for another resource or date contribute nothing, as do windows whose
// stored end does not lie after the start (zero-length, or wrapped past
// midnight; the lattice does not model the next day).
func BlockedSlots(reservations []*model.Reservation, resource, date string) map[timeofday.TimeOfDay]struct{} {
	blocked := make(map[timeofday.TimeOfDay]struct{})

	for _, r := range reservations {
		if !matches(r, resource, date) {
			continue
		}
		start, end, err := r.Interval()
		if err != nil {
			continue
		}
		for t := start; t < end; t += slotMinutes {
			blocked[t] = struct{}{}
		}
	}

	return blocked
}

func matches(r *model.Reservation, resource, date string) bool {
	return r.Status == model.StatusReserved && r.Resource == resource && r.Date == date
}
