package availability

import (
	"carslot/pkg/model"
	"carslot/pkg/timeofday"
)

// SelectableStarts filters the lattice down to the start times a new
// reservation may legally use: every slot that is not blocked and, when
// minStart is set, not earlier than it. minStart carries the end of the
// most recent reservation created in the same session for the same date;
// callers reset it when the date changes. Order follows allSlots.
//
// An empty result means the day has no bookable start time left. That is a
// terminal state for the date, not a retryable failure.
func SelectableStarts(allSlots []timeofday.TimeOfDay, blocked map[timeofday.TimeOfDay]struct{}, minStart *timeofday.TimeOfDay) []timeofday.TimeOfDay {
	var starts []timeofday.TimeOfDay
	for _, t := range allSlots {
		if minStart != nil && t < *minStart {
			continue
		}
		if _, ok := blocked[t]; ok {
			continue
		}
		starts = append(starts, t)
	}
	return starts
}

// DurationCandidates is the fixed candidate list: 30, 45, ..., 1440 minutes.
func DurationCandidates() []int {
	var candidates []int
	for d := MinDurationMinutes; d <= MaxDurationMinutes; d += slotMinutes {
		candidates = append(candidates, d)
	}
	return candidates
}

// ValidDurations returns, in ascending order, every candidate duration d for
// which [start, start+d) overlaps no reserved window on this resource and
// date. Each candidate is tested against the raw intervals rather than the
// blocked-slot set: a candidate may run past midnight, where the 96-slot
// lattice has nothing to say. The proposed end is kept as raw minutes
// (possibly beyond 24:00) for the comparison, mirroring how the windows are
// checked at creation time.
//
// An empty result is terminal for this start time; callers surface it and
// ask for a different start.
func ValidDurations(start timeofday.TimeOfDay, reservations []*model.Reservation, resource, date string) []int {
	type window struct {
		start, end timeofday.TimeOfDay
	}
	var existing []window
	for _, r := range reservations {
		if !matches(r, resource, date) {
			continue
		}
		s, e, err := r.Interval()
		if err != nil {
			continue
		}
		existing = append(existing, window{start: s, end: e})
	}

	var valid []int
	for _, d := range DurationCandidates() {
		end := start.Add(d)

		conflict := false
		for _, w := range existing {
			if overlaps(start, end, w.start, w.end) {
				conflict = true
				break
			}
		}
		if !conflict {
			valid = append(valid, d)
		}
	}
	return valid
}

// overlaps reports whether the half-open intervals [a0,a1) and [b0,b1)
// intersect. Touching endpoints do not overlap: an interval ending exactly
// where another begins is allowed.
func overlaps(a0, a1, b0, b1 timeofday.TimeOfDay) bool {
	return !(a1 <= b0 || a0 >= b1)
}
