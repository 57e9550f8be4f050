package model

import (
	"time"

	"carslot/pkg/timeofday"
)

const (
	StatusReserved  = "reserved"
	StatusCancelled = "cancelled"
)

const (
	DateLayout = "2006-01-02"
)

// Reservation is one booking of a vehicle for a contiguous window on a
// calendar day. Times are naive local "HH:MM" strings on the quarter-hour
// lattice; EndTime is exclusive and wrapped modulo 24h when a window runs
// past midnight. Status is the only field that changes after creation.
type Reservation struct {
	ID        int64     `json:"id,omitempty" bson:"_id,omitempty"`
	Name      string    `json:"name" bson:"name" validate:"required,min=1,max=100"`
	Date      string    `json:"date" bson:"date" validate:"required,dateonly"`
	StartTime string    `json:"start_time" bson:"start_time" validate:"required,quarter_aligned"`
	EndTime   string    `json:"end_time" bson:"end_time" validate:"required,quarter_aligned"`
	Resource  string    `json:"resource" bson:"resource" validate:"required,min=1,max=50"`
	Status    string    `json:"status" bson:"status" validate:"required,oneof=reserved cancelled"`
	CreatedAt time.Time `json:"created_at,omitempty" bson:"created_at"`
}

// Interval returns the reservation window as raw minute offsets. The end is
// returned exactly as stored: a window that was wrapped past midnight comes
// back with end <= start, and callers treat it according to their own rules
// (the slot expansion skips it, display infers a next-day end).
func (r *Reservation) Interval() (start, end timeofday.TimeOfDay, err error) {
	start, err = timeofday.Parse(r.StartTime)
	if err != nil {
		return 0, 0, err
	}
	end, err = timeofday.Parse(r.EndTime)
	if err != nil {
		return 0, 0, err
	}
	return start, end, nil
}

// DurationMinutes is the display-oriented length of the window. When the
// stored end does not lie after the start it is assumed to fall on the next
// day, matching how the listing view renders midnight-crossing windows.
func (r *Reservation) DurationMinutes() (int, error) {
	start, end, err := r.Interval()
	if err != nil {
		return 0, err
	}
	if end <= start {
		end += timeofday.MinutesPerDay
	}
	return end.Minutes() - start.Minutes(), nil
}
