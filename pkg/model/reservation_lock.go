package model

import "time"

// ReservationLock is an advisory lock held across the read-validate-insert
// sequence for one (resource, date) pair. It keeps two concurrent creations
// from both passing the overlap check before either row lands.
type ReservationLock struct {
	ID        string    `bson:"_id" json:"id"`
	ExpiresAt time.Time `bson:"expires_at" json:"expires_at"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
}
