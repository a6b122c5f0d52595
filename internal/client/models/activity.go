package models

import "time"

// Activity is one schedulable club event.
type Activity struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	StartAt     time.Time `json:"startAt"`

	// FreeSlots is the remaining capacity; 0 means the event is full.
	FreeSlots int `json:"freeSlots"`

	// Enrolled reports whether the current user is signed up.
	Enrolled bool `json:"isRegistered"`
}
