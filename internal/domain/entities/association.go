package entities

import "time"

// Association is the persisted form of one person/interest edge.
// A pair is stored once; both directions are read from the same row.
type Association struct {
	PersonID   string    `json:"person_id"`
	InterestID string    `json:"interest_id"`
	CreatedAt  time.Time `json:"created_at"`
}
