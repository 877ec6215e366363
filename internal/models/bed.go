package models

import "time"

// Bed is an individually allocatable sleeping slot within a room.
// IsOccupied must agree with the existence of exactly one active
// RoomAllocation referencing the bed; the allocation repository flips it
// inside the same transaction as the allocation insert/close.
type Bed struct {
	ID         int       `json:"id"`
	RoomID     int       `json:"room_id"`
	BedNumber  int       `json:"bed_number"`
	IsOccupied bool      `json:"is_occupied"`
	OccupiedBy string    `json:"occupied_by,omitempty"` // student id of the active occupant
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}
