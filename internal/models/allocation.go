package models

import "time"

// AllocationStatus is the lifecycle state of a RoomAllocation. It is
// deliberately distinct from RoomStatus: the two enums were previously a
// single loosely shared tag, which made room state and allocation state
// easy to confuse.
type AllocationStatus string

const (
	AllocationActive AllocationStatus = "active"
	AllocationEnded  AllocationStatus = "ended"
)

// RoomAllocation records a student occupying a specific bed for a time
// span. EndDate is nil while the allocation is open-ended.
type RoomAllocation struct {
	ID        int              `json:"id"`
	StudentID string           `json:"student_id"`
	RoomID    int              `json:"room_id"`
	BedID     int              `json:"bed_id"`
	StartDate time.Time        `json:"start_date"`
	EndDate   *time.Time       `json:"end_date,omitempty"`
	Status    AllocationStatus `json:"status"`
	CreatedAt time.Time        `json:"created_at"`
	UpdatedAt time.Time        `json:"updated_at"`

	// Joined display fields, populated on reads.
	RoomNumber string `json:"room_number,omitempty"`
	BedNumber  int    `json:"bed_number,omitempty"`
}

// AllocateRequest is the request body for creating an allocation.
// Dates use the "2006-01-02" layout; an empty start date means today.
type AllocateRequest struct {
	StudentID string `json:"student_id"`
	RoomID    int    `json:"room_id"`
	BedID     int    `json:"bed_id"`
	StartDate string `json:"start_date,omitempty"`
	EndDate   string `json:"end_date,omitempty"`
}

// EndAllocationRequest is the optional request body for ending an
// allocation. An empty end date means now.
type EndAllocationRequest struct {
	EndDate string `json:"end_date,omitempty"`
}
