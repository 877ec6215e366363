package models

import "errors"

// Sentinel errors for the allocation workflow. Repositories and services
// return these (possibly wrapped); handlers map them to HTTP statuses with
// errors.Is. Nothing in the workflow silently corrects a violated
// precondition — the recompute endpoint is the only sanctioned repair path.
var (
	ErrRoomNotFound       = errors.New("room not found")
	ErrBedNotFound        = errors.New("bed not found")
	ErrAllocationNotFound = errors.New("allocation not found")

	// Conflict family.
	ErrBedOccupied      = errors.New("bed is already occupied")
	ErrRoomFull         = errors.New("room has no free beds")
	ErrRoomMaintenance  = errors.New("room is under maintenance")
	ErrStudentAllocated = errors.New("student already holds an active allocation")
	ErrAllocationEnded  = errors.New("allocation already ended")

	ErrInvalidArgument = errors.New("invalid argument")
)

// IsConflict reports whether err belongs to the conflict family of the
// taxonomy (racing occupation, double allocation, repeated end).
func IsConflict(err error) bool {
	return errors.Is(err, ErrBedOccupied) ||
		errors.Is(err, ErrRoomFull) ||
		errors.Is(err, ErrRoomMaintenance) ||
		errors.Is(err, ErrStudentAllocated) ||
		errors.Is(err, ErrAllocationEnded)
}

// IsNotFound reports whether err is one of the not-found sentinels.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrRoomNotFound) ||
		errors.Is(err, ErrBedNotFound) ||
		errors.Is(err, ErrAllocationNotFound)
}
