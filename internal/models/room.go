package models

import "time"

// RoomStatus is the availability state of a room. "maintenance" is an
// exclusive override: a room under maintenance is never listed as available
// regardless of how many beds are free.
type RoomStatus string

const (
	RoomAvailable   RoomStatus = "available"
	RoomFull        RoomStatus = "full"
	RoomMaintenance RoomStatus = "maintenance"
)

// RoomType classifies a room by bed count / layout.
type RoomType string

const (
	RoomSingle RoomType = "single"
	RoomDouble RoomType = "double"
	RoomTriple RoomType = "triple"
	RoomQuad   RoomType = "quad"
	RoomSuite  RoomType = "suite"
)

// Room is a physical unit with one or more beds. Occupied is a cached
// projection of the count of occupied beds; it is maintained inside the
// same transaction as every bed mutation and can be rebuilt at any time
// via the recompute endpoint.
type Room struct {
	ID         int        `json:"id"`
	RoomNumber string     `json:"room_number"`
	Floor      int        `json:"floor"`
	Building   string     `json:"building,omitempty"`
	Type       RoomType   `json:"type"`
	Capacity   int        `json:"capacity"`
	Occupied   int        `json:"occupied"`
	Status     RoomStatus `json:"status"`
	Amenities  []string   `json:"amenities"`
	Price      float64    `json:"price"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

// HasVacancy reports whether the room can take another allocation.
func (r *Room) HasVacancy() bool {
	return r.Status != RoomMaintenance && r.Occupied < r.Capacity
}

// CreateRoomRequest creates a room together with its beds (numbered
// 1..capacity).
type CreateRoomRequest struct {
	RoomNumber string   `json:"room_number"`
	Floor      int      `json:"floor"`
	Building   string   `json:"building"`
	Type       RoomType `json:"type"`
	Capacity   int      `json:"capacity"`
	Amenities  []string `json:"amenities"`
	Price      float64  `json:"price"`
}

// ValidRoomType reports whether t is one of the supported room types.
func ValidRoomType(t RoomType) bool {
	switch t {
	case RoomSingle, RoomDouble, RoomTriple, RoomQuad, RoomSuite:
		return true
	}
	return false
}
