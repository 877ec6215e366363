package models

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHasVacancy(t *testing.T) {
	tests := []struct {
		room Room
		want bool
	}{
		{Room{Capacity: 2, Occupied: 0, Status: RoomAvailable}, true},
		{Room{Capacity: 2, Occupied: 1, Status: RoomAvailable}, true},
		{Room{Capacity: 2, Occupied: 2, Status: RoomFull}, false},
		{Room{Capacity: 2, Occupied: 0, Status: RoomMaintenance}, false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.room.HasVacancy(),
			"occupied=%d capacity=%d status=%s", tt.room.Occupied, tt.room.Capacity, tt.room.Status)
	}
}

func TestValidRoomType(t *testing.T) {
	for _, valid := range []RoomType{RoomSingle, RoomDouble, RoomTriple, RoomQuad, RoomSuite} {
		assert.True(t, ValidRoomType(valid), string(valid))
	}
	assert.False(t, ValidRoomType("penthouse"))
	assert.False(t, ValidRoomType(""))
}

func TestErrorTaxonomy(t *testing.T) {
	t.Run("conflicts", func(t *testing.T) {
		for _, err := range []error{ErrBedOccupied, ErrRoomFull, ErrRoomMaintenance, ErrStudentAllocated, ErrAllocationEnded} {
			assert.True(t, IsConflict(err), err.Error())
			assert.False(t, IsNotFound(err), err.Error())
		}
	})

	t.Run("not found", func(t *testing.T) {
		for _, err := range []error{ErrRoomNotFound, ErrBedNotFound, ErrAllocationNotFound} {
			assert.True(t, IsNotFound(err), err.Error())
			assert.False(t, IsConflict(err), err.Error())
		}
	})

	t.Run("wrapped errors keep their class", func(t *testing.T) {
		wrapped := fmt.Errorf("allocating bed 4: %w", ErrBedOccupied)
		assert.True(t, IsConflict(wrapped))
	})
}
