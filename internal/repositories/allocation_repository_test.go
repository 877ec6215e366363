package repositories

import (
	"errors"
	"fmt"
	"testing"

	"hostel-backend/internal/models"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestMapUniqueViolation(t *testing.T) {
	t.Run("student index maps to double-allocation conflict", func(t *testing.T) {
		err := &pgconn.PgError{Code: "23505", ConstraintName: "uniq_active_allocation_per_student"}
		assert.ErrorIs(t, mapUniqueViolation(err), models.ErrStudentAllocated)
	})

	t.Run("bed index maps to occupied conflict", func(t *testing.T) {
		err := &pgconn.PgError{Code: "23505", ConstraintName: "uniq_active_allocation_per_bed"}
		assert.ErrorIs(t, mapUniqueViolation(err), models.ErrBedOccupied)
	})

	t.Run("wrapped violations still map", func(t *testing.T) {
		wrapped := fmt.Errorf("insert allocation: %w",
			&pgconn.PgError{Code: "23505", ConstraintName: "uniq_active_allocation_per_student"})
		assert.ErrorIs(t, mapUniqueViolation(wrapped), models.ErrStudentAllocated)
	})

	t.Run("other unique violations pass through", func(t *testing.T) {
		err := &pgconn.PgError{Code: "23505", ConstraintName: "rooms_room_number_key"}
		got := mapUniqueViolation(err)
		var pgErr *pgconn.PgError
		assert.True(t, errors.As(got, &pgErr))
	})

	t.Run("non-unique errors pass through", func(t *testing.T) {
		plain := errors.New("connection reset")
		assert.Equal(t, plain, mapUniqueViolation(plain))

		fk := &pgconn.PgError{Code: "23503", ConstraintName: "room_allocations_room_id_fkey"}
		assert.NotErrorIs(t, mapUniqueViolation(fk), models.ErrStudentAllocated)
	})
}
