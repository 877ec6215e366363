package repositories

import (
	"context"
	"errors"
	"time"

	"hostel-backend/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const allocationColumns = `a.id, a.student_id, a.room_id, a.bed_id, a.start_date, a.end_date,
        a.status, a.created_at, a.updated_at, r.room_number, b.bed_number`

const allocationFrom = ` FROM room_allocations a
         JOIN rooms r ON a.room_id = r.id
         JOIN beds b ON a.bed_id = b.id`

type AllocationRepository struct {
	DB *pgxpool.Pool
}

func NewAllocationRepository(db *pgxpool.Pool) *AllocationRepository {
	return &AllocationRepository{DB: db}
}

func scanAllocation(row pgx.Row) (*models.RoomAllocation, error) {
	var a models.RoomAllocation
	err := row.Scan(&a.ID, &a.StudentID, &a.RoomID, &a.BedID, &a.StartDate, &a.EndDate,
		&a.Status, &a.CreatedAt, &a.UpdatedAt, &a.RoomNumber, &a.BedNumber)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, models.ErrAllocationNotFound
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *AllocationRepository) Get(ctx context.Context, id int) (*models.RoomAllocation, error) {
	return scanAllocation(r.DB.QueryRow(ctx,
		`SELECT `+allocationColumns+allocationFrom+` WHERE a.id=$1`, id))
}

func (r *AllocationRepository) List(ctx context.Context, activeOnly bool) ([]*models.RoomAllocation, error) {
	query := `SELECT ` + allocationColumns + allocationFrom
	if activeOnly {
		query += ` WHERE a.status = 'active'`
	}
	query += ` ORDER BY a.created_at DESC`
	return r.queryAllocations(ctx, query)
}

func (r *AllocationRepository) ListByStudent(ctx context.Context, studentID string) ([]*models.RoomAllocation, error) {
	return r.queryAllocations(ctx,
		`SELECT `+allocationColumns+allocationFrom+`
         WHERE a.student_id=$1 ORDER BY a.created_at DESC`, studentID)
}

// ActiveByStudent returns the student's active allocation, or
// ErrAllocationNotFound when the student holds none.
func (r *AllocationRepository) ActiveByStudent(ctx context.Context, studentID string) (*models.RoomAllocation, error) {
	return scanAllocation(r.DB.QueryRow(ctx,
		`SELECT `+allocationColumns+allocationFrom+`
         WHERE a.student_id=$1 AND a.status='active'`, studentID))
}

func (r *AllocationRepository) queryAllocations(ctx context.Context, query string, args ...any) ([]*models.RoomAllocation, error) {
	rows, err := r.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var allocations []*models.RoomAllocation
	for rows.Next() {
		a, err := scanAllocation(rows)
		if err != nil {
			return nil, err
		}
		allocations = append(allocations, a)
	}
	return allocations, rows.Err()
}

// Allocate creates an allocation and applies its side effects as one
// transaction: flip the bed, insert the record, bump the room counter.
// The bed flip is conditional on is_occupied = FALSE, so of two racing
// allocates on the same bed exactly one commits; the other sees zero rows
// affected and aborts with ErrBedOccupied. The room update is likewise
// guarded so a full or maintenance room can never be oversubscribed.
func (r *AllocationRepository) Allocate(ctx context.Context, a *models.RoomAllocation) error {
	tx, err := r.DB.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	tag, err := tx.Exec(ctx,
		`UPDATE beds SET is_occupied = TRUE, occupied_by = $1, updated_at = NOW()
         WHERE id = $2 AND room_id = $3 AND is_occupied = FALSE`,
		a.StudentID, a.BedID, a.RoomID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return models.ErrBedOccupied
	}

	tag, err = tx.Exec(ctx,
		`UPDATE rooms
         SET occupied = occupied + 1,
             status = CASE WHEN occupied + 1 >= capacity THEN 'full' ELSE status END,
             updated_at = NOW()
         WHERE id = $1 AND status <> 'maintenance' AND occupied < capacity`,
		a.RoomID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return models.ErrRoomFull
	}

	a.Status = models.AllocationActive
	err = tx.QueryRow(ctx,
		`INSERT INTO room_allocations(student_id, room_id, bed_id, start_date, end_date, status)
         VALUES($1, $2, $3, $4, $5, 'active')
         RETURNING id, created_at, updated_at`,
		a.StudentID, a.RoomID, a.BedID, a.StartDate, a.EndDate,
	).Scan(&a.ID, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return mapUniqueViolation(err)
	}

	return tx.Commit(ctx)
}

// mapUniqueViolation translates violations of the partial unique indexes on
// room_allocations into conflict sentinels. Two racing allocates for the
// same student pass the service-level check in both requests; the loser's
// insert is stopped by uniq_active_allocation_per_student and must surface
// as a conflict, not a raw database error.
func mapUniqueViolation(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		switch pgErr.ConstraintName {
		case "uniq_active_allocation_per_student":
			return models.ErrStudentAllocated
		case "uniq_active_allocation_per_bed":
			return models.ErrBedOccupied
		}
	}
	return err
}

// End closes an active allocation and reverts its side effects in one
// transaction. Ending an already-ended allocation returns
// ErrAllocationEnded rather than decrementing the counter twice.
func (r *AllocationRepository) End(ctx context.Context, id int, endDate time.Time) (*models.RoomAllocation, error) {
	tx, err := r.DB.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	var bedID, roomID int
	err = tx.QueryRow(ctx,
		`UPDATE room_allocations
         SET end_date = $2, status = 'ended', updated_at = NOW()
         WHERE id = $1 AND status = 'active'
         RETURNING bed_id, room_id`, id, endDate).Scan(&bedID, &roomID)
	if errors.Is(err, pgx.ErrNoRows) {
		// Either unknown id or already ended; distinguish for the caller.
		var status models.AllocationStatus
		if lookupErr := tx.QueryRow(ctx,
			`SELECT status FROM room_allocations WHERE id=$1`, id).Scan(&status); lookupErr != nil {
			return nil, models.ErrAllocationNotFound
		}
		return nil, models.ErrAllocationEnded
	}
	if err != nil {
		return nil, err
	}

	if _, err := tx.Exec(ctx,
		`UPDATE beds SET is_occupied = FALSE, occupied_by = NULL, updated_at = NOW()
         WHERE id = $1`, bedID); err != nil {
		return nil, err
	}

	if _, err := tx.Exec(ctx,
		`UPDATE rooms
         SET occupied = GREATEST(occupied - 1, 0),
             status = CASE WHEN status = 'full' THEN 'available' ELSE status END,
             updated_at = NOW()
         WHERE id = $1`, roomID); err != nil {
		return nil, err
	}

	ended, err := scanAllocation(tx.QueryRow(ctx,
		`SELECT `+allocationColumns+allocationFrom+` WHERE a.id=$1`, id))
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return ended, nil
}
