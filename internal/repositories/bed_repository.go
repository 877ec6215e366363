package repositories

import (
	"context"
	"errors"

	"hostel-backend/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const bedColumns = `id, room_id, bed_number, is_occupied, COALESCE(occupied_by, ''), created_at, updated_at`

type BedRepository struct {
	DB *pgxpool.Pool
}

func NewBedRepository(db *pgxpool.Pool) *BedRepository {
	return &BedRepository{DB: db}
}

func scanBed(row pgx.Row) (*models.Bed, error) {
	var bed models.Bed
	err := row.Scan(&bed.ID, &bed.RoomID, &bed.BedNumber, &bed.IsOccupied,
		&bed.OccupiedBy, &bed.CreatedAt, &bed.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, models.ErrBedNotFound
	}
	if err != nil {
		return nil, err
	}
	return &bed, nil
}

func (r *BedRepository) Get(ctx context.Context, id int) (*models.Bed, error) {
	return scanBed(r.DB.QueryRow(ctx,
		`SELECT `+bedColumns+` FROM beds WHERE id=$1`, id))
}

// ListByRoom returns all beds of a room ordered by bed number. Callers
// filter on is_occupied to find candidates for allocation.
func (r *BedRepository) ListByRoom(ctx context.Context, roomID int) ([]*models.Bed, error) {
	rows, err := r.DB.Query(ctx,
		`SELECT `+bedColumns+` FROM beds WHERE room_id=$1 ORDER BY bed_number ASC`, roomID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var beds []*models.Bed
	for rows.Next() {
		bed, err := scanBed(rows)
		if err != nil {
			return nil, err
		}
		beds = append(beds, bed)
	}
	return beds, rows.Err()
}
