package repositories

import (
	"context"
	"errors"

	"hostel-backend/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const roomColumns = `id, room_number, floor, building, type, capacity, occupied, status, amenities, price, created_at, updated_at`

type RoomRepository struct {
	DB *pgxpool.Pool
}

func NewRoomRepository(db *pgxpool.Pool) *RoomRepository {
	return &RoomRepository{DB: db}
}

func scanRoom(row pgx.Row) (*models.Room, error) {
	var room models.Room
	err := row.Scan(&room.ID, &room.RoomNumber, &room.Floor, &room.Building, &room.Type,
		&room.Capacity, &room.Occupied, &room.Status, &room.Amenities, &room.Price,
		&room.CreatedAt, &room.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, models.ErrRoomNotFound
	}
	if err != nil {
		return nil, err
	}
	return &room, nil
}

func (r *RoomRepository) Get(ctx context.Context, id int) (*models.Room, error) {
	return scanRoom(r.DB.QueryRow(ctx,
		`SELECT `+roomColumns+` FROM rooms WHERE id=$1`, id))
}

func (r *RoomRepository) List(ctx context.Context) ([]*models.Room, error) {
	return r.queryRooms(ctx,
		`SELECT `+roomColumns+` FROM rooms ORDER BY room_number ASC`)
}

// ListAvailable returns rooms that can take another allocation: not under
// maintenance and with at least one free bed. Ordered by room number for
// deterministic listings.
func (r *RoomRepository) ListAvailable(ctx context.Context) ([]*models.Room, error) {
	return r.queryRooms(ctx,
		`SELECT `+roomColumns+` FROM rooms
         WHERE status <> 'maintenance' AND occupied < capacity
         ORDER BY room_number ASC`)
}

func (r *RoomRepository) queryRooms(ctx context.Context, query string, args ...any) ([]*models.Room, error) {
	rows, err := r.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var rooms []*models.Room
	for rows.Next() {
		room, err := scanRoom(rows)
		if err != nil {
			return nil, err
		}
		rooms = append(rooms, room)
	}
	return rooms, rows.Err()
}

// CreateWithBeds inserts a room and its beds numbered 1..capacity in one
// transaction.
func (r *RoomRepository) CreateWithBeds(ctx context.Context, room *models.Room) error {
	tx, err := r.DB.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	err = tx.QueryRow(ctx,
		`INSERT INTO rooms(room_number, floor, building, type, capacity, amenities, price)
         VALUES($1, $2, $3, $4, $5, $6, $7)
         RETURNING id, occupied, status, created_at, updated_at`,
		room.RoomNumber, room.Floor, room.Building, room.Type, room.Capacity, room.Amenities, room.Price,
	).Scan(&room.ID, &room.Occupied, &room.Status, &room.CreatedAt, &room.UpdatedAt)
	if err != nil {
		return err
	}

	for n := 1; n <= room.Capacity; n++ {
		if _, err := tx.Exec(ctx,
			`INSERT INTO beds(room_id, bed_number) VALUES($1, $2)`, room.ID, n); err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}

// Recompute rebuilds the denormalized occupancy counter and status of a
// room from the authoritative bed state. Idempotent; the repair path for
// drift left by partial failures. Maintenance status is preserved.
func (r *RoomRepository) Recompute(ctx context.Context, roomID int) (*models.Room, error) {
	return scanRoom(r.DB.QueryRow(ctx,
		`UPDATE rooms r
         SET occupied = sub.cnt,
             status = CASE
                 WHEN r.status = 'maintenance' THEN 'maintenance'
                 WHEN sub.cnt >= r.capacity THEN 'full'
                 ELSE 'available'
             END,
             updated_at = NOW()
         FROM (
             SELECT COUNT(*) AS cnt FROM beds WHERE room_id = $1 AND is_occupied
         ) sub
         WHERE r.id = $1
         RETURNING `+roomColumns, roomID))
}

// SetMaintenance toggles the maintenance override on a room. Leaving
// maintenance recomputes the status from current occupancy.
func (r *RoomRepository) SetMaintenance(ctx context.Context, roomID int, under bool) (*models.Room, error) {
	if under {
		return scanRoom(r.DB.QueryRow(ctx,
			`UPDATE rooms SET status='maintenance', updated_at=NOW()
             WHERE id=$1 RETURNING `+roomColumns, roomID))
	}
	return scanRoom(r.DB.QueryRow(ctx,
		`UPDATE rooms
         SET status = CASE WHEN occupied >= capacity THEN 'full' ELSE 'available' END,
             updated_at = NOW()
         WHERE id=$1 RETURNING `+roomColumns, roomID))
}
