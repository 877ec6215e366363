package services

import (
	"context"
	"fmt"
	"time"

	"hostel-backend/internal/cache"
	"hostel-backend/internal/metrics"
	"hostel-backend/internal/models"
	"hostel-backend/internal/timeutil"
)

// RoomStore is the persistence surface the allocation workflow needs for
// rooms. Implemented by repositories.RoomRepository; tests substitute an
// in-memory store.
type RoomStore interface {
	Get(ctx context.Context, id int) (*models.Room, error)
	List(ctx context.Context) ([]*models.Room, error)
	ListAvailable(ctx context.Context) ([]*models.Room, error)
	CreateWithBeds(ctx context.Context, room *models.Room) error
	Recompute(ctx context.Context, roomID int) (*models.Room, error)
	SetMaintenance(ctx context.Context, roomID int, under bool) (*models.Room, error)
}

type BedStore interface {
	Get(ctx context.Context, id int) (*models.Bed, error)
	ListByRoom(ctx context.Context, roomID int) ([]*models.Bed, error)
}

// AllocationStore persists allocations. Allocate and End must be atomic
// with their bed/room side effects: Allocate fails with ErrBedOccupied when
// the bed was taken by a racing writer, End fails with ErrAllocationEnded
// on a repeat call.
type AllocationStore interface {
	Get(ctx context.Context, id int) (*models.RoomAllocation, error)
	List(ctx context.Context, activeOnly bool) ([]*models.RoomAllocation, error)
	ListByStudent(ctx context.Context, studentID string) ([]*models.RoomAllocation, error)
	ActiveByStudent(ctx context.Context, studentID string) (*models.RoomAllocation, error)
	Allocate(ctx context.Context, a *models.RoomAllocation) error
	End(ctx context.Context, id int, endDate time.Time) (*models.RoomAllocation, error)
}

// Notifier receives allocation lifecycle events. Delivery is best-effort;
// allocation correctness never depends on it.
type Notifier interface {
	AllocationCreated(a *models.RoomAllocation)
	AllocationEnded(a *models.RoomAllocation)
}

// AllocationService implements the room/bed allocation workflow: listing
// candidates, allocating a bed to a student, ending an allocation, and
// reconciling the denormalized occupancy counters.
type AllocationService struct {
	Rooms       RoomStore
	Beds        BedStore
	Allocations AllocationStore

	notifier Notifier
}

func NewAllocationService(rooms RoomStore, beds BedStore, allocations AllocationStore) *AllocationService {
	return &AllocationService{
		Rooms:       rooms,
		Beds:        beds,
		Allocations: allocations,
	}
}

// SetNotifier wires the event feed for staff dashboards.
func (s *AllocationService) SetNotifier(n Notifier) {
	s.notifier = n
}

func (s *AllocationService) ListRooms(ctx context.Context, availableOnly bool) ([]*models.Room, error) {
	if availableOnly {
		return s.Rooms.ListAvailable(ctx)
	}
	return s.Rooms.List(ctx)
}

func (s *AllocationService) GetRoom(ctx context.Context, id int) (*models.Room, error) {
	return s.Rooms.Get(ctx, id)
}

// ListBeds returns all beds of a room; the room must exist.
func (s *AllocationService) ListBeds(ctx context.Context, roomID int) ([]*models.Bed, error) {
	if _, err := s.Rooms.Get(ctx, roomID); err != nil {
		return nil, err
	}
	return s.Beds.ListByRoom(ctx, roomID)
}

func (s *AllocationService) CreateRoom(ctx context.Context, req *models.CreateRoomRequest) (*models.Room, error) {
	if req.RoomNumber == "" {
		return nil, fmt.Errorf("%w: room number is required", models.ErrInvalidArgument)
	}
	if req.Capacity < 1 {
		return nil, fmt.Errorf("%w: capacity must be at least 1", models.ErrInvalidArgument)
	}
	if req.Type == "" {
		req.Type = models.RoomDouble
	}
	if !models.ValidRoomType(req.Type) {
		return nil, fmt.Errorf("%w: unknown room type %q", models.ErrInvalidArgument, req.Type)
	}

	room := &models.Room{
		RoomNumber: req.RoomNumber,
		Floor:      req.Floor,
		Building:   req.Building,
		Type:       req.Type,
		Capacity:   req.Capacity,
		Amenities:  req.Amenities,
		Price:      req.Price,
	}
	if room.Amenities == nil {
		room.Amenities = []string{}
	}

	if err := s.Rooms.CreateWithBeds(ctx, room); err != nil {
		return nil, err
	}

	cache.InvalidateRooms(ctx)
	return room, nil
}

// Allocate assigns a student to a specific bed. Preconditions are checked
// against the store, and the final bed flip is a conditional update inside
// the store transaction, so a bed taken between check and write surfaces
// as ErrBedOccupied instead of a double booking.
func (s *AllocationService) Allocate(ctx context.Context, req *models.AllocateRequest) (*models.RoomAllocation, error) {
	if req.StudentID == "" {
		return nil, fmt.Errorf("%w: student id is required", models.ErrInvalidArgument)
	}
	if req.RoomID <= 0 || req.BedID <= 0 {
		return nil, fmt.Errorf("%w: room id and bed id are required", models.ErrInvalidArgument)
	}

	startDate := timeutil.Now()
	if req.StartDate != "" {
		parsed, err := timeutil.ParseDate(req.StartDate)
		if err != nil {
			return nil, fmt.Errorf("%w: bad start date %q", models.ErrInvalidArgument, req.StartDate)
		}
		startDate = parsed
	}

	var endDate *time.Time
	if req.EndDate != "" {
		parsed, err := timeutil.ParseDate(req.EndDate)
		if err != nil {
			return nil, fmt.Errorf("%w: bad end date %q", models.ErrInvalidArgument, req.EndDate)
		}
		if !parsed.After(startDate) {
			return nil, fmt.Errorf("%w: end date must be after start date", models.ErrInvalidArgument)
		}
		endDate = &parsed
	}

	room, err := s.Rooms.Get(ctx, req.RoomID)
	if err != nil {
		return nil, err
	}
	if room.Status == models.RoomMaintenance {
		return nil, models.ErrRoomMaintenance
	}
	if room.Occupied >= room.Capacity {
		return nil, models.ErrRoomFull
	}

	bed, err := s.Beds.Get(ctx, req.BedID)
	if err != nil {
		return nil, err
	}
	if bed.RoomID != req.RoomID {
		return nil, fmt.Errorf("%w: bed %d does not belong to room %d", models.ErrInvalidArgument, req.BedID, req.RoomID)
	}
	if bed.IsOccupied {
		return nil, models.ErrBedOccupied
	}

	// One active allocation per student.
	if _, err := s.Allocations.ActiveByStudent(ctx, req.StudentID); err == nil {
		return nil, models.ErrStudentAllocated
	} else if !models.IsNotFound(err) {
		return nil, err
	}

	allocation := &models.RoomAllocation{
		StudentID: req.StudentID,
		RoomID:    req.RoomID,
		BedID:     req.BedID,
		StartDate: startDate,
		EndDate:   endDate,
	}
	if err := s.Allocations.Allocate(ctx, allocation); err != nil {
		if models.IsConflict(err) {
			metrics.AllocationConflicts.Inc()
		}
		return nil, err
	}
	allocation.RoomNumber = room.RoomNumber
	allocation.BedNumber = bed.BedNumber

	metrics.AllocationsCreated.Inc()
	cache.InvalidateRooms(ctx)
	if s.notifier != nil {
		s.notifier.AllocationCreated(allocation)
	}
	return allocation, nil
}

// End closes an allocation, frees its bed and decrements the room counter.
// Repeating the call is an ErrAllocationEnded conflict, never a second
// decrement.
func (s *AllocationService) End(ctx context.Context, id int, req *models.EndAllocationRequest) (*models.RoomAllocation, error) {
	endDate := timeutil.Now()
	if req != nil && req.EndDate != "" {
		parsed, err := timeutil.ParseDate(req.EndDate)
		if err != nil {
			return nil, fmt.Errorf("%w: bad end date %q", models.ErrInvalidArgument, req.EndDate)
		}
		endDate = parsed
	}

	ended, err := s.Allocations.End(ctx, id, endDate)
	if err != nil {
		return nil, err
	}

	metrics.AllocationsEnded.Inc()
	cache.InvalidateRooms(ctx)
	if s.notifier != nil {
		s.notifier.AllocationEnded(ended)
	}
	return ended, nil
}

func (s *AllocationService) GetAllocation(ctx context.Context, id int) (*models.RoomAllocation, error) {
	return s.Allocations.Get(ctx, id)
}

func (s *AllocationService) ListAllocations(ctx context.Context, activeOnly bool) ([]*models.RoomAllocation, error) {
	return s.Allocations.List(ctx, activeOnly)
}

func (s *AllocationService) ListStudentAllocations(ctx context.Context, studentID string) ([]*models.RoomAllocation, error) {
	if studentID == "" {
		return nil, fmt.Errorf("%w: student id is required", models.ErrInvalidArgument)
	}
	return s.Allocations.ListByStudent(ctx, studentID)
}

// RecomputeOccupancy rebuilds a room's occupancy counter and status from
// bed state. Safe to run at any time; running it twice yields the same
// result as running it once.
func (s *AllocationService) RecomputeOccupancy(ctx context.Context, roomID int) (*models.Room, error) {
	room, err := s.Rooms.Recompute(ctx, roomID)
	if err != nil {
		return nil, err
	}
	cache.InvalidateRooms(ctx)
	return room, nil
}

// SetMaintenance flips the maintenance override on a room.
func (s *AllocationService) SetMaintenance(ctx context.Context, roomID int, under bool) (*models.Room, error) {
	room, err := s.Rooms.SetMaintenance(ctx, roomID, under)
	if err != nil {
		return nil, err
	}
	cache.InvalidateRooms(ctx)
	return room, nil
}
