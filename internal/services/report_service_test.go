package services

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"testing"

	"hostel-backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeArchiver struct {
	keys []string
	fail bool
}

func (f *fakeArchiver) Upload(ctx context.Context, key string, body []byte, contentType string) error {
	if f.fail {
		return errors.New("bucket unreachable")
	}
	f.keys = append(f.keys, key)
	return nil
}

func newReportService() (*ReportService, *AllocationService, *memStore) {
	store := newMemStore()
	alloc := NewAllocationService(store, bedStoreAdapter{store}, allocStoreAdapter{store})
	report := NewReportService(store, allocStoreAdapter{store})
	return report, alloc, store
}

func TestOccupancyCSV(t *testing.T) {
	ctx := context.Background()
	report, alloc, store := newReportService()

	roomA := store.addRoom(2, models.RoomAvailable)
	store.addRoom(3, models.RoomMaintenance)
	beds := store.bedsOf(roomA.ID)
	_, err := alloc.Allocate(ctx, &models.AllocateRequest{StudentID: "STU-001", RoomID: roomA.ID, BedID: beds[0].ID})
	require.NoError(t, err)

	data, err := report.OccupancyCSV(ctx)
	require.NoError(t, err)

	records, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3, "header plus one row per room")
	assert.Equal(t, []string{"room_number", "building", "floor", "type", "capacity", "occupied", "free", "status", "price"}, records[0])

	for _, rec := range records[1:] {
		if rec[0] == roomA.RoomNumber {
			assert.Equal(t, "1", rec[5])
			assert.Equal(t, "1", rec[6])
			assert.Equal(t, "available", rec[7])
		}
	}
}

func TestOccupancyCSVArchiving(t *testing.T) {
	ctx := context.Background()

	t.Run("uploads dated copy", func(t *testing.T) {
		report, _, store := newReportService()
		store.addRoom(1, models.RoomAvailable)

		archiver := &fakeArchiver{}
		report.SetArchiver(archiver)

		_, err := report.OccupancyCSV(ctx)
		require.NoError(t, err)
		require.Len(t, archiver.keys, 1)
		assert.Contains(t, archiver.keys[0], "reports/occupancy_")
	})

	t.Run("archive failure does not fail the report", func(t *testing.T) {
		report, _, store := newReportService()
		store.addRoom(1, models.RoomAvailable)

		report.SetArchiver(&fakeArchiver{fail: true})

		data, err := report.OccupancyCSV(ctx)
		require.NoError(t, err)
		assert.NotEmpty(t, data)
	})
}

func TestAllocationSlipPDF(t *testing.T) {
	ctx := context.Background()
	report, alloc, store := newReportService()
	room := store.addRoom(2, models.RoomAvailable)
	beds := store.bedsOf(room.ID)

	a, err := alloc.Allocate(ctx, &models.AllocateRequest{
		StudentID: "STU-001",
		RoomID:    room.ID,
		BedID:     beds[0].ID,
		StartDate: "2026-07-01",
	})
	require.NoError(t, err)

	data, err := report.AllocationSlipPDF(ctx, a.ID)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF")), "output is a PDF document")

	_, err = report.AllocationSlipPDF(ctx, 999)
	assert.ErrorIs(t, err, models.ErrAllocationNotFound)
}
