package services

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"log"
	"strconv"
	"strings"

	"hostel-backend/internal/timeutil"

	"github.com/jung-kurt/gofpdf/v2"
)

// Archiver copies generated reports to object storage. Optional; a nil
// archiver means reports are only served over HTTP.
type Archiver interface {
	Upload(ctx context.Context, key string, body []byte, contentType string) error
}

// ReportService produces the data products the staff dashboard offers:
// an occupancy CSV across all rooms and a printable allocation slip.
type ReportService struct {
	Rooms       RoomStore
	Allocations AllocationStore

	archiver Archiver
}

func NewReportService(rooms RoomStore, allocations AllocationStore) *ReportService {
	return &ReportService{Rooms: rooms, Allocations: allocations}
}

// SetArchiver wires the object-storage uploader.
func (s *ReportService) SetArchiver(a Archiver) {
	s.archiver = a
}

// OccupancyCSV renders every room as a CSV row and, when an archiver is
// configured, uploads a dated copy. Archive failures are logged, not
// surfaced: the report itself is still good.
func (s *ReportService) OccupancyCSV(ctx context.Context) ([]byte, error) {
	rooms, err := s.Rooms.List(ctx)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	w.Write([]string{"room_number", "building", "floor", "type", "capacity", "occupied", "free", "status", "price"})
	for _, room := range rooms {
		w.Write([]string{
			room.RoomNumber,
			room.Building,
			strconv.Itoa(room.Floor),
			string(room.Type),
			strconv.Itoa(room.Capacity),
			strconv.Itoa(room.Occupied),
			strconv.Itoa(room.Capacity - room.Occupied),
			string(room.Status),
			fmt.Sprintf("%.2f", room.Price),
		})
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}

	data := buf.Bytes()
	if s.archiver != nil {
		key := fmt.Sprintf("reports/occupancy_%s.csv", timeutil.Now().Format("2006-01-02_150405"))
		if err := s.archiver.Upload(ctx, key, data, "text/csv"); err != nil {
			log.Printf("[Report] Archive upload failed: %v", err)
		}
	}
	return data, nil
}

// AllocationSlipPDF renders a printable slip for one allocation: the
// document staff hand to a student on check-in.
func (s *ReportService) AllocationSlipPDF(ctx context.Context, allocationID int) ([]byte, error) {
	allocation, err := s.Allocations.Get(ctx, allocationID)
	if err != nil {
		return nil, err
	}
	room, err := s.Rooms.Get(ctx, allocation.RoomID)
	if err != nil {
		return nil, err
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(10, 10, 10)
	pdf.AddPage()

	// Header
	pdf.SetFont("Arial", "B", 16)
	pdf.CellFormat(190, 10, "Hostel - Room Allocation Slip", "", 1, "C", false, 0, "")
	pdf.SetFont("Arial", "", 10)
	pdf.CellFormat(190, 6, fmt.Sprintf("Generated: %s", timeutil.Now().Format(timeutil.DisplayLayout)), "", 1, "C", false, 0, "")
	pdf.Ln(5)

	pdf.SetFillColor(240, 240, 240)
	pdf.SetFont("Arial", "B", 12)
	pdf.CellFormat(190, 8, "Allocation Details", "1", 1, "L", true, 0, "")

	pdf.SetFont("Arial", "", 11)
	pdf.CellFormat(95, 7, fmt.Sprintf("Allocation #: %d", allocation.ID), "LB", 0, "L", false, 0, "")
	pdf.CellFormat(95, 7, fmt.Sprintf("Student: %s", allocation.StudentID), "RB", 1, "L", false, 0, "")
	pdf.CellFormat(95, 7, fmt.Sprintf("Room: %s", allocation.RoomNumber), "LB", 0, "L", false, 0, "")
	pdf.CellFormat(95, 7, fmt.Sprintf("Bed: %d", allocation.BedNumber), "RB", 1, "L", false, 0, "")

	building := room.Building
	if building == "" {
		building = "-"
	}
	pdf.CellFormat(95, 7, fmt.Sprintf("Building: %s", building), "LB", 0, "L", false, 0, "")
	pdf.CellFormat(95, 7, fmt.Sprintf("Floor: %d", room.Floor), "RB", 1, "L", false, 0, "")

	endDate := "open-ended"
	if allocation.EndDate != nil {
		endDate = allocation.EndDate.Format(timeutil.DateLayout)
	}
	pdf.CellFormat(95, 7, fmt.Sprintf("From: %s", allocation.StartDate.Format(timeutil.DateLayout)), "LB", 0, "L", false, 0, "")
	pdf.CellFormat(95, 7, fmt.Sprintf("Until: %s", endDate), "RB", 1, "L", false, 0, "")
	pdf.Ln(5)

	pdf.SetFont("Arial", "B", 12)
	pdf.CellFormat(190, 8, "Room", "1", 1, "L", true, 0, "")
	pdf.SetFont("Arial", "", 11)
	pdf.CellFormat(63, 8, fmt.Sprintf("Type: %s", room.Type), "1", 0, "C", false, 0, "")
	pdf.CellFormat(63, 8, fmt.Sprintf("Rent: Rs. %.2f", room.Price), "1", 0, "C", false, 0, "")
	pdf.CellFormat(64, 8, fmt.Sprintf("Status: %s", strings.ToUpper(string(allocation.Status))), "1", 1, "C", false, 0, "")

	if len(room.Amenities) > 0 {
		pdf.Ln(3)
		pdf.SetFont("Arial", "", 10)
		pdf.CellFormat(190, 6, fmt.Sprintf("Amenities: %s", strings.Join(room.Amenities, ", ")), "", 1, "L", false, 0, "")
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
