package handlers

import (
	"fmt"
	"net/http"
	"strconv"

	"hostel-backend/internal/services"
	"hostel-backend/pkg/utils"

	"github.com/gorilla/mux"
)

type ReportHandler struct {
	Service *services.ReportService
}

func NewReportHandler(s *services.ReportService) *ReportHandler {
	return &ReportHandler{Service: s}
}

// OccupancyCSV serves GET /api/reports/occupancy.csv.
func (h *ReportHandler) OccupancyCSV(w http.ResponseWriter, r *http.Request) {
	data, err := h.Service.OccupancyCSV(r.Context())
	if err != nil {
		utils.JSONError(w, statusForError(err), err.Error())
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="occupancy.csv"`)
	w.Write(data)
}

// AllocationSlip serves GET /api/allocations/{id}/slip.pdf.
func (h *ReportHandler) AllocationSlip(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		utils.JSONError(w, http.StatusBadRequest, "invalid allocation id")
		return
	}

	data, err := h.Service.AllocationSlipPDF(r.Context(), id)
	if err != nil {
		utils.JSONError(w, statusForError(err), err.Error())
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="allocation_%d.pdf"`, id))
	w.Write(data)
}
