package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"hostel-backend/internal/auth"
	"hostel-backend/internal/middleware"
	"hostel-backend/internal/models"
	"hostel-backend/internal/services"
	"hostel-backend/pkg/utils"

	"github.com/gorilla/mux"
)

type AllocationHandler struct {
	Service *services.AllocationService
}

func NewAllocationHandler(s *services.AllocationService) *AllocationHandler {
	return &AllocationHandler{Service: s}
}

// Allocate serves POST /api/allocations. Staff only (enforced by the
// router); on a racing allocation of the same bed the loser gets 409 and
// the dashboard prompts a refresh.
func (h *AllocationHandler) Allocate(w http.ResponseWriter, r *http.Request) {
	var req models.AllocateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.JSONError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	allocation, err := h.Service.Allocate(r.Context(), &req)
	if err != nil {
		utils.JSONError(w, statusForError(err), err.Error())
		return
	}
	utils.JSON(w, http.StatusCreated, allocation)
}

// End serves POST /api/allocations/{id}/end. The body is optional; an
// empty or absent body ends the allocation now.
func (h *AllocationHandler) End(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		utils.JSONError(w, http.StatusBadRequest, "invalid allocation id")
		return
	}

	var req models.EndAllocationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		utils.JSONError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	allocation, err := h.Service.End(r.Context(), id, &req)
	if err != nil {
		utils.JSONError(w, statusForError(err), err.Error())
		return
	}
	utils.JSON(w, http.StatusOK, allocation)
}

func (h *AllocationHandler) GetAllocation(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		utils.JSONError(w, http.StatusBadRequest, "invalid allocation id")
		return
	}

	allocation, err := h.Service.GetAllocation(r.Context(), id)
	if err != nil {
		utils.JSONError(w, statusForError(err), err.Error())
		return
	}
	utils.JSON(w, http.StatusOK, allocation)
}

func (h *AllocationHandler) ListAllocations(w http.ResponseWriter, r *http.Request) {
	activeOnly := r.URL.Query().Get("active") == "true"

	allocations, err := h.Service.ListAllocations(r.Context(), activeOnly)
	if err != nil {
		utils.JSONError(w, statusForError(err), err.Error())
		return
	}
	if allocations == nil {
		allocations = []*models.RoomAllocation{}
	}
	utils.JSON(w, http.StatusOK, allocations)
}

// ListStudentAllocations serves GET /api/allocations/student/{student_id}.
// Students may only read their own history; staff may read anyone's.
func (h *AllocationHandler) ListStudentAllocations(w http.ResponseWriter, r *http.Request) {
	studentID := mux.Vars(r)["student_id"]

	role, _ := middleware.GetRoleFromContext(r.Context())
	if role != auth.RoleStaff {
		callerID, _ := middleware.GetUserIDFromContext(r.Context())
		if callerID != studentID {
			utils.JSONError(w, http.StatusForbidden, "students may only view their own allocations")
			return
		}
	}

	allocations, err := h.Service.ListStudentAllocations(r.Context(), studentID)
	if err != nil {
		utils.JSONError(w, statusForError(err), err.Error())
		return
	}
	if allocations == nil {
		allocations = []*models.RoomAllocation{}
	}
	utils.JSON(w, http.StatusOK, allocations)
}
