package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"hostel-backend/internal/cache"
	"hostel-backend/internal/models"
	"hostel-backend/internal/services"
	"hostel-backend/pkg/utils"

	"github.com/gorilla/mux"
)

type RoomHandler struct {
	Service *services.AllocationService
}

func NewRoomHandler(s *services.AllocationService) *RoomHandler {
	return &RoomHandler{Service: s}
}

// ListRooms serves GET /api/rooms, with ?available=true filtering to rooms
// that can take another allocation. Listings are cached in Redis and
// invalidated by every allocation write.
func (h *RoomHandler) ListRooms(w http.ResponseWriter, r *http.Request) {
	availableOnly := r.URL.Query().Get("available") == "true"

	cacheKey := cache.AllRoomsKey
	if availableOnly {
		cacheKey = cache.AvailableRoomsKey
	}
	if data, ok := cache.GetRooms(r.Context(), cacheKey); ok {
		w.Header().Set("Content-Type", "application/json")
		w.Write(data)
		return
	}

	rooms, err := h.Service.ListRooms(r.Context(), availableOnly)
	if err != nil {
		utils.JSONError(w, statusForError(err), err.Error())
		return
	}
	if rooms == nil {
		rooms = []*models.Room{}
	}

	data, err := json.Marshal(rooms)
	if err != nil {
		utils.JSONError(w, http.StatusInternalServerError, err.Error())
		return
	}
	cache.SetRooms(r.Context(), cacheKey, data)

	w.Header().Set("Content-Type", "application/json")
	w.Write(data)
}

func (h *RoomHandler) GetRoom(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		utils.JSONError(w, http.StatusBadRequest, "invalid room id")
		return
	}

	room, err := h.Service.GetRoom(r.Context(), id)
	if err != nil {
		utils.JSONError(w, statusForError(err), err.Error())
		return
	}
	utils.JSON(w, http.StatusOK, room)
}

func (h *RoomHandler) CreateRoom(w http.ResponseWriter, r *http.Request) {
	var req models.CreateRoomRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.JSONError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	room, err := h.Service.CreateRoom(r.Context(), &req)
	if err != nil {
		utils.JSONError(w, statusForError(err), err.Error())
		return
	}
	utils.JSON(w, http.StatusCreated, room)
}

// ListBeds serves GET /api/rooms/{id}/beds. Callers pick an unoccupied bed
// from the result when allocating.
func (h *RoomHandler) ListBeds(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		utils.JSONError(w, http.StatusBadRequest, "invalid room id")
		return
	}

	beds, err := h.Service.ListBeds(r.Context(), id)
	if err != nil {
		utils.JSONError(w, statusForError(err), err.Error())
		return
	}
	if beds == nil {
		beds = []*models.Bed{}
	}
	utils.JSON(w, http.StatusOK, beds)
}

// RecomputeOccupancy serves POST /api/rooms/{id}/recompute, the repair
// path that rebuilds the occupancy counter from bed state.
func (h *RoomHandler) RecomputeOccupancy(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		utils.JSONError(w, http.StatusBadRequest, "invalid room id")
		return
	}

	room, err := h.Service.RecomputeOccupancy(r.Context(), id)
	if err != nil {
		utils.JSONError(w, statusForError(err), err.Error())
		return
	}
	utils.JSON(w, http.StatusOK, room)
}

// SetMaintenance serves PUT /api/rooms/{id}/maintenance.
func (h *RoomHandler) SetMaintenance(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		utils.JSONError(w, http.StatusBadRequest, "invalid room id")
		return
	}

	var req struct {
		UnderMaintenance bool `json:"under_maintenance"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.JSONError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	room, err := h.Service.SetMaintenance(r.Context(), id, req.UnderMaintenance)
	if err != nil {
		utils.JSONError(w, statusForError(err), err.Error())
		return
	}
	utils.JSON(w, http.StatusOK, room)
}
