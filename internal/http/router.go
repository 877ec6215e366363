package http

import (
	"net/http"

	"hostel-backend/internal/handlers"
	"hostel-backend/internal/middleware"
	"hostel-backend/internal/notify"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// NewRouter wires the HTTP surface. Reads are open to any authenticated
// caller (student or staff); every mutation of rooms or allocations is
// gated to staff on the server side.
func NewRouter(
	roomHandler *handlers.RoomHandler,
	allocationHandler *handlers.AllocationHandler,
	reportHandler *handlers.ReportHandler,
	healthHandler *handlers.HealthHandler,
	authMiddleware *middleware.AuthMiddleware,
	hub *notify.Hub,
) *mux.Router {
	r := mux.NewRouter()

	staff := func(h http.HandlerFunc) http.HandlerFunc {
		return authMiddleware.RequireStaff(h).ServeHTTP
	}

	// Rooms and beds
	roomsAPI := r.PathPrefix("/api/rooms").Subrouter()
	roomsAPI.Use(authMiddleware.Authenticate)
	roomsAPI.HandleFunc("", roomHandler.ListRooms).Methods("GET")
	roomsAPI.HandleFunc("", staff(roomHandler.CreateRoom)).Methods("POST")
	roomsAPI.HandleFunc("/{id}", roomHandler.GetRoom).Methods("GET")
	roomsAPI.HandleFunc("/{id}/beds", roomHandler.ListBeds).Methods("GET")
	roomsAPI.HandleFunc("/{id}/recompute", staff(roomHandler.RecomputeOccupancy)).Methods("POST")
	roomsAPI.HandleFunc("/{id}/maintenance", staff(roomHandler.SetMaintenance)).Methods("PUT")

	// Allocations
	allocationsAPI := r.PathPrefix("/api/allocations").Subrouter()
	allocationsAPI.Use(authMiddleware.Authenticate)
	allocationsAPI.HandleFunc("", staff(allocationHandler.ListAllocations)).Methods("GET")
	allocationsAPI.HandleFunc("", staff(allocationHandler.Allocate)).Methods("POST")
	allocationsAPI.HandleFunc("/student/{student_id}", allocationHandler.ListStudentAllocations).Methods("GET")
	allocationsAPI.HandleFunc("/{id}", allocationHandler.GetAllocation).Methods("GET")
	allocationsAPI.HandleFunc("/{id}/end", staff(allocationHandler.End)).Methods("POST")
	allocationsAPI.HandleFunc("/{id}/slip.pdf", staff(reportHandler.AllocationSlip)).Methods("GET")

	// Reports
	reportsAPI := r.PathPrefix("/api/reports").Subrouter()
	reportsAPI.Use(authMiddleware.Authenticate)
	reportsAPI.HandleFunc("/occupancy.csv", staff(reportHandler.OccupancyCSV)).Methods("GET")

	// Allocation event feed for staff dashboards
	r.HandleFunc("/ws/events", hub.HandleWebSocket)

	// Health endpoints (no auth required - for Kubernetes probes)
	r.HandleFunc("/health", healthHandler.BasicHealth).Methods("GET")
	r.HandleFunc("/health/ready", healthHandler.ReadinessHealth).Methods("GET")
	r.HandleFunc("/health/detailed", healthHandler.DetailedHealth).Methods("GET")

	// Metrics endpoint (Prometheus format)
	r.Handle("/metrics", promhttp.Handler())

	return r
}
