package handlers

import (
	"errors"
	"net/http"

	"hostel-backend/internal/models"
)

// statusForError maps the workflow error taxonomy onto HTTP statuses.
// NotFound → 404, conflicts (racing occupation, double allocation,
// repeated end) → 409, invalid input → 400, anything else → 500.
func statusForError(err error) int {
	switch {
	case models.IsNotFound(err):
		return http.StatusNotFound
	case models.IsConflict(err):
		return http.StatusConflict
	case errors.Is(err, models.ErrInvalidArgument):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
