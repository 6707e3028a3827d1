package handler

import (
	"errors"
	"net/http"

	"inventorymis/internal/service"
)

// statusFromErr maps service-layer sentinel errors to HTTP status codes.
func statusFromErr(err error) int {
	switch {
	case errors.Is(err, service.ErrNotFound), errors.Is(err, service.ErrInventoryNotFound):
		return http.StatusNotFound
	case errors.Is(err, service.ErrDuplicate):
		return http.StatusConflict
	default:
		return http.StatusBadRequest
	}
}
