package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/phrazzld/tasks-api/internal/domain"
)

// getPathID extracts an integer task ID from the URL path parameters.
// Any signed 64-bit integer is accepted; anything else is a validation error.
func getPathID(r *http.Request, paramName string) (int64, error) {
	pathParam := chi.URLParam(r, paramName)
	if pathParam == "" {
		return 0, domain.NewValidationError(paramName, "is required", domain.ErrInvalidID)
	}

	id, err := strconv.ParseInt(pathParam, 10, 64)
	if err != nil {
		if errors.Is(err, strconv.ErrRange) {
			return 0, domain.NewValidationError(paramName, "is out of range", domain.ErrInvalidID)
		}
		return 0, domain.NewValidationError(paramName, "has invalid format", domain.ErrInvalidFormat)
	}

	return id, nil
}
