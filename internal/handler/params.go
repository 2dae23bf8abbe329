package handler

import (
	"strconv"

	"github.com/deppfellow/booking/internal/storeerr"
)

// parseID converts an :id path parameter. Anything that is not a positive
// integer cannot name a record, so it is reported as not found.
func parseID(raw, entity, notFoundMessage string) (int, error) {
	id, err := strconv.Atoi(raw)
	if err != nil || id <= 0 {
		return 0, storeerr.NewNotFound(entity, notFoundMessage)
	}
	return id, nil
}
