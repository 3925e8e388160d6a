package handler

import (
	"strconv"

	domainerrors "campuseats/internal/domain/errors"

	"github.com/labstack/echo/v4"
)

// pathID parses a positive integer path parameter.
func pathID(c echo.Context, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, domainerrors.ErrInvalidID.WithDetails(name)
	}

	return id, nil
}
