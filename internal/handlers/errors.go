package handlers

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/ripplr-app/backend/internal/models"
)

// httpError maps domain sentinels onto HTTP statuses. Anything
// unrecognized is a 500 (the store was unreachable or a driver
// failed); the engine never retries, the caller may.
func httpError(err error) *echo.HTTPError {
	switch {
	case errors.Is(err, models.ErrNotFound):
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	case errors.Is(err, models.ErrSelfFollow):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	case errors.Is(err, models.ErrEmptyContent):
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, models.ErrEditWindowExpired):
		return echo.NewHTTPError(http.StatusForbidden, err.Error())
	default:
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
}
