package handler // handler defines the HTTP handlers for the API

import (
	"context"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/applytrack/applytrack-server/internal/middleware"
	"github.com/applytrack/applytrack-server/internal/model"
)

// dbTimeout bounds every database call made from a handler.
const dbTimeout = 5 * time.Second

// reqCtx derives a timeout-bounded context from the request.
func reqCtx(c echo.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(c.Request().Context(), dbTimeout)
}

// currentUser returns the user attached by the auth middleware. Routes
// registered without the middleware have no user; callers treat that as
// a server error since it indicates a wiring mistake.
func currentUser(c echo.Context) (model.User, bool) {
	return middleware.CurrentUser(c)
}

// pathID parses the :id route parameter.
func pathID(c echo.Context) (uint64, error) {
	return strconv.ParseUint(c.Param("id"), 10, 64)
}
