package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/applytrack/applytrack-server/internal/export"
	"github.com/applytrack/applytrack-server/internal/repository"
)

// ExportHandler serves full-account downloads of the user's applications.
type ExportHandler struct {
	Apps *repository.ApplicationRepo
}

func NewExportHandler(apps *repository.ApplicationRepo) *ExportHandler {
	return &ExportHandler{Apps: apps}
}

// JSON downloads every application as a JSON document, most recently
// updated first.
func (h *ExportHandler) JSON(c echo.Context) error {
	u, ok := currentUser(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "Authentication required"})
	}
	ctx, cancel := reqCtx(c)
	defer cancel()

	apps, err := h.Apps.Search(ctx, u.ID, repository.ApplicationQuery{Sort: "updated_at", Order: "desc"})
	if err != nil {
		c.Logger().Errorf("export json: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to export applications"})
	}

	now := time.Now()
	c.Response().Header().Set(echo.HeaderContentDisposition,
		`attachment; filename="`+export.Filename("json", now)+`"`)
	return c.JSON(http.StatusOK, export.BuildJSON(apps, now))
}

// CSV downloads every application as a CSV document ordered by
// application date, newest first.
func (h *ExportHandler) CSV(c echo.Context) error {
	u, ok := currentUser(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "Authentication required"})
	}
	ctx, cancel := reqCtx(c)
	defer cancel()

	apps, err := h.Apps.Search(ctx, u.ID, repository.ApplicationQuery{Sort: "application_date", Order: "desc"})
	if err != nil {
		c.Logger().Errorf("export csv: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to export applications"})
	}

	now := time.Now()
	c.Response().Header().Set(echo.HeaderContentDisposition,
		`attachment; filename="`+export.Filename("csv", now)+`"`)
	return c.Blob(http.StatusOK, "text/csv; charset=utf-8", []byte(export.BuildCSV(apps)))
}
