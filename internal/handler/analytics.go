package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/applytrack/applytrack-server/internal/repository"
)

// AnalyticsHandler serves the read-only dashboard aggregations.
type AnalyticsHandler struct {
	Analytics *repository.AnalyticsRepo
}

func NewAnalyticsHandler(analytics *repository.AnalyticsRepo) *AnalyticsHandler {
	return &AnalyticsHandler{Analytics: analytics}
}

// StatusCounts returns the per-status breakdown with the overall total.
func (h *AnalyticsHandler) StatusCounts(c echo.Context) error {
	u, ok := currentUser(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "Authentication required"})
	}
	ctx, cancel := reqCtx(c)
	defer cancel()

	counts, total, err := h.Analytics.GetStatusCounts(ctx, u.ID)
	if err != nil {
		c.Logger().Errorf("analytics status counts: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to fetch analytics"})
	}
	return c.JSON(http.StatusOK, echo.Map{"statusCounts": counts, "total": total})
}

// OverTime returns the trailing weekly or monthly application counts.
// ?period=week|month, anything else falls back to week.
func (h *AnalyticsHandler) OverTime(c echo.Context) error {
	u, ok := currentUser(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "Authentication required"})
	}
	ctx, cancel := reqCtx(c)
	defer cancel()

	buckets, period, err := h.Analytics.GetApplicationsOverTime(ctx, u.ID, c.QueryParam("period"))
	if err != nil {
		c.Logger().Errorf("analytics over time: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to fetch analytics"})
	}
	return c.JSON(http.StatusOK, echo.Map{"data": buckets, "period": period})
}

// ResumeUsage returns every resume with its application link count.
func (h *AnalyticsHandler) ResumeUsage(c echo.Context) error {
	u, ok := currentUser(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "Authentication required"})
	}
	ctx, cancel := reqCtx(c)
	defer cancel()

	usage, err := h.Analytics.GetResumeUsage(ctx, u.ID)
	if err != nil {
		c.Logger().Errorf("analytics resume usage: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to fetch analytics"})
	}
	return c.JSON(http.StatusOK, echo.Map{"resumes": usage})
}

// TopCompanies returns the ten companies with the most applications.
func (h *AnalyticsHandler) TopCompanies(c echo.Context) error {
	u, ok := currentUser(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "Authentication required"})
	}
	ctx, cancel := reqCtx(c)
	defer cancel()

	companies, err := h.Analytics.GetTopCompanies(ctx, u.ID)
	if err != nil {
		c.Logger().Errorf("analytics top companies: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to fetch analytics"})
	}
	return c.JSON(http.StatusOK, echo.Map{"companies": companies})
}

// FollowUps returns the urgency breakdown of pending follow-ups.
func (h *AnalyticsHandler) FollowUps(c echo.Context) error {
	u, ok := currentUser(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "Authentication required"})
	}
	ctx, cancel := reqCtx(c)
	defer cancel()

	summary, err := h.Analytics.GetFollowUpSummary(ctx, u.ID)
	if err != nil {
		c.Logger().Errorf("analytics follow ups: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to fetch analytics"})
	}
	return c.JSON(http.StatusOK, echo.Map{"followUps": summary})
}
