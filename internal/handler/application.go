package handler

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/applytrack/applytrack-server/internal/model"
	"github.com/applytrack/applytrack-server/internal/queue"
	"github.com/applytrack/applytrack-server/internal/repository"
	queue_publisher "github.com/applytrack/applytrack-server/internal/service"
)

// ApplicationHandler serves the job application CRUD and listing routes.
type ApplicationHandler struct {
	Apps         *repository.ApplicationRepo
	QueueEnabled bool
}

func NewApplicationHandler(apps *repository.ApplicationRepo, queueEnabled bool) *ApplicationHandler {
	return &ApplicationHandler{Apps: apps, QueueEnabled: queueEnabled}
}

// applicationReq is the payload for create and full-record update.
type applicationReq struct {
	CompanyName       string   `json:"company_name"`
	JobTitle          string   `json:"job_title"`
	ExperienceLevel   string   `json:"experience_level"`
	JobDescription    *string  `json:"job_description"`
	JobRequirements   *string  `json:"job_requirements"`
	Location          *string  `json:"location"`
	JobURL            *string  `json:"job_url"`
	SalaryMin         *int64   `json:"salary_min"`
	SalaryMax         *int64   `json:"salary_max"`
	ApplicationDate   *string  `json:"application_date"`
	ApplicationSource *string  `json:"application_source"`
	Status            string   `json:"status"`
	Notes             *string  `json:"notes"`
	FollowUpDate      *string  `json:"follow_up_date"`
	InterviewRound    *int     `json:"interview_round"`
	InterviewNotes    *string  `json:"interview_notes"`
	ResumeIDs         []uint64 `json:"resume_ids"`
}

// validateApplication checks the create/update payload and returns
// human-readable problems, empty when the payload is acceptable.
func validateApplication(req applicationReq) []string {
	var errs []string
	if strings.TrimSpace(req.CompanyName) == "" {
		errs = append(errs, "Company name is required")
	}
	if strings.TrimSpace(req.JobTitle) == "" {
		errs = append(errs, "Job title is required")
	}
	if req.Status != "" && !model.IsValidStatus(req.Status) {
		errs = append(errs, "Invalid status")
	}
	if !validDate(req.ApplicationDate) {
		errs = append(errs, "Invalid application_date")
	}
	if !validDate(req.FollowUpDate) {
		errs = append(errs, "Invalid follow_up_date")
	}
	if req.InterviewRound != nil && *req.InterviewRound < 0 {
		errs = append(errs, "Interview round cannot be negative")
	}
	return errs
}

func validDate(s *string) bool {
	if s == nil || *s == "" {
		return true
	}
	_, err := time.Parse(model.DateLayout, *s)
	return err == nil
}

// toParams fills defaults the same way the API always has: missing status
// becomes Applied, missing experience level the entry-level bucket.
func toParams(req applicationReq) repository.ApplicationParams {
	status := req.Status
	if status == "" {
		status = model.StatusApplied
	}
	level := strings.TrimSpace(req.ExperienceLevel)
	if level == "" {
		level = "Entry Level / New Grad"
	}
	round := 0
	if req.InterviewRound != nil {
		round = *req.InterviewRound
	}
	return repository.ApplicationParams{
		CompanyName:       strings.TrimSpace(req.CompanyName),
		JobTitle:          strings.TrimSpace(req.JobTitle),
		ExperienceLevel:   level,
		JobDescription:    emptyToNil(req.JobDescription),
		JobRequirements:   emptyToNil(req.JobRequirements),
		Location:          emptyToNil(req.Location),
		JobURL:            emptyToNil(req.JobURL),
		SalaryMin:         req.SalaryMin,
		SalaryMax:         req.SalaryMax,
		ApplicationDate:   emptyToNil(req.ApplicationDate),
		ApplicationSource: emptyToNil(req.ApplicationSource),
		Status:            status,
		Notes:             emptyToNil(req.Notes),
		FollowUpDate:      emptyToNil(req.FollowUpDate),
		InterviewRound:    round,
		InterviewNotes:    emptyToNil(req.InterviewNotes),
		ResumeIDs:         req.ResumeIDs,
	}
}

func emptyToNil(p *string) *string {
	if p == nil || *p == "" {
		return nil
	}
	return p
}

// queryFromRequest reads the listing filters off the query string.
func queryFromRequest(c echo.Context) repository.ApplicationQuery {
	q := repository.ApplicationQuery{
		Search:         c.QueryParam("search"),
		Status:         c.QueryParam("status"),
		DateFrom:       c.QueryParam("date_from"),
		DateTo:         c.QueryParam("date_to"),
		Sort:           c.QueryParam("sort"),
		Order:          c.QueryParam("order"),
		NeedsAttention: c.QueryParam("needs_attention") == "true",
	}
	if raw := c.QueryParam("statuses"); raw != "" {
		for _, s := range strings.Split(raw, ",") {
			if s = strings.TrimSpace(s); s != "" {
				q.Statuses = append(q.Statuses, s)
			}
		}
	}
	if raw := c.QueryParam("resume_id"); raw != "" {
		if id, err := strconv.ParseUint(raw, 10, 64); err == nil {
			q.ResumeID = id
		}
	}
	return q
}

// List returns the user's applications with filters and sorting applied.
func (h *ApplicationHandler) List(c echo.Context) error {
	u, ok := currentUser(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "Authentication required"})
	}
	ctx, cancel := reqCtx(c)
	defer cancel()

	apps, err := h.Apps.Search(ctx, u.ID, queryFromRequest(c))
	if err != nil {
		c.Logger().Errorf("list applications: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to fetch applications"})
	}
	return c.JSON(http.StatusOK, echo.Map{"applications": apps})
}

// Get returns a single owned application.
func (h *ApplicationHandler) Get(c echo.Context) error {
	u, ok := currentUser(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "Authentication required"})
	}
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "Application not found"})
	}
	ctx, cancel := reqCtx(c)
	defer cancel()

	app, err := h.Apps.GetByID(ctx, u.ID, id)
	if err == repository.ErrNotFound {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "Application not found"})
	}
	if err != nil {
		c.Logger().Errorf("get application: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to fetch application"})
	}
	return c.JSON(http.StatusOK, echo.Map{"application": app})
}

// Create validates and stores a new application.
func (h *ApplicationHandler) Create(c echo.Context) error {
	u, ok := currentUser(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "Authentication required"})
	}
	var req applicationReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if errs := validateApplication(req); len(errs) > 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": strings.Join(errs, ", ")})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	app, err := h.Apps.Create(ctx, u.ID, toParams(req))
	if err != nil {
		c.Logger().Errorf("create application: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to create application"})
	}
	h.publishEvent(queue.ActionCreated, app)
	return c.JSON(http.StatusCreated, echo.Map{"application": app})
}

// Update replaces every field of an owned application.
func (h *ApplicationHandler) Update(c echo.Context) error {
	u, ok := currentUser(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "Authentication required"})
	}
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "Application not found"})
	}
	var req applicationReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if errs := validateApplication(req); len(errs) > 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": strings.Join(errs, ", ")})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	app, err := h.Apps.Update(ctx, u.ID, id, toParams(req))
	if err == repository.ErrNotFound {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "Application not found"})
	}
	if err != nil {
		c.Logger().Errorf("update application: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to update application"})
	}
	h.publishEvent(queue.ActionUpdated, app)
	return c.JSON(http.StatusOK, echo.Map{"application": app})
}

// Delete removes an owned application and its resume links.
func (h *ApplicationHandler) Delete(c echo.Context) error {
	u, ok := currentUser(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "Authentication required"})
	}
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "Application not found"})
	}
	ctx, cancel := reqCtx(c)
	defer cancel()

	// Load first so the deletion event can carry the company and title.
	app, err := h.Apps.GetByID(ctx, u.ID, id)
	if err == repository.ErrNotFound {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "Application not found"})
	}
	if err != nil {
		c.Logger().Errorf("delete application: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to delete application"})
	}
	if err := h.Apps.Delete(ctx, u.ID, id); err != nil {
		if err == repository.ErrNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "Application not found"})
		}
		c.Logger().Errorf("delete application: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to delete application"})
	}
	h.publishEvent(queue.ActionDeleted, app)
	return c.JSON(http.StatusOK, echo.Map{"message": "Application deleted successfully"})
}

// StatsSummary returns the dashboard counters.
func (h *ApplicationHandler) StatsSummary(c echo.Context) error {
	u, ok := currentUser(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "Authentication required"})
	}
	ctx, cancel := reqCtx(c)
	defer cancel()

	s, err := h.Apps.GetStatusSummary(ctx, u.ID)
	if err != nil {
		c.Logger().Errorf("stats summary: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to fetch stats"})
	}
	return c.JSON(http.StatusOK, echo.Map{"stats": s})
}

// publishEvent ships an activity event to the broker, fire-and-forget.
// Publishing runs off the request goroutine and its errors are only
// logged by the publisher.
func (h *ApplicationHandler) publishEvent(action string, app model.Application) {
	if !h.QueueEnabled {
		return
	}
	ev := queue.ApplicationEvent{
		Action:        action,
		ApplicationID: app.ID,
		UserID:        app.UserID,
		CompanyName:   app.CompanyName,
		JobTitle:      app.JobTitle,
		Status:        app.Status,
		OccurredAt:    time.Now().UTC().Format(time.RFC3339),
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = queue_publisher.PublishApplicationEvent(ctx, ev)
	}()
}
