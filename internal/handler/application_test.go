package handler

import (
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"

	"github.com/applytrack/applytrack-server/internal/model"
)

func strp(s string) *string { return &s }
func intp(n int) *int       { return &n }

func TestValidateApplication(t *testing.T) {
	valid := applicationReq{CompanyName: "Acme", JobTitle: "Engineer"}

	cases := []struct {
		name string
		req  applicationReq
		want []string
	}{
		{"minimal valid", valid, nil},
		{"missing company", applicationReq{JobTitle: "Engineer"}, []string{"Company name is required"}},
		{"whitespace company", applicationReq{CompanyName: "   ", JobTitle: "Engineer"}, []string{"Company name is required"}},
		{"missing both", applicationReq{}, []string{"Company name is required", "Job title is required"}},
		{"bad status", applicationReq{CompanyName: "Acme", JobTitle: "E", Status: "Hired"}, []string{"Invalid status"}},
		{"empty status ok", applicationReq{CompanyName: "Acme", JobTitle: "E", Status: ""}, nil},
		{"bad date", applicationReq{CompanyName: "Acme", JobTitle: "E", ApplicationDate: strp("01/09/2026")}, []string{"Invalid application_date"}},
		{"bad follow up", applicationReq{CompanyName: "Acme", JobTitle: "E", FollowUpDate: strp("soon")}, []string{"Invalid follow_up_date"}},
		{"negative round", applicationReq{CompanyName: "Acme", JobTitle: "E", InterviewRound: intp(-1)}, []string{"Interview round cannot be negative"}},
		{"good dates", applicationReq{CompanyName: "Acme", JobTitle: "E", ApplicationDate: strp("2026-08-01"), FollowUpDate: strp("2026-09-15")}, nil},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, validateApplication(tc.req))
		})
	}
}

func TestToParamsDefaults(t *testing.T) {
	p := toParams(applicationReq{CompanyName: " Acme ", JobTitle: "Engineer"})

	assert.Equal(t, "Acme", p.CompanyName)
	assert.Equal(t, model.StatusApplied, p.Status)
	assert.Equal(t, "Entry Level / New Grad", p.ExperienceLevel)
	assert.Equal(t, 0, p.InterviewRound)
	assert.Nil(t, p.Notes)
	assert.Nil(t, p.ResumeIDs)
}

func TestToParamsEmptyStringsBecomeNil(t *testing.T) {
	p := toParams(applicationReq{
		CompanyName: "Acme", JobTitle: "E",
		Location: strp(""), Notes: strp("kept"),
	})
	assert.Nil(t, p.Location)
	assert.Equal(t, "kept", *p.Notes)
}

func TestQueryFromRequest(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest("GET",
		"/api/applications?search=acme&statuses=Applied,%20Interview,&needs_attention=true&resume_id=12&sort=urgency&order=asc", nil)
	c := e.NewContext(req, httptest.NewRecorder())

	q := queryFromRequest(c)

	assert.Equal(t, "acme", q.Search)
	assert.Equal(t, []string{"Applied", "Interview"}, q.Statuses)
	assert.True(t, q.NeedsAttention)
	assert.Equal(t, uint64(12), q.ResumeID)
	assert.Equal(t, "urgency", q.Sort)
	assert.Equal(t, "asc", q.Order)
}

func TestQueryFromRequestIgnoresBadResumeID(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest("GET", "/api/applications?resume_id=abc&needs_attention=yes", nil)
	c := e.NewContext(req, httptest.NewRecorder())

	q := queryFromRequest(c)
	assert.Zero(t, q.ResumeID)
	// Only the literal "true" enables the attention filter.
	assert.False(t, q.NeedsAttention)
}

func TestSanitizeFilename(t *testing.T) {
	assert.Equal(t, "cv.pdf", sanitizeFilename("cv.pdf"))
	assert.Equal(t, "cv.pdf", sanitizeFilename("../../etc/cv.pdf"))
	assert.Equal(t, "cv.pdf", sanitizeFilename(`C:\Users\me\cv.pdf`))
	assert.Equal(t, "resume", sanitizeFilename(""))
}
