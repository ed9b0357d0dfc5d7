package export

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/applytrack/applytrack-server/internal/model"
)

func strp(s string) *string { return &s }
func intp(n int64) *int64   { return &n }

func sampleApp() model.Application {
	return model.Application{
		ID:              1,
		CompanyName:     "Acme",
		JobTitle:        "Backend Engineer",
		Location:        strp("Remote"),
		SalaryMin:       intp(90000),
		SalaryMax:       intp(120000),
		ApplicationDate: strp("2026-08-01"),
		Status:          model.StatusApplied,
		CreatedAt:       time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC),
	}
}

func TestBuildCSVHeaderAndRow(t *testing.T) {
	out := BuildCSV([]model.Application{sampleApp()})
	lines := strings.Split(out, "\n")
	require.Len(t, lines, 2)

	assert.Equal(t,
		"Company,Job Title,Location,URL,Salary Min,Salary Max,Applied Date,Source,Status,Notes,Follow-up Date,Interview Round,Interview Notes,Created At",
		lines[0])
	assert.Equal(t,
		"Acme,Backend Engineer,Remote,,90000,120000,2026-08-01,,Applied,,,0,,2026-08-01T12:00:00Z",
		lines[1])
}

func TestBuildCSVQuotesSpecialCharacters(t *testing.T) {
	app := sampleApp()
	app.Notes = strp("Great, talked to recruiter")
	app.CompanyName = `Say "Hello" Inc`

	out := BuildCSV([]model.Application{app})
	row := strings.Split(out, "\n")[1]

	assert.Contains(t, row, `"Great, talked to recruiter"`)
	assert.Contains(t, row, `"Say ""Hello"" Inc"`)
}

func TestBuildCSVQuotesNewlines(t *testing.T) {
	app := sampleApp()
	app.InterviewNotes = strp("line one\nline two")

	out := BuildCSV([]model.Application{app})
	assert.Contains(t, out, "\"line one\nline two\"")
}

func TestBuildCSVEmptyListIsHeaderOnly(t *testing.T) {
	out := BuildCSV(nil)
	assert.False(t, strings.Contains(out, "\n"))
	assert.True(t, strings.HasPrefix(out, "Company,"))
}

func TestBuildJSONEnvelope(t *testing.T) {
	now := time.Date(2026, 9, 1, 10, 30, 0, 0, time.UTC)
	env := BuildJSON([]model.Application{sampleApp(), sampleApp()}, now)

	assert.Equal(t, "2026-09-01T10:30:00Z", env.ExportDate)
	assert.Equal(t, 2, env.TotalApplications)
	assert.Len(t, env.Applications, 2)
}

func TestFilename(t *testing.T) {
	now := time.Date(2026, 9, 1, 23, 59, 0, 0, time.UTC)
	assert.Equal(t, "applytrack-export-2026-09-01.csv", Filename("csv", now))
	assert.Equal(t, "applytrack-export-2026-09-01.json", Filename("json", now))
}
