// Package export flattens a user's applications into downloadable JSON
// and CSV documents. Formatting only; the data comes from the regular
// application listing.
package export

import (
	"strconv"
	"strings"
	"time"

	"github.com/applytrack/applytrack-server/internal/model"
)

// JSONEnvelope is the top-level shape of the JSON export.
type JSONEnvelope struct {
	ExportDate        string              `json:"export_date"`
	TotalApplications int                 `json:"total_applications"`
	Applications      []model.Application `json:"applications"`
}

// BuildJSON wraps the applications in the export envelope.
func BuildJSON(apps []model.Application, now time.Time) JSONEnvelope {
	return JSONEnvelope{
		ExportDate:        now.UTC().Format(time.RFC3339),
		TotalApplications: len(apps),
		Applications:      apps,
	}
}

// csvHeaders is the fixed column order of the CSV export.
var csvHeaders = []string{
	"Company", "Job Title", "Location", "URL", "Salary Min", "Salary Max",
	"Applied Date", "Source", "Status", "Notes", "Follow-up Date",
	"Interview Round", "Interview Notes", "Created At",
}

// BuildCSV renders the applications as a CSV document with RFC-4180 style
// quoting: a field containing a comma, quote or newline is wrapped in
// quotes with embedded quotes doubled, and everything else is written
// bare.
func BuildCSV(apps []model.Application) string {
	var b strings.Builder
	b.WriteString(strings.Join(csvHeaders, ","))
	for _, a := range apps {
		fields := []string{
			escapeField(a.CompanyName),
			escapeField(a.JobTitle),
			escapeField(deref(a.Location)),
			escapeField(deref(a.JobURL)),
			escapeField(derefInt(a.SalaryMin)),
			escapeField(derefInt(a.SalaryMax)),
			escapeField(deref(a.ApplicationDate)),
			escapeField(deref(a.ApplicationSource)),
			escapeField(a.Status),
			escapeField(deref(a.Notes)),
			escapeField(deref(a.FollowUpDate)),
			escapeField(strconv.Itoa(a.InterviewRound)),
			escapeField(deref(a.InterviewNotes)),
			escapeField(a.CreatedAt.UTC().Format(time.RFC3339)),
		}
		b.WriteString("\n")
		b.WriteString(strings.Join(fields, ","))
	}
	return b.String()
}

// Filename builds the attachment name for a given day, e.g.
// applytrack-export-2026-09-01.csv.
func Filename(ext string, now time.Time) string {
	return "applytrack-export-" + now.Format("2006-01-02") + "." + ext
}

func escapeField(s string) string {
	if strings.ContainsAny(s, ",\"\n") {
		return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
	}
	return s
}

func deref(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}

func derefInt(p *int64) string {
	if p == nil {
		return ""
	}
	return strconv.FormatInt(*p, 10)
}
