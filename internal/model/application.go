package model

import "time"

// DateLayout is the wire format for application_date and follow_up_date.
// Both are DATE columns; they travel as plain "YYYY-MM-DD" strings.
const DateLayout = "2006-01-02"

// Allowed application statuses. Offer and Rejected are terminal: they are
// excluded from follow-up urgency tracking and from the overdue flag.
const (
	StatusApplied    = "Applied"
	StatusAssessment = "Assessment"
	StatusInterview  = "Interview"
	StatusOffer      = "Offer"
	StatusRejected   = "Rejected"
	StatusGhosted    = "Ghosted"
)

// ValidStatuses lists every status the API accepts, in pipeline order.
var ValidStatuses = []string{
	StatusApplied, StatusAssessment, StatusInterview,
	StatusOffer, StatusRejected, StatusGhosted,
}

// IsValidStatus reports whether s is one of the known statuses.
func IsValidStatus(s string) bool {
	for _, v := range ValidStatuses {
		if s == v {
			return true
		}
	}
	return false
}

// IsTerminalStatus reports whether s ends follow-up tracking.
func IsTerminalStatus(s string) bool {
	return s == StatusOffer || s == StatusRejected
}

// Application mirrors the job_applications table plus the two derived
// pieces the listing endpoint attaches: linked resume summaries and the
// overdue flag.
type Application struct {
	ID                uint64          `json:"id"`
	UserID            uint64          `json:"user_id"`
	CompanyName       string          `json:"company_name"`
	JobTitle          string          `json:"job_title"`
	ExperienceLevel   string          `json:"experience_level"`
	JobDescription    *string         `json:"job_description"`
	JobRequirements   *string         `json:"job_requirements"`
	Location          *string         `json:"location"`
	JobURL            *string         `json:"job_url"`
	SalaryMin         *int64          `json:"salary_min"`
	SalaryMax         *int64          `json:"salary_max"`
	ApplicationDate   *string         `json:"application_date"` // YYYY-MM-DD
	ApplicationSource *string         `json:"application_source"`
	Status            string          `json:"status"`
	Notes             *string         `json:"notes"`
	FollowUpDate      *string         `json:"follow_up_date"` // YYYY-MM-DD
	InterviewRound    int             `json:"interview_round"`
	InterviewNotes    *string         `json:"interview_notes"`
	CreatedAt         time.Time       `json:"created_at"`
	UpdatedAt         time.Time       `json:"updated_at"`
	Resumes           []ResumeSummary `json:"resumes"`
	IsOverdue         bool            `json:"is_overdue"`
}

// Overdue reports whether an application needs attention on the given day:
// its follow-up date has passed and it is not in a terminal status. today
// must be formatted with DateLayout; YYYY-MM-DD strings order the same way
// lexicographically as the dates they encode.
func Overdue(followUpDate *string, status string, today string) bool {
	if followUpDate == nil || *followUpDate == "" {
		return false
	}
	if IsTerminalStatus(status) {
		return false
	}
	return *followUpDate < today
}
