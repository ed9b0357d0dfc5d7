// Package queue defines the activity events exchanged over the message
// broker and the consumer that records them.
package queue

// Actions recorded for application lifecycle events.
const (
	ActionCreated = "created"
	ActionUpdated = "updated"
	ActionDeleted = "deleted"
)

// ApplicationEvent is published when an application is created, updated
// or deleted. It carries enough context for downstream consumers to log
// or notify without querying the primary database.
type ApplicationEvent struct {
	Action        string `json:"action"`
	ApplicationID uint64 `json:"application_id"`
	UserID        uint64 `json:"user_id"`
	CompanyName   string `json:"company_name"`
	JobTitle      string `json:"job_title"`
	Status        string `json:"status"`
	OccurredAt    string `json:"occurred_at"`
}
