package model

import "time"

// Resume mirrors the resumes table.  FilePath is the on-disk location of
// the uploaded document and is never exposed over the API.
type Resume struct {
	ID           uint64    `json:"id"`
	UserID       uint64    `json:"user_id"`
	FileName     string    `json:"file_name"`     // stored name on disk
	OriginalName string    `json:"original_name"` // name the user uploaded
	FilePath     string    `json:"-"`
	FileSize     int64     `json:"file_size"`
	MimeType     string    `json:"mime_type"`
	UploadedAt   time.Time `json:"uploaded_at"`
}

// ResumeSummary is the slim shape attached to application listings.
type ResumeSummary struct {
	ID           uint64 `json:"id"`
	FileName     string `json:"file_name"`
	OriginalName string `json:"original_name"`
}
