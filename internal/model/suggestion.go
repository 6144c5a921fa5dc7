package model

import "time"

// Suggestion is a machine translation proposed for an unfinished message.
// It is never written back as a finished translation.
type Suggestion struct {
	ID        int64
	MessageID int64
	Language  string
	Text      string
	Provider  string
	Model     string
	CreatedAt time.Time
}
