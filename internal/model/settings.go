package model

import "time"

// Setting is one row of the key-value settings table. AI provider options
// are stored under the "ai." prefix.
type Setting struct {
	Key       string
	Value     string
	UpdatedAt time.Time
}
