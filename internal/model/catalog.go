package model

import "time"

// Catalog is one imported TS file.
type Catalog struct {
	ID             int64
	Name           string
	Language       string
	SourceLanguage string
	Version        string
	Doctype        bool
	Hash           string // sha256 of the imported bytes
	Path           *string
	MessageCount   int
	// StatusCounts is only filled for single-catalog reads.
	StatusCounts   []StatusCount
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// Context keeps the order and comment of a <context> block.
type Context struct {
	CatalogID int64
	Position  int
	Name      string
	Comment   string
}
