package model

import "time"

type Location struct {
	Filename string `json:"filename"`
	Line     string `json:"line,omitempty"`
}

type Message struct {
	ID              int64
	CatalogID       int64
	Position        int
	ContextPosition int
	Context         string
	MsgID           string
	Numerus         bool
	Source          string
	OldSource       string
	Disambiguation  string
	OldComment      string
	ExtraComment    string
	// TranslatorComment has no runtime effect.
	TranslatorComment string
	Translation       string
	NumerusForms      []string
	Status            string // finished, unfinished, obsolete, vanished
	Locations         []Location
	UpdatedAt         time.Time
}

// StatusCount is the number of messages in one status.
type StatusCount struct {
	Status string
	Count  int
}
