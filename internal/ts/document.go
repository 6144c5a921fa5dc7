// Package ts reads and writes Qt Linguist translation source (TS) files.
//
// The in-memory model keeps every context, message and location in file
// order so that a parsed document can be written back unchanged.
package ts

import "errors"

// DefaultVersion is the TS format version written by current lupdate releases.
const DefaultVersion = "2.1"

var (
	ErrNotTS   = errors.New("not a TS document")
	ErrInvalid = errors.New("invalid TS document")
)

// Status is the state of a translation as recorded by the type attribute.
type Status string

const (
	StatusFinished   Status = "finished"
	StatusUnfinished Status = "unfinished"
	StatusObsolete   Status = "obsolete"
	StatusVanished   Status = "vanished"
)

// ParseStatus maps a stored status name back to a Status.
func ParseStatus(s string) (Status, bool) {
	switch Status(s) {
	case StatusFinished, StatusUnfinished, StatusObsolete, StatusVanished:
		return Status(s), true
	}
	return "", false
}

// TypeAttr returns the value written in the translation type attribute.
func (s Status) TypeAttr() string {
	if s == StatusFinished {
		return ""
	}
	return string(s)
}

type Document struct {
	Version        string
	Language       string
	SourceLanguage string
	// Doctype records whether the file carried <!DOCTYPE TS>.
	Doctype  bool
	Contexts []Context
}

type Context struct {
	Name     string
	Comment  string
	Messages []Message
}

type Message struct {
	ID                string
	Numerus           bool
	Locations         []Location
	Source            string
	OldSource         string
	Comment           string // disambiguation
	OldComment        string
	ExtraComment      string
	TranslatorComment string
	Translation       Translation
}

// Location is a call site. Line is kept verbatim so relative
// references such as "+3" survive a round trip.
type Location struct {
	Filename string
	Line     string
}

type Translation struct {
	Type  string
	Text  string
	Forms []string
}

// Key identifies a logical message inside a catalog.
type Key struct {
	Context        string
	Source         string
	Disambiguation string
}

// Status reports the translation state. Unknown type values count as unfinished.
func (t Translation) Status() Status {
	switch t.Type {
	case "":
		return StatusFinished
	case "obsolete":
		return StatusObsolete
	case "vanished":
		return StatusVanished
	default:
		return StatusUnfinished
	}
}

// Key returns the lookup key of m inside the named context.
func (m Message) Key(context string) Key {
	return Key{Context: context, Source: m.Source, Disambiguation: m.Comment}
}

// HasTranslation reports whether m is finished and carries text that may be
// shown instead of the source.
func (m Message) HasTranslation() bool {
	if m.Translation.Status() != StatusFinished {
		return false
	}
	if !m.Numerus {
		return m.Translation.Text != ""
	}
	for _, form := range m.Translation.Forms {
		if form != "" {
			return true
		}
	}
	return false
}

// MessageCount returns the number of messages across all contexts.
func (d *Document) MessageCount() int {
	n := 0
	for _, c := range d.Contexts {
		n += len(c.Messages)
	}
	return n
}
