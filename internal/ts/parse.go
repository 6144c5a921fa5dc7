package ts

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"golang.org/x/net/html/charset"
)

// Parse decodes a TS document from r.
func Parse(r io.Reader) (*Document, error) {
	d := xml.NewDecoder(r)
	d.CharsetReader = charset.NewReaderLabel

	doc := &Document{}
	for {
		tok, err := d.Token()
		if errors.Is(err, io.EOF) {
			return nil, ErrNotTS
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalid, err)
		}
		switch t := tok.(type) {
		case xml.Directive:
			if strings.HasPrefix(strings.TrimSpace(string(t)), "DOCTYPE") {
				doc.Doctype = true
			}
		case xml.StartElement:
			if t.Name.Local != "TS" {
				return nil, ErrNotTS
			}
			if err := parseRoot(d, t, doc); err != nil {
				return nil, fmt.Errorf("%w: %v", ErrInvalid, err)
			}
			return doc, nil
		}
	}
}

// ParseFile opens and parses the TS file at path.
func ParseFile(path string) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	doc, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return doc, nil
}

func parseRoot(d *xml.Decoder, start xml.StartElement, doc *Document) error {
	for _, attr := range start.Attr {
		switch attr.Name.Local {
		case "version":
			doc.Version = attr.Value
		case "language":
			doc.Language = attr.Value
		case "sourcelanguage":
			doc.SourceLanguage = attr.Value
		}
	}
	for {
		tok, err := d.Token()
		if err != nil {
			return err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			if t.Name.Local != "context" {
				if err := d.Skip(); err != nil {
					return err
				}
				continue
			}
			c, err := parseContext(d)
			if err != nil {
				return err
			}
			doc.Contexts = append(doc.Contexts, c)
		case xml.EndElement:
			return nil
		}
	}
}

func parseContext(d *xml.Decoder) (Context, error) {
	var c Context
	for {
		tok, err := d.Token()
		if err != nil {
			return c, err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "name":
				c.Name, err = readText(d)
			case "comment":
				c.Comment, err = readText(d)
			case "message":
				var m Message
				m, err = parseMessage(d, t)
				c.Messages = append(c.Messages, m)
			default:
				err = d.Skip()
			}
			if err != nil {
				return c, err
			}
		case xml.EndElement:
			return c, nil
		}
	}
}

func parseMessage(d *xml.Decoder, start xml.StartElement) (Message, error) {
	var m Message
	for _, attr := range start.Attr {
		switch attr.Name.Local {
		case "id":
			m.ID = attr.Value
		case "numerus":
			m.Numerus = attr.Value == "yes"
		}
	}
	for {
		tok, err := d.Token()
		if err != nil {
			return m, err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "location":
				var loc Location
				for _, attr := range t.Attr {
					switch attr.Name.Local {
					case "filename":
						loc.Filename = attr.Value
					case "line":
						loc.Line = attr.Value
					}
				}
				m.Locations = append(m.Locations, loc)
				err = d.Skip()
			case "source":
				m.Source, err = readText(d)
			case "oldsource":
				m.OldSource, err = readText(d)
			case "comment":
				m.Comment, err = readText(d)
			case "oldcomment":
				m.OldComment, err = readText(d)
			case "extracomment":
				m.ExtraComment, err = readText(d)
			case "translatorcomment":
				m.TranslatorComment, err = readText(d)
			case "translation":
				m.Translation, err = parseTranslation(d, t, m.Numerus)
			default:
				err = d.Skip()
			}
			if err != nil {
				return m, err
			}
		case xml.EndElement:
			return m, nil
		}
	}
}

func parseTranslation(d *xml.Decoder, start xml.StartElement, numerus bool) (Translation, error) {
	var tr Translation
	for _, attr := range start.Attr {
		if attr.Name.Local == "type" {
			tr.Type = attr.Value
		}
	}
	var text strings.Builder
	for {
		tok, err := d.Token()
		if err != nil {
			return tr, err
		}
		switch t := tok.(type) {
		case xml.CharData:
			text.Write(t)
		case xml.StartElement:
			switch t.Name.Local {
			case "numerusform":
				form, err := readText(d)
				if err != nil {
					return tr, err
				}
				tr.Forms = append(tr.Forms, form)
			case "byte":
				if err := appendByte(d, t, &text); err != nil {
					return tr, err
				}
			default:
				if err := d.Skip(); err != nil {
					return tr, err
				}
			}
		case xml.EndElement:
			if !numerus {
				tr.Text = text.String()
			}
			return tr, nil
		}
	}
}

// readText collects the character data of the current element, expanding
// <byte value="xN"/> escapes, and consumes its end tag.
func readText(d *xml.Decoder) (string, error) {
	var text strings.Builder
	for {
		tok, err := d.Token()
		if err != nil {
			return "", err
		}
		switch t := tok.(type) {
		case xml.CharData:
			text.Write(t)
		case xml.StartElement:
			if t.Name.Local == "byte" {
				err = appendByte(d, t, &text)
			} else {
				err = d.Skip()
			}
			if err != nil {
				return "", err
			}
		case xml.EndElement:
			return text.String(), nil
		}
	}
}

func appendByte(d *xml.Decoder, start xml.StartElement, text *strings.Builder) error {
	for _, attr := range start.Attr {
		if attr.Name.Local != "value" {
			continue
		}
		v := attr.Value
		base := 10
		if strings.HasPrefix(v, "x") {
			v = v[1:]
			base = 16
		}
		n, err := strconv.ParseUint(v, base, 32)
		if err != nil {
			return fmt.Errorf("byte value %q: %w", attr.Value, err)
		}
		text.WriteRune(rune(n))
	}
	return d.Skip()
}
