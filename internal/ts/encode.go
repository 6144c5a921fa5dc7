package ts

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

const indent = "    "

// Encode writes doc to w using the layout produced by lupdate, so an
// unmodified parsed document is reproduced byte for byte.
func Encode(w io.Writer, doc *Document) error {
	bw := bufio.NewWriter(w)
	e := &encoder{w: bw}
	e.document(doc)
	if e.err != nil {
		return e.err
	}
	return bw.Flush()
}

func Marshal(doc *Document) ([]byte, error) {
	var buf bytes.Buffer
	if err := Encode(&buf, doc); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Write encodes doc into the file at path, replacing it atomically.
func Write(path string, doc *Document) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".ts-*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if err := Encode(tmp, doc); err != nil {
		tmp.Close()
		return fmt.Errorf("encode %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}

type encoder struct {
	w   *bufio.Writer
	err error
}

func (e *encoder) str(s string) {
	if e.err != nil {
		return
	}
	_, e.err = e.w.WriteString(s)
}

func (e *encoder) document(doc *Document) {
	e.str("<?xml version=\"1.0\" encoding=\"utf-8\"?>\n")
	if doc.Doctype {
		e.str("<!DOCTYPE TS>\n")
	}
	version := doc.Version
	if version == "" {
		version = DefaultVersion
	}
	e.str(`<TS version="` + escape(version) + `"`)
	if doc.Language != "" {
		e.str(` language="` + escape(doc.Language) + `"`)
	}
	if doc.SourceLanguage != "" {
		e.str(` sourcelanguage="` + escape(doc.SourceLanguage) + `"`)
	}
	e.str(">\n")
	for i := range doc.Contexts {
		e.context(&doc.Contexts[i])
	}
	e.str("</TS>\n")
}

func (e *encoder) context(c *Context) {
	e.str("<context>\n")
	e.element(1, "name", c.Name)
	if c.Comment != "" {
		e.element(1, "comment", c.Comment)
	}
	for i := range c.Messages {
		e.message(&c.Messages[i])
	}
	e.str("</context>\n")
}

func (e *encoder) message(m *Message) {
	e.str(indent + "<message")
	if m.ID != "" {
		e.str(` id="` + escape(m.ID) + `"`)
	}
	if m.Numerus {
		e.str(` numerus="yes"`)
	}
	e.str(">\n")
	for _, loc := range m.Locations {
		e.str(indent + indent + `<location`)
		if loc.Filename != "" {
			e.str(` filename="` + escape(loc.Filename) + `"`)
		}
		if loc.Line != "" {
			e.str(` line="` + escape(loc.Line) + `"`)
		}
		e.str("/>\n")
	}
	e.element(2, "source", m.Source)
	optional := []struct{ name, value string }{
		{"oldsource", m.OldSource},
		{"comment", m.Comment},
		{"oldcomment", m.OldComment},
		{"extracomment", m.ExtraComment},
		{"translatorcomment", m.TranslatorComment},
	}
	for _, o := range optional {
		if o.value != "" {
			e.element(2, o.name, o.value)
		}
	}
	e.translation(m)
	e.str(indent + "</message>\n")
}

func (e *encoder) translation(m *Message) {
	e.str(indent + indent + "<translation")
	if m.Translation.Type != "" {
		e.str(` type="` + escape(m.Translation.Type) + `"`)
	}
	e.str(">")
	if !m.Numerus {
		e.str(escape(m.Translation.Text))
		e.str("</translation>\n")
		return
	}
	for _, form := range m.Translation.Forms {
		e.str("\n" + indent + indent + indent + "<numerusform>" + escape(form) + "</numerusform>")
	}
	e.str("\n" + indent + indent + "</translation>\n")
}

func (e *encoder) element(depth int, name, value string) {
	e.str(strings.Repeat(indent, depth) + "<" + name + ">" + escape(value) + "</" + name + ">\n")
}

// escape applies the entity set lupdate writes. Control characters that XML
// 1.0 cannot carry are emitted as Qt byte elements.
func escape(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch r {
		case '&':
			b.WriteString("&amp;")
		case '"':
			b.WriteString("&quot;")
		case '\'':
			b.WriteString("&apos;")
		case '<':
			b.WriteString("&lt;")
		case '>':
			b.WriteString("&gt;")
		case '\t', '\n', '\r':
			b.WriteRune(r)
		default:
			if r < 0x20 {
				fmt.Fprintf(&b, `<byte value="x%x"/>`, r)
				continue
			}
			b.WriteRune(r)
		}
	}
	return b.String()
}
