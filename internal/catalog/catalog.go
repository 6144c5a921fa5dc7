// Package catalog resolves source strings against a parsed TS document at
// runtime, falling back to the source text when no usable translation exists.
package catalog

import (
	"strconv"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"tscat/internal/plural"
	"tscat/internal/ts"
)

// Catalog is an immutable lookup index over one TS document. It is safe for
// concurrent use.
type Catalog struct {
	language string
	rule     plural.Rule
	printer  *message.Printer
	index    map[ts.Key]ts.Message
}

// New indexes doc by (context, source, disambiguation). When a key repeats,
// the first entry with a usable translation wins.
func New(doc *ts.Document) *Catalog {
	c := &Catalog{
		language: doc.Language,
		rule:     plural.ForLanguage(doc.Language),
		printer:  message.NewPrinter(parseTag(doc.Language)),
		index:    make(map[ts.Key]ts.Message, doc.MessageCount()),
	}
	for _, ctx := range doc.Contexts {
		for _, m := range ctx.Messages {
			key := m.Key(ctx.Name)
			prev, ok := c.index[key]
			if ok && (prev.HasTranslation() || !m.HasTranslation()) {
				continue
			}
			c.index[key] = m
		}
	}
	return c
}

func parseTag(code string) language.Tag {
	tag, err := language.Parse(strings.ReplaceAll(code, "_", "-"))
	if err != nil {
		return language.Und
	}
	return tag
}

func (c *Catalog) Language() string { return c.language }

// Len returns the number of distinct keys.
func (c *Catalog) Len() int { return len(c.index) }

func (c *Catalog) Rule() plural.Rule { return c.rule }

func (c *Catalog) Lookup(context, source, disambiguation string) (ts.Message, bool) {
	m, ok := c.index[ts.Key{Context: context, Source: source, Disambiguation: disambiguation}]
	return m, ok
}

// Translate returns the finished translation for the key, or source.
func (c *Catalog) Translate(context, source, disambiguation string) string {
	m, ok := c.Lookup(context, source, disambiguation)
	if !ok || !m.HasTranslation() {
		return source
	}
	if m.Numerus {
		if f := firstForm(m.Translation.Forms); f != "" {
			return f
		}
		return source
	}
	return m.Translation.Text
}

// TranslatePlural picks the numerus form for n and substitutes %n and %Ln.
func (c *Catalog) TranslatePlural(context, source, disambiguation string, n int) string {
	text := source
	if m, ok := c.Lookup(context, source, disambiguation); ok && m.HasTranslation() {
		if m.Numerus {
			if i := c.rule.Index(n); i < len(m.Translation.Forms) && m.Translation.Forms[i] != "" {
				text = m.Translation.Forms[i]
			}
		} else {
			text = m.Translation.Text
		}
	}
	return c.substituteCount(text, n)
}

func (c *Catalog) substituteCount(text string, n int) string {
	if !strings.Contains(text, "%") {
		return text
	}
	r := strings.NewReplacer("%Ln", c.printer.Sprintf("%d", n), "%n", strconv.Itoa(n))
	return r.Replace(text)
}

func firstForm(forms []string) string {
	for _, f := range forms {
		if f != "" {
			return f
		}
	}
	return ""
}
