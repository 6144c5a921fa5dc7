// Package report summarizes translation progress of TS documents.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"strings"

	"tscat/internal/ts"
)

type Counts struct {
	Total      int     `json:"total"`
	Finished   int     `json:"finished"`
	Unfinished int     `json:"unfinished"`
	Obsolete   int     `json:"obsolete"`
	Vanished   int     `json:"vanished"`
	Numerus    int     `json:"numerus"`
	Completion float64 `json:"completion"`
}

func (c *Counts) add(m ts.Message) {
	c.Total++
	if m.Numerus {
		c.Numerus++
	}
	switch m.Translation.Status() {
	case ts.StatusFinished:
		c.Finished++
	case ts.StatusObsolete:
		c.Obsolete++
	case ts.StatusVanished:
		c.Vanished++
	default:
		c.Unfinished++
	}
}

// finish computes completion over the entries still present in the sources.
func (c *Counts) finish() {
	c.Completion = percent(c.Finished, c.Total-c.Obsolete-c.Vanished)
}

type ContextStatus struct {
	Context string `json:"context"`
	Counts
}

type Entry struct {
	Context string `json:"context"`
	Source  string `json:"source"`
}

type Report struct {
	Catalog      string          `json:"catalog"`
	Language     string          `json:"language"`
	Version      string          `json:"version"`
	Counts       Counts          `json:"counts"`
	Contexts     []ContextStatus `json:"contexts"`
	Untranslated []Entry         `json:"untranslated"`
}

// Build counts every message of doc. Contexts sharing a name are merged and
// listed in order of first appearance.
func Build(name string, doc *ts.Document) Report {
	rep := Report{
		Catalog:      name,
		Language:     doc.Language,
		Version:      doc.Version,
		Contexts:     make([]ContextStatus, 0, len(doc.Contexts)),
		Untranslated: make([]Entry, 0),
	}
	pos := make(map[string]int, len(doc.Contexts))
	for _, c := range doc.Contexts {
		i, ok := pos[c.Name]
		if !ok {
			i = len(rep.Contexts)
			pos[c.Name] = i
			rep.Contexts = append(rep.Contexts, ContextStatus{Context: c.Name})
		}
		for _, m := range c.Messages {
			rep.Counts.add(m)
			rep.Contexts[i].add(m)
			if m.Translation.Status() == ts.StatusUnfinished {
				rep.Untranslated = append(rep.Untranslated, Entry{Context: c.Name, Source: m.Source})
			}
		}
	}
	rep.Counts.finish()
	for i := range rep.Contexts {
		rep.Contexts[i].finish()
	}
	return rep
}

func percent(numerator int, denominator int) float64 {
	if denominator <= 0 {
		return 100
	}
	value := float64(numerator) * 100 / float64(denominator)
	return math.Round(value*10) / 10
}

func WriteJSON(w io.Writer, reports ...Report) error {
	data, err := json.MarshalIndent(reports, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}
	data = append(data, '\n')
	_, err = w.Write(data)
	return err
}

func WriteMarkdown(w io.Writer, reports ...Report) error {
	var b strings.Builder
	b.WriteString("# Translation Status\n\n")
	b.WriteString("| Catalog | Language | Total | Finished | Unfinished | Obsolete | Vanished | Completion |\n")
	b.WriteString("| --- | --- | ---: | ---: | ---: | ---: | ---: | ---: |\n")
	for _, rep := range reports {
		c := rep.Counts
		b.WriteString(fmt.Sprintf("| `%s` | `%s` | %d | %d | %d | %d | %d | %.1f%% |\n",
			rep.Catalog, rep.Language, c.Total, c.Finished, c.Unfinished, c.Obsolete, c.Vanished, c.Completion))
	}

	for _, rep := range reports {
		b.WriteString("\n## Catalog: `")
		b.WriteString(rep.Catalog)
		b.WriteString("`\n\n")

		b.WriteString("| Context | Total | Finished | Unfinished | Obsolete | Vanished | Completion |\n")
		b.WriteString("| --- | ---: | ---: | ---: | ---: | ---: | ---: |\n")
		for _, cs := range rep.Contexts {
			b.WriteString(fmt.Sprintf("| `%s` | %d | %d | %d | %d | %d | %.1f%% |\n",
				cs.Context, cs.Total, cs.Finished, cs.Unfinished, cs.Obsolete, cs.Vanished, cs.Completion))
		}

		if len(rep.Untranslated) > 0 {
			b.WriteString("\n### Unfinished\n\n")
			for _, e := range rep.Untranslated {
				b.WriteString("- `")
				b.WriteString(e.Context)
				b.WriteString("`: ")
				b.WriteString(singleLine(e.Source))
				b.WriteString("\n")
			}
		}
	}

	_, err := io.WriteString(w, b.String())
	return err
}

func singleLine(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
