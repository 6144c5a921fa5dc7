// Package validate reports data-integrity problems in TS documents.
package validate

import (
	"fmt"
	"sort"
	"strings"
	"unicode"

	"golang.org/x/net/html"

	"tscat/internal/catalog"
	"tscat/internal/plural"
	"tscat/internal/ts"
)

type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

const (
	RuleConflictingDuplicate = "conflicting-duplicate"
	RuleNumerusCount         = "numerus-count"
	RuleNumerusMissingN      = "numerus-missing-n"
	RulePlaceholderMismatch  = "placeholder-mismatch"
	RuleMarkupMismatch       = "markup-mismatch"
	RuleEmptyFinished        = "empty-finished"
	RuleWhitespaceMismatch   = "whitespace-mismatch"
)

// Rules lists every rule in the order checks run.
var Rules = []string{
	RuleConflictingDuplicate,
	RuleNumerusCount,
	RuleNumerusMissingN,
	RulePlaceholderMismatch,
	RuleMarkupMismatch,
	RuleEmptyFinished,
	RuleWhitespaceMismatch,
}

type Issue struct {
	Rule     string   `json:"rule"`
	Severity Severity `json:"severity"`
	Context  string   `json:"context"`
	Source   string   `json:"source"`
	Detail   string   `json:"detail"`
}

type Options struct {
	// Language overrides the document language when choosing the numerus rule.
	Language string
	// Rules restricts the run to the named rules. Empty means all.
	Rules []string
}

func (o Options) enabled(rule string) bool {
	if len(o.Rules) == 0 {
		return true
	}
	for _, r := range o.Rules {
		if r == rule {
			return true
		}
	}
	return false
}

// HasErrors reports whether any issue has error severity.
func HasErrors(issues []Issue) bool {
	for _, is := range issues {
		if is.Severity == SeverityError {
			return true
		}
	}
	return false
}

// Check runs the enabled rules over doc. Issues are returned in document
// order; duplicate conflicts are reported at the first occurrence of a key.
func Check(doc *ts.Document, opts Options) []Issue {
	lang := doc.Language
	if opts.Language != "" {
		lang = opts.Language
	}
	rule := plural.ForLanguage(lang)

	var issues []Issue
	if opts.enabled(RuleConflictingDuplicate) {
		issues = append(issues, duplicates(doc)...)
	}
	for _, c := range doc.Contexts {
		for _, m := range c.Messages {
			issues = append(issues, checkMessage(c.Name, m, rule, opts)...)
		}
	}
	return issues
}

func duplicates(doc *ts.Document) []Issue {
	type entry struct {
		order   int
		seen    []string
		context string
		source  string
	}
	groups := make(map[ts.Key]*entry)
	order := 0
	for _, c := range doc.Contexts {
		for _, m := range c.Messages {
			if !m.HasTranslation() {
				continue
			}
			key := m.Key(c.Name)
			e, ok := groups[key]
			if !ok {
				e = &entry{order: order, context: c.Name, source: m.Source}
				groups[key] = e
				order++
			}
			text := translationText(m)
			found := false
			for _, s := range e.seen {
				if s == text {
					found = true
					break
				}
			}
			if !found {
				e.seen = append(e.seen, text)
			}
		}
	}

	var conflicts []*entry
	for _, e := range groups {
		if len(e.seen) > 1 {
			conflicts = append(conflicts, e)
		}
	}
	sort.Slice(conflicts, func(i, j int) bool { return conflicts[i].order < conflicts[j].order })

	issues := make([]Issue, 0, len(conflicts))
	for _, e := range conflicts {
		issues = append(issues, Issue{
			Rule:     RuleConflictingDuplicate,
			Severity: SeverityError,
			Context:  e.context,
			Source:   e.source,
			Detail:   fmt.Sprintf("%d different translations: %s", len(e.seen), quoteAll(e.seen)),
		})
	}
	return issues
}

func translationText(m ts.Message) string {
	if m.Numerus {
		return strings.Join(m.Translation.Forms, "\x00")
	}
	return m.Translation.Text
}

func quoteAll(ss []string) string {
	q := make([]string, len(ss))
	for i, s := range ss {
		q[i] = fmt.Sprintf("%q", strings.ReplaceAll(s, "\x00", " | "))
	}
	return strings.Join(q, ", ")
}

func checkMessage(context string, m ts.Message, rule plural.Rule, opts Options) []Issue {
	var issues []Issue
	add := func(name string, sev Severity, format string, args ...any) {
		issues = append(issues, Issue{
			Rule:     name,
			Severity: sev,
			Context:  context,
			Source:   m.Source,
			Detail:   fmt.Sprintf(format, args...),
		})
	}

	if m.Numerus && opts.enabled(RuleNumerusMissingN) &&
		!strings.Contains(m.Source, "%n") && !strings.Contains(m.Source, "%Ln") {
		add(RuleNumerusMissingN, SeverityWarning, "numerus source has no %%n marker")
	}

	// the form count is checked whatever the translation status
	if m.Numerus && opts.enabled(RuleNumerusCount) && len(m.Translation.Forms) != rule.Forms() {
		add(RuleNumerusCount, SeverityError, "%d numerus forms, language %s needs %d", len(m.Translation.Forms), rule.Name(), rule.Forms())
	}

	if m.Translation.Status() != ts.StatusFinished {
		return issues
	}

	texts := []string{m.Translation.Text}
	if m.Numerus {
		texts = m.Translation.Forms
	}

	for i, text := range texts {
		label := "translation"
		if m.Numerus {
			label = fmt.Sprintf("form %d", i)
		}
		if text == "" {
			if opts.enabled(RuleEmptyFinished) {
				add(RuleEmptyFinished, SeverityWarning, "%s is empty but not marked unfinished", label)
			}
			continue
		}
		if opts.enabled(RulePlaceholderMismatch) {
			want, got := placeholderSet(m.Source), placeholderSet(text)
			if want != got {
				add(RulePlaceholderMismatch, SeverityError, "%s uses {%s}, source uses {%s}", label, got, want)
			}
		}
		if opts.enabled(RuleMarkupMismatch) {
			want, got := markup(m.Source), markup(text)
			if want != got {
				add(RuleMarkupMismatch, SeverityWarning, "%s tags [%s], source tags [%s]", label, got, want)
			}
		}
		if opts.enabled(RuleWhitespaceMismatch) {
			if leading(m.Source) != leading(text) || trailing(m.Source) != trailing(text) {
				add(RuleWhitespaceMismatch, SeverityWarning, "%s leading or trailing whitespace differs from source", label)
			}
		}
	}
	return issues
}

// placeholderSet renders the distinct %N markers of s as a sorted list.
func placeholderSet(s string) string {
	nums := catalog.Placeholders(s)
	seen := make(map[int]bool, len(nums))
	uniq := make([]int, 0, len(nums))
	for _, n := range nums {
		if !seen[n] {
			seen[n] = true
			uniq = append(uniq, n)
		}
	}
	sort.Ints(uniq)
	parts := make([]string, len(uniq))
	for i, n := range uniq {
		parts[i] = fmt.Sprintf("%%%d", n)
	}
	return strings.Join(parts, ",")
}

// markup returns the sorted multiset of tags in s.
func markup(s string) string {
	if !strings.Contains(s, "<") {
		return ""
	}
	var tags []string
	z := html.NewTokenizer(strings.NewReader(s))
	for {
		tt := z.Next()
		if tt == html.ErrorToken {
			break
		}
		switch tt {
		case html.StartTagToken, html.SelfClosingTagToken:
			name, _ := z.TagName()
			tags = append(tags, string(name))
		case html.EndTagToken:
			name, _ := z.TagName()
			tags = append(tags, "/"+string(name))
		}
	}
	sort.Strings(tags)
	return strings.Join(tags, " ")
}

func leading(s string) string {
	return s[:len(s)-len(strings.TrimLeftFunc(s, unicode.IsSpace))]
}

func trailing(s string) string {
	return s[len(strings.TrimRightFunc(s, unicode.IsSpace)):]
}
