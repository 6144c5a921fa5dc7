// Package plural selects numerus forms the way Qt Linguist orders them
// inside a <translation numerus="yes"> element.
package plural

import (
	"strings"

	"golang.org/x/text/language"
)

// Formula returns the index of the numerus form to use for n.
type Formula func(n int) int

// Rule is the numerus rule of one language.
type Rule struct {
	name    string
	forms   int
	formula Formula
}

func (r Rule) Name() string { return r.name }

// Forms returns the number of numerus forms a translation must carry.
func (r Rule) Forms() int { return r.forms }

// Index returns the form to use for n. Negative counts use their
// absolute value.
func (r Rule) Index(n int) int {
	if n < 0 {
		n = -n
	}
	i := r.formula(n)
	if i >= r.forms {
		i = r.forms - 1
	}
	return i
}

func between(v, lo, hi int) bool { return v >= lo && v <= hi }

var (
	oneForm = Rule{"one", 1, func(int) int { return 0 }}
	english = Rule{"english", 2, func(n int) int {
		if n == 1 {
			return 0
		}
		return 1
	}}
	french = Rule{"french", 2, func(n int) int {
		if n <= 1 {
			return 0
		}
		return 1
	}}
	icelandic = Rule{"icelandic", 2, func(n int) int {
		if n%10 == 1 && n%100 != 11 {
			return 0
		}
		return 1
	}}
	russian = Rule{"russian", 3, func(n int) int {
		switch {
		case n%10 == 1 && n%100 != 11:
			return 0
		case between(n%10, 2, 4) && !between(n%100, 10, 19):
			return 1
		}
		return 2
	}}
	czech = Rule{"czech", 3, func(n int) int {
		switch {
		case n == 1:
			return 0
		case between(n, 2, 4):
			return 1
		}
		return 2
	}}
	polish = Rule{"polish", 3, func(n int) int {
		switch {
		case n == 1:
			return 0
		case between(n%10, 2, 4) && !between(n%100, 10, 19):
			return 1
		}
		return 2
	}}
	lithuanian = Rule{"lithuanian", 3, func(n int) int {
		switch {
		case n%10 == 1 && n%100 != 11:
			return 0
		case n%10 >= 2 && !between(n%100, 10, 19):
			return 1
		}
		return 2
	}}
	latvian = Rule{"latvian", 3, func(n int) int {
		switch {
		case n%10 == 1 && n%100 != 11:
			return 0
		case n != 0:
			return 1
		}
		return 2
	}}
	romanian = Rule{"romanian", 3, func(n int) int {
		switch {
		case n == 1:
			return 0
		case n == 0 || between(n%100, 1, 19):
			return 1
		}
		return 2
	}}
	irish = Rule{"irish", 3, func(n int) int {
		switch n {
		case 1:
			return 0
		case 2:
			return 1
		}
		return 2
	}}
	macedonian = Rule{"macedonian", 3, func(n int) int {
		switch n % 10 {
		case 1:
			return 0
		case 2:
			return 1
		}
		return 2
	}}
	slovenian = Rule{"slovenian", 4, func(n int) int {
		switch n % 100 {
		case 1:
			return 0
		case 2:
			return 1
		case 3, 4:
			return 2
		}
		return 3
	}}
	maltese = Rule{"maltese", 4, func(n int) int {
		switch {
		case n == 1:
			return 0
		case n == 0 || between(n%100, 1, 10):
			return 1
		case between(n%100, 11, 19):
			return 2
		}
		return 3
	}}
	welsh = Rule{"welsh", 4, func(n int) int {
		switch n {
		case 1:
			return 0
		case 2:
			return 1
		case 8, 11:
			return 2
		}
		return 3
	}}
	arabic = Rule{"arabic", 6, func(n int) int {
		switch {
		case n == 0:
			return 0
		case n == 1:
			return 1
		case n == 2:
			return 2
		case between(n%100, 3, 10):
			return 3
		case n%100 >= 11:
			return 4
		}
		return 5
	}}
)

var byBase = map[string]Rule{
	"ja": oneForm, "zh": oneForm, "ko": oneForm, "vi": oneForm, "th": oneForm,
	"id": oneForm, "ms": oneForm, "tr": oneForm, "hu": oneForm, "fa": oneForm,
	"lo": oneForm, "my": oneForm, "ka": oneForm,
	"fr": french, "br": french, "fil": french,
	"is": icelandic,
	"ru": russian, "uk": russian, "be": russian, "sr": russian, "hr": russian, "bs": russian,
	"cs": czech, "sk": czech,
	"pl": polish,
	"lt": lithuanian,
	"lv": latvian,
	"ro": romanian, "mo": romanian,
	"ga": irish,
	"mk": macedonian,
	"sl": slovenian,
	"mt": maltese,
	"cy": welsh,
	"ar": arabic,
}

// ForLanguage returns the rule for a TS language attribute such as
// "it_IT", "pt_BR" or "ru". Unknown or empty codes get the two-form rule
// where only 1 is singular.
func ForLanguage(code string) Rule {
	code = strings.TrimSpace(strings.ReplaceAll(code, "_", "-"))
	if code == "" {
		return english
	}
	tag, err := language.Parse(code)
	if err != nil {
		return english
	}
	base, _ := tag.Base()
	if base.String() == "pt" {
		if region, conf := tag.Region(); conf == language.Exact && region.String() == "BR" {
			return french
		}
	}
	if r, ok := byBase[base.String()]; ok {
		return r
	}
	return english
}
