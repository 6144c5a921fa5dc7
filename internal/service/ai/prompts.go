package ai

import (
	"fmt"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/language/display"
)

// SuggestInput describes one TS message to translate.
type SuggestInput struct {
	Context        string
	Disambiguation string
	ExtraComment   string
	SourceLanguage string
	TargetLanguage string
	// Forms is the number of plural forms wanted; 0 or 1 asks for a single line.
	Forms int
}

// LanguageName turns a Qt locale code such as "it_IT" into "Italian (Italy)".
// Unknown codes are returned unchanged.
func LanguageName(code string) string {
	if code == "" {
		return ""
	}
	tag, err := language.Parse(strings.ReplaceAll(code, "_", "-"))
	if err != nil {
		return code
	}
	name := display.English.Tags().Name(tag)
	if name == "" {
		return code
	}
	return name
}

// GetSuggestPrompt returns the system prompt for translating one UI string.
func GetSuggestPrompt(in SuggestInput) string {
	var ctx strings.Builder
	if in.Context != "" {
		fmt.Fprintf(&ctx, "\n<ui_context>%s</ui_context>", in.Context)
	}
	if in.Disambiguation != "" {
		fmt.Fprintf(&ctx, "\n<disambiguation>%s</disambiguation>", in.Disambiguation)
	}
	if in.ExtraComment != "" {
		fmt.Fprintf(&ctx, "\n<developer_note>%s</developer_note>", in.ExtraComment)
	}
	source := LanguageName(in.SourceLanguage)
	if source == "" {
		source = "English"
	}

	output := "Output ONLY the translated string on a single line"
	if in.Forms > 1 {
		output = fmt.Sprintf("Output exactly %d plural forms, one per line, ordered from singular to the largest plural category; every form keeps %%n", in.Forms)
	}

	return fmt.Sprintf(`You are an expert software localizer translating user interface strings of a chess application.

<context>%s
<source_language>%s</source_language>
<target_language>%s</target_language>
</context>

<instructions>
1. You MUST translate into the language specified in <target_language>. Responses in other languages are invalid
2. Keep every placeholder (%%1 to %%99, %%L1, %%n) exactly as written
3. Keep escaped markup and HTML tags such as <b> and <br> unchanged
4. Keep keyboard accelerators (&) on a sensible letter
5. Keep chess notation (SAN moves, NAG symbols, piece letters) unchanged
6. %s
7. NO explanations, NO notes, NO markdown formatting
</instructions>`, ctx.String(), source, LanguageName(in.TargetLanguage), output)
}

// WrapInput encloses the source text so the model cannot confuse it with instructions.
func WrapInput(source string) string {
	return "<input>\n" + source + "\n</input>"
}

// ParseSuggestion splits a reply into forms. A single-form request returns the
// trimmed reply; a plural request returns exactly forms lines or nil.
func ParseSuggestion(reply string, forms int) []string {
	reply = strings.TrimSpace(reply)
	reply = strings.TrimPrefix(reply, "<input>")
	reply = strings.TrimSuffix(reply, "</input>")
	reply = strings.TrimSpace(reply)
	if reply == "" {
		return nil
	}
	if forms <= 1 {
		return []string{reply}
	}
	var out []string
	for _, line := range strings.Split(reply, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			out = append(out, line)
		}
	}
	if len(out) != forms {
		return nil
	}
	return out
}
