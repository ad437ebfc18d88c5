package punctuation

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/forPelevin/voskcap/internal/types"
)

// Case labels.
const (
	CaseLower      = "LOWER"
	CaseUpper      = "UPPER"
	CaseCapitalize = "CAPITALIZE"
	CaseOther      = "OTHER"
)

// Punctuation labels. O means no punctuation follows the token.
const (
	PuncNone        = "O"
	PuncComma       = "COMMA"
	PuncPeriod      = "PERIOD"
	PuncQuestion    = "QUESTION"
	PuncExclamation = "EXCLAMATION"
	PuncColon       = "COLON"
	PuncSemicolon   = "SEMICOLON"
)

var puncSymbols = map[string]string{
	PuncComma:       ",",
	PuncPeriod:      ".",
	PuncQuestion:    "?",
	PuncExclamation: "!",
	PuncColon:       ":",
	PuncSemicolon:   ";",
}

// RestoreWords turns labelled sub-word tokens back into whole words.
// Continuation tokens (leading '#') and hyphens are glued to the word before
// them.
func RestoreWords(preds []types.PuncToken) []string {
	var b strings.Builder
	for _, p := range preds {
		if p.Token == "" {
			continue
		}
		text := applyPunc(applyCase(p.Token, p.Case), p.Punc)
		continuation := strings.HasPrefix(p.Token, "#")
		if !continuation && text != "-" && !strings.HasSuffix(b.String(), "-") {
			b.WriteByte(' ')
		}
		b.WriteString(text)
	}
	return strings.Fields(b.String())
}

// Reconcile replaces the text of every word with its restored counterpart,
// keeping timings and confidence. The restored sequence must align one to one.
func Reconcile(words []types.Word, restored []string) ([]types.Word, error) {
	if len(restored) != len(words) {
		return nil, fmt.Errorf("%w: %d recognized words, %d restored", types.ErrAlignmentMismatch, len(words), len(restored))
	}
	out := make([]types.Word, len(words))
	for i, w := range words {
		w.Word = restored[i]
		out[i] = w
	}
	return out, nil
}

func stripMarkers(tok string) string {
	tok = strings.TrimSuffix(tok, "</w>")
	return strings.TrimLeft(tok, "#")
}

func applyCase(tok, label string) string {
	tok = stripMarkers(tok)
	switch label {
	case CaseUpper:
		return cases.Upper(language.Und).String(tok)
	case CaseLower:
		return cases.Lower(language.Und).String(tok)
	case CaseCapitalize:
		r, size := utf8.DecodeRuneInString(tok)
		if r == utf8.RuneError {
			return tok
		}
		return cases.Upper(language.Und).String(string(r)) + tok[size:]
	default:
		return tok
	}
}

func applyPunc(tok, label string) string {
	return tok + puncSymbols[label]
}
