package captions

import (
	"strings"
	"unicode/utf8"

	"github.com/forPelevin/voskcap/internal/types"
)

const (
	DefaultMaxCharsPerLine     = 35
	DefaultMaxLinesInParagraph = 2
)

// Limits bounds the shape of a cue.
type Limits struct {
	MaxCharsPerLine     int
	MaxLinesInParagraph int
}

func DefaultLimits() Limits {
	return Limits{
		MaxCharsPerLine:     DefaultMaxCharsPerLine,
		MaxLinesInParagraph: DefaultMaxLinesInParagraph,
	}
}

func (l Limits) withDefaults() Limits {
	if l.MaxCharsPerLine <= 0 {
		l.MaxCharsPerLine = DefaultMaxCharsPerLine
	}
	if l.MaxLinesInParagraph <= 0 {
		l.MaxLinesInParagraph = DefaultMaxLinesInParagraph
	}
	return l
}

// Segment packs words greedily into lines of at most MaxCharsPerLine
// characters and lines into cues of at most MaxLinesInParagraph lines. A word
// longer than the line budget is never split and sits on a line of its own.
// The mean confidence of all words is collected in the same pass.
func Segment(words []types.Word, lim Limits) (types.Track, Confidence) {
	lim = lim.withDefaults()

	var (
		tr        types.Track
		conf      Confidence
		line      []types.Word
		para      []types.Line
		charCount int
	)
	for _, w := range words {
		conf.Add(w.Conf)

		wl := wordLen(w.Word)
		charCount += wl
		if charCount > lim.MaxCharsPerLine && len(line) > 0 {
			if len(para) == lim.MaxLinesInParagraph {
				tr.Cues = append(tr.Cues, newCue(para))
				para = []types.Line{{Words: line}}
			} else {
				para = append(para, types.Line{Words: line})
			}
			// the carried word's trailing space is not counted, so a
			// carried line may render one character over the budget
			line = []types.Word{w}
			charCount = wl
			continue
		}
		line = append(line, w)
		charCount++
	}

	if len(para) > 0 {
		if len(para) < lim.MaxLinesInParagraph {
			if len(line) > 0 {
				para = append(para, types.Line{Words: line})
			}
			line = nil
		}
		tr.Cues = append(tr.Cues, newCue(para))
	}
	if len(line) > 0 {
		tr.Cues = append(tr.Cues, newCue([]types.Line{{Words: line}}))
	}
	return tr, conf
}

func newCue(lines []types.Line) types.Cue {
	first := lines[0].Words[0]
	lastLine := lines[len(lines)-1]
	last := lastLine.Words[len(lastLine.Words)-1]
	return types.Cue{Start: first.Start, End: last.End, Lines: lines}
}

// LineText joins the words of a line with single spaces.
func LineText(l types.Line) string {
	parts := make([]string, len(l.Words))
	for i, w := range l.Words {
		parts[i] = w.Word
	}
	return strings.Join(parts, " ")
}

// CueText joins the lines of a cue with line breaks.
func CueText(c types.Cue) string {
	parts := make([]string, len(c.Lines))
	for i, l := range c.Lines {
		parts[i] = LineText(l)
	}
	return strings.Join(parts, "\n")
}

func wordLen(s string) int { return utf8.RuneCountInString(s) }
