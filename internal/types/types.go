package types

import "time"

// Word is one recognized token as emitted by the recognizer.
type Word struct {
	Word  string  `json:"word"`
	Start float64 `json:"start"`
	End   float64 `json:"end"`
	Conf  float64 `json:"conf"`
}

// Utterance is a single pause-delimited recognizer emission. Silence yields
// an Utterance with no words.
type Utterance struct {
	Words []Word `json:"result"`
}

type Run struct {
	Utterances []Utterance
}

// Words flattens all non-empty utterances in order.
func (r Run) Words() []Word {
	n := 0
	for _, u := range r.Utterances {
		n += len(u.Words)
	}
	out := make([]Word, 0, n)
	for _, u := range r.Utterances {
		out = append(out, u.Words...)
	}
	return out
}

// Text joins every word of the run with single spaces.
func (r Run) Text() string {
	var b []byte
	for _, u := range r.Utterances {
		for _, w := range u.Words {
			if len(b) > 0 {
				b = append(b, ' ')
			}
			b = append(b, w.Word...)
		}
	}
	return string(b)
}

type Line struct {
	Words []Word
}

type Cue struct {
	Start float64
	End   float64
	Lines []Line
}

type Track struct {
	Cues []Cue
}

// PuncToken is one sub-word token labelled by the punctuation model.
type PuncToken struct {
	Token string `json:"token"`
	Case  string `json:"case"`
	Punc  string `json:"punc"`
}

// Window selects a slice of the input media. Zero values mean "from the
// start" and "until the end".
type Window struct {
	Seek     time.Duration
	Duration time.Duration
}

// Candidate is a model considered by model selection.
type Candidate struct {
	Path   string
	Score  float64
	Scored bool
	Words  int
	Err    error
}
