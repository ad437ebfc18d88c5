package recognition

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/forPelevin/voskcap/internal/types"
)

// ParseUtterance decodes a recognizer result such as
//
//	{"result": [{"word": "hi", "start": 0.1, "end": 0.4, "conf": 1}], "text": "hi"}
//
// A missing or empty "result" is silence and yields an empty Utterance.
func ParseUtterance(raw string) (types.Utterance, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return types.Utterance{}, nil
	}
	var u types.Utterance
	if err := json.Unmarshal([]byte(raw), &u); err != nil {
		return types.Utterance{}, fmt.Errorf("parse recognizer result: %w", err)
	}
	words := u.Words[:0]
	for _, w := range u.Words {
		w.Word = strings.TrimSpace(w.Word)
		if w.Word == "" {
			continue
		}
		if w.End < w.Start {
			w.End = w.Start
		}
		words = append(words, w)
	}
	if len(words) == 0 {
		return types.Utterance{}, nil
	}
	u.Words = words
	return u, nil
}
