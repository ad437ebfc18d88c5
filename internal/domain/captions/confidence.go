package captions

import "github.com/forPelevin/voskcap/internal/types"

// Confidence accumulates the arithmetic mean of word confidences.
type Confidence struct {
	sum float64
	n   int
}

func (c *Confidence) Add(conf float64) {
	c.sum += conf
	c.n++
}

func (c Confidence) Count() int { return c.n }

// Mean is undefined for zero words and reports ErrEmptyTranscription rather
// than 0.
func (c Confidence) Mean() (float64, error) {
	if c.n == 0 {
		return 0, types.ErrEmptyTranscription
	}
	return c.sum / float64(c.n), nil
}

// MeanConfidence is the Confidence of words without segmenting them.
func MeanConfidence(words []types.Word) (float64, error) {
	var c Confidence
	for _, w := range words {
		c.Add(w.Conf)
	}
	return c.Mean()
}
