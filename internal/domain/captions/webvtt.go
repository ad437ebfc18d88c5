package captions

import (
	"fmt"
	"math"
	"strings"

	"github.com/forPelevin/voskcap/internal/types"
)

// RenderWebVTT serializes a track as a WebVTT document.
func RenderWebVTT(tr types.Track) string {
	var b strings.Builder
	b.WriteString("WEBVTT\n")
	for _, c := range tr.Cues {
		b.WriteString("\n")
		b.WriteString(Timestamp(c.Start))
		b.WriteString(" --> ")
		b.WriteString(Timestamp(c.End))
		b.WriteString("\n")
		b.WriteString(sanitizeVTT(CueText(c)))
		b.WriteString("\n")
	}
	return b.String()
}

// Timestamp formats seconds as H:MM:SS.mmm. Hours are not padded or capped.
func Timestamp(sec float64) string {
	if sec < 0 || math.IsNaN(sec) {
		sec = 0
	}
	ms := int64(math.Round(sec * 1000))
	h := ms / 3_600_000
	ms -= h * 3_600_000
	m := ms / 60_000
	ms -= m * 60_000
	s := ms / 1000
	ms -= s * 1000
	return fmt.Sprintf("%d:%02d:%02d.%03d", h, m, s, ms)
}

func sanitizeVTT(s string) string {
	s = strings.ReplaceAll(s, "&", "&amp;")
	s = strings.ReplaceAll(s, "<", "&lt;")
	s = strings.ReplaceAll(s, ">", "&gt;")
	return s
}
