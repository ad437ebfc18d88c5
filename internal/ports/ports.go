package ports

import (
	"context"
	"io"
	"time"

	"github.com/forPelevin/voskcap/internal/types"
)

// MediaDecoder turns any media file into 16 kHz mono s16le PCM.
type MediaDecoder interface {
	DecodePCM(ctx context.Context, input string, w types.Window) (io.ReadCloser, error)
	ProbeDuration(ctx context.Context, input string) (time.Duration, error)
}

// Recognizer mirrors the vosk streaming API. AcceptWaveform reports whether an
// utterance boundary was reached; Result then returns that utterance as JSON.
type Recognizer interface {
	AcceptWaveform(pcm []byte) bool
	Result() string
	FinalResult() string
	Close() error
}

type RecognizerFactory interface {
	NewRecognizer(modelDir string, sampleRate float64) (Recognizer, error)
}

// Punctuator tokenizes text and labels every token with case and
// punctuation classes.
type Punctuator interface {
	Predict(ctx context.Context, text string) ([]types.PuncToken, error)
}

// SampleRate is the PCM rate shared by the decoder and the recognizer.
const SampleRate = 16000
