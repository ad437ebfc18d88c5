//go:build vosk

package vosk

import (
	"fmt"
	"sync"

	vosk "github.com/alphacep/vosk-api/go"

	"github.com/forPelevin/voskcap/internal/ports"
)

// Available reports whether the binary was built with libvosk.
const Available = true

func init() {
	vosk.SetLogLevel(-1)
}

type Factory struct{}

func New() *Factory { return &Factory{} }

// NewRecognizer loads the model directory and returns a recognizer with word
// timings enabled. Every recognizer owns its model; probes never share one.
func (f *Factory) NewRecognizer(modelDir string, sampleRate float64) (ports.Recognizer, error) {
	model, err := vosk.NewModel(modelDir)
	if err != nil {
		return nil, fmt.Errorf("load vosk model %s: %w", modelDir, err)
	}
	rec, err := vosk.NewRecognizer(model, sampleRate)
	if err != nil {
		model.Free()
		return nil, fmt.Errorf("create vosk recognizer for %s: %w", modelDir, err)
	}
	rec.SetWords(1)
	return &recognizer{model: model, rec: rec}, nil
}

type recognizer struct {
	model *vosk.VoskModel
	rec   *vosk.VoskRecognizer
	once  sync.Once
}

func (r *recognizer) AcceptWaveform(pcm []byte) bool {
	return r.rec.AcceptWaveform(pcm) == 1
}

func (r *recognizer) Result() string      { return r.rec.Result() }
func (r *recognizer) FinalResult() string { return r.rec.FinalResult() }

func (r *recognizer) Close() error {
	r.once.Do(func() {
		r.rec.Free()
		r.model.Free()
	})
	return nil
}

var _ ports.RecognizerFactory = (*Factory)(nil)
