//go:build !vosk

package vosk

import (
	"errors"

	"github.com/forPelevin/voskcap/internal/ports"
)

// Available reports whether the binary was built with libvosk.
const Available = false

var ErrUnavailable = errors.New("vosk support not compiled in (rebuild with -tags vosk)")

type Factory struct{}

func New() *Factory { return &Factory{} }

func (f *Factory) NewRecognizer(string, float64) (ports.Recognizer, error) {
	return nil, ErrUnavailable
}

var _ ports.RecognizerFactory = (*Factory)(nil)
