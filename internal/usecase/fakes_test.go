package usecase

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"sync"
	"sync/atomic"
	"time"

	"github.com/forPelevin/voskcap/internal/ports"
	"github.com/forPelevin/voskcap/internal/types"
)

type fakeDecoder struct {
	duration  time.Duration
	pcmBytes  int
	decodeErr error

	mu      sync.Mutex
	windows []types.Window
}

func (d *fakeDecoder) DecodePCM(_ context.Context, _ string, w types.Window) (io.ReadCloser, error) {
	d.mu.Lock()
	d.windows = append(d.windows, w)
	d.mu.Unlock()
	if d.decodeErr != nil {
		return nil, d.decodeErr
	}
	return io.NopCloser(bytes.NewReader(make([]byte, d.pcmBytes))), nil
}

func (d *fakeDecoder) ProbeDuration(context.Context, string) (time.Duration, error) {
	return d.duration, nil
}

// script drives a fakeRecognizer: each entry of results is emitted at an
// utterance boundary, final is returned by FinalResult.
type script struct {
	results []string
	final   string
	err     error
	// block, when set, makes AcceptWaveform wait until it is closed.
	block chan struct{}
}

type fakeRecognizer struct {
	s       script
	pending string
	chunks  []int
	closed  *atomic.Int32
}

func (r *fakeRecognizer) AcceptWaveform(pcm []byte) bool {
	if r.s.block != nil {
		<-r.s.block
	}
	r.chunks = append(r.chunks, len(pcm))
	if len(r.s.results) == 0 {
		return false
	}
	r.pending, r.s.results = r.s.results[0], r.s.results[1:]
	return true
}

func (r *fakeRecognizer) Result() string      { return r.pending }
func (r *fakeRecognizer) FinalResult() string { return r.s.final }

func (r *fakeRecognizer) Close() error {
	r.closed.Add(1)
	return nil
}

type fakeFactory struct {
	scripts map[string]script
	closed  atomic.Int32
}

func (f *fakeFactory) NewRecognizer(modelDir string, _ float64) (ports.Recognizer, error) {
	s, ok := f.scripts[modelDir]
	if !ok {
		return nil, errors.New("no such model")
	}
	if s.err != nil {
		return nil, s.err
	}
	s.results = append([]string(nil), s.results...)
	return &fakeRecognizer{s: s, closed: &f.closed}, nil
}

type fakePunctuator struct {
	preds []types.PuncToken
	err   error
	got   string
}

func (p *fakePunctuator) Predict(_ context.Context, text string) ([]types.PuncToken, error) {
	p.got = text
	return p.preds, p.err
}

func utterance(words ...types.Word) string {
	b, err := json.Marshal(types.Utterance{Words: words})
	if err != nil {
		panic(err)
	}
	return string(b)
}

func word(w string, start, end, conf float64) types.Word {
	return types.Word{Word: w, Start: start, End: end, Conf: conf}
}

// confident returns a recognizer script whose every word has confidence conf.
func confident(conf float64) script {
	return script{
		results: []string{utterance(word("one", 0, 0.5, conf), word("two", 0.5, 1, conf))},
		final:   utterance(word("three", 1, 1.5, conf)),
	}
}
