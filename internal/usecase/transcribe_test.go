package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/forPelevin/voskcap/internal/domain/captions"
	"github.com/forPelevin/voskcap/internal/types"
)

func helloWorld() script {
	return script{
		results: []string{utterance(word("hello", 0, 0.4, 0.9))},
		final:   utterance(word("world", 0.5, 0.9, 0.7)),
	}
}

func TestTranscribe_RawWords(t *testing.T) {
	f := &fakeFactory{scripts: map[string]script{"/m/en": helloWorld()}}
	dec := &fakeDecoder{pcmBytes: 8000}
	uc := New(Deps{Decoder: dec, Recognizers: f})

	res, err := uc.Transcribe(context.Background(), TranscribeInput{Input: "in.mp4", ModelPath: "/m/en", Limits: captions.DefaultLimits()})
	if err != nil {
		t.Fatalf("Transcribe returned error: %v", err)
	}

	want, _ := captions.Segment([]types.Word{word("hello", 0, 0.4, 0.9), word("world", 0.5, 0.9, 0.7)}, captions.DefaultLimits())
	if got, exp := captions.RenderWebVTT(res.Track), captions.RenderWebVTT(want); got != exp {
		t.Fatalf("track differs from direct segmentation:\n%s\nvs\n%s", got, exp)
	}
	if res.Words != 2 || res.Utterances != 2 || res.PCMBytes != 8000 || res.Punctuated {
		t.Fatalf("unexpected result: %+v", res)
	}
	if res.ConfidenceErr != nil || res.Confidence < 0.79 || res.Confidence > 0.81 {
		t.Fatalf("unexpected confidence: %v %v", res.Confidence, res.ConfidenceErr)
	}
	if len(dec.windows) != 1 || dec.windows[0] != (types.Window{}) {
		t.Fatalf("expected a single whole-file decode, got %v", dec.windows)
	}
	if f.closed.Load() != 1 {
		t.Fatalf("expected the recognizer to be closed once, got %d", f.closed.Load())
	}
}

func TestTranscribe_Empty(t *testing.T) {
	f := &fakeFactory{scripts: map[string]script{"/m/en": {final: `{"text": ""}`}}}
	uc := New(Deps{Decoder: &fakeDecoder{pcmBytes: 100}, Recognizers: f, Punctuator: &fakePunctuator{err: errors.New("must not run")}})

	res, err := uc.Transcribe(context.Background(), TranscribeInput{ModelPath: "/m/en"})
	if err != nil {
		t.Fatalf("Transcribe returned error: %v", err)
	}
	if len(res.Track.Cues) != 0 || res.Words != 0 {
		t.Fatalf("expected an empty track, got %+v", res)
	}
	if !errors.Is(res.ConfidenceErr, types.ErrEmptyTranscription) {
		t.Fatalf("expected ErrEmptyTranscription, got %v", res.ConfidenceErr)
	}
}

func TestTranscribe_Punctuation(t *testing.T) {
	aligned := []types.PuncToken{
		{Token: "hello", Case: "CAPITALIZE", Punc: "COMMA"},
		{Token: "world", Case: "LOWER", Punc: "PERIOD"},
	}
	short := []types.PuncToken{
		{Token: "hello", Case: "CAPITALIZE", Punc: "O"},
		{Token: "#world", Case: "LOWER", Punc: "PERIOD"},
	}

	cases := []struct {
		name       string
		punct      *fakePunctuator
		strict     bool
		wantText   string
		wantPunct  bool
		wantErr    error
		wantAnyErr bool
	}{
		{name: "aligned", punct: &fakePunctuator{preds: aligned}, wantText: "Hello, world.", wantPunct: true},
		{name: "mismatch falls back", punct: &fakePunctuator{preds: short}, wantText: "hello world"},
		{name: "mismatch strict", punct: &fakePunctuator{preds: short}, strict: true, wantErr: types.ErrAlignmentMismatch},
		{name: "helper failure", punct: &fakePunctuator{err: errors.New("exit status 1")}, wantAnyErr: true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := &fakeFactory{scripts: map[string]script{"/m/en": helloWorld()}}
			uc := New(Deps{Decoder: &fakeDecoder{pcmBytes: 10}, Recognizers: f, Punctuator: tc.punct})

			res, err := uc.Transcribe(context.Background(), TranscribeInput{ModelPath: "/m/en", StrictPunctuation: tc.strict})
			switch {
			case tc.wantErr != nil:
				if !errors.Is(err, tc.wantErr) {
					t.Fatalf("expected %v, got %v", tc.wantErr, err)
				}
				return
			case tc.wantAnyErr:
				if err == nil {
					t.Fatal("expected error")
				}
				return
			case err != nil:
				t.Fatalf("Transcribe returned error: %v", err)
			}

			if tc.punct.got != "hello world" {
				t.Fatalf("punctuator got %q", tc.punct.got)
			}
			if res.Punctuated != tc.wantPunct {
				t.Fatalf("Punctuated = %v, want %v", res.Punctuated, tc.wantPunct)
			}
			if len(res.Track.Cues) != 1 {
				t.Fatalf("expected one cue, got %d", len(res.Track.Cues))
			}
			cue := res.Track.Cues[0]
			if got := captions.CueText(cue); got != tc.wantText {
				t.Fatalf("cue text = %q, want %q", got, tc.wantText)
			}
			if cue.Start != 0 || cue.End != 0.9 {
				t.Fatalf("timings changed: %+v", cue)
			}
		})
	}
}

func TestTranscribe_ModelLoadFailure(t *testing.T) {
	f := &fakeFactory{scripts: map[string]script{"/m/en": {err: errors.New("bad model")}}}
	uc := New(Deps{Decoder: &fakeDecoder{}, Recognizers: f})
	if _, err := uc.Transcribe(context.Background(), TranscribeInput{ModelPath: "/m/en"}); err == nil {
		t.Fatal("expected error")
	}
}
