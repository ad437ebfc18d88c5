package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/forPelevin/voskcap/internal/domain/captions"
	"github.com/forPelevin/voskcap/internal/domain/punctuation"
	"github.com/forPelevin/voskcap/internal/logging"
	"github.com/forPelevin/voskcap/internal/types"
)

type TranscribeInput struct {
	Input      string
	ModelPath  string
	Limits     captions.Limits
	ChunkBytes int
	// StrictPunctuation turns an alignment mismatch into a failure instead of
	// falling back to the raw recognized words.
	StrictPunctuation bool
}

type TranscribeResult struct {
	Track      types.Track
	Words      int
	Utterances int
	// Confidence is meaningful only when ConfidenceErr is nil.
	Confidence    float64
	ConfidenceErr error
	Punctuated    bool
	PCMBytes      int64
}

// Transcribe recognizes the whole input with the model at in.ModelPath and
// segments the recognized words into caption cues.
func (u Usecase) Transcribe(ctx context.Context, in TranscribeInput) (TranscribeResult, error) {
	log := logging.NewComponentLogger(u.d.Logger, "transcribe")

	log.Info("recognizing", slog.String(logging.FieldModel, in.ModelPath), slog.String("input", in.Input))
	run, n, err := u.recognizeWindow(ctx, in.Input, in.ModelPath, types.Window{}, in.ChunkBytes)
	if err != nil {
		return TranscribeResult{}, err
	}
	res := TranscribeResult{Utterances: len(run.Utterances), PCMBytes: n}

	words := run.Words()
	if u.d.Punctuator != nil && len(words) > 0 {
		restored, err := u.punctuate(ctx, run, words)
		switch {
		case err == nil:
			words = restored
			res.Punctuated = true
		case errors.Is(err, types.ErrAlignmentMismatch) && !in.StrictPunctuation:
			log.Warn("punctuation skipped, keeping raw words", logging.Error(err))
		default:
			return res, err
		}
	}

	track, conf := captions.Segment(words, in.Limits)
	res.Track = track
	res.Words = conf.Count()
	res.Confidence, res.ConfidenceErr = conf.Mean()
	log.Debug("segmented", slog.Int("words", res.Words), slog.Int("cues", len(track.Cues)))
	return res, nil
}

func (u Usecase) punctuate(ctx context.Context, run types.Run, words []types.Word) ([]types.Word, error) {
	preds, err := u.d.Punctuator.Predict(ctx, run.Text())
	if err != nil {
		return nil, fmt.Errorf("restore punctuation: %w", err)
	}
	return punctuation.Reconcile(words, punctuation.RestoreWords(preds))
}
