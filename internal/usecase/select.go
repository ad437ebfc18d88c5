package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/forPelevin/voskcap/internal/domain/captions"
	"github.com/forPelevin/voskcap/internal/logging"
	"github.com/forPelevin/voskcap/internal/types"
)

type SelectInput struct {
	Input      string
	Candidates []string
	// Probe is the length of the decoded window each candidate is scored on.
	Probe       time.Duration
	Parallelism int
	// Timeout bounds a single candidate probe. Zero means no bound.
	Timeout    time.Duration
	ChunkBytes int
}

type Selection struct {
	Best types.Candidate
	// Candidates holds every probe outcome in declaration order.
	Candidates []types.Candidate
	Seek       time.Duration
}

// SelectModel probes every candidate on the same window, starting at a tenth
// of the input's duration, and picks the one with the highest mean word
// confidence. Candidates that fail to load or decode are skipped. Ties go to
// the candidate declared first.
func (u Usecase) SelectModel(ctx context.Context, in SelectInput) (Selection, error) {
	log := logging.NewComponentLogger(u.d.Logger, "selector")
	if len(in.Candidates) == 0 {
		return Selection{}, fmt.Errorf("%w: no candidates", types.ErrNoUsableModel)
	}

	total, err := u.d.Decoder.ProbeDuration(ctx, in.Input)
	if err != nil {
		return Selection{}, err
	}
	w := types.Window{Seek: total / 10, Duration: in.Probe}
	log.Info("probing models",
		slog.Int("candidates", len(in.Candidates)),
		slog.Duration("seek", w.Seek),
		slog.Duration("window", w.Duration),
	)

	results := make([]types.Candidate, len(in.Candidates))
	var g errgroup.Group
	g.SetLimit(max(in.Parallelism, 1))
	for i, path := range in.Candidates {
		i, path := i, path
		g.Go(func() error {
			results[i] = u.probe(ctx, in, path, w)
			return nil
		})
	}
	_ = g.Wait()
	if err := ctx.Err(); err != nil {
		return Selection{}, err
	}

	best := -1
	for i, c := range results {
		if !c.Scored {
			log.Warn("candidate skipped", slog.String(logging.FieldModel, c.Path), logging.Error(c.Err))
			continue
		}
		log.Info("candidate scored",
			slog.String(logging.FieldModel, c.Path),
			slog.Float64("score", c.Score),
			slog.Int("words", c.Words),
		)
		if best < 0 || c.Score > results[best].Score {
			best = i
		}
	}
	sel := Selection{Candidates: results, Seek: w.Seek}
	if best < 0 {
		return sel, fmt.Errorf("%w: none of %d candidates recognized any words", types.ErrNoUsableModel, len(results))
	}
	sel.Best = results[best]
	return sel, nil
}

// probe scores one candidate. The recognition runs in its own goroutine so a
// stuck recognizer cannot hold the selection past the timeout; that goroutine
// owns and releases the recognizer.
func (u Usecase) probe(ctx context.Context, in SelectInput, path string, w types.Window) types.Candidate {
	c := types.Candidate{Path: path}
	if in.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, in.Timeout)
		defer cancel()
	}

	type outcome struct {
		run types.Run
		err error
	}
	done := make(chan outcome, 1)
	go func() {
		run, _, err := u.recognizeWindow(ctx, in.Input, path, w, in.ChunkBytes)
		done <- outcome{run: run, err: err}
	}()

	var o outcome
	select {
	case o = <-done:
	case <-ctx.Done():
		c.Err = fmt.Errorf("probe %s: %w", path, ctx.Err())
		return c
	}
	if o.err != nil {
		c.Err = o.err
		return c
	}

	words := o.run.Words()
	mean, err := captions.MeanConfidence(words)
	if err != nil {
		c.Err = err
		return c
	}
	c.Score, c.Scored, c.Words = mean, true, len(words)
	return c
}
