package usecase

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/forPelevin/voskcap/internal/domain/recognition"
	"github.com/forPelevin/voskcap/internal/ports"
	"github.com/forPelevin/voskcap/internal/types"
)

const defaultChunkBytes = 4000

// recognize feeds pcm to rec in fixed-size chunks and gathers every
// utterance, ending with the recognizer's final flush. It returns the number
// of PCM bytes consumed.
func recognize(ctx context.Context, rec ports.Recognizer, pcm io.Reader, chunkBytes int) (types.Run, int64, error) {
	if chunkBytes <= 0 {
		chunkBytes = defaultChunkBytes
	}
	buf := make([]byte, chunkBytes)

	var (
		run   types.Run
		total int64
	)
	for {
		if err := ctx.Err(); err != nil {
			return run, total, err
		}
		n, err := io.ReadFull(pcm, buf)
		if n > 0 {
			total += int64(n)
			if rec.AcceptWaveform(buf[:n]) {
				u, perr := recognition.ParseUtterance(rec.Result())
				if perr != nil {
					return run, total, perr
				}
				run.Utterances = append(run.Utterances, u)
			}
		}
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			break
		}
		if err != nil {
			return run, total, fmt.Errorf("read pcm: %w", err)
		}
	}
	// a killed decoder looks like a clean EOF
	if err := ctx.Err(); err != nil {
		return run, total, err
	}

	u, err := recognition.ParseUtterance(rec.FinalResult())
	if err != nil {
		return run, total, err
	}
	run.Utterances = append(run.Utterances, u)
	return run, total, nil
}

// recognizeWindow decodes a window of input and recognizes it with a fresh
// recognizer for modelPath.
func (u Usecase) recognizeWindow(ctx context.Context, input, modelPath string, w types.Window, chunkBytes int) (types.Run, int64, error) {
	rec, err := u.d.Recognizers.NewRecognizer(modelPath, ports.SampleRate)
	if err != nil {
		return types.Run{}, 0, fmt.Errorf("load model %s: %w", modelPath, err)
	}
	defer rec.Close()

	pcm, err := u.d.Decoder.DecodePCM(ctx, input, w)
	if err != nil {
		return types.Run{}, 0, err
	}
	run, n, err := recognize(ctx, rec, pcm, chunkBytes)
	closeErr := pcm.Close()
	if err != nil {
		return run, n, err
	}
	if closeErr != nil {
		return run, n, closeErr
	}
	return run, n, nil
}
