package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"

	"github.com/forPelevin/voskcap/internal/config"
	"github.com/forPelevin/voskcap/internal/domain/captions"
	"github.com/forPelevin/voskcap/internal/logging"
	"github.com/forPelevin/voskcap/internal/models"
	"github.com/forPelevin/voskcap/internal/ports"
	"github.com/forPelevin/voskcap/internal/ports/adapters/ffmpeg"
	"github.com/forPelevin/voskcap/internal/ports/adapters/recasepunc"
	"github.com/forPelevin/voskcap/internal/ports/adapters/vosk"
	"github.com/forPelevin/voskcap/internal/types"
	"github.com/forPelevin/voskcap/internal/usecase"
)

type Config struct {
	Input  string
	Output string
	// Models are model identifiers or models.Auto. Several identifiers make
	// the selector probe them and keep the best one.
	Models []string
	// Language is the deprecated language code, mapped to a directory under
	// Settings.Models.LanguageDir. Models wins when both are set.
	Language string
	// PunctuationModel enables case and punctuation restoration.
	PunctuationModel string

	Settings *config.Config
	Logger   *slog.Logger
}

func (c Config) Validate() error {
	if c.Input == "" {
		return errors.New("input is empty")
	}
	if _, err := os.Stat(c.Input); err != nil {
		return fmt.Errorf("stat input: %w", err)
	}
	if c.Settings == nil {
		return errors.New("settings are nil")
	}
	return c.Settings.Validate()
}

// OutputPath is the caption file path: Output when set, otherwise the input
// path with a .vtt extension.
func (c Config) OutputPath() string {
	if c.Output != "" {
		return c.Output
	}
	return strings.TrimSuffix(c.Input, filepath.Ext(c.Input)) + ".vtt"
}

type adapters struct {
	decoder     ports.MediaDecoder
	recognizers ports.RecognizerFactory
	punctuator  func(modelDir string) ports.Punctuator
}

func newAdapters(s *config.Config) adapters {
	return adapters{
		decoder:     ffmpeg.New(s.Tools.FFmpeg, s.Tools.FFprobe),
		recognizers: vosk.New(),
		punctuator: func(dir string) ports.Punctuator {
			return recasepunc.New(s.Punctuation.Command, dir)
		},
	}
}

// Run transcribes cfg.Input into a WebVTT caption file.
func Run(ctx context.Context, cfg Config) error {
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	return run(ctx, cfg, newAdapters(cfg.Settings))
}

// Probe runs model selection only.
func Probe(ctx context.Context, cfg Config) (usecase.Selection, error) {
	if err := cfg.Validate(); err != nil {
		return usecase.Selection{}, fmt.Errorf("config: %w", err)
	}
	return probe(ctx, cfg, newAdapters(cfg.Settings))
}

func run(ctx context.Context, cfg Config, a adapters) error {
	started := time.Now()
	log := runLogger(cfg.Logger)
	s := cfg.Settings
	resolver := models.NewResolver(s.Models.SearchDirs)

	deps := usecase.Deps{Decoder: a.decoder, Recognizers: a.recognizers, Logger: log}
	if cfg.PunctuationModel != "" {
		dir, err := resolver.Resolve(cfg.PunctuationModel)
		if err != nil {
			return fmt.Errorf("punctuation model: %w", err)
		}
		log.Info("punctuation enabled", slog.String(logging.FieldModel, dir))
		deps.Punctuator = a.punctuator(dir)
	}
	uc := usecase.New(deps)

	candidates, err := candidateModels(cfg, resolver, log)
	if err != nil {
		return err
	}
	model := candidates[0]
	if len(candidates) > 1 {
		sel, err := uc.SelectModel(ctx, selectInput(cfg, candidates))
		if err != nil {
			return err
		}
		model = sel.Best.Path
		log.Info("model selected", slog.String(logging.FieldModel, model), slog.Float64("score", sel.Best.Score))
	}

	res, err := uc.Transcribe(ctx, usecase.TranscribeInput{
		Input:     cfg.Input,
		ModelPath: model,
		Limits: captions.Limits{
			MaxCharsPerLine:     s.Captions.MaxCharsPerLine,
			MaxLinesInParagraph: s.Captions.MaxLinesInParagraph,
		},
		ChunkBytes:        s.Tools.ChunkBytes,
		StrictPunctuation: s.Punctuation.Strict,
	})
	if err != nil {
		return err
	}

	confidence := "n/a"
	switch {
	case res.ConfidenceErr == nil:
		confidence = fmt.Sprintf("%.3f", res.Confidence)
	case errors.Is(res.ConfidenceErr, types.ErrEmptyTranscription):
		log.Warn("no words recognized, writing an empty caption file", logging.Error(res.ConfidenceErr))
	default:
		return res.ConfidenceErr
	}

	out := cfg.OutputPath()
	if err := writeOutput(ctx, out, []byte(captions.RenderWebVTT(res.Track))); err != nil {
		return err
	}
	log.Info("captions written",
		slog.String("output", out),
		slog.String(logging.FieldModel, model),
		slog.Int("words", res.Words),
		slog.Int("cues", len(res.Track.Cues)),
		slog.String("confidence", confidence),
		slog.Bool("punctuated", res.Punctuated),
		slog.String("pcm", humanize.Bytes(uint64(res.PCMBytes))),
		slog.Duration("elapsed", time.Since(started)),
	)
	return nil
}

func probe(ctx context.Context, cfg Config, a adapters) (usecase.Selection, error) {
	log := runLogger(cfg.Logger)
	resolver := models.NewResolver(cfg.Settings.Models.SearchDirs)
	candidates, err := candidateModels(cfg, resolver, log)
	if err != nil {
		return usecase.Selection{}, err
	}
	uc := usecase.New(usecase.Deps{Decoder: a.decoder, Recognizers: a.recognizers, Logger: log})
	return uc.SelectModel(ctx, selectInput(cfg, candidates))
}

func runLogger(l *slog.Logger) *slog.Logger {
	if l == nil {
		l = logging.NewNop()
	}
	return l.With(slog.String(logging.FieldRunID, uuid.NewString()))
}

// candidateModels turns the configured identifiers into absolute model
// directories in declaration order.
func candidateModels(cfg Config, resolver models.Resolver, log *slog.Logger) ([]string, error) {
	ids := cfg.Models
	switch {
	case len(ids) == 0 && cfg.Language != "":
		mapped := filepath.Join(cfg.Settings.Models.LanguageDir, cfg.Language)
		log.Warn("mapping deprecated language option to a model", slog.String("language", cfg.Language), slog.String(logging.FieldModel, mapped))
		ids = []string{mapped}
	case cfg.Language != "":
		log.Warn("ignoring deprecated language option, models are set", slog.String("language", cfg.Language))
	}
	if len(ids) == 0 {
		ids = []string{models.Auto}
	}
	return resolver.Expand(ids)
}

func selectInput(cfg Config, candidates []string) usecase.SelectInput {
	s := cfg.Settings
	return usecase.SelectInput{
		Input:       cfg.Input,
		Candidates:  candidates,
		Probe:       s.ProbeDuration(),
		Parallelism: s.Probe.Parallelism,
		Timeout:     s.ProbeTimeout(),
		ChunkBytes:  s.Tools.ChunkBytes,
	}
}

// ensure adapters implement ports
var _ ports.MediaDecoder = (*ffmpeg.Adapter)(nil)
var _ ports.RecognizerFactory = (*vosk.Factory)(nil)
var _ ports.Punctuator = (*recasepunc.Adapter)(nil)
