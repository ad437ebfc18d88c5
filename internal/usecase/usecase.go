package usecase

import (
	"log/slog"

	"github.com/forPelevin/voskcap/internal/ports"
)

type Deps struct {
	Decoder     ports.MediaDecoder
	Recognizers ports.RecognizerFactory
	// Punctuator is optional; nil skips case and punctuation restoration.
	Punctuator ports.Punctuator
	Logger     *slog.Logger
}

type Usecase struct{ d Deps }

func New(d Deps) Usecase { return Usecase{d: d} }
