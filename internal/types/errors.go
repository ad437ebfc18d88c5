package types

import "errors"

var (
	ErrModelNotFound      = errors.New("model not found")
	ErrNoUsableModel      = errors.New("no usable model")
	ErrAlignmentMismatch  = errors.New("punctuation alignment mismatch")
	ErrEmptyTranscription = errors.New("empty transcription")
)
