// Package recasepunc runs a recasepunc label helper as a subprocess.
//
// The helper is invoked as `<command...> --checkpoint <dir>`, reads the text to
// punctuate on stdin and prints a JSON array of labelled tokens:
//
//	[{"token": "hel", "case": "CAPITALIZE", "punc": "O"}, {"token": "##lo", "case": "OTHER", "punc": "PERIOD"}]
package recasepunc

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/forPelevin/voskcap/internal/ports"
	"github.com/forPelevin/voskcap/internal/types"
)

type Adapter struct {
	command    []string
	checkpoint string
}

// New returns an adapter for the punctuation model rooted at modelDir. The
// checkpoint lives in modelDir/checkpoint.
func New(command []string, modelDir string) *Adapter {
	return &Adapter{
		command:    append([]string(nil), command...),
		checkpoint: filepath.Join(modelDir, "checkpoint"),
	}
}

func (a *Adapter) Predict(ctx context.Context, text string) ([]types.PuncToken, error) {
	if len(a.command) == 0 || strings.TrimSpace(a.command[0]) == "" {
		return nil, errors.New("recasepunc: helper command is not configured")
	}
	args := append(append([]string(nil), a.command[1:]...), "--checkpoint", a.checkpoint)
	cmd := exec.CommandContext(ctx, a.command[0], args...) //nolint:gosec
	cmd.Stdin = strings.NewReader(text)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	out, err := cmd.Output()
	if err != nil {
		return nil, fmt.Errorf("recasepunc failed: %w\n%s", err, strings.TrimSpace(stderr.String()))
	}

	var toks []types.PuncToken
	if err := json.Unmarshal(bytes.TrimSpace(out), &toks); err != nil {
		return nil, fmt.Errorf("parse recasepunc output: %w", err)
	}
	return toks, nil
}

var _ ports.Punctuator = (*Adapter)(nil)
