package ffmpeg

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os/exec"
	"strconv"
	"strings"
	"time"

	"github.com/forPelevin/voskcap/internal/ports"
	"github.com/forPelevin/voskcap/internal/types"
)

type Adapter struct {
	ffmpeg  string
	ffprobe string
}

func New(ffmpegPath, ffprobePath string) *Adapter {
	if ffmpegPath == "" {
		ffmpegPath = "ffmpeg"
	}
	if ffprobePath == "" {
		ffprobePath = "ffprobe"
	}
	return &Adapter{ffmpeg: ffmpegPath, ffprobe: ffprobePath}
}

// DecodePCM starts ffmpeg and streams the selected window of input as 16 kHz
// mono s16le. Closing the stream stops ffmpeg; a failed decode is reported by
// Close once the stream has been read to EOF.
func (a *Adapter) DecodePCM(ctx context.Context, input string, w types.Window) (io.ReadCloser, error) {
	ctx, cancel := context.WithCancel(ctx)
	cmd := exec.CommandContext(ctx, a.ffmpeg, decodeArgs(input, w)...) //nolint:gosec
	stderr := &bytes.Buffer{}
	cmd.Stderr = stderr
	out, err := cmd.StdoutPipe()
	if err != nil {
		cancel()
		return nil, fmt.Errorf("ffmpeg decode: %w", err)
	}
	if err := cmd.Start(); err != nil {
		cancel()
		return nil, fmt.Errorf("ffmpeg decode: %w", err)
	}
	return &pcmStream{r: out, cmd: cmd, stderr: stderr, cancel: cancel}, nil
}

func (a *Adapter) ProbeDuration(ctx context.Context, input string) (time.Duration, error) {
	cmd := exec.CommandContext(ctx, a.ffprobe,
		"-v", "error",
		"-show_entries", "format=duration",
		"-of", "default=noprint_wrappers=1:nokey=1",
		input,
	)
	b, err := cmd.CombinedOutput()
	if err != nil {
		return 0, fmt.Errorf("ffprobe duration: %w\n%s", err, string(b))
	}
	s := strings.TrimSpace(string(b))
	sec, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("parse duration %q: %w", s, err)
	}
	return time.Duration(sec * float64(time.Second)), nil
}

func decodeArgs(input string, w types.Window) []string {
	args := []string{"-nostdin", "-loglevel", "error"}
	if w.Seek > 0 {
		args = append(args, "-ss", fmtSeconds(w.Seek))
	}
	args = append(args, "-i", input)
	if w.Duration > 0 {
		args = append(args, "-t", fmtSeconds(w.Duration))
	}
	return append(args,
		"-vn",
		"-ar", strconv.Itoa(ports.SampleRate),
		"-ac", "1",
		"-f", "s16le",
		"-",
	)
}

type pcmStream struct {
	r      io.ReadCloser
	cmd    *exec.Cmd
	stderr *bytes.Buffer
	cancel context.CancelFunc
	eof    bool
}

func (s *pcmStream) Read(p []byte) (int, error) {
	n, err := s.r.Read(p)
	if err == io.EOF {
		s.eof = true
	}
	return n, err
}

func (s *pcmStream) Close() error {
	if !s.eof {
		// stopped early: the process is killed, its exit status is noise
		s.cancel()
		_ = s.cmd.Wait()
		return nil
	}
	err := s.cmd.Wait()
	s.cancel()
	if err != nil {
		return fmt.Errorf("ffmpeg decode: %w\n%s", err, strings.TrimSpace(s.stderr.String()))
	}
	return nil
}

func fmtSeconds(d time.Duration) string {
	sec := float64(d) / float64(time.Second)
	return strconv.FormatFloat(sec, 'f', 3, 64)
}

var _ ports.MediaDecoder = (*Adapter)(nil)
