package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/forPelevin/voskcap/internal/logging"
)

// Validate reports the first invalid setting.
func (c *Config) Validate() error {
	if c.Probe.Seconds <= 0 {
		return errors.New("probe.seconds must be > 0")
	}
	if c.Probe.Parallelism <= 0 {
		return errors.New("probe.parallelism must be > 0")
	}
	if c.Probe.TimeoutSeconds < 0 {
		return errors.New("probe.timeout_seconds must be >= 0")
	}
	if c.Captions.MaxCharsPerLine <= 0 {
		return errors.New("captions.max_chars_per_line must be > 0")
	}
	if c.Captions.MaxLinesInParagraph <= 0 {
		return errors.New("captions.max_lines_in_paragraph must be > 0")
	}
	if c.Tools.ChunkBytes <= 0 || c.Tools.ChunkBytes%2 != 0 {
		return fmt.Errorf("tools.chunk_bytes must be a positive even number, got %d", c.Tools.ChunkBytes)
	}
	if c.Run.TimeoutMinutes <= 0 {
		return errors.New("run.timeout_minutes must be > 0")
	}
	if !logging.ValidFormat(c.Logging.Format) {
		return fmt.Errorf("logging.format: unsupported value %q", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("logging.level: unsupported value %q", c.Logging.Level)
	}
	if len(c.Punctuation.Command) > 0 && strings.TrimSpace(c.Punctuation.Command[0]) == "" {
		return errors.New("punctuation.command: empty executable")
	}
	return nil
}
