package config

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Environment overrides applied after the config file.
const (
	EnvModelDirs          = "VOSKCAP_MODEL_DIRS"
	EnvFFmpeg             = "VOSKCAP_FFMPEG"
	EnvFFprobe            = "VOSKCAP_FFPROBE"
	EnvLogLevel           = "VOSKCAP_LOG_LEVEL"
	EnvLogFormat          = "VOSKCAP_LOG_FORMAT"
	EnvPunctuationCommand = "VOSKCAP_PUNCTUATION_COMMAND"
)

func (c *Config) applyEnv(lookup func(string) (string, bool)) {
	get := func(key string) (string, bool) {
		v, ok := lookup(key)
		v = strings.TrimSpace(v)
		return v, ok && v != ""
	}
	if v, ok := get(EnvModelDirs); ok {
		c.Models.SearchDirs = filepath.SplitList(v)
	}
	if v, ok := get(EnvFFmpeg); ok {
		c.Tools.FFmpeg = v
	}
	if v, ok := get(EnvFFprobe); ok {
		c.Tools.FFprobe = v
	}
	if v, ok := get(EnvLogLevel); ok {
		c.Logging.Level = v
	}
	if v, ok := get(EnvLogFormat); ok {
		c.Logging.Format = v
	}
	if v, ok := get(EnvPunctuationCommand); ok {
		c.Punctuation.Command = strings.Fields(v)
	}
}

func (c *Config) normalize() error {
	src := c.Models.SearchDirs
	if len(src) == 0 {
		src = defaultSearchDirs
	}
	dirs := make([]string, 0, len(src))
	for _, d := range src {
		if strings.TrimSpace(d) == "" {
			continue
		}
		expanded, err := expandPath(strings.TrimSpace(d))
		if err != nil {
			return fmt.Errorf("models.search_dirs: %w", err)
		}
		dirs = append(dirs, expanded)
	}
	if len(dirs) == 0 {
		return fmt.Errorf("models.search_dirs: no usable directory in %q", src)
	}
	c.Models.SearchDirs = dirs

	var err error
	if strings.TrimSpace(c.Models.LanguageDir) == "" {
		c.Models.LanguageDir = defaultLanguageDir
	}
	if c.Models.LanguageDir, err = expandPath(c.Models.LanguageDir); err != nil {
		return fmt.Errorf("models.language_dir: %w", err)
	}

	c.Tools.FFmpeg = strings.TrimSpace(c.Tools.FFmpeg)
	if c.Tools.FFmpeg == "" {
		c.Tools.FFmpeg = defaultFFmpeg
	}
	c.Tools.FFprobe = strings.TrimSpace(c.Tools.FFprobe)
	if c.Tools.FFprobe == "" {
		c.Tools.FFprobe = defaultFFprobe
	}

	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	return nil
}

// ApplyOverrides lets callers (flags) replace values after Load and re-run
// validation.
func (c *Config) ApplyOverrides(apply func(*Config)) error {
	apply(c)
	if err := c.normalize(); err != nil {
		return err
	}
	return c.Validate()
}
