package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
)

// Models controls where model identifiers are looked up.
type Models struct {
	SearchDirs []string `toml:"search_dirs"`
	// LanguageDir backs the deprecated --language flag.
	LanguageDir string `toml:"language_dir"`
}

// Probe controls automatic model selection.
type Probe struct {
	Seconds     int `toml:"seconds"`
	Parallelism int `toml:"parallelism"`
	// TimeoutSeconds bounds one candidate probe. Zero derives it from Seconds.
	TimeoutSeconds int `toml:"timeout_seconds"`
}

type Captions struct {
	MaxCharsPerLine     int `toml:"max_chars_per_line"`
	MaxLinesInParagraph int `toml:"max_lines_in_paragraph"`
}

// Punctuation configures the recasepunc helper and the mismatch policy.
type Punctuation struct {
	Command []string `toml:"command"`
	// Strict makes an alignment mismatch fatal instead of falling back to the
	// unpunctuated words.
	Strict bool `toml:"strict"`
}

type Tools struct {
	FFmpeg     string `toml:"ffmpeg"`
	FFprobe    string `toml:"ffprobe"`
	ChunkBytes int    `toml:"chunk_bytes"`
}

type Logging struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
}

type Run struct {
	TimeoutMinutes int `toml:"timeout_minutes"`
}

// Config encapsulates all configuration values for voskcap.
type Config struct {
	Models      Models      `toml:"models"`
	Probe       Probe       `toml:"probe"`
	Captions    Captions    `toml:"captions"`
	Punctuation Punctuation `toml:"punctuation"`
	Tools       Tools       `toml:"tools"`
	Logging     Logging     `toml:"logging"`
	Run         Run         `toml:"run"`
}

// Load reads the config file at path, or the default location when path is
// empty. A missing default file is fine; a missing explicit file is not. The
// returned config has env overrides applied and paths expanded.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolved, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}
	if exists {
		file, err := os.Open(resolved)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		dec := toml.NewDecoder(file)
		dec.DisallowUnknownFields()
		if err := dec.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config %s: %w", resolved, err)
		}
	}

	cfg.applyEnv(os.LookupEnv)
	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}
	return &cfg, resolved, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	explicit := strings.TrimSpace(path) != ""
	if !explicit {
		path = defaultConfigPath
	}
	expanded, err := expandPath(path)
	if err != nil {
		return "", false, err
	}
	info, err := os.Stat(expanded)
	switch {
	case err == nil && info.IsDir():
		return "", false, fmt.Errorf("config %s is a directory", expanded)
	case err == nil:
		return expanded, true, nil
	case errors.Is(err, fs.ErrNotExist) && !explicit:
		return expanded, false, nil
	default:
		return "", false, fmt.Errorf("stat config: %w", err)
	}
}

// ProbeDuration is the length of the probe window.
func (c *Config) ProbeDuration() time.Duration {
	return time.Duration(c.Probe.Seconds) * time.Second
}

// ProbeTimeout bounds a single candidate probe, including model load.
func (c *Config) ProbeTimeout() time.Duration {
	if c.Probe.TimeoutSeconds > 0 {
		return time.Duration(c.Probe.TimeoutSeconds) * time.Second
	}
	return 4*c.ProbeDuration() + 30*time.Second
}

func (c *Config) RunTimeout() time.Duration {
	return time.Duration(c.Run.TimeoutMinutes) * time.Minute
}

func expandPath(value string) (string, error) {
	if value == "" {
		return value, nil
	}
	if strings.HasPrefix(value, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if value == "~" {
			value = home
		} else if len(value) > 1 && (value[1] == '/' || value[1] == '\\') {
			value = filepath.Join(home, value[2:])
		}
	}
	abs, err := filepath.Abs(filepath.Clean(value))
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", value, err)
	}
	return abs, nil
}
