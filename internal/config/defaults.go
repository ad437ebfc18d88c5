package config

const (
	defaultConfigPath          = "~/.config/voskcap/config.toml"
	defaultLanguageDir         = "/usr/share/vosk/language"
	defaultProbeSeconds        = 30
	defaultProbeParallelism    = 2
	defaultMaxCharsPerLine     = 35
	defaultMaxLinesInParagraph = 2
	defaultPunctuationCommand  = "recasepunc-labels"
	defaultFFmpeg              = "ffmpeg"
	defaultFFprobe             = "ffprobe"
	defaultChunkBytes          = 4000
	defaultLogLevel            = "info"
	defaultLogFormat           = "auto"
	defaultRunTimeoutMinutes   = 180
)

var defaultSearchDirs = []string{"./models", "/usr/share/vosk/models"}

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Models: Models{
			SearchDirs:  append([]string(nil), defaultSearchDirs...),
			LanguageDir: defaultLanguageDir,
		},
		Probe: Probe{
			Seconds:     defaultProbeSeconds,
			Parallelism: defaultProbeParallelism,
		},
		Captions: Captions{
			MaxCharsPerLine:     defaultMaxCharsPerLine,
			MaxLinesInParagraph: defaultMaxLinesInParagraph,
		},
		Punctuation: Punctuation{
			Command: []string{defaultPunctuationCommand},
		},
		Tools: Tools{
			FFmpeg:     defaultFFmpeg,
			FFprobe:    defaultFFprobe,
			ChunkBytes: defaultChunkBytes,
		},
		Logging: Logging{
			Level:  defaultLogLevel,
			Format: defaultLogFormat,
		},
		Run: Run{
			TimeoutMinutes: defaultRunTimeoutMinutes,
		},
	}
}
