package cli

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

func Main() {
	_ = godotenv.Load() // best-effort: load .env if present

	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

const languageDeprecation = "use --model instead; --model wins when both are given"

func newRootCommand() *cobra.Command {
	g := &globalFlags{}
	f := &transcribeFlags{}

	root := &cobra.Command{
		Use:   "voskcap -i <media> [-o <out.vtt>] [-m <model>|auto]...",
		Short: "Create WebVTT captions from a media file with vosk",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runTranscribe(cmd, g, f)
		},
	}
	root.SetOut(os.Stdout)
	root.SetErr(os.Stderr)
	root.SilenceUsage = true
	root.SilenceErrors = true

	root.PersistentFlags().StringVar(&g.config, "config", "", "Configuration file path")
	root.PersistentFlags().StringVar(&g.logLevel, "log-level", "", "Log level (debug, info, warn, error)")
	root.PersistentFlags().StringVar(&g.logFormat, "log-format", "", "Log format (auto, console, json)")

	root.Flags().StringVarP(&f.input, "input", "i", "", "Media file to transcribe")
	root.Flags().StringVarP(&f.output, "output", "o", "", "Output WebVTT file (default: input with .vtt extension)")
	root.Flags().StringArrayVarP(&f.models, "model", "m", nil, "Model name, path or \"auto\"; repeat to let the best one win")
	root.Flags().StringVarP(&f.language, "language", "l", "", "Language code mapped to a model directory; ignored when --model is set")
	root.Flags().StringVarP(&f.punctuation, "punctuation", "p", "", "Punctuation model name or path")
	root.Flags().IntVar(&f.probeSeconds, "probe-seconds", 0, "Length of the model probe window in seconds")
	root.Flags().BoolVar(&f.strict, "strict-punctuation", false, "Fail when punctuation cannot be aligned with the words")
	_ = root.MarkFlagRequired("input")
	_ = root.Flags().MarkDeprecated("language", languageDeprecation)

	root.AddCommand(newModelsCommand(g))
	root.AddCommand(newProbeCommand(g))
	return root
}
