//go:build integration

package itest

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strings"
	"testing"
	"time"
)

const cliTimeout = 30 * time.Second

type robustCase struct {
	name            string
	args            func(t *testing.T, repoRoot string) []string
	env             map[string]string
	wantContains    []string
	wantNotContains []string
}

type cliRunResult struct {
	exitCode int
	output   string
}

// fixtures lays out an isolated HOME with one empty model directory and a
// file that is not media.
type fixtures struct {
	home      string
	modelsDir string
	notMedia  string
}

func newFixtures(t *testing.T) fixtures {
	t.Helper()
	tmp := t.TempDir()
	f := fixtures{
		home:      filepath.Join(tmp, "home"),
		modelsDir: filepath.Join(tmp, "models"),
		notMedia:  filepath.Join(tmp, "not-media.txt"),
	}
	for _, dir := range []string{f.home, filepath.Join(f.modelsDir, "en-small")} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			t.Fatalf("create fixture dir: %v", err)
		}
	}
	if err := os.WriteFile(f.notMedia, []byte("definitely not audio"), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	return f
}

func (f fixtures) env() map[string]string {
	return map[string]string{
		"HOME":               f.home,
		"VOSKCAP_MODEL_DIRS": f.modelsDir,
		"VOSKCAP_LOG_FORMAT": "console",
	}
}

func TestRobustness_ArgsValidation(t *testing.T) {
	repoRoot := mustRepoRoot(t)
	fx := newFixtures(t)

	cases := []robustCase{
		{
			name:         "no args",
			args:         staticArgs(),
			wantContains: []string{`required flag(s) "input" not set`},
		},
		{
			name:         "positional arg",
			args:         staticArgs("-i", fx.notMedia, "extra"),
			wantContains: []string{`unknown command "extra" for "voskcap"`},
		},
		{
			name:         "unknown flag",
			args:         staticArgs("-i", fx.notMedia, "--wat"),
			wantContains: []string{"unknown flag: --wat"},
		},
		{
			name:         "probe seconds non int",
			args:         staticArgs("-i", fx.notMedia, "--probe-seconds", "nope"),
			wantContains: []string{`invalid argument "nope" for "--probe-seconds"`},
		},
		{
			name:         "probe seconds zero",
			args:         staticArgs("-i", fx.notMedia, "--probe-seconds", "0"),
			wantContains: []string{"config: probe.seconds must be > 0"},
		},
		{
			name:         "bad log format",
			args:         staticArgs("-i", fx.notMedia, "--log-format", "xml"),
			wantContains: []string{`logging.format: unsupported value "xml"`},
		},
		{
			name:         "missing explicit config",
			args:         staticArgs("-i", fx.notMedia, "--config", filepath.Join(fx.home, "nope.toml")),
			wantContains: []string{"config: stat config:"},
		},
		{
			name:         "probe requires input",
			args:         staticArgs("probe"),
			wantContains: []string{`required flag(s) "input" not set`},
		},
	}

	runRobustCases(t, repoRoot, fx.env(), cases)
}

func TestRobustness_ModelsAndInput(t *testing.T) {
	repoRoot := mustRepoRoot(t)
	fx := newFixtures(t)

	cases := []robustCase{
		{
			name:         "missing input path",
			args:         staticArgs("-i", filepath.Join(fx.home, "does-not-exist.mp4")),
			wantContains: []string{"config: stat input:"},
		},
		{
			name:         "unknown model",
			args:         staticArgs("-i", fx.notMedia, "-m", "klingon"),
			wantContains: []string{"model not found", "klingon"},
		},
		{
			name:         "absolute model path missing",
			args:         staticArgs("-i", fx.notMedia, "-m", filepath.Join(fx.home, "gone")),
			wantContains: []string{"model not found", "does not exist"},
		},
		{
			name:         "unknown punctuation model",
			args:         staticArgs("-i", fx.notMedia, "-m", "en-small", "-p", "nope"),
			wantContains: []string{"punctuation model: model not found"},
		},
		{
			name: "auto with empty search dir",
			args: staticArgs("-i", fx.notMedia, "-m", "auto"),
			env: map[string]string{
				"VOSKCAP_MODEL_DIRS": filepath.Join(fx.home),
			},
			wantContains: []string{"model not found: no models found in"},
		},
		{
			name:         "deprecated language flag",
			args:         staticArgs("-i", fx.notMedia, "-l", "xx"),
			wantContains: []string{"Flag --language has been deprecated", "model not found"},
		},
		{
			name:            "recognizer unavailable in default build",
			args:            staticArgs("-i", fx.notMedia, "-m", "en-small"),
			wantContains:    []string{"vosk support not compiled in"},
			wantNotContains: []string{"model not found"},
		},
	}

	runRobustCases(t, repoRoot, fx.env(), cases)
}

func TestModelsCommand_ListsModels(t *testing.T) {
	repoRoot := mustRepoRoot(t)
	fx := newFixtures(t)
	if err := os.WriteFile(filepath.Join(fx.modelsDir, "en-small", "final.mdl"), make([]byte, 2048), 0o644); err != nil {
		t.Fatal(err)
	}

	res := runCLI(t, repoRoot, []string{"models"}, fx.env())
	if res.exitCode != 0 {
		t.Fatalf("expected exit code 0, got %d\noutput:\n%s", res.exitCode, res.output)
	}
	for _, want := range []string{"NAME", "en-small", "2.0 kB"} {
		if !strings.Contains(res.output, want) {
			t.Fatalf("expected output to contain %q\noutput:\n%s", want, res.output)
		}
	}
}

func runRobustCases(t *testing.T, repoRoot string, baseEnv map[string]string, cases []robustCase) {
	t.Helper()
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			res := runCLI(t, repoRoot, tc.args(t, repoRoot), mergeMaps(baseEnv, tc.env))
			if res.exitCode == 0 {
				t.Fatalf("expected non-zero exit code, got 0\noutput:\n%s", res.output)
			}
			for _, want := range tc.wantContains {
				if !strings.Contains(res.output, want) {
					t.Fatalf("expected output to contain %q\noutput:\n%s", want, res.output)
				}
			}
			for _, notWant := range tc.wantNotContains {
				if strings.Contains(res.output, notWant) {
					t.Fatalf("expected output to not contain %q\noutput:\n%s", notWant, res.output)
				}
			}
		})
	}
}

func runCLI(t *testing.T, repoRoot string, args []string, env map[string]string) cliRunResult {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), cliTimeout)
	defer cancel()

	cmdArgs := append([]string{"run", "./cmd/voskcap"}, args...)
	cmd := exec.CommandContext(ctx, "go", cmdArgs...)
	cmd.Dir = repoRoot
	cmd.Env = mergeEnv(
		os.Environ(),
		map[string]string{
			"NO_COLOR": "1",
			"TERM":     "dumb",
		},
		env,
	)

	out, err := cmd.CombinedOutput()
	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		t.Fatalf("command timed out after %s: go %s", cliTimeout, strings.Join(cmdArgs, " "))
	}

	res := cliRunResult{output: string(out)}
	if err == nil {
		res.exitCode = 0
		return res
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		res.exitCode = exitErr.ExitCode()
		return res
	}

	t.Fatalf("run command: %v\noutput:\n%s", err, string(out))
	return cliRunResult{}
}

func mergeEnv(base []string, overrides ...map[string]string) []string {
	env := make(map[string]string, len(base))
	for _, kv := range base {
		i := strings.IndexByte(kv, '=')
		if i <= 0 {
			continue
		}
		env[kv[:i]] = kv[i+1:]
	}

	for _, set := range overrides {
		for k, v := range set {
			env[k] = v
		}
	}

	out := make([]string, 0, len(env))
	for k, v := range env {
		out = append(out, fmt.Sprintf("%s=%s", k, v))
	}
	sort.Strings(out)
	return out
}

func mergeMaps(sets ...map[string]string) map[string]string {
	out := map[string]string{}
	for _, set := range sets {
		for k, v := range set {
			out[k] = v
		}
	}
	return out
}

func mustRepoRoot(t *testing.T) string {
	t.Helper()

	repoRoot, err := findRepoRoot()
	if err != nil {
		t.Fatalf("repo root: %v", err)
	}
	return repoRoot
}

func staticArgs(args ...string) func(t *testing.T, _ string) []string {
	clone := append([]string(nil), args...)
	return func(t *testing.T, _ string) []string {
		t.Helper()
		return append([]string(nil), clone...)
	}
}
