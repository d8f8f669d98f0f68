package runner

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/natefinch/atomic"

	"github.com/goliatone/go-scriptgen/pkg/compose"
)

// ExecError reports a failed execution: the interpreter was missing, the
// artifact could not be written, or the script exited non-zero. Output holds
// the captured standard error when the interpreter ran at all.
type ExecError struct {
	Detail string
	Output string
}

func (e *ExecError) Error() string {
	if e.Output != "" {
		return fmt.Sprintf("runner: %s: %s", e.Detail, strings.TrimSpace(e.Output))
	}
	return fmt.Sprintf("runner: %s", e.Detail)
}

// ManifestFunc renders one dependency declaration into manifest preamble
// lines placed before the script body.
type ManifestFunc func(dep string) string

// RustScriptManifest emits the embedded cargo manifest comment block that
// rust-script reads from the top of a script file.
func RustScriptManifest(dep string) string {
	return fmt.Sprintf("//! ```cargo\n//! [dependencies]\n//! %s \n//! ```\n", dep)
}

// Option customises the runner configuration.
type Option func(*Runner)

// WithInterpreter sets the interpreter binary and any arguments placed before
// the artifact path.
func WithInterpreter(name string, args ...string) Option {
	return func(r *Runner) {
		r.interpreter = name
		r.args = args
	}
}

// WithManifest overrides how dependency declarations are rendered into the
// artifact preamble.
func WithManifest(fn ManifestFunc) Option {
	return func(r *Runner) {
		r.manifest = fn
	}
}

// WithDir sets the working directory of the interpreter process.
func WithDir(dir string) Option {
	return func(r *Runner) {
		r.dir = dir
	}
}

// WithEnv sets the environment of the interpreter process.
func WithEnv(env []string) Option {
	return func(r *Runner) {
		r.env = env
	}
}

// WithLogger attaches a logger; the runner is silent without one.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Runner) {
		r.logger = logger
	}
}

// Runner renders handles into script artifacts and executes them.
type Runner struct {
	interpreter string
	args        []string
	manifest    ManifestFunc
	dir         string
	env         []string
	logger      *slog.Logger
}

// New constructs a Runner. Without options it targets rust-script with the
// cargo manifest preamble.
func New(options ...Option) *Runner {
	r := &Runner{
		interpreter: "rust-script",
		manifest:    RustScriptManifest,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(r)
	}
	return r
}

// Artifact renders the handle and prepends the manifest preamble for each
// dependency in declaration order. It performs no I/O, so callers can inspect
// or persist the runnable script without executing it.
func (r *Runner) Artifact(h *compose.Handle) ([]byte, error) {
	rendered, err := h.Render()
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	for _, dep := range h.Dependencies() {
		buf.WriteString(r.manifest(dep))
	}
	buf.WriteString(rendered)
	return buf.Bytes(), nil
}

// Run renders the handle, writes the artifact to a temporary file, and
// invokes the interpreter on it. It returns captured stdout on success; a
// non-zero exit surfaces the captured stderr inside an ExecError. Render
// failures propagate unchanged. The temporary artifact is removed before Run
// returns.
func (r *Runner) Run(ctx context.Context, h *compose.Handle) (string, error) {
	interpreter, err := exec.LookPath(r.interpreter)
	if err != nil {
		return "", &ExecError{Detail: fmt.Sprintf("interpreter %q not found in PATH", r.interpreter)}
	}

	artifact, err := r.Artifact(h)
	if err != nil {
		return "", err
	}

	dir, err := os.MkdirTemp("", "scriptgen-*")
	if err != nil {
		return "", &ExecError{Detail: fmt.Sprintf("create temp dir: %v", err)}
	}
	defer func() {
		_ = os.RemoveAll(dir)
	}()

	script := filepath.Join(dir, "script")
	if err := atomic.WriteFile(script, bytes.NewReader(artifact)); err != nil {
		return "", &ExecError{Detail: fmt.Sprintf("write artifact: %v", err)}
	}

	if r.logger != nil {
		r.logger.InfoContext(ctx, "executing script artifact",
			slog.String("interpreter", interpreter),
			slog.Int("artifact_bytes", len(artifact)),
			slog.Int("dependencies", len(h.Dependencies())),
		)
	}

	args := append(append([]string(nil), r.args...), script)
	cmd := exec.CommandContext(ctx, interpreter, args...)
	cmd.Dir = r.dir
	cmd.Env = r.env

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if r.logger != nil {
			r.logger.ErrorContext(ctx, "script execution failed",
				slog.String("interpreter", interpreter),
				slog.String("error", err.Error()),
			)
		}
		return "", &ExecError{
			Detail: fmt.Sprintf("execute %s", r.interpreter),
			Output: stderr.String(),
		}
	}

	return stdout.String(), nil
}
