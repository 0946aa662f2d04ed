package julia

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"time"
)

// ErrTimeout signals that the Julia process exceeded the runner's deadline.
// Loading large packages (JUDI in particular) routinely takes longer than
// small scripts, so callers usually treat this as a skip, not a failure.
var ErrTimeout = errors.New("julia process timed out")

const defaultTimeout = 30 * time.Second

// Runner executes Julia code against a project environment.
type Runner struct {
	Bin     string        // julia executable; "julia" when empty
	Project string        // directory passed as --project
	Timeout time.Duration // per-invocation deadline; defaultTimeout when zero
}

// RunResult holds the captured output of one Julia invocation.
type RunResult struct {
	Stdout string
	Stderr string
}

func (r *Runner) bin() string {
	if r.Bin == "" {
		return "julia"
	}
	return r.Bin
}

func (r *Runner) timeout() time.Duration {
	if r.Timeout <= 0 {
		return defaultTimeout
	}
	return r.Timeout
}

// RunScript writes code to a temporary file inside the project directory and
// runs the given script with the project dir and the temp file as arguments.
// The temp file lives in the project dir so the script sees it under the
// active environment.
func (r *Runner) RunScript(ctx context.Context, script, code string) (RunResult, error) {
	tmp, err := os.CreateTemp(r.Project, "judidoc-*.jl")
	if err != nil {
		return RunResult{}, fmt.Errorf("failed to create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.WriteString(code); err != nil {
		tmp.Close()
		return RunResult{}, fmt.Errorf("failed to write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return RunResult{}, fmt.Errorf("failed to close temp file: %w", err)
	}

	return r.run(ctx, "--project="+r.Project, script, r.Project, tmp.Name())
}

// Eval runs a code snippet directly with -e instead of a temporary file.
func (r *Runner) Eval(ctx context.Context, code string) (RunResult, error) {
	return r.run(ctx, "--project="+r.Project, "-e", code)
}

func (r *Runner) run(ctx context.Context, args ...string) (RunResult, error) {
	cctx, cancel := context.WithTimeout(ctx, r.timeout())
	defer cancel()

	cmd := exec.CommandContext(cctx, r.bin(), args...)
	cmd.Dir = r.Project

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	res := RunResult{Stdout: stdout.String(), Stderr: stderr.String()}

	if cctx.Err() == context.DeadlineExceeded {
		return res, ErrTimeout
	}
	if err != nil {
		return res, fmt.Errorf("julia invocation failed: %w", err)
	}
	return res, nil
}
