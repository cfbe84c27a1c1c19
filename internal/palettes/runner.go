package palettes

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"

	"github.com/atomicstack/argpopup/internal/logging/events"
)

type commander interface {
	Run() error
}

var runExecCommand = func(ctx context.Context, dir string, stdout, stderr io.Writer, name string, args ...string) commander {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = dir
	cmd.Stdin = os.Stdin
	cmd.Stdout = stdout
	cmd.Stderr = stderr
	return cmd
}

// Runner executes git in the foreground once the popup is gone.
type Runner struct {
	Binary string
	Dir    string
	DryRun bool
	Stdout io.Writer
	Stderr io.Writer
}

// NewRunner returns a runner writing to the process's own streams.
func NewRunner(binary, dir string, dryRun bool) *Runner {
	if strings.TrimSpace(binary) == "" {
		binary = "git"
	}
	return &Runner{Binary: binary, Dir: dir, DryRun: dryRun, Stdout: os.Stdout, Stderr: os.Stderr}
}

// Run executes the binary with args. In dry-run mode the command line is
// printed instead.
func (r *Runner) Run(ctx context.Context, args []string) error {
	line := r.Binary + " " + strings.Join(args, " ")
	if r.DryRun {
		events.Command.Skip(line)
		_, err := fmt.Fprintln(r.Stdout, line)
		return err
	}
	events.Command.Queue(r.Binary, args)
	if err := runExecCommand(ctx, r.Dir, r.Stdout, r.Stderr, r.Binary, args...).Run(); err != nil {
		events.Command.Error(line, err)
		return fmt.Errorf("%s: %w", line, err)
	}
	events.Command.Result(line, "ok")
	return nil
}
