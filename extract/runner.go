package extract

import (
	"context"
	"os"
	"os/exec"
)

// CommandRunner executes an external renderer. It exists as a seam so tests
// can substitute a double for pdftoppm and pandoc.
type CommandRunner interface {
	// Run executes name with args inside dir and returns combined output.
	Run(ctx context.Context, dir, name string, args ...string) ([]byte, error)
}

// execRunner runs renderers as real subprocesses with a sandboxed working
// directory and a restricted environment: HOME and TMPDIR are pinned to the
// working directory so the renderer cannot scribble outside it.
type execRunner struct{}

var _ CommandRunner = execRunner{}

// NewCommandRunner returns the default subprocess runner.
func NewCommandRunner() CommandRunner {
	return execRunner{}
}

func (execRunner) Run(ctx context.Context, dir, name string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = dir
	cmd.Env = []string{
		"PATH=" + os.Getenv("PATH"),
		"HOME=" + dir,
		"TMPDIR=" + dir,
	}
	return cmd.CombinedOutput()
}
