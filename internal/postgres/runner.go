package postgres

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
)

// CommandRunner executes one external command and reports its combined
// output. It is the only path through which dump and restore work touches
// the outside world, so tests can substitute a fake.
type CommandRunner interface {
	Run(ctx context.Context, name string, args ...string) ([]byte, error)
}

type execRunner struct{}

// NewRunner returns the exec-backed CommandRunner used in production.
func NewRunner() CommandRunner {
	return execRunner{}
}

func (execRunner) Run(ctx context.Context, name string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Env = os.Environ()

	output, err := cmd.CombinedOutput()
	if err != nil {
		trimmed := bytes.TrimSpace(output)
		if len(trimmed) > 0 {
			return output, fmt.Errorf("%s: %w: %s", name, err, trimmed)
		}
		return output, fmt.Errorf("%s: %w", name, err)
	}
	return output, nil
}
