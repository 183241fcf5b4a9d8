package execx

import (
	"context"
	"io"
)

//go:generate mockgen -destination=mock_runner.go -package=execx github.com/carverauto/netdiag/pkg/execx Runner

// Runner abstracts command execution.
type Runner interface {
	// Output runs a command to completion and returns everything it printed.
	Output(ctx context.Context, name string, args ...string) (string, error)
	// Stream starts a command and returns its stdout as it is produced.
	Stream(ctx context.Context, name string, args ...string) (io.ReadCloser, error)
}
