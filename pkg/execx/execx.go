// Package execx runs the platform networking tools (ping, traceroute,
// nmcli, netsh) behind an interface so callers can be tested without them.
package execx

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"sync"
)

var errNotStarted = errors.New("process not started")

// OSRunner executes commands on the host via os/exec.
type OSRunner struct{}

func NewOSRunner() *OSRunner {
	return &OSRunner{}
}

// Output runs name and returns its combined stdout and stderr. The output is
// returned even when the command exits non-zero since tools like ping report
// useful diagnostics that way.
func (*OSRunner) Output(ctx context.Context, name string, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, name, args...)

	var buf bytes.Buffer

	cmd.Stdout = &buf
	cmd.Stderr = &buf

	if err := cmd.Run(); err != nil {
		if ctx.Err() != nil {
			return buf.String(), ctx.Err()
		}

		return buf.String(), fmt.Errorf("%s: %w", name, err)
	}

	return buf.String(), nil
}

// Stream starts name and returns its stdout. Closing the returned reader
// kills the process if it is still running and waits for it to exit.
func (*OSRunner) Stream(ctx context.Context, name string, args ...string) (io.ReadCloser, error) {
	cmd := exec.CommandContext(ctx, name, args...)

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}

	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}

	return &process{cmd: cmd, stdout: stdout}, nil
}

type process struct {
	cmd    *exec.Cmd
	stdout io.ReadCloser

	once    sync.Once
	waitErr error
}

func (p *process) Read(b []byte) (int, error) {
	return p.stdout.Read(b)
}

func (p *process) Close() error {
	p.once.Do(func() {
		if p.cmd.Process == nil {
			p.waitErr = errNotStarted
			return
		}

		// Kill is a no-op error once the process has exited on its own.
		_ = p.cmd.Process.Kill()

		err := p.cmd.Wait()

		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			// killed by us or exited non-zero after producing its output
			err = nil
		}

		p.waitErr = err
	})

	return p.waitErr
}
