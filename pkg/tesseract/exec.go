package tesseract

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"time"

	"github.com/google/uuid"
)

// waitDelay bounds how long Wait keeps draining stdout/stderr after the process has
// exited, so a grandchild holding the pipes cannot block a call forever.
const waitDelay = 2 * time.Second

// processState tracks a process through Created -> Spawned -> Completed | TimedOut |
// SpawnFailed. Cancelled is the caller-cancellation variant of TimedOut.
type processState int

const (
	stateCreated processState = iota
	stateSpawned
	stateCompleted
	stateTimedOut
	stateCancelled
	stateSpawnFailed
)

func (s processState) String() string {
	switch s {
	case stateCreated:
		return "created"
	case stateSpawned:
		return "spawned"
	case stateCompleted:
		return "completed"
	case stateTimedOut:
		return "timed out"
	case stateCancelled:
		return "cancelled"
	case stateSpawnFailed:
		return "spawn failed"
	}
	return fmt.Sprintf("processState(%d)", int(s))
}

// process owns one tesseract execution: the command, its stdin payload and the
// captured output. It is used by exactly one call and discarded afterwards.
type process struct {
	id      string
	cmd     *exec.Cmd
	timeout time.Duration
	state   processState
	stdout  bytes.Buffer
	stderr  bytes.Buffer
	logger  *slog.Logger
}

// result is the captured output of a process that exited before its deadline.
type result struct {
	Stdout   []byte
	Stderr   []byte
	ExitCode int
}

func newProcess(binary string, args []string, stdin []byte, timeout time.Duration, logger *slog.Logger) *process {
	p := &process{
		id:      uuid.NewString(),
		cmd:     exec.Command(binary, args...),
		timeout: timeout,
		state:   stateCreated,
		logger:  logger,
	}
	p.cmd.Stdout = &p.stdout
	p.cmd.Stderr = &p.stderr
	if stdin != nil {
		// exec copies the payload from a goroutine and closes the pipe once it is written
		p.cmd.Stdin = bytes.NewReader(stdin)
	}
	p.cmd.WaitDelay = waitDelay
	isolate(p.cmd)
	return p
}

// run starts the process and waits for it, racing process exit against the deadline.
// When the deadline or ctx wins the process is killed and reaped before returning, and
// no output is returned. A nonzero exit status is reported as a *RuntimeError alongside
// the captured output.
func (p *process) run(ctx context.Context) (*result, error) {
	log := p.logger.With("invocation", p.id)
	log.Debug("running tesseract", "binary", p.cmd.Path, "args", p.cmd.Args[1:])

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("tesseract not started: %w", err)
	}

	// The deadline clock starts only once the process exists
	if err := p.cmd.Start(); err != nil {
		p.state = stateSpawnFailed
		log.Warn("tesseract could not be started", "error", err)
		return nil, &SpawnError{Binary: p.cmd.Path, Err: err}
	}
	p.state = stateSpawned
	started := time.Now()

	deadline, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	waitErr := make(chan error, 1)
	go func() { waitErr <- p.cmd.Wait() }()

	select {
	case err := <-waitErr:
		p.state = stateCompleted
		log.Debug("tesseract finished", "elapsed", time.Since(started), "stdout_bytes", p.stdout.Len(), "stderr_bytes", p.stderr.Len())
		return p.completed(err)

	case <-deadline.Done():
		// Kill the whole process group, then reap, so neither a zombie nor an orphaned
		// grandchild survives the call
		if err := kill(p.cmd.Process); err != nil && !errors.Is(err, os.ErrProcessDone) {
			log.Warn("failed to kill tesseract", "error", err)
		}
		<-waitErr

		if ctx.Err() != nil && !errors.Is(ctx.Err(), context.DeadlineExceeded) {
			p.state = stateCancelled
			log.Debug("tesseract cancelled", "elapsed", time.Since(started))
			return nil, fmt.Errorf("tesseract process cancelled: %w", ctx.Err())
		}
		p.state = stateTimedOut
		log.Warn("tesseract timed out", "timeout", p.timeout, "elapsed", time.Since(started))
		return nil, &TimeoutError{Timeout: p.timeout}
	}
}

func (p *process) completed(waitErr error) (*result, error) {
	res := &result{
		Stdout: p.stdout.Bytes(),
		Stderr: p.stderr.Bytes(),
	}
	if waitErr == nil || errors.Is(waitErr, exec.ErrWaitDelay) {
		return res, nil
	}

	var exitErr *exec.ExitError
	if errors.As(waitErr, &exitErr) {
		res.ExitCode = exitErr.ExitCode()
		return res, &RuntimeError{ExitCode: res.ExitCode}
	}
	return nil, fmt.Errorf("failed waiting for tesseract: %w", waitErr)
}

// execute builds a process for args, runs it and decodes stderr into any RuntimeError.
func (c *Client) execute(ctx context.Context, args []string, stdin []byte, opts Options) (*result, error) {
	p := newProcess(c.binary, args, stdin, opts.Timeout, c.logger)
	res, err := p.run(ctx)

	var runErr *RuntimeError
	if errors.As(err, &runErr) {
		runErr.Stderr, _ = decode(res.Stderr, opts.Encoding)
		c.logger.Warn("tesseract failed", "invocation", p.id, "exit_code", runErr.ExitCode, "stderr", runErr.Stderr)
	}
	return res, err
}
