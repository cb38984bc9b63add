// Package proc supervises external child processes: spawning with
// inherited or redirected streams, reaping, and two-stage termination.
package proc

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"sync"
	"time"
)

const (
	// DefaultGrace is how long Terminate waits after the polite signal
	// before escalating to a forced kill.
	DefaultGrace = 5 * time.Second

	// killWait bounds the wait after the forced kill.
	killWait = 2 * time.Second
)

// Logger is the subset of log.Logger this package needs.
type Logger interface {
	Printf(format string, v ...any)
}

// Result is the terminal state of one child.
type Result struct {
	Code     int
	Signaled bool
}

// Success reports a voluntary zero exit.
func (r Result) Success() bool { return !r.Signaled && r.Code == 0 }

// SpawnError reports a child that could not be started at all.
type SpawnError struct {
	Command string
	Err     error
}

func (e *SpawnError) Error() string {
	return fmt.Sprintf("spawn %s: %v", e.Command, e.Err)
}

func (e *SpawnError) Unwrap() error { return e.Err }

// TerminationTimeoutError reports a child that survived both the polite
// signal and the forced kill within their windows.
type TerminationTimeoutError struct {
	Command string
	Grace   time.Duration
}

func (e *TerminationTimeoutError) Error() string {
	return fmt.Sprintf("%s did not exit within %s of termination", e.Command, e.Grace+killWait)
}

// Options configures how a child is spawned. Nil streams inherit the
// parent's.
type Options struct {
	Dir    string
	Env    []string
	Stdout io.Writer
	Stderr io.Writer
	Stdin  io.Reader

	// HoldStdin gives the child a pipe held open for its lifetime
	// instead of a stream. Watchers that stop when stdin closes stay
	// alive this way, and closing the pipe becomes the first nudge
	// during termination.
	HoldStdin bool

	// Grace overrides DefaultGrace for this session.
	Grace time.Duration
}

// Session is one supervised child process. The reaper goroutine owns
// the underlying Wait; everything else observes the done channel.
type Session struct {
	Name string

	cmd       *exec.Cmd
	stdin     io.WriteCloser
	stdinOnce sync.Once
	grace     time.Duration

	done    chan struct{}
	result  Result
	waitErr error
}

// Spawn starts the command and begins reaping it. The child runs in its
// own process group so termination reaches grandchildren too.
func Spawn(name string, argv []string, opts Options) (*Session, error) {
	if len(argv) == 0 {
		return nil, &SpawnError{Command: name, Err: errors.New("empty command")}
	}

	cmd := exec.Command(argv[0], argv[1:]...)
	cmd.Dir = opts.Dir
	if len(opts.Env) > 0 {
		cmd.Env = append(os.Environ(), opts.Env...)
	}

	cmd.Stdout = opts.Stdout
	if cmd.Stdout == nil {
		cmd.Stdout = os.Stdout
	}
	cmd.Stderr = opts.Stderr
	if cmd.Stderr == nil {
		cmd.Stderr = os.Stderr
	}

	s := &Session{
		Name:  name,
		cmd:   cmd,
		grace: opts.Grace,
		done:  make(chan struct{}),
	}
	if s.grace <= 0 {
		s.grace = DefaultGrace
	}

	if opts.HoldStdin {
		pipe, err := cmd.StdinPipe()
		if err != nil {
			return nil, &SpawnError{Command: name, Err: err}
		}
		s.stdin = pipe
	} else if opts.Stdin != nil {
		cmd.Stdin = opts.Stdin
	} else {
		cmd.Stdin = os.Stdin
	}

	setSysProcAttr(cmd)

	if err := cmd.Start(); err != nil {
		s.closeStdin()
		return nil, &SpawnError{Command: name, Err: err}
	}

	go s.reap()
	return s, nil
}

func (s *Session) reap() {
	err := s.cmd.Wait()
	s.closeStdin()

	var exitErr *exec.ExitError
	switch {
	case err == nil:
		s.result = Result{Code: 0}
	case errors.As(err, &exitErr):
		code := exitErr.ExitCode()
		s.result = Result{Code: code, Signaled: code == -1}
	default:
		s.result = Result{Code: -1}
		s.waitErr = fmt.Errorf("wait %s: %w", s.Name, err)
	}
	close(s.done)
}

func (s *Session) closeStdin() {
	if s.stdin == nil {
		return
	}
	s.stdinOnce.Do(func() { _ = s.stdin.Close() })
}

// Done is closed once the child has been reaped. Selecting on it is how
// sessions compose.
func (s *Session) Done() <-chan struct{} { return s.done }

// Result peeks at the terminal state without blocking.
func (s *Session) Result() (Result, bool) {
	select {
	case <-s.done:
		return s.result, true
	default:
		return Result{}, false
	}
}

// Wait blocks until the child exits. If ctx ends first the child is
// terminated and ctx's error is returned alongside the terminal state.
func (s *Session) Wait(ctx context.Context) (Result, error) {
	select {
	case <-s.done:
		return s.result, s.waitErr
	case <-ctx.Done():
		res, err := s.Terminate()
		if err != nil {
			return res, err
		}
		return res, ctx.Err()
	}
}

// Terminate asks the child to exit, escalating after the grace period.
// Calling it on an already-exited session just returns the stored state.
func (s *Session) Terminate() (Result, error) {
	select {
	case <-s.done:
		return s.result, s.waitErr
	default:
	}

	s.closeStdin()
	s.signalTerm()

	select {
	case <-s.done:
		return s.result, s.waitErr
	case <-time.After(s.grace):
	}

	s.signalKill()

	select {
	case <-s.done:
		return s.result, s.waitErr
	case <-time.After(killWait):
		return Result{}, &TerminationTimeoutError{Command: s.Name, Grace: s.grace}
	}
}

// Run spawns the command and waits for it, terminating the child if ctx
// ends first.
func Run(ctx context.Context, name string, argv []string, opts Options) (Result, error) {
	s, err := Spawn(name, argv, opts)
	if err != nil {
		return Result{}, err
	}
	return s.Wait(ctx)
}
