package proc

import (
	"context"
	"io"
	"sync"
	"time"
)

// DefaultStartupProbe is how long the runner watches for an early
// watcher death before starting the serve child.
const DefaultStartupProbe = 400 * time.Millisecond

// State tracks a dev session through its lifecycle.
type State int

const (
	StateIdle State = iota
	StateStarting
	StateRunning
	StateStopping
	StateStopped
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateStarting:
		return "starting"
	case StateRunning:
		return "running"
	case StateStopping:
		return "stopping"
	case StateStopped:
		return "stopped"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Trigger identifies which event ended a dev session.
type Trigger int

const (
	TriggerNone Trigger = iota
	TriggerWatch
	TriggerServe
	TriggerInterrupt
)

func (t Trigger) String() string {
	switch t {
	case TriggerWatch:
		return "watch"
	case TriggerServe:
		return "serve"
	case TriggerInterrupt:
		return "interrupt"
	default:
		return "none"
	}
}

// Command names one child the dev session runs.
type Command struct {
	Name string
	Argv []string
	Dir  string
	Env  []string

	// HoldStdin is passed through to the session; watch children use it.
	HoldStdin bool
}

// DevResult reports how a dev session ended. The trigger side's Result
// reflects its own exit; the survivor's reflects its termination.
type DevResult struct {
	Trigger      Trigger
	Watch        Result
	Serve        Result
	ServeStarted bool
}

// DevRunner runs the watch child and the serve child as one supervised
// session. Whichever of the two exits first, or an interrupt, stops the
// other within the grace period. Neither child outlives Run.
type DevRunner struct {
	Watch Command
	Serve Command

	Logger Logger
	Stdout io.Writer
	Stderr io.Writer

	// Grace and StartupProbe default to DefaultGrace and
	// DefaultStartupProbe when zero.
	Grace        time.Duration
	StartupProbe time.Duration

	mu    sync.Mutex
	state State
}

// State returns the session's current lifecycle state.
func (r *DevRunner) State() State {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state
}

func (r *DevRunner) setState(next State) {
	r.mu.Lock()
	r.state = next
	r.mu.Unlock()
	if r.Logger != nil {
		r.Logger.Printf("dev session %s", next)
	}
}

func (r *DevRunner) spawn(c Command) (*Session, error) {
	return Spawn(c.Name, c.Argv, Options{
		Dir:       c.Dir,
		Env:       c.Env,
		Stdout:    r.Stdout,
		Stderr:    r.Stderr,
		HoldStdin: c.HoldStdin,
		Grace:     r.Grace,
	})
}

// Run drives the session to completion: spawn watch, probe for an early
// death, spawn serve, then race both exits against ctx. A non-nil error
// means the runner itself failed (spawn or termination timeout); child
// exit codes travel in the DevResult.
func (r *DevRunner) Run(ctx context.Context) (DevResult, error) {
	res := DevResult{}
	r.setState(StateStarting)

	watch, err := r.spawn(r.Watch)
	if err != nil {
		r.setState(StateFailed)
		return res, err
	}

	probe := r.StartupProbe
	if probe <= 0 {
		probe = DefaultStartupProbe
	}

	select {
	case <-watch.Done():
		res.Trigger = TriggerWatch
		res.Watch, _ = watch.Result()
		r.setState(StateStopped)
		return res, nil
	case <-ctx.Done():
		res.Trigger = TriggerInterrupt
		return r.finish(&res, watch, nil)
	case <-time.After(probe):
	}

	serve, err := r.spawn(r.Serve)
	if err != nil {
		if r.Logger != nil {
			r.Logger.Printf("stopping %s: serve failed to start", watch.Name)
		}
		result, termErr := watch.Terminate()
		res.Watch = result
		r.setState(StateFailed)
		if termErr != nil {
			return res, termErr
		}
		return res, err
	}
	res.ServeStarted = true
	r.setState(StateRunning)

	select {
	case <-watch.Done():
		res.Trigger = TriggerWatch
	case <-serve.Done():
		res.Trigger = TriggerServe
	case <-ctx.Done():
		res.Trigger = TriggerInterrupt
	}

	return r.finish(&res, watch, serve)
}

// finish tears both sides down and fills in their terminal states.
// Terminate on an already-exited session is a lookup, so the trigger
// side keeps its own exit and only the survivor is actually stopped.
func (r *DevRunner) finish(res *DevResult, watch, serve *Session) (DevResult, error) {
	r.setState(StateStopping)

	var firstErr error
	if watch != nil {
		result, err := watch.Terminate()
		res.Watch = result
		if err != nil && firstErr == nil {
			firstErr = err
		}
	}
	if serve != nil {
		result, err := serve.Terminate()
		res.Serve = result
		if err != nil && firstErr == nil {
			firstErr = err
		}
	}

	if firstErr != nil {
		r.setState(StateFailed)
		return *res, firstErr
	}
	r.setState(StateStopped)
	return *res, nil
}
