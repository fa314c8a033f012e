package executor

import (
	"bytes"
	"os/exec"

	"github.com/uber-go/tally"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

const (
	_opRun   = "run"
	_opStart = "start"
)

// Module provides a module to inject using fx.
var Module = fx.Options(
	fx.Provide(func(logger *zap.SugaredLogger, stats tally.Scope) Executor {
		return NewExecutor(WithLogger(logger.Named("exec")), WithStats(stats.SubScope("exec")))
	}),
)

// Executor runs shell probes and spawns language server processes.
// It logs and counts every command, and lets tests swap the underlying exec calls.
type Executor interface {
	// Run executes cmd to completion and returns its captured output.
	Run(cmd *exec.Cmd) (stdout string, stderr string, exitCode int, err error)
	// Start launches a long running cmd with env as its entire environment.
	// Callers own waiting on the process.
	Start(cmd *exec.Cmd, env []string) error
}

type executor struct {
	logger *zap.SugaredLogger
	stats  tally.Scope
	run    func(*exec.Cmd) error
	start  func(*exec.Cmd) error
}

// Option customizes an Executor.
type Option func(*executor)

// WithLogger overrides the default noop logger.
func WithLogger(logger *zap.SugaredLogger) Option {
	return func(e *executor) {
		e.logger = logger
	}
}

// WithStats overrides the default noop scope.
func WithStats(stats tally.Scope) Option {
	return func(e *executor) {
		e.stats = stats
	}
}

// WithRunFunc replaces cmd.Run.
func WithRunFunc(run func(*exec.Cmd) error) Option {
	return func(e *executor) {
		e.run = run
	}
}

// WithStartFunc replaces cmd.Start.
func WithStartFunc(start func(*exec.Cmd) error) Option {
	return func(e *executor) {
		e.start = start
	}
}

// NewExecutor creates an Executor backed by os/exec.
func NewExecutor(opts ...Option) Executor {
	e := &executor{
		logger: zap.NewNop().Sugar(),
		stats:  tally.NoopScope,
		run:    func(cmd *exec.Cmd) error { return cmd.Run() },
		start:  func(cmd *exec.Cmd) error { return cmd.Start() },
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

func (e *executor) Run(cmd *exec.Cmd) (string, string, int, error) {
	e.logCommand(_opRun, cmd)
	stats := e.scope(_opRun)
	stats.Counter("commands").Inc(1)
	sw := stats.Timer("duration").Start()

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	err := e.run(cmd)
	sw.Stop()

	exitCode := 0
	if cmd.ProcessState != nil {
		exitCode = cmd.ProcessState.ExitCode()
	} else if err != nil {
		// The process never started.
		exitCode = -1
	}
	if err != nil || exitCode != 0 {
		stats.Counter("failures").Inc(1)
	}
	return stdout.String(), stderr.String(), exitCode, err
}

func (e *executor) Start(cmd *exec.Cmd, env []string) error {
	cmd.Env = env
	e.logCommand(_opStart, cmd)
	stats := e.scope(_opStart)
	stats.Counter("commands").Inc(1)

	if err := e.start(cmd); err != nil {
		stats.Counter("failures").Inc(1)
		e.logger.Warnw("process failed to start", "path", cmd.Path, "error", err)
		return err
	}
	return nil
}

func (e *executor) scope(op string) tally.Scope {
	return e.stats.Tagged(map[string]string{"op": op})
}

// logCommand logs the command without its environment, which may hold secrets.
func (e *executor) logCommand(op string, cmd *exec.Cmd) {
	args := []string{}
	if len(cmd.Args) > 1 {
		args = cmd.Args[1:]
	}
	e.logger.Infow("exec",
		"op", op,
		"path", cmd.Path,
		"dir", cmd.Dir,
		"args", args,
		"envVars", len(cmd.Env),
	)
}
