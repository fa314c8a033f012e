package executor

import (
	"errors"
	"io"
	"os"
	"os/exec"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uber-go/tally"
	"go.uber.org/fx"
	"go.uber.org/fx/fxtest"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func lookPath(t *testing.T, name string) string {
	binPath, err := exec.LookPath(name)
	if errors.Is(err, exec.ErrNotFound) {
		t.Skipf("no %s available", name)
	}
	require.NoError(t, err)
	return binPath
}

func newObservedExecutor(opts ...Option) (Executor, *observer.ObservedLogs, tally.TestScope) {
	core, recorded := observer.New(zap.InfoLevel)
	scope := tally.NewTestScope("", nil)
	opts = append([]Option{WithLogger(zap.New(core).Sugar()), WithStats(scope)}, opts...)
	return NewExecutor(opts...), recorded, scope
}

func TestModule(t *testing.T) {
	var e Executor
	fxtest.New(t,
		fx.Provide(
			func() *zap.SugaredLogger { return zap.NewNop().Sugar() },
			func() tally.Scope { return tally.NoopScope },
		),
		Module,
		fx.Populate(&e),
	).RequireStart().RequireStop()
	assert.NotNil(t, e)
}

func TestRun(t *testing.T) {
	lookPath(t, "sh")
	tempDir := t.TempDir()

	tests := []struct {
		name     string
		args     []string
		stdout   string
		stderr   string
		exitCode int
		wantErr  string
		failures int64
	}{
		{
			name:   "nul separated environment",
			args:   []string{"sh", "-c", "printf 'A=1\\000B=2\\000'"},
			stdout: "A=1\x00B=2\x00",
		},
		{
			name:     "non zero exit",
			args:     []string{"sh", "-c", "echo broken profile >&2; exit 3"},
			stderr:   "broken profile",
			exitCode: 3,
			wantErr:  "exit status 3",
			failures: 1,
		},
		{
			name:     "unknown shell",
			args:     []string{"no_valid_shell_"},
			exitCode: -1,
			wantErr:  `exec: "no_valid_shell_": executable file not found in $PATH`,
			failures: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, recorded, scope := newObservedExecutor()
			cmd := exec.Command(tt.args[0], tt.args[1:]...)
			cmd.Dir = tempDir
			cmd.Env = os.Environ()

			stdout, stderr, exitCode, err := e.Run(cmd)

			assert.Equal(t, tt.stdout, stdout)
			if tt.stderr == "" {
				assert.Empty(t, stderr)
			} else {
				assert.Contains(t, stderr, tt.stderr)
			}
			assert.Equal(t, tt.exitCode, exitCode)
			if tt.wantErr == "" {
				assert.NoError(t, err)
			} else {
				assert.EqualError(t, err, tt.wantErr)
			}

			logs := recorded.TakeAll()
			require.Len(t, logs, 1)
			assert.Equal(t, "run", logs[0].ContextMap()["op"])
			assert.Equal(t, tempDir, logs[0].ContextMap()["dir"])

			counters := scope.Snapshot().Counters()
			assert.EqualValues(t, 1, counters["commands+op=run"].Value())
			if tt.failures > 0 {
				assert.EqualValues(t, tt.failures, counters["failures+op=run"].Value())
			} else {
				assert.NotContains(t, counters, "failures+op=run")
			}
		})
	}
}

func TestStart(t *testing.T) {
	binPath := lookPath(t, "cat")
	e, recorded, _ := newObservedExecutor()

	cmd := exec.Command("cat")
	stdin, err := cmd.StdinPipe()
	require.NoError(t, err)
	stdout, err := cmd.StdoutPipe()
	require.NoError(t, err)

	require.NoError(t, e.Start(cmd, []string{"PATH=" + os.Getenv("PATH")}))
	logs := recorded.TakeAll()
	require.Len(t, logs, 1)
	assert.Equal(t, map[string]interface{}{
		"op":      "start",
		"path":    binPath,
		"dir":     "",
		"args":    []interface{}{},
		"envVars": int64(1),
	}, logs[0].ContextMap())

	_, err = stdin.Write([]byte("ping"))
	require.NoError(t, err)
	require.NoError(t, stdin.Close())
	out, err := io.ReadAll(stdout)
	require.NoError(t, err)
	assert.Equal(t, "ping", string(out))
	assert.NoError(t, cmd.Wait())
}

func TestStartWithStartFunc(t *testing.T) {
	t.Run("environment is replaced", func(t *testing.T) {
		var started *exec.Cmd
		e, _, _ := newObservedExecutor(WithStartFunc(func(cmd *exec.Cmd) error {
			started = cmd
			return nil
		}))

		cmd := exec.Command("rust-analyzer")
		require.NoError(t, e.Start(cmd, []string{"CARGO_HOME=/cargo"}))
		assert.Same(t, cmd, started)
		assert.Equal(t, []string{"CARGO_HOME=/cargo"}, started.Env)
	})

	t.Run("failure is counted", func(t *testing.T) {
		e, recorded, scope := newObservedExecutor(WithStartFunc(func(*exec.Cmd) error {
			return errors.New("permission denied")
		}))

		err := e.Start(exec.Command("gopls"), nil)
		assert.EqualError(t, err, "permission denied")
		assert.Equal(t, 1, recorded.FilterMessage("process failed to start").Len())
		assert.EqualValues(t, 1, scope.Snapshot().Counters()["failures+op=start"].Value())
	})
}

func TestWithRunFunc(t *testing.T) {
	e, _, _ := newObservedExecutor(WithRunFunc(func(cmd *exec.Cmd) error {
		_, err := io.WriteString(cmd.Stdout, "PATH=/bin\x00")
		return err
	}))

	stdout, stderr, exitCode, err := e.Run(exec.Command("zsh", "-l", "-c", "printenv -0"))
	require.NoError(t, err)
	assert.Equal(t, "PATH=/bin\x00", stdout)
	assert.Empty(t, stderr)
	assert.Zero(t, exitCode)
}
