package languageserver

import (
	"context"
	"encoding/json"
	"io"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/nucleotide/lspcoord/src/lspcoord/internal/executor"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.lsp.dev/jsonrpc2"
	"go.lsp.dev/protocol"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

const (
	_fakeServerEnv = "LSPCOORD_FAKE_LANGUAGE_SERVER"
	_ignoreExitEnv = "LSPCOORD_FAKE_IGNORE_EXIT"
	_exitEarlyEnv  = "LSPCOORD_FAKE_EXIT_AFTER_LOGS"

	_earlyLogMessages = 200
)

// TestMain doubles as a minimal language server when the test binary is launched by the gateway.
func TestMain(m *testing.M) {
	if os.Getenv(_fakeServerEnv) == "1" {
		runFakeServer()
		os.Exit(0)
	}
	os.Exit(m.Run())
}

type fakeStdio struct {
	io.Reader
	io.Writer
}

func (fakeStdio) Close() error { return nil }

func runFakeServer() {
	conn := jsonrpc2.NewConn(jsonrpc2.NewStream(fakeStdio{Reader: os.Stdin, Writer: os.Stdout}))
	ignoreExit := os.Getenv(_ignoreExitEnv) == "1"
	conn.Go(context.Background(), func(ctx context.Context, reply jsonrpc2.Replier, req jsonrpc2.Request) error {
		switch req.Method() {
		case protocol.MethodInitialize:
			return reply(ctx, protocol.InitializeResult{
				Capabilities: protocol.ServerCapabilities{
					TextDocumentSync:   protocol.TextDocumentSyncKindIncremental,
					CompletionProvider: &protocol.CompletionOptions{TriggerCharacters: []string{"."}},
				},
				ServerInfo: &protocol.ServerInfo{Name: "fake"},
			}, nil)
		case protocol.MethodInitialized:
			if os.Getenv(_exitEarlyEnv) == "1" {
				for i := 0; i < _earlyLogMessages; i++ {
					_ = conn.Notify(ctx, protocol.MethodWindowLogMessage, protocol.LogMessageParams{
						Type:    protocol.MessageTypeLog,
						Message: strings.Repeat("x", 512),
					})
				}
				os.Exit(0)
			}
			return conn.Notify(ctx, protocol.MethodWindowLogMessage, protocol.LogMessageParams{
				Type:    protocol.MessageTypeInfo,
				Message: "ready",
			})
		case protocol.MethodTextDocumentCompletion:
			return reply(ctx, []protocol.CompletionItem{{Label: "println"}, {Label: "print"}}, nil)
		case protocol.MethodShutdown:
			return reply(ctx, nil, nil)
		case protocol.MethodExit:
			if !ignoreExit {
				os.Exit(0)
			}
			return nil
		}
		return reply(ctx, nil, nil)
	})
	<-conn.Done()
}

func launchFake(t *testing.T, extraEnv ...string) Client {
	return launchFakeWithLogger(t, zap.NewNop().Sugar(), extraEnv...)
}

func launchFakeWithLogger(t *testing.T, logger *zap.SugaredLogger, extraEnv ...string) Client {
	gw := New(Params{
		Executor: executor.NewExecutor(),
		Logger:   logger,
	})

	env := append(os.Environ(), _fakeServerEnv+"=1")
	env = append(env, extraEnv...)
	client, err := gw.Launch(context.Background(), LaunchSpec{
		Name:    "fake",
		Command: os.Args[0],
		Args:    []string{"-test.run=^$"},
		Dir:     t.TempDir(),
		Env:     env,
	})
	require.NoError(t, err)
	return client
}

func TestLaunchLifecycle(t *testing.T) {
	client := launchFake(t)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	result, err := client.Initialize(ctx, &protocol.InitializeParams{ProcessID: int32(os.Getpid())})
	require.NoError(t, err)
	require.NotNil(t, result.Capabilities.CompletionProvider)
	assert.Equal(t, []string{"."}, result.Capabilities.CompletionProvider.TriggerCharacters)
	require.NoError(t, client.Initialized(ctx))

	require.NoError(t, client.DidOpen(ctx, &protocol.DidOpenTextDocumentParams{
		TextDocument: protocol.TextDocumentItem{URI: "file:///tmp/main.rs", LanguageID: "rust", Version: 1, Text: "fn main() {}"},
	}))

	list, err := client.Completion(ctx, &protocol.CompletionParams{})
	require.NoError(t, err)
	require.Len(t, list.Items, 2)
	assert.Equal(t, "println", list.Items[0].Label)
	assert.False(t, list.IsIncomplete)

	require.NoError(t, client.Shutdown(ctx))
	select {
	case <-client.Done():
	default:
		t.Fatal("process should have exited after shutdown")
	}

	// Shutdown is idempotent.
	assert.NoError(t, client.Shutdown(ctx))
}

func TestShutdownKillsUnresponsiveServer(t *testing.T) {
	client := launchFake(t, _ignoreExitEnv+"=1")

	ctx, cancel := context.WithTimeout(context.Background(), 500*time.Millisecond)
	defer cancel()
	_ = client.Shutdown(ctx)

	select {
	case <-client.Done():
	case <-time.After(5 * time.Second):
		t.Fatal("process should have been killed")
	}
}

func TestOutputIsReadBeforeExit(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	client := launchFakeWithLogger(t, zap.New(core).Sugar(), _exitEarlyEnv+"=1")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_, err := client.Initialize(ctx, &protocol.InitializeParams{ProcessID: int32(os.Getpid())})
	require.NoError(t, err)
	require.NoError(t, client.Initialized(ctx))

	select {
	case <-client.Done():
	case <-ctx.Done():
		t.Fatal("process did not exit")
	}
	assert.Equal(t, _earlyLogMessages, logs.FilterMessage("server message").Len())
	assert.Equal(t, 1, logs.FilterMessage("language server exited").Len())
}

func TestLaunchMissingBinary(t *testing.T) {
	gw := New(Params{
		Executor: executor.NewExecutor(),
		Logger:   zap.NewNop().Sugar(),
	})

	_, err := gw.Launch(context.Background(), LaunchSpec{
		Name:    "missing",
		Command: "/nonexistent/lspcoord-missing-server",
	})
	assert.Error(t, err)
}

func TestHandleServerRequests(t *testing.T) {
	c := &client{logger: zap.NewNop().Sugar()}
	ctx := context.Background()

	tests := []struct {
		name   string
		method string
		params interface{}
		want   interface{}
	}{
		{
			name:   "configuration replies one null per item",
			method: protocol.MethodWorkspaceConfiguration,
			params: protocol.ConfigurationParams{Items: []protocol.ConfigurationItem{{Section: "a"}, {Section: "b"}}},
			want:   []interface{}{nil, nil},
		},
		{
			name:   "log message is accepted",
			method: protocol.MethodWindowLogMessage,
			params: protocol.LogMessageParams{Type: protocol.MessageTypeWarning, Message: "hi"},
		},
		{
			name:   "unknown request is accepted",
			method: protocol.MethodClientRegisterCapability,
			params: map[string]string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, err := jsonrpc2.NewCall(jsonrpc2.NewNumberID(1), tt.method, tt.params)
			require.NoError(t, err)

			var got interface{}
			var gotErr error
			reply := func(_ context.Context, result interface{}, err error) error {
				got, gotErr = result, err
				return nil
			}

			require.NoError(t, c.handle(ctx, reply, req))
			assert.NoError(t, gotErr)
			assert.Equal(t, tt.want, normalize(t, got))
		})
	}
}

func normalize(t *testing.T, v interface{}) interface{} {
	if v == nil {
		return nil
	}
	data, err := json.Marshal(v)
	require.NoError(t, err)
	var out interface{}
	require.NoError(t, json.Unmarshal(data, &out))
	return out
}
