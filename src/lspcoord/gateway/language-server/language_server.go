// Package languageserver launches language server processes and speaks LSP to them over stdio.
package languageserver

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os/exec"
	"sync"

	"github.com/nucleotide/lspcoord/src/lspcoord/internal/executor"
	"github.com/nucleotide/lspcoord/src/lspcoord/mapper"
	"go.lsp.dev/jsonrpc2"
	"go.lsp.dev/protocol"
	"go.uber.org/fx"
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

// Module provides the language server gateway.
var Module = fx.Provide(New)

// LaunchSpec describes a language server process.
type LaunchSpec struct {
	// Name identifies the server in logs.
	Name    string
	Command string
	Args    []string
	// Dir is the working directory of the process.
	Dir string
	// Env is the complete environment of the process, in KEY=VALUE form.
	Env []string
	// Stderr receives the server's standard error. It is discarded when nil.
	Stderr io.Writer
}

// Gateway starts language server processes.
type Gateway interface {
	// Launch starts the process and connects to it. The process outlives ctx.
	Launch(ctx context.Context, spec LaunchSpec) (Client, error)
}

// Client is a connection to a single running language server.
type Client interface {
	Initialize(ctx context.Context, params *protocol.InitializeParams) (*protocol.InitializeResult, error)
	Initialized(ctx context.Context) error
	DidOpen(ctx context.Context, params *protocol.DidOpenTextDocumentParams) error
	DidChange(ctx context.Context, params *protocol.DidChangeTextDocumentParams) error
	DidClose(ctx context.Context, params *protocol.DidCloseTextDocumentParams) error
	// Completion returns the completion list, normalizing servers that reply with a bare array of items.
	Completion(ctx context.Context, params *protocol.CompletionParams) (*protocol.CompletionList, error)
	// Shutdown asks the server to shut down and exit, and waits for the process until ctx is done.
	// The process is killed when it did not exit in time.
	Shutdown(ctx context.Context) error
	// Done is closed once the process has exited.
	Done() <-chan struct{}
}

// Params are inbound parameters to initialize a new gateway.
type Params struct {
	fx.In

	Executor executor.Executor
	Logger   *zap.SugaredLogger
}

type gateway struct {
	executor executor.Executor
	logger   *zap.SugaredLogger
}

type client struct {
	name   string
	cmd    *exec.Cmd
	conn   jsonrpc2.Conn
	server protocol.Server
	logger *zap.SugaredLogger

	exited       chan struct{}
	exitErr      error
	shutdownOnce sync.Once
	shutdownErr  error
}

// stdio joins the pipes of a child process into the stream expected by jsonrpc2.
type stdio struct {
	io.ReadCloser
	stdin io.WriteCloser
}

func (s stdio) Write(p []byte) (int, error) {
	return s.stdin.Write(p)
}

func (s stdio) Close() error {
	return multierr.Append(s.stdin.Close(), s.ReadCloser.Close())
}

// New creates a new language server gateway.
func New(p Params) Gateway {
	return &gateway{
		executor: p.Executor,
		logger:   p.Logger.Named("language-server"),
	}
}

func (g *gateway) Launch(ctx context.Context, spec LaunchSpec) (Client, error) {
	cmd := exec.Command(spec.Command, spec.Args...)
	cmd.Dir = spec.Dir
	cmd.Stderr = spec.Stderr

	stdin, err := cmd.StdinPipe()
	if err != nil {
		return nil, fmt.Errorf("opening stdin of %s: %w", spec.Name, err)
	}
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, multierr.Append(fmt.Errorf("opening stdout of %s: %w", spec.Name, err), stdin.Close())
	}
	pipes := stdio{ReadCloser: stdout, stdin: stdin}

	if err := g.executor.Start(cmd, spec.Env); err != nil {
		return nil, multierr.Append(fmt.Errorf("starting %s: %w", spec.Name, err), pipes.Close())
	}

	conn := jsonrpc2.NewConn(jsonrpc2.NewStream(pipes))
	c := &client{
		name:   spec.Name,
		cmd:    cmd,
		conn:   conn,
		server: protocol.ServerDispatcher(conn, g.logger.Desugar()),
		logger: g.logger.With("server", spec.Name),
		exited: make(chan struct{}),
	}
	conn.Go(context.Background(), c.handle)
	go c.wait()

	return c, nil
}

func (c *client) Initialize(ctx context.Context, params *protocol.InitializeParams) (*protocol.InitializeResult, error) {
	return c.server.Initialize(ctx, params)
}

func (c *client) Initialized(ctx context.Context) error {
	return c.server.Initialized(ctx, &protocol.InitializedParams{})
}

func (c *client) DidOpen(ctx context.Context, params *protocol.DidOpenTextDocumentParams) error {
	return c.server.DidOpen(ctx, params)
}

func (c *client) DidChange(ctx context.Context, params *protocol.DidChangeTextDocumentParams) error {
	return c.server.DidChange(ctx, params)
}

func (c *client) DidClose(ctx context.Context, params *protocol.DidCloseTextDocumentParams) error {
	return c.server.DidClose(ctx, params)
}

func (c *client) Completion(ctx context.Context, params *protocol.CompletionParams) (*protocol.CompletionList, error) {
	var raw json.RawMessage
	if err := protocol.Call(ctx, c.conn, protocol.MethodTextDocumentCompletion, params, &raw); err != nil {
		return nil, err
	}
	return mapper.RawCompletionToList(raw)
}

func (c *client) Shutdown(ctx context.Context) error {
	c.shutdownOnce.Do(func() {
		c.shutdownErr = c.shutdown(ctx)
	})
	return c.shutdownErr
}

func (c *client) Done() <-chan struct{} {
	return c.exited
}

func (c *client) shutdown(ctx context.Context) error {
	select {
	case <-c.exited:
		return nil
	default:
	}

	var errs error
	if err := c.server.Shutdown(ctx); err != nil {
		errs = multierr.Append(errs, fmt.Errorf("shutdown request: %w", err))
	}
	if err := c.server.Exit(ctx); err != nil {
		errs = multierr.Append(errs, fmt.Errorf("exit notification: %w", err))
	}

	select {
	case <-c.exited:
	case <-ctx.Done():
		c.logger.Warnw("language server did not exit in time, killing it")
		if c.cmd.Process != nil {
			errs = multierr.Append(errs, c.cmd.Process.Kill())
		}
		<-c.exited
	}
	return errs
}

func (c *client) wait() {
	// Wait closes stdout, so every message the server wrote is read first.
	<-c.conn.Done()
	c.exitErr = c.cmd.Wait()
	if c.exitErr != nil {
		c.logger.Infow("language server exited", "error", c.exitErr)
	} else {
		c.logger.Infow("language server exited")
	}
	close(c.exited)
}

// handle serves the requests and notifications sent by the language server.
func (c *client) handle(ctx context.Context, reply jsonrpc2.Replier, req jsonrpc2.Request) error {
	switch req.Method() {
	case protocol.MethodWindowLogMessage, protocol.MethodWindowShowMessage:
		params := protocol.LogMessageParams{}
		if err := json.Unmarshal(req.Params(), &params); err == nil {
			c.logger.Debugw("server message", "type", params.Type.String(), "message", params.Message)
		}
		return reply(ctx, nil, nil)
	case protocol.MethodWorkspaceConfiguration:
		params := protocol.ConfigurationParams{}
		if err := json.Unmarshal(req.Params(), &params); err != nil {
			return reply(ctx, nil, jsonrpc2.Errorf(jsonrpc2.InvalidParams, "decoding configuration params: %v", err))
		}
		return reply(ctx, make([]interface{}, len(params.Items)), nil)
	}

	// Capability registrations, progress and other requests are accepted without acting on them.
	return reply(ctx, nil, nil)
}
