// Package control serves the lspcoord JSON-RPC methods to connected editors.
package control

import (
	"context"
	"fmt"

	"github.com/gofrs/uuid"
	"github.com/nucleotide/lspcoord/src/lspcoord/controller/completion"
	"github.com/nucleotide/lspcoord/src/lspcoord/controller/coordinator"
	"github.com/nucleotide/lspcoord/src/lspcoord/controller/project"
	editorclient "github.com/nucleotide/lspcoord/src/lspcoord/gateway/editor-client"
	"github.com/nucleotide/lspcoord/src/lspcoord/internal/jsonrpcfx"
	"github.com/uber-go/tally"
	"go.lsp.dev/jsonrpc2"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

// Module registers the control handler with the JSON-RPC listener.
var Module = fx.Provide(New)

// Params are inbound parameters to initialize the control handler.
type Params struct {
	fx.In

	JSONRPC       jsonrpcfx.JSONRPCModule
	Coordinator   coordinator.Coordinator
	Completion    completion.Controller
	Manager       project.Manager
	EditorGateway editorclient.Gateway
	Logger        *zap.SugaredLogger
	Stats         tally.Scope
}

type connectionManager struct {
	coordinator   coordinator.Coordinator
	completion    completion.Controller
	manager       project.Manager
	editorGateway editorclient.Gateway
	logger        *zap.SugaredLogger
	stats         tally.Scope
}

// New constructs the control handler and registers it as the connection manager of the JSON-RPC listener.
func New(p Params) (jsonrpcfx.ConnectionManager, error) {
	c := &connectionManager{
		coordinator:   p.Coordinator,
		completion:    p.Completion,
		manager:       p.Manager,
		editorGateway: p.EditorGateway,
		logger:        p.Logger.Named("control"),
		stats:         p.Stats.SubScope("json_rpc"),
	}
	if err := p.JSONRPC.RegisterConnectionManager(c); err != nil {
		return nil, fmt.Errorf("registering control handler: %w", err)
	}
	return c, nil
}

// NewConnection registers the editor with the gateway and returns a router bound to its id.
func (c *connectionManager) NewConnection(ctx context.Context, conn *jsonrpc2.Conn) (router jsonrpcfx.Router, err error) {
	id, err := uuid.NewV4()
	if err != nil {
		return nil, fmt.Errorf("error while creating new connection: %w", err)
	}
	if err := c.editorGateway.RegisterClient(ctx, id, conn); err != nil {
		return nil, fmt.Errorf("error while creating new connection: %w", err)
	}
	c.stats.Counter("connections").Inc(1)
	c.logger.Infow("editor connected", "session", id)

	return &jsonRPCRouter{
		coordinator: c.coordinator,
		completion:  c.completion,
		manager:     c.manager,
		logger:      c.logger.With("session", id),
		stats:       c.stats,
		uuid:        id,
	}, nil
}

// RemoveConnection cleans up a closed connection.
func (c *connectionManager) RemoveConnection(ctx context.Context, id uuid.UUID) {
	if err := c.editorGateway.DeregisterClient(ctx, id); err != nil {
		c.logger.Warnw("failed to deregister editor", "session", id, "error", err)
		return
	}
	c.logger.Infow("editor disconnected", "session", id)
}
