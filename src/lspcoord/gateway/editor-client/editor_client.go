// Package editorclient sends notifications to the editor integrations connected on the control listener.
package editorclient

import (
	"context"
	"fmt"
	"io"
	"sort"
	"strings"
	"sync"

	"github.com/gofrs/uuid"
	"github.com/nucleotide/lspcoord/src/lspcoord/entity"
	"github.com/nucleotide/lspcoord/src/lspcoord/mapper"
	"go.lsp.dev/jsonrpc2"
	"go.lsp.dev/protocol"
	"go.uber.org/fx"
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

const _errSendToClient = "sending notification to editor: %w"

// Module provides the editor client gateway.
var Module = fx.Provide(New)

// Gateway is used to send outbound notifications to editors.
// A context carrying a session UUID routes to that connection only. Any other context broadcasts
// to every connected editor, and succeeds without sending anything when none is connected.
type Gateway interface {
	// RegisterClient registers a new client with the gateway. Should be called each time a new editor connection is accepted.
	RegisterClient(ctx context.Context, id uuid.UUID, conn *jsonrpc2.Conn) error
	// DeregisterClient removes a client from the gateway. Should be called each time an editor connection is closed.
	DeregisterClient(ctx context.Context, id uuid.UUID) error

	ShowMessage(ctx context.Context, params *protocol.ShowMessageParams) error
	LogMessage(ctx context.Context, params *protocol.LogMessageParams) error
	// PublishCompletion sends a completion state change to editors.
	PublishCompletion(ctx context.Context, event entity.CompletionEvent) error
	// Notify sends an arbitrary notification to editors.
	Notify(ctx context.Context, method string, params interface{}) error

	// GetLogMessageWriter returns an io.Writer that can be used to log messages to editors.
	// Do not store or use across requests, get a new one each time as needed.
	GetLogMessageWriter(ctx context.Context, prefix string) (io.Writer, error)
	// ClientCount returns the number of connected editors.
	ClientCount() int
}

// Params are inbound parameters to initialize a new gateway.
type Params struct {
	fx.In

	Logger *zap.Logger
}

type gateway struct {
	clients     map[uuid.UUID]protocol.Client
	connections map[uuid.UUID]jsonrpc2.Conn
	clientsMu   sync.Mutex
	logger      *zap.Logger
}

type target struct {
	client protocol.Client
	conn   jsonrpc2.Conn
}

// New returns a Gateway for sending editor notifications.
func New(p Params) Gateway {
	return &gateway{
		clients:     make(map[uuid.UUID]protocol.Client),
		connections: make(map[uuid.UUID]jsonrpc2.Conn),
		logger:      p.Logger,
	}
}

func (g *gateway) RegisterClient(ctx context.Context, id uuid.UUID, conn *jsonrpc2.Conn) error {
	if conn == nil || *conn == nil {
		return fmt.Errorf("registering editor %q: nil connection", id)
	}

	g.clientsMu.Lock()
	defer g.clientsMu.Unlock()

	g.clients[id] = protocol.ClientDispatcher(*conn, g.logger)
	g.connections[id] = *conn
	return nil
}

func (g *gateway) DeregisterClient(ctx context.Context, id uuid.UUID) error {
	g.clientsMu.Lock()
	defer g.clientsMu.Unlock()

	delete(g.clients, id)
	delete(g.connections, id)
	return nil
}

func (g *gateway) ShowMessage(ctx context.Context, params *protocol.ShowMessageParams) error {
	return g.forEach(ctx, func(t target) error {
		return t.client.ShowMessage(ctx, params)
	})
}

func (g *gateway) LogMessage(ctx context.Context, params *protocol.LogMessageParams) error {
	return g.forEach(ctx, func(t target) error {
		return t.client.LogMessage(ctx, params)
	})
}

func (g *gateway) PublishCompletion(ctx context.Context, event entity.CompletionEvent) error {
	return g.Notify(ctx, entity.NotificationCompletion, event)
}

func (g *gateway) Notify(ctx context.Context, method string, params interface{}) error {
	return g.forEach(ctx, func(t target) error {
		return t.conn.Notify(ctx, method, params)
	})
}

func (g *gateway) ClientCount() int {
	g.clientsMu.Lock()
	defer g.clientsMu.Unlock()
	return len(g.clients)
}

func (g *gateway) forEach(ctx context.Context, send func(t target) error) error {
	targets, err := g.getTargets(ctx)
	if err != nil {
		return fmt.Errorf(_errSendToClient, err)
	}

	var errs error
	for _, t := range targets {
		errs = multierr.Append(errs, send(t))
	}
	if errs != nil {
		return fmt.Errorf(_errSendToClient, errs)
	}
	return nil
}

// getTargets snapshots the clients to notify, so that no lock is held while writing to a connection.
func (g *gateway) getTargets(ctx context.Context) ([]target, error) {
	g.clientsMu.Lock()
	defer g.clientsMu.Unlock()

	id, err := mapper.ContextToSessionUUID(ctx)
	if err != nil {
		ids := make([]uuid.UUID, 0, len(g.clients))
		for id := range g.clients {
			ids = append(ids, id)
		}
		sort.Slice(ids, func(i, j int) bool { return ids[i].String() < ids[j].String() })

		result := make([]target, 0, len(ids))
		for _, id := range ids {
			result = append(result, target{client: g.clients[id], conn: g.connections[id]})
		}
		return result, nil
	}

	client, ok := g.clients[id]
	if !ok {
		return nil, fmt.Errorf("client with id %q not found", id)
	}
	conn, ok := g.connections[id]
	if !ok {
		return nil, fmt.Errorf("client with id %q not found", id)
	}
	return []target{{client: client, conn: conn}}, nil
}

// logMessageWriter implements io.Writer to allow logging to editors in situations that require an io.Writer.
type logMessageWriter struct {
	gateway *gateway
	ctx     context.Context
	prefix  string
}

func (g *gateway) GetLogMessageWriter(ctx context.Context, prefix string) (io.Writer, error) {
	if _, err := g.getTargets(ctx); err != nil {
		return nil, fmt.Errorf("getting editor log message writer: %w", err)
	}
	w := &logMessageWriter{
		gateway: g,
		ctx:     ctx,
		prefix:  prefix,
	}
	return w, nil
}

func (w *logMessageWriter) Write(p []byte) (n int, err error) {
	str := strings.TrimSuffix(string(p), "\n")
	if err := w.gateway.LogMessage(w.ctx, &protocol.LogMessageParams{
		Message: fmt.Sprintf("[%s] %s", w.prefix, str),
		Type:    protocol.MessageTypeLog,
	}); err != nil {
		return 0, fmt.Errorf("writing to editor log message writer: %w", err)
	}
	return len(p), nil
}
