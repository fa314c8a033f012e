package jsonrpcfx

import (
	"context"
	"errors"
	"fmt"
	"net"
	"sync"

	"github.com/gofrs/uuid"
	"github.com/nucleotide/lspcoord/src/lspcoord/internal/serverinfofile"
	"github.com/uber-go/tally"
	"go.lsp.dev/jsonrpc2"
	"go.uber.org/config"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

const (
	_configKeyAddress = "jsonrpc.address"
	_outputKey        = "control-address"

	_gaugeActiveConnections = "active_connections"
)

// Module is an fx module to handle JSON-RPC requests from editor integrations.
var Module = fx.Provide(New)

// JSONRPCModule accepts editor connections on the control address and hands each one to the registered ConnectionManager.
type JSONRPCModule interface {
	OnStart(ctx context.Context) error
	OnStop(ctx context.Context) error
	ServeStream(ctx context.Context, conn jsonrpc2.Conn) error
	RegisterConnectionManager(connectionManager ConnectionManager) error
}

// Router serves as the interface through which handling of requests will be implemented.
type Router interface {
	HandleReq(ctx context.Context, reply jsonrpc2.Replier, req jsonrpc2.Request) error
	UUID() uuid.UUID
}

// ConnectionManager will manage each active connection and its corresponding Router throughout the lifecycle of a connection.
type ConnectionManager interface {
	NewConnection(ctx context.Context, conn *jsonrpc2.Conn) (router Router, err error)
	RemoveConnection(ctx context.Context, id uuid.UUID)
}

type module struct {
	Address string `json:"address"`

	connectionMgr  ConnectionManager
	ln             net.Listener
	logger         *zap.SugaredLogger
	serverInfoFile serverinfofile.ServerInfoFile
	stats          tally.Scope

	cancel context.CancelFunc
	done   chan struct{}
	mu     sync.Mutex
	// conns holds every editor connection still being served.
	conns map[jsonrpc2.Conn]struct{}
	// drained is closed when the last tracked connection is released during stop.
	drained chan struct{}
}

// Params define values to be used by JsonRpcHandler.
type Params struct {
	fx.In

	Config         config.Provider
	Lifecycle      fx.Lifecycle
	Logger         *zap.SugaredLogger
	ServerInfoFile serverinfofile.ServerInfoFile
	Stats          tally.Scope `optional:"true"`
}

// New creates a new server to handle JSON-RPC requests on the configured address.
func New(p Params) (JSONRPCModule, error) {
	if p.Lifecycle == nil || p.Config == nil {
		return nil, errors.New("required parameters are missing")
	}

	m := module{
		logger:         p.Logger,
		serverInfoFile: p.ServerInfoFile,
		stats:          tally.NoopScope,
	}
	if p.Stats != nil {
		m.stats = p.Stats.SubScope("control")
	}

	if err := m.processConfig(p.Config); err != nil {
		return nil, err
	}

	p.Lifecycle.Append(fx.Hook{
		OnStart: m.OnStart,
		OnStop:  m.OnStop,
	})

	return &m, nil
}

// OnStart binds the listener, advertises its address and begins handling incoming connections.
func (m *module) OnStart(ctx context.Context) error {
	if err := m.setup(); err != nil {
		return err
	}

	// The bound address differs from the configured one when an ephemeral port is requested.
	address := m.ln.Addr().String()
	if err := m.serverInfoFile.UpdateField(_outputKey, address); err != nil {
		m.ln.Close()
		return fmt.Errorf("advertising control address: %w", err)
	}

	serveCtx, cancel := context.WithCancel(context.Background())
	m.mu.Lock()
	m.cancel = cancel
	m.done = make(chan struct{})
	m.mu.Unlock()

	go m.start(serveCtx, address)
	return nil
}

// OnStop disconnects every editor, then closes the listener and waits for the accept loop to exit.
func (m *module) OnStop(ctx context.Context) error {
	m.mu.Lock()
	cancel, done := m.cancel, m.done
	m.cancel = nil
	open := make([]jsonrpc2.Conn, 0, len(m.conns))
	for conn := range m.conns {
		open = append(open, conn)
	}
	drained := make(chan struct{})
	if len(open) == 0 {
		close(drained)
	} else {
		m.drained = drained
	}
	m.mu.Unlock()

	if cancel == nil {
		return nil
	}

	for _, conn := range open {
		if err := conn.Close(); err != nil {
			m.logger.Warnw("closing editor connection", zap.Error(err))
		}
	}
	// Connections are released while the accept loop still runs so their results are collected.
	select {
	case <-drained:
	case <-ctx.Done():
		cancel()
		m.ln.Close()
		return ctx.Err()
	}

	cancel()
	m.ln.Close()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// ServeStream is called when a new connection is initiated. Requests received via the connection will be routed to the handler, and answered via the connection's replier.
func (m *module) ServeStream(ctx context.Context, conn jsonrpc2.Conn) error {
	if m.connectionMgr == nil {
		m.logger.Errorf("cannot serve connection, no connection manager set")
		return errors.New("cannot serve connection, no connection manager set")
	}

	handler, err := m.connectionMgr.NewConnection(ctx, &conn)
	if err != nil {
		return err
	}
	m.track(conn)
	defer m.release(conn)

	m.logger.Infow("editor connected", zap.Stringer("uuid", handler.UUID()))
	conn.Go(ctx, handler.HandleReq)

	// Block until the connection is closed.
	<-conn.Done()

	m.connectionMgr.RemoveConnection(ctx, handler.UUID())
	m.logger.Infow("editor disconnected", zap.Stringer("uuid", handler.UUID()))

	return conn.Err()
}

func (m *module) track(conn jsonrpc2.Conn) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.conns == nil {
		m.conns = make(map[jsonrpc2.Conn]struct{})
	}
	m.conns[conn] = struct{}{}
	m.scope().Gauge(_gaugeActiveConnections).Update(float64(len(m.conns)))
}

func (m *module) release(conn jsonrpc2.Conn) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.conns, conn)
	m.scope().Gauge(_gaugeActiveConnections).Update(float64(len(m.conns)))
	if len(m.conns) == 0 && m.drained != nil {
		close(m.drained)
		m.drained = nil
	}
}

func (m *module) scope() tally.Scope {
	if m.stats == nil {
		return tally.NoopScope
	}
	return m.stats
}

// RegisterConnectionManager sets the connection manager, which keeps track of current active connections and provides a Router implementation.
func (m *module) RegisterConnectionManager(connectionMgr ConnectionManager) error {
	if m.connectionMgr != nil {
		return errors.New("cannot register a duplicate connection manager")
	}
	m.connectionMgr = connectionMgr
	return nil
}

// setup should be called after creation of a new handler to set initial values.
func (m *module) setup() error {
	if m.Address == "" {
		return errors.New("setup called before address is set")
	}

	addr, err := net.ResolveTCPAddr("tcp", m.Address)
	if err != nil {
		return err
	}

	m.ln, err = net.ListenTCP("tcp", addr)
	return err
}

func (m *module) start(ctx context.Context, address string) {
	defer close(m.done)

	m.logger.Infow("started JSON-RPC control listener", zap.String("address", address))
	if err := jsonrpc2.Serve(ctx, m.ln, m, 0); err != nil && ctx.Err() == nil {
		m.logger.Errorw("JSON-RPC control listener stopped", zap.Error(err))
	}
}

// processConfig will parse the configuration for any values required by this module.
func (m *module) processConfig(cfg config.Provider) error {
	val := cfg.Get(_configKeyAddress)
	if err := val.Populate(&m.Address); err != nil {
		// incorrectly formatted config
		return fmt.Errorf("getting config field %q: %w", _configKeyAddress, err)
	}

	if m.Address == "" {
		// yaml is missing either the key or value
		return fmt.Errorf("missing field %q in config", _configKeyAddress)
	}

	return nil
}
