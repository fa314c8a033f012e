package editorclient

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/gofrs/uuid"
	"github.com/nucleotide/lspcoord/idl/mock/jsonrpc2mock"
	"github.com/nucleotide/lspcoord/src/lspcoord/entity"
	"github.com/nucleotide/lspcoord/src/lspcoord/factory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.lsp.dev/jsonrpc2"
	"go.lsp.dev/protocol"
	"go.uber.org/goleak"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"
)

func TestRegisterClient(t *testing.T) {
	ctrl := gomock.NewController(t)
	ctx := context.Background()
	g := gateway{
		clients:     make(map[uuid.UUID]protocol.Client),
		connections: make(map[uuid.UUID]jsonrpc2.Conn),
		logger:      zap.NewNop(),
	}

	for i := 0; i < 10; i++ {
		mockConn := jsonrpc2mock.NewMockConn(ctrl)
		var conn jsonrpc2.Conn = mockConn
		err := g.RegisterClient(ctx, factory.UUID(), &conn)
		assert.NoError(t, err)
	}

	assert.Len(t, g.clients, 10)
	assert.Len(t, g.connections, 10)
	assert.Equal(t, 10, g.ClientCount())

	t.Run("nil connection", func(t *testing.T) {
		assert.Error(t, g.RegisterClient(ctx, factory.UUID(), nil))
		var conn jsonrpc2.Conn
		assert.Error(t, g.RegisterClient(ctx, factory.UUID(), &conn))
	})
}

func TestDeregisterClient(t *testing.T) {
	ctx := context.Background()
	ctrl := gomock.NewController(t)
	g := gateway{
		clients:     make(map[uuid.UUID]protocol.Client),
		connections: make(map[uuid.UUID]jsonrpc2.Conn),
		logger:      zap.NewNop(),
	}

	for i := 0; i < 10; i++ {
		mockConn := jsonrpc2mock.NewMockConn(ctrl)
		var conn jsonrpc2.Conn = mockConn
		require.NoError(t, g.RegisterClient(ctx, factory.UUID(), &conn))
	}

	for key := range g.clients {
		assert.NotNil(t, g.clients[key])
		err := g.DeregisterClient(ctx, key)
		assert.NoError(t, err)
		assert.Nil(t, g.clients[key])
	}
	assert.Len(t, g.clients, 0)
	assert.Len(t, g.connections, 0)
}

func TestShowMessage(t *testing.T) {
	g, mockConn, ctx := getTestGateway(t)

	messageParams := &protocol.ShowMessageParams{
		Message: "project detection failed - falling back to file-based LSP",
		Type:    protocol.MessageTypeWarning,
	}

	t.Run("notification success", func(t *testing.T) {
		mockConn.EXPECT().Notify(gomock.Eq(ctx), gomock.Eq(protocol.MethodWindowShowMessage), gomock.Eq(messageParams)).Return(nil)
		err := g.ShowMessage(ctx, messageParams)
		assert.NoError(t, err)
	})
	t.Run("notification failure", func(t *testing.T) {
		mockConn.EXPECT().Notify(gomock.Eq(ctx), gomock.Eq(protocol.MethodWindowShowMessage), gomock.Eq(messageParams)).Return(errors.New("error"))
		err := g.ShowMessage(ctx, messageParams)
		assert.Error(t, err)
	})
	t.Run("broadcast without session", func(t *testing.T) {
		ctx := context.Background()
		mockConn.EXPECT().Notify(gomock.Eq(ctx), gomock.Eq(protocol.MethodWindowShowMessage), gomock.Eq(messageParams)).Return(nil)
		err := g.ShowMessage(ctx, messageParams)
		assert.NoError(t, err)
	})
	t.Run("client not found", func(t *testing.T) {
		ctx := context.WithValue(context.Background(), entity.SessionContextKey, factory.UUID())
		err := g.ShowMessage(ctx, messageParams)
		assert.Error(t, err)
	})
}

func TestBroadcast(t *testing.T) {
	ctrl := gomock.NewController(t)
	ctx := context.Background()
	g := New(Params{Logger: zap.NewNop()})

	t.Run("no clients", func(t *testing.T) {
		assert.NoError(t, g.Notify(ctx, entity.NotificationServerStatus, "ready"))
	})

	first := jsonrpc2mock.NewMockConn(ctrl)
	second := jsonrpc2mock.NewMockConn(ctrl)
	var firstConn jsonrpc2.Conn = first
	var secondConn jsonrpc2.Conn = second
	require.NoError(t, g.RegisterClient(ctx, factory.UUID(), &firstConn))
	require.NoError(t, g.RegisterClient(ctx, factory.UUID(), &secondConn))

	t.Run("all clients notified", func(t *testing.T) {
		first.EXPECT().Notify(gomock.Any(), entity.NotificationServerStatus, "ready").Return(nil)
		second.EXPECT().Notify(gomock.Any(), entity.NotificationServerStatus, "ready").Return(nil)
		assert.NoError(t, g.Notify(ctx, entity.NotificationServerStatus, "ready"))
	})

	t.Run("one failure does not stop the others", func(t *testing.T) {
		first.EXPECT().Notify(gomock.Any(), entity.NotificationServerStatus, "ready").Return(errors.New("closed"))
		second.EXPECT().Notify(gomock.Any(), entity.NotificationServerStatus, "ready").Return(nil)
		err := g.Notify(ctx, entity.NotificationServerStatus, "ready")
		assert.ErrorContains(t, err, "closed")
	})
}

func TestLogMessage(t *testing.T) {
	g, mockConn, ctx := getTestGateway(t)
	params := &protocol.LogMessageParams{Message: "started gopls", Type: protocol.MessageTypeInfo}

	mockConn.EXPECT().Notify(gomock.Eq(ctx), gomock.Eq(protocol.MethodWindowLogMessage), gomock.Eq(params)).Return(nil)
	assert.NoError(t, g.LogMessage(ctx, params))
}

func TestPublishCompletion(t *testing.T) {
	g, mockConn, ctx := getTestGateway(t)
	event := entity.CompletionEvent{Kind: entity.CompletionEventHide, DocID: 1, ViewID: 2}

	mockConn.EXPECT().Notify(gomock.Eq(ctx), gomock.Eq(entity.NotificationCompletion), gomock.Eq(event)).Return(nil)
	assert.NoError(t, g.PublishCompletion(ctx, event))
}

func TestGetLogMessageWriter(t *testing.T) {
	g, _, ctx := getTestGateway(t)

	t.Run("success", func(t *testing.T) {
		writer, err := g.GetLogMessageWriter(ctx, "sample")
		assert.NoError(t, err)
		assert.NotNil(t, writer)
	})
	t.Run("client not found", func(t *testing.T) {
		ctx := context.WithValue(context.Background(), entity.SessionContextKey, factory.UUID())
		writer, err := g.GetLogMessageWriter(ctx, "sample")
		assert.Error(t, err)
		assert.Nil(t, writer)
	})
}

func TestWrite(t *testing.T) {
	g, mockConn, ctx := getTestGateway(t)

	sampleMsg := "sample message\n"
	prefix := "rust-analyzer"
	expectedLogMessageParams := &protocol.LogMessageParams{
		Message: fmt.Sprintf("[%s] %s", prefix, "sample message"),
		Type:    protocol.MessageTypeLog,
	}

	t.Run("notification success", func(t *testing.T) {
		mockConn.EXPECT().Notify(gomock.Eq(ctx), gomock.Eq(protocol.MethodWindowLogMessage), gomock.Eq(expectedLogMessageParams)).Return(nil)
		writer, err := g.GetLogMessageWriter(ctx, prefix)
		require.NoError(t, err)
		n, err := writer.Write([]byte(sampleMsg))
		assert.NoError(t, err)
		assert.Equal(t, len(sampleMsg), n)
	})
	t.Run("notification failure", func(t *testing.T) {
		mockConn.EXPECT().Notify(gomock.Eq(ctx), gomock.Eq(protocol.MethodWindowLogMessage), gomock.Eq(expectedLogMessageParams)).Return(errors.New("sample"))
		writer, err := g.GetLogMessageWriter(ctx, prefix)
		require.NoError(t, err)
		n, err := writer.Write([]byte(sampleMsg))
		assert.Error(t, err)
		assert.Equal(t, 0, n)
	})
}

func getTestGateway(t *testing.T) (Gateway, *jsonrpc2mock.MockConn, context.Context) {
	id := factory.UUID()
	ctx := context.WithValue(context.Background(), entity.SessionContextKey, id)
	ctrl := gomock.NewController(t)

	mockConn := jsonrpc2mock.NewMockConn(ctrl)
	var conn jsonrpc2.Conn = mockConn
	g := New(Params{Logger: zap.NewNop()})
	require.NoError(t, g.RegisterClient(ctx, id, &conn))
	return g, mockConn, ctx
}

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}
