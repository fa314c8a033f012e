package control

import (
	"context"

	"github.com/gofrs/uuid"
	"github.com/nucleotide/lspcoord/src/lspcoord/controller/completion"
	"github.com/nucleotide/lspcoord/src/lspcoord/controller/coordinator"
	"github.com/nucleotide/lspcoord/src/lspcoord/controller/project"
	"github.com/nucleotide/lspcoord/src/lspcoord/entity"
	"github.com/nucleotide/lspcoord/src/lspcoord/mapper"
	"github.com/uber-go/tally"
	"go.lsp.dev/jsonrpc2"
	"go.uber.org/zap"
)

type jsonRPCRouter struct {
	coordinator coordinator.Coordinator
	completion  completion.Controller
	manager     project.Manager
	logger      *zap.SugaredLogger
	stats       tally.Scope
	uuid        uuid.UUID
}

// HandleReq handles routing for a single request.
func (r *jsonRPCRouter) HandleReq(ctx context.Context, reply jsonrpc2.Replier, req jsonrpc2.Request) error {
	ctx = mapper.SessionUUIDToContext(ctx, r.uuid)
	r.stats.Tagged(map[string]string{"method": req.Method()}).Counter("requests").Inc(1)

	switch req.Method() {
	// Server and project commands.
	case entity.MethodStartServer:
		return r.StartServer(ctx, reply, req)

	case entity.MethodDetectAndStartProject:
		return r.DetectAndStartProject(ctx, reply, req)

	case entity.MethodStopServer:
		return r.StopServer(ctx, reply, req)

	case entity.MethodWorkspaceChanged:
		return r.WorkspaceChanged(ctx, reply, req)

	case entity.MethodProjectStatus:
		return r.ProjectStatus(ctx, reply, req)

	case entity.MethodEnsureDocumentTracked:
		return r.EnsureDocumentTracked(ctx, reply, req)

	// Editor model.
	case entity.MethodOpenDocument:
		return r.OpenDocument(ctx, reply, req)

	case entity.MethodChangeDocument:
		return r.ChangeDocument(ctx, reply, req)

	case entity.MethodCloseDocument:
		return r.CloseDocument(ctx, reply, req)

	case entity.MethodSetCursor:
		return r.SetCursor(ctx, reply, req)

	// Completion.
	case entity.MethodCompletion:
		return r.Completion(ctx, reply, req)

	case entity.MethodCancelCompletion:
		return r.CancelCompletion(ctx, reply, req)

	default:
		return jsonrpc2.MethodNotFoundHandler(ctx, reply, req)
	}
}

func (r *jsonRPCRouter) UUID() uuid.UUID {
	return r.uuid
}
