package control

import (
	"context"

	"github.com/nucleotide/lspcoord/src/lspcoord/entity"
	"github.com/nucleotide/lspcoord/src/lspcoord/mapper"
	"go.lsp.dev/jsonrpc2"
)

func (r *jsonRPCRouter) StartServer(ctx context.Context, reply jsonrpc2.Replier, req jsonrpc2.Request) error {
	params, err := mapper.RequestToStartServerParams(req)
	if err != nil {
		return reply(ctx, nil, err)
	}

	result, err := r.coordinator.StartServer(ctx, params.WorkspaceRoot, params.ServerName, params.LanguageID)
	if err != nil {
		return reply(ctx, nil, err)
	}
	return reply(ctx, result, nil)
}

func (r *jsonRPCRouter) DetectAndStartProject(ctx context.Context, reply jsonrpc2.Replier, req jsonrpc2.Request) error {
	params, err := mapper.RequestToWorkspaceParams(req)
	if err != nil {
		return reply(ctx, nil, err)
	}

	result, err := r.coordinator.DetectAndStartProject(ctx, params.WorkspaceRoot)
	if err != nil {
		return reply(ctx, nil, err)
	}
	return reply(ctx, result, nil)
}

func (r *jsonRPCRouter) StopServer(ctx context.Context, reply jsonrpc2.Replier, req jsonrpc2.Request) error {
	params, err := mapper.RequestToStopServerParams(req)
	if err != nil {
		return reply(ctx, nil, err)
	}

	err = r.coordinator.StopServer(ctx, params.ServerID)
	return reply(ctx, nil, err)
}

// WorkspaceChanged restarts servers for the new root. Closing the workspace, signalled by an empty new root,
// only requests cleanup of the old one.
func (r *jsonRPCRouter) WorkspaceChanged(ctx context.Context, reply jsonrpc2.Replier, req jsonrpc2.Request) error {
	params, err := mapper.RequestToWorkspaceChangedParams(req)
	if err != nil {
		return reply(ctx, nil, err)
	}

	if params.NewRoot == "" {
		if params.OldRoot != "" {
			r.logger.Infow("workspace closed", "root", params.OldRoot)
			r.manager.Publish(entity.ProjectCleanupRequested{WorkspaceRoot: params.OldRoot})
		}
		return reply(ctx, nil, nil)
	}

	result, err := r.coordinator.RestartServersForWorkspaceChange(ctx, params.OldRoot, params.NewRoot)
	if err != nil {
		return reply(ctx, nil, err)
	}
	return reply(ctx, result, nil)
}

func (r *jsonRPCRouter) ProjectStatus(ctx context.Context, reply jsonrpc2.Replier, req jsonrpc2.Request) error {
	params, err := mapper.RequestToWorkspaceParams(req)
	if err != nil {
		return reply(ctx, nil, err)
	}

	result, err := r.coordinator.GetProjectStatus(ctx, params.WorkspaceRoot)
	if err != nil {
		return reply(ctx, nil, err)
	}
	return reply(ctx, result, nil)
}

func (r *jsonRPCRouter) EnsureDocumentTracked(ctx context.Context, reply jsonrpc2.Replier, req jsonrpc2.Request) error {
	params, err := mapper.RequestToEnsureDocumentTrackedParams(req)
	if err != nil {
		return reply(ctx, nil, err)
	}

	err = r.coordinator.EnsureDocumentTracked(ctx, params.ServerID, params.DocID)
	return reply(ctx, nil, err)
}
