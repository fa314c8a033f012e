package handler

import (
	"github.com/nucleotide/lspcoord/src/lspcoord/controller"
	"github.com/nucleotide/lspcoord/src/lspcoord/handler/control"
	"github.com/nucleotide/lspcoord/src/lspcoord/internal/jsonrpcfx"
	"github.com/nucleotide/lspcoord/src/lspcoord/repository/editor"
	"github.com/nucleotide/lspcoord/src/lspcoord/repository/servers"
	"go.uber.org/fx"
)

// Module provides the editor control surface into an Fx application.
var Module = fx.Options(
	controller.Module,
	fx.Provide(editor.New),
	fx.Provide(servers.New),
	control.Module,
	fx.Invoke(func(m jsonrpcfx.ConnectionManager) {}),
)
