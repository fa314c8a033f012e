package controller

import (
	"github.com/nucleotide/lspcoord/src/lspcoord/controller/bridge"
	"github.com/nucleotide/lspcoord/src/lspcoord/controller/completion"
	"github.com/nucleotide/lspcoord/src/lspcoord/controller/coordinator"
	"github.com/nucleotide/lspcoord/src/lspcoord/controller/environment"
	"github.com/nucleotide/lspcoord/src/lspcoord/controller/listener"
	"github.com/nucleotide/lspcoord/src/lspcoord/controller/project"
	"go.uber.org/fx"
)

var Module = fx.Options(
	fx.Provide(environment.New),
	fx.Provide(project.New),
	fx.Provide(bridge.New),
	fx.Provide(coordinator.New),
	fx.Provide(completion.New),
	fx.Provide(listener.New),
	fx.Invoke(func(l listener.Listener) {}),
	fx.Invoke(openConfiguredWorkspace),
)
