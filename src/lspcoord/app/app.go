package app

import (
	"context"
	"time"

	"github.com/nucleotide/lspcoord/src/lspcoord/gateway"
	"github.com/nucleotide/lspcoord/src/lspcoord/handler"
	"github.com/nucleotide/lspcoord/src/lspcoord/internal/clock"
	"github.com/nucleotide/lspcoord/src/lspcoord/internal/core"
	"github.com/nucleotide/lspcoord/src/lspcoord/internal/executor"
	"github.com/nucleotide/lspcoord/src/lspcoord/internal/fs"
	"github.com/nucleotide/lspcoord/src/lspcoord/internal/jsonrpcfx"
	"github.com/nucleotide/lspcoord/src/lspcoord/internal/logfilewriter"
	"github.com/nucleotide/lspcoord/src/lspcoord/internal/serverinfofile"
	workspaceutils "github.com/nucleotide/lspcoord/src/lspcoord/internal/workspace-utils"
	"github.com/uber-go/tally"
	"go.uber.org/fx"
)

// Module defines the lspcoord application module.
var Module = fx.Options(
	gateway.Module, // outbounds
	handler.Module, // inbounds
	jsonrpcfx.Module,
	fs.Module,
	clock.Module,
	executor.Module,
	serverinfofile.Module,
	logfilewriter.Module,
	workspaceutils.Module,
	core.ConfigModule,
	core.LoggerModule,
	fx.Provide(func(lc fx.Lifecycle) tally.Scope {
		rs, closer := tally.NewRootScope(tally.ScopeOptions{
			Tags: map[string]string{
				"service": "lspcoord",
			},
		}, 1*time.Second)

		lc.Append(fx.Hook{
			OnStop: func(ctx context.Context) error {
				return closer.Close()
			},
		})

		return rs
	}),
	fx.Decorate(decorateEnvContext),
	fx.Decorate(decorateConfigProvider),
	fx.Provide(func() Context {
		return Context{
			Environment:        "local",
			RuntimeEnvironment: "local",
		}
	}),
)
