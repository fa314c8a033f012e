package controller

import (
	"context"
	"sync"

	"github.com/nucleotide/lspcoord/src/lspcoord/controller/coordinator"
	"github.com/nucleotide/lspcoord/src/lspcoord/entity"
	"go.uber.org/config"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

type workspaceParams struct {
	fx.In

	Config      config.Provider
	Coordinator coordinator.Coordinator
	Logger      *zap.SugaredLogger
	Lifecycle   fx.Lifecycle
}

// openConfiguredWorkspace opens the configured workspace root once the daemon has started.
// Opening runs in the background so that a slow environment capture does not delay startup.
func openConfiguredWorkspace(p workspaceParams) error {
	var root string
	if err := p.Config.Get(entity.WorkspaceRootConfigKey).Populate(&root); err != nil {
		return err
	}
	if root == "" {
		return nil
	}

	logger := p.Logger.Named("workspace")
	ctx, cancel := context.WithCancel(context.Background())
	var wg sync.WaitGroup

	p.Lifecycle.Append(fx.Hook{
		OnStart: func(context.Context) error {
			wg.Add(1)
			go func() {
				defer wg.Done()
				result, err := p.Coordinator.RestartServersForWorkspaceChange(ctx, "", root)
				if err != nil {
					logger.Warnw("failed to open workspace", "root", root, "error", err)
					return
				}
				logger.Infow("workspace opened", "root", result.NewRoot, "environment", result.Environment, "servers", len(result.Started))
			}()
			return nil
		},
		OnStop: func(context.Context) error {
			cancel()
			wg.Wait()
			return nil
		},
	})
	return nil
}
