package project

import (
	"context"

	"github.com/nucleotide/lspcoord/src/lspcoord/entity"
)

func (m *manager) healthLoop(ctx context.Context) {
	defer m.wg.Done()

	ticker := m.clock.NewTicker(m.cfg.HealthCheckInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C():
			m.checkHealth(ctx)
		}
	}
}

func (m *manager) checkHealth(ctx context.Context) {
	for _, root := range m.servers.WorkspaceRoots(ctx) {
		for _, s := range m.servers.GetAllFromWorkspaceRoot(ctx, root) {
			status := m.serverHealth(s)
			if status != entity.HealthHealthy {
				m.stats.Counter(_counterHealthUnresponsive).Inc(1)
			}
			m.Publish(entity.HealthCheckCompleted{
				WorkspaceRoot: root,
				ServerID:      s.ServerID,
				Status:        status,
			})
		}
	}
}

func (m *manager) serverHealth(s entity.ManagedServer) entity.HealthStatus {
	bridge := m.getBridge()
	if bridge == nil {
		return entity.HealthUnresponsive
	}
	if !bridge.HasServer(s.ServerID) {
		return entity.HealthFailed
	}
	if !bridge.IsServerReady(s.ServerID) || m.clock.Now().Sub(s.StartedAt) <= _warmupPeriod {
		return entity.HealthUnresponsive
	}
	return entity.HealthHealthy
}
