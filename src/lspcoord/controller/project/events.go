package project

import (
	"context"

	"github.com/nucleotide/lspcoord/src/lspcoord/entity"
)

func (m *manager) Publish(event entity.ProjectEvent) {
	select {
	case m.events <- event:
	default:
		m.stats.Counter(_counterEventsDropped).Inc(1)
		m.logger.Warnw("event queue full, dropping event", "event", event.EventName(), "root", event.EventRoot())
	}
}

func (m *manager) Subscribe() <-chan entity.ProjectEvent {
	m.subMu.Lock()
	defer m.subMu.Unlock()

	if m.subscriber != nil {
		close(m.subscriber)
	}
	m.subscriber = make(chan entity.ProjectEvent, _subscriptionBufferSize)
	return m.subscriber
}

// forward hands an event to the active subscriber without blocking.
func (m *manager) forward(event entity.ProjectEvent) {
	m.subMu.Lock()
	defer m.subMu.Unlock()

	if m.subscriber == nil {
		m.logger.Debugw("no subscriber for event", "event", event.EventName())
		return
	}
	select {
	case m.subscriber <- event:
	default:
		m.stats.Counter(_counterEventsDropped).Inc(1)
		m.logger.Warnw("subscriber is not keeping up, dropping event", "event", event.EventName(), "root", event.EventRoot())
	}
}

func (m *manager) processEvents(ctx context.Context) {
	defer m.wg.Done()

	for {
		select {
		case <-ctx.Done():
			return
		case event := <-m.events:
			m.handleEvent(event)
			m.forward(event)
		}
	}
}

func (m *manager) handleEvent(event entity.ProjectEvent) {
	detected, ok := event.(entity.ProjectDetected)
	if !ok {
		return
	}

	if detected.WorkspaceRoot == _systemRoot {
		m.logger.Infow("skipping server startup for the system root")
		return
	}
	if m.getBridge() == nil {
		m.logger.Warnw("server startup unavailable without a bridge", "root", detected.WorkspaceRoot, "servers", detected.Servers)
		return
	}

	languageID := detected.ProjectType.PrimaryLanguageID()
	for _, server := range detected.Servers {
		m.logger.Infow("requesting server startup", "root", detected.WorkspaceRoot, "server", server, "languageID", languageID)
		m.Publish(entity.ServerStartupRequested{
			WorkspaceRoot: detected.WorkspaceRoot,
			ServerName:    server,
			LanguageID:    languageID,
		})
	}
}
