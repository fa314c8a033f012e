package servers

import (
	"context"
	"sort"
	"sync"

	"github.com/gofrs/uuid"
	"github.com/nucleotide/lspcoord/src/lspcoord/entity"
	"github.com/nucleotide/lspcoord/src/lspcoord/internal/errors"
	"github.com/nucleotide/lspcoord/src/lspcoord/mapper"
	"github.com/nucleotide/lspcoord/src/lspcoord/model"
	"github.com/uber-go/tally"
)

const _gaugeManagedServers = "managed_servers"

// Repository is the registry of managed language servers, grouped by workspace root.
type Repository interface {
	// Record stores a server. When a server with the same name is already recorded for the root,
	// the existing record is returned and nothing is stored.
	Record(ctx context.Context, s entity.ManagedServer) (_ entity.ManagedServer, added bool, _ error)
	Get(ctx context.Context, id uuid.UUID) (entity.ManagedServer, error)
	// Find returns the server with the given name recorded for the root.
	Find(ctx context.Context, workspaceRoot string, serverName string) (entity.ManagedServer, bool)
	// GetAllFromWorkspaceRoot returns the servers of a root, oldest first.
	GetAllFromWorkspaceRoot(ctx context.Context, workspaceRoot string) []entity.ManagedServer
	Delete(ctx context.Context, id uuid.UUID) (entity.ManagedServer, error)
	// DeleteWorkspaceRoot removes and returns every server of a root.
	DeleteWorkspaceRoot(ctx context.Context, workspaceRoot string) []entity.ManagedServer
	// WorkspaceRoots returns the roots with at least one server, sorted.
	WorkspaceRoots(ctx context.Context) []string
	ServerCount(ctx context.Context) int
}

type repository struct {
	mu       sync.Mutex
	memstore map[string]map[uuid.UUID]*model.ManagedServer
	roots    map[uuid.UUID]string
	stats    tally.Scope
}

// New returns a repository to an in memory managed server store.
func New(stats tally.Scope) Repository {
	return &repository{
		memstore: make(map[string]map[uuid.UUID]*model.ManagedServer),
		roots:    make(map[uuid.UUID]string),
		stats:    stats,
	}
}

func (r *repository) Record(ctx context.Context, s entity.ManagedServer) (entity.ManagedServer, bool, error) {
	if s.ServerID == uuid.Nil {
		return entity.ManagedServer{}, false, errors.New("can't record a server without id")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if existing, ok := r.findLocked(s.WorkspaceRoot, s.ServerName); ok {
		return mapper.ModelToManagedServer(existing), false, nil
	}

	servers, ok := r.memstore[s.WorkspaceRoot]
	if !ok {
		servers = make(map[uuid.UUID]*model.ManagedServer)
		r.memstore[s.WorkspaceRoot] = servers
	}
	servers[s.ServerID] = mapper.ManagedServerToModel(&s)
	r.roots[s.ServerID] = s.WorkspaceRoot
	r.updateGauge()
	return s, true, nil
}

func (r *repository) Get(ctx context.Context, id uuid.UUID) (entity.ManagedServer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	root, ok := r.roots[id]
	if !ok {
		return entity.ManagedServer{}, &errors.ServerNotFoundError{ID: id}
	}
	return mapper.ModelToManagedServer(r.memstore[root][id]), nil
}

func (r *repository) Find(ctx context.Context, workspaceRoot string, serverName string) (entity.ManagedServer, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	m, ok := r.findLocked(workspaceRoot, serverName)
	if !ok {
		return entity.ManagedServer{}, false
	}
	return mapper.ModelToManagedServer(m), true
}

func (r *repository) GetAllFromWorkspaceRoot(ctx context.Context, workspaceRoot string) []entity.ManagedServer {
	r.mu.Lock()
	defer r.mu.Unlock()

	found := make([]entity.ManagedServer, 0, len(r.memstore[workspaceRoot]))
	for _, m := range r.memstore[workspaceRoot] {
		found = append(found, mapper.ModelToManagedServer(m))
	}
	sortServers(found)
	return found
}

func (r *repository) Delete(ctx context.Context, id uuid.UUID) (entity.ManagedServer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	root, ok := r.roots[id]
	if !ok {
		return entity.ManagedServer{}, &errors.ServerNotFoundError{ID: id}
	}

	removed := mapper.ModelToManagedServer(r.memstore[root][id])
	delete(r.memstore[root], id)
	if len(r.memstore[root]) == 0 {
		delete(r.memstore, root)
	}
	delete(r.roots, id)
	r.updateGauge()
	return removed, nil
}

func (r *repository) DeleteWorkspaceRoot(ctx context.Context, workspaceRoot string) []entity.ManagedServer {
	r.mu.Lock()
	defer r.mu.Unlock()

	removed := make([]entity.ManagedServer, 0, len(r.memstore[workspaceRoot]))
	for id, m := range r.memstore[workspaceRoot] {
		removed = append(removed, mapper.ModelToManagedServer(m))
		delete(r.roots, id)
	}
	delete(r.memstore, workspaceRoot)
	r.updateGauge()

	sortServers(removed)
	return removed
}

func (r *repository) WorkspaceRoots(ctx context.Context) []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	roots := make([]string, 0, len(r.memstore))
	for root := range r.memstore {
		roots = append(roots, root)
	}
	sort.Strings(roots)
	return roots
}

func (r *repository) ServerCount(ctx context.Context) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	return len(r.roots)
}

func (r *repository) findLocked(workspaceRoot string, serverName string) (*model.ManagedServer, bool) {
	for _, m := range r.memstore[workspaceRoot] {
		if m.ServerName == serverName {
			return m, true
		}
	}
	return nil, false
}

func (r *repository) updateGauge() {
	r.stats.Gauge(_gaugeManagedServers).Update(float64(len(r.roots)))
}

func sortServers(servers []entity.ManagedServer) {
	sort.Slice(servers, func(i, j int) bool {
		if !servers[i].StartedAt.Equal(servers[j].StartedAt) {
			return servers[i].StartedAt.Before(servers[j].StartedAt)
		}
		return servers[i].ServerName < servers[j].ServerName
	})
}
