package completion

import (
	"context"
	"sync"

	"github.com/nucleotide/lspcoord/src/lspcoord/entity"
	"github.com/nucleotide/lspcoord/src/lspcoord/factory"
)

type requestVal struct {
	token      string
	cancelFunc context.CancelFunc
}

// pendingRequestStore holds the completion request in flight for each document.
type pendingRequestStore struct {
	pendingRequests map[entity.DocumentID]requestVal
	mu              sync.Mutex
}

// setPendingRequest registers a request for the document and cancels the one it replaces.
func (p *pendingRequestStore) setPendingRequest(docID entity.DocumentID, cancel context.CancelFunc) string {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.pendingRequests == nil {
		p.pendingRequests = make(map[entity.DocumentID]requestVal)
	}
	if previous, ok := p.pendingRequests[docID]; ok {
		previous.cancelFunc()
	}

	token := factory.UUID().String()
	p.pendingRequests[docID] = requestVal{
		token:      token,
		cancelFunc: cancel,
	}
	return token
}

func (p *pendingRequestStore) isCurrent(docID entity.DocumentID, token string) bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	val, ok := p.pendingRequests[docID]
	return ok && val.token == token
}

// deletePendingRequest removes the request, unless a newer one replaced it.
func (p *pendingRequestStore) deletePendingRequest(docID entity.DocumentID, token string) bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	val, ok := p.pendingRequests[docID]
	if !ok || val.token != token {
		return false
	}

	delete(p.pendingRequests, docID)
	return true
}

// cancelPendingRequest cancels and removes the request in flight for the document, if any.
func (p *pendingRequestStore) cancelPendingRequest(docID entity.DocumentID) bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	val, ok := p.pendingRequests[docID]
	if !ok {
		return false
	}

	val.cancelFunc()
	delete(p.pendingRequests, docID)
	return true
}

func (p *pendingRequestStore) cancelAll() {
	p.mu.Lock()
	defer p.mu.Unlock()

	for docID, val := range p.pendingRequests {
		val.cancelFunc()
		delete(p.pendingRequests, docID)
	}
}
