package bridge

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/gofrs/uuid"
	"github.com/nucleotide/lspcoord/src/lspcoord/entity"
	coorderrors "github.com/nucleotide/lspcoord/src/lspcoord/internal/errors"
	"github.com/nucleotide/lspcoord/src/lspcoord/mapper"
	"go.lsp.dev/protocol"
	"go.uber.org/multierr"
)

func (b *bridge) EnsureDocumentTracked(ctx context.Context, id uuid.UUID, docID entity.DocumentID) error {
	doc, err := b.editor.Document(ctx, docID)
	if err != nil {
		return err
	}
	if doc.Path == "" {
		b.logger.Warnw("document has no path, not tracking it", "docID", docID, "serverID", id)
		return nil
	}

	b.mu.Lock()
	entry, ok := b.servers[id]
	if !ok {
		b.mu.Unlock()
		return &coorderrors.DocumentTrackingError{ServerID: id, DocID: docID, Err: &coorderrors.ServerNotFoundError{ID: id}}
	}
	if _, tracked := entry.tracked[docID]; tracked {
		b.mu.Unlock()
		return nil
	}
	// Claimed before the notification so that concurrent callers open the document once.
	entry.tracked[docID] = doc.Text
	b.mu.Unlock()

	if err := entry.client.DidOpen(ctx, mapper.DocumentToDidOpenParams(doc)); err != nil {
		b.mu.Lock()
		delete(entry.tracked, docID)
		b.mu.Unlock()
		return &coorderrors.DocumentTrackingError{ServerID: id, DocID: docID, Err: err}
	}

	b.logger.Infow("document tracked", "docID", docID, "path", doc.Path, "server", entry.server.ServerName, "serverID", id)
	return nil
}

func (b *bridge) SyncDocument(ctx context.Context, docID entity.DocumentID) error {
	doc, err := b.editor.Document(ctx, docID)
	if err != nil {
		return err
	}

	type pendingChange struct {
		entry   *serverEntry
		changes []protocol.TextDocumentContentChangeEvent
	}

	var pending []pendingChange
	b.mu.Lock()
	for _, entry := range b.servers {
		last, tracked := entry.tracked[docID]
		if !tracked {
			continue
		}

		var changes []protocol.TextDocumentContentChangeEvent
		switch entry.syncKind {
		case protocol.TextDocumentSyncKindNone:
			continue
		case protocol.TextDocumentSyncKindIncremental:
			changes, err = mapper.TextToContentChanges(last, doc.Text)
			if err != nil {
				b.logger.Warnw("falling back to a full document sync", "docID", docID, "error", err)
				changes = mapper.FullContentChange(doc.Text)
			}
		default:
			if last != doc.Text {
				changes = mapper.FullContentChange(doc.Text)
			}
		}
		if len(changes) == 0 {
			continue
		}
		entry.tracked[docID] = doc.Text
		pending = append(pending, pendingChange{entry: entry, changes: changes})
	}
	b.mu.Unlock()

	var errs error
	for _, p := range pending {
		if err := p.entry.client.DidChange(ctx, mapper.DocumentToDidChangeParams(doc, p.changes)); err != nil {
			errs = multierr.Append(errs, fmt.Errorf("syncing document %d with %s: %w", docID, p.entry.server.ServerName, err))
		}
	}
	return errs
}

func (b *bridge) CloseDocument(ctx context.Context, docID entity.DocumentID) error {
	doc, err := b.editor.Document(ctx, docID)
	if err != nil {
		return err
	}

	var entries []*serverEntry
	b.mu.Lock()
	for _, entry := range b.servers {
		if _, tracked := entry.tracked[docID]; tracked {
			delete(entry.tracked, docID)
			entries = append(entries, entry)
		}
	}
	b.mu.Unlock()

	var errs error
	for _, entry := range entries {
		if err := entry.client.DidClose(ctx, mapper.DocumentToDidCloseParams(doc)); err != nil {
			errs = multierr.Append(errs, fmt.Errorf("closing document %d on %s: %w", docID, entry.server.ServerName, err))
		}
	}
	return errs
}

func (b *bridge) CompletionServers(ctx context.Context, docID entity.DocumentID) ([]CompletionServer, error) {
	doc, err := b.editor.Document(ctx, docID)
	if err != nil {
		return nil, err
	}

	var candidates []*serverEntry
	b.mu.RLock()
	for _, entry := range b.servers {
		if !entry.ready {
			continue
		}
		if _, ok := mapper.ServerCapabilitiesCompletion(entry.capabilities); !ok {
			continue
		}
		_, tracked := entry.tracked[docID]
		if tracked || (entry.languages.SupportsLanguage(doc.LanguageID) && withinRoot(doc.Path, entry.server.WorkspaceRoot)) {
			candidates = append(candidates, entry)
		}
	}
	b.mu.RUnlock()

	sort.Slice(candidates, func(i, j int) bool {
		a, c := candidates[i].server, candidates[j].server
		if !a.StartedAt.Equal(c.StartedAt) {
			return a.StartedAt.Before(c.StartedAt)
		}
		return a.ServerName < c.ServerName
	})

	result := make([]CompletionServer, 0, len(candidates))
	for _, entry := range candidates {
		triggers, _ := mapper.ServerCapabilitiesCompletion(entry.capabilities)
		result = append(result, CompletionServer{
			ServerID:          entry.server.ServerID,
			ServerName:        entry.server.ServerName,
			TriggerCharacters: triggers,
		})
	}
	return result, nil
}

func withinRoot(path string, root string) bool {
	if path == "" {
		return false
	}
	rel, err := filepath.Rel(root, path)
	return err == nil && rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}
