package editor

import (
	"context"
	"sort"
	"unicode/utf8"

	"github.com/nucleotide/lspcoord/src/lspcoord/entity"
	"github.com/nucleotide/lspcoord/src/lspcoord/internal/errors"
	"github.com/nucleotide/lspcoord/src/lspcoord/mapper"
	"github.com/nucleotide/lspcoord/src/lspcoord/model"
	"github.com/uber-go/tally"
)

const _gaugeTrackedDocuments = "tracked_documents"

// Repository is the editor model: open documents, the views onto them and the working directory.
// Documents are returned as copies. It is not safe for concurrent use; the coordinator loop owns it.
type Repository interface {
	// OpenDocument stores a document, replacing any document with the same id.
	OpenDocument(ctx context.Context, doc entity.Document) error
	Document(ctx context.Context, id entity.DocumentID) (*entity.Document, error)
	// UpdateText replaces the document text and bumps its version.
	UpdateText(ctx context.Context, id entity.DocumentID, text string) (*entity.Document, error)
	// CloseDocument removes a document and every view showing it.
	CloseDocument(ctx context.Context, id entity.DocumentID) (*entity.Document, error)
	Documents(ctx context.Context) []entity.Document
	// SetCursor moves the cursor of a view, creating the view when needed. The cursor is clamped to the document length.
	SetCursor(ctx context.Context, viewID entity.ViewID, docID entity.DocumentID, cursor int) (entity.View, error)
	View(ctx context.Context, id entity.ViewID) (entity.View, error)
	WorkingDirectory(ctx context.Context) string
	SetWorkingDirectory(ctx context.Context, dir string)
}

type repository struct {
	documents  map[entity.DocumentID]*model.TrackedDocument
	views      map[entity.ViewID]entity.View
	workingDir string
	stats      tally.Scope
}

// New returns an empty editor model.
func New(stats tally.Scope) Repository {
	return &repository{
		documents: make(map[entity.DocumentID]*model.TrackedDocument),
		views:     make(map[entity.ViewID]entity.View),
		stats:     stats,
	}
}

func (r *repository) OpenDocument(ctx context.Context, doc entity.Document) error {
	if doc.Version == 0 {
		doc.Version = 1
	}
	r.documents[doc.ID] = mapper.DocumentToModel(&doc)
	r.updateGauge()
	return nil
}

func (r *repository) Document(ctx context.Context, id entity.DocumentID) (*entity.Document, error) {
	m, ok := r.documents[id]
	if !ok {
		return nil, &errors.DocumentNotFoundError{ID: id}
	}
	return mapper.ModelToDocument(m), nil
}

func (r *repository) UpdateText(ctx context.Context, id entity.DocumentID, text string) (*entity.Document, error) {
	m, ok := r.documents[id]
	if !ok {
		return nil, &errors.DocumentNotFoundError{ID: id}
	}
	m.Text = text
	m.Version++

	// Cursors must stay within the new text.
	length := utf8.RuneCountInString(text)
	for viewID, v := range r.views {
		if v.DocID == id && v.Cursor > length {
			v.Cursor = length
			r.views[viewID] = v
		}
	}
	return mapper.ModelToDocument(m), nil
}

func (r *repository) CloseDocument(ctx context.Context, id entity.DocumentID) (*entity.Document, error) {
	m, ok := r.documents[id]
	if !ok {
		return nil, &errors.DocumentNotFoundError{ID: id}
	}
	delete(r.documents, id)
	for viewID, v := range r.views {
		if v.DocID == id {
			delete(r.views, viewID)
		}
	}
	r.updateGauge()
	return mapper.ModelToDocument(m), nil
}

func (r *repository) Documents(ctx context.Context) []entity.Document {
	result := make([]entity.Document, 0, len(r.documents))
	for _, m := range r.documents {
		result = append(result, *mapper.ModelToDocument(m))
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result
}

func (r *repository) SetCursor(ctx context.Context, viewID entity.ViewID, docID entity.DocumentID, cursor int) (entity.View, error) {
	m, ok := r.documents[docID]
	if !ok {
		return entity.View{}, &errors.DocumentNotFoundError{ID: docID}
	}

	if length := utf8.RuneCountInString(m.Text); cursor > length {
		cursor = length
	}
	if cursor < 0 {
		cursor = 0
	}

	v := entity.View{ID: viewID, DocID: docID, Cursor: cursor}
	r.views[viewID] = v
	return v, nil
}

func (r *repository) View(ctx context.Context, id entity.ViewID) (entity.View, error) {
	v, ok := r.views[id]
	if !ok {
		return entity.View{}, &errors.ViewNotFoundError{ID: id}
	}
	return v, nil
}

func (r *repository) WorkingDirectory(ctx context.Context) string {
	return r.workingDir
}

func (r *repository) SetWorkingDirectory(ctx context.Context, dir string) {
	r.workingDir = dir
}

func (r *repository) updateGauge() {
	r.stats.Gauge(_gaugeTrackedDocuments).Update(float64(len(r.documents)))
}
