package mapper

import (
	"github.com/nucleotide/lspcoord/src/lspcoord/entity"
	"github.com/nucleotide/lspcoord/src/lspcoord/model"
)

// ManagedServerToModel converts a managed server into its repository model.
func ManagedServerToModel(s *entity.ManagedServer) *model.ManagedServer {
	return &model.ManagedServer{
		ServerID:      s.ServerID,
		ServerName:    s.ServerName,
		WorkspaceRoot: s.WorkspaceRoot,
		LanguageID:    s.LanguageID,
		StartedAt:     s.StartedAt,
	}
}

// ModelToManagedServer converts a repository model into a managed server.
func ModelToManagedServer(m *model.ManagedServer) entity.ManagedServer {
	return entity.ManagedServer{
		ServerID:      m.ServerID,
		ServerName:    m.ServerName,
		WorkspaceRoot: m.WorkspaceRoot,
		LanguageID:    m.LanguageID,
		StartedAt:     m.StartedAt,
	}
}

// DocumentToModel converts an editor document into its repository model.
func DocumentToModel(d *entity.Document) *model.TrackedDocument {
	return &model.TrackedDocument{
		ID:         int(d.ID),
		Path:       d.Path,
		LanguageID: d.LanguageID,
		Version:    d.Version,
		Text:       d.Text,
	}
}

// ModelToDocument converts a repository model into a copy of the editor document.
func ModelToDocument(m *model.TrackedDocument) *entity.Document {
	return &entity.Document{
		ID:         entity.DocumentID(m.ID),
		Path:       m.Path,
		LanguageID: m.LanguageID,
		Version:    m.Version,
		Text:       m.Text,
	}
}
