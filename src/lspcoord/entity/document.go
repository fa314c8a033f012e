package entity

import (
	"go.lsp.dev/protocol"
	"go.lsp.dev/uri"
)

// DocumentID identifies an open document in the editor.
type DocumentID int

// ViewID identifies an editor view showing a document.
type ViewID int

// Document is an open buffer. Path is empty for scratch buffers that have no file.
type Document struct {
	ID         DocumentID `json:"id"`
	Path       string     `json:"path"`
	LanguageID string     `json:"languageId"`
	Version    int32      `json:"version"`
	Text       string     `json:"text"`
}

// URI returns the file URI of the document, or an empty URI for scratch buffers.
func (d *Document) URI() protocol.DocumentURI {
	if d.Path == "" {
		return ""
	}
	return uri.File(d.Path)
}

// View is a window onto a document. Cursor is a character (rune) offset into the document text.
type View struct {
	ID     ViewID     `json:"id"`
	DocID  DocumentID `json:"docId"`
	Cursor int        `json:"cursor"`
}

// DocumentChange is the outcome of replacing the text of a document.
type DocumentChange struct {
	Document Document
	// TextRemoved reports that the new text has fewer characters than the previous one.
	TextRemoved bool
}

// CursorContext is the text of a document together with the cursor of a view onto it.
type CursorContext struct {
	Document Document
	Cursor   int
	// Completable reports that a ready server provides completions for the document.
	Completable bool
	// TriggerCharacters belong to the server completions are requested from.
	TriggerCharacters []string
}
