package mapper

import (
	"github.com/nucleotide/lspcoord/src/lspcoord/entity"
	"go.lsp.dev/protocol"
)

// DocumentToTextDocumentItem maps an open editor document into the item sent with textDocument/didOpen.
func DocumentToTextDocumentItem(doc *entity.Document) protocol.TextDocumentItem {
	return protocol.TextDocumentItem{
		URI:        doc.URI(),
		LanguageID: protocol.LanguageIdentifier(doc.LanguageID),
		Version:    doc.Version,
		Text:       doc.Text,
	}
}

// DocumentToDidOpenParams maps an open editor document into textDocument/didOpen parameters.
func DocumentToDidOpenParams(doc *entity.Document) *protocol.DidOpenTextDocumentParams {
	return &protocol.DidOpenTextDocumentParams{
		TextDocument: DocumentToTextDocumentItem(doc),
	}
}

// DocumentToDidChangeParams maps a document and its pending changes into textDocument/didChange parameters.
func DocumentToDidChangeParams(doc *entity.Document, changes []protocol.TextDocumentContentChangeEvent) *protocol.DidChangeTextDocumentParams {
	return &protocol.DidChangeTextDocumentParams{
		TextDocument: protocol.VersionedTextDocumentIdentifier{
			TextDocumentIdentifier: protocol.TextDocumentIdentifier{URI: doc.URI()},
			Version:                doc.Version,
		},
		ContentChanges: changes,
	}
}

// DocumentToDidCloseParams maps a document into textDocument/didClose parameters.
func DocumentToDidCloseParams(doc *entity.Document) *protocol.DidCloseTextDocumentParams {
	return &protocol.DidCloseTextDocumentParams{
		TextDocument: protocol.TextDocumentIdentifier{URI: doc.URI()},
	}
}
