package mapper

import (
	"encoding/json"
	"path/filepath"

	"go.lsp.dev/protocol"
	"go.lsp.dev/uri"
)

// WorkspaceRootsToInitializeParams builds the initialize request sent to a language server.
// The first root is the root URI; every root becomes a workspace folder.
func WorkspaceRootsToInitializeParams(processID int32, clientName string, roots []string) *protocol.InitializeParams {
	params := &protocol.InitializeParams{
		ProcessID:  processID,
		ClientInfo: &protocol.ClientInfo{Name: clientName},
		Capabilities: protocol.ClientCapabilities{
			TextDocument: &protocol.TextDocumentClientCapabilities{
				Synchronization: &protocol.TextDocumentSyncClientCapabilities{DidSave: true},
				Completion:      &protocol.CompletionTextDocumentClientCapabilities{ContextSupport: true},
			},
		},
	}
	if len(roots) == 0 {
		return params
	}

	params.RootURI = uri.File(roots[0])
	params.RootPath = roots[0]
	for _, root := range roots {
		params.WorkspaceFolders = append(params.WorkspaceFolders, protocol.WorkspaceFolder{
			URI:  string(uri.File(root)),
			Name: filepath.Base(root),
		})
	}
	return params
}

// ServerCapabilitiesSyncKind returns how the server wants document changes to be sent.
// TextDocumentSync is either a kind or an options object, and is untyped after JSON decoding.
func ServerCapabilitiesSyncKind(caps protocol.ServerCapabilities) protocol.TextDocumentSyncKind {
	switch s := caps.TextDocumentSync.(type) {
	case protocol.TextDocumentSyncKind:
		return s
	case float64:
		return protocol.TextDocumentSyncKind(s)
	case protocol.TextDocumentSyncOptions:
		return s.Change
	case *protocol.TextDocumentSyncOptions:
		if s == nil {
			return protocol.TextDocumentSyncKindNone
		}
		return s.Change
	case map[string]interface{}:
		raw, err := json.Marshal(s)
		if err != nil {
			return protocol.TextDocumentSyncKindNone
		}
		opts := protocol.TextDocumentSyncOptions{}
		if err := json.Unmarshal(raw, &opts); err != nil {
			return protocol.TextDocumentSyncKindNone
		}
		return opts.Change
	}
	return protocol.TextDocumentSyncKindNone
}

// ServerCapabilitiesCompletion reports whether the server provides completions, and its trigger characters.
func ServerCapabilitiesCompletion(caps protocol.ServerCapabilities) (triggerCharacters []string, ok bool) {
	if caps.CompletionProvider == nil {
		return nil, false
	}
	return caps.CompletionProvider.TriggerCharacters, true
}
