package factory

import "go.lsp.dev/protocol"

// InitializeResult returns the result of a server that supports incremental sync, and completions when trigger characters are given.
func InitializeResult(triggerCharacters ...string) *protocol.InitializeResult {
	result := &protocol.InitializeResult{
		Capabilities: protocol.ServerCapabilities{
			TextDocumentSync: protocol.TextDocumentSyncKindIncremental,
		},
	}
	if len(triggerCharacters) > 0 {
		result.Capabilities.CompletionProvider = &protocol.CompletionOptions{TriggerCharacters: triggerCharacters}
	}
	return result
}
