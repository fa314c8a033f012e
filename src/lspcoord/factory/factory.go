package factory

import (
	"fmt"
	"time"

	"github.com/gofrs/uuid"
	"github.com/nucleotide/lspcoord/src/lspcoord/entity"
	"go.lsp.dev/jsonrpc2"
)

// UUID is a user-defined factory for a random uuid.UUID.
func UUID() uuid.UUID {
	return uuid.Must(uuid.NewV4())
}

// JSONRPCRequest is a user-defined factory for a JSON-RPC request containing the specified method and parameters.
func JSONRPCRequest(method string, params interface{}) jsonrpc2.Request {
	req, _ := jsonrpc2.NewCall(jsonrpc2.NewNumberID(5), method, params)
	return req
}

// JSONRPCNotification is a user-defined factory for a JSON-RPC notification containing the specified method and parameters.
func JSONRPCNotification(method string, params interface{}) jsonrpc2.Request {
	req, _ := jsonrpc2.NewNotification(method, params)
	return req
}

// Document is a factory for an open document backed by a file.
func Document(id entity.DocumentID, path string, text string) *entity.Document {
	return &entity.Document{
		ID:         id,
		Path:       path,
		LanguageID: "rust",
		Version:    1,
		Text:       text,
	}
}

// ManagedServer is a factory for a running server record with a random id.
func ManagedServer(root string, name string) entity.ManagedServer {
	return entity.ManagedServer{
		ServerID:      UUID(),
		ServerName:    name,
		WorkspaceRoot: root,
		LanguageID:    "rust",
		StartedAt:     time.Now().Add(-time.Minute),
	}
}

// LanguageServers is a factory for a launch configuration with one entry per name, each using the name as command.
func LanguageServers(names ...string) entity.LanguageServerConfigs {
	result := make(entity.LanguageServerConfigs, len(names))
	for _, name := range names {
		result[name] = entity.LanguageServerConfig{
			Command: fmt.Sprintf("%s-bin", name),
		}
	}
	return result
}
