package gateway

import (
	editorclient "github.com/nucleotide/lspcoord/src/lspcoord/gateway/editor-client"
	languageserver "github.com/nucleotide/lspcoord/src/lspcoord/gateway/language-server"
	"go.uber.org/fx"
)

// Module provides the outbound connections to editors and language servers.
var Module = fx.Options(
	editorclient.Module,
	languageserver.Module,
)
