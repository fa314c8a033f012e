package entity

import "github.com/gofrs/uuid"

// Methods served on the control connection.
const (
	MethodStartServer           = "lspcoord/startServer"
	MethodDetectAndStartProject = "lspcoord/detectAndStartProject"
	MethodStopServer            = "lspcoord/stopServer"
	MethodWorkspaceChanged      = "lspcoord/workspaceChanged"
	MethodProjectStatus         = "lspcoord/projectStatus"
	MethodEnsureDocumentTracked = "lspcoord/ensureDocumentTracked"
	MethodOpenDocument          = "lspcoord/openDocument"
	MethodChangeDocument        = "lspcoord/changeDocument"
	MethodCloseDocument         = "lspcoord/closeDocument"
	MethodSetCursor             = "lspcoord/setCursor"
	MethodCompletion            = "lspcoord/completion"
	MethodCancelCompletion      = "lspcoord/cancelCompletion"
)

// Notifications sent to connected editors.
const (
	// NotificationCompletion carries a CompletionEvent.
	NotificationCompletion = "lspcoord/completionChanged"
	// NotificationServerStatus carries a ServerStartupCompleted or HealthCheckCompleted summary.
	NotificationServerStatus = "lspcoord/serverStatus"
)

// StartServerParams are the parameters of lspcoord/startServer.
type StartServerParams struct {
	WorkspaceRoot string `json:"workspaceRoot"`
	ServerName    string `json:"serverName"`
	LanguageID    string `json:"languageId"`
}

// WorkspaceParams are the parameters of requests scoped to a single workspace root.
type WorkspaceParams struct {
	WorkspaceRoot string `json:"workspaceRoot"`
}

// StopServerParams are the parameters of lspcoord/stopServer.
type StopServerParams struct {
	ServerID uuid.UUID `json:"serverId"`
}

// WorkspaceChangedParams are the parameters of lspcoord/workspaceChanged. OldRoot is empty when no workspace was open.
type WorkspaceChangedParams struct {
	OldRoot string `json:"oldRoot,omitempty"`
	NewRoot string `json:"newRoot"`
}

// EnsureDocumentTrackedParams are the parameters of lspcoord/ensureDocumentTracked.
type EnsureDocumentTrackedParams struct {
	ServerID uuid.UUID  `json:"serverId"`
	DocID    DocumentID `json:"docId"`
}

// OpenDocumentParams are the parameters of lspcoord/openDocument. A view is created when ViewID is non-zero.
type OpenDocumentParams struct {
	Document Document `json:"document"`
	ViewID   ViewID   `json:"viewId,omitempty"`
}

// ChangeDocumentParams replace the text of an open document. ViewID names the view the edit was made in, if any.
type ChangeDocumentParams struct {
	DocID  DocumentID `json:"docId"`
	ViewID ViewID     `json:"viewId,omitempty"`
	Text   string     `json:"text"`
}

// DocumentParams identify a single open document.
type DocumentParams struct {
	DocID DocumentID `json:"docId"`
}

// SetCursorParams move the cursor of a view, creating the view if it does not exist.
type SetCursorParams struct {
	ViewID ViewID     `json:"viewId"`
	DocID  DocumentID `json:"docId"`
	Cursor int        `json:"cursor"`
}

// WorkspaceChangeResult is the reply to lspcoord/workspaceChanged.
type WorkspaceChangeResult struct {
	NewRoot     string              `json:"newRoot"`
	Environment EnvironmentOrigin   `json:"environment"`
	Stopped     []uuid.UUID         `json:"stopped"`
	Started     []ServerStartResult `json:"started"`
}

// ServerStatusParams are the parameters of the lspcoord/serverStatus notification.
type ServerStatusParams struct {
	WorkspaceRoot string    `json:"workspaceRoot"`
	ServerID      uuid.UUID `json:"serverId"`
	ServerName    string    `json:"serverName,omitempty"`
	Status        string    `json:"status"`
	Error         string    `json:"error,omitempty"`
}
