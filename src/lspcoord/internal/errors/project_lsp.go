package errors

import (
	stderr "errors"
	"fmt"
	"time"

	"github.com/gofrs/uuid"
	"github.com/nucleotide/lspcoord/src/lspcoord/entity"
)

// Kind classifies errors produced by the coordination layer.
type Kind string

// Error kinds.
const (
	KindProjectDetection    Kind = "project_detection"
	KindServerStartup       Kind = "server_startup"
	KindServerCommunication Kind = "server_communication"
	KindConfiguration       Kind = "configuration"
	KindInternal            Kind = "internal"
)

// ProjectLspError is a generic error of a given kind.
type ProjectLspError struct {
	Kind    Kind
	Message string
}

// Error is an implementation of the error interface.
func (e *ProjectLspError) Error() string {
	switch e.Kind {
	case KindProjectDetection:
		return fmt.Sprintf("Project detection failed: %s", e.Message)
	case KindServerStartup:
		return fmt.Sprintf("Server startup failed: %s", e.Message)
	case KindServerCommunication:
		return fmt.Sprintf("Server communication failed: %s", e.Message)
	case KindConfiguration:
		return fmt.Sprintf("Configuration error: %s", e.Message)
	default:
		return fmt.Sprintf("Internal error: %s", e.Message)
	}
}

// Internal returns an internal error with a formatted message.
func Internal(format string, args ...interface{}) error {
	return &ProjectLspError{Kind: KindInternal, Message: fmt.Sprintf(format, args...)}
}

// Configuration returns a configuration error with a formatted message.
func Configuration(format string, args ...interface{}) error {
	return &ProjectLspError{Kind: KindConfiguration, Message: fmt.Sprintf(format, args...)}
}

// Communication returns a server communication error with a formatted message.
func Communication(format string, args ...interface{}) error {
	return &ProjectLspError{Kind: KindServerCommunication, Message: fmt.Sprintf(format, args...)}
}

// DetectionError indicates that a workspace could not be classified.
// It is non-fatal: callers fall back to file based server startup.
type DetectionError struct {
	WorkspaceRoot string
	Reason        string
}

// Error is an implementation of the error interface.
func (e *DetectionError) Error() string {
	return fmt.Sprintf("Project detection failed: %s: %s", e.WorkspaceRoot, e.Reason)
}

// ServerStartupError indicates that a language server process could not be launched or initialized.
type ServerStartupError struct {
	ServerName    string
	WorkspaceRoot string
	// Timeout is set when the startup exceeded its deadline.
	Timeout time.Duration
	// MissingBinary is set when the server command could not be found.
	MissingBinary bool
	Err           error
}

// Error is an implementation of the error interface.
func (e *ServerStartupError) Error() string {
	switch {
	case e.MissingBinary:
		return fmt.Sprintf("Server startup failed: %s binary not found in PATH: %v", e.ServerName, e.Err)
	case e.Timeout > 0:
		return fmt.Sprintf("Server startup failed: %s timed out after %s", e.ServerName, e.Timeout)
	default:
		return fmt.Sprintf("Server startup failed: %s: %v", e.ServerName, e.Err)
	}
}

// Unwrap returns the underlying error.
func (e *ServerStartupError) Unwrap() error {
	return e.Err
}

// DocumentTrackingError indicates that an open document could not be attached to a server.
// It is recoverable and never rolls back the server start.
type DocumentTrackingError struct {
	ServerID uuid.UUID
	DocID    entity.DocumentID
	Err      error
}

// Error is an implementation of the error interface.
func (e *DocumentTrackingError) Error() string {
	return fmt.Sprintf("tracking document %d with server %q: %v", e.DocID, e.ServerID, e.Err)
}

// Unwrap returns the underlying error.
func (e *DocumentTrackingError) Unwrap() error {
	return e.Err
}

// CommandError is the reply of a coordinator command that failed. Message is shown to users as is.
type CommandError struct {
	Kind    Kind
	Message string
	Err     error
}

// Error is an implementation of the error interface.
func (e *CommandError) Error() string {
	return e.Message
}

// Unwrap returns the underlying error.
func (e *CommandError) Unwrap() error {
	return e.Err
}

// CompletionError describes why a completion request produced no items.
type CompletionError struct {
	Reason string
}

// Error is an implementation of the error interface.
func (e *CompletionError) Error() string {
	return e.Reason
}

// KindOf returns the kind of a coordination layer error, if the chain contains one.
func KindOf(e error) (Kind, bool) {
	var (
		generic   *ProjectLspError
		command   *CommandError
		detection *DetectionError
		startup   *ServerStartupError
		tracking  *DocumentTrackingError
		notFound  *ServerNotFoundError
		docErr    *DocumentNotFoundError
	)
	switch {
	case stderr.As(e, &command):
		return command.Kind, true
	case stderr.As(e, &generic):
		return generic.Kind, true
	case stderr.As(e, &detection):
		return KindProjectDetection, true
	case stderr.As(e, &startup):
		return KindServerStartup, true
	case stderr.As(e, &tracking), stderr.As(e, &notFound):
		return KindServerCommunication, true
	case stderr.As(e, &docErr):
		return KindInternal, true
	}
	return "", false
}
