package errors

import (
	stderr "errors"
	"fmt"

	"github.com/gofrs/uuid"
	"github.com/nucleotide/lspcoord/src/lspcoord/entity"
)

// ServerNotFoundError indicates that no running language server has the given id.
type ServerNotFoundError struct {
	ID uuid.UUID
}

// Error is an implementation of the error interface.
func (n *ServerNotFoundError) Error() string {
	return fmt.Sprintf("language server %q not found", n.ID)
}

// NotFoundServer returns the server id and true if ServerNotFoundError is part of the error chain.
func NotFoundServer(e error) (_ uuid.UUID, ok bool) {
	var nf *ServerNotFoundError
	if !stderr.As(e, &nf) {
		return uuid.Nil, false
	}
	return nf.ID, true
}

// DocumentNotFoundError indicates that the editor has no open document with the given id.
type DocumentNotFoundError struct {
	ID entity.DocumentID
}

// Error is an implementation of the error interface.
func (n *DocumentNotFoundError) Error() string {
	return fmt.Sprintf("Document %d not found", n.ID)
}

// ViewNotFoundError indicates that the editor has no view with the given id.
type ViewNotFoundError struct {
	ID entity.ViewID
}

// Error is an implementation of the error interface.
func (n *ViewNotFoundError) Error() string {
	return fmt.Sprintf("View %d not found", n.ID)
}

// NoSessionFoundError indicates that the context does not identify an editor connection.
type NoSessionFoundError struct{}

// Error is an implementation of the error interface.
func (n *NoSessionFoundError) Error() string {
	return "no editor session found in context"
}
