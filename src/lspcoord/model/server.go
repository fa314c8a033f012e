package model

import (
	"time"

	"github.com/gofrs/uuid"
)

// ManagedServer is the repository layer model for a running language server instance.
type ManagedServer struct {
	ServerID      uuid.UUID
	ServerName    string
	WorkspaceRoot string
	LanguageID    string
	StartedAt     time.Time
}

// TrackedDocument is the repository layer model for an editor document.
type TrackedDocument struct {
	ID         int
	Path       string
	LanguageID string
	Version    int32
	Text       string
}
