package entity

import "github.com/gofrs/uuid"

// StartupStatus is the outcome of a server startup attempt.
type StartupStatus string

// Possible startup outcomes.
const (
	StartupSuccess            StartupStatus = "success"
	StartupFailed             StartupStatus = "failed"
	StartupTimeout            StartupStatus = "timeout"
	StartupConfigurationError StartupStatus = "configuration_error"
)

// HealthStatus is the outcome of a health check of a managed server.
type HealthStatus string

// Possible health outcomes.
const (
	HealthHealthy      HealthStatus = "healthy"
	HealthUnresponsive HealthStatus = "unresponsive"
	HealthFailed       HealthStatus = "failed"
)

// ProjectEvent is implemented by every event published by the project manager.
type ProjectEvent interface {
	// EventName is a stable identifier, used for logging and metrics.
	EventName() string
	// EventRoot is the workspace root the event refers to.
	EventRoot() string
}

// ProjectDetected is published after a project was classified.
type ProjectDetected struct {
	WorkspaceRoot string
	ProjectType   ProjectType
	Servers       []string
}

// ServerStartupRequested asks the coordinator to start a server for a workspace.
type ServerStartupRequested struct {
	WorkspaceRoot string
	ServerName    string
	LanguageID    string
}

// ServerStartupCompleted reports the result of a startup attempt.
type ServerStartupCompleted struct {
	WorkspaceRoot string
	ServerName    string
	ServerID      uuid.UUID
	Status        StartupStatus
	Error         string
}

// HealthCheckCompleted reports the health of one managed server.
type HealthCheckCompleted struct {
	WorkspaceRoot string
	ServerID      uuid.UUID
	Status        HealthStatus
}

// ServerCleanupCompleted is published after a managed server was removed.
type ServerCleanupCompleted struct {
	WorkspaceRoot string
	ServerID      uuid.UUID
}

// ProjectCleanupRequested is published when every server of a workspace should be released.
type ProjectCleanupRequested struct {
	WorkspaceRoot string
}

// EventName implements ProjectEvent.
func (ProjectDetected) EventName() string { return "project_detected" }

// EventRoot implements ProjectEvent.
func (e ProjectDetected) EventRoot() string { return e.WorkspaceRoot }

// EventName implements ProjectEvent.
func (ServerStartupRequested) EventName() string { return "server_startup_requested" }

// EventRoot implements ProjectEvent.
func (e ServerStartupRequested) EventRoot() string { return e.WorkspaceRoot }

// EventName implements ProjectEvent.
func (ServerStartupCompleted) EventName() string { return "server_startup_completed" }

// EventRoot implements ProjectEvent.
func (e ServerStartupCompleted) EventRoot() string { return e.WorkspaceRoot }

// EventName implements ProjectEvent.
func (HealthCheckCompleted) EventName() string { return "health_check_completed" }

// EventRoot implements ProjectEvent.
func (e HealthCheckCompleted) EventRoot() string { return e.WorkspaceRoot }

// EventName implements ProjectEvent.
func (ServerCleanupCompleted) EventName() string { return "server_cleanup_completed" }

// EventRoot implements ProjectEvent.
func (e ServerCleanupCompleted) EventRoot() string { return e.WorkspaceRoot }

// EventName implements ProjectEvent.
func (ProjectCleanupRequested) EventName() string { return "project_cleanup_requested" }

// EventRoot implements ProjectEvent.
func (e ProjectCleanupRequested) EventRoot() string { return e.WorkspaceRoot }
