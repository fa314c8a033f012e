package errors

import stderr "errors"

// New returns an error that formats as the given text.
// Each call to New returns a distinct error value even if the text is identical.
func New(msg string) error {
	return stderr.New(msg)
}

var (
	// CoordinatorStoppedError is replied to commands that could not run because the command processor stopped.
	CoordinatorStoppedError = New("coordinator stopped")
	// NoBridgeError reports that a server start was requested before a bridge was configured.
	NoBridgeError = New("no language server bridge configured")
	// EmptyEnvironmentError reports that a shell probe produced no variables.
	EmptyEnvironmentError = New("shell produced an empty environment")
)

// IsRecoverable reports whether the error may be absorbed by continuing in a degraded mode,
// instead of being surfaced to the user.
func IsRecoverable(e error) bool {
	var tracking *DocumentTrackingError
	var detection *DetectionError
	return stderr.As(e, &tracking) || stderr.As(e, &detection) || stderr.Is(e, NoBridgeError)
}
