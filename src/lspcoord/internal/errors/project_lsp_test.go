package errors

import (
	"fmt"
	"testing"
	"time"

	"github.com/gofrs/uuid"
	"github.com/stretchr/testify/assert"
)

func TestProjectLspErrorMessages(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{
			name: "detection kind",
			err:  &ProjectLspError{Kind: KindProjectDetection, Message: "no markers"},
			want: "Project detection failed: no markers",
		},
		{
			name: "startup kind",
			err:  &ProjectLspError{Kind: KindServerStartup, Message: "boom"},
			want: "Server startup failed: boom",
		},
		{
			name: "communication",
			err:  Communication("pipe closed"),
			want: "Server communication failed: pipe closed",
		},
		{
			name: "configuration",
			err:  Configuration("unknown server %q", "foo"),
			want: `Configuration error: unknown server "foo"`,
		},
		{
			name: "internal",
			err:  Internal("%s not yet implemented", "thing"),
			want: "Internal error: thing not yet implemented",
		},
		{
			name: "missing binary",
			err:  &ServerStartupError{ServerName: "rust-analyzer", MissingBinary: true, Err: New("not found")},
			want: "Server startup failed: rust-analyzer binary not found in PATH: not found",
		},
		{
			name: "timeout",
			err:  &ServerStartupError{ServerName: "gopls", Timeout: 15 * time.Second},
			want: "Server startup failed: gopls timed out after 15s",
		},
		{
			name: "completion",
			err:  &CompletionError{Reason: "Document not found"},
			want: "Document not found",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.err.Error())
		})
	}
}

func TestKindOf(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		want   Kind
		wantOK bool
	}{
		{name: "generic", err: Internal("x"), want: KindInternal, wantOK: true},
		{name: "detection", err: &DetectionError{}, want: KindProjectDetection, wantOK: true},
		{name: "startup", err: fmt.Errorf("ctx: %w", &ServerStartupError{Err: New("x")}), want: KindServerStartup, wantOK: true},
		{name: "tracking", err: &DocumentTrackingError{}, want: KindServerCommunication, wantOK: true},
		{name: "server not found", err: &ServerNotFoundError{ID: uuid.Must(uuid.NewV4())}, want: KindServerCommunication, wantOK: true},
		{name: "document not found", err: &DocumentNotFoundError{ID: 3}, want: KindInternal, wantOK: true},
		{name: "command", err: &CommandError{Kind: KindServerStartup, Message: "x", Err: &ProjectLspError{Kind: KindInternal}}, want: KindServerStartup, wantOK: true},
		{name: "foreign", err: New("x"), wantOK: false},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			kind, ok := KindOf(tt.err)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, kind)
		})
	}
}

func TestUnwrap(t *testing.T) {
	inner := New("inner")
	assert.ErrorIs(t, &ServerStartupError{Err: inner}, inner)
	assert.ErrorIs(t, &DocumentTrackingError{Err: inner}, inner)
	assert.ErrorIs(t, &CommandError{Message: "outer", Err: inner}, inner)
	assert.Equal(t, "outer", (&CommandError{Message: "outer", Err: inner}).Error())
}
