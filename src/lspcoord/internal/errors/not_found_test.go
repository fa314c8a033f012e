package errors

import (
	"testing"

	"github.com/gofrs/uuid"
	"github.com/stretchr/testify/assert"
)

func TestServerNotFound(t *testing.T) {
	id := uuid.Must(uuid.FromString("4d8c6b36-4e9b-4469-8a05-2c60b9671590"))
	err := &ServerNotFoundError{ID: id}
	msg := `language server "4d8c6b36-4e9b-4469-8a05-2c60b9671590" not found`
	assert.Equal(t, msg, err.Error())
}

func TestNotFoundServer(t *testing.T) {
	id := uuid.Must(uuid.NewV4())
	tests := []struct {
		name   string
		err    error
		wantOK bool
		wantID uuid.UUID
	}{
		{
			name:   "server not found",
			err:    &ServerNotFoundError{ID: id},
			wantOK: true,
			wantID: id,
		},
		{
			name:   "random error",
			err:    New("err"),
			wantOK: false,
			wantID: uuid.Nil,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			id, ok := NotFoundServer(tt.err)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.wantID, id)
		})
	}
}

func TestEditorNotFound(t *testing.T) {
	assert.Equal(t, "Document 7 not found", (&DocumentNotFoundError{ID: 7}).Error())
	assert.Equal(t, "View 2 not found", (&ViewNotFoundError{ID: 2}).Error())
}

func TestNoSessionFound(t *testing.T) {
	assert.Equal(t, "no editor session found in context", (&NoSessionFoundError{}).Error())
}
