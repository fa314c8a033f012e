package mapper

import (
	"context"
	"testing"

	"github.com/nucleotide/lspcoord/src/lspcoord/factory"
	"github.com/nucleotide/lspcoord/src/lspcoord/internal/errors"
	"github.com/stretchr/testify/assert"
	"go.uber.org/goleak"
)

func TestContextToSessionUUID(t *testing.T) {
	t.Run("session present", func(t *testing.T) {
		id := factory.UUID()
		got, err := ContextToSessionUUID(SessionUUIDToContext(context.Background(), id))
		assert.NoError(t, err)
		assert.Equal(t, id, got)
	})

	t.Run("session missing", func(t *testing.T) {
		_, err := ContextToSessionUUID(context.Background())
		var nf *errors.NoSessionFoundError
		assert.ErrorAs(t, err, &nf)
	})
}

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}
