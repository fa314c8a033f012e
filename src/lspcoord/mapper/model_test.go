package mapper

import (
	"testing"
	"time"

	"github.com/nucleotide/lspcoord/src/lspcoord/entity"
	"github.com/nucleotide/lspcoord/src/lspcoord/factory"
	"github.com/stretchr/testify/assert"
)

func TestManagedServerModel(t *testing.T) {
	s := factory.ManagedServer("/ws", "gopls")
	s.StartedAt = time.Unix(100, 0)

	m := ManagedServerToModel(&s)
	assert.Equal(t, s.ServerID, m.ServerID)
	assert.Equal(t, s, ModelToManagedServer(m))
}

func TestDocumentModel(t *testing.T) {
	doc := factory.Document(3, "/ws/main.rs", "fn main() {}")

	m := DocumentToModel(doc)
	m.Text = "changed"
	assert.Equal(t, "fn main() {}", doc.Text)

	back := ModelToDocument(m)
	assert.Equal(t, entity.DocumentID(3), back.ID)
	assert.Equal(t, "changed", back.Text)
}
