package completiontext

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractPrefix(t *testing.T) {
	tests := []struct {
		name         string
		text         string
		cursor       int
		prefix       string
		afterTrigger bool
	}{
		{name: "empty", text: "", cursor: 0},
		{name: "start of text", text: "abc", cursor: 0},
		{name: "identifier", text: "let foo_ba", cursor: 10, prefix: "foo_ba"},
		{name: "member access", text: "self.na", cursor: 7, prefix: "na", afterTrigger: true},
		{name: "right after trigger", text: "std::", cursor: 5, prefix: "", afterTrigger: true},
		{name: "arrow", text: "ptr->fi", cursor: 7, prefix: "fi", afterTrigger: true},
		{name: "separator stops trigger search", text: "a.b(cd", cursor: 6, prefix: "cd"},
		{name: "css property", text: "  font-we", cursor: 9, prefix: "font-we"},
		{name: "decorator", text: "@Overr", cursor: 6, prefix: "@Overr"},
		{name: "only the cursor line", text: "foo.\nba", cursor: 7, prefix: "ba"},
		{name: "cursor mid word", text: "println", cursor: 5, prefix: "print"},
		{name: "cursor past end", text: "abc", cursor: 10, prefix: "abc"},
		{name: "multibyte", text: "größe", cursor: 5, prefix: "größe"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			prefix, afterTrigger := ExtractPrefix(tt.text, tt.cursor)
			assert.Equal(t, tt.prefix, prefix)
			assert.Equal(t, tt.afterTrigger, afterTrigger)
		})
	}
}

func TestShouldTriggerAutoCompletion(t *testing.T) {
	triggers := []string{".", "::"}
	tests := []struct {
		name   string
		text   string
		cursor int
		typed  string
		want   bool
	}{
		{name: "server trigger character", text: "foo.", cursor: 4, typed: ".", want: true},
		{name: "multi character trigger", text: "std:", cursor: 4, typed: ":", want: true},
		{name: "other typed character", text: "foo(", cursor: 4, typed: "(", want: false},
		{name: "start of document", text: "", cursor: 0, want: true},
		{name: "partial identifier", text: "pri", cursor: 3, want: true},
		{name: "after whitespace", text: "let ", cursor: 4, want: true},
		{name: "after bracket", text: "foo(", cursor: 4, want: true},
		{name: "mid word", text: "println", cursor: 3, want: false},
		{name: "after quote", text: `x = "`, cursor: 5, want: false},
		{name: "after single quote", text: "c = '", cursor: 5, want: false},
		{name: "after comment", text: "//", cursor: 2, want: false},
		{name: "after operator", text: "a +", cursor: 3, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ShouldTriggerAutoCompletion(tt.text, tt.cursor, tt.typed, triggers))
		})
	}
}

func TestIsIdentifierRune(t *testing.T) {
	for _, r := range "aZ9_-$@é" {
		assert.True(t, IsIdentifierRune(r), string(r))
	}
	for _, r := range " .:(" {
		assert.False(t, IsIdentifierRune(r), string(r))
	}
}
