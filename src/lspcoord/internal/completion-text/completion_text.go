// Package completiontext inspects document text around a cursor to drive completion requests.
// Cursors are rune offsets into the text.
package completiontext

import (
	"strings"
	"unicode"
)

// TriggerCharacters start a member completion. The prefix begins after the last one on the line.
const TriggerCharacters = ".:>"

const _separators = " \t\n()[]{},;"

// IsIdentifierRune reports whether r can be part of the word being completed.
// Beyond letters, digits and '_', it accepts '-' (CSS, Lisp), '$' (PHP, JavaScript) and '@' (decorators).
func IsIdentifierRune(r rune) bool {
	return isWordRune(r) || r == '-' || r == '$' || r == '@'
}

// ExtractPrefix returns the text typed since the start of the word at cursor, and whether the word follows
// a trigger character. Only the line containing the cursor is inspected.
func ExtractPrefix(text string, cursor int) (prefix string, afterTrigger bool) {
	runes := lineBefore([]rune(text), cursor)
	if len(runes) == 0 {
		return "", false
	}

	for i := len(runes) - 1; i >= 0; i-- {
		if strings.ContainsRune(TriggerCharacters, runes[i]) {
			return string(runes[i+1:]), true
		}
		if strings.ContainsRune(_separators, runes[i]) {
			break
		}
	}

	start := len(runes)
	for start > 0 && IsIdentifierRune(runes[start-1]) {
		start--
	}
	return string(runes[start:]), false
}

// ShouldTriggerAutoCompletion decides whether typing should open completions. typed is the text just inserted,
// empty when the cursor merely moved. A server trigger character always triggers. Otherwise completions open at a
// word boundary, never in the middle of a word, right after a quote or after a line comment marker.
func ShouldTriggerAutoCompletion(text string, cursor int, typed string, triggerChars []string) bool {
	if typed != "" {
		for _, trigger := range triggerChars {
			if trigger != "" && strings.Contains(trigger, lastRune(typed)) {
				return true
			}
		}
		return false
	}

	runes := []rune(text)
	cursor = clamp(cursor, len(runes))
	return inCompletionContext(runes, cursor) && atWordBoundary(runes, cursor)
}

func inCompletionContext(runes []rune, cursor int) bool {
	if cursor < len(runes) && isWordRune(runes[cursor]) {
		return false
	}
	if cursor == 0 {
		return true
	}

	switch runes[cursor-1] {
	case '"', '\'':
		return false
	}
	if cursor >= 2 && string(runes[cursor-2:cursor]) == "//" {
		return false
	}
	return true
}

func atWordBoundary(runes []rune, cursor int) bool {
	if cursor == 0 {
		return true
	}

	switch r := runes[cursor-1]; {
	case strings.ContainsRune(".:", r), strings.ContainsRune(_separators, r):
		return true
	default:
		// A partially typed identifier.
		return isWordRune(r)
	}
}

func lineBefore(runes []rune, cursor int) []rune {
	cursor = clamp(cursor, len(runes))
	start := cursor
	for start > 0 && runes[start-1] != '\n' {
		start--
	}
	return runes[start:cursor]
}

func lastRune(s string) string {
	r := []rune(s)
	return string(r[len(r)-1])
}

func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}

func clamp(cursor int, length int) int {
	if cursor < 0 {
		return 0
	}
	if cursor > length {
		return length
	}
	return cursor
}
