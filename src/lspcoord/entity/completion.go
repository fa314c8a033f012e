package entity

// CompletionItemKind is the editor facing classification of a completion item.
type CompletionItemKind string

// Completion item kinds.
const (
	CompletionKindText          CompletionItemKind = "text"
	CompletionKindMethod        CompletionItemKind = "method"
	CompletionKindFunction      CompletionItemKind = "function"
	CompletionKindConstructor   CompletionItemKind = "constructor"
	CompletionKindField         CompletionItemKind = "field"
	CompletionKindVariable      CompletionItemKind = "variable"
	CompletionKindClass         CompletionItemKind = "class"
	CompletionKindInterface     CompletionItemKind = "interface"
	CompletionKindModule        CompletionItemKind = "module"
	CompletionKindProperty      CompletionItemKind = "property"
	CompletionKindUnit          CompletionItemKind = "unit"
	CompletionKindValue         CompletionItemKind = "value"
	CompletionKindEnum          CompletionItemKind = "enum"
	CompletionKindKeyword       CompletionItemKind = "keyword"
	CompletionKindSnippet       CompletionItemKind = "snippet"
	CompletionKindColor         CompletionItemKind = "color"
	CompletionKindFile          CompletionItemKind = "file"
	CompletionKindReference     CompletionItemKind = "reference"
	CompletionKindFolder        CompletionItemKind = "folder"
	CompletionKindEnumMember    CompletionItemKind = "enum_member"
	CompletionKindConstant      CompletionItemKind = "constant"
	CompletionKindStruct        CompletionItemKind = "struct"
	CompletionKindEvent         CompletionItemKind = "event"
	CompletionKindOperator      CompletionItemKind = "operator"
	CompletionKindTypeParameter CompletionItemKind = "type_parameter"
)

// CompletionItem is a completion candidate independent of any UI toolkit.
type CompletionItem struct {
	Label         string             `json:"label"`
	Kind          CompletionItemKind `json:"kind"`
	InsertText    string             `json:"insertText"`
	Detail        string             `json:"detail,omitempty"`
	Documentation string             `json:"documentation,omitempty"`
}

// CompletionTrigger is the origin of a completion request.
type CompletionTrigger string

// Completion trigger origins.
const (
	CompletionTriggerManual    CompletionTrigger = "manual"
	CompletionTriggerAutomatic CompletionTrigger = "automatic"
	CompletionTriggerCharacter CompletionTrigger = "character"
)

// CompletionRequest asks for completions at a cursor. A nil Cursor uses the view's cursor.
type CompletionRequest struct {
	DocID            DocumentID        `json:"docId"`
	ViewID           ViewID            `json:"viewId"`
	Cursor           *int              `json:"cursor,omitempty"`
	Trigger          CompletionTrigger `json:"trigger"`
	TriggerCharacter string            `json:"triggerCharacter,omitempty"`
}

// CompletionResult is the single reply to a CompletionRequest. Error is set, and Items is empty, on failure.
type CompletionResult struct {
	Items        []CompletionItem `json:"items"`
	IsIncomplete bool             `json:"isIncomplete"`
	Prefix       string           `json:"prefix"`
	Error        string           `json:"error,omitempty"`
}

// CompletionFailure builds a result carrying only an error description.
func CompletionFailure(reason string) CompletionResult {
	return CompletionResult{Items: []CompletionItem{}, Error: reason}
}

// CompletionEventKind identifies a UI facing completion state change.
type CompletionEventKind string

// Completion state changes published to editors.
const (
	CompletionEventShow CompletionEventKind = "show"
	CompletionEventHide CompletionEventKind = "hide"
)

// CompletionEvent is published to connected editors whenever the completion state changes.
type CompletionEvent struct {
	Kind   CompletionEventKind `json:"kind"`
	DocID  DocumentID          `json:"docId"`
	ViewID ViewID              `json:"viewId"`
	Result *CompletionResult   `json:"result,omitempty"`
}
