package mapper

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/nucleotide/lspcoord/src/lspcoord/entity"
	protocolmapper "github.com/nucleotide/lspcoord/src/lspcoord/internal/protocol"
	"go.lsp.dev/protocol"
)

var _completionKinds = map[protocol.CompletionItemKind]entity.CompletionItemKind{
	protocol.CompletionItemKindText:          entity.CompletionKindText,
	protocol.CompletionItemKindMethod:        entity.CompletionKindMethod,
	protocol.CompletionItemKindFunction:      entity.CompletionKindFunction,
	protocol.CompletionItemKindConstructor:   entity.CompletionKindConstructor,
	protocol.CompletionItemKindField:         entity.CompletionKindField,
	protocol.CompletionItemKindVariable:      entity.CompletionKindVariable,
	protocol.CompletionItemKindClass:         entity.CompletionKindClass,
	protocol.CompletionItemKindInterface:     entity.CompletionKindInterface,
	protocol.CompletionItemKindModule:        entity.CompletionKindModule,
	protocol.CompletionItemKindProperty:      entity.CompletionKindProperty,
	protocol.CompletionItemKindUnit:          entity.CompletionKindUnit,
	protocol.CompletionItemKindValue:         entity.CompletionKindValue,
	protocol.CompletionItemKindEnum:          entity.CompletionKindEnum,
	protocol.CompletionItemKindKeyword:       entity.CompletionKindKeyword,
	protocol.CompletionItemKindSnippet:       entity.CompletionKindSnippet,
	protocol.CompletionItemKindColor:         entity.CompletionKindColor,
	protocol.CompletionItemKindFile:          entity.CompletionKindFile,
	protocol.CompletionItemKindReference:     entity.CompletionKindReference,
	protocol.CompletionItemKindFolder:        entity.CompletionKindFolder,
	protocol.CompletionItemKindEnumMember:    entity.CompletionKindEnumMember,
	protocol.CompletionItemKindConstant:      entity.CompletionKindConstant,
	protocol.CompletionItemKindStruct:        entity.CompletionKindStruct,
	protocol.CompletionItemKindEvent:         entity.CompletionKindEvent,
	protocol.CompletionItemKindOperator:      entity.CompletionKindOperator,
	protocol.CompletionItemKindTypeParameter: entity.CompletionKindTypeParameter,
}

// CompletionItemKindToEntity maps an LSP completion kind to its entity equivalent. Unknown kinds map to text.
func CompletionItemKindToEntity(kind protocol.CompletionItemKind) entity.CompletionItemKind {
	if k, ok := _completionKinds[kind]; ok {
		return k
	}
	return entity.CompletionKindText
}

// CompletionItemToEntity maps an LSP completion item to its entity equivalent. The insert text defaults to the label.
func CompletionItemToEntity(item protocol.CompletionItem) entity.CompletionItem {
	insertText := item.InsertText
	if insertText == "" {
		insertText = item.Label
	}
	return entity.CompletionItem{
		Label:         item.Label,
		Kind:          CompletionItemKindToEntity(item.Kind),
		InsertText:    insertText,
		Detail:        item.Detail,
		Documentation: documentationToString(item.Documentation),
	}
}

// CompletionListToResult maps an LSP completion list into the result returned to editors.
func CompletionListToResult(list *protocol.CompletionList, prefix string) entity.CompletionResult {
	result := entity.CompletionResult{
		Items:  []entity.CompletionItem{},
		Prefix: prefix,
	}
	if list == nil {
		return result
	}

	result.IsIncomplete = list.IsIncomplete
	for _, item := range list.Items {
		result.Items = append(result.Items, CompletionItemToEntity(item))
	}
	return result
}

// RawCompletionToList decodes a textDocument/completion response, which may be null, an array of items or a list.
func RawCompletionToList(raw json.RawMessage) (*protocol.CompletionList, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return &protocol.CompletionList{Items: []protocol.CompletionItem{}}, nil
	}

	if trimmed[0] == '[' {
		var items []protocol.CompletionItem
		if err := json.Unmarshal(trimmed, &items); err != nil {
			return nil, fmt.Errorf("decoding completion items: %w", err)
		}
		return &protocol.CompletionList{Items: items}, nil
	}

	list := protocol.CompletionList{}
	if err := json.Unmarshal(trimmed, &list); err != nil {
		return nil, fmt.Errorf("decoding completion list: %w", err)
	}
	return &list, nil
}

// DocumentToCompletionParams builds the textDocument/completion parameters for a rune offset into the document.
func DocumentToCompletionParams(doc *entity.Document, cursor int, trigger entity.CompletionTrigger, triggerCharacter string) *protocol.CompletionParams {
	m := protocolmapper.NewTextOffsetMapper([]byte(doc.Text))
	params := &protocol.CompletionParams{
		TextDocumentPositionParams: protocol.TextDocumentPositionParams{
			TextDocument: protocol.TextDocumentIdentifier{URI: doc.URI()},
			Position:     m.RunePosition(cursor),
		},
		Context: &protocol.CompletionContext{
			TriggerKind: protocol.CompletionTriggerKindInvoked,
		},
	}
	if trigger == entity.CompletionTriggerCharacter && triggerCharacter != "" {
		params.Context.TriggerKind = protocol.CompletionTriggerKindTriggerCharacter
		params.Context.TriggerCharacter = triggerCharacter
	}
	return params
}

func documentationToString(doc interface{}) string {
	switch d := doc.(type) {
	case string:
		return d
	case protocol.MarkupContent:
		return d.Value
	case *protocol.MarkupContent:
		if d == nil {
			return ""
		}
		return d.Value
	case map[string]interface{}:
		if v, ok := d["value"].(string); ok {
			return v
		}
	}
	return ""
}
