package mapper

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/nucleotide/lspcoord/src/lspcoord/entity"
	protocolmapper "github.com/nucleotide/lspcoord/src/lspcoord/internal/protocol"
	"github.com/sergi/go-diff/diffmatchpatch"
	"go.lsp.dev/jsonrpc2"
	"go.lsp.dev/protocol"
)

// EditOffset stores a string modification based on character offset in the string.
type EditOffset struct {
	start int
	end   int
	text  string
}

// RequestToStartServerParams maps the parameters from a jsonrpc2.Request into entity.StartServerParams.
func RequestToStartServerParams(req jsonrpc2.Request) (*entity.StartServerParams, error) {
	params := entity.StartServerParams{}
	if err := unmarshalParams(req, &params); err != nil {
		return nil, err
	}
	return &params, nil
}

// RequestToWorkspaceParams maps the parameters from a jsonrpc2.Request into entity.WorkspaceParams.
func RequestToWorkspaceParams(req jsonrpc2.Request) (*entity.WorkspaceParams, error) {
	params := entity.WorkspaceParams{}
	if err := unmarshalParams(req, &params); err != nil {
		return nil, err
	}
	return &params, nil
}

// RequestToStopServerParams maps the parameters from a jsonrpc2.Request into entity.StopServerParams.
func RequestToStopServerParams(req jsonrpc2.Request) (*entity.StopServerParams, error) {
	params := entity.StopServerParams{}
	if err := unmarshalParams(req, &params); err != nil {
		return nil, err
	}
	return &params, nil
}

// RequestToWorkspaceChangedParams maps the parameters from a jsonrpc2.Request into entity.WorkspaceChangedParams.
func RequestToWorkspaceChangedParams(req jsonrpc2.Request) (*entity.WorkspaceChangedParams, error) {
	params := entity.WorkspaceChangedParams{}
	if err := unmarshalParams(req, &params); err != nil {
		return nil, err
	}
	return &params, nil
}

// RequestToEnsureDocumentTrackedParams maps the parameters from a jsonrpc2.Request into entity.EnsureDocumentTrackedParams.
func RequestToEnsureDocumentTrackedParams(req jsonrpc2.Request) (*entity.EnsureDocumentTrackedParams, error) {
	params := entity.EnsureDocumentTrackedParams{}
	if err := unmarshalParams(req, &params); err != nil {
		return nil, err
	}
	return &params, nil
}

// RequestToOpenDocumentParams maps the parameters from a jsonrpc2.Request into entity.OpenDocumentParams.
func RequestToOpenDocumentParams(req jsonrpc2.Request) (*entity.OpenDocumentParams, error) {
	params := entity.OpenDocumentParams{}
	if err := unmarshalParams(req, &params); err != nil {
		return nil, err
	}
	return &params, nil
}

// RequestToChangeDocumentParams maps the parameters from a jsonrpc2.Request into entity.ChangeDocumentParams.
func RequestToChangeDocumentParams(req jsonrpc2.Request) (*entity.ChangeDocumentParams, error) {
	params := entity.ChangeDocumentParams{}
	if err := unmarshalParams(req, &params); err != nil {
		return nil, err
	}
	return &params, nil
}

// RequestToDocumentParams maps the parameters from a jsonrpc2.Request into entity.DocumentParams.
func RequestToDocumentParams(req jsonrpc2.Request) (*entity.DocumentParams, error) {
	params := entity.DocumentParams{}
	if err := unmarshalParams(req, &params); err != nil {
		return nil, err
	}
	return &params, nil
}

// RequestToSetCursorParams maps the parameters from a jsonrpc2.Request into entity.SetCursorParams.
func RequestToSetCursorParams(req jsonrpc2.Request) (*entity.SetCursorParams, error) {
	params := entity.SetCursorParams{}
	if err := unmarshalParams(req, &params); err != nil {
		return nil, err
	}
	return &params, nil
}

// RequestToCompletionRequest maps the parameters from a jsonrpc2.Request into entity.CompletionRequest.
func RequestToCompletionRequest(req jsonrpc2.Request) (*entity.CompletionRequest, error) {
	params := entity.CompletionRequest{}
	if err := unmarshalParams(req, &params); err != nil {
		return nil, err
	}
	if params.Trigger == "" {
		params.Trigger = entity.CompletionTriggerManual
	}
	return &params, nil
}

// ApplyContentChanges applies the given content change events to a given text string.
// A change without a range replaces the whole text.
func ApplyContentChanges(initialText string, changes []protocol.TextDocumentContentChangeEvent) (string, error) {
	content := []byte(initialText)
	for _, change := range changes {
		if change.Range == nil {
			content = []byte(change.Text)
			continue
		}
		m := protocolmapper.NewTextOffsetMapper(content)
		start, err := m.PositionOffset(change.Range.Start)
		if err != nil {
			return "", fmt.Errorf("unable to apply changes: %w", err)
		}
		end, err := m.PositionOffset(change.Range.End)
		if err != nil {
			return "", fmt.Errorf("unable to apply changes: %w", err)
		}
		var buf bytes.Buffer
		buf.Write(content[:start])
		buf.Write([]byte(change.Text))
		buf.Write(content[end:])
		content = buf.Bytes()
	}

	return string(content), nil
}

// TextToContentChanges computes the incremental didChange events that turn before into after.
// Events are ordered from the end of the document to the start, so that every range refers to text
// that earlier events left untouched.
func TextToContentChanges(before, after string) ([]protocol.TextDocumentContentChangeEvent, error) {
	if before == after {
		return nil, nil
	}

	dmp := diffmatchpatch.New()
	edits, err := DiffsToTextEdits(dmp.DiffMain(before, after, false))
	if err != nil {
		return nil, fmt.Errorf("computing document changes: %w", err)
	}

	changes := make([]protocol.TextDocumentContentChangeEvent, 0, len(edits))
	for i := len(edits) - 1; i >= 0; i-- {
		r := edits[i].Range
		changes = append(changes, protocol.TextDocumentContentChangeEvent{
			Range: &r,
			Text:  edits[i].NewText,
		})
	}
	return changes, nil
}

// FullContentChange returns a single didChange event replacing the whole document.
func FullContentChange(text string) []protocol.TextDocumentContentChangeEvent {
	return []protocol.TextDocumentContentChangeEvent{{Text: text}}
}

// DiffsToEditOffsets converts diffs into a list of text edits based on offsets within the initial text.
func DiffsToEditOffsets(diffs []diffmatchpatch.Diff) (initialText bytes.Buffer, offsets []EditOffset) {
	edits := make([]EditOffset, 0, len(diffs))
	offset := 0
	for _, d := range diffs {
		start := offset
		switch d.Type {
		case diffmatchpatch.DiffDelete:
			initialText.WriteString(d.Text)
			offset += len(d.Text)
			edits = append(edits, EditOffset{start: start, end: offset, text: ""})
		case diffmatchpatch.DiffEqual:
			initialText.WriteString(d.Text)
			offset += len(d.Text)
		case diffmatchpatch.DiffInsert:
			edits = append(edits, EditOffset{start: start, end: start, text: d.Text})
		}
	}
	return initialText, edits
}

// EditOffsetsToTextEdits converts a list of offset based edits to TextEdits formatted for LSP protocol.
func EditOffsetsToTextEdits(initialText bytes.Buffer, edits []EditOffset) ([]protocol.TextEdit, error) {
	protocolTextEdits := make([]protocol.TextEdit, 0, len(edits))
	m := protocolmapper.NewTextOffsetMapper(initialText.Bytes())
	for _, edit := range edits {
		startPosition, err := m.OffsetPosition(edit.start)
		if err != nil {
			return nil, err
		}
		endPosition, err := m.OffsetPosition(edit.end)
		if err != nil {
			return nil, err
		}
		protocolTextEdits = append(protocolTextEdits, protocol.TextEdit{
			Range:   PositionsToRange(startPosition, endPosition),
			NewText: edit.text,
		})
	}
	return protocolTextEdits, nil
}

// DiffsToTextEdits converts diffs into to a list of text edits that can be applied to a document.
func DiffsToTextEdits(diffs []diffmatchpatch.Diff) ([]protocol.TextEdit, error) {
	foundText, edits := DiffsToEditOffsets(diffs)
	return EditOffsetsToTextEdits(foundText, edits)
}

// PositionsToRange converts two positions into a range.
func PositionsToRange(start, end protocol.Position) protocol.Range {
	return protocol.Range{
		Start: start,
		End:   end,
	}
}

func unmarshalParams(req jsonrpc2.Request, v interface{}) error {
	if err := json.Unmarshal(req.Params(), v); err != nil {
		return wrapErrParse(err)
	}
	return nil
}

func wrapErrParse(err error) error {
	return fmt.Errorf("%s: %w", jsonrpc2.ErrParse, err)
}
