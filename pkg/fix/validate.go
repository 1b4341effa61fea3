package fix

import (
	"cmp"
	"fmt"
	"slices"
)

// ValidationError describes an invalid edit.
type ValidationError struct {
	Edit    TextEdit
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid edit [%d:%d]: %s", e.Edit.StartOffset, e.Edit.EndOffset, e.Message)
}

// ConflictError describes overlapping edits.
type ConflictError struct {
	Edit1 TextEdit
	Edit2 TextEdit
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("overlapping edits: [%d:%d] and [%d:%d]",
		e.Edit1.StartOffset, e.Edit1.EndOffset,
		e.Edit2.StartOffset, e.Edit2.EndOffset)
}

// ValidateEdits checks that every edit lies within content of length contentLen.
// Returns the first invalid edit as a *ValidationError.
func ValidateEdits(edits []TextEdit, contentLen int) error {
	for _, edit := range edits {
		switch {
		case edit.StartOffset < 0:
			return &ValidationError{Edit: edit, Message: "start offset is negative"}
		case edit.EndOffset < edit.StartOffset:
			return &ValidationError{Edit: edit, Message: "end offset is before start offset"}
		case edit.EndOffset > contentLen:
			return &ValidationError{
				Edit:    edit,
				Message: fmt.Sprintf("end offset %d exceeds content length %d", edit.EndOffset, contentLen),
			}
		}
	}
	return nil
}

// SortEdits sorts edits by start offset, then by end offset.
func SortEdits(edits []TextEdit) {
	slices.SortStableFunc(edits, func(a, b TextEdit) int {
		if c := cmp.Compare(a.StartOffset, b.StartOffset); c != 0 {
			return c
		}
		return cmp.Compare(a.EndOffset, b.EndOffset)
	})
}

// DetectConflicts checks a sorted slice for overlapping edits.
// Adjacent edits do not conflict.
func DetectConflicts(edits []TextEdit) error {
	for i := 1; i < len(edits); i++ {
		if edits[i].StartOffset < edits[i-1].EndOffset {
			return &ConflictError{Edit1: edits[i-1], Edit2: edits[i]}
		}
	}
	return nil
}

// PrepareEdits validates, sorts and checks edits for conflicts.
// The input slice is not modified.
func PrepareEdits(edits []TextEdit, contentLen int) ([]TextEdit, error) {
	if len(edits) == 0 {
		return nil, nil
	}

	if err := ValidateEdits(edits, contentLen); err != nil {
		return nil, err
	}

	sorted := slices.Clone(edits)
	SortEdits(sorted)

	if err := DetectConflicts(sorted); err != nil {
		return nil, err
	}

	return sorted, nil
}
