package domain

import (
	"bytes"
	"encoding/json"
)

// Task is the only entity managed by the service.
// ID is assigned by the storage engine on creation and never changes.
// Title and Description are nullable.
type Task struct {
	ID          int64
	Title       *string
	Description *string
}

// Fields returns the mutable fields of the task.
func (t *Task) Fields() TaskFields {
	return TaskFields{
		Title:       NullString{Value: t.Title, Set: true},
		Description: NullString{Value: t.Description, Set: true},
	}
}

// NullString is a nullable string that also remembers whether its key was
// present in the decoded JSON document. A JSON null is present with a nil
// Value; an absent key leaves Set false.
type NullString struct {
	Value *string
	Set   bool
}

// NewNullString returns a present, non-null NullString.
func NewNullString(s string) NullString {
	return NullString{Value: &s, Set: true}
}

// UnmarshalJSON implements json.Unmarshaler. encoding/json calls it for a
// JSON null as well, which is how presence is told apart from absence.
func (n *NullString) UnmarshalJSON(data []byte) error {
	n.Set = true
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		n.Value = nil
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	n.Value = &s
	return nil
}

// MarshalJSON implements json.Marshaler.
func (n NullString) MarshalJSON() ([]byte, error) {
	if n.Value == nil {
		return []byte("null"), nil
	}
	return json.Marshal(*n.Value)
}

// TaskFields holds the mutable fields of a Task. It is the body accepted by
// create and replace, and the shape echoed back on create.
type TaskFields struct {
	Title       NullString `json:"title"`
	Description NullString `json:"description"`
}

// NewTaskFields builds a fully present TaskFields from plain strings.
func NewTaskFields(title, description string) TaskFields {
	return TaskFields{
		Title:       NewNullString(title),
		Description: NewNullString(description),
	}
}

// Validate checks that both fields were supplied. Null and empty values are
// accepted; only absence is rejected.
func (f *TaskFields) Validate() error {
	if !f.Title.Set {
		return NewValidationError("title", "is required", ErrMissingField)
	}
	if !f.Description.Set {
		return NewValidationError("description", "is required", ErrMissingField)
	}
	return nil
}

// ToMap returns the serialized form of the fields keyed by "title" and "description".
func (f TaskFields) ToMap() map[string]any {
	return map[string]any{
		"title":       nullableValue(f.Title.Value),
		"description": nullableValue(f.Description.Value),
	}
}

func nullableValue(s *string) any {
	if s == nil {
		return nil
	}
	return *s
}
