package domain

import "fmt"

// ValidationError reports a record that cannot be added to the library:
// an empty title/content, or a duplicate id (Field == "id").
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid prompt record: %s %s", e.Field, e.Reason)
}

// NotFoundError reports a mutation referencing an absent record id.
// Delete is an idempotent no-op instead; only ToggleFavorite returns this.
type NotFoundError struct {
	ID string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("prompt record not found: %s", e.ID)
}
