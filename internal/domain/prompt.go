package domain

// PromptRecord represents a saved prompt in the library.
//
// Records are immutable after creation except for the IsFavorite flag,
// which is the only field the library is allowed to toggle.
type PromptRecord struct {
	// ─────────────────────────────
	// Identity (immutable)
	// ─────────────────────────────

	// ID is the canonical unique identifier.
	// Assigned by the caller at creation (uuid for generated prompts,
	// content hash for seeded ones). The library only enforces uniqueness.
	ID string `json:"id"`

	// ─────────────────────────────
	// Content (immutable)
	// ─────────────────────────────

	// Title is derived from the category and the truncated topic.
	// Example: "Coding: A python script to scrape da..."
	Title string `json:"title"`

	// Content is the generated prompt body.
	Content string `json:"content"`

	// Category is one of the generator's category labels
	// (ChatGPT, Coding, YouTube, ...) or an arbitrary label for seeded records.
	Category string `json:"category"`

	// Tags carries at minimum the tone label used at generation time.
	Tags []string `json:"tags"`

	// ─────────────────────────────
	// Metadata
	// ─────────────────────────────

	// CreatedAt is set once at creation, in unix milliseconds.
	// It is the default sort key for the library view.
	CreatedAt int64 `json:"createdAt"`

	// ─────────────────────────────
	// Mutable state
	// ─────────────────────────────

	// IsFavorite is the single field that may change after creation.
	IsFavorite bool `json:"isFavorite"`
}

// titleTopicLimit is the number of topic runes kept in a derived title.
const titleTopicLimit = 30

// NewPromptRecord builds a record for a freshly generated prompt.
// The title is derived from the category and the truncated topic.
func NewPromptRecord(id, topic, category, tone, content string, createdAt int64) PromptRecord {
	return PromptRecord{
		ID:        id,
		Title:     DeriveTitle(category, topic),
		Content:   content,
		Category:  category,
		Tags:      []string{tone},
		CreatedAt: createdAt,
	}
}

// DeriveTitle builds the display title: "<category>: <topic[:30]>...".
// The ellipsis is always appended, matching the library card layout.
func DeriveTitle(category, topic string) string {
	runes := []rune(topic)
	if len(runes) > titleTopicLimit {
		runes = runes[:titleTopicLimit]
	}
	return category + ": " + string(runes) + "..."
}

// Validate checks the invariants a record must satisfy before it can be
// persisted into the library. An in-progress generation (empty content)
// must not be saved.
func (r PromptRecord) Validate() error {
	if r.ID == "" {
		return &ValidationError{Field: "id", Reason: "must not be empty"}
	}
	if r.Title == "" {
		return &ValidationError{Field: "title", Reason: "must not be empty"}
	}
	if r.Content == "" {
		return &ValidationError{Field: "content", Reason: "must not be empty"}
	}
	return nil
}

// Clone returns a copy of the record with its own tags slice,
// so snapshots never alias library internals.
func (r PromptRecord) Clone() PromptRecord {
	out := r
	if r.Tags != nil {
		out.Tags = make([]string, len(r.Tags))
		copy(out.Tags, r.Tags)
	}
	return out
}
