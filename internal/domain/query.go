package domain

// CategoryAll is the sentinel category meaning "no category filter".
const CategoryAll = "All"

// SortKey selects the single sort key applied after filtering.
type SortKey string

const (
	// SortByRecency orders newest first (default).
	SortByRecency SortKey = "recency"
	// SortByTitle orders by ascending locale-aware title comparison.
	SortByTitle SortKey = "title"
	// SortByFavorites groups by favorite status, non-favorites first.
	SortByFavorites SortKey = "favorites"
)

// ParseSortKey maps user input to a SortKey, defaulting to recency.
func ParseSortKey(s string) SortKey {
	switch SortKey(s) {
	case SortByTitle:
		return SortByTitle
	case SortByFavorites:
		return SortByFavorites
	default:
		return SortByRecency
	}
}

// QueryParams is the immutable value object describing one derived view
// of the library: search text, category filter, favorites toggle, sort key.
// It is owned by the caller and never persisted.
type QueryParams struct {
	// Search is matched case-insensitively as a literal substring of
	// title+content+category. Empty matches everything.
	Search string

	// Category filters on exact, case-sensitive equality,
	// unless set to CategoryAll.
	Category string

	// FavoritesOnly keeps only records with IsFavorite set.
	FavoritesOnly bool

	// Sort selects the ordering of the filtered records.
	Sort SortKey
}

// NormalizedCategory returns the category filter with the empty string
// treated as CategoryAll.
func (p QueryParams) NormalizedCategory() string {
	if p.Category == "" {
		return CategoryAll
	}
	return p.Category
}
