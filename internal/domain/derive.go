package domain

import (
	"sort"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Derive computes the displayed view of a library snapshot: filter then sort.
// It is a pure function. The snapshot is never mutated and the returned slice
// is freshly allocated, so callers may reorder or truncate it freely.
func Derive(snapshot []PromptRecord, params QueryParams) []PromptRecord {
	out := make([]PromptRecord, 0, len(snapshot))
	for _, record := range snapshot {
		if Matches(record, params) {
			out = append(out, record)
		}
	}

	sortRecords(out, params.Sort)
	return out
}

// Matches reports whether a record passes all three filter predicates.
// The predicates are conjunctive: search AND category AND favorites.
func Matches(record PromptRecord, params QueryParams) bool {
	return matchesSearch(record, params.Search) &&
		matchesCategory(record, params.NormalizedCategory()) &&
		matchesFavorites(record, params.FavoritesOnly)
}

// matchesSearch does a case-insensitive literal substring test against the
// concatenation of title, content and category. No tokenization, no weighting.
func matchesSearch(record PromptRecord, search string) bool {
	if search == "" {
		return true
	}
	haystack := strings.ToLower(record.Title + record.Content + record.Category)
	return strings.Contains(haystack, strings.ToLower(search))
}

// matchesCategory is an exact, case-sensitive comparison.
func matchesCategory(record PromptRecord, category string) bool {
	return category == CategoryAll || record.Category == category
}

func matchesFavorites(record PromptRecord, favoritesOnly bool) bool {
	return !favoritesOnly || record.IsFavorite
}

// sortRecords applies the single sort key in place. All sorts are stable:
// records comparing equal keep their snapshot (insertion) order.
func sortRecords(records []PromptRecord, key SortKey) {
	switch key {
	case SortByTitle:
		// Collators are not safe for concurrent use, so build one per sort.
		c := collate.New(language.Und)
		sort.SliceStable(records, func(i, j int) bool {
			return c.CompareString(records[i].Title, records[j].Title) < 0
		})
	case SortByFavorites:
		// Non-favorites sort first. Counterintuitive but intentional:
		// this preserves the ordering users of the original view rely on.
		sort.SliceStable(records, func(i, j int) bool {
			return !records[i].IsFavorite && records[j].IsFavorite
		})
	default:
		// Recency: newest first.
		sort.SliceStable(records, func(i, j int) bool {
			return records[i].CreatedAt > records[j].CreatedAt
		})
	}
}

// Categories returns the filter options derived from the current collection:
// the CategoryAll sentinel followed by the distinct categories in first-seen
// order. Recomputed from the snapshot on every call, never configured.
func Categories(snapshot []PromptRecord) []string {
	out := []string{CategoryAll}
	seen := make(map[string]bool, len(snapshot))
	for _, record := range snapshot {
		if record.Category == "" || seen[record.Category] {
			continue
		}
		seen[record.Category] = true
		out = append(out, record.Category)
	}
	return out
}
