package seed

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/promptdeck/promptdeck/internal/domain"
)

// Mapper converts seed entries to domain prompt records
type Mapper struct{}

// NewMapper creates a new seed mapper
func NewMapper() *Mapper {
	return &Mapper{}
}

// Map converts a parsed seed file to prompt records. Entries missing a title
// or content are dropped here; the library would reject them anyway.
func (m *Mapper) Map(f File) ([]domain.PromptRecord, error) {
	records := make([]domain.PromptRecord, 0, len(f.Prompts))
	now := time.Now().UnixMilli()

	for _, entry := range f.Prompts {
		if entry.Title == "" || entry.Content == "" {
			continue
		}

		id := entry.ID
		if id == "" {
			// Stable content-derived ID, so re-importing the same seed file
			// collides with the existing record instead of duplicating it.
			id = generateSeedID(entry.Title, entry.Content)
		}

		createdAt := entry.CreatedAt
		if createdAt == 0 {
			createdAt = now
		}

		records = append(records, domain.PromptRecord{
			ID:         id,
			Title:      entry.Title,
			Content:    entry.Content,
			Category:   entry.Category,
			Tags:       entry.Tags,
			CreatedAt:  createdAt,
			IsFavorite: entry.Favorite,
		})
	}

	if len(records) == 0 {
		return nil, fmt.Errorf("no valid prompt records found in seed file")
	}

	return records, nil
}

// generateSeedID creates a stable ID from title+content using SHA-256
func generateSeedID(title, content string) string {
	hash := sha256.Sum256([]byte(title + "\x00" + content))
	return hex.EncodeToString(hash[:])[:16]
}
