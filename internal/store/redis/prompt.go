package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"

	"github.com/redis/go-redis/v9"

	"github.com/promptdeck/promptdeck/internal/domain"
)

// Store is the optional persistence adapter for the library. Records are
// stored as JSON blobs with no TTL; the in-memory library stays authoritative
// and every write here is best-effort from the caller's point of view.
type Store struct {
	client *redis.Client
}

// NewStore creates a new Redis store
func NewStore(client *redis.Client) *Store {
	return &Store{
		client: client,
	}
}

// SavePrompt stores a single prompt record
func (s *Store) SavePrompt(ctx context.Context, record domain.PromptRecord) error {
	data, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("failed to marshal prompt record: %w", err)
	}

	if err := s.client.Set(ctx, PromptKey(record.ID), data, 0).Err(); err != nil {
		return fmt.Errorf("failed to save prompt record: %w", err)
	}

	if err := s.client.SAdd(ctx, AllPromptsKey(), record.ID).Err(); err != nil {
		return fmt.Errorf("failed to add prompt record to set: %w", err)
	}

	return nil
}

// GetPrompt retrieves a prompt record by ID
func (s *Store) GetPrompt(ctx context.Context, id string) (domain.PromptRecord, error) {
	data, err := s.client.Get(ctx, PromptKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return domain.PromptRecord{}, &domain.NotFoundError{ID: id}
		}
		return domain.PromptRecord{}, fmt.Errorf("failed to get prompt record: %w", err)
	}

	var record domain.PromptRecord
	if err := json.Unmarshal(data, &record); err != nil {
		return domain.PromptRecord{}, fmt.Errorf("failed to unmarshal prompt record: %w", err)
	}

	return record, nil
}

// GetAllPrompts retrieves all prompt records, ordered by creation time so the
// library can be rebuilt with its original insertion order.
func (s *Store) GetAllPrompts(ctx context.Context) ([]domain.PromptRecord, error) {
	ids, err := s.client.SMembers(ctx, AllPromptsKey()).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get prompt record IDs: %w", err)
	}

	records := make([]domain.PromptRecord, 0, len(ids))
	for _, id := range ids {
		record, err := s.GetPrompt(ctx, id)
		if err != nil {
			// Skip records that couldn't be retrieved
			continue
		}
		records = append(records, record)
	}

	// Set membership is unordered; CreatedAt (with ID as tie-break) restores
	// a deterministic append order.
	sort.SliceStable(records, func(i, j int) bool {
		if records[i].CreatedAt != records[j].CreatedAt {
			return records[i].CreatedAt < records[j].CreatedAt
		}
		return records[i].ID < records[j].ID
	})

	return records, nil
}

// DeletePrompt removes a prompt record
func (s *Store) DeletePrompt(ctx context.Context, id string) error {
	if err := s.client.Del(ctx, PromptKey(id)).Err(); err != nil {
		return fmt.Errorf("failed to delete prompt record: %w", err)
	}

	if err := s.client.SRem(ctx, AllPromptsKey(), id).Err(); err != nil {
		return fmt.Errorf("failed to remove prompt record from set: %w", err)
	}

	return nil
}

// SavePromptsMany stores multiple prompt records in one pipeline (bulk snapshot)
func (s *Store) SavePromptsMany(ctx context.Context, records []domain.PromptRecord) error {
	pipe := s.client.Pipeline()

	for _, record := range records {
		data, err := json.Marshal(record)
		if err != nil {
			return fmt.Errorf("failed to marshal prompt record %s: %w", record.ID, err)
		}

		pipe.Set(ctx, PromptKey(record.ID), data, 0)
		pipe.SAdd(ctx, AllPromptsKey(), record.ID)
	}

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to save prompt records: %w", err)
	}

	return nil
}
