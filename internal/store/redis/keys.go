package redis

import "fmt"

const (
	// KeyPrefixPrompt is the prefix for individual prompt record keys
	KeyPrefixPrompt = "deck:prompt:"
	// KeyAllPrompts is the key for the set of all prompt record IDs
	KeyAllPrompts = "deck:prompts:all"
)

// PromptKey returns the Redis key for a prompt record by ID
func PromptKey(id string) string {
	return KeyPrefixPrompt + id
}

// AllPromptsKey returns the key for the set of all prompt record IDs
func AllPromptsKey() string {
	return KeyAllPrompts
}

// ExtractPromptID extracts the record ID from a Redis key
func ExtractPromptID(key string) (string, error) {
	if len(key) <= len(KeyPrefixPrompt) {
		return "", fmt.Errorf("invalid prompt key: %s", key)
	}
	return key[len(KeyPrefixPrompt):], nil
}
