package genai

import "context"

// Turn is one entry of a chat conversation history. The facade is stateless;
// the caller owns the history and replays it on every exchange.
type Turn struct {
	Role string `json:"role"` // "user" or "model"
	Text string `json:"text"`
}

// Facade is the boundary to the generative-AI provider. The library core
// never calls it; only the HTTP handlers do, and only a successful result
// ever reaches the library via an explicit save.
//
// Failure policy: GeneratePrompt and SendChatTurn always return displayable
// text. Provider failures and a missing credential come back as sentinel
// messages, never as errors. EditImage returns an error for provider
// failures and an empty string when the provider produced no image.
type Facade interface {
	GeneratePrompt(ctx context.Context, topic, category, tone string) string
	SendChatTurn(ctx context.Context, message string, history []Turn) string
	EditImage(ctx context.Context, imageB64, instruction, mimeType string) (string, error)
}
