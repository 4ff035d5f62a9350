package genai

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/sashabaranov/go-openai"

	"github.com/promptdeck/promptdeck/internal/logger"
)

// User-facing sentinel messages. These are returned as plain text instead of
// errors so the client can render them directly in the output pane.
const (
	MsgMissingKeyGenerate = "⚠️ API Key is missing. Please check your configuration."
	MsgMissingKeyChat     = "System Error: API Key missing."
	MsgGenerateFailed     = "Failed to generate prompt. Please try again."
	MsgGenerateError      = "An error occurred while communicating with the AI provider. Please try again."
	MsgChatEmpty          = "I couldn't generate a response."
	MsgChatError          = "Sorry, I'm having trouble connecting right now. Please try again later."
)

// ErrMissingAPIKey is returned by EditImage when no credential is configured.
// The text endpoints return sentinel messages instead.
var ErrMissingAPIKey = errors.New("genai: API key is missing")

const (
	systemPromptGenerate = "You are a specialized AI designed to generate high-quality prompts for LLMs and creative tools."
	systemPromptChat     = "You are PromptDeck AI, a helpful assistant for building apps, coding, and generating creative content. You are knowledgeable about SEO, SaaS monetization, and software architecture."
)

// Config holds provider settings. Any OpenAI-compatible endpoint works via
// BaseURL; models default to small/fast text models and gpt-image-1.
type Config struct {
	APIKey        string
	BaseURL       string        // optional, for OpenAI-compatible providers
	GenerateModel string        // fast model for one-shot prompt generation
	ChatModel     string        // larger model for multi-turn chat
	ImageModel    string        // image edit model
	Temperature   float32       // default 0.7
	Timeout       time.Duration // per-request HTTP timeout
}

// Client implements Facade against an OpenAI-compatible API.
type Client struct {
	client *openai.Client
	cfg    Config
	logger logger.Logger
}

// New builds the facade client. A missing API key is not an error here:
// the client is constructed anyway and individual calls degrade to their
// sentinel messages, so the application always starts.
func New(cfg Config, log logger.Logger) *Client {
	if cfg.GenerateModel == "" {
		cfg.GenerateModel = "gpt-4o-mini"
	}
	if cfg.ChatModel == "" {
		cfg.ChatModel = "gpt-4o"
	}
	if cfg.ImageModel == "" {
		cfg.ImageModel = "gpt-image-1"
	}
	if cfg.Temperature == 0 {
		cfg.Temperature = 0.7
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 120 * time.Second
	}

	clientConfig := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientConfig.BaseURL = cfg.BaseURL
	}
	clientConfig.HTTPClient = &http.Client{Timeout: cfg.Timeout}

	return &Client{
		client: openai.NewClientWithConfig(clientConfig),
		cfg:    cfg,
		logger: log,
	}
}

// GeneratePrompt asks the provider for a ready-to-copy prompt body.
func (c *Client) GeneratePrompt(ctx context.Context, topic, category, tone string) string {
	if c.cfg.APIKey == "" {
		return MsgMissingKeyGenerate
	}

	userPrompt := fmt.Sprintf(
		"You are an expert Prompt Engineer.\n"+
			"Create a highly effective, detailed, and professional prompt for:\n"+
			"Category: %s\nTopic: %s\nTone: %s\n\n"+
			"Return ONLY the prompt text, ready to be copied. Do not add conversational filler.",
		category, topic, tone)

	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       c.cfg.GenerateModel,
		Temperature: c.cfg.Temperature,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPromptGenerate},
			{Role: openai.ChatMessageRoleUser, Content: userPrompt},
		},
	})
	if err != nil {
		c.logger.Error("prompt generation failed", logger.Error(err))
		return MsgGenerateError
	}

	content := firstChoice(resp)
	if content == "" {
		return MsgGenerateFailed
	}
	return content
}

// SendChatTurn exchanges one turn with the chat model. The full prior
// history is supplied by the caller on every call.
func (c *Client) SendChatTurn(ctx context.Context, message string, history []Turn) string {
	if c.cfg.APIKey == "" {
		return MsgMissingKeyChat
	}

	messages := make([]openai.ChatCompletionMessage, 0, len(history)+2)
	messages = append(messages, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleSystem,
		Content: systemPromptChat,
	})
	for _, turn := range history {
		messages = append(messages, openai.ChatCompletionMessage{
			Role:    mapRole(turn.Role),
			Content: turn.Text,
		})
	}
	messages = append(messages, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleUser,
		Content: message,
	})

	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:    c.cfg.ChatModel,
		Messages: messages,
	})
	if err != nil {
		c.logger.Error("chat turn failed", logger.Error(err))
		return MsgChatError
	}

	content := firstChoice(resp)
	if content == "" {
		return MsgChatEmpty
	}
	return content
}

// EditImage submits a base64 image with an edit instruction and returns a
// data-URI-compatible base64 payload, or "" when the provider returned no
// image part.
func (c *Client) EditImage(ctx context.Context, imageB64, instruction, mimeType string) (string, error) {
	if c.cfg.APIKey == "" {
		return "", ErrMissingAPIKey
	}
	if mimeType == "" {
		mimeType = "image/png"
	}

	raw, err := base64.StdEncoding.DecodeString(imageB64)
	if err != nil {
		return "", fmt.Errorf("decode input image: %w", err)
	}

	resp, err := c.client.CreateEditImage(ctx, openai.ImageEditRequest{
		Image:          openai.WrapReader(bytes.NewReader(raw), fileNameFor(mimeType), mimeType),
		Prompt:         fmt.Sprintf("Edit this image: %s. Return the edited image.", instruction),
		Model:          c.cfg.ImageModel,
		N:              1,
		ResponseFormat: openai.CreateImageResponseFormatB64JSON,
	})
	if err != nil {
		c.logger.Error("image edit failed", logger.Error(err))
		return "", fmt.Errorf("image edit: %w", err)
	}

	for _, part := range resp.Data {
		if part.B64JSON != "" {
			return fmt.Sprintf("data:%s;base64,%s", mimeType, part.B64JSON), nil
		}
	}
	return "", nil
}

// firstChoice extracts the first completion's text, trimmed.
func firstChoice(resp openai.ChatCompletionResponse) string {
	if len(resp.Choices) == 0 {
		return ""
	}
	return strings.TrimSpace(resp.Choices[0].Message.Content)
}

// mapRole converts the client-side "model" role to the provider's
// "assistant" role. Anything else passes through as "user".
func mapRole(role string) string {
	if role == "model" {
		return openai.ChatMessageRoleAssistant
	}
	return openai.ChatMessageRoleUser
}

// fileNameFor gives the multipart upload a plausible filename extension.
func fileNameFor(mimeType string) string {
	switch mimeType {
	case "image/jpeg":
		return "image.jpg"
	case "image/webp":
		return "image.webp"
	default:
		return "image.png"
	}
}
