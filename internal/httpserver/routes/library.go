package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/promptdeck/promptdeck/internal/httpserver/deps"
	"github.com/promptdeck/promptdeck/internal/httpserver/handlers"
)

func init() { Register(registerLibrary) }

func registerLibrary(r chi.Router, d deps.Deps) {
	r.Get("/api/prompts", handlers.ListPrompts(d))
	r.Post("/api/prompts", handlers.SavePrompt(d))
	r.Post("/api/prompts/{id}/favorite", handlers.ToggleFavorite(d))
	r.Delete("/api/prompts/{id}", handlers.DeletePrompt(d))
}
