package handlers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/promptdeck/promptdeck/internal/domain"
	"github.com/promptdeck/promptdeck/internal/httpserver/deps"
	"github.com/promptdeck/promptdeck/internal/logger"
)

type listResponse struct {
	Total      int                   `json:"total"`   // records in the library
	Matched    int                   `json:"matched"` // records after filtering
	Categories []string              `json:"categories"`
	Prompts    []domain.PromptRecord `json:"prompts"`
}

// ListPrompts returns the derived view of the library: filtered, sorted,
// with the category options computed from the full collection. Total vs
// Matched lets the client distinguish an empty library from filters that
// matched nothing.
func ListPrompts(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		params := domain.QueryParams{
			Search:        q.Get("q"),
			Category:      q.Get("category"),
			FavoritesOnly: q.Get("favorites") == "true",
			Sort:          domain.ParseSortKey(q.Get("sort")),
		}

		snapshot := d.Library.Snapshot()
		prompts := domain.Derive(snapshot, params)

		writeJSON(w, http.StatusOK, listResponse{
			Total:      len(snapshot),
			Matched:    len(prompts),
			Categories: domain.Categories(snapshot),
			Prompts:    prompts,
		})
	}
}

type savePromptRequest struct {
	Topic    string `json:"topic"`
	Category string `json:"category"`
	Tone     string `json:"tone"`
	Content  string `json:"content"`
}

// SavePrompt commits a finished generation into the library. The server
// assigns the id and timestamp; the title is derived from category and topic.
func SavePrompt(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req savePromptRequest
		if err := decodeJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid JSON body")
			return
		}

		record := domain.NewPromptRecord(
			uuid.NewString(),
			req.Topic,
			req.Category,
			req.Tone,
			req.Content,
			d.TimeNow().UnixMilli(),
		)

		if err := d.Library.Add(record); err != nil {
			var verr *domain.ValidationError
			if errors.As(err, &verr) {
				if verr.Field == "id" {
					writeError(w, http.StatusConflict, verr.Error())
					return
				}
				writeError(w, http.StatusUnprocessableEntity, verr.Error())
				return
			}
			writeError(w, http.StatusInternalServerError, "could not save prompt")
			return
		}

		persistRecord(d, r, record)
		writeJSON(w, http.StatusCreated, record)
	}
}

// ToggleFavorite flips the favorite flag and returns the updated record.
func ToggleFavorite(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")

		record, err := d.Library.ToggleFavorite(id)
		if err != nil {
			var nf *domain.NotFoundError
			if errors.As(err, &nf) {
				writeError(w, http.StatusNotFound, nf.Error())
				return
			}
			writeError(w, http.StatusInternalServerError, "could not toggle favorite")
			return
		}

		persistRecord(d, r, record)
		writeJSON(w, http.StatusOK, record)
	}
}

// DeletePrompt removes a record. Idempotent: deleting an absent id still
// returns 204, so a double-submitted confirm dialog stays harmless.
func DeletePrompt(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")

		d.Library.Delete(id)

		if d.Store != nil {
			if err := d.Store.DeletePrompt(r.Context(), id); err != nil {
				d.Logger.Warn("persist delete failed",
					logger.String("id", id),
					logger.Error(err),
				)
			}
		}

		w.WriteHeader(http.StatusNoContent)
	}
}

// persistRecord is the write-behind hook: the in-memory library is already
// committed, so a store failure is logged and otherwise ignored.
func persistRecord(d deps.Deps, r *http.Request, record domain.PromptRecord) {
	if d.Store == nil {
		return
	}
	if err := d.Store.SavePrompt(r.Context(), record); err != nil {
		d.Logger.Warn("persist save failed",
			logger.String("id", record.ID),
			logger.Error(err),
		)
	}
}
