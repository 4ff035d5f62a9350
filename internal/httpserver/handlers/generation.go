package handlers

import (
	"net/http"
	"strings"

	"github.com/promptdeck/promptdeck/internal/genai"
	"github.com/promptdeck/promptdeck/internal/httpserver/deps"
	"github.com/promptdeck/promptdeck/internal/logger"
	"github.com/promptdeck/promptdeck/internal/utils"
)

// Control keys for the in-flight guard. Each endpoint is its own control:
// a chat send is allowed while an image edit is still pending, but the same
// client cannot run two chat sends at once.
const (
	controlGenerate = "generate"
	controlChat     = "chat"
	controlImage    = "image"
)

func inflightKey(control string, d deps.Deps, r *http.Request) string {
	return control + ":" + utils.ClientIP(r, d.TrustProxy)
}

type generateRequest struct {
	Topic    string `json:"topic"`
	Category string `json:"category"`
	Tone     string `json:"tone"`
}

type generateResponse struct {
	Content string `json:"content"`
}

// Generate asks the facade for a prompt. The facade never returns an error
// here: failures come back as displayable text, so the status is 200 either
// way and the client shows whatever it got.
func Generate(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req generateRequest
		if err := decodeJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid JSON body")
			return
		}
		if strings.TrimSpace(req.Topic) == "" {
			writeError(w, http.StatusUnprocessableEntity, "topic must not be empty")
			return
		}

		key := inflightKey(controlGenerate, d, r)
		if !d.InFlight.TryAcquire(key) {
			writeError(w, http.StatusConflict, "a generation is already in progress")
			return
		}
		defer d.InFlight.Release(key)

		content := d.Facade.GeneratePrompt(r.Context(), req.Topic, req.Category, req.Tone)
		writeJSON(w, http.StatusOK, generateResponse{Content: content})
	}
}

type chatRequest struct {
	Message string       `json:"message"`
	History []genai.Turn `json:"history"`
}

type chatResponse struct {
	Reply string `json:"reply"`
}

// Chat relays one conversational exchange. The server keeps no conversation
// state; the client replays its history on every call.
func Chat(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req chatRequest
		if err := decodeJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid JSON body")
			return
		}
		if strings.TrimSpace(req.Message) == "" {
			writeError(w, http.StatusUnprocessableEntity, "message must not be empty")
			return
		}

		key := inflightKey(controlChat, d, r)
		if !d.InFlight.TryAcquire(key) {
			writeError(w, http.StatusConflict, "a chat exchange is already in progress")
			return
		}
		defer d.InFlight.Release(key)

		reply := d.Facade.SendChatTurn(r.Context(), req.Message, req.History)
		writeJSON(w, http.StatusOK, chatResponse{Reply: reply})
	}
}

type imageEditRequest struct {
	Image       string `json:"image"` // base64, no data-uri prefix
	Instruction string `json:"instruction"`
	MimeType    string `json:"mimeType"`
}

type imageEditResponse struct {
	Image string `json:"image"` // data URI, empty when the provider returned none
}

// EditImage forwards an image edit request. Unlike the text endpoints the
// facade reports provider failures as errors, mapped to 502 here.
func EditImage(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req imageEditRequest
		if err := decodeJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid JSON body")
			return
		}
		if req.Image == "" || strings.TrimSpace(req.Instruction) == "" {
			writeError(w, http.StatusUnprocessableEntity, "image and instruction must not be empty")
			return
		}

		key := inflightKey(controlImage, d, r)
		if !d.InFlight.TryAcquire(key) {
			writeError(w, http.StatusConflict, "an image edit is already in progress")
			return
		}
		defer d.InFlight.Release(key)

		result, err := d.Facade.EditImage(r.Context(), req.Image, req.Instruction, req.MimeType)
		if err != nil {
			d.Logger.Warn("image edit failed", logger.Error(err))
			writeError(w, http.StatusBadGateway, "image edit failed")
			return
		}

		writeJSON(w, http.StatusOK, imageEditResponse{Image: result})
	}
}
