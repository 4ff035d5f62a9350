package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/promptdeck/promptdeck/internal/domain"
	"github.com/promptdeck/promptdeck/internal/genai"
	"github.com/promptdeck/promptdeck/internal/httpserver/deps"
	"github.com/promptdeck/promptdeck/internal/library"
	"github.com/promptdeck/promptdeck/internal/logger"
	"github.com/promptdeck/promptdeck/internal/utils"
)

// fakeFacade is a canned-response Facade for handler tests.
type fakeFacade struct {
	generateResult string
	chatResult     string
	imageResult    string
	imageErr       error
}

func (f *fakeFacade) GeneratePrompt(ctx context.Context, topic, category, tone string) string {
	return f.generateResult
}

func (f *fakeFacade) SendChatTurn(ctx context.Context, message string, history []genai.Turn) string {
	return f.chatResult
}

func (f *fakeFacade) EditImage(ctx context.Context, imageB64, instruction, mimeType string) (string, error) {
	return f.imageResult, f.imageErr
}

func testDeps(facade genai.Facade) deps.Deps {
	return deps.Deps{
		Logger:    logger.NewNop(),
		StartTime: time.Now(),
		TimeNow:   func() time.Time { return time.UnixMilli(1700000000000) },
		Library:   library.New(),
		Facade:    facade,
		InFlight:  utils.NewInFlight(),
	}
}

func testRouter(d deps.Deps) chi.Router {
	r := chi.NewRouter()
	r.Get("/api/prompts", ListPrompts(d))
	r.Post("/api/prompts", SavePrompt(d))
	r.Post("/api/prompts/{id}/favorite", ToggleFavorite(d))
	r.Delete("/api/prompts/{id}", DeletePrompt(d))
	r.Post("/api/generate", Generate(d))
	r.Post("/api/chat", Chat(d))
	r.Post("/api/image/edit", EditImage(d))
	return r
}

func doJSON(t *testing.T, router chi.Router, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var rd *strings.Reader
	if body == "" {
		rd = strings.NewReader("")
	} else {
		rd = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, rd)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func mustAdd(t *testing.T, d deps.Deps, r domain.PromptRecord) {
	t.Helper()
	if err := d.Library.Add(r); err != nil {
		t.Fatal(err)
	}
}

func TestListPromptsEmptyLibrary(t *testing.T) {
	d := testDeps(&fakeFacade{})
	rec := doJSON(t, testRouter(d), http.MethodGet, "/api/prompts", "")

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var resp listResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if resp.Total != 0 || resp.Matched != 0 {
		t.Errorf("total=%d matched=%d, want 0/0", resp.Total, resp.Matched)
	}
	if len(resp.Categories) != 1 || resp.Categories[0] != "All" {
		t.Errorf("categories = %v, want [All]", resp.Categories)
	}
	if resp.Prompts == nil {
		t.Error("prompts is null, want empty array")
	}
}

func TestListPromptsDistinguishesNoMatchFromEmpty(t *testing.T) {
	d := testDeps(&fakeFacade{})
	mustAdd(t, d, domain.PromptRecord{ID: "1", Title: "Coding: x...", Content: "body", Category: "Coding", CreatedAt: 1})

	rec := doJSON(t, testRouter(d), http.MethodGet, "/api/prompts?q=nomatch", "")

	var resp listResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if resp.Total != 1 {
		t.Errorf("total = %d, want 1", resp.Total)
	}
	if resp.Matched != 0 {
		t.Errorf("matched = %d, want 0", resp.Matched)
	}
}

func TestListPromptsFilterAndSort(t *testing.T) {
	d := testDeps(&fakeFacade{})
	mustAdd(t, d, domain.PromptRecord{ID: "1", Title: "Coding: b...", Content: "x", Category: "Coding", CreatedAt: 100})
	mustAdd(t, d, domain.PromptRecord{ID: "2", Title: "Coding: a...", Content: "x", Category: "Coding", CreatedAt: 200})
	mustAdd(t, d, domain.PromptRecord{ID: "3", Title: "YouTube: c...", Content: "x", Category: "YouTube", CreatedAt: 300})

	rec := doJSON(t, testRouter(d), http.MethodGet, "/api/prompts?category=Coding&sort=title", "")

	var resp listResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if resp.Matched != 2 {
		t.Fatalf("matched = %d, want 2", resp.Matched)
	}
	if resp.Prompts[0].ID != "2" || resp.Prompts[1].ID != "1" {
		t.Errorf("order = [%s %s], want [2 1]", resp.Prompts[0].ID, resp.Prompts[1].ID)
	}
}

func TestSavePromptRoundTrip(t *testing.T) {
	d := testDeps(&fakeFacade{})
	router := testRouter(d)

	rec := doJSON(t, router, http.MethodPost, "/api/prompts",
		`{"topic":"a git alias","category":"Coding","tone":"Professional","content":"Write a git alias"}`)

	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201: %s", rec.Code, rec.Body.String())
	}

	var saved domain.PromptRecord
	if err := json.Unmarshal(rec.Body.Bytes(), &saved); err != nil {
		t.Fatal(err)
	}
	if saved.ID == "" {
		t.Error("server did not assign an id")
	}
	if saved.Title != "Coding: a git alias..." {
		t.Errorf("title = %q, want derived title", saved.Title)
	}
	if saved.CreatedAt != 1700000000000 {
		t.Errorf("createdAt = %d, want the injected clock value", saved.CreatedAt)
	}

	list := doJSON(t, router, http.MethodGet, "/api/prompts", "")
	var resp listResponse
	if err := json.Unmarshal(list.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if resp.Total != 1 || resp.Prompts[0].ID != saved.ID {
		t.Errorf("saved record not visible in list: %+v", resp)
	}
}

func TestSavePromptRejectsEmptyContent(t *testing.T) {
	d := testDeps(&fakeFacade{})
	rec := doJSON(t, testRouter(d), http.MethodPost, "/api/prompts",
		`{"topic":"a topic","category":"Coding","tone":"Professional","content":""}`)

	if rec.Code != http.StatusUnprocessableEntity {
		t.Errorf("status = %d, want 422", rec.Code)
	}
	if d.Library.Len() != 0 {
		t.Error("invalid record reached the library")
	}
}

func TestSavePromptRejectsBadJSON(t *testing.T) {
	d := testDeps(&fakeFacade{})
	rec := doJSON(t, testRouter(d), http.MethodPost, "/api/prompts", `{not json`)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestToggleFavoriteEndpoint(t *testing.T) {
	d := testDeps(&fakeFacade{})
	mustAdd(t, d, domain.PromptRecord{ID: "p1", Title: "t", Content: "c", CreatedAt: 1})
	router := testRouter(d)

	rec := doJSON(t, router, http.MethodPost, "/api/prompts/p1/favorite", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var updated domain.PromptRecord
	if err := json.Unmarshal(rec.Body.Bytes(), &updated); err != nil {
		t.Fatal(err)
	}
	if !updated.IsFavorite {
		t.Error("record not marked favorite")
	}

	rec = doJSON(t, router, http.MethodPost, "/api/prompts/absent/favorite", "")
	if rec.Code != http.StatusNotFound {
		t.Errorf("status for unknown id = %d, want 404", rec.Code)
	}
}

func TestDeletePromptIsIdempotent(t *testing.T) {
	d := testDeps(&fakeFacade{})
	mustAdd(t, d, domain.PromptRecord{ID: "p1", Title: "t", Content: "c", CreatedAt: 1})
	router := testRouter(d)

	rec := doJSON(t, router, http.MethodDelete, "/api/prompts/p1", "")
	if rec.Code != http.StatusNoContent {
		t.Errorf("first delete status = %d, want 204", rec.Code)
	}

	rec = doJSON(t, router, http.MethodDelete, "/api/prompts/p1", "")
	if rec.Code != http.StatusNoContent {
		t.Errorf("second delete status = %d, want 204", rec.Code)
	}

	if d.Library.Len() != 0 {
		t.Errorf("library has %d records after delete, want 0", d.Library.Len())
	}
}

func TestGenerateReturnsContent(t *testing.T) {
	d := testDeps(&fakeFacade{generateResult: "a generated prompt"})
	rec := doJSON(t, testRouter(d), http.MethodPost, "/api/generate",
		`{"topic":"a topic","category":"Coding","tone":"Professional"}`)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var resp generateResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if resp.Content != "a generated prompt" {
		t.Errorf("content = %q, want facade result", resp.Content)
	}
}

func TestGenerateRejectsEmptyTopic(t *testing.T) {
	d := testDeps(&fakeFacade{})
	rec := doJSON(t, testRouter(d), http.MethodPost, "/api/generate",
		`{"topic":"  ","category":"Coding","tone":"Professional"}`)
	if rec.Code != http.StatusUnprocessableEntity {
		t.Errorf("status = %d, want 422", rec.Code)
	}
}

func TestGenerateConflictsWhileInFlight(t *testing.T) {
	d := testDeps(&fakeFacade{generateResult: "x"})

	// httptest requests carry RemoteAddr 192.0.2.1:1234.
	if !d.InFlight.TryAcquire("generate:192.0.2.1") {
		t.Fatal("could not pre-acquire the control key")
	}
	defer d.InFlight.Release("generate:192.0.2.1")

	rec := doJSON(t, testRouter(d), http.MethodPost, "/api/generate",
		`{"topic":"a topic","category":"Coding","tone":"Professional"}`)
	if rec.Code != http.StatusConflict {
		t.Errorf("status = %d, want 409", rec.Code)
	}
}

func TestChatAllowedWhileImageEditInFlight(t *testing.T) {
	d := testDeps(&fakeFacade{chatResult: "a reply"})

	// A pending image edit must not block a chat send from the same client.
	if !d.InFlight.TryAcquire("image:192.0.2.1") {
		t.Fatal("could not pre-acquire the image control key")
	}
	defer d.InFlight.Release("image:192.0.2.1")

	rec := doJSON(t, testRouter(d), http.MethodPost, "/api/chat",
		`{"message":"hello","history":[]}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var resp chatResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if resp.Reply != "a reply" {
		t.Errorf("reply = %q, want facade result", resp.Reply)
	}
}

func TestGenerateReleasesKeyAfterRequest(t *testing.T) {
	d := testDeps(&fakeFacade{generateResult: "x"})
	router := testRouter(d)
	body := `{"topic":"a topic","category":"Coding","tone":"Professional"}`

	if rec := doJSON(t, router, http.MethodPost, "/api/generate", body); rec.Code != http.StatusOK {
		t.Fatalf("first request status = %d, want 200", rec.Code)
	}
	if rec := doJSON(t, router, http.MethodPost, "/api/generate", body); rec.Code != http.StatusOK {
		t.Errorf("second sequential request status = %d, want 200", rec.Code)
	}
}

func TestEditImageMapsProviderErrorTo502(t *testing.T) {
	d := testDeps(&fakeFacade{imageErr: errors.New("provider down")})
	rec := doJSON(t, testRouter(d), http.MethodPost, "/api/image/edit",
		`{"image":"aW5wdXQ=","instruction":"brighten","mimeType":"image/png"}`)
	if rec.Code != http.StatusBadGateway {
		t.Errorf("status = %d, want 502", rec.Code)
	}
}

func TestEditImageEmptyResultIsOK(t *testing.T) {
	d := testDeps(&fakeFacade{imageResult: ""})
	rec := doJSON(t, testRouter(d), http.MethodPost, "/api/image/edit",
		`{"image":"aW5wdXQ=","instruction":"brighten","mimeType":"image/png"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var resp imageEditResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if resp.Image != "" {
		t.Errorf("image = %q, want empty", resp.Image)
	}
}
