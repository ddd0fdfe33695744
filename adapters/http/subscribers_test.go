package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"
)

func postForm(env *testEnv, name, email string) *httptest.ResponseRecorder {
	form := url.Values{"name": {name}, "email": {email}}
	req := httptest.NewRequest(http.MethodPost, "/subscribe", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return env.do(req)
}

func postJSON(env *testEnv, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/subscribe", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return env.do(req)
}

func TestIndex(t *testing.T) {
	env := setupTestEnv(t)

	rec := env.do(httptest.NewRequest(http.MethodGet, "/", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/html") {
		t.Errorf("Content-Type = %q, want text/html", ct)
	}
	if !strings.Contains(rec.Body.String(), `action="/subscribe"`) {
		t.Error("index page has no subscription form")
	}
}

func TestSubscribe_Form(t *testing.T) {
	env := setupTestEnv(t)

	rec := postForm(env, "Ada Lovelace", "ada@example.com")

	if rec.Code != http.StatusNoContent {
		t.Fatalf("status = %d, want 204, body: %s", rec.Code, rec.Body.String())
	}
	subs, _ := env.subs.List(context.Background(), 10, 0)
	if len(subs) != 1 {
		t.Fatalf("stored %d subscribers, want 1", len(subs))
	}
	if subs[0].Name != "Ada Lovelace" || subs[0].Email != "ada@example.com" {
		t.Errorf("stored %+v", subs[0])
	}
	if !subs[0].CreatedAt.Equal(baseTime) {
		t.Errorf("CreatedAt = %v, want %v", subs[0].CreatedAt, baseTime)
	}
}

func TestSubscribe_Multipart(t *testing.T) {
	env := setupTestEnv(t)

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	mw.WriteField("name", "Grace")
	mw.WriteField("email", "grace@example.com")
	mw.Close()

	req := httptest.NewRequest(http.MethodPost, "/subscribe", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())

	if rec := env.do(req); rec.Code != http.StatusNoContent {
		t.Fatalf("status = %d, want 204, body: %s", rec.Code, rec.Body.String())
	}
}

func TestSubscribe_JSON(t *testing.T) {
	env := setupTestEnv(t)

	rec := postJSON(env, `{"name":"  Alan ","email":"alan@EXAMPLE.org"}`)

	if rec.Code != http.StatusNoContent {
		t.Fatalf("status = %d, want 204, body: %s", rec.Code, rec.Body.String())
	}
	subs, _ := env.subs.List(context.Background(), 10, 0)
	if len(subs) != 1 || subs[0].Name != "Alan" || subs[0].Email != "alan@example.org" {
		t.Errorf("stored %+v, want normalized Alan <alan@example.org>", subs)
	}
}

func TestSubscribe_Errors(t *testing.T) {
	tests := []struct {
		name        string
		contentType string
		body        string
		wantStatus  int
		wantCode    string
	}{
		{"missing name", "application/json", `{"email":"a@b.c"}`, http.StatusUnprocessableEntity, "validation_error"},
		{"blank name", "application/x-www-form-urlencoded", "name=+++&email=a%40b.c", http.StatusUnprocessableEntity, "validation_error"},
		{"missing email", "application/json", `{"name":"x"}`, http.StatusUnprocessableEntity, "validation_error"},
		{"email without at", "application/json", `{"name":"x","email":"nobody"}`, http.StatusUnprocessableEntity, "validation_error"},
		{"email two ats", "application/json", `{"name":"x","email":"a@b@c"}`, http.StatusUnprocessableEntity, "validation_error"},
		{"broken json", "application/json", `{"name":`, http.StatusBadRequest, "bad_request"},
		{"unsupported type", "text/plain", "name=x", http.StatusUnsupportedMediaType, "unsupported_media_type"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := setupTestEnv(t)

			req := httptest.NewRequest(http.MethodPost, "/subscribe", strings.NewReader(tt.body))
			req.Header.Set("Content-Type", tt.contentType)
			rec := env.do(req)

			if rec.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d, body: %s", rec.Code, tt.wantStatus, rec.Body.String())
			}
			if got := errorCode(t, rec); got != tt.wantCode {
				t.Errorf("code = %q, want %q", got, tt.wantCode)
			}
			if n, _ := env.subs.Count(context.Background()); n != 0 {
				t.Errorf("stored %d subscribers, want 0", n)
			}
		})
	}
}

func TestSubscribe_ValidationPointer(t *testing.T) {
	env := setupTestEnv(t)

	rec := postJSON(env, `{"name":"x","email":"bad"}`)

	doc := decodeDocument(t, rec.Body)
	if len(doc.Errors) != 1 || doc.Errors[0].Source == nil {
		t.Fatalf("errors = %+v", doc.Errors)
	}
	if got := doc.Errors[0].Source.Pointer; got != "/data/attributes/email" {
		t.Errorf("pointer = %q, want /data/attributes/email", got)
	}
}

func TestSubscribe_Duplicate(t *testing.T) {
	env := setupTestEnv(t)

	if rec := postForm(env, "Ada", "ada@example.com"); rec.Code != http.StatusNoContent {
		t.Fatalf("first subscribe status = %d", rec.Code)
	}
	rec := postJSON(env, `{"name":"Ada again","email":"ada@example.com"}`)

	if rec.Code != http.StatusConflict {
		t.Fatalf("status = %d, want 409", rec.Code)
	}
	if got := errorCode(t, rec); got != "conflict" {
		t.Errorf("code = %q, want conflict", got)
	}
}

func TestSubscribers_List(t *testing.T) {
	env := setupTestEnv(t)
	token := env.issueKey(t)

	for _, name := range []string{"one", "two", "three"} {
		if rec := postForm(env, name, name+"@example.com"); rec.Code != http.StatusNoContent {
			t.Fatalf("subscribe %s status = %d", name, rec.Code)
		}
		env.clock.Advance(time.Minute)
	}

	rec := env.get("/api/subscribers?page[size]=2", token)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var body struct {
		Data []struct {
			Type       string            `json:"type"`
			ID         string            `json:"id"`
			Attributes map[string]string `json:"attributes"`
		} `json:"data"`
		Meta  map[string]float64 `json:"meta"`
		Links map[string]string  `json:"links"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}

	if len(body.Data) != 2 {
		t.Fatalf("got %d resources, want 2", len(body.Data))
	}
	if body.Data[0].Type != "subscribers" {
		t.Errorf("type = %q, want subscribers", body.Data[0].Type)
	}
	if got := body.Data[0].Attributes["name"]; got != "three" {
		t.Errorf("first name = %q, want newest (three)", got)
	}
	if got := body.Data[0].Attributes["created_at"]; got != baseTime.Add(2*time.Minute).Format(time.RFC3339) {
		t.Errorf("created_at = %q", got)
	}
	if body.Meta["total"] != 3 || body.Meta["pages"] != 2 {
		t.Errorf("meta = %v, want total 3 pages 2", body.Meta)
	}
	if body.Links["next"] == "" || body.Links["prev"] != "" {
		t.Errorf("links = %v, want next without prev", body.Links)
	}
}

func TestSubscribers_ListRequiresKey(t *testing.T) {
	env := setupTestEnv(t)

	if rec := env.get("/api/subscribers", ""); rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
}

func TestSubscribers_EmptyList(t *testing.T) {
	env := setupTestEnv(t)
	token := env.issueKey(t)

	rec := env.get("/api/subscribers", token)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"data":[]`) {
		t.Errorf("body = %s, want empty data array", rec.Body.String())
	}
}
