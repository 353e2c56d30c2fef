package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/lumina-tools/planner/internal/build"
	"github.com/lumina-tools/planner/internal/catalog"
	"github.com/lumina-tools/planner/internal/token"
)

func testServer(t *testing.T) *Server {
	t.Helper()
	cat := catalog.New(
		[]catalog.Character{
			{ID: 2, Name: "Gustave", Skills: []catalog.Skill{
				{ID: 10, Name: "Overcharge", Cost: 4},
			}},
		},
		[]catalog.Item{
			{ID: 7, Name: "Energising Start", Cost: 5},
		},
	)
	srv, err := New(Config{Port: 0, BaseURL: "https://planner.example.com", AllowAll: true}, cat)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return srv
}

func TestHealthCheck(t *testing.T) {
	srv := testServer(t)

	req := httptest.NewRequest("GET", "/healthz", nil)
	w := httptest.NewRecorder()
	srv.Router().ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var body map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if body["status"] != "ok" {
		t.Errorf("expected status 'ok', got %q", body["status"])
	}
}

func TestCORSHeaders(t *testing.T) {
	srv := testServer(t)

	req := httptest.NewRequest("OPTIONS", "/healthz", nil)
	req.Header.Set("Origin", "http://example.com")
	req.Header.Set("Access-Control-Request-Method", "GET")
	w := httptest.NewRecorder()
	srv.Router().ServeHTTP(w, req)

	if w.Header().Get("Access-Control-Allow-Origin") == "" {
		t.Error("expected CORS Allow-Origin header")
	}
}

func TestGetCatalog(t *testing.T) {
	srv := testServer(t)

	req := httptest.NewRequest("GET", "/api/catalog", nil)
	w := httptest.NewRecorder()
	srv.Router().ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var cat catalog.Catalog
	if err := json.Unmarshal(w.Body.Bytes(), &cat); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(cat.Characters) != 1 || cat.Characters[0].Name != "Gustave" {
		t.Errorf("Characters = %+v", cat.Characters)
	}
}

func TestGetBuild(t *testing.T) {
	srv := testServer(t)

	s := build.NewState()
	s.Title = "API Build"
	s.CharacterID = 2
	tok := token.Encode(s)

	req := httptest.NewRequest("GET", "/api/build/"+tok, nil)
	w := httptest.NewRecorder()
	srv.Router().ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var resp buildResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if resp.State.Title != "API Build" {
		t.Errorf("Title = %q", resp.State.Title)
	}
	if resp.Resolved.Character == nil || resp.Resolved.Character.Name != "Gustave" {
		t.Errorf("Resolved.Character = %+v", resp.Resolved.Character)
	}
	if resp.Recovered {
		t.Error("well-formed token flagged recovered")
	}
	if !strings.HasPrefix(resp.URL, "https://planner.example.com/b/") {
		t.Errorf("URL = %q", resp.URL)
	}
}

func TestGetBuildMalformedToken(t *testing.T) {
	srv := testServer(t)

	req := httptest.NewRequest("GET", "/api/build/%21%21garbage", nil)
	w := httptest.NewRecorder()
	srv.Router().ServeHTTP(w, req)

	// A corrupt link is not an error: the viewer gets a fresh build.
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var resp buildResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !resp.Recovered {
		t.Error("expected the recovered flag")
	}
	if !resp.State.IsEmpty() {
		t.Errorf("State = %+v, want empty", resp.State)
	}
}

func TestPostBuildAppliesIntent(t *testing.T) {
	srv := testServer(t)

	body, _ := json.Marshal(applyRequest{
		Token:  "",
		Intent: build.Intent{Op: build.OpToggleModifier, ItemID: "item-7"},
	})

	req := httptest.NewRequest("POST", "/api/build", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	srv.Router().ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body)
	}

	var resp buildResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !resp.State.HasModifier("item-7") {
		t.Errorf("State = %+v", resp.State)
	}
	if resp.Token == "" {
		t.Error("expected a non-empty token")
	}
	if len(resp.Resolved.Modifiers) != 1 {
		t.Errorf("Resolved.Modifiers = %+v", resp.Resolved.Modifiers)
	}
}

func TestPostBuildRejectsBadIntent(t *testing.T) {
	srv := testServer(t)

	body, _ := json.Marshal(applyRequest{
		Intent: build.Intent{Op: "frobnicate"},
	})

	req := httptest.NewRequest("POST", "/api/build", bytes.NewReader(body))
	w := httptest.NewRecorder()
	srv.Router().ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}

func TestBuildPageRendersHTML(t *testing.T) {
	srv := testServer(t)

	s := build.NewState()
	s.Title = "Page Build"
	s.Modifiers = []string{"item-7"}
	tok := token.Encode(s)

	req := httptest.NewRequest("GET", "/b/"+tok+"?summary=true", nil)
	w := httptest.NewRecorder()
	srv.Router().ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	out := w.Body.String()
	if !strings.Contains(out, "Page Build") {
		t.Errorf("page missing title: %s", out)
	}
	if !strings.Contains(out, "Energising Start") {
		t.Errorf("page missing item: %s", out)
	}
}

func TestIndexPageServesEmptyBuild(t *testing.T) {
	srv := testServer(t)

	req := httptest.NewRequest("GET", "/", nil)
	w := httptest.NewRecorder()
	srv.Router().ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/html") {
		t.Errorf("Content-Type = %q", ct)
	}
}

func TestApplyFormRedirectsToNewURL(t *testing.T) {
	srv := testServer(t)

	form := url.Values{
		"token": {""},
		"op":    {string(build.OpSetTitle)},
		"text":  {"Form Build"},
	}
	req := httptest.NewRequest("POST", "/apply", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	srv.Router().ServeHTTP(w, req)

	if w.Code != http.StatusSeeOther {
		t.Fatalf("expected 303, got %d", w.Code)
	}

	loc := w.Header().Get("Location")
	if loc == "" {
		t.Fatal("missing Location header")
	}
	u, err := url.Parse(loc)
	if err != nil {
		t.Fatalf("parsing Location: %v", err)
	}
	if got := u.Query().Get("b"); got != "form-build" {
		t.Errorf("title mirror = %q", got)
	}
}

func TestApplyFormResetStripsToken(t *testing.T) {
	srv := testServer(t)

	s := build.NewState()
	s.Title = "Doomed"
	tok := token.Encode(s)

	form := url.Values{
		"token": {tok},
		"op":    {string(build.OpReset)},
	}
	req := httptest.NewRequest("POST", "/apply", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	srv.Router().ServeHTTP(w, req)

	if w.Code != http.StatusSeeOther {
		t.Fatalf("expected 303, got %d", w.Code)
	}
	if loc := w.Header().Get("Location"); strings.Contains(loc, "/b/") {
		t.Errorf("reset should strip the token, got %s", loc)
	}
}
