package server

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/lumina-tools/planner/internal/build"
	"github.com/lumina-tools/planner/internal/catalog"
	"github.com/lumina-tools/planner/internal/render"
	"github.com/lumina-tools/planner/internal/shareurl"
	"github.com/lumina-tools/planner/internal/token"
)

// buildResponse is the JSON shape shared by the build endpoints.
type buildResponse struct {
	Token     string                `json:"token"`
	URL       string                `json:"url"`
	State     build.State           `json:"state"`
	Resolved  catalog.ResolvedBuild `json:"resolved"`
	Recovered bool                  `json:"recovered,omitempty"`
}

func (s *Server) buildResponseFor(st build.State, recovered bool) buildResponse {
	return buildResponse{
		Token:     token.Encode(st),
		URL:       shareurl.Build(s.base, st).String(),
		State:     st,
		Resolved:  s.cat.Resolve(st),
		Recovered: recovered,
	}
}

// handleCatalog serves the full catalog.
func (s *Server) handleCatalog(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.cat)
}

// handleGetBuild decodes a token into its state and resolved view. A
// malformed token is not an error to the client: it decodes to a fresh
// build with the recovered flag set.
func (s *Server) handleGetBuild(w http.ResponseWriter, r *http.Request) {
	dec := token.Decode(chi.URLParam(r, "token"))
	if dec.Recovered {
		log.Printf("server: recovered from malformed token: %v", dec.Err)
	}
	writeJSON(w, http.StatusOK, s.buildResponseFor(dec.State, dec.Recovered))
}

// applyRequest is the JSON body of POST /api/build.
type applyRequest struct {
	Token  string       `json:"token"`
	Intent build.Intent `json:"intent"`
}

// handlePostBuild applies one mutation intent to the state carried by the
// token and returns the new state, token and share URL. The server keeps
// nothing: the token out is the whole result.
func (s *Server) handlePostBuild(w http.ResponseWriter, r *http.Request) {
	var req applyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	dec := token.Decode(req.Token)
	if dec.Recovered {
		log.Printf("server: recovered from malformed token: %v", dec.Err)
	}

	next, err := build.Apply(dec.State, req.Intent)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, s.buildResponseFor(next, false))
}

// handlePage renders the build view for / and /b/{token}.
func (s *Server) handlePage(w http.ResponseWriter, r *http.Request) {
	dec, view := shareurl.Parse(r.URL)
	if dec.Recovered {
		log.Printf("server: recovered from malformed token in %s: %v", r.URL.Path, dec.Err)
	}

	summary := view.Summary
	if r.URL.Query().Get("summary") == "" {
		summary = s.cfg.DefaultSummary
	}

	commentHTML, err := s.renderer.Comment(dec.State.Comment)
	if err != nil {
		log.Printf("server: rendering comment: %v", err)
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	page := render.Page{
		Title:       dec.State.Title,
		Build:       s.cat.Resolve(dec.State),
		CommentHTML: commentHTML,
		Token:       token.Encode(dec.State),
		ShareURL:    shareurl.Build(s.base, dec.State).String(),
		Summary:     summary,
		Recovered:   dec.Recovered,
	}
	if err := s.renderer.Build(w, page); err != nil {
		log.Printf("server: rendering page: %v", err)
	}
}

// handleApplyForm is the no-JavaScript mutation path: an intent arrives as
// a form post, the new state is encoded, and the client is redirected to
// its new share URL. One discrete action, one URL update.
func (s *Server) handleApplyForm(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}

	dec := token.Decode(r.FormValue("token"))
	if dec.Recovered {
		log.Printf("server: recovered from malformed token in form: %v", dec.Err)
	}

	in := build.Intent{
		Op:     build.Op(r.FormValue("op")),
		ItemID: r.FormValue("item_id"),
		Level:  r.FormValue("level"),
		Text:   r.FormValue("text"),
	}
	if v := r.FormValue("character_id"); v != "" {
		in.CharacterID, _ = strconv.Atoi(v)
	}
	if v := r.FormValue("skill_id"); v != "" {
		in.SkillID, _ = strconv.Atoi(v)
	}

	next, err := build.Apply(dec.State, in)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	http.Redirect(w, r, shareurl.Build(s.base, next).String(), http.StatusSeeOther)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("server: writing response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
