// Package shareurl builds and parses planner share URLs. The token rides in
// a /b/<token> path segment; the build title is mirrored into a
// human-readable ?b= query value, and ?summary= selects the view shown on
// load. Tokens in the URL fragment (the original planner's placement) are
// still accepted on parse.
package shareurl

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/lumina-tools/planner/internal/build"
	"github.com/lumina-tools/planner/internal/token"
)

// queryTitle is the human-readable mirror of the build title. It is
// write-only: on parse the token's own title field is authoritative and the
// query value is never read back into the state.
const queryTitle = "b"

// querySummary selects the summary view instead of the editor on load.
const querySummary = "summary"

// View carries the presentation flags parsed from the URL. They sit outside
// the token and never affect the build state itself.
type View struct {
	Summary bool
}

// Build returns the share URL for the state, rooted at base. An empty state
// produces the bare base URL with any token segment and planner query
// parameters stripped, so a fully reset build leaves a clean address.
func Build(base *url.URL, s build.State) *url.URL {
	u := *base
	u.Fragment = ""

	q := u.Query()
	q.Del(queryTitle)
	q.Del(querySummary)

	tok := token.Encode(s)
	root := stripTokenPath(u.Path)

	if tok == "" {
		u.Path = root
		u.RawQuery = q.Encode()
		return &u
	}

	u.Path = strings.TrimRight(root, "/") + "/b/" + tok
	if slug := Slug(s.Title); slug != "" {
		q.Set(queryTitle, slug)
	}
	u.RawQuery = q.Encode()
	return &u
}

// WithSummary returns a copy of u with the summary flag set or removed.
func WithSummary(u *url.URL, summary bool) *url.URL {
	out := *u
	q := out.Query()
	if summary {
		q.Set(querySummary, "true")
	} else {
		q.Del(querySummary)
	}
	out.RawQuery = q.Encode()
	return &out
}

// Parse extracts the token from the URL and decodes it. The /b/ path
// segment wins; a bare fragment token is the legacy fallback. Parse never
// fails: a malformed token comes back as a recovered empty build, exactly
// as token.Decode reports it.
func Parse(u *url.URL) (token.Decoded, View) {
	tok := tokenFromPath(u.Path)
	if tok == "" {
		tok = u.Fragment
	}

	view := View{}
	if v := u.Query().Get(querySummary); v != "" {
		// Anything unparseable just leaves the flag off.
		b, err := strconv.ParseBool(v)
		view.Summary = err == nil && b
	}

	return token.Decode(tok), view
}

// tokenFromPath returns the token from a trailing /b/<token> segment, or "".
func tokenFromPath(path string) string {
	segs := strings.Split(strings.Trim(path, "/"), "/")
	if len(segs) >= 2 && segs[len(segs)-2] == "b" {
		return segs[len(segs)-1]
	}
	return ""
}

// stripTokenPath removes a trailing /b/<token> segment, if present.
func stripTokenPath(path string) string {
	segs := strings.Split(strings.Trim(path, "/"), "/")
	if len(segs) >= 2 && segs[len(segs)-2] == "b" {
		segs = segs[:len(segs)-2]
	}
	if len(segs) == 0 || (len(segs) == 1 && segs[0] == "") {
		return "/"
	}
	return "/" + strings.Join(segs, "/")
}

// Slug turns a build title into a URL-friendly label: lowercased, with runs
// of anything outside [a-z0-9] collapsed to single hyphens.
func Slug(title string) string {
	var sb strings.Builder
	lastHyphen := true
	for _, r := range strings.ToLower(title) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			sb.WriteRune(r)
			lastHyphen = false
		default:
			if !lastHyphen {
				sb.WriteByte('-')
				lastHyphen = true
			}
		}
	}
	return strings.TrimRight(sb.String(), "-")
}
