package httpx

import (
	"encoding/json"
	"expvar"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/cors"
	"golang.org/x/text/language"

	"github.com/sagerenn/vortaro/internal/describe"
	"github.com/sagerenn/vortaro/internal/morph"
	"github.com/sagerenn/vortaro/internal/observability"
	"github.com/sagerenn/vortaro/internal/search"
	"github.com/sagerenn/vortaro/internal/service"
)

type Router struct {
	svc      *service.Service
	basePath string
}

type healthResponse struct {
	Status string        `json:"status"`
	Time   time.Time     `json:"time"`
	Stats  service.Stats `json:"stats"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// NewRouter serves the JSON API and the HTML entry pages under basePath
// (and at the root). allowedOrigins feeds the CORS policy; none means
// cross-origin requests are refused.
func NewRouter(svc *service.Service, log *observability.Logger, basePath string, allowedOrigins []string) http.Handler {
	r := &Router{svc: svc, basePath: normalizeBasePath(basePath)}
	mux := http.NewServeMux()
	r.handleRoute(mux, "/health", r.handleHealth)
	r.handleRoute(mux, "/sources", r.handleSources)
	r.handleRoute(mux, "/search", r.handleSearch)
	r.handleRoute(mux, "/entry", r.handleEntry)
	r.handleRoute(mux, "/entry.html", r.handleEntryHTML)
	r.handleRoute(mux, "/analyze", r.handleAnalyze)
	r.handle(mux, "/debug/vars", expvar.Handler())

	c := cors.New(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodHead},
		AllowedHeaders: []string{"Accept-Language", observability.RequestIDHeader},
		ExposedHeaders: []string{observability.RequestIDHeader},
	})
	h := c.Handler(mux)
	h = observability.RequestIDMiddleware(h)
	h = observability.RecoveryMiddleware(log)(h)
	h = observability.LoggingMiddleware(log)(h)
	return h
}

func (r *Router) handleRoute(mux *http.ServeMux, path string, handler http.HandlerFunc) {
	handler = readOnly(handler)
	mux.HandleFunc(path, handler)
	if r.basePath != "" {
		mux.HandleFunc(r.basePath+path, handler)
	}
}

func (r *Router) handle(mux *http.ServeMux, path string, handler http.Handler) {
	mux.Handle(path, handler)
	if r.basePath != "" {
		mux.Handle(r.basePath+path, handler)
	}
}

func readOnly(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		if req.Method != http.MethodGet && req.Method != http.MethodHead {
			w.Header().Set("Allow", "GET, HEAD")
			writeError(w, http.StatusMethodNotAllowed, "method not allowed")
			return
		}
		next(w, req)
	}
}

func (r *Router) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{Status: "ok", Time: time.Now().UTC(), Stats: r.svc.Stats()})
}

func (r *Router) handleSources(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, r.svc.Sources())
}

// handleSearch answers 200 for invalid patterns too; the body carries
// invalid_pattern instead.
func (r *Router) handleSearch(w http.ResponseWriter, req *http.Request) {
	q := req.URL.Query()
	scope, err := search.ParseScope(q.Get("scope"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	limit := observability.ParseLimit(q.Get("limit"), 0, 0)
	writeJSON(w, http.StatusOK, r.svc.Search(q.Get("q"), scope, limit))
}

func (r *Router) handleEntry(w http.ResponseWriter, req *http.Request) {
	eo := strings.TrimSpace(req.URL.Query().Get("eo"))
	if eo == "" {
		writeError(w, http.StatusBadRequest, "missing eo")
		return
	}
	d, ok := r.svc.Describe(eo, requestLanguage(req))
	if !ok {
		writeError(w, http.StatusNotFound, "no entry for "+eo)
		return
	}
	writeJSON(w, http.StatusOK, d)
}

func (r *Router) handleEntryHTML(w http.ResponseWriter, req *http.Request) {
	eo := strings.TrimSpace(req.URL.Query().Get("eo"))
	if eo == "" {
		http.Error(w, "missing eo", http.StatusBadRequest)
		return
	}
	status := http.StatusOK
	var page string
	if d, ok := r.svc.Describe(eo, requestLanguage(req)); ok {
		page = r.renderDescription(d)
	} else {
		status = http.StatusNotFound
		page = r.renderNotFound(eo)
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(page))
}

type analyzeResponse struct {
	morph.Analysis
	ClassName string `json:"class_name"`
	Breakdown string `json:"breakdown"`
}

func (r *Router) handleAnalyze(w http.ResponseWriter, req *http.Request) {
	word := strings.TrimSpace(req.URL.Query().Get("w"))
	if word == "" {
		writeError(w, http.StatusBadRequest, "missing w")
		return
	}
	a := r.svc.Analyze(word)
	resp := analyzeResponse{
		Analysis:  a,
		ClassName: describe.ClassName(a.Class, requestLanguage(req)),
		Breakdown: a.Word,
	}
	if a.Decomposed() {
		resp.Breakdown = strings.Join(a.Parts, describe.PartSeparator)
	}
	writeJSON(w, http.StatusOK, resp)
}

// requestLanguage prefers the lang parameter over Accept-Language.
func requestLanguage(req *http.Request) language.Tag {
	if lang := strings.TrimSpace(req.URL.Query().Get("lang")); lang != "" {
		return describe.MatchLanguage(lang)
	}
	return describe.MatchLanguage(req.Header.Get("Accept-Language"))
}

func (r *Router) entryURL(eo string) string {
	return r.basePath + "/entry.html?eo=" + url.QueryEscape(eo)
}

func normalizeBasePath(basePath string) string {
	basePath = strings.TrimSpace(basePath)
	if basePath == "" || basePath == "/" {
		return ""
	}
	if !strings.HasPrefix(basePath, "/") {
		basePath = "/" + basePath
	}
	return strings.TrimRight(basePath, "/")
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	_ = enc.Encode(payload)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}
