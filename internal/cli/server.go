package cli

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/pathlight/pathlight/pkg/anchor"
	"github.com/pathlight/pathlight/pkg/errors"
	"github.com/pathlight/pathlight/pkg/history"
	"github.com/pathlight/pathlight/pkg/intercept"
	"github.com/pathlight/pathlight/pkg/observability"
	"github.com/pathlight/pathlight/pkg/route"
	"github.com/pathlight/pathlight/pkg/router"
)

// =============================================================================
// Server - Development Navigation Server
// =============================================================================

// Server exposes a single navigation session over HTTP. Page requests render
// the route tree as a server-side page; the /nav endpoints drive the session
// the way a browser click handler would.
type Server struct {
	mux       chi.Router
	nav       *router.Router
	tree      *route.Tree
	store     history.Store
	sessionID string
	appName   string
	log       *log.Logger
}

// NewServer wires a router and history store into an HTTP handler.
func NewServer(nav *router.Router, tree *route.Tree, store history.Store, sessionID, appName string, logger *log.Logger) *Server {
	s := &Server{
		nav:       nav,
		tree:      tree,
		store:     store,
		sessionID: sessionID,
		appName:   appName,
		log:       logger,
	}
	s.setupRoutes()
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

func (s *Server) setupRoutes() {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(requestLogger(s.log))

	r.Get("/healthz", s.handleHealth)

	r.Route("/nav", func(r chi.Router) {
		r.Get("/location", s.handleLocation)
		r.Post("/click", s.handleClick)
		r.Post("/navigate", s.handleNavigate)
		r.Post("/back", s.handleBack)
		r.Post("/forward", s.handleForward)
		r.Get("/history", s.handleHistory)
	})

	// Everything else is a page request.
	r.NotFound(s.handlePage)

	s.mux = r
}

// =============================================================================
// Wire Types
// =============================================================================

// clickRequest is the wire form of an anchor click.
type clickRequest struct {
	DefaultPrevented bool `json:"default_prevented"`
	Modifiers        struct {
		Meta  bool `json:"meta"`
		Alt   bool `json:"alt"`
		Ctrl  bool `json:"ctrl"`
		Shift bool `json:"shift"`
	} `json:"modifiers"`
	Anchor struct {
		Href     string `json:"href"`
		Target   string `json:"target"`
		Download bool   `json:"download"`
		Rel      string `json:"rel"`
	} `json:"anchor"`
}

func (cr clickRequest) click() intercept.Click {
	return intercept.Click{
		DefaultPrevented: cr.DefaultPrevented,
		Mod: intercept.Modifiers{
			Meta:  cr.Modifiers.Meta,
			Alt:   cr.Modifiers.Alt,
			Ctrl:  cr.Modifiers.Ctrl,
			Shift: cr.Modifiers.Shift,
		},
		Anchor: intercept.Anchor{
			Href:     cr.Anchor.Href,
			Target:   cr.Anchor.Target,
			Download: cr.Anchor.Download,
			Rel:      cr.Anchor.Rel,
		},
	}
}

// locationResponse is the wire form of the current location.
type locationResponse struct {
	Path       string            `json:"path"`
	RouteID    string            `json:"route_id"`
	Params     map[string]string `json:"params,omitempty"`
	CanGoBack  bool              `json:"can_go_back"`
	CanForward bool              `json:"can_go_forward"`
}

func (s *Server) location() locationResponse {
	loc := s.nav.Location()
	return locationResponse{
		Path:       loc.Path,
		RouteID:    loc.RouteID,
		Params:     loc.Params,
		CanGoBack:  s.nav.CanGoBack(),
		CanForward: s.nav.CanGoForward(),
	}
}

// clickResponse reports the click decision and resulting location.
type clickResponse struct {
	Intercepted bool             `json:"intercepted"`
	Reason      string           `json:"reason"`
	Location    locationResponse `json:"location"`
}

// =============================================================================
// Handlers
// =============================================================================

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`))
}

func (s *Server) handleLocation(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.location())
}

func (s *Server) handleClick(w http.ResponseWriter, r *http.Request) {
	var req clickRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		jsonError(w, "decode click: "+err.Error(), http.StatusBadRequest)
		return
	}

	decision, handled := s.nav.Click(r.Context(), req.click())
	if !handled {
		jsonError(w, "click delegation is not attached", http.StatusConflict)
		return
	}

	loggerFromContext(r.Context()).Debug("click", "href", req.Anchor.Href, "intercepted", decision.Intercept, "reason", decision.Reason)
	writeJSON(w, http.StatusOK, clickResponse{
		Intercepted: decision.Intercept,
		Reason:      string(decision.Reason),
		Location:    s.location(),
	})
}

func (s *Server) handleNavigate(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Path string `json:"path"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		jsonError(w, "decode navigate: "+err.Error(), http.StatusBadRequest)
		return
	}

	if err := s.nav.Navigate(r.Context(), req.Path); err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, errors.ErrCodeRouteNotFound) {
			status = http.StatusNotFound
		}
		jsonError(w, errors.UserMessage(err), status)
		return
	}
	writeJSON(w, http.StatusOK, s.location())
}

func (s *Server) handleBack(w http.ResponseWriter, r *http.Request) {
	if !s.nav.Back(r.Context()) {
		jsonError(w, "nothing to go back to", http.StatusConflict)
		return
	}
	writeJSON(w, http.StatusOK, s.location())
}

func (s *Server) handleForward(w http.ResponseWriter, r *http.Request) {
	if !s.nav.Forward(r.Context()) {
		jsonError(w, "nothing to go forward to", http.StatusConflict)
		return
	}
	writeJSON(w, http.StatusOK, s.location())
}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	n := 20
	if raw := r.URL.Query().Get("n"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			jsonError(w, "n must be a positive integer", http.StatusBadRequest)
			return
		}
		n = parsed
	}

	visits, err := s.store.Recent(r.Context(), s.sessionID, n)
	observability.History().OnRead(r.Context(), "server", s.sessionID, len(visits), err)
	if err != nil {
		jsonError(w, "read history: "+errors.UserMessage(err), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"session_id": s.sessionID, "visits": visits})
}

// handlePage renders a navigable page for any path the tree matches.
func (s *Server) handlePage(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		jsonError(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	if err := s.nav.Navigate(r.Context(), r.URL.Path); err != nil {
		if errors.Is(err, errors.ErrCodeRouteNotFound) {
			http.NotFound(w, r)
			return
		}
		jsonError(w, errors.UserMessage(err), http.StatusInternalServerError)
		return
	}

	s.log.Debug("page", "path", r.URL.Path)

	page, err := s.renderPage()
	if err != nil {
		jsonError(w, errors.UserMessage(err), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write([]byte(page))
}

// renderPage builds the HTML for the current location. Nav links are real
// anchor renders, so the active link carries aria-current="page".
func (s *Server) renderPage() (string, error) {
	rc := s.nav.Context()
	loc := s.nav.Location()

	var b strings.Builder
	b.WriteString("<!DOCTYPE html>\n<html>\n<head><title>")
	b.WriteString(s.appName)
	b.WriteString("</title></head>\n<body>\n<h1>")
	b.WriteString(s.appName)
	b.WriteString("</h1>\n<nav>\n<ul>\n")

	var renderErr error
	s.tree.Walk(func(rt *route.Route) {
		if renderErr != nil {
			return
		}
		a := anchor.A{Href: samplePath(rt), Text: linkText(rt)}
		html, err := a.RenderHTML(rc)
		if err != nil {
			renderErr = err
			return
		}
		b.WriteString("<li>")
		b.WriteString(html)
		b.WriteString("</li>\n")
	})
	if renderErr != nil {
		return "", renderErr
	}

	b.WriteString("</ul>\n</nav>\n<main>\n<p>")
	b.WriteString("route " + loc.RouteID + " at " + loc.Path)
	b.WriteString("</p>\n</main>\n</body>\n</html>\n")
	return b.String(), nil
}

// =============================================================================
// Helpers
// =============================================================================

// samplePath turns a route pattern into a concrete visitable path by using
// each param or splat name as its own value, e.g. "/post/:id" becomes
// "/post/id".
func samplePath(r *route.Route) string {
	segs := strings.Split(strings.TrimPrefix(r.Pattern(), "/"), "/")
	for i, seg := range segs {
		if strings.HasPrefix(seg, ":") || strings.HasPrefix(seg, "*") {
			segs[i] = seg[1:]
		}
	}
	return "/" + strings.Join(segs, "/")
}

// linkText picks a display label for a route.
func linkText(r *route.Route) string {
	if r.Name() != "" {
		return r.Name()
	}
	return r.Pattern()
}

// requestLogger logs one line per request at debug level.
func requestLogger(logger *log.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)
			logger.Debug("request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"duration", time.Since(start).Round(time.Millisecond),
			)
		})
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func jsonError(w http.ResponseWriter, msg string, status int) {
	writeJSON(w, status, map[string]string{"error": msg})
}
