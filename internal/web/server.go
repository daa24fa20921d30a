package web

import (
	"encoding/base64"
	"log/slog"
	"net/http"
	"strings"
)

const sessionCookieName = "pantry_session"

// Server handles HTTP requests for the pantry UI and API
type Server struct {
	service   *Service
	basicAuth BasicAuth
	mux       *http.ServeMux
}

// BasicAuth holds basic authentication credentials
type BasicAuth struct {
	Username string
	Password string
}

// NewServer creates a new Server with default mux
func NewServer(service *Service, basicAuth BasicAuth) *Server {
	return NewServerWithMux(service, basicAuth, http.NewServeMux())
}

// NewServerWithMux creates a new Server with a custom mux for testing
func NewServerWithMux(service *Service, basicAuth BasicAuth, mux *http.ServeMux) *Server {
	s := &Server{
		service:   service,
		basicAuth: basicAuth,
		mux:       mux,
	}
	s.registerRoutes()
	return s
}

// authenticate checks basic auth credentials
func (s *Server) authenticate(r *http.Request) bool {
	if s.basicAuth.Username == "" && s.basicAuth.Password == "" {
		return true // No auth required if not configured
	}

	auth := r.Header.Get("Authorization")
	if !strings.HasPrefix(auth, "Basic ") {
		return false
	}

	decoded, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(auth, "Basic "))
	if err != nil {
		return false
	}

	credentials := strings.SplitN(string(decoded), ":", 2)
	if len(credentials) != 2 {
		return false
	}

	return credentials[0] == s.basicAuth.Username && credentials[1] == s.basicAuth.Password
}

// corsMiddleware adds CORS headers to responses
func (s *Server) corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		setCORSHeaders(w)

		// Handle preflight OPTIONS requests
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// requireAuth middleware
func (s *Server) requireAuth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !s.authenticate(r) {
			w.Header().Set("WWW-Authenticate", `Basic realm="Smart Pantry"`)
			corsError(w, "Unauthorized", http.StatusUnauthorized)
			return
		}
		next(w, r)
	}
}

// sessionHandler is a handler that runs with its session locked
type sessionHandler func(w http.ResponseWriter, r *http.Request, sess *Session)

// withSession resolves the caller's session from its cookie, creating one
// (and setting the cookie) on first contact, and holds the session lock for
// the duration of the request
func (s *Server) withSession(next sessionHandler) http.HandlerFunc {
	return s.requireAuth(func(w http.ResponseWriter, r *http.Request) {
		var id string
		if cookie, err := r.Cookie(sessionCookieName); err == nil {
			id = cookie.Value
		}

		sess, created := s.service.Session(id)
		if created {
			http.SetCookie(w, &http.Cookie{
				Name:     sessionCookieName,
				Value:    sess.ID,
				Path:     "/",
				HttpOnly: true,
				SameSite: http.SameSiteLaxMode,
			})
		}

		sess.Lock()
		defer sess.Unlock()
		next(w, r, sess)
	})
}

// registerRoutes registers all routes on the server's mux
func (s *Server) registerRoutes() {
	s.mux.HandleFunc("GET /static/app.js", s.requireAuth(s.handleStaticJS))

	// Pantry items
	s.mux.HandleFunc("GET /api/items", s.withSession(s.handleListItems))
	s.mux.HandleFunc("POST /api/items", s.withSession(s.handleAddItem))
	s.mux.HandleFunc("PUT /api/items", s.withSession(s.handleReplaceItems))
	s.mux.HandleFunc("POST /api/items/remove", s.withSession(s.handleRemoveItems))
	s.mux.HandleFunc("POST /api/estimate", s.requireAuth(s.handleEstimate))

	// Expiry views
	s.mux.HandleFunc("GET /api/expiring", s.withSession(s.handleExpiring))
	s.mux.HandleFunc("GET /api/calendar", s.withSession(s.handleCalendar))

	// Receipt review
	s.mux.HandleFunc("POST /api/receipts/scan", s.withSession(s.handleScanReceipt))
	s.mux.HandleFunc("GET /api/receipts/staged/image", s.withSession(s.handleStagedImage))
	s.mux.HandleFunc("GET /api/receipts/staged", s.withSession(s.handleStagedBatch))
	s.mux.HandleFunc("DELETE /api/receipts/staged", s.withSession(s.handleDiscardReceipt))
	s.mux.HandleFunc("POST /api/receipts/confirm", s.withSession(s.handleConfirmReceipt))

	// Import/export and snapshots
	s.mux.HandleFunc("POST /api/import", s.withSession(s.handleImport))
	s.mux.HandleFunc("GET /api/export", s.withSession(s.handleExport))
	s.mux.HandleFunc("POST /api/snapshots/{name}/restore", s.withSession(s.handleRestoreSnapshot))
	s.mux.HandleFunc("DELETE /api/snapshots/{name}", s.requireAuth(s.handleDeleteSnapshot))
	s.mux.HandleFunc("GET /api/snapshots", s.requireAuth(s.handleListSnapshots))
	s.mux.HandleFunc("POST /api/snapshots", s.withSession(s.handleSaveSnapshot))

	// Recipe assistant
	s.mux.HandleFunc("GET /api/preferences", s.withSession(s.handleGetPreferences))
	s.mux.HandleFunc("PUT /api/preferences", s.withSession(s.handleSetPreferences))
	s.mux.HandleFunc("GET /api/chat", s.withSession(s.handleChatHistory))
	s.mux.HandleFunc("POST /api/chat", s.withSession(s.handleChat))
	s.mux.HandleFunc("POST /api/chat/reset", s.withSession(s.handleResetChat))
	s.mux.HandleFunc("POST /api/chat/consume", s.withSession(s.handleConsumeIngredients))
	s.mux.HandleFunc("GET /api/recipe", s.withSession(s.handleDownloadRecipe))

	// Static HTML interface (register last as it's the catch-all)
	s.mux.HandleFunc("GET /index.html", s.requireAuth(s.handleIndex))
	s.mux.HandleFunc("GET /", s.requireAuth(s.handleIndex))
}

// Handler returns the mux wrapped with CORS handling
func (s *Server) Handler() http.Handler {
	return s.corsMiddleware(s.mux)
}

// Start starts the HTTP server
func (s *Server) Start(addr string) error {
	slog.Info("Starting server", "address", addr)
	return http.ListenAndServe(addr, s.Handler())
}

// ServeHTTP implements http.Handler for testing
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}
