package adapthttp

import (
	"context"
	"net/http"

	"vbay/internal/app"

	"github.com/gorilla/mux"
)

// Server is the driving HTTP adapter that routes requests to application
// services.
type Server struct {
	listings *app.ListingService
	cart     *app.CartService
	auth     *app.AuthService
	webDir   string

	// waitRedirect, when set, is called before redirecting the browser to
	// the identity provider. The simulated provider uses it to mimic the
	// latency of a real redirect.
	waitRedirect func(context.Context) error

	disableAuth bool
}

// New creates a Server wired to the given application services.
func New(ls *app.ListingService, cs *app.CartService, as *app.AuthService, webDir string) *Server {
	return &Server{listings: ls, cart: cs, auth: as, webDir: webDir}
}

// WithRedirectWait installs a hook invoked before the login redirect.
func (s *Server) WithRedirectWait(fn func(context.Context) error) *Server {
	s.waitRedirect = fn
	return s
}

// WithoutAuth disables session checks. Test use only.
func (s *Server) WithoutAuth() *Server {
	s.disableAuth = true
	return s
}

// Handler returns the root http.Handler for the application.
func (s *Server) Handler() http.Handler {
	api := mux.NewRouter().PathPrefix("/api").Subrouter()

	api.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"ok": true})
	}).Methods(http.MethodGet)

	api.HandleFunc("/listings", s.handleListListings).Methods(http.MethodGet)
	api.Handle("/listings", s.requireAuth(s.handleCreateListing)).Methods(http.MethodPost)
	api.HandleFunc("/listings/{id}", s.handleGetListing).Methods(http.MethodGet)
	api.Handle("/listings/{id}", s.requireAuth(s.handleUpdateListing)).Methods(http.MethodPut)

	api.Handle("/cart", s.requireAuth(s.handleGetCart)).Methods(http.MethodGet)
	api.Handle("/cart/contact-all", s.requireAuth(s.handleContactAll)).Methods(http.MethodGet)
	api.Handle("/cart/contact/{id}", s.requireAuth(s.handleContactSeller)).Methods(http.MethodGet)
	api.Handle("/cart/{id}", s.requireAuth(s.handleAddToCart)).Methods(http.MethodPost)
	api.Handle("/cart/{id}", s.requireAuth(s.handleRemoveFromCart)).Methods(http.MethodDelete)

	api.HandleFunc("/auth/login", s.handleLogin).Methods(http.MethodGet)
	api.HandleFunc("/auth/callback", s.handleCallback).Methods(http.MethodGet)
	api.HandleFunc("/auth/debug", s.handleDebugLogin).Methods(http.MethodPost)
	api.HandleFunc("/auth/logout", s.handleLogout).Methods(http.MethodPost)
	api.HandleFunc("/auth/me", s.handleMe).Methods(http.MethodGet)

	root := http.NewServeMux()
	root.Handle("/api/", api)
	root.Handle("/", spaFromDisk(s.webDir))

	return s.loggingMiddleware(withNoCache(root))
}
