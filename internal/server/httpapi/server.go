// Package httpapi exposes the REST surface of the note service: signup and
// login, the bearer-token middleware, and the owner-scoped note endpoints.
package httpapi

import (
	"context"
	"net/http"
	"time"

	"github.com/akosarev/notekeeper/internal/logging"
	"github.com/akosarev/notekeeper/internal/server/services"
	"github.com/gorilla/mux"
)

type Server struct {
	address   string
	users     *services.UserService
	notes     *services.NoteService
	logger    logging.Logger
	jwtSecret []byte
}

func NewServer(addr string, l logging.Logger, us *services.UserService, ns *services.NoteService, secretKey string) *Server {
	return &Server{
		address:   addr,
		logger:    l.With("module", "httpapi"),
		users:     us,
		notes:     ns,
		jwtSecret: []byte(secretKey),
	}
}

// Router builds the mux router with all routes registered. The searchNotes
// route must precede the {id} route, mux matches in registration order.
func (s *Server) Router() *mux.Router {
	r := mux.NewRouter()

	authRouter := r.PathPrefix("/api/auth").Subrouter()
	authRouter.HandleFunc("/signup", s.handleSignup).Methods(http.MethodPost)
	authRouter.HandleFunc("/login", s.handleLogin).Methods(http.MethodPost)
	authRouter.HandleFunc("/refresh", s.handleRefresh).Methods(http.MethodPost)
	authRouter.Handle("/profile", s.requireAuth(http.HandlerFunc(s.handleProfile))).Methods(http.MethodGet)
	authRouter.Handle("/delete", s.requireAuth(http.HandlerFunc(s.handleDeleteAccount))).Methods(http.MethodGet)

	notesRouter := r.PathPrefix("/api/notes").Subrouter()
	notesRouter.Use(s.requireAuth)
	notesRouter.HandleFunc("", s.handleListNotes).Methods(http.MethodGet)
	notesRouter.HandleFunc("/searchNotes", s.handleSearchNotes).Methods(http.MethodGet)
	notesRouter.HandleFunc("", s.handleCreateNote).Methods(http.MethodPost)
	notesRouter.HandleFunc("/{id}", s.handleGetNote).Methods(http.MethodGet)
	notesRouter.HandleFunc("/{id}", s.handleUpdateNote).Methods(http.MethodPut)
	notesRouter.HandleFunc("/{id}", s.handleDeleteNote).Methods(http.MethodDelete)
	notesRouter.HandleFunc("/{id}/share", s.handleShareNote).Methods(http.MethodPost)

	return r
}

// Run starts the HTTP server and shuts it down gracefully when ctx is canceled.
func (s *Server) Run(ctx context.Context) error {

	srv := &http.Server{
		Addr:         s.address,
		Handler:      s.Router(),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", s.address)

	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}

	return nil
}
