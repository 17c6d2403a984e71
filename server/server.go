// Package server exposes the catalog over HTTP: artist administration and
// the display reports. It reads and triggers the store only; it never touches
// the sync engine's in-memory state.
package server

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/amonks/streams/db"
	"github.com/amonks/streams/display"
	"github.com/amonks/streams/update"
	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

// New creates a Server over the store. metadata is used to fetch detail when
// an artist is added.
func New(store *db.DB, metadata update.MetadataSource, log *zap.Logger) *Server {
	return &Server{
		db:       store,
		metadata: metadata,
		log:      log,
	}
}

// Server handles the HTTP surface.
type Server struct {
	db       *db.DB
	metadata update.MetadataSource
	log      *zap.Logger
}

// Run serves until the context is canceled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:         addr,
		Handler:      s.Router(),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	errs := make(chan error)
	go func() { errs <- srv.ListenAndServe() }()

	s.log.Info("listening", zap.String("addr", addr))
	select {
	case err := <-errs:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		<-errs
		return nil
	}
}

// Router builds the route table.
func (s *Server) Router() http.Handler {
	r := mux.NewRouter()
	r.Use(s.requestLogger)

	r.HandleFunc("/artists", s.handleListArtists).Methods(http.MethodGet)
	r.HandleFunc("/artists/{id}", s.handleCreateArtist).Methods(http.MethodPost)
	r.HandleFunc("/artists/{id}", s.handleDeleteArtist).Methods(http.MethodDelete)
	r.HandleFunc("/artists/{id}/display", s.handleArtistDisplay).Methods(http.MethodGet)
	r.HandleFunc("/albums/{id}/display", s.handleAlbumDisplay).Methods(http.MethodGet)
	return r
}

func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		requestID := uuid.NewString()
		next.ServeHTTP(w, r)
		s.log.Info("request",
			zap.String("id", requestID),
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Duration("duration", time.Since(start)))
	})
}

func (s *Server) handleListArtists(w http.ResponseWriter, r *http.Request) {
	artists, err := s.db.Artists()
	if err != nil {
		s.error(w, http.StatusInternalServerError, err)
		return
	}
	s.json(w, http.StatusOK, artists)
}

func (s *Server) handleCreateArtist(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	if err := update.RefreshArtists(r.Context(), s.db, s.metadata, []string{id}); err != nil {
		s.error(w, http.StatusInternalServerError, err)
		return
	}

	artist, err := s.db.GetArtist(id)
	if err != nil {
		s.error(w, http.StatusInternalServerError, err)
		return
	}
	if artist == nil {
		s.message(w, http.StatusNotFound, "artist not created")
		return
	}
	s.json(w, http.StatusCreated, artist)
}

func (s *Server) handleDeleteArtist(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	deleted, err := s.db.DeleteArtist(id)
	if err != nil {
		s.error(w, http.StatusInternalServerError, err)
		return
	}
	if !deleted {
		s.message(w, http.StatusNotFound, "artist not deleted")
		return
	}
	s.message(w, http.StatusOK, "artist "+id+" deleted")
}

func (s *Server) handleArtistDisplay(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	view, err := display.Artist(s.db, id)
	if err != nil {
		s.error(w, http.StatusInternalServerError, err)
		return
	}
	if view == nil {
		s.message(w, http.StatusNotFound, "unknown artist "+id)
		return
	}
	s.json(w, http.StatusOK, view)
}

func (s *Server) handleAlbumDisplay(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	view, err := display.Album(s.db, id)
	if err != nil {
		s.error(w, http.StatusInternalServerError, err)
		return
	}
	if view == nil {
		s.message(w, http.StatusNotFound, "unknown album "+id)
		return
	}
	s.json(w, http.StatusOK, view)
}

func (s *Server) json(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		s.log.Error("error encoding response", zap.Error(err))
	}
}

func (s *Server) message(w http.ResponseWriter, status int, msg string) {
	s.json(w, status, map[string]string{"message": msg})
}

func (s *Server) error(w http.ResponseWriter, status int, err error) {
	s.log.Error("request failed", zap.Error(err))
	s.json(w, status, map[string]string{"message": err.Error()})
}
