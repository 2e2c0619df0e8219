package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/akosarev/notekeeper/internal/common"
	"github.com/gorilla/mux"
)

func (s *Server) handleListNotes(w http.ResponseWriter, r *http.Request) {
	identity, ok := identityFromContext(r.Context())
	if !ok {
		respondMessage(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	result, err := s.notes.List(r.Context(), identity.UserID)
	if err != nil {
		s.logger.Error(r.Context(), "listing notes failed", "error", err.Error())
		respondMessage(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	respondJSON(w, http.StatusOK, toNoteSummaries(result))
}

func (s *Server) handleSearchNotes(w http.ResponseWriter, r *http.Request) {
	identity, ok := identityFromContext(r.Context())
	if !ok {
		respondMessage(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	text := r.URL.Query().Get("text")

	result, err := s.notes.Search(r.Context(), identity.UserID, text)
	if err != nil {
		s.logger.Error(r.Context(), "searching notes failed", "error", err.Error())
		respondMessage(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	respondJSON(w, http.StatusOK, toNoteSummaries(result))
}

// handleGetNote answers 200 with a "Note not found" message for both a
// missing note and someone else's note, existence must not leak.
func (s *Server) handleGetNote(w http.ResponseWriter, r *http.Request) {
	identity, ok := identityFromContext(r.Context())
	if !ok {
		respondMessage(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	note, err := s.notes.Get(r.Context(), mux.Vars(r)["id"], identity.UserID)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			respondMessage(w, http.StatusOK, "Note not found")
			return
		}
		s.logger.Error(r.Context(), "getting note failed", "error", err.Error())
		respondMessage(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	respondJSON(w, http.StatusOK, toNoteSummary(note))
}

func (s *Server) handleCreateNote(w http.ResponseWriter, r *http.Request) {
	identity, ok := identityFromContext(r.Context())
	if !ok {
		respondMessage(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req createNoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	note, err := s.notes.Create(r.Context(), identity.UserID, req.Title, req.Content)
	if err != nil {
		switch {
		case errors.Is(err, common.ErrValidation):
			respondMessage(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, common.ErrAlreadyExists):
			respondMessage(w, http.StatusConflict, "Note with the same title already exists")
		default:
			s.logger.Error(r.Context(), "creating note failed", "error", err.Error())
			respondMessage(w, http.StatusInternalServerError, "Internal server error")
		}
		return
	}

	respondJSON(w, http.StatusCreated, toNoteSummary(note))
}

func (s *Server) handleUpdateNote(w http.ResponseWriter, r *http.Request) {
	identity, ok := identityFromContext(r.Context())
	if !ok {
		respondMessage(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req updateNoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	note, err := s.notes.Update(r.Context(), mux.Vars(r)["id"], identity.UserID, req.Title, req.Content)
	if err != nil {
		switch {
		case errors.Is(err, common.ErrNotFound):
			respondMessage(w, http.StatusNotFound, "Note not found")
		case errors.Is(err, common.ErrValidation):
			respondMessage(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, common.ErrAlreadyExists):
			respondMessage(w, http.StatusConflict, "Note with the same title already exists")
		default:
			s.logger.Error(r.Context(), "updating note failed", "error", err.Error())
			respondMessage(w, http.StatusInternalServerError, "Internal server error")
		}
		return
	}

	respondJSON(w, http.StatusOK, toNoteSummary(note))
}

func (s *Server) handleDeleteNote(w http.ResponseWriter, r *http.Request) {
	identity, ok := identityFromContext(r.Context())
	if !ok {
		respondMessage(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	deleted, err := s.notes.Delete(r.Context(), mux.Vars(r)["id"], identity.UserID)
	if err != nil {
		s.logger.Error(r.Context(), "deleting note failed", "error", err.Error())
		respondMessage(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	if !deleted {
		respondMessage(w, http.StatusOK, "Note not found")
		return
	}
	respondMessage(w, http.StatusOK, "Note deleted successfully")
}

func (s *Server) handleShareNote(w http.ResponseWriter, r *http.Request) {
	identity, ok := identityFromContext(r.Context())
	if !ok {
		respondMessage(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req shareNoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	_, err := s.notes.Share(r.Context(), mux.Vars(r)["id"], identity.UserID, req.UserID)
	if err != nil {
		switch {
		case errors.Is(err, common.ErrNotFound):
			respondMessage(w, http.StatusNotFound, "Note not found")
		case errors.Is(err, common.ErrAlreadyExists):
			respondMessage(w, http.StatusConflict, "Note with the same title already exists")
		default:
			s.logger.Error(r.Context(), "sharing note failed", "error", err.Error())
			respondMessage(w, http.StatusInternalServerError, "Internal server error")
		}
		return
	}

	s.logger.Info(r.Context(), "note shared", "note_id", mux.Vars(r)["id"], "from", identity.UserID, "to", req.UserID)
	respondMessage(w, http.StatusOK, "Note shared successfully")
}
