package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/akosarev/notekeeper/internal/common"
)

func (s *Server) handleSignup(w http.ResponseWriter, r *http.Request) {
	var req signupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	_, err := s.users.Register(r.Context(), req.Username, req.Password, req.Email, req.Name, req.PhoneNumber)
	if err != nil {
		switch {
		case errors.Is(err, common.ErrAlreadyExists):
			respondMessage(w, http.StatusBadRequest, "Username is already taken")
		case errors.Is(err, common.ErrValidation):
			respondMessage(w, http.StatusBadRequest, err.Error())
		default:
			s.logger.Error(r.Context(), "signup failed", "error", err.Error())
			respondMessage(w, http.StatusInternalServerError, "Internal server error")
		}
		return
	}

	s.logger.Info(r.Context(), "user registered", "username", req.Username)
	respondMessage(w, http.StatusCreated, "User created successfully")
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	pair, err := s.users.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, common.ErrUnauthorized) {
			respondMessage(w, http.StatusUnauthorized, "Invalid credentials")
			return
		}
		s.logger.Error(r.Context(), "login failed", "error", err.Error())
		respondMessage(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	s.logger.Info(r.Context(), "user logged in", "username", req.Username)
	respondJSON(w, http.StatusCreated, tokenResponse{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
	})
}

func (s *Server) handleRefresh(w http.ResponseWriter, r *http.Request) {
	var req refreshRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.RefreshToken == "" {
		respondMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	pair, err := s.users.Refresh(r.Context(), req.RefreshToken)
	if err != nil {
		if errors.Is(err, common.ErrUnauthorized) || errors.Is(err, common.ErrRefreshTokenExpired) {
			respondMessage(w, http.StatusUnauthorized, "Invalid credentials")
			return
		}
		s.logger.Error(r.Context(), "token refresh failed", "error", err.Error())
		respondMessage(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	respondJSON(w, http.StatusCreated, tokenResponse{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
	})
}

func (s *Server) handleProfile(w http.ResponseWriter, r *http.Request) {
	identity, ok := identityFromContext(r.Context())
	if !ok {
		respondMessage(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	respondJSON(w, http.StatusOK, profileResponse{ID: identity.UserID, Username: identity.Username})
}

func (s *Server) handleDeleteAccount(w http.ResponseWriter, r *http.Request) {
	identity, ok := identityFromContext(r.Context())
	if !ok {
		respondMessage(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	if err := s.users.Delete(r.Context(), identity.UserID); err != nil {
		if errors.Is(err, common.ErrNotFound) {
			// token outlived the account
			respondMessage(w, http.StatusUnauthorized, "Unauthorized")
			return
		}
		s.logger.Error(r.Context(), "account deletion failed", "error", err.Error())
		respondMessage(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	s.logger.Info(r.Context(), "account deleted", "user_id", identity.UserID)
	respondMessage(w, http.StatusOK, "User deleted successfully")
}
