package server

import (
	"encoding/json"
	"net/http"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
	"github.com/rs/zerolog/log"
)

const contentTypeJSON = "application/json; charset=utf-8"

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (lr loginRequest) Validate() error {
	return validation.ValidateStruct(&lr,
		validation.Field(&lr.Email, validation.Required, is.Email),
		validation.Field(&lr.Password, validation.Required),
	)
}

type refreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}

func (rr refreshRequest) Validate() error {
	return validation.ValidateStruct(&rr,
		validation.Field(&rr.RefreshToken, validation.Required),
	)
}

// tokenResponse is the wire shape of every successful credential
// operation. RefreshToken is explicitly null when the operation does not
// hand back a refresh token.
type tokenResponse struct {
	AccessToken  string  `json:"accessToken"`
	RefreshToken *string `json:"refreshToken"`
	Type         string  `json:"type,omitempty"`
}

// LoginHandler opens the subject's single session and returns the
// access+refresh pair.
func (s *Server) LoginHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req loginRequest
		if !decodeAndValidate(w, r, &req) {
			return
		}

		pair, err := s.auth.Login(req.Email, req.Password)
		if err != nil {
			log.Info().Err(err).Str("email", req.Email).Msg("login refused")
			writeError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, tokenResponse{
			AccessToken:  pair.AccessToken,
			RefreshToken: &pair.RefreshToken,
			Type:         "Bearer",
		})
	}
}

// NewAccessTokenHandler exchanges a refresh token for a single new access
// token, consuming the refresh token.
func (s *Server) NewAccessTokenHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req refreshRequest
		if !decodeAndValidate(w, r, &req) {
			return
		}

		pair, err := s.auth.NewAccessToken(req.RefreshToken)
		if err != nil {
			log.Info().Err(err).Msg("access token exchange refused")
			writeError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, tokenResponse{
			AccessToken:  pair.AccessToken,
			RefreshToken: nil,
		})
	}
}

// RefreshHandler rotates the session's refresh token and returns the new
// pair.
func (s *Server) RefreshHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req refreshRequest
		if !decodeAndValidate(w, r, &req) {
			return
		}

		pair, err := s.auth.Refresh(req.RefreshToken)
		if err != nil {
			log.Info().Err(err).Msg("refresh refused")
			writeError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, tokenResponse{
			AccessToken:  pair.AccessToken,
			RefreshToken: &pair.RefreshToken,
		})
	}
}

// LogoutHandler closes the session. Success has no body.
func (s *Server) LogoutHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req refreshRequest
		if !decodeAndValidate(w, r, &req) {
			return
		}

		if err := s.auth.Logout(req.RefreshToken); err != nil {
			log.Info().Err(err).Msg("logout refused")
			writeError(w, err)
			return
		}

		w.WriteHeader(http.StatusOK)
	}
}

func decodeAndValidate(w http.ResponseWriter, r *http.Request, req interface {
	Validate() error
}) bool {
	if err := json.NewDecoder(r.Body).Decode(req); err != nil {
		writeJSONError(w, http.StatusBadRequest, "malformed request body")
		return false
	}
	if err := req.Validate(); err != nil {
		writeJSONError(w, http.StatusBadRequest, err.Error())
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", contentTypeJSON)
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Error().Err(err).Msg("failed to encode response body")
	}
}
