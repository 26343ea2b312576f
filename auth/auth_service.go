package auth

import (
	"github.com/jrsteele09/taskhub-auth/auth/sessions"
	"github.com/jrsteele09/taskhub-auth/token"
	"github.com/jrsteele09/taskhub-auth/users"
	"github.com/pkg/errors"
)

// TokenPair is the result of a successful credential operation.
// RefreshToken is empty when the operation did not rotate one.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

// Repos holds all repository dependencies for the Service
type Repos struct {
	Users users.PrincipalLookup // Lookup into the external user store
}

// Service coordinates the token codec, the session store and the principal
// lookup to implement the login/refresh/logout state machine. Per subject:
//
//	LoggedOut --Login--> LoggedIn(R0) --Refresh--> LoggedIn(R1) --Logout--> LoggedOut
//
// NewAccessToken is a side branch that consumes the current slot without
// producing a replacement, making the refresh token single-use for that
// operation.
type Service struct {
	repos Repos
	store *sessions.Store
	codec *token.Codec
}

// NewService initializes a Service with its required dependencies.
func NewService(repos Repos, store *sessions.Store, codec *token.Codec) (*Service, error) {
	if repos.Users == nil {
		return nil, errors.New("[NewService] Users repo is required")
	}
	if store == nil {
		return nil, errors.New("[NewService] session store is required")
	}
	if codec == nil {
		return nil, errors.New("[NewService] token codec is required")
	}

	return &Service{
		repos: repos,
		store: store,
		codec: codec,
	}, nil
}

// Login authenticates the principal and opens its single session. Of N
// concurrent logins for one subject exactly one wins; the rest fail with
// ErrAlreadyLoggedIn.
func (s *Service) Login(email, password string) (*TokenPair, error) {
	principal, err := s.repos.Users.FindByEmail(email)
	if err != nil {
		return nil, ErrPrincipalNotFound
	}

	if s.store.IsActive(email) {
		return nil, ErrAlreadyLoggedIn
	}

	if !users.CheckPasswordHash(password, principal.PasswordHash) {
		return nil, ErrWrongCredentials
	}

	accessToken, err := s.codec.IssueAccess(principal)
	if err != nil {
		return nil, errors.Wrap(err, "[Service.Login] IssueAccess")
	}
	refreshToken, err := s.codec.IssueRefresh(principal)
	if err != nil {
		return nil, errors.Wrap(err, "[Service.Login] IssueRefresh")
	}

	// Another login may have slipped in since the IsActive check.
	if !s.store.PutIfAbsent(email, refreshToken) {
		return nil, ErrAlreadyLoggedIn
	}

	return &TokenPair{AccessToken: accessToken, RefreshToken: refreshToken}, nil
}

// NewAccessToken exchanges a refresh token for a new access token without
// rotating. The refresh token is consumed: any later NewAccessToken or
// Refresh with it fails.
func (s *Service) NewAccessToken(refreshToken string) (*TokenPair, error) {
	claims, err := s.codec.DecodeRefresh(refreshToken)
	if err != nil {
		return nil, tokenInvalid(err)
	}
	subject := claims.Subject

	if !s.store.Matches(subject, refreshToken) {
		return nil, ErrStaleToken
	}

	principal, err := s.repos.Users.FindByEmail(subject)
	if err != nil {
		return nil, ErrPrincipalNotFound
	}

	accessToken, err := s.codec.IssueAccess(principal)
	if err != nil {
		return nil, errors.Wrap(err, "[Service.NewAccessToken] IssueAccess")
	}

	s.store.Consume(subject)
	return &TokenPair{AccessToken: accessToken}, nil
}

// Refresh rotates the session: a new access+refresh pair replaces the old
// one atomically. Of N concurrent refreshes with the same token exactly
// one wins; the rest fail with ErrStaleToken.
func (s *Service) Refresh(refreshToken string) (*TokenPair, error) {
	claims, err := s.codec.DecodeRefresh(refreshToken)
	if err != nil {
		return nil, tokenInvalid(err)
	}
	subject := claims.Subject

	if !s.store.Matches(subject, refreshToken) {
		return nil, ErrStaleToken
	}

	principal, err := s.repos.Users.FindByEmail(subject)
	if err != nil {
		return nil, ErrPrincipalNotFound
	}

	accessToken, err := s.codec.IssueAccess(principal)
	if err != nil {
		return nil, errors.Wrap(err, "[Service.Refresh] IssueAccess")
	}
	newRefreshToken, err := s.codec.IssueRefresh(principal)
	if err != nil {
		return nil, errors.Wrap(err, "[Service.Refresh] IssueRefresh")
	}

	if !s.store.Swap(subject, refreshToken, newRefreshToken) {
		return nil, ErrStaleToken
	}

	return &TokenPair{AccessToken: accessToken, RefreshToken: newRefreshToken}, nil
}

// Logout closes the subject's session. A second logout with the same token
// fails with ErrAlreadyLoggedOut.
func (s *Service) Logout(refreshToken string) error {
	claims, err := s.codec.DecodeRefresh(refreshToken)
	if err != nil {
		return tokenInvalid(err)
	}
	subject := claims.Subject

	if s.store.Matches(subject, refreshToken) {
		if s.store.Remove(subject) {
			return nil
		}
		return ErrAlreadyLoggedOut
	}

	if !s.store.Exists(subject) {
		return ErrAlreadyLoggedOut
	}
	return ErrTokenInvalid
}

// IsLoggedIn reports whether the subject currently has a live session.
func (s *Service) IsLoggedIn(subject string) bool {
	return s.store.IsActive(subject)
}
