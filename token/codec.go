package token

import (
	"bytes"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/jrsteele09/taskhub-auth/users"
	"github.com/pkg/errors"
)

const (
	defaultAccessTokenExpiry  = 10 * time.Minute
	defaultRefreshTokenExpiry = 24 * time.Hour
)

// Codec signs and verifies the compact signed tokens carrying identity
// claims. Access and refresh tokens are signed with distinct secrets, so
// compromise of one key set does not compromise the other. All operations
// are pure and reentrant.
type Codec struct {
	accessSigner       Signer
	refreshSigner      Signer
	accessTokenExpiry  time.Duration
	refreshTokenExpiry time.Duration
	nowFunc            func() time.Time
}

type CodecOption func(*Codec)

func WithTokenExpiry(accessTokenExpiry, refreshTokenExpiry time.Duration) CodecOption {
	return func(c *Codec) {
		c.accessTokenExpiry = accessTokenExpiry
		c.refreshTokenExpiry = refreshTokenExpiry
	}
}

func WithNowFunc(now func() time.Time) CodecOption {
	return func(c *Codec) {
		c.nowFunc = now
	}
}

// New creates a Codec from the two symmetric secrets. The access-token
// lifetime must be strictly shorter than the refresh-token lifetime.
func New(accessSecret, refreshSecret []byte, options ...CodecOption) (*Codec, error) {
	if len(accessSecret) == 0 || len(refreshSecret) == 0 {
		return nil, errors.New("[token.New] both access and refresh secrets are required")
	}
	if bytes.Equal(accessSecret, refreshSecret) {
		return nil, errors.New("[token.New] access and refresh secrets must differ")
	}

	c := &Codec{
		accessSigner:       NewHMACSigner(accessSecret),
		refreshSigner:      NewHMACSigner(refreshSecret),
		accessTokenExpiry:  defaultAccessTokenExpiry,
		refreshTokenExpiry: defaultRefreshTokenExpiry,
		nowFunc:            time.Now,
	}

	for _, opt := range options {
		opt(c)
	}

	if c.accessTokenExpiry >= c.refreshTokenExpiry {
		return nil, errors.New("[token.New] access token expiry must be shorter than refresh token expiry")
	}
	return c, nil
}

// IssueAccess creates a signed access token for the principal.
func (c *Codec) IssueAccess(principal *users.Principal) (string, error) {
	now := c.nowFunc()
	claims := &AccessClaims{
		Role:     principal.Role,
		FullName: principal.FullName,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   principal.Email,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(c.accessTokenExpiry)),
			ID:        uuid.New().String(),
		},
	}

	signed, err := c.accessSigner.Sign(claims)
	if err != nil {
		return "", errors.Wrap(err, "Codec.IssueAccess")
	}
	return signed, nil
}

// IssueRefresh creates a signed refresh token for the principal.
func (c *Codec) IssueRefresh(principal *users.Principal) (string, error) {
	now := c.nowFunc()
	claims := &RefreshClaims{
		Role: principal.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   principal.Email,
			ExpiresAt: jwt.NewNumericDate(now.Add(c.refreshTokenExpiry)),
			ID:        uuid.New().String(),
		},
	}

	signed, err := c.refreshSigner.Sign(claims)
	if err != nil {
		return "", errors.Wrap(err, "Codec.IssueRefresh")
	}
	return signed, nil
}

// DecodeAccess parses and verifies an access token. Failures carry a
// *DecodeError whose kind distinguishes expired, malformed, bad-signature
// and unsupported tokens.
func (c *Codec) DecodeAccess(rawToken string) (*AccessClaims, error) {
	claims := &AccessClaims{}
	if err := c.decode(rawToken, claims, c.accessSigner); err != nil {
		return nil, err
	}
	if err := claims.validateRequired(); err != nil {
		return nil, &DecodeError{Kind: KindMalformed, cause: err}
	}
	return claims, nil
}

// DecodeRefresh parses and verifies a refresh token.
func (c *Codec) DecodeRefresh(rawToken string) (*RefreshClaims, error) {
	claims := &RefreshClaims{}
	if err := c.decode(rawToken, claims, c.refreshSigner); err != nil {
		return nil, err
	}
	if err := claims.validateRequired(); err != nil {
		return nil, &DecodeError{Kind: KindMalformed, cause: err}
	}
	return claims, nil
}

func (c *Codec) decode(rawToken string, claims jwt.Claims, signer Signer) error {
	parsed, err := jwt.ParseWithClaims(rawToken, claims, signer.GetVerificationKey,
		jwt.WithTimeFunc(c.nowFunc),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return classifyDecodeError(err)
	}
	if !parsed.Valid {
		return &DecodeError{Kind: KindMalformed, cause: errors.New("token not valid")}
	}
	return nil
}
