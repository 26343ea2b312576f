package token

import (
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v5"
)

// Kind classifies why a token failed to decode. The boundary collapses all
// kinds into one client-facing "invalid token" outcome; the kind stays
// available internally for logging.
type Kind int

const (
	KindExpired Kind = iota + 1
	KindMalformed
	KindBadSignature
	KindUnsupported
)

func (k Kind) String() string {
	switch k {
	case KindExpired:
		return "expired"
	case KindMalformed:
		return "malformed"
	case KindBadSignature:
		return "bad_signature"
	case KindUnsupported:
		return "unsupported"
	}
	return "unknown"
}

var (
	errUnexpectedSigningMethod = errors.New("unexpected signing method")
	errMissingRequiredClaims   = errors.New("missing required claims")
)

// DecodeError reports a token decode failure with its reason kind.
type DecodeError struct {
	Kind  Kind
	cause error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("token decode failed (%s): %v", e.Kind, e.cause)
}

func (e *DecodeError) Unwrap() error {
	return e.cause
}

// classifyDecodeError maps jwt parse errors onto the decode-failure
// taxonomy. Anything unrecognized counts as malformed so internal detail
// never leaks upward unclassified.
func classifyDecodeError(err error) *DecodeError {
	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		return &DecodeError{Kind: KindExpired, cause: err}
	case errors.Is(err, errUnexpectedSigningMethod):
		return &DecodeError{Kind: KindUnsupported, cause: err}
	case errors.Is(err, jwt.ErrTokenSignatureInvalid):
		return &DecodeError{Kind: KindBadSignature, cause: err}
	default:
		return &DecodeError{Kind: KindMalformed, cause: err}
	}
}
