package auth

import (
	"errors"
	"fmt"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/heavyrent/rental-service/internal/domain"
)

var (
	ErrMissingToken = fmt.Errorf("%w: missing bearer token", domain.ErrUnauthorized)
	ErrInvalidToken = fmt.Errorf("%w: invalid token", domain.ErrUnauthorized)
)

// Claims of identity provider access tokens. Role claims, if present, are ignored:
// roles come from the profiles table only.
type Claims struct {
	Email string `json:"email,omitempty"`
	jwt.RegisteredClaims
}

// Verifier validates HS256 access tokens issued by the identity provider.
type Verifier struct {
	secret []byte
	opts   []jwt.ParserOption
	issuer string
	aud    string
}

func NewVerifier(secret, issuer, audience string) *Verifier {
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
	}
	if issuer != "" {
		opts = append(opts, jwt.WithIssuer(issuer))
	}
	if audience != "" {
		opts = append(opts, jwt.WithAudience(audience))
	}
	return &Verifier{secret: []byte(secret), opts: opts, issuer: issuer, aud: audience}
}

// Verify parses tokenStr and returns the session it authenticates.
func (v *Verifier) Verify(tokenStr string) (*domain.Session, error) {
	if tokenStr == "" {
		return nil, ErrMissingToken
	}

	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		return v.secret, nil
	}, v.opts...)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}

	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return nil, fmt.Errorf("%w: subject is not a uuid", ErrInvalidToken)
	}

	return &domain.Session{UserID: userID, Email: claims.Email}, nil
}

// Issue signs a token for userID. Used by local tooling and tests; production tokens come from the identity provider.
func (v *Verifier) Issue(userID uuid.UUID, email string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := Claims{
		Email: email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID.String(),
			Issuer:    v.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	if v.aud != "" {
		claims.Audience = jwt.ClaimStrings{v.aud}
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(v.secret)
	if err != nil {
		return "", errors.Join(ErrInvalidToken, err)
	}
	return signed, nil
}
