package service

import (
	"errors"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"

	"github.com/bistroboss/bistro-api/internal/core/domain"
)

const defaultTokenTTL = time.Hour

var emailValidator = validator.New(validator.WithRequiredStructEnabled())

// tokenClaims is the signed payload: {email, iat, exp}.
type tokenClaims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// TokenService issues and verifies HS256 identity tokens.
type TokenService struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewTokenService(secret string, ttl time.Duration) *TokenService {
	if ttl <= 0 {
		ttl = defaultTokenTTL
	}
	return &TokenService{secret: []byte(secret), ttl: ttl, now: time.Now}
}

// Issue signs a token carrying only the given email.
func (s *TokenService) Issue(email string) (string, time.Time, error) {
	email = strings.TrimSpace(email)
	if err := emailValidator.Var(email, "required,email"); err != nil {
		return "", time.Time{}, domain.Invalid("a valid email is required")
	}

	now := s.now()
	claims := tokenClaims{
		Email: email,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, claims.ExpiresAt.Time, nil
}

// Authenticate extracts the bearer token from an Authorization header value
// and verifies it.
func (s *TokenService) Authenticate(authHeader string) (domain.Identity, error) {
	if strings.TrimSpace(authHeader) == "" {
		return domain.Identity{}, domain.NewAuthError(domain.ReasonMissingCredential, nil)
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") || strings.TrimSpace(parts[1]) == "" {
		return domain.Identity{}, domain.NewAuthError(domain.ReasonMalformedHeader, nil)
	}
	return s.Verify(strings.TrimSpace(parts[1]))
}

// Verify checks signature, algorithm and expiry of a raw token.
func (s *TokenService) Verify(raw string) (domain.Identity, error) {
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithIssuedAt(),
		jwt.WithTimeFunc(s.now),
	)

	claims := &tokenClaims{}
	tkn, err := parser.ParseWithClaims(raw, claims, func(*jwt.Token) (interface{}, error) {
		return s.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return domain.Identity{}, domain.NewAuthError(domain.ReasonExpiredToken, err)
		}
		return domain.Identity{}, domain.NewAuthError(domain.ReasonInvalidToken, err)
	}
	if !tkn.Valid || strings.TrimSpace(claims.Email) == "" {
		return domain.Identity{}, domain.NewAuthError(domain.ReasonInvalidToken, nil)
	}

	id := domain.Identity{Email: claims.Email}
	if claims.IssuedAt != nil {
		id.IssuedAt = claims.IssuedAt.Time
	}
	if claims.ExpiresAt != nil {
		id.ExpiresAt = claims.ExpiresAt.Time
	}
	return id, nil
}
