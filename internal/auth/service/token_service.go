package service

//go:generate mockgen -destination=../../mocks/mock_token_codec.go -package=mocks github.com/void-adarsh/Notes-App/internal/auth/service TokenCodec

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	apperror "github.com/void-adarsh/Notes-App/internal/errors"
)

type TokenCodec interface {
	Sign(userID, email string) (string, error)
	Verify(tokenString string) (*Claims, error)
}

type TokenService struct {
	Secret      string
	TokenExpiry time.Duration
	now         func() time.Time
}

// Claims is the token payload. UserID travels as "id".
type Claims struct {
	jwt.RegisteredClaims
	UserID string `json:"id"`
	Email  string `json:"email,omitempty"`
}

// NewTokenService returns an HS256 codec. expiryMinutes of zero mints
// tokens without an exp claim.
func NewTokenService(secret string, expiryMinutes int) *TokenService {
	return &TokenService{
		Secret:      secret,
		TokenExpiry: time.Duration(expiryMinutes) * time.Minute,
		now:         time.Now,
	}
}

// WithClock swaps the time source used for iat, exp and validation.
func (ts *TokenService) WithClock(now func() time.Time) *TokenService {
	ts.now = now
	return ts
}

func (ts *TokenService) Sign(userID, email string) (string, error) {
	if ts.Secret == "" {
		return "", errors.New("token secret is not configured")
	}
	now := ts.now()

	claims := Claims{
		UserID: userID,
		Email:  email,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt: jwt.NewNumericDate(now),
		},
	}
	if ts.TokenExpiry > 0 {
		claims.ExpiresAt = jwt.NewNumericDate(now.Add(ts.TokenExpiry))
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(ts.Secret))
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Verify parses and validates the given token string. Every failure wraps
// apperror.ErrInvalidToken.
func (ts *TokenService) Verify(tokenString string) (*Claims, error) {
	if tokenString == "" {
		return nil, fmt.Errorf("%w: empty token", apperror.ErrInvalidToken)
	}

	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuedAt(),
		jwt.WithTimeFunc(ts.now),
	}
	if ts.TokenExpiry > 0 {
		opts = append(opts, jwt.WithExpirationRequired())
	}

	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(ts.Secret), nil
	}, opts...)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperror.ErrInvalidToken, err)
	}

	if !token.Valid {
		return nil, apperror.ErrInvalidToken
	}
	if claims.UserID == "" {
		return nil, fmt.Errorf("%w: missing id claim", apperror.ErrInvalidToken)
	}

	return claims, nil
}
