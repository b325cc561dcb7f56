package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"github.com/mitchellh/mapstructure"

	"github.com/carewell/portal/config"
)

// Auth carries the identity of the authenticated subject for the duration
// of a request.
type Auth struct {
	SubjectId string `json:"subjectId" mapstructure:"sub" structs:"subjectId"`
	Email     string `json:"email" mapstructure:"email" structs:"email"`
	Role      string `json:"role" mapstructure:"role" structs:"role"`
}

type TokenService interface {
	Issue(auth *Auth) (string, error)
	Validate(token string) (*Auth, error)
}

func NewTokenService(cfg *config.Config) (TokenService, error) {
	if cfg.JwtSecret == "" {
		return nil, fmt.Errorf("jwt secret is not set")
	}
	return &tokenService{
		secret:     []byte(cfg.JwtSecret),
		expiration: cfg.JwtExpiration,
	}, nil
}

type tokenService struct {
	secret     []byte
	expiration time.Duration
}

var _ TokenService = &tokenService{}

func (t *tokenService) Issue(auth *Auth) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":   auth.SubjectId,
		"email": auth.Email,
		"role":  auth.Role,
		"jti":   uuid.NewString(),
		"iat":   now.Unix(),
		"exp":   now.Add(t.expiration).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(t.secret)
	if err != nil {
		return "", fmt.Errorf("unable to sign session token: %w", err)
	}

	return signed, nil
}

func (t *tokenService) Validate(tokenString string) (*Auth, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", token.Header["alg"])
		}
		return t.secret, nil
	})
	if err != nil {
		return nil, ErrUnauthenticated
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, ErrUnauthenticated
	}

	auth := &Auth{}
	if err := mapstructure.Decode(map[string]interface{}(claims), auth); err != nil {
		return nil, fmt.Errorf("unable to decode session token claims: %w", err)
	}
	if auth.SubjectId == "" {
		return nil, ErrUnauthenticated
	}

	return auth, nil
}
