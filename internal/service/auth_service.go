package service

import (
	"crypto/subtle"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/dreamteamservicespvt/rebuild-studio-server/internal/config"
	"github.com/dreamteamservicespvt/rebuild-studio-server/internal/model"
)

// AuthService issues and verifies admin bearer tokens. Credentials come from
// configuration instead of living in the client.
type AuthService struct {
	username string
	password string
	secret   []byte
	tokenTTL time.Duration
}

// NewAuthService creates a new AuthService from the auth configuration.
func NewAuthService(cfg config.AuthConfig) *AuthService {
	return &AuthService{
		username: cfg.AdminUsername,
		password: cfg.AdminPassword,
		secret:   []byte(cfg.JWTSecret),
		tokenTTL: time.Duration(cfg.TokenTTL) * time.Minute,
	}
}

// Login checks the admin credentials and returns a signed token.
// Returns ErrInvalidCredentials when either field doesn't match.
func (s *AuthService) Login(req *model.LoginRequest) (*model.LoginResponse, error) {
	if req == nil {
		return nil, ErrInvalidCredentials
	}

	userOK := subtle.ConstantTimeCompare([]byte(req.Username), []byte(s.username)) == 1
	passOK := subtle.ConstantTimeCompare([]byte(req.Password), []byte(s.password)) == 1
	if !userOK || !passOK {
		return nil, ErrInvalidCredentials
	}

	now := time.Now()
	claims := jwt.MapClaims{
		"sub":  s.username,
		"role": "admin",
		"iat":  now.Unix(),
		"exp":  now.Add(s.tokenTTL).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return nil, fmt.Errorf("sign token: %w", err)
	}

	return &model.LoginResponse{
		Token:     signed,
		ExpiresIn: int(s.tokenTTL.Seconds()),
	}, nil
}

// VerifyToken parses a bearer token and returns the subject.
// Returns ErrInvalidCredentials for anything that doesn't verify.
func (s *AuthService) VerifyToken(tokenString string) (string, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil || !token.Valid {
		return "", ErrInvalidCredentials
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", ErrInvalidCredentials
	}
	sub, err := claims.GetSubject()
	if err != nil || sub == "" {
		return "", ErrInvalidCredentials
	}
	return sub, nil
}
