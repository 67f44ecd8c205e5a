package admin

import (
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"golang.org/x/crypto/bcrypt"
)

var ErrInvalidCreds = errors.New("invalid credentials")

const tokenSubject = "admin"

// Service authenticates the single admin account and issues the bearer
// tokens protecting the settings and key-rotation endpoints.
type Service struct {
	passwordHash []byte
	jwtSecret    []byte
	jwtTTL       time.Duration
}

// NewService accepts either a bcrypt hash or a plaintext password; a
// plaintext value is hashed at startup, so the service itself only ever
// holds a hash.
func NewService(password string, jwtSecret []byte, jwtTTL time.Duration) (*Service, error) {
	hash := []byte(password)
	if !strings.HasPrefix(password, "$2") {
		var err error
		hash, err = bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
	}
	return &Service{passwordHash: hash, jwtSecret: jwtSecret, jwtTTL: jwtTTL}, nil
}

// Authenticate checks the admin password and returns a signed JWT.
func (s *Service) Authenticate(password string) (string, error) {
	if err := bcrypt.CompareHashAndPassword(s.passwordHash, []byte(password)); err != nil {
		return "", ErrInvalidCreds
	}

	now := time.Now().UTC()
	claims := jwt.RegisteredClaims{
		Subject:   tokenSubject,
		ExpiresAt: jwt.NewNumericDate(now.Add(s.jwtTTL)),
		IssuedAt:  jwt.NewNumericDate(now),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.jwtSecret)
}

// ValidateToken verifies a bearer token issued by Authenticate.
func (s *Service) ValidateToken(tokenStr string) error {
	claims := &jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (interface{}, error) {
		return s.jwtSecret, nil
	})
	if err != nil || !token.Valid || claims.Subject != tokenSubject {
		return ErrInvalidCreds
	}
	return nil
}
