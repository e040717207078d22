package authenticating

import (
	"crypto/subtle"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/pkg/errors"
	"github.com/therrabiz/therrabiz-api/infrastructure/storage"
	"github.com/therrabiz/therrabiz-api/internal/config"
	"github.com/therrabiz/therrabiz-api/internal/domain"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrMissingProfile     = errors.New("owner and store name are required")
)

// Authenticator handles the single-owner demo login and session tokens.
type Authenticator interface {
	Login(password string, profile domain.StoreProfile) (string, error)
	ValidateToken(tokenString string) (*domain.Claims, error)
}

type Service struct {
	store *storage.Store
	cfg   *config.Config
}

func NewService(store *storage.Store, cfg *config.Config) Authenticator {
	return &Service{store: store, cfg: cfg}
}

// Login verifies the demo password, saves the store profile and issues a
// session token. The configured password may be a bcrypt hash; a plain value
// is compared in constant time.
func (s *Service) Login(password string, profile domain.StoreProfile) (string, error) {
	if profile.OwnerName == "" || profile.StoreName == "" {
		return "", ErrMissingProfile
	}

	if !s.passwordMatches(password) {
		return "", ErrInvalidCredentials
	}

	// The profile singleton is set at login and read by every greeting and
	// assistant prompt afterwards.
	s.store.SaveStoreProfile(profile)

	return s.issueToken(profile)
}

func (s *Service) passwordMatches(password string) bool {
	configured := s.cfg.Auth.DemoPassword
	if configured == "" {
		return false
	}

	if isBcryptHash(configured) {
		return bcrypt.CompareHashAndPassword([]byte(configured), []byte(password)) == nil
	}

	return subtle.ConstantTimeCompare([]byte(configured), []byte(password)) == 1
}

func isBcryptHash(value string) bool {
	return len(value) == 60 && (value[:4] == "$2a$" || value[:4] == "$2b$" || value[:4] == "$2y$")
}

func (s *Service) issueToken(profile domain.StoreProfile) (string, error) {
	now := time.Now()
	claims := &domain.Claims{
		OwnerName: profile.OwnerName,
		StoreName: profile.StoreName,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Duration(s.cfg.Auth.TokenTTLHours) * time.Hour)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.cfg.Auth.Secret))
	if err != nil {
		return "", errors.Wrap(err, "signing session token")
	}

	return signed, nil
}

// ValidateToken parses and verifies a session token.
func (s *Service) ValidateToken(tokenString string) (*domain.Claims, error) {
	claims := &domain.Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.cfg.Auth.Secret), nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "parsing session token")
	}

	if !token.Valid {
		return nil, errors.New("invalid session token")
	}

	return claims, nil
}
