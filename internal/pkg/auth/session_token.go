package auth

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Token errors
var (
	ErrInvalidToken = errors.New("invalid token")
	ErrExpiredToken = errors.New("token expired")
)

// SessionTokenConfig defines signing settings for session tokens
type SessionTokenConfig struct {
	SecretKey   string
	TTL         time.Duration
	TokenIssuer string
}

// SessionTokenService signs and verifies the session cookie value
type SessionTokenService struct {
	config SessionTokenConfig
	now    func() time.Time
}

// NewSessionTokenService creates a new SessionTokenService
func NewSessionTokenService(config SessionTokenConfig) *SessionTokenService {
	return &SessionTokenService{
		config: config,
		now:    time.Now,
	}
}

// Claims defines session token content
type Claims struct {
	Username string `json:"username"`
	jwt.RegisteredClaims
}

// TTL is how long an issued token stays valid
func (s *SessionTokenService) TTL() time.Duration {
	return s.config.TTL
}

// Issue creates a signed token for a new session. The returned identity
// carries the session id that must be registered with the session store.
func (s *SessionTokenService) Issue(userID int64, username string) (string, Identity, error) {
	now := s.now()
	identity := Identity{
		UserID:    userID,
		Username:  username,
		SessionID: uuid.NewString(),
	}

	claims := &Claims{
		Username: username,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(s.config.TTL)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Issuer:    s.config.TokenIssuer,
			Subject:   strconv.FormatInt(userID, 10),
			ID:        identity.SessionID,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.config.SecretKey))
	if err != nil {
		return "", Identity{}, fmt.Errorf("failed to sign session token: %w", err)
	}

	return signed, identity, nil
}

// Parse verifies the signature and expiry of tokenString and returns the identity it names.
func (s *SessionTokenService) Parse(tokenString string) (Identity, error) {
	if tokenString == "" {
		return Identity{}, ErrInvalidToken
	}

	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.config.SecretKey), nil
	},
		jwt.WithIssuer(s.config.TokenIssuer),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return Identity{}, ErrExpiredToken
		}
		return Identity{}, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return Identity{}, ErrInvalidToken
	}

	userID, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil || userID <= 0 || claims.ID == "" {
		return Identity{}, ErrInvalidToken
	}

	return Identity{
		UserID:    userID,
		Username:  claims.Username,
		SessionID: claims.ID,
	}, nil
}
