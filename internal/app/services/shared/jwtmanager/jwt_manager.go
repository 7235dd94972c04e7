package jwtmanager

import (
	"docbook-service/internal/app/models"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v4"
)

var (
	ErrTokenEmpty   = errors.New("token is required")
	ErrTokenInvalid = errors.New("token is invalid")
)

// ActorClaims is the payload carried by the `token` header.
type ActorClaims struct {
	ID   string      `json:"id"`
	Role models.Role `json:"role"`
	jwt.RegisteredClaims
}

// JWTManager verifies HS256 tokens issued by the authentication service.
type JWTManager struct {
	secret []byte
	ttl    time.Duration
}

func NewJWTManager(secret string, ttl time.Duration) (*JWTManager, error) {
	if strings.TrimSpace(secret) == "" {
		return nil, fmt.Errorf("JWT_SECRET is empty")
	}
	return &JWTManager{secret: []byte(secret), ttl: ttl}, nil
}

// VerifyToken validates signature and expiry and returns the actor the
// token names.
func (j *JWTManager) VerifyToken(token string) (models.Actor, error) {
	if strings.TrimSpace(token) == "" {
		return models.Actor{}, ErrTokenEmpty
	}

	claims := &ActorClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return j.secret, nil
	})
	if err != nil {
		return models.Actor{}, fmt.Errorf("%w: %s", ErrTokenInvalid, err.Error())
	}
	if !parsed.Valid || claims.ID == "" || !claims.Role.Valid() {
		return models.Actor{}, ErrTokenInvalid
	}
	// The payment subsystem authenticates with its API key, never a token.
	if claims.Role == models.RolePayment {
		return models.Actor{}, ErrTokenInvalid
	}

	return models.Actor{ID: claims.ID, Role: claims.Role}, nil
}

// CreateToken signs a token for actor. Used by tooling and tests; end users
// obtain tokens from the authentication service.
func (j *JWTManager) CreateToken(actor models.Actor) (string, error) {
	now := time.Now().UTC()
	claims := ActorClaims{
		ID:   actor.ID,
		Role: actor.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   actor.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(j.ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(j.secret)
}
