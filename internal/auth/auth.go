// Package auth issues and checks the bearer tokens of the admin API.
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const (
	jwtIssuer   = "mishura-api"
	jwtAudience = "mishura-admin"

	RoleAdmin = "admin"

	KindAccess  = "access"
	KindRefresh = "refresh"

	AccessTokenTTL  = 30 * time.Minute
	RefreshTokenTTL = 7 * 24 * time.Hour
)

var (
	ErrTokenExpired     = errors.New("token expired")
	ErrInvalidToken     = errors.New("invalid token")
	ErrInvalidTokenType = errors.New("invalid token type")
	ErrEmptyJWTSecret   = errors.New("jwt secret cannot be empty")
	ErrEmptyPassword    = errors.New("password cannot be empty")
)

// Claims identify an admin session. Kind separates access from refresh tokens
// signed with the same secret.
type Claims struct {
	Username string `json:"username"`
	Role     string `json:"role"`
	Kind     string `json:"kind"`
	jwt.RegisteredClaims
}

// Pair is what a login or a refresh hands back to the client.
type Pair struct {
	AccessToken  string
	RefreshToken string
	ExpiresIn    time.Duration
}

// HashPassword produces the value expected in ADMIN_PASSWORD_HASH.
func HashPassword(password string) (string, error) {
	if password == "" {
		return "", ErrEmptyPassword
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hashed), nil
}

func CheckPassword(hashedPassword, plainPassword string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(plainPassword)) == nil
}

// Tokens signs and verifies admin tokens with a single HMAC secret.
type Tokens struct {
	secret     []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
	now        func() time.Time
}

func NewTokens(secret string) (*Tokens, error) {
	if secret == "" {
		return nil, ErrEmptyJWTSecret
	}
	return &Tokens{
		secret:     []byte(secret),
		accessTTL:  AccessTokenTTL,
		refreshTTL: RefreshTokenTTL,
		now:        time.Now,
	}, nil
}

// Issue creates a fresh access/refresh pair for username.
func (t *Tokens) Issue(username, role string) (Pair, error) {
	access, err := t.sign(username, role, KindAccess, t.accessTTL)
	if err != nil {
		return Pair{}, err
	}
	refresh, err := t.sign(username, role, KindRefresh, t.refreshTTL)
	if err != nil {
		return Pair{}, err
	}
	return Pair{AccessToken: access, RefreshToken: refresh, ExpiresIn: t.accessTTL}, nil
}

// Rotate exchanges a valid refresh token for a new pair.
func (t *Tokens) Rotate(refreshToken string) (Pair, *Claims, error) {
	claims, err := t.Parse(refreshToken, KindRefresh)
	if err != nil {
		return Pair{}, nil, err
	}
	pair, err := t.Issue(claims.Username, claims.Role)
	if err != nil {
		return Pair{}, nil, err
	}
	return pair, claims, nil
}

// Parse verifies signature, issuer, audience and expiry, and that the token
// is of the expected kind.
func (t *Tokens) Parse(tokenString, kind string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(
		tokenString,
		&Claims{},
		func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method %v", token.Header["alg"])
			}
			return t.secret, nil
		},
		jwt.WithIssuer(jwtIssuer),
		jwt.WithAudience(jwtAudience),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(t.now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}
	if claims.Kind != kind {
		return nil, ErrInvalidTokenType
	}
	return claims, nil
}

func (t *Tokens) sign(username, role, kind string, ttl time.Duration) (string, error) {
	now := t.now()
	claims := &Claims{
		Username: username,
		Role:     role,
		Kind:     kind,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   username,
			Issuer:    jwtIssuer,
			Audience:  []string{jwtAudience},
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(t.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign %s token: %w", kind, err)
	}
	return signed, nil
}
