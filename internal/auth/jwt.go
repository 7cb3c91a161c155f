package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var (
	ErrInvalidToken  = errors.New("invalid token")
	ErrInvalidClaims = errors.New("invalid claims")
)

// Token is a signed session token together with what it encodes.
type Token struct {
	Value     string
	SessionID string
	Username  string
	ExpiresAt time.Time
}

// Issuer signs and verifies HS256 session tokens.
type Issuer struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewIssuer(secret string, ttl time.Duration) *Issuer {
	return &Issuer{secret: []byte(secret), ttl: ttl, now: time.Now}
}

func (i *Issuer) TTL() time.Duration {
	return i.ttl
}

// GenerateToken issues a token for username bound to a fresh session id.
func (i *Issuer) GenerateToken(username string) (Token, error) {
	sessionID := uuid.NewString()
	expiresAt := i.now().Add(i.ttl)
	claims := jwt.MapClaims{
		"sub": username,
		"sid": sessionID,
		"exp": expiresAt.Unix(),
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(i.secret)
	if err != nil {
		return Token{}, err
	}
	return Token{
		Value:     signed,
		SessionID: sessionID,
		Username:  username,
		ExpiresAt: time.Unix(expiresAt.Unix(), 0),
	}, nil
}

// ParseToken verifies tokenStr and returns the session it names.
func (i *Issuer) ParseToken(tokenStr string) (Token, error) {
	token, err := jwt.Parse(tokenStr, func(token *jwt.Token) (interface{}, error) {
		return i.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !token.Valid {
		return Token{}, ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return Token{}, ErrInvalidClaims
	}
	username, _ := claims["sub"].(string)
	sessionID, _ := claims["sid"].(string)
	if username == "" || sessionID == "" {
		return Token{}, ErrInvalidClaims
	}

	parsed := Token{Value: tokenStr, SessionID: sessionID, Username: username}
	if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
		parsed.ExpiresAt = exp.Time
	}
	return parsed, nil
}
