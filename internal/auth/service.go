package auth

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"

	"taskboard/internal/model"

	"golang.org/x/crypto/bcrypt"
)

// ErrInvalidCredentials is the only failure a user ever sees from Login.
var ErrInvalidCredentials = errors.New("invalid credentials")

// CredentialVerifier checks a username/password pair. It returns
// ErrInvalidCredentials on mismatch and any other error on infrastructure failure.
type CredentialVerifier interface {
	Verify(ctx context.Context, username, password string) error
}

// Service gates access to the board: verify, then issue a session token.
type Service struct {
	verifier CredentialVerifier
	issuer   *Issuer
}

func NewService(verifier CredentialVerifier, issuer *Issuer) *Service {
	return &Service{verifier: verifier, issuer: issuer}
}

func (s *Service) Login(ctx context.Context, username, password string) (Token, error) {
	if err := s.verifier.Verify(ctx, username, password); err != nil {
		return Token{}, err
	}
	token, err := s.issuer.GenerateToken(username)
	if err != nil {
		return Token{}, fmt.Errorf("sign token: %w", err)
	}
	return token, nil
}

// StaticVerifier accepts exactly one configured account.
type StaticVerifier struct {
	Username string
	Password string
}

func (v StaticVerifier) Verify(_ context.Context, username, password string) error {
	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(v.Username)) == 1
	passOK := subtle.ConstantTimeCompare([]byte(password), []byte(v.Password)) == 1
	if !userOK || !passOK {
		return ErrInvalidCredentials
	}
	return nil
}

// UserFinder is the part of the user repository the verifier needs.
type UserFinder interface {
	FindByUsername(ctx context.Context, username string) (*model.User, error)
}

// UserStoreVerifier checks passwords against bcrypt hashes in the user store.
type UserStoreVerifier struct {
	users UserFinder
}

func NewUserStoreVerifier(users UserFinder) *UserStoreVerifier {
	return &UserStoreVerifier{users: users}
}

func (v *UserStoreVerifier) Verify(ctx context.Context, username, password string) error {
	user, err := v.users.FindByUsername(ctx, username)
	if err != nil {
		return fmt.Errorf("find user: %w", err)
	}
	if user == nil {
		return ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return ErrInvalidCredentials
	}
	return nil
}

// HashPassword produces the value stored in model.User.PasswordHash.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
