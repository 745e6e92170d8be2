// Package session is the auth gate: registration and login against the
// persisted user list, plus bearer tokens for the HTTP surface.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"regexp"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"cocktailhaven/internal/domain"
	"cocktailhaven/internal/store"
)

var (
	emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	namePattern  = regexp.MustCompile(`^[a-zA-Z]+$`)
)

// Service handles register/login flows over the shared user list.
type Service struct {
	shared   store.Store
	tokens   *tokenManager
	tokenTTL time.Duration
	logger   *zap.Logger
}

// New creates a Service over the shared storage namespace.
func New(shared store.Store, logger *zap.Logger) *Service {
	return &Service{
		shared:   shared,
		tokens:   newTokenManager(),
		tokenTTL: 24 * time.Hour,
		logger:   logger,
	}
}

// RegisterInput captures the registration form.
type RegisterInput struct {
	FirstName       string `json:"firstName"`
	LastName        string `json:"lastName"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
}

// Register validates the input, appends the account to the persisted user
// list, and records the customer's display name. Validation short-circuits
// on the first failing rule.
func (s *Service) Register(ctx context.Context, in RegisterInput) (*domain.UserAccount, error) {
	if in.FirstName == "" || in.LastName == "" || in.Email == "" || in.Password == "" || in.ConfirmPassword == "" {
		return nil, domain.Validation("", "please complete all fields")
	}
	if !emailPattern.MatchString(strings.ToLower(in.Email)) {
		return nil, domain.Validation("email", "please enter a valid email address")
	}
	if !namePattern.MatchString(in.FirstName) {
		return nil, domain.Validation("firstName", "first name must contain only letters")
	}
	if !namePattern.MatchString(in.LastName) {
		return nil, domain.Validation("lastName", "last name must contain only letters")
	}
	if in.Password != in.ConfirmPassword {
		return nil, domain.Validation("confirmPassword", "passwords do not match")
	}

	users, err := s.loadUsers(ctx)
	if err != nil {
		return nil, err
	}
	for _, u := range users {
		if u.Email == in.Email {
			return nil, domain.ErrEmailTaken
		}
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	account := domain.UserAccount{
		Email:     in.Email,
		Password:  string(hashed),
		FirstName: in.FirstName,
		LastName:  in.LastName,
	}
	users = append(users, account)

	raw, err := json.Marshal(users)
	if err != nil {
		return nil, err
	}
	if err := s.shared.Set(ctx, store.KeyUsers, raw); err != nil {
		return nil, err
	}

	name, err := json.Marshal(account.FullName())
	if err != nil {
		return nil, err
	}
	if err := s.shared.Set(ctx, store.KeyCustomerName, name); err != nil {
		return nil, err
	}

	s.logger.Info("user registered", zap.String("email", account.Email))
	return &account, nil
}

// Login checks the credentials against the stored list. Unknown email and
// wrong password both return ErrInvalidCredentials.
func (s *Service) Login(ctx context.Context, email, password string) (*domain.UserAccount, error) {
	if email == "" || password == "" {
		return nil, domain.Validation("", "please complete all fields")
	}
	users, err := s.loadUsers(ctx)
	if err != nil {
		return nil, err
	}
	for _, u := range users {
		if u.Email != email {
			continue
		}
		if bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password)) != nil {
			break
		}
		account := u
		return &account, nil
	}
	return nil, domain.ErrInvalidCredentials
}

// IssueToken returns a bearer token bound to the account's email.
func (s *Service) IssueToken(account domain.UserAccount) (string, error) {
	return s.tokens.Issue(account.Email, s.tokenTTL)
}

// LookupByToken resolves a bearer token back to the stored account.
func (s *Service) LookupByToken(ctx context.Context, token string) (*domain.UserAccount, error) {
	meta, ok := s.tokens.Validate(token)
	if !ok {
		return nil, domain.ErrInvalidCredentials
	}
	users, err := s.loadUsers(ctx)
	if err != nil {
		return nil, err
	}
	for _, u := range users {
		if u.Email == meta.Email {
			account := u
			return &account, nil
		}
	}
	return nil, domain.ErrInvalidCredentials
}

// Logout revokes the token. Revoking an unknown token is a no-op.
func (s *Service) Logout(token string) {
	s.tokens.Revoke(token)
}

// CustomerName returns the display name recorded at registration, or ""
// when none was stored yet.
func (s *Service) CustomerName(ctx context.Context) (string, error) {
	raw, err := s.shared.Get(ctx, store.KeyCustomerName)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return "", nil
		}
		return "", err
	}
	var name string
	if err := json.Unmarshal(raw, &name); err != nil {
		// Early builds stored the name unencoded.
		return string(raw), nil
	}
	return name, nil
}

func (s *Service) loadUsers(ctx context.Context) ([]domain.UserAccount, error) {
	raw, err := s.shared.Get(ctx, store.KeyUsers)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	var users []domain.UserAccount
	if err := json.Unmarshal(raw, &users); err != nil {
		return nil, err
	}
	return users, nil
}
