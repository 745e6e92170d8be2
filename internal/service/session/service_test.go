package session

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"cocktailhaven/internal/domain"
	"cocktailhaven/internal/store"
)

type memStore struct {
	data    map[string][]byte
	setErr  error
	setKeys []string
}

func newMemStore() *memStore {
	return &memStore{data: make(map[string][]byte)}
}

func (s *memStore) Get(_ context.Context, key string) ([]byte, error) {
	if b, ok := s.data[key]; ok {
		return b, nil
	}
	return nil, domain.ErrNotFound
}

func (s *memStore) Set(_ context.Context, key string, value []byte) error {
	if s.setErr != nil {
		return s.setErr
	}
	s.setKeys = append(s.setKeys, key)
	s.data[key] = value
	return nil
}

func (s *memStore) Remove(_ context.Context, key string) error {
	delete(s.data, key)
	return nil
}

func validInput() RegisterInput {
	return RegisterInput{
		FirstName:       "Ada",
		LastName:        "Lovelace",
		Email:           "ada@example.com",
		Password:        "secret1",
		ConfirmPassword: "secret1",
	}
}

func TestRegisterHappyPath(t *testing.T) {
	st := newMemStore()
	svc := New(st, zap.NewNop())

	account, err := svc.Register(context.Background(), validInput())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if account.Email != "ada@example.com" {
		t.Fatalf("unexpected account: %+v", account)
	}
	if account.Password == "secret1" {
		t.Fatalf("password stored in clear")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(account.Password), []byte("secret1")); err != nil {
		t.Fatalf("stored hash does not verify: %v", err)
	}

	var users []domain.UserAccount
	if err := json.Unmarshal(st.data[store.KeyUsers], &users); err != nil {
		t.Fatalf("users blob: %v", err)
	}
	if len(users) != 1 || users[0].FirstName != "Ada" {
		t.Fatalf("unexpected users list: %+v", users)
	}

	var name string
	if err := json.Unmarshal(st.data[store.KeyCustomerName], &name); err != nil {
		t.Fatalf("customerName blob: %v", err)
	}
	if name != "Ada Lovelace" {
		t.Fatalf("unexpected customer name: %q", name)
	}
}

func TestRegisterValidation(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*RegisterInput)
	}{
		{"missing field", func(in *RegisterInput) { in.LastName = "" }},
		{"bad email", func(in *RegisterInput) { in.Email = "not-an-email" }},
		{"numeric first name", func(in *RegisterInput) { in.FirstName = "Ada99" }},
		{"numeric last name", func(in *RegisterInput) { in.LastName = "L0velace" }},
		{"password mismatch", func(in *RegisterInput) { in.ConfirmPassword = "other" }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			st := newMemStore()
			svc := New(st, zap.NewNop())
			in := validInput()
			tc.mutate(&in)

			_, err := svc.Register(context.Background(), in)
			if !domain.IsValidation(err) {
				t.Fatalf("expected validation error, got %v", err)
			}
			if _, ok := st.data[store.KeyUsers]; ok {
				t.Fatalf("users store written on validation failure")
			}
		})
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	st := newMemStore()
	svc := New(st, zap.NewNop())
	ctx := context.Background()

	if _, err := svc.Register(ctx, validInput()); err != nil {
		t.Fatalf("first register: %v", err)
	}
	in := validInput()
	in.FirstName = "Augusta"
	if _, err := svc.Register(ctx, in); !errors.Is(err, domain.ErrEmailTaken) {
		t.Fatalf("expected ErrEmailTaken, got %v", err)
	}

	var users []domain.UserAccount
	json.Unmarshal(st.data[store.KeyUsers], &users)
	if len(users) != 1 {
		t.Fatalf("duplicate registration modified the list: %+v", users)
	}
}

func TestLogin(t *testing.T) {
	st := newMemStore()
	svc := New(st, zap.NewNop())
	ctx := context.Background()

	if _, err := svc.Register(ctx, validInput()); err != nil {
		t.Fatalf("register: %v", err)
	}

	account, err := svc.Login(ctx, "ada@example.com", "secret1")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if account.FirstName != "Ada" {
		t.Fatalf("unexpected account: %+v", account)
	}

	if _, err := svc.Login(ctx, "ada@example.com", "wrong"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for wrong password, got %v", err)
	}
	if _, err := svc.Login(ctx, "nobody@example.com", "secret1"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for unknown email, got %v", err)
	}
}

func TestTokenLifecycle(t *testing.T) {
	st := newMemStore()
	svc := New(st, zap.NewNop())
	ctx := context.Background()

	account, err := svc.Register(ctx, validInput())
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	token, err := svc.IssueToken(*account)
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}

	got, err := svc.LookupByToken(ctx, token)
	if err != nil {
		t.Fatalf("lookup: %v", err)
	}
	if got.Email != account.Email {
		t.Fatalf("unexpected account: %+v", got)
	}

	svc.Logout(token)
	if _, err := svc.LookupByToken(ctx, token); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected revoked token to fail, got %v", err)
	}
}

func TestCustomerName(t *testing.T) {
	st := newMemStore()
	svc := New(st, zap.NewNop())
	ctx := context.Background()

	name, err := svc.CustomerName(ctx)
	if err != nil || name != "" {
		t.Fatalf("expected empty name before registration, got %q %v", name, err)
	}

	if _, err := svc.Register(ctx, validInput()); err != nil {
		t.Fatalf("register: %v", err)
	}
	name, err = svc.CustomerName(ctx)
	if err != nil {
		t.Fatalf("customer name: %v", err)
	}
	if name != "Ada Lovelace" {
		t.Fatalf("unexpected name: %q", name)
	}
}
