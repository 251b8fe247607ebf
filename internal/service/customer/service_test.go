package customer

import (
	"context"
	"errors"
	"testing"
	"time"

	"citimart/internal/auth"
	"citimart/internal/domain"
	"golang.org/x/crypto/bcrypt"
)

type stubRepo struct {
	created    *domain.Customer
	createErr  error
	byEmail    *domain.Customer
	byEmailErr error
	byID       *domain.Customer
	byIDErr    error
}

func (s *stubRepo) Create(_ context.Context, c domain.Customer) (*domain.Customer, error) {
	if s.createErr != nil {
		return nil, s.createErr
	}
	out := c
	out.ID = "cust-1"
	s.created = &out
	return &out, nil
}

func (s *stubRepo) GetByEmail(_ context.Context, _ string) (*domain.Customer, error) {
	return s.byEmail, s.byEmailErr
}

func (s *stubRepo) GetByID(_ context.Context, _ string) (*domain.Customer, error) {
	return s.byID, s.byIDErr
}

func testTokens(t *testing.T) *auth.Manager {
	t.Helper()
	m, err := auth.NewManager("test-secret", "citimart", time.Hour)
	if err != nil {
		t.Fatalf("new manager: %v", err)
	}
	return m
}

func TestRegisterValidation(t *testing.T) {
	svc := New(&stubRepo{}, testTokens(t))

	cases := []struct {
		name string
		in   RegisterInput
	}{
		{"missing email", RegisterInput{Name: "Asha", Password: "longenough"}},
		{"missing name", RegisterInput{Email: "a@example.com", Password: "longenough"}},
		{"short password", RegisterInput{Name: "Asha", Email: "a@example.com", Password: "short"}},
	}
	for _, tc := range cases {
		if _, err := svc.Register(context.Background(), tc.in); err == nil {
			t.Fatalf("%s: expected validation error", tc.name)
		}
	}
}

func TestRegisterHashesPassword(t *testing.T) {
	repo := &stubRepo{}
	svc := New(repo, testTokens(t))

	created, err := svc.Register(context.Background(), RegisterInput{
		Name: "Asha", Email: "Asha@Example.com", Password: "longenough",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if created.Email != "asha@example.com" {
		t.Fatalf("email not normalized: %q", created.Email)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(created.PasswordHash), []byte("longenough")); err != nil {
		t.Fatalf("stored hash does not match password: %v", err)
	}
}

func TestRegisterEmailTaken(t *testing.T) {
	svc := New(&stubRepo{createErr: domain.ErrAlreadyExists}, testTokens(t))
	_, err := svc.Register(context.Background(), RegisterInput{
		Name: "Asha", Email: "a@example.com", Password: "longenough",
	})
	if !errors.Is(err, ErrEmailTaken) {
		t.Fatalf("expected ErrEmailTaken, got %v", err)
	}
}

func TestLoginHappyPath(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("longenough"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	tokens := testTokens(t)
	svc := New(&stubRepo{byEmail: &domain.Customer{ID: "cust-1", Email: "a@example.com", PasswordHash: string(hash)}}, tokens)

	cust, token, err := svc.Login(context.Background(), "a@example.com", "longenough")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cust.ID != "cust-1" {
		t.Fatalf("unexpected customer: %+v", cust)
	}

	claims, err := tokens.Parse(token)
	if err != nil {
		t.Fatalf("minted token does not validate: %v", err)
	}
	if claims.CustomerID != "cust-1" {
		t.Fatalf("token subject = %q", claims.CustomerID)
	}
}

func TestLoginWrongPassword(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("longenough"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	svc := New(&stubRepo{byEmail: &domain.Customer{ID: "cust-1", PasswordHash: string(hash)}}, testTokens(t))

	if _, _, err := svc.Login(context.Background(), "a@example.com", "wrong"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestLoginUnknownEmail(t *testing.T) {
	svc := New(&stubRepo{byEmailErr: domain.ErrNotFound}, testTokens(t))
	if _, _, err := svc.Login(context.Background(), "ghost@example.com", "whatever"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}
