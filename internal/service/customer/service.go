package customer

import (
	"context"
	"errors"
	"strings"
	"time"

	"citimart/internal/auth"
	"citimart/internal/domain"
	"golang.org/x/crypto/bcrypt"
)

var (
	// ErrInvalidCredentials is returned when email/password do not match.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrEmailTaken is returned when the email is already registered.
	ErrEmailTaken = errors.New("email already registered")
)

// Service handles customer registration and login.
type Service struct {
	repo        customerRepo
	tokens      *auth.Manager
	passwordMin int
}

type customerRepo interface {
	Create(ctx context.Context, c domain.Customer) (*domain.Customer, error)
	GetByEmail(ctx context.Context, email string) (*domain.Customer, error)
	GetByID(ctx context.Context, id string) (*domain.Customer, error)
}

func New(repo customerRepo, tokens *auth.Manager) *Service {
	return &Service{repo: repo, tokens: tokens, passwordMin: 8}
}

// RegisterInput captures the registration payload.
type RegisterInput struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Phone    string `json:"phone"`
	Address  string `json:"address"`
}

// Register creates a customer with a bcrypt password hash.
func (s *Service) Register(ctx context.Context, in RegisterInput) (*domain.Customer, error) {
	email := strings.TrimSpace(strings.ToLower(in.Email))
	if email == "" {
		return nil, errors.New("email required")
	}
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, errors.New("name required")
	}
	password := strings.TrimSpace(in.Password)
	if len(password) < s.passwordMin {
		return nil, errors.New("password must be at least 8 characters")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	created, err := s.repo.Create(ctx, domain.Customer{
		Name:         name,
		Email:        email,
		PasswordHash: string(hashed),
		Phone:        strings.TrimSpace(in.Phone),
		Address:      strings.TrimSpace(in.Address),
	})
	if err != nil {
		if errors.Is(err, domain.ErrAlreadyExists) {
			return nil, ErrEmailTaken
		}
		return nil, err
	}
	return created, nil
}

// Login verifies credentials and mints an access token.
func (s *Service) Login(ctx context.Context, email, password string) (*domain.Customer, string, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	cust, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, "", ErrInvalidCredentials
		}
		return nil, "", err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(cust.PasswordHash), []byte(password)); err != nil {
		return nil, "", ErrInvalidCredentials
	}

	token, err := s.tokens.Mint(cust.ID, "customer", time.Now())
	if err != nil {
		return nil, "", err
	}
	return cust, token, nil
}

// Get fetches a customer by id.
func (s *Service) Get(ctx context.Context, id string) (*domain.Customer, error) {
	return s.repo.GetByID(ctx, id)
}

// TokenTTLSeconds reports the access token lifetime for login responses.
func (s *Service) TokenTTLSeconds() int {
	return s.tokens.TTLSeconds()
}
