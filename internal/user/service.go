package user

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	apperrors "github.com/kristopher-lab/verdure-premium-plant-shop/pkg/errors"
	"github.com/kristopher-lab/verdure-premium-plant-shop/pkg/pagination"

	"github.com/kristopher-lab/verdure-premium-plant-shop/internal/domain"
	"github.com/kristopher-lab/verdure-premium-plant-shop/internal/store"
)

// Descriptor returns the store descriptor for the user entity type.
func Descriptor() store.Descriptor[domain.User] {
	return store.Descriptor[domain.User]{
		Name:      "user",
		IndexName: "users",
		New: func(id string) domain.User {
			return domain.User{
				ID:        id,
				CreatedAt: time.Now().UTC(),
			}
		},
	}
}

// Service resolves and registers customer accounts. This storefront has no
// real identity provider: any non-empty password is accepted, and an unknown
// email registers a new account on the spot.
type Service struct {
	users  *store.Store[domain.User]
	logger *slog.Logger
}

// NewService creates a new user service.
func NewService(users *store.Store[domain.User], logger *slog.Logger) *Service {
	return &Service{
		users:  users,
		logger: logger,
	}
}

// Login resolves the account for the given email, creating one if none
// exists, and returns it along with an opaque session token. Email matching
// is case-insensitive.
func (s *Service) Login(ctx context.Context, email, password string) (*domain.User, string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return nil, "", apperrors.InvalidInput("email is required")
	}
	if password == "" {
		return nil, "", apperrors.InvalidInput("password is required")
	}

	existing, err := s.findByEmail(ctx, email)
	if err != nil {
		return nil, "", err
	}
	if existing != nil {
		s.logger.InfoContext(ctx, "user logged in", slog.String("user_id", existing.ID))
		return existing, newToken(), nil
	}

	id := "user_" + uuid.New().String()
	account := domain.User{
		ID:        id,
		Email:     email,
		Name:      displayName(email),
		CreatedAt: time.Now().UTC(),
	}

	created, err := s.users.Create(ctx, id, account)
	if err != nil {
		return nil, "", fmt.Errorf("create user: %w", err)
	}

	s.logger.InfoContext(ctx, "user registered",
		slog.String("user_id", created.ID),
		slog.String("email", created.Email),
	)

	return &created, newToken(), nil
}

// GetByID retrieves a user by id.
func (s *Service) GetByID(ctx context.Context, id string) (*domain.User, error) {
	if id == "" {
		return nil, apperrors.InvalidInput("user id is required")
	}

	account, err := s.users.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}

	return &account, nil
}

// findByEmail walks the user index looking for a matching email. Linear, but
// the account base here is tiny.
func (s *Service) findByEmail(ctx context.Context, email string) (*domain.User, error) {
	cursor := ""
	for {
		page, err := s.users.List(ctx, cursor, pagination.MaxLimit)
		if err != nil {
			return nil, fmt.Errorf("list users: %w", err)
		}
		for _, u := range page.Items {
			if strings.EqualFold(u.Email, email) {
				u := u
				return &u, nil
			}
		}
		if page.Next == nil {
			return nil, nil
		}
		cursor = *page.Next
	}
}

// displayName derives a readable name from the email's local part.
func displayName(email string) string {
	local, _, _ := strings.Cut(email, "@")
	words := strings.FieldsFunc(local, func(r rune) bool {
		return r == '.' || r == '_' || r == '-' || r == '+'
	})
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

func newToken() string {
	return uuid.New().String()
}
