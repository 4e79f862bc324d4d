package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/infpro/storefront-api/apperrors"
	"github.com/infpro/storefront-api/models"
	"github.com/infpro/storefront-api/store"
	"golang.org/x/crypto/bcrypt"
)

const (
	msgIncomplete         = "name, email and password are required"
	msgEmailTaken         = "email already registered"
	msgInvalidCredentials = "invalid credentials"
)

// Service registers and logs in users against the users collection.
type Service struct {
	users      store.Collection[models.User]
	secret     []byte
	now        func() time.Time
	bcryptCost int
	compare    func(hash, password []byte) error

	// dummyHash is compared against on unknown emails so both login failures
	// cost one bcrypt comparison.
	dummyOnce sync.Once
	dummyHash []byte
}

type Option func(*Service)

// WithClock overrides time.Now for token issuance and timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// WithBcryptCost lowers the hashing cost, for tests.
func WithBcryptCost(cost int) Option {
	return func(s *Service) { s.bcryptCost = cost }
}

func NewService(users store.Collection[models.User], secret string, opts ...Option) *Service {
	s := &Service{
		users:      users,
		secret:     []byte(secret),
		now:        time.Now,
		bcryptCost: 10,
		compare:    bcrypt.CompareHashAndPassword,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Register creates a user and returns a session token for it. Emails are
// compared exactly; a taken email leaves the collection untouched.
func (s *Service) Register(ctx context.Context, name, email, password string) (models.AuthResponse, error) {
	const op = "auth.Register"

	if strings.TrimSpace(name) == "" || strings.TrimSpace(email) == "" || password == "" {
		return models.AuthResponse{}, apperrors.Validation(op, msgIncomplete)
	}

	users, err := s.users.Load(ctx)
	if err != nil {
		return models.AuthResponse{}, fmt.Errorf("%s: %w", op, err)
	}
	if _, ok := findByEmail(users, email); ok {
		return models.AuthResponse{}, apperrors.Conflict(op, msgEmailTaken)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	if err != nil {
		return models.AuthResponse{}, fmt.Errorf("%s: hash password: %w", op, err)
	}

	user := models.User{
		ID:           uuid.NewString(),
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
		CreatedAt:    s.now().UTC(),
	}
	users = append(users, user)
	if err := s.users.Save(ctx, users); err != nil {
		return models.AuthResponse{}, fmt.Errorf("%s: %w", op, err)
	}

	slog.InfoContext(ctx, "user registered", "user_id", user.ID)
	return s.respond(user)
}

// Login checks the password for email. Unknown emails and wrong passwords
// produce the same error.
func (s *Service) Login(ctx context.Context, email, password string) (models.AuthResponse, error) {
	const op = "auth.Login"

	users, err := s.users.Load(ctx)
	if err != nil {
		return models.AuthResponse{}, fmt.Errorf("%s: %w", op, err)
	}

	user, ok := findByEmail(users, email)
	if !ok {
		_ = s.compare(s.unknownUserHash(), []byte(password))
		return models.AuthResponse{}, apperrors.Auth(op, msgInvalidCredentials)
	}
	err = s.compare([]byte(user.PasswordHash), []byte(password))
	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		return models.AuthResponse{}, apperrors.Auth(op, msgInvalidCredentials)
	}
	if err != nil {
		// Corrupt hash on disk; still answer like a bad password.
		slog.ErrorContext(ctx, "compare password hash", "user_id", user.ID, "error", err)
		return models.AuthResponse{}, apperrors.Auth(op, msgInvalidCredentials)
	}

	return s.respond(user)
}

func (s *Service) unknownUserHash() []byte {
	s.dummyOnce.Do(func() {
		hash, err := bcrypt.GenerateFromPassword([]byte("storefront-unknown-user"), s.bcryptCost)
		if err != nil {
			slog.Error("generate dummy password hash", "error", err)
			return
		}
		s.dummyHash = hash
	})
	return s.dummyHash
}

// FindUser returns the user with the given id.
func (s *Service) FindUser(ctx context.Context, id string) (models.User, error) {
	users, err := s.users.Load(ctx)
	if err != nil {
		return models.User{}, fmt.Errorf("auth.FindUser: %w", err)
	}
	for _, u := range users {
		if u.ID == id {
			return u, nil
		}
	}
	return models.User{}, apperrors.NotFound("auth.FindUser", "user not found")
}

// ListUsers returns the public view of every registered user, newest first.
func (s *Service) ListUsers(ctx context.Context) ([]models.PublicUser, error) {
	users, err := s.users.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("auth.ListUsers: %w", err)
	}
	out := make([]models.PublicUser, 0, len(users))
	for i := len(users) - 1; i >= 0; i-- {
		out = append(out, users[i].Public())
	}
	return out, nil
}

func (s *Service) respond(user models.User) (models.AuthResponse, error) {
	token, err := s.IssueToken(user)
	if err != nil {
		return models.AuthResponse{}, err
	}
	return models.AuthResponse{Token: token, User: user.Public()}, nil
}

func findByEmail(users []models.User, email string) (models.User, bool) {
	for _, u := range users {
		if u.Email == email {
			return u, true
		}
	}
	return models.User{}, false
}
