package app

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"golang.org/x/crypto/bcrypt"

	"quiz-platform/internal/domain"
)

// UserService covers the minimal user records the result bridge depends on.
// Session handling and token issuance live elsewhere.
type UserService struct {
	users    UserStore
	validate *validator.Validate
	now      func() time.Time
}

func NewUserService(users UserStore) *UserService {
	return &UserService{
		users:    users,
		validate: validator.New(),
		now:      time.Now,
	}
}

// RegisterRequest creates a new user record.
type RegisterRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Name     string `json:"name" validate:"max=100"`
}

// Register stores a user with a bcrypt password hash and the PLAYER role.
func (s *UserService) Register(ctx context.Context, req RegisterRequest) (domain.User, error) {
	if err := s.validate.Struct(req); err != nil {
		return domain.User{}, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return domain.User{}, fmt.Errorf("hash password: %w", err)
	}

	user := domain.User{
		Email:        strings.ToLower(strings.TrimSpace(req.Email)),
		Name:         strings.TrimSpace(req.Name),
		PasswordHash: string(hash),
		Role:         domain.RolePlayer,
		CreatedAt:    s.now().UTC(),
	}
	return s.users.Create(ctx, user)
}

// GetUser returns a user by id.
func (s *UserService) GetUser(ctx context.Context, id int64) (domain.User, error) {
	return s.users.GetByID(ctx, id)
}

// ListUsers returns all users.
func (s *UserService) ListUsers(ctx context.Context) ([]domain.User, error) {
	return s.users.List(ctx)
}
