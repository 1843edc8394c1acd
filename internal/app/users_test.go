package app_test

import (
	"context"
	"errors"
	"testing"

	"golang.org/x/crypto/bcrypt"

	"quiz-platform/internal/app"
	"quiz-platform/internal/domain"
	"quiz-platform/internal/infra/memory"
)

func TestRegisterHashesPassword(t *testing.T) {
	ctx := context.Background()
	service := app.NewUserService(memory.NewUserStore())

	user, err := service.Register(ctx, app.RegisterRequest{Email: "Player@Example.com", Password: "hunter22", Name: "Player"})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if user.Email != "player@example.com" {
		t.Fatalf("expected lowercased email, got %s", user.Email)
	}
	if user.Role != domain.RolePlayer {
		t.Fatalf("expected PLAYER role, got %s", user.Role)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("hunter22")); err != nil {
		t.Fatalf("stored hash does not match password: %v", err)
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	ctx := context.Background()
	service := app.NewUserService(memory.NewUserStore())

	if _, err := service.Register(ctx, app.RegisterRequest{Email: "a@example.com", Password: "hunter22"}); err != nil {
		t.Fatalf("first register: %v", err)
	}
	_, err := service.Register(ctx, app.RegisterRequest{Email: "A@example.com", Password: "hunter22"})
	if !errors.Is(err, domain.ErrEmailTaken) {
		t.Fatalf("expected ErrEmailTaken, got %v", err)
	}
}

func TestRegisterValidation(t *testing.T) {
	service := app.NewUserService(memory.NewUserStore())
	ctx := context.Background()

	cases := []app.RegisterRequest{
		{Email: "", Password: "hunter22"},
		{Email: "bad", Password: "hunter22"},
		{Email: "a@example.com", Password: "short"},
	}
	for _, req := range cases {
		if _, err := service.Register(ctx, req); !errors.Is(err, domain.ErrValidation) {
			t.Fatalf("%+v: expected ErrValidation, got %v", req, err)
		}
	}
}
