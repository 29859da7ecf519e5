package services

import (
	"testing"

	"github.com/vialtech/rutalerta/config"
	errs "github.com/vialtech/rutalerta/errors"
	"github.com/vialtech/rutalerta/models"
	"golang.org/x/crypto/bcrypt"
)

func TestSignupHashesPassword(t *testing.T) {
	repo := &fakeAuthRepo{}
	svc := NewAuthService(repo, &config.Config{JWTSecret: "s"})

	created, err := svc.SignupUser(&models.User{
		Username: "ana",
		Email:    "Ana@Example.COM",
		Password: "secret123",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if created.Password != "" {
		t.Error("plaintext password must be cleared")
	}
	if created.HashedPassword == "" || created.HashedPassword == "secret123" {
		t.Error("password must be stored hashed")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(created.HashedPassword), []byte("secret123")); err != nil {
		t.Error("hash does not verify against original password")
	}
	if created.Email != "ana@example.com" {
		t.Errorf("email = %q, want lowercased", created.Email)
	}
}

func TestSignupRejectsTakenEmail(t *testing.T) {
	repo := &fakeAuthRepo{emailErr: errs.ErrEmailTaken}
	svc := NewAuthService(repo, &config.Config{})

	_, err := svc.SignupUser(&models.User{Username: "ana", Email: "a@b.com", Password: "secret123"})
	if !errs.Is(err, errs.ErrEmailTaken) {
		t.Errorf("got %v, want ErrEmailTaken", err)
	}
	if repo.created != nil {
		t.Error("user must not be created on taken email")
	}
}

func TestSignupRejectsShortPassword(t *testing.T) {
	svc := NewAuthService(&fakeAuthRepo{}, &config.Config{})
	_, err := svc.SignupUser(&models.User{Username: "ana", Email: "a@b.com", Password: "abc"})
	if err == nil {
		t.Fatal("expected password validation error")
	}
	if errs.StatusOf(err) != 400 {
		t.Errorf("status = %d, want 400", errs.StatusOf(err))
	}
}

func TestLoginWrongPassword(t *testing.T) {
	hashed, _ := bcrypt.GenerateFromPassword([]byte("secret123"), bcrypt.DefaultCost)
	user := &models.User{Username: "ana", HashedPassword: string(hashed)}
	svc := NewAuthService(&fakeAuthRepo{user: user}, &config.Config{JWTSecret: "s"})

	_, err := svc.LoginUser(&models.LoginRequest{Email: "a@b.com", Password: "nope"})
	if !errs.Is(err, errs.ErrUnauthorized) {
		t.Errorf("got %v, want ErrUnauthorized", err)
	}
}

func TestLoginUnknownEmail(t *testing.T) {
	svc := NewAuthService(&fakeAuthRepo{err: errs.ErrUserNotFound}, &config.Config{JWTSecret: "s"})
	_, err := svc.LoginUser(&models.LoginRequest{Email: "a@b.com", Password: "secret123"})
	if !errs.Is(err, errs.ErrUnauthorized) {
		t.Errorf("got %v, want ErrUnauthorized (not a user-enumeration hint)", err)
	}
}

func TestLoginIssuesToken(t *testing.T) {
	hashed, _ := bcrypt.GenerateFromPassword([]byte("secret123"), bcrypt.DefaultCost)
	user := &models.User{Username: "ana", HashedPassword: string(hashed), Reputation: 30}
	user.ID = 5
	svc := NewAuthService(&fakeAuthRepo{user: user}, &config.Config{JWTSecret: "s"})

	resp, err := svc.LoginUser(&models.LoginRequest{Email: "a@b.com", Password: "secret123"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.AccessToken == "" || resp.TokenType != "bearer" {
		t.Errorf("response = %+v", resp)
	}
	if resp.UserID != 5 || resp.Reputation != 30 {
		t.Errorf("response = %+v", resp)
	}
}
