// Package testutil provides shared test fixtures.
package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/acuhub/portal/core"
	"github.com/acuhub/portal/core/user"
)

// NewConfig returns a config suitable for tests; no environment is consulted.
func NewConfig() *core.Config {
	return &core.Config{
		Debug:           true,
		TestMode:        true,
		Env:             "TEST",
		Build:           "test",
		AppName:         "ACUPortal",
		SecretKey:       []byte("test-secret-key-do-not-use"),
		FrontendBaseURL: "http://localhost:3000",
		Server: core.ServerConfig{
			Host:               "localhost",
			Addr:               ":0",
			JWTExpirationDelta: 7 * 24 * time.Hour,
			ShutdownTimeout:    5 * time.Second,
			CookieName:         "auth-token",
		},
		Upload: core.UploadConfig{
			Dir:     "",
			MaxSize: 10 << 20,
		},
	}
}

// CreateUser persists an account directly through the repository.
func CreateUser(
	t *testing.T,
	repo user.Repository,
	name, email, matric, pwd, role string,
	isActive bool,
	createdAt ...time.Time,
) user.User {
	t.Helper()

	now := time.Now().UTC()
	if len(createdAt) > 0 {
		now = createdAt[0].UTC()
	}
	usr := user.User{
		Name:       name,
		Email:      email,
		Department: "Computer Science",
		Role:       role,
		IsActive:   isActive,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if matric != "" {
		usr.MatricNumber.SetValid(matric)
	}
	if err := usr.SetPassword(pwd); err != nil {
		t.Fatalf("SetPassword(): %v", err)
	}

	usr, err := repo.CreateUser(context.Background(), usr)
	if err != nil {
		t.Fatalf("CreateUser(): %v", err)
	}
	return usr
}
