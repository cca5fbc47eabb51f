package db

import (
	"errors"
	"path/filepath"
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func setupTestDB(t *testing.T) {
	t.Helper()
	if err := Init(filepath.Join(t.TempDir(), "nested", "folio.db")); err != nil {
		t.Fatalf("failed to init db: %v", err)
	}
	t.Cleanup(func() {
		Close()
		DB = nil
	})
}

func TestEnsureUserCreatesOnce(t *testing.T) {
	setupTestDB(t)

	if err := EnsureUser(" admin ", "secret"); err != nil {
		t.Fatalf("ensure failed: %v", err)
	}
	if err := EnsureUser("admin", "other"); err != nil {
		t.Fatalf("second ensure failed: %v", err)
	}

	var users []User
	if err := DB.Find(&users).Error; err != nil {
		t.Fatalf("query failed: %v", err)
	}
	if len(users) != 1 || users[0].Username != "admin" {
		t.Fatalf("expected one admin user, got %+v", users)
	}
	if bcrypt.CompareHashAndPassword([]byte(users[0].Password), []byte("secret")) != nil {
		t.Fatalf("existing password should be kept")
	}
}

func TestEnsureUserSkipsBlankCredentials(t *testing.T) {
	setupTestDB(t)

	if err := EnsureUser("", "secret"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var count int64
	DB.Model(&User{}).Count(&count)
	if count != 0 {
		t.Fatalf("expected no users, got %d", count)
	}
}

func TestUpsertUserResetsPassword(t *testing.T) {
	setupTestDB(t)

	created, err := UpsertUser("admin", "first")
	if err != nil || !created {
		t.Fatalf("expected creation, got %v %v", created, err)
	}
	created, err = UpsertUser("admin", "second")
	if err != nil || created {
		t.Fatalf("expected update, got %v %v", created, err)
	}

	var user User
	if err := DB.Where("username = ?", "admin").First(&user).Error; err != nil {
		t.Fatalf("query failed: %v", err)
	}
	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte("second")) != nil {
		t.Fatalf("password was not reset")
	}

	if _, err := UpsertUser(" ", "x"); !errors.Is(err, ErrEmptyCredentials) {
		t.Fatalf("expected ErrEmptyCredentials, got %v", err)
	}
}

func TestAuthenticate(t *testing.T) {
	setupTestDB(t)

	if _, err := UpsertUser("admin", "secret"); err != nil {
		t.Fatalf("upsert failed: %v", err)
	}

	user, err := Authenticate(" admin ", "secret")
	if err != nil || user.Username != "admin" {
		t.Fatalf("expected admin, got %+v %v", user, err)
	}
	if _, err := Authenticate("admin", "wrong"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for bad password, got %v", err)
	}
	if _, err := Authenticate("nobody", "secret"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for unknown user, got %v", err)
	}
}
