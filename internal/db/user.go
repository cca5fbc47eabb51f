package db

import (
	"errors"
	"strings"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	// ErrEmptyCredentials is returned when a username or password is blank.
	ErrEmptyCredentials = errors.New("username and password are required")
	// ErrInvalidCredentials is returned when a login does not match a user.
	ErrInvalidCredentials = errors.New("invalid username or password")
)

// User 定义了后台管理员账号
type User struct {
	gorm.Model
	Username string `gorm:"unique;not null"`
	Password string `gorm:"not null"`
}

// EnsureUser 存在性检查：若提供的用户名与密码均非空且不存在对应账号，则创建一个 bcrypt 哈希的用户。
func EnsureUser(username, password string) error {
	trimmedUser := strings.TrimSpace(username)
	trimmedPassword := strings.TrimSpace(password)
	if trimmedUser == "" || trimmedPassword == "" {
		return nil
	}

	if DB == nil {
		return errors.New("database not initialized")
	}

	var existing User
	if err := DB.Where("username = ?", trimmedUser).First(&existing).Error; err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		_, err := createUser(DB, trimmedUser, trimmedPassword)
		return err
	}

	return nil
}

// UpsertUser creates the user or resets the password of an existing one.
// It reports whether a new account was created.
func UpsertUser(username, password string) (bool, error) {
	trimmedUser := strings.TrimSpace(username)
	trimmedPassword := strings.TrimSpace(password)
	if trimmedUser == "" || trimmedPassword == "" {
		return false, ErrEmptyCredentials
	}

	if DB == nil {
		return false, errors.New("database not initialized")
	}

	var existing User
	err := DB.Where("username = ?", trimmedUser).First(&existing).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		_, err := createUser(DB, trimmedUser, trimmedPassword)
		return err == nil, err
	case err != nil:
		return false, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(trimmedPassword), bcrypt.DefaultCost)
	if err != nil {
		return false, err
	}
	return false, DB.Model(&existing).Update("password", string(hashed)).Error
}

// Authenticate checks a username and password against the stored bcrypt hash.
func Authenticate(username, password string) (*User, error) {
	if DB == nil {
		return nil, errors.New("database not initialized")
	}

	var user User
	if err := DB.Where("username = ?", strings.TrimSpace(username)).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	return &user, nil
}

func createUser(gdb *gorm.DB, username, password string) (*User, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	user := &User{Username: username, Password: string(hashed)}
	if err := gdb.Create(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}
