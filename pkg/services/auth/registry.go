package auth

import (
	"context"
	"fmt"

	"golang.org/x/crypto/bcrypt"
	"gopkg.in/ini.v1"

	"github.com/de-tools/dashboard/pkg/models/domain"
)

const passwordHashKey = "password_hash"

// Registry holds the admin accounts allowed to mutate the dashboard.
type Registry interface {
	GetUsers(ctx context.Context) ([]string, error)
	Verify(ctx context.Context, username, password string) error
}

// iniRegistry reads an INI file with one section per admin:
//
//	[admin]
//	password_hash = $2a$10$...
type iniRegistry struct {
	cfg *ini.File
}

func NewRegistry(path string) (Registry, error) {
	cfg, err := ini.Load(path)
	if err != nil {
		return nil, err
	}
	return &iniRegistry{cfg: cfg}, nil
}

// NewRegistryFromBytes parses registry content held in memory. nil data gives
// a registry with no users.
func NewRegistryFromBytes(data []byte) (Registry, error) {
	if data == nil {
		return &iniRegistry{cfg: ini.Empty()}, nil
	}
	cfg, err := ini.Load(data)
	if err != nil {
		return nil, err
	}
	return &iniRegistry{cfg: cfg}, nil
}

func (r *iniRegistry) GetUsers(_ context.Context) ([]string, error) {
	var users []string
	for _, section := range r.cfg.Sections() {
		if section.HasKey(passwordHashKey) {
			users = append(users, section.Name())
		}
	}
	return users, nil
}

func (r *iniRegistry) Verify(_ context.Context, username, password string) error {
	if username == "" || username == ini.DefaultSection {
		return domain.ErrUnauthorized
	}

	section, err := r.cfg.GetSection(username)
	if err != nil {
		return domain.ErrUnauthorized
	}

	hash := section.Key(passwordHashKey).String()
	if hash == "" {
		return domain.ErrUnauthorized
	}

	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)); err != nil {
		return domain.ErrUnauthorized
	}
	return nil
}

// HashPassword returns the bcrypt hash to store as password_hash.
func HashPassword(password string) (string, error) {
	if password == "" {
		return "", fmt.Errorf("password is empty")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}
