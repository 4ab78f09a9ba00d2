package service

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"

	"golang.org/x/crypto/bcrypt"

	"wordreader/internal/domain"
	"wordreader/internal/repository"
)

// Storage keys
const (
	UsersKey       = "users"
	CurrentUserKey = "currentUser"
)

// AuthService handles sign-up, login and the logged-in marker
type AuthService struct {
	repo       repository.KeyValueRepository
	currentKey string
	cost       int
	// usersMu serializes updates of the users key; scoped copies share it
	usersMu *sync.Mutex
}

// NewAuthService creates a new auth service using the shared
// "currentUser" marker
func NewAuthService(repo repository.KeyValueRepository) *AuthService {
	return &AuthService{
		repo:       repo,
		currentKey: CurrentUserKey,
		cost:       bcrypt.DefaultCost,
		usersMu:    &sync.Mutex{},
	}
}

// Scoped returns a service sharing the user store but keeping its own
// logged-in marker. An empty scope keeps the shared marker.
func (s *AuthService) Scoped(scope string) *AuthService {
	scoped := *s
	if scope != "" {
		scoped.currentKey = CurrentUserKey + "_" + scope
	}
	return &scoped
}

// SignUp registers a new user
func (s *AuthService) SignUp(email, password string) error {
	email, password = strings.TrimSpace(email), strings.TrimSpace(password)
	if email == "" || password == "" {
		return domain.ErrCredentialsRequired
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	s.usersMu.Lock()
	defer s.usersMu.Unlock()

	users, err := s.users()
	if err != nil {
		return err
	}
	if _, exists := users[email]; exists {
		return domain.ErrUserExists
	}
	users[email] = domain.Credential{Password: string(hash)}

	encoded, err := json.Marshal(users)
	if err != nil {
		return fmt.Errorf("failed to encode users: %w", err)
	}
	if err := s.repo.Set(UsersKey, string(encoded)); err != nil {
		return fmt.Errorf("failed to save users: %w", err)
	}
	return nil
}

// Login checks the credentials and marks email as logged in
func (s *AuthService) Login(email, password string) error {
	email, password = strings.TrimSpace(email), strings.TrimSpace(password)

	users, err := s.users()
	if err != nil {
		return err
	}
	cred, ok := users[email]
	if !ok {
		return domain.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(cred.Password), []byte(password)); err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return domain.ErrInvalidCredentials
		}
		return fmt.Errorf("failed to check password: %w", err)
	}

	if err := s.repo.Set(s.currentKey, email); err != nil {
		return fmt.Errorf("failed to save login: %w", err)
	}
	return nil
}

// CurrentUser returns the logged-in email, if any
func (s *AuthService) CurrentUser() (string, bool, error) {
	email, ok, err := s.repo.Get(s.currentKey)
	if err != nil {
		return "", false, fmt.Errorf("failed to read login: %w", err)
	}
	return email, ok && email != "", nil
}

// Logout clears the logged-in marker and returns who was logged in
func (s *AuthService) Logout() (string, error) {
	email, ok, err := s.CurrentUser()
	if err != nil {
		return "", err
	}
	if !ok {
		return "", domain.ErrNotLoggedIn
	}
	if err := s.repo.Delete(s.currentKey); err != nil {
		return "", fmt.Errorf("failed to clear login: %w", err)
	}
	return email, nil
}

func (s *AuthService) users() (domain.Credentials, error) {
	value, ok, err := s.repo.Get(UsersKey)
	if err != nil {
		return nil, fmt.Errorf("failed to read users: %w", err)
	}

	users := domain.Credentials{}
	if !ok || value == "" {
		return users, nil
	}
	if err := json.Unmarshal([]byte(value), &users); err != nil {
		return nil, fmt.Errorf("failed to decode users: %w", err)
	}
	return users, nil
}
