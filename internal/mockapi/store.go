// Package mockapi is a local stand-in for the backend register endpoint, used
// for development and end-to-end tests of the wizard.
package mockapi

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/mark3labs/onboard/internal/signup"
)

// ErrEmailTaken is returned when a user with the same email already exists.
var ErrEmailTaken = errors.New("email already exists")

// User is a registered user. PasswordHash is never serialized.
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	FirstName    string    `json:"first_name,omitempty"`
	LastName     string    `json:"last_name,omitempty"`
	JobTitle     string    `json:"job_title,omitempty"`
	CompanyID    string    `json:"company_id"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

// Company is a registered company.
type Company struct {
	ID        string         `json:"id"`
	Name      string         `json:"name"`
	Profile   signup.Payload `json:"-"`
	CreatedAt time.Time      `json:"created_at"`
}

// Store keeps users and companies in memory.
type Store struct {
	mu         sync.RWMutex
	users      map[string]*User // keyed by lower-cased email
	companies  map[string]*Company
	bcryptCost int
}

// NewStore returns an empty store. A zero cost selects bcrypt.DefaultCost.
func NewStore(bcryptCost int) *Store {
	if bcryptCost == 0 {
		bcryptCost = bcrypt.DefaultCost
	}
	return &Store{
		users:      make(map[string]*User),
		companies:  make(map[string]*Company),
		bcryptCost: bcryptCost,
	}
}

func emailKey(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// Register creates a company and its first user. It returns ErrEmailTaken
// when the email is already registered.
func (s *Store) Register(p signup.Payload) (*User, *Company, error) {
	key := emailKey(p.Email)

	hash, err := bcrypt.GenerateFromPassword([]byte(p.Password), s.bcryptCost)
	if err != nil {
		return nil, nil, fmt.Errorf("hashing password: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[key]; ok {
		return nil, nil, ErrEmailTaken
	}

	now := time.Now().UTC()
	company := &Company{
		ID:        uuid.New().String(),
		Name:      strings.TrimSpace(p.CompanyName),
		Profile:   p,
		CreatedAt: now,
	}
	user := &User{
		ID:           uuid.New().String(),
		Email:        strings.TrimSpace(p.Email),
		FirstName:    deref(p.FirstName),
		LastName:     deref(p.LastName),
		JobTitle:     deref(p.JobTitle),
		CompanyID:    company.ID,
		PasswordHash: string(hash),
		CreatedAt:    now,
	}

	s.companies[company.ID] = company
	s.users[key] = user
	return user, company, nil
}

// Authenticate checks an email/password pair against the stored hash.
func (s *Store) Authenticate(email, password string) (*User, bool) {
	s.mu.RLock()
	u, ok := s.users[emailKey(email)]
	s.mu.RUnlock()
	if !ok {
		return nil, false
	}
	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) != nil {
		return nil, false
	}
	return u, true
}

// Company returns the company with id.
func (s *Store) Company(id string) (*Company, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.companies[id]
	return c, ok
}

// Len returns the number of registered users.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.users)
}

// newToken returns an opaque session token: 32 random bytes, base64url,
// prefixed with "onb_".
func newToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("generating token: %w", err)
	}
	return "onb_" + base64.RawURLEncoding.EncodeToString(b), nil
}
