package service

import (
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/benbeisheim/chess-backend/internal/model"
)

// UserService is the in-memory account and session registry.
type UserService struct {
	users    map[string]*model.User // username -> user
	sessions map[string]string      // auth token -> username
	mu       sync.RWMutex
	cost     int
	log      zerolog.Logger
}

func NewUserService(log zerolog.Logger) *UserService {
	return &UserService{
		users:    make(map[string]*model.User),
		sessions: make(map[string]string),
		cost:     bcrypt.DefaultCost,
		log:      log.With().Str("component", "users").Logger(),
	}
}

// Register creates an account and logs it in.
func (us *UserService) Register(username, password, email string) (model.AuthData, error) {
	if username == "" || password == "" {
		return model.AuthData{}, ErrBadRequest
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), us.cost)
	if err != nil {
		return model.AuthData{}, fmt.Errorf("hash password: %w", err)
	}

	us.mu.Lock()
	defer us.mu.Unlock()

	if _, exists := us.users[username]; exists {
		return model.AuthData{}, ErrUsernameTaken
	}
	us.users[username] = &model.User{
		Username:     username,
		PasswordHash: hash,
		Email:        email,
	}
	us.log.Info().Str("user", username).Msg("registered")
	return us.newSession(username), nil
}

// Login checks the password and issues a fresh token.
func (us *UserService) Login(username, password string) (model.AuthData, error) {
	if username == "" || password == "" {
		return model.AuthData{}, ErrBadRequest
	}

	us.mu.Lock()
	defer us.mu.Unlock()

	user, exists := us.users[username]
	if !exists {
		return model.AuthData{}, ErrUnauthorized
	}
	if err := bcrypt.CompareHashAndPassword(user.PasswordHash, []byte(password)); err != nil {
		return model.AuthData{}, ErrUnauthorized
	}
	return us.newSession(username), nil
}

// newSession must be called with mu held.
func (us *UserService) newSession(username string) model.AuthData {
	token := uuid.New().String()
	us.sessions[token] = username
	return model.AuthData{Username: username, AuthToken: token}
}

func (us *UserService) Logout(token string) error {
	us.mu.Lock()
	defer us.mu.Unlock()

	username, ok := us.sessions[token]
	if !ok {
		return ErrUnauthorized
	}
	delete(us.sessions, token)
	us.log.Info().Str("user", username).Msg("logged out")
	return nil
}

// Authenticate returns the username owning token.
func (us *UserService) Authenticate(token string) (string, error) {
	us.mu.RLock()
	defer us.mu.RUnlock()

	username, ok := us.sessions[token]
	if !ok || token == "" {
		return "", ErrUnauthorized
	}
	return username, nil
}

// Clear forgets every user and session.
func (us *UserService) Clear() {
	us.mu.Lock()
	defer us.mu.Unlock()

	us.users = make(map[string]*model.User)
	us.sessions = make(map[string]string)
}
