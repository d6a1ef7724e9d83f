package services

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"quiz-portal-system/models"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// AuthService is the identity collaborator: account registration, credential
// checks, and session token issue/resolve. Game components never touch it;
// they only see the user id the middleware resolved.
type AuthService struct {
	DB         *gorm.DB
	SessionTTL time.Duration
}

func NewAuthService(db *gorm.DB, sessionTTL time.Duration) *AuthService {
	return &AuthService{DB: db, SessionTTL: sessionTTL}
}

// Register creates an account with a bcrypt-hashed password and returns the
// new user id.
func (s *AuthService) Register(username, password string) (uint, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return 0, fmt.Errorf("%w: username and password required", ErrInvalidInput)
	}

	var existing models.User
	err := s.DB.Where("username = ?", username).First(&existing).Error
	if err == nil {
		return 0, ErrUsernameTaken
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return 0, err
	}

	user := models.User{Username: username, PasswordHash: string(hash)}
	if err := s.DB.Create(&user).Error; err != nil {
		// a concurrent register can still trip the unique constraint
		return 0, ErrUsernameTaken
	}

	log.Printf("👤 user %d registered: %s", user.ID, username)
	return user.ID, nil
}

// Authenticate checks the credentials and returns the user id. Unknown users
// and wrong passwords are indistinguishable to the caller.
func (s *AuthService) Authenticate(username, password string) (uint, error) {
	var user models.User
	err := s.DB.Where("username = ?", strings.TrimSpace(username)).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, ErrInvalidCredentials
	}
	if err != nil {
		return 0, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return 0, ErrInvalidCredentials
	}
	return user.ID, nil
}

// IssueSession creates a fresh session token for the user.
func (s *AuthService) IssueSession(userID uint) (*models.Session, error) {
	sess := &models.Session{
		Token:     uuid.NewString(),
		UserID:    userID,
		ExpiresAt: time.Now().Add(s.SessionTTL),
	}
	if err := s.DB.Create(sess).Error; err != nil {
		return nil, err
	}
	return sess, nil
}

// ResolveSession maps a token to its user id. Expired tokens are rejected
// here and physically removed later by the cleanup worker.
func (s *AuthService) ResolveSession(token string) (uint, error) {
	if token == "" {
		return 0, ErrInvalidCredentials
	}
	var sess models.Session
	err := s.DB.Where("token = ?", token).First(&sess).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, ErrInvalidCredentials
	}
	if err != nil {
		return 0, err
	}
	if time.Now().After(sess.ExpiresAt) {
		return 0, ErrInvalidCredentials
	}
	return sess.UserID, nil
}

// RevokeSession drops the token; resolving it afterwards fails.
func (s *AuthService) RevokeSession(token string) error {
	return s.DB.Where("token = ?", token).Delete(&models.Session{}).Error
}
