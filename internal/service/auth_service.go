package service

import (
	"context"
	"errors"
	"strings"
	"unicode"
	"unicode/utf8"

	"taskboard/internal/domain"
	"taskboard/internal/logger"

	"golang.org/x/crypto/bcrypt"
)

const passwordMinLength = 8

type UserRepository interface {
	Create(ctx context.Context, u *domain.User) error
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
	Delete(ctx context.Context, id int64) error
}

// RegisterInput is the submitted registration form.
type RegisterInput struct {
	Username  string
	Password1 string
	Password2 string
}

type AuthService struct {
	users     UserRepository
	hashCost  int
	dummyHash []byte
}

func NewAuthService(users UserRepository) *AuthService {
	return NewAuthServiceWithCost(users, bcrypt.DefaultCost)
}

// NewAuthServiceWithCost lets tests use bcrypt.MinCost.
func NewAuthServiceWithCost(users UserRepository, cost int) *AuthService {
	dummy, _ := bcrypt.GenerateFromPassword([]byte("taskboard-dummy-password"), cost)
	return &AuthService{users: users, hashCost: cost, dummyHash: dummy}
}

// Register validates the form, hashes the password and creates the user.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*domain.User, error) {
	ve := &domain.ValidationError{}
	validateUsername(ve, in.Username)

	switch {
	case in.Password1 == "":
		ve.Add("password1", "This field is required.")
	case utf8.RuneCountInString(in.Password1) < passwordMinLength:
		ve.Add("password1", "This password is too short. It must contain at least 8 characters.")
	case isAllDigits(in.Password1):
		ve.Add("password1", "This password is entirely numeric.")
	case strings.EqualFold(in.Password1, in.Username):
		ve.Add("password1", "The password is too similar to the username.")
	}
	if in.Password2 == "" {
		ve.Add("password2", "This field is required.")
	} else if in.Password1 != in.Password2 {
		ve.Add("password2", "The two password fields didn't match.")
	}
	if err := ve.Err(); err != nil {
		return nil, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(in.Password1), s.hashCost)
	if err != nil {
		logger.Error("failed to hash password", "error", err)
		return nil, err
	}

	u := &domain.User{Username: in.Username, PasswordHash: string(hashed)}
	if err := s.users.Create(ctx, u); err != nil {
		if errors.Is(err, domain.ErrUsernameTaken) {
			return nil, domain.NewValidationError("username", "A user with that username already exists.")
		}
		logger.Error("failed to create user", "error", err, "username", in.Username)
		return nil, err
	}

	logger.Info("user registered", "user_id", u.ID, "username", u.Username)
	return u, nil
}

// Authenticate checks the credentials. Unknown user and wrong password fail the same way.
func (s *AuthService) Authenticate(ctx context.Context, username, password string) (*domain.User, error) {
	if username == "" || password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	u, err := s.users.GetByUsername(ctx, username)
	if errors.Is(err, domain.ErrNotFound) {
		// keep timing close to the wrong-password path
		_ = bcrypt.CompareHashAndPassword(s.dummyHash, []byte(password))
		logger.Warn("login failed - unknown username", "username", username)
		return nil, domain.ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		logger.Warn("login failed - invalid password", "user_id", u.ID)
		return nil, domain.ErrInvalidCredentials
	}

	logger.Info("user logged in", "user_id", u.ID)
	return u, nil
}

// CurrentUser resolves a session's user id. A deleted user is unauthenticated.
func (s *AuthService) CurrentUser(ctx context.Context, userID int64) (*domain.User, error) {
	u, err := s.users.GetByID(ctx, userID)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, domain.ErrUnauthenticated
	}
	if err != nil {
		return nil, err
	}
	return u, nil
}

// DeleteUser removes the account together with all of its tasks.
func (s *AuthService) DeleteUser(ctx context.Context, userID int64) error {
	if err := s.users.Delete(ctx, userID); err != nil {
		return err
	}
	logger.Info("user deleted", "user_id", userID)
	return nil
}

func validateUsername(ve *domain.ValidationError, username string) {
	if username == "" {
		ve.Add("username", "This field is required.")
		return
	}
	if utf8.RuneCountInString(username) > domain.UsernameMaxLength {
		ve.Add("username", "Ensure this value has at most 150 characters.")
		return
	}
	for _, r := range username {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) && !strings.ContainsRune("@.+-_", r) {
			ve.Add("username", "Enter a valid username. This value may contain only letters, numbers, and @/./+/-/_ characters.")
			return
		}
	}
}

func isAllDigits(s string) bool {
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return s != ""
}
