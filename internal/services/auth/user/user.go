package user

import (
	"fmt"
	"net/mail"
	"regexp"
	"strconv"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	apperrors "github.com/orbitwatch/missioncontrol/internal/platform/errors"
	platformi18n "github.com/orbitwatch/missioncontrol/internal/platform/i18n"
	"github.com/orbitwatch/missioncontrol/internal/platform/id"
)

// MinPasswordLength is the shortest accepted password.
const MinPasswordLength = 8

// maxPasswordBytes is bcrypt's input limit.
const maxPasswordBytes = 72

var (
	// ErrEmptyUsername indicates a missing username.
	ErrEmptyUsername = apperrors.New(apperrors.CodeUserEmptyUsername, "username is required")
	// ErrInvalidUsername indicates a username that does not match the required format.
	ErrInvalidUsername = apperrors.New(apperrors.CodeUserInvalidUsername, "username must be 3-32 lowercase alphanumeric, dash, or underscore characters")
	// ErrInvalidEmail indicates an unparseable email address.
	ErrInvalidEmail = apperrors.New(apperrors.CodeUserInvalidEmail, "email is invalid")
	// ErrWeakPassword indicates a password outside the accepted length.
	ErrWeakPassword = apperrors.WithMetadata(apperrors.CodeUserWeakPassword, "password is too short", map[string]string{
		"Min": strconv.Itoa(MinPasswordLength),
	})
	// ErrInvalidCredentials indicates a username/password mismatch.
	ErrInvalidCredentials = apperrors.New(apperrors.CodeInvalidCredentials, "invalid credentials")

	usernamePattern = regexp.MustCompile(`^[a-z0-9_\-]{3,32}$`)
)

// User represents an authenticated identity record.
type User struct {
	ID           string
	Username     string
	Email        string
	DisplayName  string
	Locale       string
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// CreateUserInput describes the metadata needed to create a user.
type CreateUserInput struct {
	Username    string
	Email       string
	Password    string
	DisplayName string
	Locale      string
}

// ValidateUsername enforces canonical username constraints.
func ValidateUsername(s string) error {
	if !usernamePattern.MatchString(s) {
		return ErrInvalidUsername
	}
	return nil
}

// NormalizeEmail lowercases and validates a bare email address.
func NormalizeEmail(s string) (string, error) {
	trimmed := strings.ToLower(strings.TrimSpace(s))
	if trimmed == "" {
		return "", ErrInvalidEmail
	}
	addr, err := mail.ParseAddress(trimmed)
	if err != nil || addr.Address != trimmed || addr.Name != "" {
		return "", ErrInvalidEmail
	}
	return trimmed, nil
}

// ValidatePassword enforces the password length policy.
func ValidatePassword(password string) error {
	if len(password) < MinPasswordLength || len(password) > maxPasswordBytes {
		return ErrWeakPassword
	}
	return nil
}

// HashPassword returns the bcrypt hash of password.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

// CheckPassword compares password against the user's stored hash.
func (u User) CheckPassword(password string) error {
	if u.PasswordHash == "" {
		return ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return ErrInvalidCredentials
	}
	return nil
}

// CreateUser creates a durable user identity from validated input.
func CreateUser(input CreateUserInput, now func() time.Time, idGenerator func() (string, error)) (User, error) {
	if now == nil {
		now = time.Now
	}
	if idGenerator == nil {
		idGenerator = id.NewID
	}

	normalized, err := NormalizeCreateUserInput(input)
	if err != nil {
		return User{}, err
	}

	userID, err := idGenerator()
	if err != nil {
		return User{}, fmt.Errorf("generate user id: %w", err)
	}
	hash, err := HashPassword(normalized.Password)
	if err != nil {
		return User{}, err
	}

	createdAt := now().UTC()
	return User{
		ID:           userID,
		Username:     normalized.Username,
		Email:        normalized.Email,
		DisplayName:  normalized.DisplayName,
		Locale:       normalized.Locale,
		PasswordHash: hash,
		CreatedAt:    createdAt,
		UpdatedAt:    createdAt,
	}, nil
}

// NormalizeCreateUserInput trims and normalizes input before validation.
// The display name defaults to the username.
func NormalizeCreateUserInput(input CreateUserInput) (CreateUserInput, error) {
	input.Username = strings.ToLower(strings.TrimSpace(input.Username))
	if input.Username == "" {
		return CreateUserInput{}, ErrEmptyUsername
	}
	if err := ValidateUsername(input.Username); err != nil {
		return CreateUserInput{}, err
	}
	email, err := NormalizeEmail(input.Email)
	if err != nil {
		return CreateUserInput{}, err
	}
	input.Email = email
	if err := ValidatePassword(input.Password); err != nil {
		return CreateUserInput{}, err
	}
	input.DisplayName = strings.TrimSpace(input.DisplayName)
	if input.DisplayName == "" {
		input.DisplayName = input.Username
	}
	input.Locale = NormalizeLocale(input.Locale)
	return input, nil
}

// NormalizeLocale maps a language value to a supported locale string.
func NormalizeLocale(value string) string {
	if tag, ok := platformi18n.ParseTag(value); ok {
		return tag.String()
	}
	return platformi18n.DefaultTag().String()
}
