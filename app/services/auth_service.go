package services

import (
	"errors"
	"fmt"

	"github.com/nikhilmekle/mern-ecommerce-app/app/models"
	"github.com/nikhilmekle/mern-ecommerce-app/app/repositories"
	"github.com/nikhilmekle/mern-ecommerce-app/pkg/auth"
	"gorm.io/gorm"
)

// Sentinel errors the controllers map onto HTTP status codes.
var (
	ErrEmailTaken         = errors.New("email already registered")
	ErrEmailNotFound      = errors.New("email not registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrWrongAnswer        = errors.New("wrong security answer")
)

// RegisterInput is the validated payload for user registration.
type RegisterInput struct {
	Name     string `json:"name"     validate:"required,max=255"`
	Email    string `json:"email"    validate:"required,email,max=255"`
	Password string `json:"password" validate:"required,min=6"`
	Phone    string `json:"phone"    validate:"required,max=50"`
	Address  string `json:"address"  validate:"required,max=500"`
	Answer   string `json:"answer"   validate:"required,max=255"`
}

// AuthService implements registration, login, and password recovery.
type AuthService struct {
	users *repositories.UserRepository
}

func NewAuthService(users *repositories.UserRepository) *AuthService {
	return &AuthService{users: users}
}

// Register creates a new user. Both the password and the security answer
// are stored as bcrypt digests.
func (s *AuthService) Register(in RegisterInput) (models.User, error) {
	taken, err := s.users.ExistsByEmail(in.Email)
	if err != nil {
		return models.User{}, fmt.Errorf("auth: check email: %w", err)
	}
	if taken {
		return models.User{}, ErrEmailTaken
	}

	passwordHash, err := auth.HashPassword(in.Password)
	if err != nil {
		return models.User{}, fmt.Errorf("auth: hash password: %w", err)
	}
	answerHash, err := auth.HashPassword(in.Answer)
	if err != nil {
		return models.User{}, fmt.Errorf("auth: hash answer: %w", err)
	}

	user := models.User{
		Name:     in.Name,
		Email:    in.Email,
		Password: passwordHash,
		Phone:    in.Phone,
		Address:  in.Address,
		Answer:   answerHash,
		Role:     models.RoleUser,
	}
	if err := s.users.Create(&user); err != nil {
		return models.User{}, fmt.Errorf("auth: create user: %w", err)
	}
	return user, nil
}

// Login verifies credentials and returns the user with a signed token.
// Unknown email and wrong password are distinct failures so the controller
// can return 404 vs 401.
func (s *AuthService) Login(email, password string) (models.User, string, error) {
	user, err := s.users.FindByEmail(email)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.User{}, "", ErrEmailNotFound
	}
	if err != nil {
		return models.User{}, "", fmt.Errorf("auth: find user: %w", err)
	}

	if !auth.CheckPassword(user.Password, password) {
		return models.User{}, "", ErrInvalidCredentials
	}

	token, err := auth.GenerateToken(user.ID)
	if err != nil {
		return models.User{}, "", fmt.Errorf("auth: sign token: %w", err)
	}
	return user, token, nil
}

// ResetPassword sets a new password for the user with the given email,
// provided the security answer matches its stored digest.
func (s *AuthService) ResetPassword(email, answer, newPassword string) error {
	user, err := s.users.FindByEmail(email)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrEmailNotFound
	}
	if err != nil {
		return fmt.Errorf("auth: find user: %w", err)
	}

	if !auth.CheckPassword(user.Answer, answer) {
		return ErrWrongAnswer
	}

	hash, err := auth.HashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("auth: hash password: %w", err)
	}
	user.Password = hash
	if err := s.users.Update(&user); err != nil {
		return fmt.Errorf("auth: update password: %w", err)
	}
	return nil
}

// ProfileInput carries optional profile updates. Zero-valued fields keep
// their current values.
type ProfileInput struct {
	Name     string `json:"name"`
	Password string `json:"password"`
	Phone    string `json:"phone"`
	Address  string `json:"address"`
}

// ErrPasswordTooShort rejects profile updates with a sub-6-character password.
var ErrPasswordTooShort = errors.New("password must be at least 6 characters")

// UpdateProfile applies the non-empty fields of in to the user.
func (s *AuthService) UpdateProfile(userID uint, in ProfileInput) (models.User, error) {
	user, err := s.users.FindByID(userID)
	if err != nil {
		return models.User{}, fmt.Errorf("auth: find user: %w", err)
	}

	if in.Password != "" {
		if len(in.Password) < 6 {
			return models.User{}, ErrPasswordTooShort
		}
		hash, err := auth.HashPassword(in.Password)
		if err != nil {
			return models.User{}, fmt.Errorf("auth: hash password: %w", err)
		}
		user.Password = hash
	}
	if in.Name != "" {
		user.Name = in.Name
	}
	if in.Phone != "" {
		user.Phone = in.Phone
	}
	if in.Address != "" {
		user.Address = in.Address
	}

	if err := s.users.Update(&user); err != nil {
		return models.User{}, fmt.Errorf("auth: update profile: %w", err)
	}
	return user, nil
}
