package service

import (
	"errors"
	"os"
	"time"

	"github.com/AshokWPD/gold-updated/internal/models"
	"github.com/AshokWPD/gold-updated/internal/repository"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type AuthService struct {
	userRepo repository.UserRepositoryInterface
}

func NewAuthService(userRepo repository.UserRepositoryInterface) *AuthService {
	return &AuthService{userRepo: userRepo}
}

type RegisterInput struct {
	Name           string `json:"name"`
	Email          string `json:"email"`
	Password       string `json:"password"`
	Phone          string `json:"phone"`
	Department     string `json:"department"`
	EmployeeNumber string `json:"employee_number"`
	FCMToken       string `json:"fcm_token"`
}

type LoginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	FCMToken string `json:"fcm_token"`
}

type AuthResponse struct {
	Token string              `json:"token"`
	User  models.UserResponse `json:"user"`
}

func (s *AuthService) Register(input RegisterInput) (*AuthResponse, error) {
	if _, err := s.userRepo.FindByEmail(input.Email); err == nil {
		return nil, ErrEmailTaken
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Name:           input.Name,
		Email:          input.Email,
		PasswordHash:   string(hashedPassword),
		Phone:          input.Phone,
		Department:     input.Department,
		EmployeeNumber: input.EmployeeNumber,
		Role:           models.RoleUser,
		Active:         true,
	}
	if input.FCMToken != "" {
		user.FCMToken = &input.FCMToken
	}

	if err := s.userRepo.Create(user); err != nil {
		return nil, err
	}

	token, err := s.generateToken(user)
	if err != nil {
		return nil, err
	}

	return &AuthResponse{Token: token, User: user.ToResponse()}, nil
}

// Login verifies credentials, refuses inactive accounts and refreshes the
// device token recorded against the user.
func (s *AuthService) Login(input LoginInput) (*AuthResponse, error) {
	user, err := s.userRepo.FindByEmail(input.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	if !user.Active {
		return nil, ErrInactiveAccount
	}

	if input.FCMToken != "" {
		if err := s.userRepo.UpdateFCMToken(user.ID, &input.FCMToken); err != nil {
			return nil, err
		}
	}

	token, err := s.generateToken(user)
	if err != nil {
		return nil, err
	}

	return &AuthResponse{Token: token, User: user.ToResponse()}, nil
}

// Logout clears the device token so the user stops receiving pushes.
func (s *AuthService) Logout(userID uint) error {
	return s.userRepo.UpdateFCMToken(userID, nil)
}

// SetInactive marks the caller's own account inactive; further logins are
// refused until an admin reactivates it.
func (s *AuthService) SetInactive(userID uint) error {
	return s.userRepo.SetActive(userID, false)
}

func (s *AuthService) generateToken(user *models.User) (string, error) {
	claims := jwt.MapClaims{
		"user_id": user.ID,
		"email":   user.Email,
		"role":    string(user.Role),
		"exp":     time.Now().Add(time.Hour * 24 * 7).Unix(), // 7 days
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(os.Getenv("JWT_SECRET")))
}
