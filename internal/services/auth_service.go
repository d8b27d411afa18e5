package services

import (
	"errors"
	"fmt"
	"log"
	"time"

	"warung/internal/models"
	"warung/internal/repositories"

	"github.com/dgrijalva/jwt-go"
	"golang.org/x/crypto/bcrypt"
)

// AccountInfo is the sanitized account view returned to clients. It covers
// both customer and delivery-person accounts and never carries password
// material.
type AccountInfo struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Address string `json:"address,omitempty"`
	Role    string `json:"role"`
}

// AuthService handles registration, login and token validation. Customers
// and delivery men live in separate tables but form a single identity space
// for login purposes.
type AuthService struct {
	userRepo     repositories.UserRepository
	deliveryRepo repositories.DeliveryManRepository
	jwtSecret    []byte
	tokenDurat   time.Duration // Duration for which JWT is valid
}

// NewAuthService creates a new AuthService.
func NewAuthService(userRepo repositories.UserRepository, deliveryRepo repositories.DeliveryManRepository, jwtSecret string) *AuthService {
	return &AuthService{
		userRepo:     userRepo,
		deliveryRepo: deliveryRepo,
		jwtSecret:    []byte(jwtSecret),
		tokenDurat:   24 * time.Hour, // Token valid for 24 hours
	}
}

// RegisterUser registers a new customer, hashes the password and stores the
// account. The plaintext password is never persisted.
func (s *AuthService) RegisterUser(user *models.User) error {
	if existing, err := s.userRepo.GetByEmail(user.Email); err == nil && existing != nil {
		return fmt.Errorf("email '%s' already registered: %w", user.Email, models.ErrConflict)
	}
	if existing, err := s.userRepo.GetByPhone(user.Phone); err == nil && existing != nil {
		return fmt.Errorf("phone '%s' already registered: %w", user.Phone, models.ErrConflict)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(user.Password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	user.Password = string(hashedPassword)
	if user.Role == "" {
		user.Role = models.RoleUser
	}

	if err := s.userRepo.Create(user); err != nil {
		return fmt.Errorf("failed to register user: %w", err)
	}
	return nil
}

// Login authenticates an account by email, checking the customer table first
// and falling back to the delivery-man table. On success it returns a signed
// token and the sanitized account record.
func (s *AuthService) Login(email, password string) (string, *AccountInfo, error) {
	account, hash, err := s.findAccount(email)
	if err != nil {
		return "", nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)); err != nil {
		return "", nil, fmt.Errorf("invalid credentials: %w", models.ErrInvalidCredentials)
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": account.ID,
		"role":    account.Role,
		"exp":     time.Now().Add(s.tokenDurat).Unix(), // Token expiration time
		"iat":     time.Now().Unix(),                   // Issued at time
	})

	tokenString, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return "", nil, fmt.Errorf("failed to generate token: %w", err)
	}

	return tokenString, account, nil
}

// Profile returns the caller's own sanitized account record.
func (s *AuthService) Profile(accountID string) (*AccountInfo, error) {
	if user, err := s.userRepo.GetByID(accountID); err == nil {
		return userInfo(user), nil
	} else if !errors.Is(err, models.ErrNotFound) {
		return nil, err
	}

	man, err := s.deliveryRepo.GetByID(accountID)
	if err != nil {
		return nil, err
	}
	return deliveryManInfo(man), nil
}

// ValidateToken parses and validates a JWT token, returning the claims if valid.
func (s *AuthService) ValidateToken(tokenString string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		// Validate the alg is what we expect:
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.jwtSecret, nil
	})
	if err != nil {
		log.Printf("Token validation error: %v", err)
		return nil, fmt.Errorf("invalid token: %w", err)
	}

	if claims, ok := token.Claims.(jwt.MapClaims); ok && token.Valid {
		return claims, nil
	}

	return nil, fmt.Errorf("invalid token")
}

// findAccount resolves an email against both account tables. The password
// hash is returned separately so AccountInfo stays free of it.
func (s *AuthService) findAccount(email string) (*AccountInfo, string, error) {
	if user, err := s.userRepo.GetByEmail(email); err == nil {
		return userInfo(user), user.Password, nil
	} else if !errors.Is(err, models.ErrNotFound) {
		return nil, "", err
	}

	man, err := s.deliveryRepo.GetByEmail(email)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil, "", fmt.Errorf("user with email %s: %w", email, models.ErrNotFound)
		}
		return nil, "", err
	}
	return deliveryManInfo(man), man.Password, nil
}

func userInfo(user *models.User) *AccountInfo {
	return &AccountInfo{
		ID:      user.ID,
		Name:    user.FirstName + " " + user.LastName,
		Email:   user.Email,
		Phone:   user.Phone,
		Address: user.Address,
		Role:    user.Role,
	}
}

func deliveryManInfo(man *models.DeliveryMan) *AccountInfo {
	return &AccountInfo{
		ID:    man.ID,
		Name:  man.Name,
		Email: man.Email,
		Phone: man.Phone,
		Role:  man.Role,
	}
}
