package services

import (
	"errors"
	"time"

	"run4wish-backend/internal/models"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type AuthService struct {
	db            *gorm.DB
	jwtSecret     []byte
	initialWishes int
}

func NewAuthService(db *gorm.DB, jwtSecret string, initialWishes int) *AuthService {
	return &AuthService{db: db, jwtSecret: []byte(jwtSecret), initialWishes: initialWishes}
}

func (s *AuthService) Register(email, password string) (string, error) {
	var existing models.Profile
	if err := s.db.Where("email = ?", email).First(&existing).Error; err == nil {
		return "", errors.New("email already registered")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}

	profile := models.Profile{
		ID:           uuid.New(),
		Email:        email,
		PasswordHash: string(hash),
		Wishes:       s.initialWishes,
	}
	if err := s.db.Create(&profile).Error; err != nil {
		return "", err
	}

	return s.GenerateToken(profile.ID, profile.Email)
}

func (s *AuthService) Login(email, password string) (string, error) {
	var profile models.Profile
	if err := s.db.Where("email = ?", email).First(&profile).Error; err != nil {
		return "", errors.New("invalid credentials")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(profile.PasswordHash), []byte(password)); err != nil {
		return "", errors.New("invalid credentials")
	}

	return s.GenerateToken(profile.ID, profile.Email)
}

func (s *AuthService) GenerateToken(userID uuid.UUID, email string) (string, error) {
	claims := jwt.MapClaims{
		"user_id": userID.String(),
		"email":   email,
		"exp":     time.Now().Add(24 * time.Hour).Unix(),
		"iat":     time.Now().Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.jwtSecret)
}

// ValidateToken returns the authenticated user's id and email.
func (s *AuthService) ValidateToken(tokenString string) (uuid.UUID, string, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return s.jwtSecret, nil
	})
	if err != nil || !token.Valid {
		return uuid.Nil, "", errors.New("invalid token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return uuid.Nil, "", errors.New("invalid claims")
	}

	idStr, ok := claims["user_id"].(string)
	if !ok {
		return uuid.Nil, "", errors.New("invalid user_id in token")
	}
	userID, err := uuid.Parse(idStr)
	if err != nil {
		return uuid.Nil, "", errors.New("invalid user_id in token")
	}

	email, _ := claims["email"].(string)
	return userID, email, nil
}

func (s *AuthService) GetProfile(userID uuid.UUID) (*models.Profile, error) {
	var profile models.Profile
	if err := s.db.First(&profile, "id = ?", userID).Error; err != nil {
		return nil, errors.New("profile not found")
	}
	return &profile, nil
}
