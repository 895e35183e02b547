package services

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"PelicanChat/models"
	"PelicanChat/repositories"

	"firebase.google.com/go/v4/auth"
	"github.com/golang-jwt/jwt/v5"
	"gorm.io/gorm"
)

// Claims is the session token payload. user_id is what the rest of the
// API trusts; Firebase is consulted only at login.
type Claims struct {
	UserID      uint   `json:"user_id"`
	FirebaseUID string `json:"firebase_uid"`
	jwt.RegisteredClaims
}

type AuthService struct {
	UserRepo     repositories.UserRepository
	FirebaseAuth *auth.Client
	JWTSecret    []byte
}

func NewAuthService(userRepo repositories.UserRepository, firebaseAuth *auth.Client, jwtSecret []byte) *AuthService {
	return &AuthService{
		UserRepo:     userRepo,
		FirebaseAuth: firebaseAuth,
		JWTSecret:    jwtSecret,
	}
}

// Login verifies a Firebase ID token, upserts the local user record and
// returns a session JWT. First login creates the user with a random
// four-digit tag; later logins refresh name and email from the token.
func (s *AuthService) Login(ctx context.Context, idToken, deviceToken string) (*models.User, string, error) {
	decoded, err := s.FirebaseAuth.VerifyIDToken(ctx, idToken)
	if err != nil {
		return nil, "", fmt.Errorf("%w: invalid firebase token", ErrUnauthorized)
	}

	name, _ := decoded.Claims["name"].(string)
	email, _ := decoded.Claims["email"].(string)

	user, err := s.UserRepo.FindByFirebaseUID(decoded.UID)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", err
		}
		user = models.User{
			FirebaseUID: decoded.UID,
			UserTag:     fmt.Sprintf("%04d", 1000+rand.Intn(9000)),
			Status:      models.StatusOnline,
		}
	}

	if name != "" {
		user.Name = name
	}
	if email != "" {
		user.Email = email
	}
	if deviceToken != "" {
		user.DeviceToken = deviceToken
	}
	if err := s.UserRepo.Save(&user); err != nil {
		return nil, "", err
	}

	token, err := s.mintToken(&user)
	if err != nil {
		return nil, "", err
	}
	return &user, token, nil
}

func (s *AuthService) mintToken(user *models.User) (string, error) {
	claims := &Claims{
		UserID:      user.ID,
		FirebaseUID: user.FirebaseUID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(24 * time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.JWTSecret)
}

// ParseToken validates a session JWT and returns its claims.
func (s *AuthService) ParseToken(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", token.Header["alg"])
		}
		return s.JWTSecret, nil
	})
	if err != nil || !token.Valid {
		return nil, fmt.Errorf("%w: invalid token", ErrUnauthorized)
	}
	return claims, nil
}

// UpdateStatus sets the actor's presence.
func (s *AuthService) UpdateStatus(actorID uint, status string) error {
	switch status {
	case models.StatusOnline, models.StatusAway, models.StatusOffline, models.StatusDND:
	default:
		return fmt.Errorf("%w: unknown status %q", ErrValidation, status)
	}

	user, err := s.UserRepo.FindByID(actorID)
	if err != nil {
		return err
	}
	user.Status = status
	return s.UserRepo.Save(&user)
}
