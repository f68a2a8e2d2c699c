package service

import (
	"errors"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"sarvekshan/internal/model"
)

var (
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrInvalidToken       = errors.New("invalid or expired token")
)

// AuthService handles inspector authentication
type AuthService struct {
	inspectorUsername string
	inspectorPassword string
	inspectorName     string
	jwtSecret         []byte
}

// NewAuthService creates a new auth service
func NewAuthService() *AuthService {
	username := os.Getenv("INSPECTOR_USERNAME")
	if username == "" {
		username = "inspector"
	}
	password := os.Getenv("INSPECTOR_PASSWORD")
	if password == "" {
		password = "field123"
	}
	name := os.Getenv("INSPECTOR_NAME")
	if name == "" {
		name = "Field Inspector"
	}
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		secret = "super-secret-key-change-in-production"
	}

	return &AuthService{
		inspectorUsername: username,
		inspectorPassword: password,
		inspectorName:     name,
		jwtSecret:         []byte(secret),
	}
}

// Login validates credentials and returns a device token
func (s *AuthService) Login(username, password string) (*model.LoginResponse, error) {
	if username != s.inspectorUsername || password != s.inspectorPassword {
		return nil, ErrInvalidCredentials
	}

	inspectorID := "insp_" + uuid.New().String()[:8]

	claims := &model.InspectorClaims{
		InspectorID: inspectorID,
		Name:        s.inspectorName,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt: jwt.NewNumericDate(time.Now()),
			// No expiry: field devices stay logged in between visits
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return nil, err
	}

	return &model.LoginResponse{
		Token:       tokenString,
		InspectorID: inspectorID,
	}, nil
}

// ValidateToken validates an inspector JWT and returns claims
func (s *AuthService) ValidateToken(tokenString string) (*model.InspectorClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &model.InspectorClaims{}, func(token *jwt.Token) (interface{}, error) {
		return s.jwtSecret, nil
	})
	if err != nil {
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*model.InspectorClaims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}

	return claims, nil
}
