package utils

import (
	"errors"
	"os"
	"time"

	"clinicbook/config"

	"github.com/golang-jwt/jwt"
)

// Claims are the identity fields the access-control gate attaches to a request.
type Claims struct {
	UserID string
	Role   string
	Email  string
}

func secretKey() []byte {
	secret := config.AppConfig.JWTSecret
	if secret == "" {
		secret = os.Getenv("JWT_SECRET")
	}
	if secret == "" {
		secret = "clinicbook-dev-secret"
	}
	return []byte(secret)
}

// GenerateToken creates a signed JWT with the given subject, role and email.
// The token expires after the specified duration.
func GenerateToken(subject, role, email string, duration time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"sub":   subject,
		"role":  role,
		"email": email,
		"iat":   time.Now().Unix(),
		"exp":   time.Now().Add(duration).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secretKey())
}

// ValidateToken parses and validates a token string and returns the token if valid.
func ValidateToken(tokenString string) (*jwt.Token, error) {
	return jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		// Ensure that the token's signing method is HMAC.
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return secretKey(), nil
	})
}

// ExtractClaims validates a token string and returns the decoded identity claims.
func ExtractClaims(tokenString string) (*Claims, error) {
	token, err := ValidateToken(tokenString)
	if err != nil {
		return nil, err
	}

	mapClaims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token")
	}

	sub, ok := mapClaims["sub"].(string)
	if !ok || sub == "" {
		return nil, errors.New("token does not contain a valid 'sub' claim")
	}
	role, ok := mapClaims["role"].(string)
	if !ok || role == "" {
		return nil, errors.New("token does not contain a valid 'role' claim")
	}
	email, _ := mapClaims["email"].(string)

	return &Claims{UserID: sub, Role: role, Email: email}, nil
}
