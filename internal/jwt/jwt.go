// Package jwt provides functions for generating and validating auth tokens.
package jwt

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	// DefaultKID is the key version assumed when none is configured.
	DefaultKID = "1"

	// TokenLifetime bounds how long an issued token stays valid.
	TokenLifetime = 24 * time.Hour
)

type TokenParams struct {
	UserID string
	Role   string
	// TokenID ends up in the jti claim and keys the logout denylist.
	TokenID string
}

// GenerateToken builds and signs an HS256 token.
func GenerateToken(params TokenParams, secret []byte, version string) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":  params.UserID,
		"role": params.Role,
		"jti":  params.TokenID,
		"iat":  now.Unix(),
		"exp":  now.Add(TokenLifetime).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	token.Header["kid"] = version

	signed, err := token.SignedString(secret)
	if err != nil {
		return "", fmt.Errorf("signing token: %w", err)
	}

	return signed, nil
}

// ValidateToken parses the raw token and verifies its signature and
// key version.
func ValidateToken(rawToken, version string, secret []byte) (*jwt.Token, error) {
	keyFunc := func(token *jwt.Token) (any, error) {
		kid, ok := token.Header["kid"].(string)
		if !ok {
			return nil, fmt.Errorf("missing/invalid kid value")
		}
		if kid != version {
			return nil, fmt.Errorf("verifying kid value, value=%q", kid)
		}
		return secret, nil
	}

	token, err := jwt.Parse(rawToken, keyFunc,
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, err
	}

	return token, nil
}

// TokenID extracts the jti claim from a parsed token, empty when absent.
func TokenID(token *jwt.Token) string {
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return ""
	}
	jti, _ := claims["jti"].(string)
	return jti
}
