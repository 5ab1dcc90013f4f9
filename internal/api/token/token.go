// Package token contains utilities for issued auth tokens and the
// request-scoped identity they carry.
package token

import (
	"context"
	"errors"
	"fmt"

	gojwt "github.com/golang-jwt/jwt/v5"
	"github.com/oklog/ulid/v2"

	"github.com/platefeed/platefeed/internal/env"
	"github.com/platefeed/platefeed/internal/jwt"
	"github.com/platefeed/platefeed/internal/role"
)

type userIDKeyType struct{}

var userIDKey userIDKeyType

type authTokenKeyType struct{}

var authTokenKey authTokenKeyType

var ErrNoUserID = errors.New("no user id in context")

// CreateAuthToken issues a signed token for the user. The returned
// tokenID is the jti claim used by the logout denylist.
func CreateAuthToken(userID int64, userRole role.Role, e *env.Env) (token, tokenID string, err error) {
	secret := e.Config.Secret.Value
	if secret == "" {
		return "", "", errors.New("application secret not configured")
	}
	version := e.Config.Secret.Version
	if version == "" {
		version = jwt.DefaultKID
	}

	tokenID = ulid.Make().String()
	token, err = jwt.GenerateToken(jwt.TokenParams{
		UserID:  fmt.Sprintf("%d", userID),
		Role:    userRole.String(),
		TokenID: tokenID,
	}, []byte(secret), version)
	if err != nil {
		return "", "", fmt.Errorf("generating auth token: %w", err)
	}
	return token, tokenID, nil
}

// UserIDWithCtx stores the authenticated user id in the context.
func UserIDWithCtx(ctx context.Context, userID int64) context.Context {
	return context.WithValue(ctx, userIDKey, userID)
}

// UserIDFromCtx extracts the authenticated user id from the context.
func UserIDFromCtx(ctx context.Context) (int64, error) {
	if v, ok := ctx.Value(userIDKey).(int64); ok {
		return v, nil
	}
	return 0, ErrNoUserID
}

// AuthTokenWithCtx stores the parsed auth token in the context.
func AuthTokenWithCtx(ctx context.Context, token *gojwt.Token) context.Context {
	return context.WithValue(ctx, authTokenKey, token)
}

// AuthTokenFromCtx extracts the parsed auth token, nil when absent.
func AuthTokenFromCtx(ctx context.Context) *gojwt.Token {
	if v, ok := ctx.Value(authTokenKey).(*gojwt.Token); ok {
		return v
	}
	return nil
}
