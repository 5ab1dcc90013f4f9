// Package auth contains handlers for the auth endpoints
package auth

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/jackc/pgx/v5"

	apiError "github.com/platefeed/platefeed/internal/api/error"
	"github.com/platefeed/platefeed/internal/api/requestid"
	"github.com/platefeed/platefeed/internal/api/token"
	"github.com/platefeed/platefeed/internal/argon2id"
	"github.com/platefeed/platefeed/internal/env"
	pfJson "github.com/platefeed/platefeed/internal/json"
	pfJwt "github.com/platefeed/platefeed/internal/jwt"
	"github.com/platefeed/platefeed/internal/role"
)

// HandleLogin godoc
//
//	@Summary	Obtain an auth token.
//	@Tags		Auth
//
//	@Accept		json
//	@Produce	json
//	@Param		request	body		LoginRequest	true	"Login Request"
//
//	@Success	201		{object}	LoginResponse
//	@Failure	401		{object}	apiError.Error	"Unauthorized"
//	@Router		/api/auth/token/login [POST]
func HandleLogin(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	env := env.EnvFromCtx(ctx)
	requestID := strconv.FormatUint(requestid.ExtractRequestID(ctx), 10)

	// Decode JSON
	var request LoginRequest
	env.Logger.DebugContext(ctx, "Reading request body")
	defer func() { _ = r.Body.Close() }()
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := pfJson.Decode(&request, decoder); err != nil {
		env.Logger.ErrorContext(ctx, "Failed to decode request body", slog.Any("error", err))
		_ = apiError.EncodeError(w, apiError.BadRequest, "invalid request body", requestID)
		return
	}
	validate := validator.New(validator.WithRequiredStructEnabled())
	if err := validate.Struct(request); err != nil {
		env.Logger.ErrorContext(ctx, "Failed to validate request body", slog.Any("error", err))
		_ = apiError.EncodeError(w, apiError.BadRequest, "invalid request body", requestID)
		return
	}

	// Retrieve user information
	env.Logger.DebugContext(ctx, "Retrieving user information")
	user, err := env.Database.GetUserByEmail(ctx, request.Email)
	if errors.Is(err, pgx.ErrNoRows) {
		env.Logger.ErrorContext(ctx,
			"User with email does not exist",
			slog.String("email", request.Email),
			slog.Any("error", err))
		_ = apiError.EncodeError(w, apiError.InvalidCredentials, "email or password is incorrect", requestID)
		return
	} else if err != nil {
		env.Logger.ErrorContext(ctx, "Failed to retrieve user information", slog.Any("error", err))
		_ = apiError.EncodeInternalError(w, requestID)
		return
	}

	// Compare passwords
	env.Logger.DebugContext(ctx, "Comparing passwords")
	match, err := argon2id.ComparePasswordAndHash(request.Password, user.PasswordHash)
	if err != nil {
		env.Logger.ErrorContext(ctx, "Failed to compare password hash", slog.Any("error", err))
		_ = apiError.EncodeInternalError(w, requestID)
		return
	}
	if !match {
		env.Logger.ErrorContext(ctx, "Given password is incorrect")
		_ = apiError.EncodeError(w, apiError.InvalidCredentials, "email or password is incorrect", requestID)
		return
	}

	// Create auth token
	env.Logger.DebugContext(ctx, "Generating auth token")
	authToken, _, err := token.CreateAuthToken(user.ID, role.DBToRole(user.Role), env)
	if err != nil {
		env.Logger.ErrorContext(ctx, "failed to create auth token", slog.Any("error", err))
		_ = apiError.EncodeInternalError(w, requestID)
		return
	}

	// Write response
	env.Logger.DebugContext(ctx, "Writing response")
	resp, err := json.Marshal(LoginResponse{AuthToken: authToken})
	if err != nil {
		env.Logger.ErrorContext(ctx, "Failed to marshal response", slog.Any("error", err))
		_ = apiError.EncodeInternalError(w, requestID)
		return
	}
	w.Header().Add("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	if _, err := w.Write(resp); err != nil {
		env.Logger.ErrorContext(ctx, "Failed to write response", slog.Any("error", err))
	}
}

// HandleLogout godoc
//
//	@Summary	Revoke the presented auth token.
//	@Tags		Auth
//
//	@Param		Authorization	header	string	true	"Bearer token"
//
//	@Success	204
//	@Failure	401	{object}	apiError.Error	"Unauthorized"
//	@Router		/api/auth/token/logout [POST]
func HandleLogout(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	env := env.EnvFromCtx(ctx)
	requestID := strconv.FormatUint(requestid.ExtractRequestID(ctx), 10)

	authToken := token.AuthTokenFromCtx(ctx)
	if authToken == nil {
		env.Logger.ErrorContext(ctx, "no auth token in context")
		_ = apiError.EncodeError(w, apiError.InvalidAuthToken, "invalid auth token", requestID)
		return
	}

	tokenID := pfJwt.TokenID(authToken)
	if tokenID == "" {
		env.Logger.ErrorContext(ctx, "auth token carries no id")
		_ = apiError.EncodeError(w, apiError.InvalidAuthToken, "invalid auth token", requestID)
		return
	}

	// Deny until the token would have expired anyway.
	ttl := pfJwt.TokenLifetime
	if exp, err := authToken.Claims.GetExpirationTime(); err == nil && exp != nil {
		if remaining := time.Until(exp.Time); remaining > 0 {
			ttl = remaining
		}
	}

	env.Logger.DebugContext(ctx, "Revoking auth token")
	if err := env.Tokens.Deny(ctx, tokenID, ttl); err != nil {
		env.Logger.ErrorContext(ctx, "failed to revoke auth token", slog.Any("error", err))
		_ = apiError.EncodeInternalError(w, requestID)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
