// Package middleware contains middleware functions for the API.
package middleware

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/httplog/v3"
	gojwt "github.com/golang-jwt/jwt/v5"
	"github.com/oklog/ulid/v2"

	apiError "github.com/platefeed/platefeed/internal/api/error"
	"github.com/platefeed/platefeed/internal/api/requestid"
	"github.com/platefeed/platefeed/internal/api/token"
	"github.com/platefeed/platefeed/internal/env"
	pfJwt "github.com/platefeed/platefeed/internal/jwt"
	"github.com/platefeed/platefeed/internal/log"
	"github.com/platefeed/platefeed/internal/metrics"
	"github.com/platefeed/platefeed/internal/role"
)

const bearerPrefix = "Bearer "

// InjectEnv injects an environment struct into the request context.
func InjectEnv(environment *env.Env) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			next.ServeHTTP(w, r.WithContext(env.WithCtx(r.Context(), environment)))
		})
	}
}

// LogRequest logs every request through httplog.
func LogRequest(logger *slog.Logger) func(http.Handler) http.Handler {
	return httplog.RequestLogger(logger, &httplog.Options{
		LogExtraAttrs: func(r *http.Request, reqBody string, respStatus int) []slog.Attr {
			id := requestid.ExtractRequestID(r.Context())
			if id == 0 {
				return []slog.Attr{slog.String("log_id", "N/A")}
			}
			return []slog.Attr{slog.Uint64("log_id", id)}
		},
	})
}

// AddRequestID adds a request ID to the request context.
func AddRequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := ulid.Now()
		r = r.WithContext(log.AppendCtx(r.Context(), slog.Uint64("log_id", requestID)))
		r = r.WithContext(requestid.InjectRequestID(r.Context(), requestID))
		next.ServeHTTP(w, r)
	})
}

// AddCors adds the necessary CORS headers to the response.
func AddCors(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		e := env.EnvFromCtx(r.Context())
		origin := r.Header.Get("Origin")
		baseURL := e.Config.Server.BaseURL

		var allowedOrigin string
		if e.Config.IsProd() {
			allowedOrigin = baseURL
		} else if origin != "" {
			// In dev mode, allow all origins
			allowedOrigin = origin
		}
		if allowedOrigin == "" {
			allowedOrigin = baseURL
		}

		w.Header().Set("Access-Control-Allow-Origin", allowedOrigin)
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS, PATCH")
		w.Header().Set("Access-Control-Max-Age", "86400")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		w.Header().Set("Access-Control-Allow-Credentials", "true")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// statusRecorder captures the response status for the metrics middleware.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (s *statusRecorder) WriteHeader(code int) {
	s.status = code
	s.ResponseWriter.WriteHeader(code)
}

// RecordMetrics reports request counts and latency to the collector.
func RecordMetrics(collector *metrics.Collector) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(rec, r)
			collector.RecordRequest(r.Method, rec.status, time.Since(start))
		})
	}
}

// Authenticate validates a bearer token when one is presented and
// stores the caller's identity in the context. Requests without a
// token pass through anonymously; RequireAuth rejects them later
// where authentication is mandatory.
func Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		e := env.EnvFromCtx(ctx)
		requestID := strconv.FormatUint(requestid.ExtractRequestID(ctx), 10)

		header := r.Header.Get("Authorization")
		if header == "" {
			next.ServeHTTP(w, r)
			return
		}
		rawToken := strings.TrimPrefix(header, bearerPrefix)
		if rawToken == header {
			e.Logger.ErrorContext(ctx, "authorization header is not a bearer token")
			_ = apiError.EncodeError(w, apiError.InvalidAuthToken, "invalid auth token", requestID)
			return
		}

		secret := e.Config.Secret.Value
		if secret == "" {
			e.Logger.ErrorContext(ctx, "application secret not configured")
			_ = apiError.EncodeInternalError(w, requestID)
			return
		}
		secretVersion := e.Config.Secret.Version
		if secretVersion == "" {
			secretVersion = pfJwt.DefaultKID
		}

		authToken, err := pfJwt.ValidateToken(rawToken, secretVersion, []byte(secret))
		if errors.Is(err, gojwt.ErrTokenExpired) {
			e.Logger.ErrorContext(ctx, "auth token expired", slog.Any("error", err))
			_ = apiError.EncodeError(w, apiError.ExpiredAuthToken, "auth token expired", requestID)
			return
		} else if err != nil {
			e.Logger.ErrorContext(ctx, "invalid auth token", slog.Any("error", err))
			_ = apiError.EncodeError(w, apiError.InvalidAuthToken, "invalid auth token", requestID)
			return
		}

		if tokenID := pfJwt.TokenID(authToken); tokenID != "" && e.Tokens != nil {
			denied, err := e.Tokens.IsDenied(ctx, tokenID)
			if err != nil {
				// Denylist lookup failures must not take the API down.
				e.Logger.WarnContext(ctx, "token denylist unavailable", slog.Any("error", err))
			}
			if denied {
				e.Logger.ErrorContext(ctx, "auth token revoked")
				_ = apiError.EncodeError(w, apiError.InvalidAuthToken, "invalid auth token", requestID)
				return
			}
		}

		sub, err := authToken.Claims.GetSubject()
		if err != nil {
			e.Logger.ErrorContext(ctx, "failed to extract subject from token", slog.Any("error", err))
			_ = apiError.EncodeInternalError(w, requestID)
			return
		}
		userID, err := strconv.ParseInt(sub, 10, 64)
		if err != nil {
			e.Logger.ErrorContext(ctx, "failed to parse user id", slog.Any("error", err))
			_ = apiError.EncodeInternalError(w, requestID)
			return
		}

		r = r.WithContext(log.AppendCtx(r.Context(), slog.Int64("user_id", userID)))
		r = r.WithContext(token.UserIDWithCtx(r.Context(), userID))
		r = r.WithContext(token.AuthTokenWithCtx(r.Context(), authToken))
		next.ServeHTTP(w, r)
	})
}

// RequireAuth rejects requests whose caller is anonymous or whose role
// is below the required one.
func RequireAuth(requiredRole role.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			e := env.EnvFromCtx(ctx)
			requestID := strconv.FormatUint(requestid.ExtractRequestID(ctx), 10)

			if _, err := token.UserIDFromCtx(ctx); err != nil {
				e.Logger.ErrorContext(ctx, "request requires authentication", slog.Any("error", err))
				_ = apiError.EncodeError(w, apiError.InvalidAuthToken, "authentication required", requestID)
				return
			}

			authToken := token.AuthTokenFromCtx(ctx)
			if authToken == nil {
				_ = apiError.EncodeError(w, apiError.InvalidAuthToken, "authentication required", requestID)
				return
			}
			claims, _ := authToken.Claims.(gojwt.MapClaims)
			roleClaim, _ := claims["role"].(string)
			if role.ToRole(roleClaim) < requiredRole {
				e.Logger.ErrorContext(ctx, "insufficient permissions",
					slog.String("required_role", requiredRole.String()))
				_ = apiError.EncodeError(w, apiError.InsufficientPermissions,
					"insufficient permissions", requestID)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
