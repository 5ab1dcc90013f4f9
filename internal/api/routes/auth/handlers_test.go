package auth

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"go.uber.org/mock/gomock"

	apiError "github.com/platefeed/platefeed/internal/api/error"
	"github.com/platefeed/platefeed/internal/api/requestid"
	"github.com/platefeed/platefeed/internal/api/token"
	"github.com/platefeed/platefeed/internal/argon2id"
	"github.com/platefeed/platefeed/internal/config"
	"github.com/platefeed/platefeed/internal/database"
	"github.com/platefeed/platefeed/internal/env"
	pfJwt "github.com/platefeed/platefeed/internal/jwt"
	"github.com/platefeed/platefeed/internal/log"
)

const testSecret = "test-secret-that-is-long-enough-0123456789"

// fakeDenylist records denied token ids in memory.
type fakeDenylist struct {
	denied map[string]time.Duration
	err    error
}

func (f *fakeDenylist) Deny(_ context.Context, tokenID string, ttl time.Duration) error {
	if f.err != nil {
		return f.err
	}
	if f.denied == nil {
		f.denied = make(map[string]time.Duration)
	}
	f.denied[tokenID] = ttl
	return nil
}

func (f *fakeDenylist) IsDenied(_ context.Context, tokenID string) (bool, error) {
	_, ok := f.denied[tokenID]
	return ok, f.err
}

func newAuthRequest(t *testing.T, body string, testEnv *env.Env) *http.Request {
	t.Helper()

	ctx := context.Background()
	ctx = requestid.InjectRequestID(ctx, 12345)
	ctx = env.WithCtx(ctx, testEnv)
	return httptest.NewRequest(http.MethodPost, "/api/auth/token/login", strings.NewReader(body)).WithContext(ctx)
}

func TestHandleLogin(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockDB := database.NewMockQuerier(ctrl)
	testEnv := &env.Env{
		Logger: log.NullLogger(),
		Database: &database.Database{
			Querier: mockDB,
		},
		Config: &config.Config{
			Secret: config.Secret{Value: testSecret},
		},
	}

	hash, err := argon2id.EncodeHash("Correct-horse-battery1", argon2id.DefaultParams)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}
	user := database.User{
		ID:           42,
		Email:        "chef@example.com",
		Username:     "chef",
		PasswordHash: hash,
		Role:         database.RoleUser,
	}

	tests := []struct {
		name       string
		body       string
		setup      func()
		wantStatus int
		wantCode   apiError.ErrorCode
	}{
		{
			name: "successful login",
			body: `{"email":"chef@example.com","password":"Correct-horse-battery1"}`,
			setup: func() {
				mockDB.EXPECT().
					GetUserByEmail(gomock.Any(), "chef@example.com").
					Return(user, nil)
			},
			wantStatus: http.StatusCreated,
		},
		{
			name: "wrong password",
			body: `{"email":"chef@example.com","password":"not-the-password"}`,
			setup: func() {
				mockDB.EXPECT().
					GetUserByEmail(gomock.Any(), "chef@example.com").
					Return(user, nil)
			},
			wantStatus: http.StatusUnauthorized,
			wantCode:   apiError.InvalidCredentials,
		},
		{
			name: "unknown email",
			body: `{"email":"nobody@example.com","password":"Correct-horse-battery1"}`,
			setup: func() {
				mockDB.EXPECT().
					GetUserByEmail(gomock.Any(), "nobody@example.com").
					Return(database.User{}, pgx.ErrNoRows)
			},
			wantStatus: http.StatusUnauthorized,
			wantCode:   apiError.InvalidCredentials,
		},
		{
			name:       "missing password",
			body:       `{"email":"chef@example.com"}`,
			setup:      func() {},
			wantStatus: http.StatusBadRequest,
			wantCode:   apiError.BadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setup()

			req := newAuthRequest(t, tt.body, testEnv)
			rec := httptest.NewRecorder()
			HandleLogin(rec, req)

			if rec.Code != tt.wantStatus {
				t.Errorf("expected status %d, got %d", tt.wantStatus, rec.Code)
			}
			if tt.wantCode != "" {
				var apiErr apiError.Error
				if err := json.NewDecoder(rec.Body).Decode(&apiErr); err != nil {
					t.Fatalf("failed to decode error response: %v", err)
				}
				if apiErr.Code != tt.wantCode {
					t.Errorf("expected code %s, got %s", tt.wantCode, apiErr.Code)
				}
				return
			}

			var resp LoginResponse
			if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
				t.Fatalf("failed to decode response: %v", err)
			}
			if resp.AuthToken == "" {
				t.Fatal("expected an auth token in the response")
			}
			parsed, err := pfJwt.ValidateToken(resp.AuthToken, pfJwt.DefaultKID, []byte(testSecret))
			if err != nil {
				t.Fatalf("issued token failed validation: %v", err)
			}
			subject, err := parsed.Claims.GetSubject()
			if err != nil || subject != "42" {
				t.Errorf("expected subject 42, got %q (err %v)", subject, err)
			}
		})
	}
}

func TestHandleLogout(t *testing.T) {
	denylist := &fakeDenylist{}
	testEnv := &env.Env{
		Logger: log.NullLogger(),
		Tokens: denylist,
	}

	rawToken, err := pfJwt.GenerateToken(pfJwt.TokenParams{
		UserID:  "42",
		Role:    "user",
		TokenID: "01ARZ3NDEKTSV4RRFFQ69G5FAV",
	}, []byte(testSecret), pfJwt.DefaultKID)
	if err != nil {
		t.Fatalf("failed to generate token: %v", err)
	}
	parsed, err := pfJwt.ValidateToken(rawToken, pfJwt.DefaultKID, []byte(testSecret))
	if err != nil {
		t.Fatalf("failed to validate token: %v", err)
	}

	ctx := context.Background()
	ctx = requestid.InjectRequestID(ctx, 12345)
	ctx = token.AuthTokenWithCtx(ctx, parsed)
	ctx = env.WithCtx(ctx, testEnv)

	req := httptest.NewRequest(http.MethodPost, "/api/auth/token/logout", nil).WithContext(ctx)
	rec := httptest.NewRecorder()
	HandleLogout(rec, req)

	if rec.Code != http.StatusNoContent {
		t.Errorf("expected status 204, got %d", rec.Code)
	}
	ttl, ok := denylist.denied["01ARZ3NDEKTSV4RRFFQ69G5FAV"]
	if !ok {
		t.Fatal("token id was not denied")
	}
	if ttl <= 0 || ttl > pfJwt.TokenLifetime {
		t.Errorf("deny ttl %v outside token lifetime", ttl)
	}
}

func TestHandleLogoutWithoutToken(t *testing.T) {
	ctx := context.Background()
	ctx = requestid.InjectRequestID(ctx, 12345)
	ctx = env.WithCtx(ctx, &env.Env{Logger: log.NullLogger()})

	req := httptest.NewRequest(http.MethodPost, "/api/auth/token/logout", nil).WithContext(ctx)
	rec := httptest.NewRecorder()
	HandleLogout(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected status 401, got %d", rec.Code)
	}
}
