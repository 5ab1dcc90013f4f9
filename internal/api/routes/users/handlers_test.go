package users

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/mock/gomock"

	apiError "github.com/platefeed/platefeed/internal/api/error"
	"github.com/platefeed/platefeed/internal/api/requestid"
	"github.com/platefeed/platefeed/internal/api/token"
	"github.com/platefeed/platefeed/internal/database"
	"github.com/platefeed/platefeed/internal/env"
	"github.com/platefeed/platefeed/internal/log"
)

func newUserRequest(t *testing.T, method, target, body string, userID int64, mockDB database.Querier) *http.Request {
	t.Helper()

	ctx := context.Background()
	ctx = requestid.InjectRequestID(ctx, 12345)
	if userID != 0 {
		ctx = token.UserIDWithCtx(ctx, userID)
	}
	ctx = env.WithCtx(ctx, &env.Env{
		Logger: log.NullLogger(),
		Database: &database.Database{
			Querier: mockDB,
		},
	})

	return httptest.NewRequest(method, target, strings.NewReader(body)).WithContext(ctx)
}

func withURLParam(r *http.Request, key, value string) *http.Request {
	routeCtx := chi.NewRouteContext()
	routeCtx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, routeCtx))
}

func decodeAPIError(t *testing.T, rec *httptest.ResponseRecorder) apiError.Error {
	t.Helper()
	var apiErr apiError.Error
	if err := json.NewDecoder(rec.Body).Decode(&apiErr); err != nil {
		t.Fatalf("failed to decode error response: %v", err)
	}
	return apiErr
}

func TestHandleCreateUser(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockDB := database.NewMockQuerier(ctrl)

	tests := []struct {
		name       string
		body       string
		setup      func()
		wantStatus int
		wantCode   apiError.ErrorCode
	}{
		{
			name: "successful signup",
			body: `{"email":"chef@example.com","username":"chef","first_name":"Ada","last_name":"Lovelace","password":"Str0ng-and-long-enough"}`,
			setup: func() {
				mockDB.EXPECT().
					CreateUser(gomock.Any(), gomock.Any()).
					Return(int64(7), nil)
			},
			wantStatus: http.StatusCreated,
		},
		{
			name:       "weak password",
			body:       `{"email":"chef@example.com","username":"chef","first_name":"Ada","last_name":"Lovelace","password":"abc"}`,
			setup:      func() {},
			wantStatus: http.StatusUnprocessableEntity,
			wantCode:   apiError.WeakPassword,
		},
		{
			name:       "invalid email",
			body:       `{"email":"not-an-email","username":"chef","first_name":"Ada","last_name":"Lovelace","password":"Str0ng-and-long-enough"}`,
			setup:      func() {},
			wantStatus: http.StatusBadRequest,
			wantCode:   apiError.ValidationFailed,
		},
		{
			name:       "malformed body",
			body:       `{"email":`,
			setup:      func() {},
			wantStatus: http.StatusBadRequest,
			wantCode:   apiError.BadRequest,
		},
		{
			name: "email already taken",
			body: `{"email":"chef@example.com","username":"chef","first_name":"Ada","last_name":"Lovelace","password":"Str0ng-and-long-enough"}`,
			setup: func() {
				mockDB.EXPECT().
					CreateUser(gomock.Any(), gomock.Any()).
					Return(int64(0), &pgconn.PgError{Code: "23505", ConstraintName: "users_email_key"})
			},
			wantStatus: http.StatusConflict,
			wantCode:   apiError.EmailConflict,
		},
		{
			name: "username already taken",
			body: `{"email":"chef@example.com","username":"chef","first_name":"Ada","last_name":"Lovelace","password":"Str0ng-and-long-enough"}`,
			setup: func() {
				mockDB.EXPECT().
					CreateUser(gomock.Any(), gomock.Any()).
					Return(int64(0), &pgconn.PgError{Code: "23505", ConstraintName: "users_username_key"})
			},
			wantStatus: http.StatusConflict,
			wantCode:   apiError.UsernameConflict,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setup()

			req := newUserRequest(t, http.MethodPost, "/api/users", tt.body, 0, mockDB)
			rec := httptest.NewRecorder()
			HandleCreateUser(rec, req)

			if rec.Code != tt.wantStatus {
				t.Errorf("expected status %d, got %d", tt.wantStatus, rec.Code)
			}
			if tt.wantCode != "" {
				if apiErr := decodeAPIError(t, rec); apiErr.Code != tt.wantCode {
					t.Errorf("expected code %s, got %s", tt.wantCode, apiErr.Code)
				}
				return
			}

			var resp CreateUserResponse
			if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
				t.Fatalf("failed to decode response: %v", err)
			}
			if resp.ID != 7 {
				t.Errorf("expected user ID 7, got %d", resp.ID)
			}
			if resp.Username != "chef" {
				t.Errorf("expected username chef, got %s", resp.Username)
			}
		})
	}
}

func TestHandleSubscribe(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockDB := database.NewMockQuerier(ctrl)

	author := database.User{
		ID:        9,
		Email:     "author@example.com",
		Username:  "author",
		FirstName: "Grace",
		LastName:  "Hopper",
	}

	tests := []struct {
		name       string
		authorID   string
		setup      func()
		wantStatus int
		wantCode   apiError.ErrorCode
	}{
		{
			name:     "successful subscription",
			authorID: "9",
			setup: func() {
				mockDB.EXPECT().
					AddSubscription(gomock.Any(), database.AddSubscriptionParams{SubscriberID: 42, AuthorID: 9}).
					Return(nil)
				mockDB.EXPECT().
					GetUserByID(gomock.Any(), int64(9)).
					Return(author, nil)
				mockDB.EXPECT().
					ListRecipes(gomock.Any(), gomock.Any()).
					Return([]database.Recipe{{ID: 1, AuthorID: 9, Name: "Pancakes", CookingTime: 15}}, nil)
			},
			wantStatus: http.StatusCreated,
		},
		{
			name:       "subscribing to yourself",
			authorID:   "42",
			setup:      func() {},
			wantStatus: http.StatusBadRequest,
			wantCode:   apiError.SelfSubscription,
		},
		{
			name:     "already subscribed",
			authorID: "9",
			setup: func() {
				mockDB.EXPECT().
					AddSubscription(gomock.Any(), gomock.Any()).
					Return(&pgconn.PgError{Code: "23505", ConstraintName: "subscriptions_pkey"})
			},
			wantStatus: http.StatusBadRequest,
			wantCode:   apiError.AlreadySubscribed,
		},
		{
			name:     "author does not exist",
			authorID: "9",
			setup: func() {
				mockDB.EXPECT().
					AddSubscription(gomock.Any(), gomock.Any()).
					Return(&pgconn.PgError{Code: "23503", ConstraintName: "subscriptions_author_id_fkey"})
			},
			wantStatus: http.StatusNotFound,
			wantCode:   apiError.UserNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setup()

			req := newUserRequest(t, http.MethodPost, "/api/users/9/subscribe", "", 42, mockDB)
			req = withURLParam(req, "id", tt.authorID)
			rec := httptest.NewRecorder()
			HandleSubscribe(rec, req)

			if rec.Code != tt.wantStatus {
				t.Errorf("expected status %d, got %d", tt.wantStatus, rec.Code)
			}
			if tt.wantCode != "" {
				if apiErr := decodeAPIError(t, rec); apiErr.Code != tt.wantCode {
					t.Errorf("expected code %s, got %s", tt.wantCode, apiErr.Code)
				}
				return
			}

			var resp SubscriptionResponse
			if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
				t.Fatalf("failed to decode response: %v", err)
			}
			if resp.ID != author.ID {
				t.Errorf("expected author ID %d, got %d", author.ID, resp.ID)
			}
			if !resp.IsSubscribed {
				t.Error("expected is_subscribed to be true")
			}
			if resp.RecipesCount != 1 {
				t.Errorf("expected 1 recipe, got %d", resp.RecipesCount)
			}
		})
	}
}

func TestHandleUnsubscribe(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockDB := database.NewMockQuerier(ctrl)

	tests := []struct {
		name       string
		setup      func()
		wantStatus int
		wantCode   apiError.ErrorCode
	}{
		{
			name: "successful unsubscribe",
			setup: func() {
				mockDB.EXPECT().
					DeleteSubscription(gomock.Any(), database.DeleteSubscriptionParams{SubscriberID: 42, AuthorID: 9}).
					Return(int64(1), nil)
			},
			wantStatus: http.StatusNoContent,
		},
		{
			name: "never subscribed",
			setup: func() {
				mockDB.EXPECT().
					DeleteSubscription(gomock.Any(), gomock.Any()).
					Return(int64(0), nil)
			},
			wantStatus: http.StatusNotFound,
			wantCode:   apiError.SubscriptionNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setup()

			req := newUserRequest(t, http.MethodDelete, "/api/users/9/subscribe", "", 42, mockDB)
			req = withURLParam(req, "id", "9")
			rec := httptest.NewRecorder()
			HandleUnsubscribe(rec, req)

			if rec.Code != tt.wantStatus {
				t.Errorf("expected status %d, got %d", tt.wantStatus, rec.Code)
			}
			if tt.wantCode != "" {
				if apiErr := decodeAPIError(t, rec); apiErr.Code != tt.wantCode {
					t.Errorf("expected code %s, got %s", tt.wantCode, apiErr.Code)
				}
			}
		})
	}
}
