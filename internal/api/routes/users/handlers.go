// Package users contains handlers for the user resource.
package users

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	apiError "github.com/platefeed/platefeed/internal/api/error"
	"github.com/platefeed/platefeed/internal/api/requestid"
	"github.com/platefeed/platefeed/internal/api/token"
	"github.com/platefeed/platefeed/internal/argon2id"
	"github.com/platefeed/platefeed/internal/database"
	"github.com/platefeed/platefeed/internal/email"
	"github.com/platefeed/platefeed/internal/env"
	pfJson "github.com/platefeed/platefeed/internal/json"
	"github.com/platefeed/platefeed/internal/password"
)

const (
	defaultPageLimit = 10
	maxPageLimit     = 100

	defaultSubscriptionRecipes = 3
)

func pageParams(r *http.Request) (limit, offset int32) {
	limit = defaultPageLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if parsed, err := strconv.ParseInt(raw, 10, 32); err == nil && parsed > 0 {
			limit = int32(parsed)
		}
	}
	if limit > maxPageLimit {
		limit = maxPageLimit
	}
	if raw := r.URL.Query().Get("offset"); raw != "" {
		if parsed, err := strconv.ParseInt(raw, 10, 32); err == nil && parsed >= 0 {
			offset = int32(parsed)
		}
	}
	return limit, offset
}

func writeJSON(w http.ResponseWriter, status int, body any, logger *slog.Logger) {
	resp, err := json.Marshal(body)
	if err != nil {
		logger.Error("Failed to marshal response", slog.Any("error", err))
		return
	}
	w.Header().Add("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := w.Write(resp); err != nil {
		logger.Error("Failed to write response", slog.Any("error", err))
	}
}

// HandleCreateUser godoc
//
//	@Summary	Sign up a new user.
//	@Tags		User
//
//	@Accept		json
//	@Produce	json
//	@Param		request	body		CreateUserRequest	true	"Create User Request"
//
//	@Success	201		{object}	CreateUserResponse
//	@Failure	409		{object}	apiError.Error	"Status Conflict"
//	@Failure	422		{object}	apiError.Error	"Unprocessible Entity"
//	@Router		/api/users [POST]
func HandleCreateUser(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	env := env.EnvFromCtx(ctx)
	requestID := strconv.FormatUint(requestid.ExtractRequestID(ctx), 10)

	// Decode JSON
	var request CreateUserRequest
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
		_ = apiError.EncodeValidationError(w, err, requestID)
		return
	}

	// Ensure password strength
	env.Logger.DebugContext(ctx, "Validating password")
	if err := password.ValidatePassword(request.Password); err != nil {
		env.Logger.ErrorContext(ctx, "Failed to validate password", slog.Any("error", err))
		_ = apiError.EncodeError(w, apiError.WeakPassword, err.Error(), requestID) // OK to share the error with client.
		return
	}

	// Hash password
	env.Logger.DebugContext(ctx, "Hashing password")
	hash, err := argon2id.EncodeHash(request.Password, argon2id.DefaultParams)
	if err != nil {
		env.Logger.ErrorContext(ctx, "Failed to hash password", slog.Any("error", err))
		_ = apiError.EncodeInternalError(w, requestID)
		return
	}

	// Create user
	env.Logger.DebugContext(ctx, "Creating user")
	userID, err := env.Database.CreateUser(ctx, database.CreateUserParams{
		Email:        request.Email,
		Username:     request.Username,
		FirstName:    request.FirstName,
		LastName:     request.LastName,
		PasswordHash: hash,
		Role:         database.RoleUser,
	})
	if database.IsUniqueViolation(err) {
		constraint := database.ConstraintName(err)
		if strings.Contains(constraint, "email") {
			env.Logger.ErrorContext(ctx, "User with email already exists", slog.Any("error", err))
			_ = apiError.EncodeError(w, apiError.EmailConflict, "email already in use", requestID)
			return
		}
		env.Logger.ErrorContext(ctx, "User with username already exists", slog.Any("error", err))
		_ = apiError.EncodeError(w, apiError.UsernameConflict, "username already in use", requestID)
		return
	} else if err != nil {
		env.Logger.ErrorContext(ctx, "Failed to create user", slog.Any("error", err))
		_ = apiError.EncodeInternalError(w, requestID)
		return
	}

	// Send welcome mail. Failures only get logged, signup already
	// succeeded.
	if env.SMTP != nil {
		subject, body := email.WelcomeBody(request.Username)
		go func() {
			if err := env.SMTP.Send([]string{request.Email}, subject, body); err != nil {
				env.Logger.Error("Failed to send welcome email", slog.Any("error", err))
			}
		}()
	}

	// Write response
	env.Logger.DebugContext(ctx, "Writing response")
	writeJSON(w, http.StatusCreated, CreateUserResponse{
		ID:        userID,
		Email:     request.Email,
		Username:  request.Username,
		FirstName: request.FirstName,
		LastName:  request.LastName,
	}, env.Logger)
}

// HandleListUsers godoc
//
//	@Summary	List users.
//	@Tags		User
//
//	@Produce	json
//	@Param		limit	query		int	false	"Page size"
//	@Param		offset	query		int	false	"Page offset"
//
//	@Success	200		{array}		UserResponse
//	@Router		/api/users [GET]
func HandleListUsers(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	env := env.EnvFromCtx(ctx)
	requestID := strconv.FormatUint(requestid.ExtractRequestID(ctx), 10)

	limit, offset := pageParams(r)

	env.Logger.DebugContext(ctx, "Listing users")
	users, err := env.Database.ListUsers(ctx, database.ListUsersParams{
		Limit:  limit,
		Offset: offset,
	})
	if err != nil {
		env.Logger.ErrorContext(ctx, "Failed to list users", slog.Any("error", err))
		_ = apiError.EncodeError(w, apiError.StorageUnavailable, "storage unavailable", requestID)
		return
	}

	viewerID, viewerErr := token.UserIDFromCtx(ctx)

	response := make([]UserResponse, 0, len(users))
	for _, user := range users {
		isSubscribed := false
		if viewerErr == nil && viewerID != user.ID {
			isSubscribed, err = env.Database.IsSubscribed(ctx, database.IsSubscribedParams{
				SubscriberID: viewerID,
				AuthorID:     user.ID,
			})
			if err != nil {
				env.Logger.ErrorContext(ctx, "Failed to check subscription", slog.Any("error", err))
				_ = apiError.EncodeInternalError(w, requestID)
				return
			}
		}
		response = append(response, newUserResponse(user, isSubscribed))
	}

	env.Logger.DebugContext(ctx, "Writing response")
	writeJSON(w, http.StatusOK, response, env.Logger)
}

// HandleGetUser godoc
//
//	@Summary	Get a user profile.
//	@Tags		User
//
//	@Produce	json
//	@Param		id	path		int	true	"User ID"
//
//	@Success	200	{object}	UserResponse
//	@Failure	404	{object}	apiError.Error	"Not Found"
//	@Router		/api/users/{id} [GET]
func HandleGetUser(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	env := env.EnvFromCtx(ctx)
	requestID := strconv.FormatUint(requestid.ExtractRequestID(ctx), 10)

	userID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		env.Logger.ErrorContext(ctx, "Failed to parse user id", slog.Any("error", err))
		_ = apiError.EncodeError(w, apiError.BadRequest, "invalid user id", requestID)
		return
	}

	env.Logger.DebugContext(ctx, "Retrieving user")
	user, err := env.Database.GetUserByID(ctx, userID)
	if errors.Is(err, pgx.ErrNoRows) {
		env.Logger.ErrorContext(ctx, "User does not exist", slog.Int64("user_id", userID))
		_ = apiError.EncodeError(w, apiError.UserNotFound, "user not found", requestID)
		return
	} else if err != nil {
		env.Logger.ErrorContext(ctx, "Failed to retrieve user", slog.Any("error", err))
		_ = apiError.EncodeInternalError(w, requestID)
		return
	}

	isSubscribed := false
	if viewerID, viewerErr := token.UserIDFromCtx(ctx); viewerErr == nil && viewerID != user.ID {
		isSubscribed, err = env.Database.IsSubscribed(ctx, database.IsSubscribedParams{
			SubscriberID: viewerID,
			AuthorID:     user.ID,
		})
		if err != nil {
			env.Logger.ErrorContext(ctx, "Failed to check subscription", slog.Any("error", err))
			_ = apiError.EncodeInternalError(w, requestID)
			return
		}
	}

	env.Logger.DebugContext(ctx, "Writing response")
	writeJSON(w, http.StatusOK, newUserResponse(user, isSubscribed), env.Logger)
}

// HandleGetMe godoc
//
//	@Summary	Get the caller's profile.
//	@Tags		User
//
//	@Produce	json
//	@Success	200	{object}	UserResponse
//	@Failure	401	{object}	apiError.Error	"Unauthorized"
//	@Router		/api/users/me [GET]
func HandleGetMe(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	env := env.EnvFromCtx(ctx)
	requestID := strconv.FormatUint(requestid.ExtractRequestID(ctx), 10)

	userID, err := token.UserIDFromCtx(ctx)
	if err != nil {
		env.Logger.ErrorContext(ctx, "No user id in context", slog.Any("error", err))
		_ = apiError.EncodeError(w, apiError.InvalidAuthToken, "authentication required", requestID)
		return
	}

	env.Logger.DebugContext(ctx, "Retrieving user")
	user, err := env.Database.GetUserByID(ctx, userID)
	if err != nil {
		env.Logger.ErrorContext(ctx, "Failed to retrieve user", slog.Any("error", err))
		_ = apiError.EncodeInternalError(w, requestID)
		return
	}

	env.Logger.DebugContext(ctx, "Writing response")
	writeJSON(w, http.StatusOK, newUserResponse(user, false), env.Logger)
}

// HandleUpdateMe godoc
//
//	@Summary	Update the caller's profile.
//	@Tags		User
//
//	@Accept		json
//	@Produce	json
//	@Param		request	body		UpdateProfileRequest	true	"Update Profile Request"
//
//	@Success	200		{object}	UserResponse
//	@Failure	409		{object}	apiError.Error	"Status Conflict"
//	@Router		/api/users/me [PATCH]
func HandleUpdateMe(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	env := env.EnvFromCtx(ctx)
	requestID := strconv.FormatUint(requestid.ExtractRequestID(ctx), 10)

	userID, err := token.UserIDFromCtx(ctx)
	if err != nil {
		env.Logger.ErrorContext(ctx, "No user id in context", slog.Any("error", err))
		_ = apiError.EncodeError(w, apiError.InvalidAuthToken, "authentication required", requestID)
		return
	}

	// Decode JSON
	var request UpdateProfileRequest
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
		_ = apiError.EncodeValidationError(w, err, requestID)
		return
	}

	// Update profile
	env.Logger.DebugContext(ctx, "Updating profile")
	user, err := env.Database.UpdateUserProfile(ctx, database.UpdateUserProfileParams{
		ID:        userID,
		Username:  request.Username,
		FirstName: request.FirstName,
		LastName:  request.LastName,
	})
	if database.IsUniqueViolation(err) {
		env.Logger.ErrorContext(ctx, "Username already taken", slog.Any("error", err))
		_ = apiError.EncodeError(w, apiError.UsernameConflict, "username already in use", requestID)
		return
	} else if err != nil {
		env.Logger.ErrorContext(ctx, "Failed to update profile", slog.Any("error", err))
		_ = apiError.EncodeInternalError(w, requestID)
		return
	}

	env.Logger.DebugContext(ctx, "Writing response")
	writeJSON(w, http.StatusOK, newUserResponse(user, false), env.Logger)
}

// HandleSubscribe godoc
//
//	@Summary	Subscribe to an author.
//	@Tags		User
//
//	@Produce	json
//	@Param		id	path		int	true	"Author ID"
//
//	@Success	201	{object}	SubscriptionResponse
//	@Failure	400	{object}	apiError.Error	"Already subscribed or self subscription"
//	@Failure	404	{object}	apiError.Error	"Author not found"
//	@Router		/api/users/{id}/subscribe [POST]
func HandleSubscribe(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	env := env.EnvFromCtx(ctx)
	requestID := strconv.FormatUint(requestid.ExtractRequestID(ctx), 10)

	subscriberID, err := token.UserIDFromCtx(ctx)
	if err != nil {
		env.Logger.ErrorContext(ctx, "No user id in context", slog.Any("error", err))
		_ = apiError.EncodeError(w, apiError.InvalidAuthToken, "authentication required", requestID)
		return
	}

	authorID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		env.Logger.ErrorContext(ctx, "Failed to parse author id", slog.Any("error", err))
		_ = apiError.EncodeError(w, apiError.BadRequest, "invalid user id", requestID)
		return
	}
	if authorID == subscriberID {
		env.Logger.ErrorContext(ctx, "User attempted to subscribe to themselves")
		_ = apiError.EncodeError(w, apiError.SelfSubscription, "cannot subscribe to yourself", requestID)
		return
	}

	// Create subscription
	env.Logger.DebugContext(ctx, "Creating subscription")
	err = env.Database.AddSubscription(ctx, database.AddSubscriptionParams{
		SubscriberID: subscriberID,
		AuthorID:     authorID,
	})
	if database.IsUniqueViolation(err) {
		env.Logger.ErrorContext(ctx, "Already subscribed", slog.Any("error", err))
		_ = apiError.EncodeError(w, apiError.AlreadySubscribed, "already subscribed", requestID)
		return
	} else if database.IsForeignKeyViolation(err) {
		env.Logger.ErrorContext(ctx, "Author does not exist", slog.Any("error", err))
		_ = apiError.EncodeError(w, apiError.UserNotFound, "user not found", requestID)
		return
	} else if database.IsCheckViolation(err) {
		env.Logger.ErrorContext(ctx, "User attempted to subscribe to themselves", slog.Any("error", err))
		_ = apiError.EncodeError(w, apiError.SelfSubscription, "cannot subscribe to yourself", requestID)
		return
	} else if err != nil {
		env.Logger.ErrorContext(ctx, "Failed to create subscription", slog.Any("error", err))
		_ = apiError.EncodeInternalError(w, requestID)
		return
	}

	// Assemble the author with a recipe preview
	env.Logger.DebugContext(ctx, "Retrieving author")
	author, err := env.Database.GetUserByID(ctx, authorID)
	if err != nil {
		env.Logger.ErrorContext(ctx, "Failed to retrieve author", slog.Any("error", err))
		_ = apiError.EncodeInternalError(w, requestID)
		return
	}
	response, err := subscriptionResponse(r, env, author, defaultSubscriptionRecipes)
	if err != nil {
		env.Logger.ErrorContext(ctx, "Failed to assemble subscription", slog.Any("error", err))
		_ = apiError.EncodeInternalError(w, requestID)
		return
	}

	env.Logger.DebugContext(ctx, "Writing response")
	writeJSON(w, http.StatusCreated, response, env.Logger)
}

// HandleUnsubscribe godoc
//
//	@Summary	Unsubscribe from an author.
//	@Tags		User
//
//	@Param		id	path	int	true	"Author ID"
//
//	@Success	204
//	@Failure	404	{object}	apiError.Error	"Not subscribed"
//	@Router		/api/users/{id}/subscribe [DELETE]
func HandleUnsubscribe(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	env := env.EnvFromCtx(ctx)
	requestID := strconv.FormatUint(requestid.ExtractRequestID(ctx), 10)

	subscriberID, err := token.UserIDFromCtx(ctx)
	if err != nil {
		env.Logger.ErrorContext(ctx, "No user id in context", slog.Any("error", err))
		_ = apiError.EncodeError(w, apiError.InvalidAuthToken, "authentication required", requestID)
		return
	}

	authorID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		env.Logger.ErrorContext(ctx, "Failed to parse author id", slog.Any("error", err))
		_ = apiError.EncodeError(w, apiError.BadRequest, "invalid user id", requestID)
		return
	}

	env.Logger.DebugContext(ctx, "Deleting subscription")
	rows, err := env.Database.DeleteSubscription(ctx, database.DeleteSubscriptionParams{
		SubscriberID: subscriberID,
		AuthorID:     authorID,
	})
	if err != nil {
		env.Logger.ErrorContext(ctx, "Failed to delete subscription", slog.Any("error", err))
		_ = apiError.EncodeInternalError(w, requestID)
		return
	}
	if rows == 0 {
		env.Logger.ErrorContext(ctx, "Subscription does not exist")
		_ = apiError.EncodeError(w, apiError.SubscriptionNotFound, "not subscribed", requestID)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// HandleListSubscriptions godoc
//
//	@Summary	List subscribed authors with recipe previews.
//	@Tags		User
//
//	@Produce	json
//	@Param		recipes_limit	query		int	false	"Recipes per author"
//
//	@Success	200				{array}		SubscriptionResponse
//	@Router		/api/users/subscriptions [GET]
func HandleListSubscriptions(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	env := env.EnvFromCtx(ctx)
	requestID := strconv.FormatUint(requestid.ExtractRequestID(ctx), 10)

	subscriberID, err := token.UserIDFromCtx(ctx)
	if err != nil {
		env.Logger.ErrorContext(ctx, "No user id in context", slog.Any("error", err))
		_ = apiError.EncodeError(w, apiError.InvalidAuthToken, "authentication required", requestID)
		return
	}

	recipesLimit := int32(defaultSubscriptionRecipes)
	if raw := r.URL.Query().Get("recipes_limit"); raw != "" {
		if parsed, err := strconv.ParseInt(raw, 10, 32); err == nil && parsed > 0 {
			recipesLimit = int32(parsed)
		}
	}

	env.Logger.DebugContext(ctx, "Listing subscribed authors")
	authors, err := env.Database.ListSubscribedAuthors(ctx, subscriberID)
	if err != nil {
		env.Logger.ErrorContext(ctx, "Failed to list subscriptions", slog.Any("error", err))
		_ = apiError.EncodeError(w, apiError.StorageUnavailable, "storage unavailable", requestID)
		return
	}

	response := make([]SubscriptionResponse, 0, len(authors))
	for _, author := range authors {
		entry, err := subscriptionResponse(r, env, author, recipesLimit)
		if err != nil {
			env.Logger.ErrorContext(ctx, "Failed to assemble subscription", slog.Any("error", err))
			_ = apiError.EncodeInternalError(w, requestID)
			return
		}
		response = append(response, entry)
	}

	env.Logger.DebugContext(ctx, "Writing response")
	writeJSON(w, http.StatusOK, response, env.Logger)
}

func subscriptionResponse(
	r *http.Request,
	env *env.Env,
	author database.User,
	recipesLimit int32,
) (SubscriptionResponse, error) {
	recipes, err := env.Database.ListRecipes(r.Context(), database.ListRecipesParams{
		AuthorID: pgtype.Int8{Int64: author.ID, Valid: true},
		Limit:    recipesLimit,
	})
	if err != nil {
		return SubscriptionResponse{}, err
	}
	return SubscriptionResponse{
		UserResponse: newUserResponse(author, true),
		Recipes:      newRecipeSummaries(recipes),
		RecipesCount: len(recipes),
	}, nil
}
