package error

import "net/http"

type ErrorCode string

const (
	UnknownError        ErrorCode = "unknown_error"
	InternalServerError ErrorCode = "internal_server_error"
	BadRequest          ErrorCode = "bad_request"
	ValidationFailed    ErrorCode = "validation_failed"
	StorageUnavailable  ErrorCode = "storage_unavailable"
	TooManyRequests     ErrorCode = "too_many_requests"

	InvalidCredentials      ErrorCode = "invalid_credentials"
	InvalidAuthToken        ErrorCode = "invalid_auth_token"
	ExpiredAuthToken        ErrorCode = "expired_auth_token"
	InsufficientPermissions ErrorCode = "insufficient_permissions"
	WeakPassword            ErrorCode = "weak_password"

	EmailConflict    ErrorCode = "email_conflict"
	UsernameConflict ErrorCode = "username_conflict"

	RecipeNotFound       ErrorCode = "recipe_not_found"
	RecipeNotOwned       ErrorCode = "recipe_not_owned"
	IngredientNotFound   ErrorCode = "ingredient_not_found"
	TagNotFound          ErrorCode = "tag_not_found"
	UserNotFound         ErrorCode = "user_not_found"
	FavoriteNotFound     ErrorCode = "favorite_not_found"
	CartItemNotFound     ErrorCode = "cart_item_not_found"
	SubscriptionNotFound ErrorCode = "subscription_not_found"

	AlreadySubscribed ErrorCode = "already_subscribed"
	SelfSubscription  ErrorCode = "self_subscription"
)

var errorCodeToStatusCode = map[ErrorCode]int{
	UnknownError:        0, // No error code - unknown
	InternalServerError: http.StatusInternalServerError,
	BadRequest:          http.StatusBadRequest,
	ValidationFailed:    http.StatusBadRequest,
	StorageUnavailable:  http.StatusServiceUnavailable,
	TooManyRequests:     http.StatusTooManyRequests,

	InvalidCredentials:      http.StatusUnauthorized,
	InvalidAuthToken:        http.StatusUnauthorized,
	ExpiredAuthToken:        http.StatusUnauthorized,
	InsufficientPermissions: http.StatusForbidden,
	WeakPassword:            http.StatusUnprocessableEntity,

	EmailConflict:    http.StatusConflict,
	UsernameConflict: http.StatusConflict,

	RecipeNotFound:       http.StatusNotFound,
	RecipeNotOwned:       http.StatusForbidden,
	IngredientNotFound:   http.StatusNotFound,
	TagNotFound:          http.StatusNotFound,
	UserNotFound:         http.StatusNotFound,
	FavoriteNotFound:     http.StatusNotFound,
	CartItemNotFound:     http.StatusNotFound,
	SubscriptionNotFound: http.StatusNotFound,

	AlreadySubscribed: http.StatusBadRequest,
	SelfSubscription:  http.StatusBadRequest,
}

func (ec ErrorCode) StatusCode() int {
	return errorCodeToStatusCode[ec]
}

func (ec ErrorCode) String() string {
	return string(ec)
}
