package database

import "context"

// Querier is the narrow contract the handlers depend on. MockQuerier
// in mock_querier.go implements it for tests.
type Querier interface {
	// Users
	CreateUser(ctx context.Context, arg CreateUserParams) (int64, error)
	GetUserByID(ctx context.Context, id int64) (User, error)
	GetUserByEmail(ctx context.Context, email string) (User, error)
	ListUsers(ctx context.Context, arg ListUsersParams) ([]User, error)
	UpdateUserProfile(ctx context.Context, arg UpdateUserProfileParams) (User, error)
	GetAdminCount(ctx context.Context) (int64, error)

	// Tag and ingredient catalogs
	UpsertTag(ctx context.Context, arg UpsertTagParams) error
	GetTag(ctx context.Context, id int64) (Tag, error)
	ListTags(ctx context.Context) ([]Tag, error)
	UpsertIngredient(ctx context.Context, arg UpsertIngredientParams) error
	GetIngredient(ctx context.Context, id int64) (Ingredient, error)
	ListIngredients(ctx context.Context, arg ListIngredientsParams) ([]Ingredient, error)
	CountIngredients(ctx context.Context) (int64, error)

	// Recipes
	CreateRecipe(ctx context.Context, arg CreateRecipeParams) (int64, error)
	GetRecipe(ctx context.Context, id int64) (Recipe, error)
	ListRecipes(ctx context.Context, arg ListRecipesParams) ([]Recipe, error)
	UpdateRecipe(ctx context.Context, arg UpdateRecipeParams) (int64, error)
	UpdateRecipeImage(ctx context.Context, arg UpdateRecipeImageParams) error
	DeleteRecipe(ctx context.Context, id int64) (int64, error)
	CheckRecipeOwnership(ctx context.Context, arg CheckRecipeOwnershipParams) (bool, error)
	AddRecipeIngredient(ctx context.Context, arg AddRecipeIngredientParams) error
	DeleteRecipeIngredients(ctx context.Context, recipeID int64) error
	ListRecipeIngredients(ctx context.Context, recipeID int64) ([]ListRecipeIngredientsRow, error)
	AddRecipeTag(ctx context.Context, arg AddRecipeTagParams) error
	DeleteRecipeTags(ctx context.Context, recipeID int64) error
	ListRecipeTags(ctx context.Context, recipeID int64) ([]Tag, error)

	// Favorites, shopping cart, subscriptions
	AddFavorite(ctx context.Context, arg AddFavoriteParams) (int64, error)
	DeleteFavorite(ctx context.Context, arg DeleteFavoriteParams) (int64, error)
	IsFavorited(ctx context.Context, arg IsFavoritedParams) (bool, error)
	AddCartItem(ctx context.Context, arg AddCartItemParams) (int64, error)
	DeleteCartItem(ctx context.Context, arg DeleteCartItemParams) (int64, error)
	IsInShoppingCart(ctx context.Context, arg IsInShoppingCartParams) (bool, error)
	ListShoppingCartIngredients(ctx context.Context, userID int64) ([]ListShoppingCartIngredientsRow, error)
	AddSubscription(ctx context.Context, arg AddSubscriptionParams) error
	DeleteSubscription(ctx context.Context, arg DeleteSubscriptionParams) (int64, error)
	IsSubscribed(ctx context.Context, arg IsSubscribedParams) (bool, error)
	ListSubscribedAuthors(ctx context.Context, subscriberID int64) ([]User, error)

	// Schema management
	CheckUsersTableExists(ctx context.Context) (bool, error)
	ApplySchema(ctx context.Context) error
}

var _ Querier = (*Queries)(nil)
