package database

import "context"

// The add queries below rely on ON CONFLICT DO NOTHING so that racing
// duplicate requests from the same user stay idempotent and neither
// caller observes an error.

const addFavorite = `
INSERT INTO favorites (user_id, recipe_id)
VALUES ($1, $2)
ON CONFLICT DO NOTHING
`

type AddFavoriteParams struct {
	UserID   int64
	RecipeID int64
}

func (q *Queries) AddFavorite(ctx context.Context, arg AddFavoriteParams) (int64, error) {
	tag, err := q.db.Exec(ctx, addFavorite, arg.UserID, arg.RecipeID)
	return tag.RowsAffected(), err
}

const deleteFavorite = `
DELETE FROM favorites WHERE user_id = $1 AND recipe_id = $2
`

type DeleteFavoriteParams struct {
	UserID   int64
	RecipeID int64
}

func (q *Queries) DeleteFavorite(ctx context.Context, arg DeleteFavoriteParams) (int64, error) {
	tag, err := q.db.Exec(ctx, deleteFavorite, arg.UserID, arg.RecipeID)
	return tag.RowsAffected(), err
}

const isFavorited = `
SELECT EXISTS (SELECT 1 FROM favorites WHERE user_id = $1 AND recipe_id = $2)
`

type IsFavoritedParams struct {
	UserID   int64
	RecipeID int64
}

func (q *Queries) IsFavorited(ctx context.Context, arg IsFavoritedParams) (bool, error) {
	row := q.db.QueryRow(ctx, isFavorited, arg.UserID, arg.RecipeID)
	var exists bool
	err := row.Scan(&exists)
	return exists, err
}

const addCartItem = `
INSERT INTO shopping_cart (user_id, recipe_id)
VALUES ($1, $2)
ON CONFLICT DO NOTHING
`

type AddCartItemParams struct {
	UserID   int64
	RecipeID int64
}

func (q *Queries) AddCartItem(ctx context.Context, arg AddCartItemParams) (int64, error) {
	tag, err := q.db.Exec(ctx, addCartItem, arg.UserID, arg.RecipeID)
	return tag.RowsAffected(), err
}

const deleteCartItem = `
DELETE FROM shopping_cart WHERE user_id = $1 AND recipe_id = $2
`

type DeleteCartItemParams struct {
	UserID   int64
	RecipeID int64
}

func (q *Queries) DeleteCartItem(ctx context.Context, arg DeleteCartItemParams) (int64, error) {
	tag, err := q.db.Exec(ctx, deleteCartItem, arg.UserID, arg.RecipeID)
	return tag.RowsAffected(), err
}

const isInShoppingCart = `
SELECT EXISTS (SELECT 1 FROM shopping_cart WHERE user_id = $1 AND recipe_id = $2)
`

type IsInShoppingCartParams struct {
	UserID   int64
	RecipeID int64
}

func (q *Queries) IsInShoppingCart(ctx context.Context, arg IsInShoppingCartParams) (bool, error) {
	row := q.db.QueryRow(ctx, isInShoppingCart, arg.UserID, arg.RecipeID)
	var exists bool
	err := row.Scan(&exists)
	return exists, err
}

const listShoppingCartIngredients = `
SELECT ri.ingredient_id, i.name, i.measurement_unit, ri.amount
FROM shopping_cart sc
JOIN recipe_ingredients ri ON ri.recipe_id = sc.recipe_id
JOIN ingredients i ON i.id = ri.ingredient_id
WHERE sc.user_id = $1
ORDER BY i.name, i.measurement_unit
`

type ListShoppingCartIngredientsRow struct {
	IngredientID    int64
	Name            string
	MeasurementUnit string
	Amount          int32
}

func (q *Queries) ListShoppingCartIngredients(ctx context.Context, userID int64) ([]ListShoppingCartIngredientsRow, error) {
	rows, err := q.db.Query(ctx, listShoppingCartIngredients, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []ListShoppingCartIngredientsRow
	for rows.Next() {
		var r ListShoppingCartIngredientsRow
		if err := rows.Scan(&r.IngredientID, &r.Name, &r.MeasurementUnit, &r.Amount); err != nil {
			return nil, err
		}
		items = append(items, r)
	}
	return items, rows.Err()
}

const addSubscription = `
INSERT INTO subscriptions (subscriber_id, author_id)
VALUES ($1, $2)
`

type AddSubscriptionParams struct {
	SubscriberID int64
	AuthorID     int64
}

// AddSubscription inserts without ON CONFLICT: a duplicate surfaces as a
// unique violation so the handler can report the conflict.
func (q *Queries) AddSubscription(ctx context.Context, arg AddSubscriptionParams) error {
	_, err := q.db.Exec(ctx, addSubscription, arg.SubscriberID, arg.AuthorID)
	return err
}

const deleteSubscription = `
DELETE FROM subscriptions WHERE subscriber_id = $1 AND author_id = $2
`

type DeleteSubscriptionParams struct {
	SubscriberID int64
	AuthorID     int64
}

func (q *Queries) DeleteSubscription(ctx context.Context, arg DeleteSubscriptionParams) (int64, error) {
	tag, err := q.db.Exec(ctx, deleteSubscription, arg.SubscriberID, arg.AuthorID)
	return tag.RowsAffected(), err
}

const isSubscribed = `
SELECT EXISTS (SELECT 1 FROM subscriptions WHERE subscriber_id = $1 AND author_id = $2)
`

type IsSubscribedParams struct {
	SubscriberID int64
	AuthorID     int64
}

func (q *Queries) IsSubscribed(ctx context.Context, arg IsSubscribedParams) (bool, error) {
	row := q.db.QueryRow(ctx, isSubscribed, arg.SubscriberID, arg.AuthorID)
	var exists bool
	err := row.Scan(&exists)
	return exists, err
}

const listSubscribedAuthors = `
SELECT u.id, u.email, u.username, u.first_name, u.last_name, u.password_hash, u.role, u.created_at
FROM subscriptions s
JOIN users u ON u.id = s.author_id
WHERE s.subscriber_id = $1
ORDER BY u.username
`

func (q *Queries) ListSubscribedAuthors(ctx context.Context, subscriberID int64) ([]User, error) {
	rows, err := q.db.Query(ctx, listSubscribedAuthors, subscriberID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []User
	for rows.Next() {
		var u User
		if err := rows.Scan(
			&u.ID,
			&u.Email,
			&u.Username,
			&u.FirstName,
			&u.LastName,
			&u.PasswordHash,
			&u.Role,
			&u.CreatedAt,
		); err != nil {
			return nil, err
		}
		items = append(items, u)
	}
	return items, rows.Err()
}
