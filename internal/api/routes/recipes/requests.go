package recipes

// IngredientAmount references a catalog ingredient with the amount
// used by the recipe.
type IngredientAmount struct {
	ID     int64 `json:"id" validate:"required,gt=0"`
	Amount int32 `json:"amount" validate:"required,gte=1"`
}

type WriteRecipeRequest struct {
	Name        string             `json:"name" validate:"required,max=200"`
	Text        string             `json:"text" validate:"required"`
	CookingTime int32              `json:"cooking_time" validate:"required,gte=1"`
	Ingredients []IngredientAmount `json:"ingredients" validate:"required,min=1,dive"`
	Tags        []int64            `json:"tags" validate:"required,min=1,dive,gt=0"`
}

// duplicateIngredient returns the first ingredient id referenced more
// than once, zero when there are none.
func (r WriteRecipeRequest) duplicateIngredient() int64 {
	seen := make(map[int64]struct{}, len(r.Ingredients))
	for _, ingredient := range r.Ingredients {
		if _, ok := seen[ingredient.ID]; ok {
			return ingredient.ID
		}
		seen[ingredient.ID] = struct{}{}
	}
	return 0
}
