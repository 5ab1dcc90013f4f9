// Package shoppinglist turns a user's shopping cart into a consolidated,
// downloadable ingredient list.
package shoppinglist

import "sort"

// CartIngredient is one recipe-ingredient row expanded from the cart.
type CartIngredient struct {
	IngredientID    int64
	Name            string
	MeasurementUnit string
	Amount          int32
}

// Item is one consolidated line of the shopping list.
type Item struct {
	Name            string
	MeasurementUnit string
	Amount          int64
}

// Aggregate groups cart rows by ingredient identity and sums their
// amounts. The result is ordered by name, then measurement unit, so
// repeated aggregations of the same cart are identical. An empty cart
// yields an empty slice.
//
// The ingredient catalog is unique on (name, measurement_unit), so
// grouping by identity and grouping by display name coincide.
func Aggregate(rows []CartIngredient) []Item {
	totals := make(map[int64]*Item, len(rows))
	for _, row := range rows {
		if t, ok := totals[row.IngredientID]; ok {
			t.Amount += int64(row.Amount)
			continue
		}
		totals[row.IngredientID] = &Item{
			Name:            row.Name,
			MeasurementUnit: row.MeasurementUnit,
			Amount:          int64(row.Amount),
		}
	}

	items := make([]Item, 0, len(totals))
	for _, t := range totals {
		items = append(items, *t)
	}
	sort.Slice(items, func(i, j int) bool {
		if items[i].Name != items[j].Name {
			return items[i].Name < items[j].Name
		}
		return items[i].MeasurementUnit < items[j].MeasurementUnit
	})

	return items
}
