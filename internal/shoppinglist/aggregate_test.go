package shoppinglist

import (
	"reflect"
	"testing"
)

func TestAggregate(t *testing.T) {
	tests := []struct {
		name string
		rows []CartIngredient
		want []Item
	}{
		{
			name: "empty cart",
			rows: nil,
			want: []Item{},
		},
		{
			name: "two recipes sharing an ingredient",
			rows: []CartIngredient{
				{IngredientID: 1, Name: "Flour", MeasurementUnit: "g", Amount: 200},
				{IngredientID: 2, Name: "Sugar", MeasurementUnit: "g", Amount: 50},
				{IngredientID: 1, Name: "Flour", MeasurementUnit: "g", Amount: 100},
				{IngredientID: 3, Name: "Egg", MeasurementUnit: "pcs", Amount: 2},
			},
			want: []Item{
				{Name: "Egg", MeasurementUnit: "pcs", Amount: 2},
				{Name: "Flour", MeasurementUnit: "g", Amount: 300},
				{Name: "Sugar", MeasurementUnit: "g", Amount: 50},
			},
		},
		{
			name: "same name with different units stays separate",
			rows: []CartIngredient{
				{IngredientID: 10, Name: "Milk", MeasurementUnit: "ml", Amount: 250},
				{IngredientID: 11, Name: "Milk", MeasurementUnit: "tbsp", Amount: 2},
				{IngredientID: 10, Name: "Milk", MeasurementUnit: "ml", Amount: 250},
			},
			want: []Item{
				{Name: "Milk", MeasurementUnit: "ml", Amount: 500},
				{Name: "Milk", MeasurementUnit: "tbsp", Amount: 2},
			},
		},
		{
			name: "single row",
			rows: []CartIngredient{
				{IngredientID: 7, Name: "Salt", MeasurementUnit: "g", Amount: 5},
			},
			want: []Item{
				{Name: "Salt", MeasurementUnit: "g", Amount: 5},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Aggregate(tt.rows)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Aggregate() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestAggregateSumsLargeAmounts(t *testing.T) {
	rows := []CartIngredient{
		{IngredientID: 1, Name: "Rice", MeasurementUnit: "g", Amount: 2_000_000_000},
		{IngredientID: 1, Name: "Rice", MeasurementUnit: "g", Amount: 2_000_000_000},
	}

	got := Aggregate(rows)
	if len(got) != 1 {
		t.Fatalf("Aggregate() returned %d items, want 1", len(got))
	}
	if got[0].Amount != 4_000_000_000 {
		t.Errorf("Amount = %d, want 4000000000", got[0].Amount)
	}
}

func TestAggregateIsStable(t *testing.T) {
	rows := []CartIngredient{
		{IngredientID: 3, Name: "Egg", MeasurementUnit: "pcs", Amount: 2},
		{IngredientID: 1, Name: "Flour", MeasurementUnit: "g", Amount: 200},
		{IngredientID: 2, Name: "Sugar", MeasurementUnit: "g", Amount: 50},
	}

	first := Aggregate(rows)
	second := Aggregate(rows)
	if !reflect.DeepEqual(first, second) {
		t.Errorf("repeated aggregation differs: %+v vs %+v", first, second)
	}
}
