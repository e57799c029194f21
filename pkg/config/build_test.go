package config

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bistroworks/bistro/pkg/kitchen"
	"github.com/bistroworks/bistro/pkg/menu"
)

func TestBuild(t *testing.T) {
	def := &Definition{
		Name: "Corner Bistro",
		Menu: []DishConfig{{
			Name:         "Burger",
			Course:       menu.CourseMainCourse,
			Requirements: []RequirementConfig{{Name: "Bun", Quantity: 1}, {Name: "Patty", Quantity: 1}},
			PrepMinutes:  8,
			Price:        12.5,
		}},
		Stations: []StationConfig{
			{Name: "Grill", Items: []string{"Burger"}, Stock: []IngredientConfig{{Name: "Bun", Quantity: 1}}},
			{Name: "Prep"},
		},
		Backup: []IngredientConfig{{Name: "Patty", Quantity: 3}, {Name: "Bun", Quantity: 1}},
		Orders: []OrderConfig{{Item: "Burger", Count: 2}},
	}

	k, err := Build(def, kitchen.WithSessionID("build-test"))
	require.NoError(t, err)
	assert.Equal(t, "build-test", k.ID())

	stations := k.Registry().Stations()
	require.Len(t, stations, 2)
	assert.Equal(t, "Grill", stations[0].Name())
	assert.Equal(t, "Prep", stations[1].Name())
	assert.Equal(t, 1, stations[0].Quantity("Bun"))
	assert.Equal(t, 3, k.Backup().Quantity("Patty"))

	orders := k.PendingOrders()
	require.Len(t, orders, 2)
	grillBurger, ok := stations[0].Item("Burger")
	require.True(t, ok)
	assert.Same(t, grillBurger, orders[0].Item)
	assert.Same(t, orders[0].Item, orders[1].Item)

	dish := grillBurger.(*menu.Dish)
	assert.Equal(t, 8, dish.PrepMinutes)
	assert.Equal(t, 12.5, dish.Price)

	result := k.ProcessAll(context.Background())
	assert.Equal(t, kitchen.DrainOutcomeDrained, result.Outcome)
	assert.Len(t, result.Fulfilled, 2)
	assert.Equal(t, 1, k.Backup().Quantity("Patty"))
	assert.Equal(t, 0, k.Backup().Quantity("Bun"))
}

func TestBuild_DietaryRequestIsShared(t *testing.T) {
	def := &Definition{
		Name: "Chili House",
		Menu: []DishConfig{{
			Name:         "Chili",
			Course:       menu.CourseMainCourse,
			Requirements: []RequirementConfig{{Name: "Beef", Quantity: 1}, {Name: "Rice", Quantity: 1}},
			Main:         &menu.MainCourseDetails{ProteinType: "Beef"},
		}},
		Stations: []StationConfig{{Name: "Stove", Items: []string{"Chili"}}},
		Orders: []OrderConfig{
			{Item: "Chili"},
			{Item: "Chili", Dietary: &kitchen.DietaryRequest{Vegetarian: true}},
		},
	}

	k, err := Build(def)
	require.NoError(t, err)

	item, ok := k.Registry().Stations()[0].Item("Chili")
	require.True(t, ok)
	assert.Equal(t, []kitchen.Requirement{{Name: "Beans", Quantity: 1}, {Name: "Rice", Quantity: 1}}, item.Requirements())
	assert.Equal(t, "Tofu", item.(*menu.Dish).Main.ProteinType)
}

func TestBuild_UnknownDish(t *testing.T) {
	def := validDefinition()
	def.Orders = append(def.Orders, OrderConfig{Item: "Soup"})

	_, err := Build(def)
	assert.ErrorContains(t, err, `unknown dish "Soup"`)
}

func TestDishes_CourseAttributes(t *testing.T) {
	def := &Definition{
		Name: "k",
		Menu: []DishConfig{
			{Name: "Wings", Course: menu.CourseAppetizer, Requirements: []RequirementConfig{{Name: "Chicken", Quantity: 6}},
				Appetizer: &menu.AppetizerDetails{Spiciness: 4}},
			{Name: "Pie", Course: menu.CourseDessert, Requirements: []RequirementConfig{{Name: "Flour", Quantity: 1}}},
		},
	}

	dishes, err := Dishes(def)
	require.NoError(t, err)
	require.Len(t, dishes, 2)
	assert.Equal(t, menu.CourseAppetizer, dishes["Wings"].Course())
	assert.Equal(t, 4, dishes["Wings"].Appetizer.Spiciness)
	require.NotNil(t, dishes["Pie"].Dessert)
	assert.Equal(t, 0, dishes["Pie"].Dessert.Sweetness)
}
