package config

import (
	"fmt"

	"github.com/bistroworks/bistro/pkg/kitchen"
	"github.com/bistroworks/bistro/pkg/menu"
)

// Build creates a kitchen session from a validated definition. Each dish is
// created once and shared by every station assignment and order naming it.
func Build(def *Definition, opts ...kitchen.Option) (*kitchen.Kitchen, error) {
	dishes, err := Dishes(def)
	if err != nil {
		return nil, err
	}

	k := kitchen.New(opts...)

	for _, sc := range def.Stations {
		ws := kitchen.NewWorkstation(sc.Name)
		for _, name := range sc.Items {
			dish, ok := dishes[name]
			if !ok {
				return nil, fmt.Errorf("station %s: unknown dish %q", sc.Name, name)
			}
			if err := ws.Assign(dish); err != nil {
				return nil, fmt.Errorf("station %s: %w", sc.Name, err)
			}
		}
		for _, ing := range sc.Stock {
			if err := ws.Restock(kitchen.Ingredient{Name: ing.Name, Quantity: ing.Quantity}); err != nil {
				return nil, fmt.Errorf("station %s: %w", sc.Name, err)
			}
		}
		if err := k.AddStation(ws); err != nil {
			return nil, err
		}
	}

	backup := make([]kitchen.Ingredient, 0, len(def.Backup))
	for _, ing := range def.Backup {
		backup = append(backup, kitchen.Ingredient{Name: ing.Name, Quantity: ing.Quantity})
	}
	if err := k.SetBackup(backup); err != nil {
		return nil, fmt.Errorf("backup: %w", err)
	}

	for i, oc := range def.Orders {
		dish, ok := dishes[oc.Item]
		if !ok {
			return nil, fmt.Errorf("order %d: unknown dish %q", i, oc.Item)
		}
		var req kitchen.DietaryRequest
		if oc.Dietary != nil {
			req = *oc.Dietary
		}
		for n := max(oc.Count, 1); n > 0; n-- {
			if _, err := k.EnqueueWithRequest(dish, req); err != nil {
				return nil, fmt.Errorf("order %d: %w", i, err)
			}
		}
	}

	return k, nil
}

// Dishes creates the menu of a definition keyed by dish name.
func Dishes(def *Definition) (map[string]*menu.Dish, error) {
	dishes := make(map[string]*menu.Dish, len(def.Menu))
	for _, dc := range def.Menu {
		if _, dup := dishes[dc.Name]; dup {
			return nil, fmt.Errorf("duplicate dish %q", dc.Name)
		}
		dish, err := newDish(dc)
		if err != nil {
			return nil, err
		}
		dishes[dc.Name] = dish
	}
	return dishes, nil
}

func newDish(dc DishConfig) (*menu.Dish, error) {
	reqs := make([]kitchen.Requirement, 0, len(dc.Requirements))
	for _, r := range dc.Requirements {
		reqs = append(reqs, kitchen.Requirement{Name: r.Name, Quantity: r.Quantity})
	}

	var dish *menu.Dish
	switch dc.Course {
	case menu.CourseAppetizer:
		var details menu.AppetizerDetails
		if dc.Appetizer != nil {
			details = *dc.Appetizer
		}
		dish = menu.NewAppetizer(dc.Name, reqs, details)
	case menu.CourseMainCourse:
		var details menu.MainCourseDetails
		if dc.Main != nil {
			details = *dc.Main
		}
		dish = menu.NewMainCourse(dc.Name, reqs, details)
	case menu.CourseDessert:
		var details menu.DessertDetails
		if dc.Dessert != nil {
			details = *dc.Dessert
		}
		dish = menu.NewDessert(dc.Name, reqs, details)
	default:
		return nil, fmt.Errorf("dish %s: %w", dc.Name, dc.Course.Validate())
	}

	dish.PrepMinutes = dc.PrepMinutes
	dish.Price = dc.Price
	dish.Cuisine = dc.Cuisine
	return dish, nil
}
