package menu

import (
	"strings"
	"unicode"

	"github.com/bistroworks/bistro/pkg/kitchen"
)

var (
	meats  = set("meat", "chicken", "fish", "beef", "pork", "lamb", "shrimp", "bacon")
	gluten = set("wheat", "flour", "bread", "pasta", "barley", "rye", "oats", "crust")
	dairy  = set("milk", "eggs", "cheese", "butter", "cream", "yogurt")
	nuts   = set("almonds", "walnuts", "pecans", "hazelnuts", "peanuts", "cashews", "pistachios")

	// The first two meats swapped out become these, in order. Any further
	// meats are dropped.
	meatSubstitutes = []string{"Beans", "Mushrooms"}
)

const vegetarianProtein = "Tofu"

func set(names ...string) map[string]struct{} {
	m := make(map[string]struct{}, len(names))
	for _, n := range names {
		m[n] = struct{}{}
	}
	return m
}

func in(s map[string]struct{}, name string) bool {
	_, ok := s[strings.ToLower(name)]
	return ok
}

// ApplyDietary rewrites the dish for a dietary request.
//
//   - Vegetarian (and vegan) swaps the first two meats for beans and
//     mushrooms and drops the rest; main courses switch protein to tofu.
//   - Vegan drops dairy from main courses and desserts.
//   - Gluten free drops gluten ingredients from appetizers and gluten side
//     dishes from main courses.
//   - Nut free drops nuts from desserts.
//   - Low sodium lowers appetizer spiciness by 2, low sugar lowers dessert
//     sweetness by 3, neither below zero.
func (d *Dish) ApplyDietary(req kitchen.DietaryRequest) {
	switch d.course {
	case CourseAppetizer:
		d.applyAppetizer(req)
	case CourseMainCourse:
		d.applyMainCourse(req)
	case CourseDessert:
		d.applyDessert(req)
	}
	d.requirements = merge(d.requirements)
}

func (d *Dish) applyAppetizer(req kitchen.DietaryRequest) {
	a := d.Appetizer
	if a == nil {
		a = &AppetizerDetails{}
		d.Appetizer = a
	}
	if req.Vegetarian {
		a.Vegetarian = true
		d.requirements = substituteMeat(d.requirements)
	}
	if req.GlutenFree {
		d.requirements = drop(d.requirements, gluten)
	}
	if req.LowSodium {
		a.Spiciness = max(0, a.Spiciness-2)
	}
}

func (d *Dish) applyMainCourse(req kitchen.DietaryRequest) {
	m := d.Main
	if m == nil {
		m = &MainCourseDetails{}
		d.Main = m
	}
	if req.Vegetarian || req.Vegan {
		m.ProteinType = vegetarianProtein
		d.requirements = substituteMeat(d.requirements)
	}
	if req.Vegan {
		d.requirements = drop(d.requirements, dairy)
	}
	if req.GlutenFree {
		m.GlutenFree = true
		kept := m.SideDishes[:0]
		for _, s := range m.SideDishes {
			if !s.Category.ContainsGluten() {
				kept = append(kept, s)
			}
		}
		m.SideDishes = kept
	}
}

func (d *Dish) applyDessert(req kitchen.DietaryRequest) {
	s := d.Dessert
	if s == nil {
		s = &DessertDetails{}
		d.Dessert = s
	}
	if req.LowSugar {
		s.Sweetness = max(0, s.Sweetness-3)
	}
	if req.NutFree {
		s.ContainsNuts = false
		d.requirements = drop(d.requirements, nuts)
	}
	if req.Vegan {
		d.requirements = drop(d.requirements, dairy)
	}
}

func substituteMeat(reqs []kitchen.Requirement) []kitchen.Requirement {
	out := reqs[:0]
	swapped := 0
	for _, r := range reqs {
		if !in(meats, r.Name) {
			out = append(out, r)
			continue
		}
		if swapped < len(meatSubstitutes) {
			r.Name = matchCase(meatSubstitutes[swapped], r.Name)
			swapped++
			out = append(out, r)
		}
	}
	return out
}

func drop(reqs []kitchen.Requirement, names map[string]struct{}) []kitchen.Requirement {
	out := reqs[:0]
	for _, r := range reqs {
		if !in(names, r.Name) {
			out = append(out, r)
		}
	}
	return out
}

// merge sums requirements renamed onto an existing name.
func merge(reqs []kitchen.Requirement) []kitchen.Requirement {
	out := make([]kitchen.Requirement, 0, len(reqs))
	pos := make(map[string]int, len(reqs))
	for _, r := range reqs {
		if i, ok := pos[r.Name]; ok {
			out[i].Quantity += r.Quantity
			continue
		}
		pos[r.Name] = len(out)
		out = append(out, r)
	}
	return out
}

// matchCase lower-cases a substitute when the ingredient it replaces is
// written in lower case.
func matchCase(sub, orig string) string {
	for _, r := range orig {
		if unicode.IsUpper(r) {
			return sub
		}
	}
	return strings.ToLower(sub)
}
