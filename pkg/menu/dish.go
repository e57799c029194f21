package menu

import (
	"fmt"

	"github.com/bistroworks/bistro/pkg/kitchen"
)

// Course is the kind of dish.
type Course string

const (
	CourseAppetizer  Course = "appetizer"
	CourseMainCourse Course = "main_course"
	CourseDessert    Course = "dessert"
)

// Validate checks if the course is valid.
func (c Course) Validate() error {
	switch c {
	case CourseAppetizer, CourseMainCourse, CourseDessert:
		return nil
	default:
		return fmt.Errorf("invalid course: %s", c)
	}
}

// SideCategory classifies a main course side dish.
type SideCategory string

const (
	SideGrain     SideCategory = "grain"
	SidePasta     SideCategory = "pasta"
	SideLegume    SideCategory = "legume"
	SideBread     SideCategory = "bread"
	SideSalad     SideCategory = "salad"
	SideSoup      SideCategory = "soup"
	SideStarches  SideCategory = "starches"
	SideVegetable SideCategory = "vegetable"
)

// ContainsGluten reports whether side dishes of this category contain gluten.
func (c SideCategory) ContainsGluten() bool {
	switch c {
	case SideGrain, SidePasta, SideBread, SideStarches:
		return true
	}
	return false
}

// SideDish accompanies a main course.
type SideDish struct {
	Name     string       `json:"name" yaml:"name"`
	Category SideCategory `json:"category" yaml:"category"`
}

// AppetizerDetails holds appetizer attributes.
type AppetizerDetails struct {
	ServingStyle string `json:"serving_style,omitempty" yaml:"serving_style,omitempty"`
	Spiciness    int    `json:"spiciness" yaml:"spiciness"`
	Vegetarian   bool   `json:"vegetarian" yaml:"vegetarian"`
}

// MainCourseDetails holds main course attributes.
type MainCourseDetails struct {
	CookingMethod string     `json:"cooking_method,omitempty" yaml:"cooking_method,omitempty"`
	ProteinType   string     `json:"protein_type,omitempty" yaml:"protein_type,omitempty"`
	SideDishes    []SideDish `json:"side_dishes,omitempty" yaml:"side_dishes,omitempty"`
	GlutenFree    bool       `json:"gluten_free" yaml:"gluten_free"`
}

// DessertDetails holds dessert attributes.
type DessertDetails struct {
	Flavor       string `json:"flavor,omitempty" yaml:"flavor,omitempty"`
	Sweetness    int    `json:"sweetness" yaml:"sweetness"`
	ContainsNuts bool   `json:"contains_nuts" yaml:"contains_nuts"`
}

// Dish is a menu item. Exactly one of Appetizer, Main and Dessert is set,
// matching Course.
type Dish struct {
	name         string
	course       Course
	requirements []kitchen.Requirement

	PrepMinutes int
	Price       float64
	Cuisine     string

	Appetizer *AppetizerDetails
	Main      *MainCourseDetails
	Dessert   *DessertDetails
}

var _ kitchen.MenuItem = (*Dish)(nil)

// NewAppetizer creates an appetizer.
func NewAppetizer(name string, reqs []kitchen.Requirement, details AppetizerDetails) *Dish {
	return &Dish{name: name, course: CourseAppetizer, requirements: cloneReqs(reqs), Appetizer: &details}
}

// NewMainCourse creates a main course.
func NewMainCourse(name string, reqs []kitchen.Requirement, details MainCourseDetails) *Dish {
	details.SideDishes = append([]SideDish(nil), details.SideDishes...)
	return &Dish{name: name, course: CourseMainCourse, requirements: cloneReqs(reqs), Main: &details}
}

// NewDessert creates a dessert.
func NewDessert(name string, reqs []kitchen.Requirement, details DessertDetails) *Dish {
	return &Dish{name: name, course: CourseDessert, requirements: cloneReqs(reqs), Dessert: &details}
}

// New creates a dish of the given course with zero-valued course attributes.
func New(name string, course Course, reqs []kitchen.Requirement) (*Dish, error) {
	switch course {
	case CourseAppetizer:
		return NewAppetizer(name, reqs, AppetizerDetails{}), nil
	case CourseMainCourse:
		return NewMainCourse(name, reqs, MainCourseDetails{}), nil
	case CourseDessert:
		return NewDessert(name, reqs, DessertDetails{}), nil
	default:
		return nil, course.Validate()
	}
}

// Name returns the dish name.
func (d *Dish) Name() string {
	return d.name
}

// Course returns the dish course.
func (d *Dish) Course() Course {
	return d.course
}

// Requirements returns a copy of the ingredient requirements.
func (d *Dish) Requirements() []kitchen.Requirement {
	return cloneReqs(d.requirements)
}

// Clone returns an independent copy of the dish.
func (d *Dish) Clone() *Dish {
	c := *d
	c.requirements = cloneReqs(d.requirements)
	if d.Appetizer != nil {
		a := *d.Appetizer
		c.Appetizer = &a
	}
	if d.Main != nil {
		m := *d.Main
		m.SideDishes = append([]SideDish(nil), d.Main.SideDishes...)
		c.Main = &m
	}
	if d.Dessert != nil {
		s := *d.Dessert
		c.Dessert = &s
	}
	return &c
}

// String implements fmt.Stringer.
func (d *Dish) String() string {
	return fmt.Sprintf("%s (%s)", d.name, d.course)
}

func cloneReqs(reqs []kitchen.Requirement) []kitchen.Requirement {
	if reqs == nil {
		return nil
	}
	out := make([]kitchen.Requirement, len(reqs))
	copy(out, reqs)
	return out
}
