package kitchen

// Requirement is a quantity of an ingredient a menu item consumes per preparation.
type Requirement struct {
	Name     string `json:"name" yaml:"name"`
	Quantity int    `json:"quantity" yaml:"quantity"`
}

// DietaryRequest lists the accommodations a customer asks for.
type DietaryRequest struct {
	Vegetarian bool `json:"vegetarian,omitempty" yaml:"vegetarian,omitempty"`
	Vegan      bool `json:"vegan,omitempty" yaml:"vegan,omitempty"`
	GlutenFree bool `json:"gluten_free,omitempty" yaml:"gluten_free,omitempty"`
	NutFree    bool `json:"nut_free,omitempty" yaml:"nut_free,omitempty"`
	LowSodium  bool `json:"low_sodium,omitempty" yaml:"low_sodium,omitempty"`
	LowSugar   bool `json:"low_sugar,omitempty" yaml:"low_sugar,omitempty"`
}

// IsZero reports whether no accommodation is requested.
func (r DietaryRequest) IsZero() bool {
	return r == DietaryRequest{}
}

// MenuItem is anything a workstation can prepare. Identity is the name.
//
// Values are shared: the same item may be assigned to a station and
// referenced by any number of queued orders, so ApplyDietary is visible
// through every reference.
type MenuItem interface {
	// Name returns the item name, unique within a workstation.
	Name() string

	// Requirements returns the ingredients consumed by one preparation.
	Requirements() []Requirement

	// ApplyDietary rewrites the item's requirements and attributes in place.
	ApplyDietary(req DietaryRequest)
}

// aggregate sums requirements sharing a name, preserving first-seen order.
func aggregate(reqs []Requirement) []Requirement {
	out := make([]Requirement, 0, len(reqs))
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
