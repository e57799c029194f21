package kitchen

// Ingredient is a named quantity held in a stock.
type Ingredient struct {
	Name     string `json:"name" yaml:"name"`
	Quantity int    `json:"quantity" yaml:"quantity"`
}

// Stock is an ordered, name-keyed collection of ingredient quantities.
// Names are unique and an entry that reaches zero is removed, so every
// stored quantity is positive. The zero value is an empty stock.
type Stock struct {
	entries []Ingredient
}

// NewStock creates a stock from a list of ingredients, merging duplicate names
// and dropping zero quantities.
func NewStock(ingredients ...Ingredient) (*Stock, error) {
	s := &Stock{}
	if err := s.Replace(ingredients); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Stock) index(name string) int {
	for i := range s.entries {
		if s.entries[i].Name == name {
			return i
		}
	}
	return -1
}

// Add merges an ingredient into the stock, adding to an existing entry with
// the same name or appending a new one.
func (s *Stock) Add(ing Ingredient) error {
	if ing.Name == "" {
		return newError(KindInvalidArgument, "ingredient name is empty")
	}
	if ing.Quantity <= 0 {
		return newError(KindInvalidArgument, "quantity must be positive, got %d", ing.Quantity).
			WithIngredient(ing.Name)
	}
	if i := s.index(ing.Name); i >= 0 {
		s.entries[i].Quantity += ing.Quantity
		return nil
	}
	s.entries = append(s.entries, ing)
	return nil
}

// Take removes qty units of the named ingredient. The entry is deleted when
// it reaches zero.
func (s *Stock) Take(name string, qty int) error {
	if qty <= 0 {
		return newError(KindInvalidArgument, "quantity must be positive, got %d", qty).
			WithIngredient(name)
	}
	i := s.index(name)
	if i < 0 {
		return newError(KindNotFound, "ingredient not in stock").WithIngredient(name)
	}
	if s.entries[i].Quantity < qty {
		return newError(KindInsufficientQuantity, "available %d, requested %d", s.entries[i].Quantity, qty).
			WithIngredient(name)
	}
	s.entries[i].Quantity -= qty
	if s.entries[i].Quantity == 0 {
		s.entries = append(s.entries[:i], s.entries[i+1:]...)
	}
	return nil
}

// Quantity returns the on-hand quantity of an ingredient, zero when absent.
func (s *Stock) Quantity(name string) int {
	if i := s.index(name); i >= 0 {
		return s.entries[i].Quantity
	}
	return 0
}

// Has reports whether the ingredient is present.
func (s *Stock) Has(name string) bool {
	return s.index(name) >= 0
}

// Len returns the number of distinct ingredients.
func (s *Stock) Len() int {
	return len(s.entries)
}

// Entries returns a copy of the stock in insertion order.
func (s *Stock) Entries() []Ingredient {
	out := make([]Ingredient, len(s.entries))
	copy(out, s.entries)
	return out
}

// Replace swaps the whole stock for the given list. Duplicate names are
// merged and zero quantities dropped. A negative quantity rejects the list
// and leaves the stock unchanged.
func (s *Stock) Replace(ingredients []Ingredient) error {
	next := &Stock{}
	for _, ing := range ingredients {
		if ing.Quantity < 0 {
			return newError(KindInvalidArgument, "quantity must not be negative, got %d", ing.Quantity).
				WithIngredient(ing.Name)
		}
		if ing.Quantity == 0 {
			continue
		}
		if err := next.Add(ing); err != nil {
			return err
		}
	}
	s.entries = next.entries
	return nil
}

// Clear empties the stock.
func (s *Stock) Clear() {
	s.entries = nil
}

// covers reports whether every requirement is satisfied by on-hand quantities.
// The first short requirement is returned as an error.
func (s *Stock) covers(reqs []Requirement) error {
	for _, req := range reqs {
		have := s.Quantity(req.Name)
		if have < req.Quantity {
			return newError(KindInsufficientQuantity, "available %d, requested %d", have, req.Quantity).
				WithIngredient(req.Name)
		}
	}
	return nil
}
