package kitchen

// BackupInventory is the shared pool stations draw from when their own
// stock runs short.
type BackupInventory struct {
	stock Stock
}

// NewBackupInventory creates a backup pool holding the given ingredients.
func NewBackupInventory(ingredients ...Ingredient) (*BackupInventory, error) {
	b := &BackupInventory{}
	if err := b.Replace(ingredients); err != nil {
		return nil, err
	}
	return b, nil
}

// Withdraw removes qty units of an ingredient from the pool.
func (b *BackupInventory) Withdraw(name string, qty int) error {
	if err := b.stock.Take(name, qty); err != nil {
		e := err.(*KitchenError)
		e.Message = "backup: " + e.Message
		return e
	}
	return nil
}

// Deposit merges an ingredient into the pool.
func (b *BackupInventory) Deposit(ing Ingredient) error {
	return b.stock.Add(ing)
}

// Replace swaps the whole pool for the given list.
func (b *BackupInventory) Replace(ingredients []Ingredient) error {
	return b.stock.Replace(ingredients)
}

// Clear empties the pool.
func (b *BackupInventory) Clear() {
	b.stock.Clear()
}

// Quantity returns the pooled quantity of an ingredient.
func (b *BackupInventory) Quantity(name string) int {
	return b.stock.Quantity(name)
}

// Stock returns a snapshot of the pool.
func (b *BackupInventory) Stock() []Ingredient {
	return b.stock.Entries()
}
