package kitchen_test

import (
	"context"
	"fmt"
	"os"

	"github.com/bistroworks/bistro/pkg/kitchen"
)

type dish struct {
	name string
	reqs []kitchen.Requirement
}

func (d *dish) Name() string                        { return d.name }
func (d *dish) Requirements() []kitchen.Requirement { return d.reqs }
func (d *dish) ApplyDietary(kitchen.DietaryRequest) {}

// Example shows a station topped up from the backup pool while draining the queue.
func Example() {
	burger := &dish{name: "Burger", reqs: []kitchen.Requirement{
		{Name: "bun", Quantity: 1},
		{Name: "patty", Quantity: 1},
	}}

	k := kitchen.New(kitchen.WithNarrator(kitchen.NewWriterNarrator(os.Stdout)))

	grill := kitchen.NewWorkstation("Grill")
	_ = grill.Assign(burger)
	_ = grill.Restock(kitchen.Ingredient{Name: "bun", Quantity: 1})
	_ = k.AddStation(grill)
	_ = k.SetBackup([]kitchen.Ingredient{{Name: "patty", Quantity: 5}})

	_, _ = k.Enqueue(burger)
	result := k.ProcessAll(context.Background())

	fmt.Println(result.Outcome, k.Backup().Quantity("patty"))
	// Output:
	// PREPARING ORDER: Burger
	// Grill attempting to prepare Burger...
	// Grill: Insufficient ingredients. Replenishing ingredients...
	// Grill: Ingredients replenished.
	// Grill: Successfully prepared Burger.
	//
	// All orders have been processed.
	// drained 4
}

// ExampleRegistry_Merge shows two stations folded into one.
func ExampleRegistry_Merge() {
	soup := &dish{name: "Soup", reqs: []kitchen.Requirement{{Name: "salt", Quantity: 1}}}

	a := kitchen.NewWorkstation("A")
	_ = a.Assign(soup)
	_ = a.Restock(kitchen.Ingredient{Name: "salt", Quantity: 3})
	b := kitchen.NewWorkstation("B")
	_ = b.Assign(soup)
	_ = b.Restock(kitchen.Ingredient{Name: "salt", Quantity: 5})

	r := kitchen.NewRegistry()
	_ = r.Add(a)
	_ = r.Add(b)
	_ = r.Merge("A", "B")

	fmt.Println(r.Len(), len(a.Items()), a.Quantity("salt"))
	// Output: 1 1 8
}
