package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bistroworks/bistro/pkg/menu"
)

const bistroYAML = `
name: Corner Bistro
menu:
  - name: Burger
    course: main_course
    price: 12.5
    requirements:
      - {name: Bun, quantity: 1}
      - {name: Patty, quantity: 1}
    main_course:
      protein_type: Beef
      side_dishes:
        - {name: Fries, category: starches}
  - name: Sundae
    course: dessert
    requirements:
      - {name: Cream, quantity: 2}
    dessert:
      sweetness: 4
      contains_nuts: true
stations:
  - name: Grill
    items: [Burger]
    stock:
      - {name: Bun, quantity: 4}
  - name: Pastry
    items: [Sundae]
backup:
  - {name: Patty, quantity: 10}
  - {name: Cream, quantity: 6}
orders:
  - item: Burger
    count: 2
  - item: Sundae
    dietary: {low_sugar: true}
`

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadFile_YAML(t *testing.T) {
	loaded, err := NewLoader().LoadFile(writeFile(t, "kitchen.yaml", bistroYAML))
	require.NoError(t, err)
	require.NoError(t, loaded.Err())
	assert.Empty(t, loaded.Warnings())
	assert.Equal(t, FormatYAML, loaded.Format)

	def := loaded.Definition
	require.NotNil(t, def)
	assert.Equal(t, "Corner Bistro", def.Name)
	require.Len(t, def.Menu, 2)
	assert.Equal(t, menu.CourseMainCourse, def.Menu[0].Course)
	assert.Equal(t, 12.5, def.Menu[0].Price)
	require.NotNil(t, def.Menu[0].Main)
	assert.Equal(t, "Beef", def.Menu[0].Main.ProteinType)
	assert.Equal(t, menu.SideStarches, def.Menu[0].Main.SideDishes[0].Category)
	require.NotNil(t, def.Menu[1].Dessert)
	assert.True(t, def.Menu[1].Dessert.ContainsNuts)

	require.Len(t, def.Stations, 2)
	assert.Equal(t, []string{"Burger"}, def.Stations[0].Items)
	assert.Equal(t, IngredientConfig{Name: "Bun", Quantity: 4}, def.Stations[0].Stock[0])
	require.Len(t, def.Orders, 2)
	assert.Equal(t, 2, def.Orders[0].Count)
	require.NotNil(t, def.Orders[1].Dietary)
	assert.True(t, def.Orders[1].Dietary.LowSugar)
}

func TestLoadFile_JSON(t *testing.T) {
	content := `{
  "name": "Diner",
  "menu": [{"name": "Toast", "course": "appetizer", "requirements": [{"name": "Bread", "quantity": 1}]}],
  "stations": [{"name": "Pantry", "items": ["Toast"], "stock": [{"name": "Bread", "quantity": 2}]}],
  "orders": [{"item": "Toast"}]
}`
	loaded, err := NewLoader().LoadFile(writeFile(t, "kitchen.json", content))
	require.NoError(t, err)
	require.NoError(t, loaded.Err())
	assert.Equal(t, FormatJSON, loaded.Format)
	assert.Equal(t, "Diner", loaded.Definition.Name)
	assert.Equal(t, "Toast", loaded.Definition.Orders[0].Item)
}

func TestLoadFile_CUE(t *testing.T) {
	content := `
name: "Corner Bistro"
menu: [{
	name:   "Toast"
	course: "appetizer"
	requirements: [{name: "Bread", quantity: 1}]
	appetizer: spiciness: 3
}]
stations: [{
	name:  "Pantry"
	items: ["Toast"]
	stock: [{name: "Bread", quantity: 2}]
}]
orders: [{item: "Toast", count: 2}]
`
	loaded, err := NewLoader().LoadFile(writeFile(t, "kitchen.cue", content))
	require.NoError(t, err)
	require.NoError(t, loaded.Err())
	assert.Equal(t, FormatCUE, loaded.Format)

	def := loaded.Definition
	assert.Equal(t, "Corner Bistro", def.Name)
	require.NotNil(t, def.Menu[0].Appetizer)
	assert.Equal(t, 3, def.Menu[0].Appetizer.Spiciness)
	assert.Equal(t, 2, def.Orders[0].Count)
}

func TestParse_SchemaViolations(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{
			name:    "unknown field",
			content: "name: x\ncolour: red\nmenu:\n  - {name: A, course: dessert, requirements: [{name: Sugar, quantity: 1}]}\n",
		},
		{
			name:    "zero requirement",
			content: "name: x\nmenu:\n  - {name: A, course: dessert, requirements: [{name: Sugar, quantity: 0}]}\n",
		},
		{
			name:    "unknown course",
			content: "name: x\nmenu:\n  - {name: A, course: brunch, requirements: [{name: Sugar, quantity: 1}]}\n",
		},
		{
			name:    "empty menu",
			content: "name: x\nmenu: []\n",
		},
		{
			name:    "missing name",
			content: "menu:\n  - {name: A, course: dessert, requirements: [{name: Sugar, quantity: 1}]}\n",
		},
		{
			name:    "empty document",
			content: "",
		},
		{
			name:    "malformed yaml",
			content: "name: [unterminated\n",
		},
	}

	loader := NewLoader()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			loaded := loader.Parse([]byte(tt.content), FormatYAML, "kitchen.yaml")
			err := loaded.Err()
			require.Error(t, err)
			assert.Nil(t, loaded.Definition)

			var verrs ValidationErrors
			require.True(t, errors.As(err, &verrs))
			for _, v := range verrs {
				assert.Equal(t, "kitchen.yaml", v.File)
				assert.Equal(t, SeverityError, v.Severity)
			}
		})
	}
}

func TestParse_CUESyntaxError(t *testing.T) {
	loaded := NewLoader().Parse([]byte("name: \"x\"\nmenu: [\n"), FormatCUE, "broken.cue")
	require.Error(t, loaded.Err())
	assert.Nil(t, loaded.Definition)
}

func validDefinition() *Definition {
	return &Definition{
		Name: "Test Kitchen",
		Menu: []DishConfig{
			{Name: "Burger", Course: menu.CourseMainCourse, Requirements: []RequirementConfig{{Name: "Bun", Quantity: 1}}},
			{Name: "Salad", Course: menu.CourseAppetizer, Requirements: []RequirementConfig{{Name: "Lettuce", Quantity: 1}}},
		},
		Stations: []StationConfig{
			{Name: "Grill", Items: []string{"Burger"}},
			{Name: "Cold", Items: []string{"Salad"}},
		},
		Orders: []OrderConfig{{Item: "Burger"}, {Item: "Salad"}},
	}
}

func TestCheck(t *testing.T) {
	tests := []struct {
		name     string
		mutate   func(d *Definition)
		path     string
		message  string
		severity string
	}{
		{
			name:     "zero quantity",
			mutate:   func(d *Definition) { d.Menu[0].Requirements[0].Quantity = 0 },
			path:     "menu[0].requirements[0].quantity",
			message:  "must be greater than 0",
			severity: SeverityError,
		},
		{
			name:     "missing kitchen name",
			mutate:   func(d *Definition) { d.Name = "" },
			path:     "name",
			message:  "is required",
			severity: SeverityError,
		},
		{
			name:     "bad course",
			mutate:   func(d *Definition) { d.Menu[1].Course = "brunch" },
			path:     "menu[1].course",
			message:  "must be one of: appetizer, main_course, dessert",
			severity: SeverityError,
		},
		{
			name: "duplicate dish",
			mutate: func(d *Definition) {
				d.Menu = append(d.Menu, DishConfig{Name: "Burger", Course: menu.CourseDessert, Requirements: []RequirementConfig{{Name: "Sugar", Quantity: 1}}})
			},
			path:     "menu[2].name",
			message:  `duplicate dish "Burger"`,
			severity: SeverityError,
		},
		{
			name:     "duplicate station",
			mutate:   func(d *Definition) { d.Stations[1].Name = "Grill" },
			path:     "stations[1].name",
			message:  `duplicate station "Grill"`,
			severity: SeverityError,
		},
		{
			name:     "unknown station item",
			mutate:   func(d *Definition) { d.Stations[0].Items = append(d.Stations[0].Items, "Soup") },
			path:     "stations[0].items[1]",
			message:  `unknown dish "Soup"`,
			severity: SeverityError,
		},
		{
			name:     "item assigned twice",
			mutate:   func(d *Definition) { d.Stations[0].Items = append(d.Stations[0].Items, "Burger") },
			path:     "stations[0].items[1]",
			message:  `dish "Burger" assigned to station "Grill" twice`,
			severity: SeverityError,
		},
		{
			name:     "unknown order item",
			mutate:   func(d *Definition) { d.Orders[1].Item = "Soup" },
			path:     "orders[1].item",
			message:  `unknown dish "Soup"`,
			severity: SeverityError,
		},
		{
			name:     "order nobody prepares",
			mutate:   func(d *Definition) { d.Stations = d.Stations[:1] },
			path:     "orders[1].item",
			message:  `no station prepares "Salad"; the order will stay queued`,
			severity: SeverityWarning,
		},
		{
			name:     "mismatched course attributes",
			mutate:   func(d *Definition) { d.Menu[0].Dessert = &menu.DessertDetails{Sweetness: 1} },
			path:     "menu[0].dessert",
			message:  `dessert attributes ignored for main_course "Burger"`,
			severity: SeverityWarning,
		},
	}

	loader := NewLoader()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			def := validDefinition()
			tt.mutate(def)

			problems := loader.Check(def)
			require.Len(t, problems, 1, "problems: %v", problems)
			assert.Equal(t, tt.path, problems[0].Path)
			assert.Equal(t, tt.message, problems[0].Message)
			assert.Equal(t, tt.severity, problems[0].Severity)
		})
	}
}

func TestCheck_Valid(t *testing.T) {
	assert.Empty(t, NewLoader().Check(validDefinition()))
}

func TestLoad(t *testing.T) {
	def, err := Load(writeFile(t, "kitchen.yml", bistroYAML))
	require.NoError(t, err)
	assert.Equal(t, "Corner Bistro", def.Name)

	_, err = Load(writeFile(t, "bad.yaml", "name: x\nmenu:\n  - {name: A, course: dessert, requirements: [{name: Sugar, quantity: 1}]}\norders:\n  - item: B\n"))
	var verrs ValidationErrors
	require.True(t, errors.As(err, &verrs))
	require.Len(t, verrs, 1)
	assert.Equal(t, "orders[0].item", verrs[0].Path)
	assert.Contains(t, err.Error(), `unknown dish "B"`)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestFormatFromPath(t *testing.T) {
	tests := []struct {
		path    string
		want    Format
		wantErr bool
	}{
		{"kitchen.yaml", FormatYAML, false},
		{"kitchen.YML", FormatYAML, false},
		{"dir/kitchen.json", FormatJSON, false},
		{"kitchen.cue", FormatCUE, false},
		{"kitchen.toml", "", true},
		{"kitchen", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			got, err := FormatFromPath(tt.path)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestValidationError_String(t *testing.T) {
	e := ValidationError{File: "k.cue", Line: 3, Column: 7, Path: "menu.0.name", Message: "incomplete value"}
	assert.Equal(t, "k.cue:3:7: menu.0.name: incomplete value", e.String())

	e = ValidationError{Path: "orders[0].item", Message: "unknown dish"}
	assert.Equal(t, "orders[0].item: unknown dish", e.String())
}
