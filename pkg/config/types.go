package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/bistroworks/bistro/pkg/kitchen"
	"github.com/bistroworks/bistro/pkg/menu"
)

// Definition describes a kitchen: its menu, stations, backup pool and the
// orders to fulfill.
type Definition struct {
	// Name is the kitchen name shown in history.
	Name string `json:"name" yaml:"name" validate:"required"`

	// Menu lists every dish stations and orders may reference.
	Menu []DishConfig `json:"menu" yaml:"menu" validate:"required,min=1,dive"`

	// Stations are registered in the listed order, which is the scan order.
	Stations []StationConfig `json:"stations,omitempty" yaml:"stations,omitempty" validate:"dive"`

	// Backup is the shared pool stations draw from.
	Backup []IngredientConfig `json:"backup,omitempty" yaml:"backup,omitempty" validate:"dive"`

	// Orders are enqueued in the listed order.
	Orders []OrderConfig `json:"orders,omitempty" yaml:"orders,omitempty" validate:"dive"`
}

// DishConfig defines one menu dish.
type DishConfig struct {
	// Name identifies the dish.
	Name string `json:"name" yaml:"name" validate:"required"`

	// Course is appetizer, main_course or dessert.
	Course menu.Course `json:"course" yaml:"course" validate:"required,oneof=appetizer main_course dessert"`

	// Requirements are the ingredients consumed per preparation.
	Requirements []RequirementConfig `json:"requirements" yaml:"requirements" validate:"required,min=1,dive"`

	PrepMinutes int     `json:"prep_minutes,omitempty" yaml:"prep_minutes,omitempty" validate:"gte=0"`
	Price       float64 `json:"price,omitempty" yaml:"price,omitempty" validate:"gte=0"`
	Cuisine     string  `json:"cuisine,omitempty" yaml:"cuisine,omitempty"`

	// Course attributes. Only the one matching Course is used.
	Appetizer *menu.AppetizerDetails  `json:"appetizer,omitempty" yaml:"appetizer,omitempty"`
	Main      *menu.MainCourseDetails `json:"main_course,omitempty" yaml:"main_course,omitempty"`
	Dessert   *menu.DessertDetails    `json:"dessert,omitempty" yaml:"dessert,omitempty"`
}

// RequirementConfig is one ingredient requirement of a dish.
type RequirementConfig struct {
	Name     string `json:"name" yaml:"name" validate:"required"`
	Quantity int    `json:"quantity" yaml:"quantity" validate:"gt=0"`
}

// IngredientConfig is a quantity of an ingredient held in stock.
type IngredientConfig struct {
	Name     string `json:"name" yaml:"name" validate:"required"`
	Quantity int    `json:"quantity" yaml:"quantity" validate:"gt=0"`
}

// StationConfig defines one workstation.
type StationConfig struct {
	// Name identifies the station.
	Name string `json:"name" yaml:"name" validate:"required"`

	// Items are dish names the station can prepare.
	Items []string `json:"items,omitempty" yaml:"items,omitempty" validate:"dive,required"`

	// Stock is the station's opening stock.
	Stock []IngredientConfig `json:"stock,omitempty" yaml:"stock,omitempty" validate:"dive"`
}

// OrderConfig requests one or more preparations of a dish.
type OrderConfig struct {
	// Item is the dish name.
	Item string `json:"item" yaml:"item" validate:"required"`

	// Count repeats the order. Zero means one.
	Count int `json:"count,omitempty" yaml:"count,omitempty" validate:"gte=0"`

	// Dietary is applied to the dish when the order is enqueued.
	Dietary *kitchen.DietaryRequest `json:"dietary,omitempty" yaml:"dietary,omitempty"`
}

// Format is the encoding of a definition file.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
	FormatCUE  Format = "cue"
)

// Severity levels of a ValidationError.
const (
	SeverityError   = "error"
	SeverityWarning = "warning"
)

// ValidationError represents a validation problem with location information.
type ValidationError struct {
	// File is the source file path.
	File string `json:"file,omitempty"`

	// Line is the line number (1-indexed).
	Line int `json:"line,omitempty"`

	// Column is the column number (1-indexed).
	Column int `json:"column,omitempty"`

	// Path is the definition path of the problem (e.g., "stations[1].items[0]").
	Path string `json:"path,omitempty"`

	// Message is the error message.
	Message string `json:"message"`

	// Severity is error or warning.
	Severity string `json:"severity"`
}

// String formats the problem as file:line:column: path: message.
func (e ValidationError) String() string {
	var b strings.Builder
	if e.File != "" {
		b.WriteString(e.File)
		if e.Line > 0 {
			fmt.Fprintf(&b, ":%d:%d", e.Line, e.Column)
		}
		b.WriteString(": ")
	}
	if e.Path != "" {
		b.WriteString(e.Path)
		b.WriteString(": ")
	}
	b.WriteString(e.Message)
	return b.String()
}

// ValidationErrors is returned when a definition has error-severity problems.
type ValidationErrors []ValidationError

func (v ValidationErrors) Error() string {
	if len(v) == 1 {
		return "invalid kitchen definition: " + v[0].String()
	}
	msgs := make([]string, len(v))
	for i, e := range v {
		msgs[i] = e.String()
	}
	return fmt.Sprintf("invalid kitchen definition: %d problems:\n  %s", len(v), strings.Join(msgs, "\n  "))
}

// Loaded is the outcome of loading a definition file.
type Loaded struct {
	// Definition is nil when the source could not be decoded.
	Definition *Definition `json:"definition,omitempty"`

	// Source is the file the definition was read from.
	Source string `json:"source"`

	// Format is the detected encoding.
	Format Format `json:"format"`

	// LoadedAt is when the definition was loaded.
	LoadedAt time.Time `json:"loaded_at"`

	// Problems lists errors and warnings in detection order.
	Problems []ValidationError `json:"problems,omitempty"`
}

// Err returns the error-severity problems as ValidationErrors, or nil.
func (l *Loaded) Err() error {
	var errs ValidationErrors
	for _, p := range l.Problems {
		if p.Severity == SeverityError {
			errs = append(errs, p)
		}
	}
	if len(errs) == 0 {
		return nil
	}
	return errs
}

// Warnings returns the warning-severity problems.
func (l *Loaded) Warnings() []ValidationError {
	var out []ValidationError
	for _, p := range l.Problems {
		if p.Severity == SeverityWarning {
			out = append(out, p)
		}
	}
	return out
}
