package kitchen

import (
	"errors"
	"fmt"
)

// ErrorKind classifies a kitchen error for programmatic handling.
type ErrorKind string

const (
	// KindNotFound indicates a missing station, menu item or ingredient.
	KindNotFound ErrorKind = "not_found"

	// KindInsufficientQuantity indicates an ingredient is present but short.
	KindInsufficientQuantity ErrorKind = "insufficient_quantity"

	// KindInvalidArgument indicates a non-positive quantity, a bad position or a nil value.
	KindInvalidArgument ErrorKind = "invalid_argument"

	// KindDuplicateAssignment indicates a menu item is already assigned to a station.
	KindDuplicateAssignment ErrorKind = "duplicate_assignment"

	// KindDuplicateStation indicates a station name is already registered.
	KindDuplicateStation ErrorKind = "duplicate_station"
)

// Sentinel errors matched by kind through errors.Is.
var (
	ErrNotFound             = &KitchenError{Kind: KindNotFound, Message: "not found"}
	ErrInsufficientQuantity = &KitchenError{Kind: KindInsufficientQuantity, Message: "insufficient quantity"}
	ErrInvalidArgument      = &KitchenError{Kind: KindInvalidArgument, Message: "invalid argument"}
	ErrDuplicateAssignment  = &KitchenError{Kind: KindDuplicateAssignment, Message: "duplicate assignment"}
	ErrDuplicateStation     = &KitchenError{Kind: KindDuplicateStation, Message: "duplicate station"}
)

// KitchenError is a classified error carrying the station, item and
// ingredient involved in a failed operation.
// nolint:revive // KitchenError reads better than Error at call sites
type KitchenError struct {
	// Kind is the error classification.
	Kind ErrorKind `json:"kind"`

	// Message is the human-readable error message.
	Message string `json:"message"`

	// Station is the workstation involved, if any.
	Station string `json:"station,omitempty"`

	// Item is the menu item involved, if any.
	Item string `json:"item,omitempty"`

	// Ingredient is the ingredient involved, if any.
	Ingredient string `json:"ingredient,omitempty"`

	// Err is the underlying cause.
	Err error `json:"-"`
}

// Error implements the error interface.
func (e *KitchenError) Error() string {
	msg := fmt.Sprintf("[%s] %s", e.Kind, e.Message)
	if ctx := e.context(); ctx != "" {
		msg += " (" + ctx + ")"
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *KitchenError) context() string {
	var out string
	add := func(key, value string) {
		if value == "" {
			return
		}
		if out != "" {
			out += ", "
		}
		out += key + "=" + value
	}
	add("station", e.Station)
	add("item", e.Item)
	add("ingredient", e.Ingredient)
	return out
}

// Unwrap returns the underlying error for error chain inspection.
func (e *KitchenError) Unwrap() error {
	return e.Err
}

// Is reports whether target is a KitchenError of the same kind.
func (e *KitchenError) Is(target error) bool {
	t, ok := target.(*KitchenError)
	if !ok {
		return false
	}
	return e.Kind == t.Kind
}

// WithStation adds station context to an error.
func (e *KitchenError) WithStation(name string) *KitchenError {
	e.Station = name
	return e
}

// WithItem adds menu item context to an error.
func (e *KitchenError) WithItem(name string) *KitchenError {
	e.Item = name
	return e
}

// WithIngredient adds ingredient context to an error.
func (e *KitchenError) WithIngredient(name string) *KitchenError {
	e.Ingredient = name
	return e
}

// WithCause attaches an underlying error.
func (e *KitchenError) WithCause(err error) *KitchenError {
	e.Err = err
	return e
}

func newError(kind ErrorKind, format string, args ...any) *KitchenError {
	return &KitchenError{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// KindOf returns the kind of a kitchen error, or the empty kind for
// errors that did not originate in this package.
func KindOf(err error) ErrorKind {
	var e *KitchenError
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}

// IsNotFound returns true if the error is classified as not found.
func IsNotFound(err error) bool {
	return KindOf(err) == KindNotFound
}

// IsInsufficientQuantity returns true if the error is classified as insufficient quantity.
func IsInsufficientQuantity(err error) bool {
	return KindOf(err) == KindInsufficientQuantity
}

// IsInvalidArgument returns true if the error is classified as an invalid argument.
func IsInvalidArgument(err error) bool {
	return KindOf(err) == KindInvalidArgument
}

// IsDuplicateAssignment returns true if the error is classified as a duplicate assignment.
func IsDuplicateAssignment(err error) bool {
	return KindOf(err) == KindDuplicateAssignment
}

// IsDuplicateStation returns true if the error is classified as a duplicate station.
func IsDuplicateStation(err error) bool {
	return KindOf(err) == KindDuplicateStation
}
