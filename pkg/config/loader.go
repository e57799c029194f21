package config

import (
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"time"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"cuelang.org/go/cue/errors"
	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/bistroworks/bistro/pkg/menu"
)

// Loader reads kitchen definitions from YAML, JSON or CUE and validates
// them against the kitchen schema, struct tags and cross references.
type Loader struct {
	ctx       *cue.Context
	schema    cue.Value
	validator *validator.Validate
}

// NewLoader creates a new definition loader.
func NewLoader() *Loader {
	ctx := cuecontext.New()
	schema := ctx.CompileString(kitchenSchema, cue.Filename("kitchen.schema.cue"))
	if err := schema.Err(); err != nil {
		panic(fmt.Sprintf("config: invalid kitchen schema: %v", err))
	}

	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("yaml"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	return &Loader{
		ctx:       ctx,
		schema:    schema.LookupPath(cue.ParsePath("#Kitchen")),
		validator: v,
	}
}

// Load reads and validates a definition file. Any error-severity problem
// is returned as ValidationErrors.
func Load(path string) (*Definition, error) {
	loaded, err := NewLoader().LoadFile(path)
	if err != nil {
		return nil, err
	}
	if err := loaded.Err(); err != nil {
		return nil, err
	}
	return loaded.Definition, nil
}

// FormatFromPath detects the definition format from a file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".json":
		return FormatJSON, nil
	case ".cue":
		return FormatCUE, nil
	default:
		return "", fmt.Errorf("unsupported definition format %q (want .yaml, .yml, .json or .cue)", filepath.Ext(path))
	}
}

// LoadFile reads a definition file. The returned error covers I/O and
// unsupported formats only; decoding and validation problems are reported
// in Loaded.Problems.
func (l *Loader) LoadFile(path string) (*Loaded, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read definition %s: %w", path, err)
	}

	return l.Parse(data, format, path), nil
}

// Parse decodes and validates definition content. source names the content
// in reported problems.
func (l *Loader) Parse(data []byte, format Format, source string) *Loaded {
	loaded := &Loaded{
		Source:   source,
		Format:   format,
		LoadedAt: time.Now(),
	}

	val, problems := l.compile(data, format, source)
	if len(problems) > 0 {
		loaded.Problems = problems
		return loaded
	}

	unified := l.schema.Unify(val)
	if err := unified.Validate(cue.Concrete(true)); err != nil {
		loaded.Problems = convertCUEErrors(err, source)
		return loaded
	}

	var def Definition
	if err := unified.Decode(&def); err != nil {
		loaded.Problems = []ValidationError{{
			File:     source,
			Message:  fmt.Sprintf("failed to decode definition: %v", err),
			Severity: SeverityError,
		}}
		return loaded
	}

	loaded.Definition = &def
	for _, p := range l.Check(&def) {
		if p.File == "" {
			p.File = source
		}
		loaded.Problems = append(loaded.Problems, p)
	}
	return loaded
}

// compile turns raw content into a CUE value.
func (l *Loader) compile(data []byte, format Format, source string) (cue.Value, []ValidationError) {
	switch format {
	case FormatCUE:
		val := l.ctx.CompileBytes(data, cue.Filename(source))
		if err := val.Err(); err != nil {
			return cue.Value{}, convertCUEErrors(err, source)
		}
		return val, nil

	case FormatYAML, FormatJSON:
		// yaml.v3 also reads JSON documents.
		var raw interface{}
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return cue.Value{}, []ValidationError{{
				File:     source,
				Message:  err.Error(),
				Severity: SeverityError,
			}}
		}
		if raw == nil {
			return cue.Value{}, []ValidationError{{
				File:     source,
				Message:  "definition is empty",
				Severity: SeverityError,
			}}
		}
		val := l.ctx.Encode(raw)
		if err := val.Err(); err != nil {
			return cue.Value{}, convertCUEErrors(err, source)
		}
		return val, nil

	default:
		return cue.Value{}, []ValidationError{{
			File:     source,
			Message:  fmt.Sprintf("unsupported format %q", format),
			Severity: SeverityError,
		}}
	}
}

// Check validates a decoded definition: struct tags first, then the
// references between menu, stations and orders.
func (l *Loader) Check(def *Definition) []ValidationError {
	var problems []ValidationError

	if err := l.validator.Struct(def); err != nil {
		if fieldErrs, ok := err.(validator.ValidationErrors); ok {
			for _, fe := range fieldErrs {
				problems = append(problems, ValidationError{
					Path:     fieldPath(fe.Namespace()),
					Message:  fieldMessage(fe),
					Severity: SeverityError,
				})
			}
		} else {
			problems = append(problems, ValidationError{Message: err.Error(), Severity: SeverityError})
		}
	}

	return append(problems, checkReferences(def)...)
}

func checkReferences(def *Definition) []ValidationError {
	var problems []ValidationError
	errorf := func(path, format string, args ...interface{}) {
		problems = append(problems, ValidationError{Path: path, Message: fmt.Sprintf(format, args...), Severity: SeverityError})
	}
	warnf := func(path, format string, args ...interface{}) {
		problems = append(problems, ValidationError{Path: path, Message: fmt.Sprintf(format, args...), Severity: SeverityWarning})
	}

	dishes := make(map[string]bool, len(def.Menu))
	for i, d := range def.Menu {
		path := fmt.Sprintf("menu[%d]", i)
		if dishes[d.Name] {
			errorf(path+".name", "duplicate dish %q", d.Name)
		}
		dishes[d.Name] = true

		if d.Appetizer != nil && d.Course != menu.CourseAppetizer {
			warnf(path+".appetizer", "appetizer attributes ignored for %s %q", d.Course, d.Name)
		}
		if d.Main != nil && d.Course != menu.CourseMainCourse {
			warnf(path+".main_course", "main course attributes ignored for %s %q", d.Course, d.Name)
		}
		if d.Dessert != nil && d.Course != menu.CourseDessert {
			warnf(path+".dessert", "dessert attributes ignored for %s %q", d.Course, d.Name)
		}
	}

	stations := make(map[string]bool, len(def.Stations))
	prepared := make(map[string]bool)
	for i, s := range def.Stations {
		path := fmt.Sprintf("stations[%d]", i)
		if stations[s.Name] {
			errorf(path+".name", "duplicate station %q", s.Name)
		}
		stations[s.Name] = true

		assigned := make(map[string]bool, len(s.Items))
		for j, item := range s.Items {
			itemPath := fmt.Sprintf("%s.items[%d]", path, j)
			if !dishes[item] {
				errorf(itemPath, "unknown dish %q", item)
				continue
			}
			if assigned[item] {
				errorf(itemPath, "dish %q assigned to station %q twice", item, s.Name)
			}
			assigned[item] = true
			prepared[item] = true
		}
	}

	for i, o := range def.Orders {
		path := fmt.Sprintf("orders[%d].item", i)
		if !dishes[o.Item] {
			errorf(path, "unknown dish %q", o.Item)
			continue
		}
		if !prepared[o.Item] {
			warnf(path, "no station prepares %q; the order will stay queued", o.Item)
		}
	}

	return problems
}

// fieldPath drops the root type name from a validator namespace.
func fieldPath(namespace string) string {
	if i := strings.Index(namespace, "."); i >= 0 {
		return namespace[i+1:]
	}
	return namespace
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "min":
		return fmt.Sprintf("must have at least %s entries", fe.Param())
	case "gt":
		return fmt.Sprintf("must be greater than %s", fe.Param())
	case "gte":
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "oneof":
		return fmt.Sprintf("must be one of: %s", strings.ReplaceAll(fe.Param(), " ", ", "))
	default:
		return fmt.Sprintf("failed %q validation", fe.Tag())
	}
}

// convertCUEErrors converts CUE errors to ValidationError slice.
func convertCUEErrors(err error, source string) []ValidationError {
	var out []ValidationError
	for _, e := range errors.Errors(err) {
		ve := ValidationError{
			File:     source,
			Path:     strings.Join(e.Path(), "."),
			Severity: SeverityError,
		}
		if pos := errors.Positions(e); len(pos) > 0 && pos[0].Filename() == source {
			ve.Line = pos[0].Line()
			ve.Column = pos[0].Column()
		}
		format, args := e.Msg()
		ve.Message = fmt.Sprintf(format, args...)
		out = append(out, ve)
	}
	return out
}
