package validation

import (
	"errors"
	"reflect"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
)

const (
	ReasonRequired = "required"
	ReasonInvalid  = "invalid"
	ReasonTooShort = "too_short"
)

// tagName matches gin's binding tag so request and model structs share rules.
const tagName = "binding"

var engine = newEngine()

func newEngine() *validator.Validate {
	v := validator.New()
	v.SetTagName(tagName)
	v.RegisterTagNameFunc(jsonName)
	// required lets whitespace through, notblank does not
	if err := v.RegisterValidation("notblank", validators.NotBlank); err != nil {
		panic(err)
	}
	return v
}

func jsonName(f reflect.StructField) string {
	name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
	if name == "-" {
		return ""
	}
	return name
}

// Struct checks the binding tags of s and reports failures as *Error.
func Struct(s any) error {
	return translate(engine.Struct(s))
}

func translate(err error) error {
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}
	v := Violations{}
	for _, fe := range fieldErrs {
		if _, seen := v[fe.Field()]; !seen {
			v[fe.Field()] = reason(fe.Tag())
		}
	}
	return v.Err()
}

func reason(tag string) string {
	switch tag {
	case "required", "required_if", "required_unless", "notblank":
		return ReasonRequired
	case "min":
		return ReasonTooShort
	}
	return ReasonInvalid
}

// Binding plugs the engine into gin (binding.StructValidator), so ShouldBind
// failures come back as *Error with json field names.
type Binding struct{}

func (Binding) ValidateStruct(obj any) error {
	if obj == nil {
		return nil
	}
	v := reflect.ValueOf(obj)
	for v.Kind() == reflect.Pointer {
		if v.IsNil() {
			return nil
		}
		v = v.Elem()
	}
	if v.Kind() != reflect.Struct {
		return nil
	}
	return Struct(v.Interface())
}

func (Binding) Engine() any { return engine }

// Violations maps a field name to the reason it was rejected.
type Violations map[string]string

func (v Violations) Empty() bool { return len(v) == 0 }

// Fields returns the offending field names in stable order.
func (v Violations) Fields() []string {
	fields := make([]string, 0, len(v))
	for f := range v {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	return fields
}

// Err returns nil when there is nothing to report.
func (v Violations) Err() error {
	if v.Empty() {
		return nil
	}
	return &Error{Violations: v}
}

// Error is returned for rejected input. Callers render Fields to the end user.
type Error struct {
	Violations Violations
}

func (e *Error) Error() string {
	parts := make([]string, 0, len(e.Violations))
	for _, f := range e.Violations.Fields() {
		parts = append(parts, f+" "+e.Violations[f])
	}
	return "validation failed: " + strings.Join(parts, ", ")
}

func (e *Error) Fields() []string { return e.Violations.Fields() }

// Single builds an error for one field.
func Single(field, reason string) *Error {
	return &Error{Violations: Violations{field: reason}}
}
