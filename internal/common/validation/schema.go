// internal/common/validation/schema.go
package validation

import (
	"fmt"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

// JSONSchema defines the structure for input/output schemas
type JSONSchema struct {
	Type                 string              `json:"type"`
	Properties           map[string]Property `json:"properties"`
	Required             []string            `json:"required,omitempty"`
	AdditionalProperties bool                `json:"additionalProperties"`
}

// Property is one JSON Schema property. Message and Messages are not part of
// the rendered schema: Messages overrides the text for a keyword ("required",
// "minLength", "pattern", ...) and Message is the fallback for any failure.
type Property struct {
	Type        string              `json:"type,omitempty"`
	Description string              `json:"description,omitempty"`
	Minimum     *float64            `json:"minimum,omitempty"`
	Maximum     *float64            `json:"maximum,omitempty"`
	Enum        []string            `json:"enum,omitempty"`
	Const       interface{}         `json:"const,omitempty"`
	Pattern     *string             `json:"pattern,omitempty"`
	Format      string              `json:"format,omitempty"`
	MinLength   *int                `json:"minLength,omitempty"`
	MaxLength   *int                `json:"maxLength,omitempty"`
	Items       *Property           `json:"items,omitempty"`
	Properties  map[string]Property `json:"properties,omitempty"`
	Required    []string            `json:"required,omitempty"`

	Message  string            `json:"-"`
	Messages map[string]string `json:"-"`
}

type ValidationResult struct {
	Valid  bool              `json:"valid"`
	Errors []ValidationError `json:"errors,omitempty"`
}

type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

// gojsonschema error type -> schema keyword and result code
var errorTypes = map[string]struct{ keyword, code string }{
	"required":                        {"required", "REQUIRED_FIELD_MISSING"},
	"invalid_type":                    {"type", "INVALID_TYPE"},
	"string_gte":                      {"minLength", "MIN_LENGTH_VIOLATION"},
	"string_lte":                      {"maxLength", "MAX_LENGTH_VIOLATION"},
	"pattern":                         {"pattern", "PATTERN_MISMATCH"},
	"format":                          {"format", "INVALID_FORMAT"},
	"enum":                            {"enum", "INVALID_ENUM_VALUE"},
	"const":                           {"const", "CONST_MISMATCH"},
	"number_gte":                      {"minimum", "MINIMUM_VIOLATION"},
	"number_lte":                      {"maximum", "MAXIMUM_VIOLATION"},
	"additional_property_not_allowed": {"additionalProperties", "EXTRA_FIELD"},
}

// Validator is a compiled JSONSchema.
type Validator struct {
	spec   JSONSchema
	schema *gojsonschema.Schema
}

func NewValidator(spec JSONSchema) (*Validator, error) {
	if spec.Type == "" {
		spec.Type = "object"
	}
	schema, err := gojsonschema.NewSchema(gojsonschema.NewGoLoader(spec))
	if err != nil {
		return nil, fmt.Errorf("compile schema: %w", err)
	}
	return &Validator{spec: spec, schema: schema}, nil
}

// MustValidator is NewValidator for package-level schemas.
func MustValidator(spec JSONSchema) *Validator {
	v, err := NewValidator(spec)
	if err != nil {
		panic(err)
	}
	return v
}

// Validate checks input. Empty strings for optional properties count as absent.
func (v *Validator) Validate(input map[string]interface{}) *ValidationResult {
	doc := make(map[string]interface{}, len(input))
	for k, val := range input {
		if s, ok := val.(string); ok && s == "" && !slices.Contains(v.spec.Required, k) {
			continue
		}
		doc[k] = val
	}

	result, err := v.schema.Validate(gojsonschema.NewGoLoader(doc))
	if err != nil {
		return &ValidationResult{Errors: []ValidationError{{Field: "(root)", Message: err.Error(), Code: "INVALID_DOCUMENT"}}}
	}

	errs := make([]ValidationError, 0, len(result.Errors()))
	seen := make(map[string]bool)
	for _, re := range result.Errors() {
		ve := v.convert(re)
		// one message per field, like a form would show
		if seen[ve.Field] {
			continue
		}
		seen[ve.Field] = true
		errs = append(errs, ve)
	}

	slices.SortStableFunc(errs, func(a, b ValidationError) int {
		if d := v.fieldRank(a.Field) - v.fieldRank(b.Field); d != 0 {
			return d
		}
		return strings.Compare(a.Field, b.Field)
	})

	return &ValidationResult{Valid: len(errs) == 0, Errors: errs}
}

func (v *Validator) convert(re gojsonschema.ResultError) ValidationError {
	field := re.Field()
	if re.Type() == "required" || re.Type() == "additional_property_not_allowed" {
		prop, _ := re.Details()["property"].(string)
		if field == gojsonschema.STRING_CONTEXT_ROOT || field == "" {
			field = prop
		} else {
			field = field + "." + prop
		}
	}

	kind, ok := errorTypes[re.Type()]
	if !ok {
		kind.keyword = re.Type()
		kind.code = strings.ToUpper(re.Type())
	}

	message := re.Description()
	if prop, found := v.lookup(field); found {
		if m, ok := prop.Messages[kind.keyword]; ok {
			message = m
		} else if prop.Message != "" {
			message = prop.Message
		}
	}

	return ValidationError{Field: field, Message: message, Code: kind.code}
}

func (v *Validator) lookup(field string) (Property, bool) {
	parts := strings.Split(field, ".")
	props := v.spec.Properties
	var current Property
	for i, part := range parts {
		if _, err := strconv.Atoi(part); err == nil && i > 0 && current.Items != nil {
			current = *current.Items
			props = current.Properties
			continue
		}
		p, ok := props[part]
		if !ok {
			return Property{}, false
		}
		current = p
		props = p.Properties
	}
	return current, true
}

// fieldRank orders errors by the schema's required list, then the rest.
func (v *Validator) fieldRank(field string) int {
	top := strings.SplitN(field, ".", 2)[0]
	if i := slices.Index(v.spec.Required, top); i >= 0 {
		return i
	}
	return len(v.spec.Required)
}

// GetErrorMessages returns a simple list of error messages
func (vr *ValidationResult) GetErrorMessages() []string {
	messages := make([]string, len(vr.Errors))
	for i, err := range vr.Errors {
		messages[i] = fmt.Sprintf("%s: %s", err.Field, err.Message)
	}
	return messages
}

var (
	emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
	phonePattern = regexp.MustCompile(`^\+?[\d\s\-\(\)]{10,}$`)
)

// ValidateEmail validates email format
func ValidateEmail(email string) bool {
	return emailPattern.MatchString(email)
}

// ValidatePhone validates basic phone number format
func ValidatePhone(phone string) bool {
	return phonePattern.MatchString(phone)
}

func Int(v int) *int { return &v }
func Float(v float64) *float64 { return &v }
func String(v string) *string { return &v }
