package generator

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"

	"github.com/spf13/cast"
)

// ValidateSchema 检查字段定义本身是否合法。
// 与类型无关的约束（如 text 字段上的 min）视为编写错误，而不是静默忽略。
// 默认值必须能通过本字段的校验，否则同样是 InvalidSchema。
func ValidateSchema(f FieldSchema) error {
	if strings.TrimSpace(f.Name) == "" {
		return fieldErr(f.Name, ErrInvalidSchema, "field name is empty")
	}
	if !f.Type.Valid() {
		return fieldErr(f.Name, ErrInvalidSchema, "unknown field type %q", f.Type)
	}
	if f.Type != FieldNumber && (f.Min != nil || f.Max != nil) {
		return fieldErr(f.Name, ErrInvalidSchema, "min/max not allowed on %s field", f.Type)
	}
	if f.Type != FieldSelect && len(f.Options) > 0 {
		return fieldErr(f.Name, ErrInvalidSchema, "options not allowed on %s field", f.Type)
	}
	switch f.Type {
	case FieldSelect:
		if len(f.Options) == 0 {
			return fieldErr(f.Name, ErrInvalidSchema, "select field requires options")
		}
	case FieldNumber:
		if f.Min != nil && f.Max != nil && *f.Min > *f.Max {
			return fieldErr(f.Name, ErrInvalidSchema, "min %v greater than max %v", *f.Min, *f.Max)
		}
	}
	if f.HasDefault() {
		if _, err := coerce(f, f.Default); err != nil {
			return fieldErr(f.Name, ErrInvalidSchema, "invalid default: %s", asFieldError(f.Name, err).Detail)
		}
	}
	return nil
}

// ValidateField 按字段定义校验并规范化一个用户值，nil 表示未提供。
//
// 返回值类型：text/textarea → string，number → float64，select → string，
// switch → bool，list → []string。
func ValidateField(f FieldSchema, value any) (any, error) {
	if err := ValidateSchema(f); err != nil {
		return nil, err
	}

	if value == nil {
		if f.HasDefault() {
			// 默认值已在 ValidateSchema 中校验过，这里只做规范化
			return coerce(f, f.Default)
		}
		if f.Required {
			return nil, fieldErr(f.Name, ErrMissingRequiredField, "value is required")
		}
		return nil, nil
	}

	return coerce(f, value)
}

func coerce(f FieldSchema, value any) (any, error) {
	switch f.Type {
	case FieldText, FieldTextarea:
		return validateText(f, value)
	case FieldNumber:
		return validateNumber(f, value)
	case FieldSelect:
		return validateSelect(f, value)
	case FieldSwitch:
		return validateSwitch(f, value)
	case FieldList:
		return validateList(f, value)
	}
	// ValidateSchema 已经拦截未知类型
	return nil, fieldErr(f.Name, ErrInvalidSchema, "unknown field type %q", f.Type)
}

func validateText(f FieldSchema, value any) (any, error) {
	switch value.(type) {
	case []any, []string, map[string]any:
		return nil, fieldErr(f.Name, ErrInvalidValue, "expected text, got %T", value)
	}
	s, err := cast.ToStringE(value)
	if err != nil {
		return nil, fieldErr(f.Name, ErrInvalidValue, "expected text, got %T", value)
	}
	if f.Required && strings.TrimSpace(s) == "" {
		return nil, fieldErr(f.Name, ErrMissingRequiredField, "value is empty")
	}
	return s, nil
}

func validateNumber(f FieldSchema, value any) (any, error) {
	n, err := toNumber(value)
	if err != nil {
		return nil, fieldErr(f.Name, ErrInvalidValue, "expected number, got %v", value)
	}
	if math.IsNaN(n) || math.IsInf(n, 0) {
		return nil, fieldErr(f.Name, ErrInvalidValue, "number must be finite")
	}
	if f.Min != nil && n < *f.Min {
		return nil, fieldErr(f.Name, ErrOutOfRange, "%v is less than min %v", n, *f.Min)
	}
	if f.Max != nil && n > *f.Max {
		return nil, fieldErr(f.Name, ErrOutOfRange, "%v is greater than max %v", n, *f.Max)
	}
	return n, nil
}

func toNumber(value any) (float64, error) {
	switch v := value.(type) {
	case bool:
		return 0, strconv.ErrSyntax
	case string:
		return strconv.ParseFloat(strings.TrimSpace(v), 64)
	case json.Number:
		return v.Float64()
	}
	return cast.ToFloat64E(value)
}

func validateSelect(f FieldSchema, value any) (any, error) {
	s, ok := value.(string)
	if !ok {
		return nil, fieldErr(f.Name, ErrInvalidOption, "%v is not one of %v", value, f.Options)
	}
	for _, opt := range f.Options {
		if opt == s {
			return s, nil
		}
	}
	return nil, fieldErr(f.Name, ErrInvalidOption, "%q is not one of %v", s, f.Options)
}

func validateSwitch(f FieldSchema, value any) (any, error) {
	switch value.(type) {
	case []any, []string, map[string]any:
		return nil, fieldErr(f.Name, ErrInvalidValue, "expected boolean, got %T", value)
	}
	b, err := cast.ToBoolE(value)
	if err != nil {
		return nil, fieldErr(f.Name, ErrInvalidValue, "expected boolean, got %v", value)
	}
	return b, nil
}

func validateList(f FieldSchema, value any) (any, error) {
	var items []string
	switch v := value.(type) {
	case []string:
		items = append([]string{}, v...)
	case []any:
		items = make([]string, 0, len(v))
		for i, el := range v {
			s, ok := el.(string)
			if !ok {
				return nil, fieldErr(f.Name, ErrInvalidValue, "element %d is %T, expected string", i, el)
			}
			items = append(items, s)
		}
	default:
		return nil, fieldErr(f.Name, ErrInvalidValue, "expected list of strings, got %T", value)
	}
	if f.Required && len(items) == 0 {
		return nil, fieldErr(f.Name, ErrMissingRequiredField, "list is empty")
	}
	return items, nil
}
