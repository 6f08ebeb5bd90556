package generator

import (
	"errors"
	"fmt"
	"strings"
)

// 错误分类（与 UI 约定的错误码一致）
var (
	ErrMissingRequiredField     = errors.New("MissingRequiredField")
	ErrOutOfRange               = errors.New("OutOfRange")
	ErrInvalidOption            = errors.New("InvalidOption")
	ErrInvalidSchema            = errors.New("InvalidSchema")
	ErrInvalidValue             = errors.New("InvalidValue")
	ErrModelNotAllowed          = errors.New("ModelNotAllowed")
	ErrModelInactive            = errors.New("ModelInactive")
	ErrNoModelAvailable         = errors.New("NoModelAvailable")
	ErrProvider                 = errors.New("ProviderError")
	ErrEmptyOrMalformedResponse = errors.New("EmptyOrMalformedResponse")
	ErrToolNotFound             = errors.New("ToolNotFound")
)

// FieldError 单个字段的校验失败
type FieldError struct {
	Field  string
	Err    error
	Detail string
}

func (e *FieldError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("field %q: %v", e.Field, e.Err)
	}
	return fmt.Sprintf("field %q: %v: %s", e.Field, e.Err, e.Detail)
}

func (e *FieldError) Unwrap() error { return e.Err }

func fieldErr(field string, err error, format string, args ...any) *FieldError {
	return &FieldError{Field: field, Err: err, Detail: fmt.Sprintf(format, args...)}
}

// ParameterValidationError 聚合所有字段错误，调用方可以一次性展示全部问题
type ParameterValidationError struct {
	Errors []*FieldError
}

func (e *ParameterValidationError) Error() string {
	msgs := make([]string, 0, len(e.Errors))
	for _, fe := range e.Errors {
		msgs = append(msgs, fe.Error())
	}
	return "ParameterValidationError: " + strings.Join(msgs, "; ")
}

// Unwrap 让 errors.Is(err, ErrMissingRequiredField) 在聚合错误上同样成立
func (e *ParameterValidationError) Unwrap() []error {
	errs := make([]error, 0, len(e.Errors))
	for _, fe := range e.Errors {
		errs = append(errs, fe)
	}
	return errs
}

// FieldErrors 按字段名索引
func (e *ParameterValidationError) FieldErrors() map[string]*FieldError {
	out := make(map[string]*FieldError, len(e.Errors))
	for _, fe := range e.Errors {
		if _, ok := out[fe.Field]; !ok {
			out[fe.Field] = fe
		}
	}
	return out
}

// ModelError 模型选择失败
type ModelError struct {
	Identifier string
	Err        error
}

func (e *ModelError) Error() string {
	if e.Identifier == "" {
		return e.Err.Error()
	}
	return fmt.Sprintf("model %q: %v", e.Identifier, e.Err)
}

func (e *ModelError) Unwrap() error { return e.Err }

var taxonomy = []error{
	ErrMissingRequiredField,
	ErrOutOfRange,
	ErrInvalidOption,
	ErrInvalidSchema,
	ErrInvalidValue,
	ErrModelNotAllowed,
	ErrModelInactive,
	ErrNoModelAvailable,
	ErrProvider,
	ErrEmptyOrMalformedResponse,
	ErrToolNotFound,
}

// Code 返回错误对应的分类码，未知错误返回空字符串
func Code(err error) string {
	if err == nil {
		return ""
	}
	var pve *ParameterValidationError
	if errors.As(err, &pve) {
		return "ParameterValidationError"
	}
	for _, sentinel := range taxonomy {
		if errors.Is(err, sentinel) {
			return sentinel.Error()
		}
	}
	return ""
}
