package generator

// MergeParameters 合并工具默认参数与用户覆盖值，输出中每个字段名恰好出现一次。
//
// 取值顺序：overrides → defaults → 未提供（交给 ValidateField 处理 schema 默认值）。
// overrides 中不对应任何字段的键被忽略。任一字段失败则整体失败，
// 返回的 *ParameterValidationError 包含全部字段错误。
func MergeParameters(fields []FieldSchema, defaults, overrides map[string]any) (map[string]any, error) {
	var errs []*FieldError
	seen := make(map[string]bool, len(fields))
	out := make(map[string]any, len(fields))

	for _, f := range fields {
		if seen[f.Name] {
			errs = append(errs, fieldErr(f.Name, ErrInvalidSchema, "duplicate field name"))
			continue
		}
		seen[f.Name] = true

		value, ok := overrides[f.Name]
		if !ok || value == nil {
			value = defaults[f.Name]
		}

		normalized, err := ValidateField(f, value)
		if err != nil {
			errs = append(errs, asFieldError(f.Name, err))
			continue
		}
		out[f.Name] = normalized
	}

	if len(errs) > 0 {
		return nil, &ParameterValidationError{Errors: errs}
	}
	return out, nil
}

func asFieldError(name string, err error) *FieldError {
	if fe, ok := err.(*FieldError); ok {
		return fe
	}
	return &FieldError{Field: name, Err: err}
}
