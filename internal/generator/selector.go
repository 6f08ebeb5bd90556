package generator

import "fmt"

// SelectModel 决定本次请求使用的模型标识。
//
// 用户显式选择优先于工具默认值，但两者都受工具白名单和模型实时可用性约束。
// active 为当前激活模型标识集合。
func SelectModel(tool *ToolDefinition, active map[string]bool, requested string) (string, error) {
	if err := checkModelConfig(tool); err != nil {
		return "", err
	}

	if requested != "" {
		if !tool.AllowsModel(requested) {
			return "", &ModelError{Identifier: requested, Err: ErrModelNotAllowed}
		}
		if !active[requested] {
			return "", &ModelError{Identifier: requested, Err: ErrModelInactive}
		}
		return requested, nil
	}

	if tool.DefaultModel != "" && active[tool.DefaultModel] {
		return tool.DefaultModel, nil
	}

	return "", &ModelError{Identifier: tool.DefaultModel, Err: ErrNoModelAvailable}
}

// checkModelConfig 默认模型必须属于白名单；白名单为空但设置了默认模型视为配置错误
func checkModelConfig(tool *ToolDefinition) error {
	if tool.DefaultModel == "" {
		return nil
	}
	if len(tool.AvailableModels) == 0 {
		return &ModelError{
			Identifier: tool.DefaultModel,
			Err:        fmt.Errorf("%w: tool %q has a default model but no available models", ErrInvalidSchema, tool.Slug),
		}
	}
	if !tool.AllowsModel(tool.DefaultModel) {
		return &ModelError{
			Identifier: tool.DefaultModel,
			Err:        fmt.Errorf("%w: default model not in available models of tool %q", ErrInvalidSchema, tool.Slug),
		}
	}
	return nil
}

// ValidateTool 校验工具定义的结构一致性（字段定义与模型配置），供写入前调用
func ValidateTool(tool *ToolDefinition) error {
	var errs []*FieldError
	seen := make(map[string]bool, len(tool.Fields))
	for _, f := range tool.Fields {
		if err := ValidateSchema(f); err != nil {
			errs = append(errs, asFieldError(f.Name, err))
			continue
		}
		if seen[f.Name] {
			errs = append(errs, fieldErr(f.Name, ErrInvalidSchema, "duplicate field name"))
		}
		seen[f.Name] = true

		if v, ok := tool.DefaultParameters[f.Name]; ok && v != nil {
			if _, err := coerce(f, v); err != nil {
				errs = append(errs, fieldErr(f.Name, ErrInvalidSchema,
					"invalid default parameter: %s", asFieldError(f.Name, err).Detail))
			}
		}
	}
	if len(errs) > 0 {
		return &ParameterValidationError{Errors: errs}
	}
	return checkModelConfig(tool)
}
