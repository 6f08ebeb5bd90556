// Package generator 实现名称生成工具的核心流水线：
// 字段校验 → 参数合并 → 模型选择 → 请求构建 → 调用 Provider → 响应规范化。
// 除 Pipeline.Run 外，所有函数都是纯函数，只读取自己的参数。
package generator

// FieldType 字段类型（封闭集合）
type FieldType string

const (
	FieldText     FieldType = "text"
	FieldNumber   FieldType = "number"
	FieldSelect   FieldType = "select"
	FieldTextarea FieldType = "textarea"
	FieldSwitch   FieldType = "switch"
	FieldList     FieldType = "list"
)

// Valid 是否为已知类型
func (t FieldType) Valid() bool {
	switch t {
	case FieldText, FieldNumber, FieldSelect, FieldTextarea, FieldSwitch, FieldList:
		return true
	}
	return false
}

// FieldSchema 工具表单中的一个可配置字段
type FieldSchema struct {
	Name        string    `json:"name"`
	Label       string    `json:"label"`
	Type        FieldType `json:"type"`
	Default     any       `json:"default,omitempty"` // nil 表示没有默认值
	Options     []string  `json:"options,omitempty"` // 仅 select
	Min         *float64  `json:"min,omitempty"`     // 仅 number
	Max         *float64  `json:"max,omitempty"`     // 仅 number
	Required    bool      `json:"required"`
	Placeholder string    `json:"placeholder,omitempty"`
	Description string    `json:"description,omitempty"`
}

// HasDefault 是否声明了默认值
func (f *FieldSchema) HasDefault() bool {
	return f.Default != nil
}

// ToolDefinition 流水线读取的工具快照
type ToolDefinition struct {
	ID                string         `json:"id"`
	Slug              string         `json:"slug"`
	Name              string         `json:"name"`
	PromptCategory    string         `json:"ai_prompt_category"`
	DefaultModel      string         `json:"default_ai_model_identifier,omitempty"`
	AvailableModels   []string       `json:"available_ai_model_identifiers"`
	DefaultParameters map[string]any `json:"default_parameters"`
	Fields            []FieldSchema  `json:"configurable_fields"`
	Published         bool           `json:"is_published"`
}

// AllowsModel 模型是否在工具的白名单中
func (t *ToolDefinition) AllowsModel(identifier string) bool {
	for _, id := range t.AvailableModels {
		if id == identifier {
			return true
		}
	}
	return false
}

// AIModel 可用的 AI 模型
type AIModel struct {
	Identifier   string   `json:"model_identifier"`
	DisplayName  string   `json:"display_name"`
	Provider     string   `json:"provider_name"`
	Capabilities []string `json:"capabilities_tags"`
	Active       bool     `json:"is_active"`
}

// ActiveSet 过滤出处于激活状态的模型标识
func ActiveSet(models []AIModel) map[string]bool {
	set := make(map[string]bool, len(models))
	for _, m := range models {
		if m.Active {
			set[m.Identifier] = true
		}
	}
	return set
}
