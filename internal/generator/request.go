package generator

import (
	"encoding/json"
	"maps"
)

// GenerationRequest 发送给 Provider 的请求，构建后不可修改
type GenerationRequest struct {
	promptCategory string
	model          string
	parameters     map[string]any
}

// BuildRequest 组合请求。不做任何校验，输入应已在上游校验过。
func BuildRequest(promptCategory, modelIdentifier string, parameters map[string]any) *GenerationRequest {
	return &GenerationRequest{
		promptCategory: promptCategory,
		model:          modelIdentifier,
		parameters:     maps.Clone(parameters),
	}
}

func (r *GenerationRequest) PromptCategory() string { return r.promptCategory }

func (r *GenerationRequest) ModelIdentifier() string { return r.model }

// Parameters 返回参数副本
func (r *GenerationRequest) Parameters() map[string]any {
	return maps.Clone(r.parameters)
}

// Parameter 读取单个参数
func (r *GenerationRequest) Parameter(name string) (any, bool) {
	v, ok := r.parameters[name]
	return v, ok
}

func (r *GenerationRequest) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		PromptCategory string         `json:"ai_prompt_category"`
		Model          string         `json:"model_identifier"`
		Parameters     map[string]any `json:"parameters"`
	}{r.promptCategory, r.model, r.parameters})
}
