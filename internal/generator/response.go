package generator

import "strings"

// GenerationResponse 规范化后的生成结果。
// Success 为 true 时 Names 非空；否则 Error 携带错误信息。
type GenerationResponse struct {
	Success bool     `json:"success"`
	Names   []string `json:"names,omitempty"`
	Error   string   `json:"error,omitempty"`
}

// Failed 构造失败响应
func Failed(err error) *GenerationResponse {
	return &GenerationResponse{Success: false, Error: err.Error()}
}

// NormalizeResponse 校验 Provider 返回值并整理为名称列表。
//
// callErr 非空时只返回 ProviderError，这是唯一允许携带传输层错误信息的分支。
// 否则 raw 必须是字符串序列：逐个 trim、丢弃空串、按大小写敏感去重并保留首次出现顺序。
// 结果为空时按格式错误处理。
func NormalizeResponse(raw any, callErr error) *GenerationResponse {
	if callErr != nil {
		return &GenerationResponse{Success: false, Error: ErrProvider.Error() + ": " + callErr.Error()}
	}

	candidates, ok := asStrings(raw)
	if !ok || len(candidates) == 0 {
		return Failed(ErrEmptyOrMalformedResponse)
	}

	seen := make(map[string]bool, len(candidates))
	names := make([]string, 0, len(candidates))
	for _, c := range candidates {
		c = strings.TrimSpace(c)
		if c == "" || seen[c] {
			continue
		}
		seen[c] = true
		names = append(names, c)
	}
	if len(names) == 0 {
		return Failed(ErrEmptyOrMalformedResponse)
	}
	return &GenerationResponse{Success: true, Names: names}
}

func asStrings(raw any) ([]string, bool) {
	switch v := raw.(type) {
	case []string:
		return v, true
	case []any:
		out := make([]string, 0, len(v))
		for _, el := range v {
			s, ok := el.(string)
			if !ok {
				return nil, false
			}
			out = append(out, s)
		}
		return out, true
	}
	return nil, false
}
