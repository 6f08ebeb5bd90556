package provider

import (
	"encoding/json"
	"strings"

	"github.com/kaptinlin/jsonrepair"
)

// DecodeNames 把模型回复解码为 JSON 值。
//
// 兼容常见的回复形态：```json 代码块、前后带说明文字、{"names": [...]} 包装、
// 尾逗号或缺失引号等轻微损坏（交给 jsonrepair 修复）。
// 无法解码时原样返回字符串，由 NormalizeResponse 判定为格式错误。
func DecodeNames(content string) any {
	s := stripCodeFence(strings.TrimSpace(content))
	if s == "" {
		return nil
	}

	if v, ok := decodeJSON(extractJSON(s)); ok {
		return unwrapNames(v)
	}
	return content
}

func decodeJSON(s string) (any, bool) {
	if s == "" {
		return nil, false
	}
	var v any
	if err := json.Unmarshal([]byte(s), &v); err == nil {
		return v, true
	}

	// 修复 LLM 常见的 JSON 格式错误
	repaired, err := jsonrepair.JSONRepair(s)
	if err != nil {
		return nil, false
	}
	if err := json.Unmarshal([]byte(repaired), &v); err != nil {
		return nil, false
	}
	return v, true
}

// unwrapNames 取出 {"names": [...]} 之类包装对象中的唯一数组
func unwrapNames(v any) any {
	obj, ok := v.(map[string]any)
	if !ok {
		return v
	}
	for _, key := range []string{"names", "results", "data"} {
		if inner, ok := obj[key]; ok {
			return inner
		}
	}
	if len(obj) == 1 {
		for _, inner := range obj {
			return inner
		}
	}
	return v
}

func stripCodeFence(s string) string {
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		s = s[i+1:]
	}
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}

// extractJSON 截取第一个 [ 或 { 到最后一个匹配的 ] 或 } 之间的内容
func extractJSON(s string) string {
	start := strings.IndexAny(s, "[{")
	if start < 0 {
		return ""
	}
	closing := byte(']')
	if s[start] == '{' {
		closing = '}'
	}
	end := strings.LastIndexByte(s, closing)
	if end < start {
		// 缺失结尾括号时交给 jsonrepair 补全
		return s[start:]
	}
	return s[start : end+1]
}
