package provider

import (
	"fmt"
	"sort"
	"strings"

	"github.com/cloudwego/eino/components/prompt"
	"github.com/cloudwego/eino/schema"
)

const systemPrompt = `You are a creative naming assistant.
Always answer with a JSON array of strings and nothing else.
Each string is one name candidate. Do not number them and do not add explanations.`

const genericUserPrompt = `Generate {count} {category} names.
Preferences:
{parameters}`

// 内置提示词模板，键为工具的 ai_prompt_category
var builtinTemplates = map[string]string{
	"fantasy": `Generate {count} original fantasy character names.
Take these preferences into account:
{parameters}`,
	"business": `Generate {count} brandable business or product names.
They should be short, memorable and easy to spell.
Preferences:
{parameters}`,
	"pet": `Generate {count} names for a pet.
Preferences:
{parameters}`,
	"username": `Generate {count} usernames suitable for online accounts.
Avoid spaces. Preferences:
{parameters}`,
}

// Templates 提示词模板集合
type Templates struct {
	byCategory map[string]prompt.ChatTemplate
	fallback   prompt.ChatTemplate
}

// NewTemplates 创建模板集合，extra 中的同名模板覆盖内置模板
func NewTemplates(extra map[string]string) *Templates {
	t := &Templates{
		byCategory: make(map[string]prompt.ChatTemplate),
		fallback:   newChatTemplate(genericUserPrompt),
	}
	for category, text := range builtinTemplates {
		t.byCategory[category] = newChatTemplate(text)
	}
	for category, text := range extra {
		t.byCategory[category] = newChatTemplate(text)
	}
	return t
}

func newChatTemplate(user string) prompt.ChatTemplate {
	return prompt.FromMessages(schema.FString,
		schema.SystemMessage(systemPrompt),
		schema.UserMessage(user),
	)
}

// Lookup 按类别查模板，未知类别使用通用模板
func (t *Templates) Lookup(category string) prompt.ChatTemplate {
	if tpl, ok := t.byCategory[category]; ok {
		return tpl
	}
	return t.fallback
}

// Categories 已注册的类别
func (t *Templates) Categories() []string {
	out := make([]string, 0, len(t.byCategory))
	for c := range t.byCategory {
		out = append(out, c)
	}
	sort.Strings(out)
	return out
}

// renderParameters 将参数渲染为 "- key: value" 行，按键排序，跳过空值
func renderParameters(params map[string]any) string {
	keys := make([]string, 0, len(params))
	for k, v := range params {
		if v == nil || k == countParam {
			continue
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)

	if len(keys) == 0 {
		return "- none"
	}

	var b strings.Builder
	for i, k := range keys {
		if i > 0 {
			b.WriteByte('\n')
		}
		fmt.Fprintf(&b, "- %s: %s", k, formatValue(params[k]))
	}
	return b.String()
}

func formatValue(v any) string {
	switch val := v.(type) {
	case []string:
		return strings.Join(val, ", ")
	case float64:
		return strings.TrimSuffix(strings.TrimRight(fmt.Sprintf("%f", val), "0"), ".")
	case bool:
		if val {
			return "yes"
		}
		return "no"
	}
	return fmt.Sprint(v)
}
