// Package icon 维护工具图标名称到固定句柄的有限注册表。
// 未知名称返回 ErrUnknownIcon，调用方决定是否回退到默认图标。
package icon

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ErrUnknownIcon 未注册的图标名称
var ErrUnknownIcon = errors.New("unknown icon")

// Handle 前端使用的图标句柄
type Handle string

// Default 默认图标
const Default Handle = "sparkles"

var registry = map[string]Handle{
	"sparkles":  "sparkles",
	"wand":      "wand-2",
	"sword":     "sword",
	"crown":     "crown",
	"paw":       "paw-print",
	"briefcase": "briefcase",
	"rocket":    "rocket",
	"user":      "user-round",
	"globe":     "globe",
	"book":      "book-open",
	"music":     "music",
	"gamepad":   "gamepad-2",
}

// Resolve 查找图标，名称不区分大小写
func Resolve(name string) (Handle, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	if h, ok := registry[key]; ok {
		return h, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownIcon, name)
}

// ResolveOrDefault 查找图标，未知名称返回默认图标
func ResolveOrDefault(name string) Handle {
	h, err := Resolve(name)
	if err != nil {
		return Default
	}
	return h
}

// Names 已注册的图标名称
func Names() []string {
	names := make([]string, 0, len(registry))
	for n := range registry {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
