package testutil

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync/atomic"
	"time"
)

// HTTPRoundTripper 重写 HTTP 请求到测试服务器
// 用于将真实 API 请求重定向到 mock 服务器
type HTTPRoundTripper struct {
	base *url.URL
	next http.RoundTripper
}

// RoundTrip 实现 http.RoundTripper 接口
func (t *HTTPRoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	cloned := req.Clone(req.Context())
	u := *req.URL
	u.Scheme = t.base.Scheme
	u.Host = t.base.Host
	cloned.URL = &u
	cloned.Host = t.base.Host
	return t.next.RoundTrip(cloned)
}

// NewTestClient 创建测试用 HTTP 客户端
// 自动将请求重定向到测试服务器
func NewTestClient(ts *httptest.Server) *http.Client {
	u, _ := url.Parse(ts.URL)
	return &http.Client{
		Timeout:   5 * time.Second,
		Transport: &HTTPRoundTripper{base: u, next: http.DefaultTransport},
	}
}

// ChatCompletionServer 模拟 OpenAI /chat/completions 接口
type ChatCompletionServer struct {
	*httptest.Server
	Content string
	Status  int
	calls   atomic.Int32
	// LastModel 最近一次请求体中的 model
	LastModel atomic.Value
}

// NewChatCompletionServer 创建返回固定内容的服务器，调用方负责 Close
func NewChatCompletionServer(content string) *ChatCompletionServer {
	return NewChatCompletionServerWithStatus(content, http.StatusOK)
}

// NewChatCompletionServerWithStatus 创建返回指定状态码的服务器
func NewChatCompletionServerWithStatus(content string, status int) *ChatCompletionServer {
	s := &ChatCompletionServer{Content: content, Status: status}
	s.Server = httptest.NewServer(http.HandlerFunc(s.handle))
	return s
}

// Calls 返回请求次数
func (s *ChatCompletionServer) Calls() int {
	return int(s.calls.Load())
}

func (s *ChatCompletionServer) handle(w http.ResponseWriter, r *http.Request) {
	s.calls.Add(1)

	var body struct {
		Model string `json:"model"`
	}
	_ = json.NewDecoder(r.Body).Decode(&body)
	s.LastModel.Store(body.Model)

	w.Header().Set("Content-Type", "application/json")
	if s.Status != http.StatusOK {
		w.WriteHeader(s.Status)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"error": map[string]any{"message": "upstream unavailable", "type": "server_error"},
		})
		return
	}

	_ = json.NewEncoder(w).Encode(map[string]any{
		"id":      "chatcmpl-test",
		"object":  "chat.completion",
		"created": time.Now().Unix(),
		"model":   body.Model,
		"choices": []map[string]any{{
			"index":         0,
			"finish_reason": "stop",
			"message":       map[string]any{"role": "assistant", "content": s.Content},
		}},
		"usage": map[string]any{"prompt_tokens": 10, "completion_tokens": 10, "total_tokens": 20},
	})
}
