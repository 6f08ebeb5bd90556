package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ashwinyue/namegen/internal/generator"
	"github.com/ashwinyue/namegen/internal/middleware"
	"github.com/ashwinyue/namegen/internal/provider"
	"github.com/ashwinyue/namegen/internal/service/aimodel"
	"github.com/ashwinyue/namegen/internal/service/generation"
	"github.com/ashwinyue/namegen/internal/service/savedname"
	"github.com/ashwinyue/namegen/internal/service/tool"
	"github.com/ashwinyue/namegen/internal/testutil"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type env struct {
	engine *gin.Engine
	chat   *testutil.MockChatModel
}

func newEnv(t *testing.T, replies ...string) *env {
	t.Helper()
	log, _ := testutil.QuietLogger()

	chat := &testutil.MockChatModel{Replies: replies}
	toolSvc := tool.NewService(testutil.NewToolStore(testutil.NewTool("story", "gpt-4o", "gpt-4o-mini")), nil)
	modelSvc := aimodel.NewService(testutil.NewModelStore(
		testutil.NewAIModel("gpt-4o", true),
		testutil.NewAIModel("gpt-4o-mini", false),
	))
	pipeline := generator.NewPipeline(toolSvc, modelSvc, provider.NewChatProvider(chat, nil, log),
		generator.Options{Timeout: time.Second, MaxRetries: 1}, log)

	h := &Handlers{
		System:    NewSystemHandler("namegen", "test", nil),
		Tool:      NewToolHandler(toolSvc),
		Generate:  NewGenerateHandler(generation.NewService(pipeline, log)),
		Model:     NewModelHandler(modelSvc),
		SavedName: NewSavedNameHandler(savedname.NewService(testutil.NewSavedNameStore())),
	}

	r := gin.New()
	r.Use(middleware.AuthMiddleware(""))
	r.GET("/health", h.System.Health)
	r.GET("/tools", h.Tool.ListTools)
	r.POST("/tools", h.Tool.CreateTool)
	r.GET("/tools/:slug", h.Tool.GetTool)
	r.PUT("/tools/:slug", h.Tool.UpdateTool)
	r.POST("/tools/:slug/generate", h.Generate.Generate)
	r.POST("/tools/:slug/preview", h.Generate.Preview)
	r.GET("/models/active", h.Model.ListActiveModels)
	r.PUT("/models/:identifier/active", h.Model.SetActive)
	saved := r.Group("/saved-names", middleware.RequireUser())
	saved.POST("", h.SavedName.SaveName)
	saved.GET("", h.SavedName.ListSavedNames)
	saved.DELETE("/:id", h.SavedName.DeleteSavedName)

	return &env{engine: r, chat: chat}
}

func (e *env) do(t *testing.T, method, path string, body any, headers ...string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}

	w := httptest.NewRecorder()
	e.engine.ServeHTTP(w, req)

	var resp map[string]any
	_ = json.Unmarshal(w.Body.Bytes(), &resp)
	return w, resp
}

// ========== 生成接口 ==========

func TestGenerate_Success(t *testing.T) {
	e := newEnv(t, `["Aria", "Bran"]`)

	w, resp := e.do(t, http.MethodPost, "/tools/story/generate", map[string]any{
		"parameters": map[string]any{"theme": "forest"},
	})
	require.Equal(t, http.StatusOK, w.Code)

	data := resp["data"].(map[string]any)
	assert.Equal(t, true, data["success"])
	assert.Equal(t, []any{"Aria", "Bran"}, data["names"])
	assert.Equal(t, "gpt-4o", data["model"])
	assert.Equal(t, float64(1), data["attempts"])
}

func TestGenerate_ValidationErrors(t *testing.T) {
	e := newEnv(t, `["x"]`)

	w, resp := e.do(t, http.MethodPost, "/tools/story/generate", map[string]any{
		"parameters": map[string]any{"count": 500, "style": "silly"},
	})
	require.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Equal(t, "ParameterValidationError", resp["error_code"])

	fields := resp["data"].(map[string]any)["fields"].(map[string]any)
	assert.Equal(t, "MissingRequiredField", fields["theme"].(map[string]any)["code"])
	assert.Equal(t, "OutOfRange", fields["count"].(map[string]any)["code"])
	assert.Equal(t, "InvalidOption", fields["style"].(map[string]any)["code"])
	assert.Zero(t, e.chat.Calls())
}

func TestGenerate_StatusMapping(t *testing.T) {
	tests := []struct {
		name   string
		path   string
		model  string
		status int
		code   string
	}{
		{name: "unknown tool", path: "/tools/nope/generate", status: http.StatusNotFound, code: "ToolNotFound"},
		{name: "model not allowed", path: "/tools/story/generate", model: "claude", status: http.StatusUnprocessableEntity, code: "ModelNotAllowed"},
		{name: "model inactive", path: "/tools/story/generate", model: "gpt-4o-mini", status: http.StatusConflict, code: "ModelInactive"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newEnv(t, `["x"]`)
			w, resp := e.do(t, http.MethodPost, tt.path, map[string]any{
				"parameters": map[string]any{"theme": "forest"},
				"model":      tt.model,
			})
			assert.Equal(t, tt.status, w.Code)
			assert.Equal(t, tt.code, resp["error_code"])
		})
	}
}

func TestGenerate_ProviderFailureInBand(t *testing.T) {
	e := newEnv(t, `not a list at all`)

	w, resp := e.do(t, http.MethodPost, "/tools/story/generate", map[string]any{
		"parameters": map[string]any{"theme": "forest"},
	})
	require.Equal(t, http.StatusOK, w.Code)

	data := resp["data"].(map[string]any)
	assert.Equal(t, false, data["success"])
	assert.Equal(t, "EmptyOrMalformedResponse", data["error"])
	assert.NotContains(t, data, "names")
}

func TestPreview(t *testing.T) {
	e := newEnv(t)

	w, resp := e.do(t, http.MethodPost, "/tools/story/preview", map[string]any{
		"parameters": map[string]any{"theme": "forest"},
	})
	require.Equal(t, http.StatusOK, w.Code)

	data := resp["data"].(map[string]any)
	assert.Equal(t, "fantasy", data["ai_prompt_category"])
	assert.Equal(t, "gpt-4o", data["model_identifier"])
	params := data["parameters"].(map[string]any)
	assert.Equal(t, "forest", params["theme"])
	assert.Equal(t, "dark", params["style"])
	assert.Zero(t, e.chat.Calls())
}

// ========== 工具接口 ==========

func TestTools_CreateAndGet(t *testing.T) {
	e := newEnv(t)

	body := map[string]any{
		"slug":                           "pets",
		"name":                           "Pet Names",
		"icon":                           "paw",
		"ai_prompt_category":             "pet",
		"default_ai_model_identifier":    "gpt-4o",
		"available_ai_model_identifiers": []string{"gpt-4o"},
		"configurable_fields": []map[string]any{
			{"name": "species", "label": "Species", "type": "select", "options": []string{"cat", "dog"}, "required": true},
		},
		"is_published": true,
	}
	w, _ := e.do(t, http.MethodPost, "/tools", body)
	require.Equal(t, http.StatusCreated, w.Code)

	w, _ = e.do(t, http.MethodPost, "/tools", body)
	assert.Equal(t, http.StatusConflict, w.Code)

	w, resp := e.do(t, http.MethodGet, "/tools/pets", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Pet Names", resp["data"].(map[string]any)["name"])

	w, resp = e.do(t, http.MethodGet, "/tools", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(2), resp["data"].(map[string]any)["total"])
}

func TestTools_CreateInvalid(t *testing.T) {
	e := newEnv(t)

	w, resp := e.do(t, http.MethodPost, "/tools", map[string]any{
		"slug":                           "bad",
		"name":                           "Bad",
		"ai_prompt_category":             "pet",
		"default_ai_model_identifier":    "claude",
		"available_ai_model_identifiers": []string{"gpt-4o"},
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "InvalidSchema", resp["error_code"])

	w, _ = e.do(t, http.MethodPost, "/tools", map[string]any{"name": "no slug"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestTools_GetMissing(t *testing.T) {
	w, _ := newEnv(t).do(t, http.MethodGet, "/tools/missing", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

// ========== 模型接口 ==========

func TestModels_SetActive(t *testing.T) {
	e := newEnv(t, `["Aria"]`)

	w, _ := e.do(t, http.MethodPut, "/models/gpt-4o-mini/active", map[string]any{"is_active": true})
	require.Equal(t, http.StatusOK, w.Code)

	w, resp := e.do(t, http.MethodGet, "/models/active", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, resp["data"], 2)

	// 之前停用的模型现在可以被选中
	w, resp = e.do(t, http.MethodPost, "/tools/story/generate", map[string]any{
		"parameters": map[string]any{"theme": "forest"},
		"model":      "gpt-4o-mini",
	})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "gpt-4o-mini", resp["data"].(map[string]any)["model"])

	w, _ = e.do(t, http.MethodPut, "/models/gpt-4o-mini/active", map[string]any{})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

// ========== 收藏接口 ==========

func TestSavedNames(t *testing.T) {
	e := newEnv(t)
	user := []string{"X-User-ID", "u1"}

	w, _ := e.do(t, http.MethodPost, "/saved-names", map[string]any{"name": "Aria", "tool_slug": "story"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w, resp := e.do(t, http.MethodPost, "/saved-names", map[string]any{"name": "Aria", "tool_slug": "story"}, user...)
	require.Equal(t, http.StatusCreated, w.Code)
	id := resp["data"].(map[string]any)["id"].(string)

	w, resp = e.do(t, http.MethodGet, "/saved-names?tool=story", nil, user...)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(1), resp["data"].(map[string]any)["total"])

	w, _ = e.do(t, http.MethodDelete, "/saved-names/"+id, nil, "X-User-ID", "u2")
	assert.Equal(t, http.StatusNotFound, w.Code)

	w, _ = e.do(t, http.MethodDelete, "/saved-names/"+id, nil, user...)
	assert.Equal(t, http.StatusOK, w.Code)
}

// ========== 健康检查 ==========

func TestHealth(t *testing.T) {
	w, resp := newEnv(t).do(t, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ok", resp["status"])
}
