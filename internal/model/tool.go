package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/ashwinyue/namegen/internal/generator"
)

// Tool 名称生成工具。删除为物理删除，slug 删除后可以重新使用。
type Tool struct {
	ID                string                                      `json:"id" gorm:"type:varchar(36);primaryKey"`
	Slug              string                                      `json:"slug" gorm:"size:100;uniqueIndex;not null"`
	Name              string                                      `json:"name" gorm:"size:255;not null"`
	Description       string                                      `json:"description" gorm:"type:text"`
	Icon              string                                      `json:"icon" gorm:"size:50"`
	PromptCategory    string                                      `json:"ai_prompt_category" gorm:"size:100;not null"`
	DefaultModel      string                                      `json:"default_ai_model_identifier" gorm:"size:100"`
	AvailableModels   datatypes.JSONType[[]string]                `json:"available_ai_model_identifiers" gorm:"type:jsonb"`
	DefaultParameters datatypes.JSONType[map[string]any]          `json:"default_parameters" gorm:"type:jsonb"`
	Fields            datatypes.JSONType[[]generator.FieldSchema] `json:"configurable_fields" gorm:"type:jsonb"`
	IsPublished       bool                                        `json:"is_published" gorm:"index;default:false"`
	CreatedAt         time.Time                                   `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt         time.Time                                   `json:"updated_at" gorm:"autoUpdateTime"`
}

// BeforeCreate GORM 钩子，创建前生成 UUID
func (t *Tool) BeforeCreate(tx *gorm.DB) error {
	if t.ID == "" {
		t.ID = uuid.New().String()
	}
	return nil
}

// TableName 指定表名
func (Tool) TableName() string {
	return "tools"
}

// ToDefinition 转换为流水线使用的只读快照
func (t *Tool) ToDefinition() *generator.ToolDefinition {
	return &generator.ToolDefinition{
		ID:                t.ID,
		Slug:              t.Slug,
		Name:              t.Name,
		PromptCategory:    t.PromptCategory,
		DefaultModel:      t.DefaultModel,
		AvailableModels:   t.AvailableModels.Data(),
		DefaultParameters: t.DefaultParameters.Data(),
		Fields:            t.Fields.Data(),
		Published:         t.IsPublished,
	}
}

// ApplyDefinition 用工具定义覆盖可配置部分
func (t *Tool) ApplyDefinition(def *generator.ToolDefinition) {
	t.Slug = def.Slug
	t.Name = def.Name
	t.PromptCategory = def.PromptCategory
	t.DefaultModel = def.DefaultModel
	t.AvailableModels = datatypes.NewJSONType(def.AvailableModels)
	t.DefaultParameters = datatypes.NewJSONType(def.DefaultParameters)
	t.Fields = datatypes.NewJSONType(def.Fields)
	t.IsPublished = def.Published
}
