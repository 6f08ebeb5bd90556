// Package model 提供持久化数据模型
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/ashwinyue/namegen/internal/generator"
)

// AIModel AI 模型，model_identifier 唯一
type AIModel struct {
	ID           string                       `json:"id" gorm:"type:varchar(36);primaryKey"`
	Identifier   string                       `json:"model_identifier" gorm:"column:model_identifier;size:100;uniqueIndex;not null"`
	DisplayName  string                       `json:"display_name" gorm:"size:255;not null"`
	ProviderName string                       `json:"provider_name" gorm:"size:100;index"`
	Capabilities datatypes.JSONType[[]string] `json:"capabilities_tags" gorm:"type:jsonb"`
	IsActive     bool                         `json:"is_active" gorm:"index"`
	CreatedAt    time.Time                    `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt    time.Time                    `json:"updated_at" gorm:"autoUpdateTime"`
	DeletedAt    gorm.DeletedAt               `json:"-" gorm:"index"`
}

// BeforeCreate GORM 钩子，创建前生成 UUID
func (m *AIModel) BeforeCreate(tx *gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.New().String()
	}
	return nil
}

// TableName 指定表名
func (AIModel) TableName() string {
	return "ai_models"
}

// ToGenerator 转换为流水线使用的模型描述
func (m *AIModel) ToGenerator() generator.AIModel {
	return generator.AIModel{
		Identifier:   m.Identifier,
		DisplayName:  m.DisplayName,
		Provider:     m.ProviderName,
		Capabilities: m.Capabilities.Data(),
		Active:       m.IsActive,
	}
}
