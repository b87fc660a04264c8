package domain

import (
	"time"

	"gorm.io/datatypes"
)

// PromptLog is an append-only record of every completion call, kept
// for prompt auditing and token accounting.
type PromptLog struct {
	ID         int64     `gorm:"primaryKey" json:"id"`
	Model      string    `gorm:"not null" json:"model"`
	Prompt     string    `gorm:"not null" json:"prompt"`
	Response   string    `json:"response"`
	TokensUsed int       `gorm:"column:tokens_used" json:"tokensUsed"`
	CreatedAt  time.Time `gorm:"not null" json:"createdAt"`
}

func (PromptLog) TableName() string { return "prompt_logs" }

// Embedding is the audit row written after a queued text has been
// embedded and upserted into the vector index.
type Embedding struct {
	ID        string            `gorm:"primaryKey" json:"id"`
	Model     string            `gorm:"not null" json:"model"`
	Vector    datatypes.JSON    `gorm:"type:jsonb;not null" json:"vector"`
	Metadata  datatypes.JSONMap `gorm:"type:jsonb;not null;default:'{}'" json:"metadata,omitempty"`
	CreatedAt time.Time         `gorm:"not null" json:"createdAt"`
}

func (Embedding) TableName() string { return "embeddings" }
