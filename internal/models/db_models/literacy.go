package db_models

import (
	"time"

	"github.com/google/uuid"
)

type LiteracyProgress struct {
	BaseModel
	ChildID              uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:idx_literacy_child_module" json:"child_id"`
	ModuleID             string     `gorm:"not null;uniqueIndex:idx_literacy_child_module" json:"module_id"`
	CompletionPercentage int        `gorm:"not null;default:0" json:"completion_percentage"`
	Score                *int       `json:"score,omitempty"`
	LastAccessed         time.Time  `json:"last_accessed"`
	CompletedAt          *time.Time `json:"completed_at,omitempty"`
}

func (LiteracyProgress) TableName() string {
	return "literacy_progress"
}

type ChallengeParticipant struct {
	BaseModel
	ChallengeID   uuid.UUID `gorm:"type:uuid;not null;index" json:"challenge_id"`
	FamilyID      uuid.UUID `gorm:"type:uuid;not null" json:"family_id"`
	ChildID       uuid.UUID `gorm:"type:uuid;not null" json:"child_id"`
	CurrentAmount float64   `gorm:"type:decimal(12,2);not null;default:0" json:"current_amount"`
}
