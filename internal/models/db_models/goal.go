package db_models

import (
	"time"

	"github.com/google/uuid"
)

type Goal struct {
	BaseModel
	ChildID      uuid.UUID  `gorm:"type:uuid;not null;index" json:"child_id"`
	GoalName     string     `gorm:"not null" json:"goal_name"`
	TargetAmount float64    `gorm:"type:decimal(12,2);not null" json:"target_amount"`
	TargetDate   *time.Time `gorm:"type:date" json:"target_date,omitempty"`
	Description  string     `json:"description,omitempty"`
	IsPrimary    bool       `gorm:"default:false" json:"is_primary"`
}

type GiftRegistry struct {
	BaseModel
	ChildID      uuid.UUID  `gorm:"type:uuid;not null;index" json:"child_id"`
	Child        *Child     `gorm:"foreignKey:ChildID" json:"-"`
	EventType    string     `gorm:"not null" json:"event_type"`
	EventDate    *time.Time `gorm:"type:date" json:"event_date,omitempty"`
	TargetAmount float64    `gorm:"type:decimal(12,2)" json:"target_amount,omitempty"`
	Message      string     `json:"message,omitempty"`
	QRCodeURL    string     `gorm:"column:qr_code_url;type:text" json:"qr_code_url"`
	ShareURL     string     `json:"share_url"`
}
