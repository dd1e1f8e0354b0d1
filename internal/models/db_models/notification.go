package db_models

import (
	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type Notification struct {
	BaseModel
	FamilyID uuid.UUID      `gorm:"type:uuid;not null;index:idx_notification_family_read" json:"family_id"`
	Type     string         `gorm:"not null" json:"type"`
	Title    string         `gorm:"not null" json:"title"`
	Message  string         `json:"message"`
	Data     datatypes.JSON `json:"data,omitempty"`
	IsRead   bool           `gorm:"not null;default:false;index:idx_notification_family_read" json:"is_read"`
	// SourceKey names the event that produced the row; NULL for ad-hoc notifications.
	SourceKey *string `gorm:"uniqueIndex" json:"-"`
}

func ContributionSourceKey(contributionID uuid.UUID) string {
	return "contribution:" + contributionID.String()
}
