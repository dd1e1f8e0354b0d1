package db_models

import (
	"time"

	"github.com/google/uuid"
)

type AchievementCategory string

const (
	CategoryAcademic  AchievementCategory = "academic"
	CategorySports    AchievementCategory = "sports"
	CategoryArts      AchievementCategory = "arts"
	CategoryCommunity AchievementCategory = "community"
	CategoryFinancial AchievementCategory = "financial"
	CategoryOther     AchievementCategory = "other"
)

type Achievement struct {
	BaseModel
	ChildID    uuid.UUID           `gorm:"type:uuid;not null;uniqueIndex:idx_achievement_child_badge" json:"child_id"`
	BadgeID    string              `gorm:"not null;uniqueIndex:idx_achievement_child_badge" json:"badge_id"`
	BadgeName  string              `gorm:"not null" json:"badge_name"`
	Category   AchievementCategory `gorm:"type:varchar(20);not null" json:"category"`
	Points     int                 `gorm:"not null;default:0" json:"points"`
	UnlockedAt time.Time           `gorm:"not null" json:"unlocked_at"`
}
