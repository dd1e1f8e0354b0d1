package db_models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

const DefaultSavingsGoal = 50000.0

type Child struct {
	BaseModel
	FamilyID          uuid.UUID      `gorm:"type:uuid;not null;index" json:"family_id"`
	Family            *Family        `gorm:"foreignKey:FamilyID" json:"family,omitempty"`
	FirstName         string         `gorm:"not null" json:"first_name"`
	LastName          string         `json:"last_name,omitempty"`
	Nickname          string         `json:"nickname,omitempty"`
	DateOfBirth       *time.Time     `gorm:"type:date" json:"date_of_birth,omitempty"`
	GradeLevel        string         `json:"grade_level,omitempty"`
	SchoolName        string         `json:"school_name,omitempty"`
	Interests         datatypes.JSON `json:"interests,omitempty"`
	CollegeGoals      string         `json:"college_goals,omitempty"`
	SavingsGoal       float64        `gorm:"type:decimal(12,2);default:50000" json:"savings_goal"`
	CurrentSavings    float64        `gorm:"type:decimal(12,2);default:0;index" json:"current_savings"`
	TargetCollegeYear int            `json:"target_college_year,omitempty"`
	Bio               string         `json:"bio,omitempty"`
	ProfilePhotoURL   string         `json:"profile_photo_url,omitempty"`
}

// EffectiveSavingsGoal falls back to the platform default when no goal was set.
func (c *Child) EffectiveSavingsGoal() float64 {
	if c == nil || c.SavingsGoal <= 0 {
		return DefaultSavingsGoal
	}
	return c.SavingsGoal
}
