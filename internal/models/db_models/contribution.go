package db_models

import "github.com/google/uuid"

type ContributionType string

const (
	ContributionOneTime   ContributionType = "one_time"
	ContributionRecurring ContributionType = "recurring"
	ContributionBirthday  ContributionType = "birthday"
	ContributionHoliday   ContributionType = "holiday"
	ContributionMilestone ContributionType = "milestone"
)

func (t ContributionType) Valid() bool {
	switch t {
	case ContributionOneTime, ContributionRecurring, ContributionBirthday, ContributionHoliday, ContributionMilestone:
		return true
	}
	return false
}

type ContributionStatus string

const (
	ContributionPending   ContributionStatus = "pending"
	ContributionSucceeded ContributionStatus = "succeeded"
)

type Contribution struct {
	BaseModel
	ChildID               uuid.UUID          `gorm:"type:uuid;not null;index" json:"child_id"`
	Child                 *Child             `gorm:"foreignKey:ChildID" json:"-"`
	Amount                float64            `gorm:"type:decimal(12,2);not null" json:"amount"`
	ContributionType      ContributionType   `gorm:"type:varchar(20);not null" json:"contribution_type"`
	Message               string             `json:"message,omitempty"`
	IsAnonymous           bool               `gorm:"default:false" json:"is_anonymous"`
	ContributorName       string             `json:"contributor_name,omitempty"`
	ContributorEmail      string             `json:"contributor_email,omitempty"`
	StripePaymentIntentID string             `gorm:"uniqueIndex;not null" json:"stripe_payment_intent_id"`
	StripeChargeID        string             `json:"stripe_charge_id,omitempty"`
	Status                ContributionStatus `gorm:"type:varchar(20);not null;default:pending" json:"status"`
	ThankYouVideoURL      string             `json:"thank_you_video_url,omitempty"`
	ThankYouSent          bool               `gorm:"default:false" json:"thank_you_sent"`
}
