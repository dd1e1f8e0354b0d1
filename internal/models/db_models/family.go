package db_models

import "gorm.io/datatypes"

type Family struct {
	BaseModel
	Email                string         `gorm:"uniqueIndex;not null" json:"email"`
	FamilyName           string         `gorm:"not null" json:"family_name"`
	Phone                string         `json:"phone,omitempty"`
	PasswordHash         string         `gorm:"not null" json:"-"`
	StripeCustomerID     string         `json:"stripe_customer_id,omitempty"`
	Bio                  string         `json:"bio,omitempty"`
	Location             datatypes.JSON `json:"location,omitempty"`
	SocialLinks          datatypes.JSON `json:"social_links,omitempty"`
	Plan529Provider      string         `gorm:"column:plan_529_provider" json:"plan_529_provider,omitempty"`
	Plan529AccountNumber string         `gorm:"column:plan_529_account_number" json:"plan_529_account_number,omitempty"`
}
