package request_models

type RegisterRequest struct {
	Email      string `json:"email" binding:"required,email"`
	Password   string `json:"password" binding:"required,min=8"`
	FamilyName string `json:"family_name" binding:"required,min=1,max=120"`
	Phone      string `json:"phone" binding:"omitempty,max=32"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// UpdateFamilyRequest only applies the fields that are present.
type UpdateFamilyRequest struct {
	FamilyName           *string                `json:"family_name" binding:"omitempty,min=1,max=120"`
	Phone                *string                `json:"phone" binding:"omitempty,max=32"`
	Bio                  *string                `json:"bio"`
	Location             map[string]interface{} `json:"location"`
	SocialLinks          map[string]string      `json:"social_links"`
	Plan529Provider      *string                `json:"plan_529_provider"`
	Plan529AccountNumber *string                `json:"plan_529_account_number"`
}

type ConnectFamilyRequest struct {
	ConnectedFamilyID string `json:"connected_family_id" binding:"required,uuid"`
}
