package request_models

type CreateContributionRequest struct {
	ChildID          string  `json:"child_id" binding:"required,uuid"`
	Amount           float64 `json:"amount"`
	ContributionType string  `json:"contribution_type"`
	Message          string  `json:"message" binding:"max=1000"`
	IsAnonymous      bool    `json:"is_anonymous"`
	ContributorName  string  `json:"contributor_name" binding:"max=120"`
	ContributorEmail string  `json:"contributor_email" binding:"omitempty,email"`
}

type CreateMilestoneRequest struct {
	ChildID       string `json:"child_id" binding:"required,uuid"`
	Title         string `json:"title" binding:"required,min=1,max=200"`
	Description   string `json:"description"`
	Category      string `json:"category"`
	GradeReceived string `json:"grade_received"`
	Privacy       string `json:"privacy"`
}

type CommentRequest struct {
	Comment string `json:"comment" form:"comment" binding:"required,min=1,max=2000"`
}
