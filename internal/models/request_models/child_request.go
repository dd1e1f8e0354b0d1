package request_models

type CreateChildRequest struct {
	FirstName         string   `json:"first_name" binding:"required,min=1,max=80"`
	LastName          string   `json:"last_name" binding:"omitempty,max=80"`
	Nickname          string   `json:"nickname" binding:"omitempty,max=80"`
	DateOfBirth       *string  `json:"date_of_birth"`
	GradeLevel        string   `json:"grade_level"`
	SchoolName        string   `json:"school_name"`
	Interests         []string `json:"interests"`
	CollegeGoals      string   `json:"college_goals"`
	SavingsGoal       *float64 `json:"savings_goal" binding:"omitempty,gt=0"`
	TargetCollegeYear int      `json:"target_college_year" binding:"omitempty,gte=1900,lte=2200"`
	Bio               string   `json:"bio"`
	ProfilePhotoURL   string   `json:"profile_photo_url" binding:"omitempty,url"`
}

type UpdateChildRequest struct {
	FirstName         *string  `json:"first_name" binding:"omitempty,min=1,max=80"`
	LastName          *string  `json:"last_name" binding:"omitempty,max=80"`
	Nickname          *string  `json:"nickname" binding:"omitempty,max=80"`
	DateOfBirth       *string  `json:"date_of_birth"`
	GradeLevel        *string  `json:"grade_level"`
	SchoolName        *string  `json:"school_name"`
	Interests         []string `json:"interests"`
	CollegeGoals      *string  `json:"college_goals"`
	SavingsGoal       *float64 `json:"savings_goal" binding:"omitempty,gt=0"`
	TargetCollegeYear *int     `json:"target_college_year" binding:"omitempty,gte=1900,lte=2200"`
	Bio               *string  `json:"bio"`
	ProfilePhotoURL   *string  `json:"profile_photo_url" binding:"omitempty,url"`
}

type CreateGoalRequest struct {
	ChildID      string  `json:"child_id" binding:"required,uuid"`
	GoalName     string  `json:"goal_name" binding:"required,min=1,max=120"`
	TargetAmount float64 `json:"target_amount" binding:"required,gt=0"`
	TargetDate   *string `json:"target_date"`
	Description  string  `json:"description"`
	IsPrimary    bool    `json:"is_primary"`
}

type CreateGiftRegistryRequest struct {
	ChildID      string  `json:"child_id" binding:"required,uuid"`
	EventType    string  `json:"event_type" binding:"required,min=1,max=60"`
	EventDate    *string `json:"event_date"`
	TargetAmount float64 `json:"target_amount" binding:"omitempty,gte=0"`
	Message      string  `json:"message"`
}

type LiteracyProgressRequest struct {
	ChildID              string `json:"child_id" binding:"required,uuid"`
	ModuleID             string `json:"module_id" binding:"required"`
	CompletionPercentage int    `json:"completion_percentage" binding:"gte=0,lte=100"`
	Score                *int   `json:"score" binding:"omitempty,gte=0"`
}
