package response_models

import (
	"time"

	"github.com/google/uuid"
)

type ContributionPoint struct {
	Amount    float64 `json:"amount"`
	CreatedAt int64   `json:"created_at"`
}

type PortfolioAnalytics struct {
	TotalContributions  float64             `json:"total_contributions"`
	MonthlyAverage      float64             `json:"monthly_average"`
	SavingsGoal         float64             `json:"savings_goal"`
	ProgressPercentage  float64             `json:"progress_percentage"`
	ProjectedCompletion *time.Time          `json:"projected_completion"`
	ContributionHistory []ContributionPoint `json:"contribution_history"`
	GrowthRate          float64             `json:"growth_rate"`
}

type LeaderboardEntry struct {
	Rank       int       `json:"rank"`
	ChildID    uuid.UUID `json:"child_id"`
	FamilyID   uuid.UUID `json:"family_id"`
	FirstName  string    `json:"first_name,omitempty"`
	FamilyName string    `json:"family_name,omitempty"`
	Amount     float64   `json:"amount"`
}

type LiteracyModule struct {
	ID              string `json:"id"`
	Name            string `json:"name"`
	Description     string `json:"description"`
	AgeRange        string `json:"age_range"`
	DurationMinutes int    `json:"duration_minutes"`
	Points          int    `json:"points"`
}
