package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"diplomakids/internal/services"
	"diplomakids/pkg/utils"
)

type AnalyticsController struct {
	analyticsService   services.AnalyticsServiceInterface
	achievementService services.AchievementServiceInterface
}

func NewAnalyticsController(
	analyticsService services.AnalyticsServiceInterface,
	achievementService services.AchievementServiceInterface,
) *AnalyticsController {
	return &AnalyticsController{
		analyticsService:   analyticsService,
		achievementService: achievementService,
	}
}

// GetPortfolio godoc
// @Summary Savings analytics for a child
// @Description Totals, monthly average, goal progress and projected completion
// @Tags Analytics
// @Produce json
// @Param id path string true "Child ID"
// @Success 200 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Router /analytics/portfolio/{id} [get]
func (a *AnalyticsController) GetPortfolio(c *gin.Context) {
	childID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	analytics, err := a.analyticsService.GetPortfolioAnalytics(c.Request.Context(), childID)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, analytics, "")
}

// GetLeaderboard godoc
// @Summary Top savers, globally or within a challenge
// @Tags Analytics
// @Produce json
// @Param challenge_id query string false "Challenge ID"
// @Success 200 {object} utils.APIResponse
// @Router /analytics/leaderboard [get]
func (a *AnalyticsController) GetLeaderboard(c *gin.Context) {
	var challengeID *uuid.UUID
	if raw := c.Query("challenge_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			utils.RespondError(c, http.StatusBadRequest, "Invalid challenge_id")
			return
		}
		challengeID = &id
	}

	board, err := a.analyticsService.GetLeaderboard(c.Request.Context(), challengeID)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, board, "")
}

// GetAchievements godoc
// @Summary Badges unlocked by a child, newest first
// @Tags Achievements
// @Produce json
// @Param id path string true "Child ID"
// @Success 200 {object} utils.APIResponse
// @Router /achievements/{id} [get]
func (a *AnalyticsController) GetAchievements(c *gin.Context) {
	childID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	achievements, err := a.achievementService.ListByChild(c.Request.Context(), childID)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, achievements, "")
}
