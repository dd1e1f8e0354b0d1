package controllers

import (
	"github.com/gin-gonic/gin"

	"diplomakids/internal/models/request_models"
	"diplomakids/internal/services"
	"diplomakids/pkg/utils"
)

type GoalController struct {
	goalService     services.GoalServiceInterface
	registryService services.GiftRegistryServiceInterface
}

func NewGoalController(goalService services.GoalServiceInterface, registryService services.GiftRegistryServiceInterface) *GoalController {
	return &GoalController{goalService: goalService, registryService: registryService}
}

// CreateGoal godoc
// @Summary Create a savings goal for one of the caller's children
// @Tags Goals
// @Accept json
// @Produce json
// @Param request body request_models.CreateGoalRequest true "Goal"
// @Success 201 {object} utils.APIResponse
// @Security BearerAuth
// @Router /goals [post]
func (g *GoalController) CreateGoal(c *gin.Context) {
	familyID, ok := callerFamily(c)
	if !ok {
		return
	}
	var req request_models.CreateGoalRequest
	if !bindJSON(c, &req) {
		return
	}

	goal, err := g.goalService.CreateGoal(c.Request.Context(), familyID, req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondCreated(c, goal, "Goal created")
}

// ListGoals godoc
// @Summary List a child's goals
// @Tags Goals
// @Produce json
// @Param id path string true "Child ID"
// @Success 200 {object} utils.APIResponse
// @Router /goals/child/{id} [get]
func (g *GoalController) ListGoals(c *gin.Context) {
	childID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	goals, err := g.goalService.ListByChild(c.Request.Context(), childID)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, goals, "")
}

// CreateGiftRegistry godoc
// @Summary Create a shareable gift registry
// @Tags Gift Registry
// @Accept json
// @Produce json
// @Param request body request_models.CreateGiftRegistryRequest true "Registry"
// @Success 201 {object} utils.APIResponse
// @Security BearerAuth
// @Router /gift-registry [post]
func (g *GoalController) CreateGiftRegistry(c *gin.Context) {
	familyID, ok := callerFamily(c)
	if !ok {
		return
	}
	var req request_models.CreateGiftRegistryRequest
	if !bindJSON(c, &req) {
		return
	}

	registry, err := g.registryService.Create(c.Request.Context(), familyID, req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondCreated(c, registry, "Gift registry created")
}

// GetGiftRegistry godoc
// @Summary Public view of a gift registry
// @Tags Gift Registry
// @Produce json
// @Param id path string true "Registry ID"
// @Success 200 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Router /gift-registry/{id} [get]
func (g *GoalController) GetGiftRegistry(c *gin.Context) {
	registryID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	view, err := g.registryService.Get(c.Request.Context(), registryID)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, view, "")
}
