package controllers

import (
	"github.com/gin-gonic/gin"

	"diplomakids/internal/models/request_models"
	"diplomakids/internal/services"
	"diplomakids/pkg/utils"
)

type LiteracyController struct {
	literacyService services.LiteracyServiceInterface
}

func NewLiteracyController(literacyService services.LiteracyServiceInterface) *LiteracyController {
	return &LiteracyController{literacyService: literacyService}
}

// ListModules godoc
// @Summary Financial literacy modules
// @Tags Literacy
// @Produce json
// @Success 200 {object} utils.APIResponse
// @Router /literacy/modules [get]
func (l *LiteracyController) ListModules(c *gin.Context) {
	utils.RespondSuccess(c, l.literacyService.ListModules(), "")
}

// UpdateProgress godoc
// @Summary Record a child's progress through a module
// @Tags Literacy
// @Accept json
// @Produce json
// @Param request body request_models.LiteracyProgressRequest true "Progress"
// @Success 200 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Router /literacy/progress [post]
func (l *LiteracyController) UpdateProgress(c *gin.Context) {
	var req request_models.LiteracyProgressRequest
	if !bindJSON(c, &req) {
		return
	}

	progress, err := l.literacyService.UpdateProgress(c.Request.Context(), req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, progress, "Progress saved")
}
