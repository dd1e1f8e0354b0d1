package controllers

import (
	"github.com/gin-gonic/gin"

	"diplomakids/internal/models/request_models"
	"diplomakids/internal/services"
	"diplomakids/pkg/utils"
)

type FamilyController struct {
	familyService services.FamilyServiceInterface
}

func NewFamilyController(familyService services.FamilyServiceInterface) *FamilyController {
	return &FamilyController{familyService: familyService}
}

// GetProfile godoc
// @Summary Get the caller's family profile
// @Tags Families
// @Produce json
// @Success 200 {object} utils.APIResponse
// @Security BearerAuth
// @Router /families/profile [get]
func (f *FamilyController) GetProfile(c *gin.Context) {
	familyID, ok := callerFamily(c)
	if !ok {
		return
	}

	family, err := f.familyService.GetProfile(c.Request.Context(), familyID)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, family, "")
}

// UpdateProfile godoc
// @Summary Update the caller's family profile
// @Description Only the fields present in the body are changed
// @Tags Families
// @Accept json
// @Produce json
// @Param request body request_models.UpdateFamilyRequest true "Profile fields"
// @Success 200 {object} utils.APIResponse
// @Security BearerAuth
// @Router /families/profile [put]
func (f *FamilyController) UpdateProfile(c *gin.Context) {
	familyID, ok := callerFamily(c)
	if !ok {
		return
	}
	var req request_models.UpdateFamilyRequest
	if !bindJSON(c, &req) {
		return
	}

	family, err := f.familyService.UpdateProfile(c.Request.Context(), familyID, req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, family, "Profile updated")
}

// Connect godoc
// @Summary Connect to another family
// @Tags Connections
// @Accept json
// @Produce json
// @Param request body request_models.ConnectFamilyRequest true "Family to follow"
// @Success 200 {object} utils.APIResponse
// @Failure 400 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Security BearerAuth
// @Router /connections [post]
func (f *FamilyController) Connect(c *gin.Context) {
	familyID, ok := callerFamily(c)
	if !ok {
		return
	}
	var req request_models.ConnectFamilyRequest
	if !bindJSON(c, &req) {
		return
	}

	created, err := f.familyService.Connect(c.Request.Context(), familyID, req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, gin.H{"connected": true, "created": created}, "Connected")
}

// ListConnections godoc
// @Summary List connected families
// @Tags Connections
// @Produce json
// @Success 200 {object} utils.APIResponse
// @Security BearerAuth
// @Router /connections [get]
func (f *FamilyController) ListConnections(c *gin.Context) {
	familyID, ok := callerFamily(c)
	if !ok {
		return
	}

	families, err := f.familyService.ListConnections(c.Request.Context(), familyID)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, families, "")
}
