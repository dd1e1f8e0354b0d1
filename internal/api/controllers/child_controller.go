package controllers

import (
	"github.com/gin-gonic/gin"

	"diplomakids/internal/models/request_models"
	"diplomakids/internal/services"
	"diplomakids/pkg/utils"
)

type ChildController struct {
	childService services.ChildServiceInterface
}

func NewChildController(childService services.ChildServiceInterface) *ChildController {
	return &ChildController{childService: childService}
}

// CreateChild godoc
// @Summary Add a child to the caller's family
// @Tags Children
// @Accept json
// @Produce json
// @Param request body request_models.CreateChildRequest true "Child profile"
// @Success 201 {object} utils.APIResponse
// @Security BearerAuth
// @Router /children [post]
func (ch *ChildController) CreateChild(c *gin.Context) {
	familyID, ok := callerFamily(c)
	if !ok {
		return
	}
	var req request_models.CreateChildRequest
	if !bindJSON(c, &req) {
		return
	}

	child, err := ch.childService.CreateChild(c.Request.Context(), familyID, req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondCreated(c, child, "Child created")
}

// ListChildren godoc
// @Summary List the caller's children
// @Tags Children
// @Produce json
// @Success 200 {object} utils.APIResponse
// @Security BearerAuth
// @Router /children [get]
func (ch *ChildController) ListChildren(c *gin.Context) {
	familyID, ok := callerFamily(c)
	if !ok {
		return
	}

	children, err := ch.childService.ListChildren(c.Request.Context(), familyID)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, children, "")
}

// GetChild godoc
// @Summary Get one of the caller's children
// @Tags Children
// @Produce json
// @Param id path string true "Child ID"
// @Success 200 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Security BearerAuth
// @Router /children/{id} [get]
func (ch *ChildController) GetChild(c *gin.Context) {
	familyID, ok := callerFamily(c)
	if !ok {
		return
	}
	childID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	child, err := ch.childService.GetChild(c.Request.Context(), familyID, childID)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, child, "")
}

// UpdateChild godoc
// @Summary Update one of the caller's children
// @Tags Children
// @Accept json
// @Produce json
// @Param id path string true "Child ID"
// @Param request body request_models.UpdateChildRequest true "Fields to change"
// @Success 200 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Security BearerAuth
// @Router /children/{id} [put]
func (ch *ChildController) UpdateChild(c *gin.Context) {
	familyID, ok := callerFamily(c)
	if !ok {
		return
	}
	childID, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	var req request_models.UpdateChildRequest
	if !bindJSON(c, &req) {
		return
	}

	child, err := ch.childService.UpdateChild(c.Request.Context(), familyID, childID, req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, child, "Child updated")
}
