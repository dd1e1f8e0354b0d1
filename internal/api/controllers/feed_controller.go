package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"diplomakids/internal/models/request_models"
	"diplomakids/internal/models/response_models"
	"diplomakids/internal/services"
	"diplomakids/pkg/utils"
)

type FeedController struct {
	feedService services.FeedServiceInterface
}

func NewFeedController(feedService services.FeedServiceInterface) *FeedController {
	return &FeedController{feedService: feedService}
}

// GetFeed godoc
// @Summary Milestones from the caller and connected families
// @Tags Feed
// @Produce json
// @Param limit query int false "Page size (default 20)"
// @Param offset query int false "Offset"
// @Success 200 {object} utils.APIResponse
// @Security BearerAuth
// @Router /feed [get]
func (f *FeedController) GetFeed(c *gin.Context) {
	familyID, ok := callerFamily(c)
	if !ok {
		return
	}
	limit, offset := pageParams(c)

	items, err := f.feedService.GetFeed(c.Request.Context(), familyID, limit, offset)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, items, "")
}

// CreateMilestone godoc
// @Summary Post a milestone for one of the caller's children
// @Tags Milestones
// @Accept json
// @Produce json
// @Param request body request_models.CreateMilestoneRequest true "Milestone"
// @Success 201 {object} utils.APIResponse
// @Security BearerAuth
// @Router /milestones [post]
func (f *FeedController) CreateMilestone(c *gin.Context) {
	familyID, ok := callerFamily(c)
	if !ok {
		return
	}
	var req request_models.CreateMilestoneRequest
	if !bindJSON(c, &req) {
		return
	}

	milestone, err := f.feedService.CreateMilestone(c.Request.Context(), familyID, req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondCreated(c, milestone, "Milestone created")
}

// ToggleLike godoc
// @Summary Like or unlike a milestone
// @Tags Milestones
// @Produce json
// @Param id path string true "Milestone ID"
// @Success 200 {object} utils.APIResponse
// @Security BearerAuth
// @Router /milestones/{id}/like [post]
func (f *FeedController) ToggleLike(c *gin.Context) {
	familyID, ok := callerFamily(c)
	if !ok {
		return
	}
	milestoneID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	liked, err := f.feedService.ToggleLike(c.Request.Context(), familyID, milestoneID)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, response_models.LikeResult{Liked: liked}, "")
}

// Comment godoc
// @Summary Comment on a milestone
// @Description The comment may be sent as a JSON body or as the comment query parameter
// @Tags Milestones
// @Accept json
// @Produce json
// @Param id path string true "Milestone ID"
// @Param comment query string false "Comment text"
// @Param request body request_models.CommentRequest false "Comment"
// @Success 201 {object} utils.APIResponse
// @Security BearerAuth
// @Router /milestones/{id}/comment [post]
func (f *FeedController) Comment(c *gin.Context) {
	familyID, ok := callerFamily(c)
	if !ok {
		return
	}
	milestoneID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	var req request_models.CommentRequest
	if text := c.Query("comment"); text != "" {
		req.Comment = text
	} else if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "comment is required")
		return
	}

	comment, err := f.feedService.Comment(c.Request.Context(), familyID, milestoneID, req.Comment)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondCreated(c, comment, "Comment added")
}

// ListComments godoc
// @Summary List comments on a milestone
// @Tags Milestones
// @Produce json
// @Param id path string true "Milestone ID"
// @Param limit query int false "Page size (default 50)"
// @Param offset query int false "Offset"
// @Success 200 {object} utils.APIResponse
// @Router /milestones/{id}/comments [get]
func (f *FeedController) ListComments(c *gin.Context) {
	milestoneID, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	limit, offset := pageParams(c)

	comments, err := f.feedService.ListComments(c.Request.Context(), milestoneID, limit, offset)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, comments, "")
}
