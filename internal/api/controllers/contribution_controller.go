package controllers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"diplomakids/internal/models/request_models"
	"diplomakids/internal/services"
	"diplomakids/pkg/utils"
)

type ContributionController struct {
	contributionService services.ContributionServiceInterface
}

func NewContributionController(contributionService services.ContributionServiceInterface) *ContributionController {
	return &ContributionController{contributionService: contributionService}
}

// CreateContribution godoc
// @Summary Start a contribution
// @Description Opens a payment intent and returns its client secret; the contribution settles on the payment webhook
// @Tags Contributions
// @Accept json
// @Produce json
// @Param request body request_models.CreateContributionRequest true "Contribution"
// @Success 201 {object} utils.APIResponse
// @Failure 400 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Failure 502 {object} utils.APIResponse
// @Router /contributions [post]
func (co *ContributionController) CreateContribution(c *gin.Context) {
	var req request_models.CreateContributionRequest
	if !bindJSON(c, &req) {
		return
	}

	created, err := co.contributionService.Create(c.Request.Context(), req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondCreated(c, created, "Contribution created")
}

// ListByChild godoc
// @Summary List a child's contributions
// @Tags Contributions
// @Produce json
// @Param id path string true "Child ID"
// @Param limit query int false "Page size (default 50)"
// @Param offset query int false "Offset"
// @Success 200 {object} utils.APIResponse
// @Router /contributions/child/{id} [get]
func (co *ContributionController) ListByChild(c *gin.Context) {
	childID, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	limit, offset := pageParams(c)

	contributions, err := co.contributionService.ListByChild(c.Request.Context(), childID, limit, offset)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, contributions, "")
}

// multipartOverhead leaves room for boundaries and part headers around the video.
const multipartOverhead = 1 << 20

// UploadThankYou godoc
// @Summary Attach a thank-you video to a contribution
// @Tags Contributions
// @Accept multipart/form-data
// @Produce json
// @Param id path string true "Contribution ID"
// @Param video formData file true "Thank-you video"
// @Success 200 {object} utils.APIResponse
// @Failure 400 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Failure 413 {object} utils.APIResponse
// @Security BearerAuth
// @Router /contributions/thank-you/{id} [post]
func (co *ContributionController) UploadThankYou(c *gin.Context) {
	familyID, ok := callerFamily(c)
	if !ok {
		return
	}
	contributionID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	if limit := co.contributionService.UploadLimit(); limit > 0 {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, limit+multipartOverhead)
	}

	file, err := c.FormFile("video")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			utils.HandleServiceError(c, fmt.Errorf("%w: request body exceeds %d bytes", utils.ErrUploadTooLarge, tooLarge.Limit))
			return
		}
		utils.HandleServiceError(c, utils.ErrMissingUpload)
		return
	}

	uploaded, err := co.contributionService.UploadThankYou(c.Request.Context(), familyID, contributionID, file.Size)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, uploaded, "Thank-you video uploaded")
}
