package controller

import (
	"cosmic_quiz_backend/internal/service"
	"cosmic_quiz_backend/internal/util"
	"errors"

	"github.com/gin-gonic/gin"
)

type ModerationController struct {
	ModerationService *service.ModerationService
}

func NewModerationController(moderationService *service.ModerationService) *ModerationController {
	return &ModerationController{ModerationService: moderationService}
}

func (c *ModerationController) respondModerationError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, util.ErrQuestionNotFound):
		util.NotFound(ctx)
	case errors.Is(err, util.ErrQuestionAlreadyModerated):
		util.Conflict(ctx, err.Error())
	default:
		util.LogInternalError(ctx, err)
	}
}

// @Summary Moderation queues
// @Description Pending questions plus the most recent approvals and rejections
// @Tags moderation
// @Produce json
// @Security ModeratorKey
// @Success 200 {object} util.Response
// @Router /api/moderation/queues [get]
func (c *ModerationController) GetQueues(ctx *gin.Context) {
	queues, err := c.ModerationService.Queues()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, queues)
}

// @Summary Approve a question
// @Tags moderation
// @Produce json
// @Security ModeratorKey
// @Param id path string true "Question ID"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response
// @Failure 409 {object} util.Response
// @Router /api/moderation/questions/{id}/approve [post]
func (c *ModerationController) Approve(ctx *gin.Context) {
	question, err := c.ModerationService.Approve(ctx.Param("id"))
	if err != nil {
		c.respondModerationError(ctx, err)
		return
	}

	util.Success(ctx, question)
}

type rejectRequest struct {
	Note string `json:"note"`
}

// @Summary Reject a question
// @Description Rejects with the supplied note, or a fixed default note when empty
// @Tags moderation
// @Accept json
// @Produce json
// @Security ModeratorKey
// @Param id path string true "Question ID"
// @Param body body rejectRequest false "Rejection note"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response
// @Failure 409 {object} util.Response
// @Router /api/moderation/questions/{id}/reject [post]
func (c *ModerationController) Reject(ctx *gin.Context) {
	var req rejectRequest
	// A missing or empty body means "reject with the default note".
	_ = ctx.ShouldBindJSON(&req)

	question, err := c.ModerationService.Reject(ctx.Param("id"), req.Note)
	if err != nil {
		c.respondModerationError(ctx, err)
		return
	}

	util.Success(ctx, question)
}
