package controller

import (
	"cosmic_quiz_backend/internal/service"
	"cosmic_quiz_backend/internal/util"
	"errors"

	"github.com/gin-gonic/gin"
)

type QuestionController struct {
	QuestionService *service.QuestionService
}

func NewQuestionController(questionService *service.QuestionService) *QuestionController {
	return &QuestionController{QuestionService: questionService}
}

// @Summary Create a question
// @Description Validates and stores a new question as pending moderation; credits the author a flat bonus
// @Tags questions
// @Accept json
// @Produce json
// @Param body body service.CreateQuestionRequest true "Question submission"
// @Success 201 {object} util.Response
// @Failure 400 {object} util.Response
// @Router /api/questions [post]
func (c *QuestionController) CreateQuestion(ctx *gin.Context) {
	var req service.CreateQuestionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	question, err := c.QuestionService.CreateQuestion(req)
	if err != nil {
		if ve, ok := util.AsValidationError(err); ok {
			util.BadRequest(ctx, ve.Message)
			return
		}
		util.LogInternalError(ctx, err)
		return
	}

	util.Created(ctx, question)
}

// @Summary List questions by author
// @Tags questions
// @Produce json
// @Param username query string true "Author username"
// @Success 200 {object} util.Response
// @Router /api/questions/mine [get]
func (c *QuestionController) ListMine(ctx *gin.Context) {
	username := ctx.Query("username")
	if username == "" {
		util.BadRequest(ctx, "username is required")
		return
	}

	questions, err := c.QuestionService.ListByAuthor(username)
	if err != nil {
		if errors.Is(err, util.ErrUserNotFound) {
			util.NotFound(ctx)
			return
		}
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, questions)
}
