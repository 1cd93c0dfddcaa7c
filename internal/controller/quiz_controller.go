package controller

import (
	"cosmic_quiz_backend/internal/service"
	"cosmic_quiz_backend/internal/util"
	"errors"

	"github.com/gin-gonic/gin"
)

type QuizController struct {
	QuizService *service.QuizService
}

func NewQuizController(quizService *service.QuizService) *QuizController {
	return &QuizController{QuizService: quizService}
}

func (c *QuizController) respondSessionError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, util.ErrSessionNotFound):
		util.NotFound(ctx)
	case errors.Is(err, util.ErrInvalidInput),
		errors.Is(err, util.ErrSessionNoSelection),
		errors.Is(err, util.ErrSessionWrongState):
		util.BadRequest(ctx, err.Error())
	case errors.Is(err, util.ErrQuestionNotFound):
		util.NotFound(ctx)
	default:
		util.LogInternalError(ctx, err)
	}
}

type startQuizRequest struct {
	Username string `json:"username" binding:"required"`
}

// @Summary Start a quiz session
// @Description Resolves or creates the player and fetches a batch of unanswered approved questions
// @Tags quiz
// @Accept json
// @Produce json
// @Param body body startQuizRequest true "Player"
// @Success 201 {object} util.Response
// @Router /api/quiz/start [post]
func (c *QuizController) Start(ctx *gin.Context) {
	var req startQuizRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	session, err := c.QuizService.StartSession(req.Username)
	if err != nil {
		c.respondSessionError(ctx, err)
		return
	}

	util.Created(ctx, session)
}

type sessionAnswerRequest struct {
	SelectedOptionID string `json:"selectedOptionId" binding:"required"`
}

// @Summary Answer the current question
// @Tags quiz
// @Accept json
// @Produce json
// @Param sessionId path string true "Session ID"
// @Param body body sessionAnswerRequest true "Selected option"
// @Success 200 {object} util.Response
// @Router /api/quiz/{sessionId}/answer [post]
func (c *QuizController) Answer(ctx *gin.Context) {
	var req sessionAnswerRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	session, result, err := c.QuizService.SubmitCurrent(ctx.Param("sessionId"), req.SelectedOptionID)
	if err != nil {
		c.respondSessionError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{"session": session, "result": result})
}

// @Summary Advance the session
// @Description Moves to the next question, or to finished after the last one
// @Tags quiz
// @Produce json
// @Param sessionId path string true "Session ID"
// @Success 200 {object} util.Response
// @Router /api/quiz/{sessionId}/next [post]
func (c *QuizController) Next(ctx *gin.Context) {
	session, err := c.QuizService.Advance(ctx.Param("sessionId"))
	if err != nil {
		c.respondSessionError(ctx, err)
		return
	}

	util.Success(ctx, session)
}

// @Summary Reset the session
// @Tags quiz
// @Produce json
// @Param sessionId path string true "Session ID"
// @Success 200 {object} util.Response
// @Router /api/quiz/{sessionId}/reset [post]
func (c *QuizController) Reset(ctx *gin.Context) {
	session, err := c.QuizService.Reset(ctx.Param("sessionId"))
	if err != nil {
		c.respondSessionError(ctx, err)
		return
	}

	util.Success(ctx, session)
}

// @Summary Get session state
// @Tags quiz
// @Produce json
// @Param sessionId path string true "Session ID"
// @Success 200 {object} util.Response
// @Router /api/quiz/{sessionId} [get]
func (c *QuizController) Get(ctx *gin.Context) {
	session, err := c.QuizService.GetSession(ctx.Param("sessionId"))
	if err != nil {
		c.respondSessionError(ctx, err)
		return
	}

	util.Success(ctx, session)
}
