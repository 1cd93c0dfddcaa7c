package controller

import (
	"cosmic_quiz_backend/internal/service"
	"cosmic_quiz_backend/internal/util"
	"cosmic_quiz_backend/pkg/logger"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type AnswerController struct {
	AnswerService *service.AnswerService
}

func NewAnswerController(answerService *service.AnswerService) *AnswerController {
	return &AnswerController{AnswerService: answerService}
}

type submitAnswerRequest struct {
	UserID           string `json:"userId"`
	QuestionID       string `json:"questionId"`
	SelectedOptionID string `json:"selectedOptionId"`
}

type submitAnswerResponse struct {
	Success        bool `json:"success"`
	IsCorrect      bool `json:"isCorrect"`
	PointsEarned   int  `json:"pointsEarned"`
	NewTotalPoints int  `json:"newTotalPoints"`
}

// SubmitAnswer keeps the flat legacy wire shape: 200 with
// {success,isCorrect,pointsEarned,newTotalPoints}, or {error} with 400/404/500.
// @Summary Submit an answer
// @Description Records an answer for a question and awards points and badges when correct
// @Tags quiz
// @Accept json
// @Produce json
// @Param body body submitAnswerRequest true "Answer submission"
// @Success 200 {object} submitAnswerResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /api/submit-answer [post]
func (c *AnswerController) SubmitAnswer(ctx *gin.Context) {
	var req submitAnswerRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Missing required fields"})
		return
	}

	result, err := c.AnswerService.SubmitAnswer(req.UserID, req.QuestionID, req.SelectedOptionID)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrInvalidInput):
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "Missing required fields"})
		case errors.Is(err, util.ErrQuestionNotFound):
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Question not found"})
		default:
			logger.Log.Error("answer submission failed",
				zap.String("questionId", req.QuestionID), zap.Error(err))
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save answer"})
		}
		return
	}

	ctx.JSON(http.StatusOK, submitAnswerResponse{
		Success:        true,
		IsCorrect:      result.IsCorrect,
		PointsEarned:   result.PointsEarned,
		NewTotalPoints: result.NewTotalPoints,
	})
}
