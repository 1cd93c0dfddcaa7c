package service

import (
	"cosmic_quiz_backend/internal/model"
	"cosmic_quiz_backend/internal/repository"
	"cosmic_quiz_backend/internal/util"
	"cosmic_quiz_backend/pkg/logger"
	"cosmic_quiz_backend/pkg/monitoring"
	"errors"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// PointsListener is notified after a user's total points change, so caches
// and live views can refresh. Listener failures never affect the submission.
type PointsListener interface {
	PointsChanged(userID string)
}

type AnswerService struct {
	QuestionRepo *repository.QuestionRepository
	AnswerRepo   *repository.AnswerRepository
	UserRepo     *repository.UserRepository
	Badges       *BadgeService
	listeners    []PointsListener
}

func NewAnswerService(
	questionRepo *repository.QuestionRepository,
	answerRepo *repository.AnswerRepository,
	userRepo *repository.UserRepository,
	badges *BadgeService,
) *AnswerService {
	return &AnswerService{
		QuestionRepo: questionRepo,
		AnswerRepo:   answerRepo,
		UserRepo:     userRepo,
		Badges:       badges,
	}
}

func (s *AnswerService) AddPointsListener(l PointsListener) {
	s.listeners = append(s.listeners, l)
}

type SubmitResult struct {
	IsCorrect      bool          `json:"isCorrect"`
	PointsEarned   int           `json:"pointsEarned"`
	NewTotalPoints int           `json:"newTotalPoints"`
	NewBadges      []model.Badge `json:"newBadges,omitempty"`
}

// SubmitAnswer records one answer and, when correct, credits the question's
// points and runs badge evaluation. Side effects are strictly sequential and
// not transactional: answer write, then point credit, then badges. Success is
// defined solely by the answer write; everything after it is best-effort and
// only logged on failure, so a crash mid-sequence can leave the user
// under-credited. That window is accepted.
func (s *AnswerService) SubmitAnswer(userID, questionID, selectedOptionID string) (*SubmitResult, error) {
	if userID == "" || questionID == "" || selectedOptionID == "" {
		return nil, util.ErrInvalidInput
	}

	question, err := s.QuestionRepo.FindByIDWithOptions(questionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrQuestionNotFound
		}
		return nil, util.NewPersistenceError("question lookup", err)
	}

	// If no option is flagged correct, no selection can be correct.
	correctOption := question.CorrectOption()
	isCorrect := correctOption != nil && selectedOptionID == correctOption.ID

	pointsEarned := 0
	if isCorrect {
		pointsEarned = question.Points
	}

	answer := &model.UserAnswer{
		UserID:           userID,
		QuestionID:       questionID,
		SelectedOptionID: selectedOptionID,
		IsCorrect:        isCorrect,
		PointsEarned:     pointsEarned,
		AnsweredAt:       time.Now(),
	}
	if err := s.AnswerRepo.Create(answer); err != nil {
		return nil, util.NewPersistenceError("answer write", err)
	}
	monitoring.CountAnswer(isCorrect)

	result := &SubmitResult{
		IsCorrect:    isCorrect,
		PointsEarned: pointsEarned,
	}
	if !isCorrect {
		return result, nil
	}

	user, err := s.UserRepo.FindByID(userID)
	if err != nil {
		// The answer is already recorded; report success without a new total.
		logger.Log.Error("user lookup after answer write failed",
			zap.String("userId", userID), zap.Error(err))
		return result, nil
	}

	newTotal := user.TotalPoints + pointsEarned
	if err := s.UserRepo.AddPoints(userID, pointsEarned); err != nil {
		logger.Log.Error("point credit failed, user is under-credited",
			zap.String("userId", userID),
			zap.Int("pointsEarned", pointsEarned),
			zap.Error(err))
	}
	result.NewTotalPoints = newTotal

	granted, err := s.Badges.EvaluateBadges(userID, newTotal)
	if err != nil {
		logger.Log.Error("badge evaluation failed (non-fatal)",
			zap.String("userId", userID), zap.Error(err))
	}
	result.NewBadges = granted

	for _, l := range s.listeners {
		l.PointsChanged(userID)
	}

	return result, nil
}
