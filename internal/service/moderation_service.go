package service

import (
	"cosmic_quiz_backend/internal/model"
	"cosmic_quiz_backend/internal/repository"
	"cosmic_quiz_backend/internal/util"
	"cosmic_quiz_backend/pkg/logger"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type ModerationService struct {
	QuestionRepo *repository.QuestionRepository
}

func NewModerationService(questionRepo *repository.QuestionRepository) *ModerationService {
	return &ModerationService{QuestionRepo: questionRepo}
}

func (s *ModerationService) find(questionID string) (*model.Question, error) {
	question, err := s.QuestionRepo.FindByID(questionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrQuestionNotFound
		}
		return nil, util.NewPersistenceError("question lookup", err)
	}
	return question, nil
}

// Approve moves a pending question into the playable pool. Transitions are
// strictly one-way: a question already approved or rejected stays as decided.
func (s *ModerationService) Approve(questionID string) (*model.Question, error) {
	question, err := s.find(questionID)
	if err != nil {
		return nil, err
	}
	if question.Status != model.StatusPending {
		return nil, util.ErrQuestionAlreadyModerated
	}

	now := time.Now()
	question.Status = model.StatusApproved
	question.ApprovedAt = &now
	if err := s.QuestionRepo.Update(question); err != nil {
		return nil, util.NewPersistenceError("question approve", err)
	}

	logger.Log.Info("question approved", zap.String("questionId", questionID))
	return question, nil
}

// Reject records the moderator's note, or the fixed default when none is
// supplied. Same one-way rule as Approve.
func (s *ModerationService) Reject(questionID, note string) (*model.Question, error) {
	question, err := s.find(questionID)
	if err != nil {
		return nil, err
	}
	if question.Status != model.StatusPending {
		return nil, util.ErrQuestionAlreadyModerated
	}

	if strings.TrimSpace(note) == "" {
		note = util.DefaultRejectionNote
	}
	question.Status = model.StatusRejected
	question.ModeratorNote = note
	if err := s.QuestionRepo.Update(question); err != nil {
		return nil, util.NewPersistenceError("question reject", err)
	}

	logger.Log.Info("question rejected",
		zap.String("questionId", questionID), zap.String("note", note))
	return question, nil
}

// ModerationQueues mirrors the moderation panel: the full pending queue plus
// the ten most recent decisions on each side.
type ModerationQueues struct {
	Pending  []model.Question `json:"pending"`
	Approved []model.Question `json:"approved"`
	Rejected []model.Question `json:"rejected"`
}

func (s *ModerationService) Queues() (*ModerationQueues, error) {
	pending, err := s.QuestionRepo.FindPending()
	if err != nil {
		return nil, util.NewPersistenceError("pending queue", err)
	}
	approved, err := s.QuestionRepo.FindApproved(10)
	if err != nil {
		return nil, util.NewPersistenceError("approved queue", err)
	}
	rejected, err := s.QuestionRepo.FindRejected(10)
	if err != nil {
		return nil, util.NewPersistenceError("rejected queue", err)
	}
	return &ModerationQueues{Pending: pending, Approved: approved, Rejected: rejected}, nil
}
