package repository

import (
	"cosmic_quiz_backend/internal/model"

	"gorm.io/gorm"
)

type AnswerRepository struct {
	DB *gorm.DB
}

func NewAnswerRepository(db *gorm.DB) *AnswerRepository {
	return &AnswerRepository{DB: db}
}

// Create appends one answer record. Answers are never updated or deleted.
func (r *AnswerRepository) Create(answer *model.UserAnswer) error {
	return r.DB.Create(answer).Error
}

func (r *AnswerRepository) FindByUser(userID string, limit int) ([]model.UserAnswer, error) {
	var answers []model.UserAnswer
	err := r.DB.Preload("Question").
		Where("user_id = ?", userID).
		Order("answered_at DESC").
		Limit(limit).
		Find(&answers).Error
	return answers, err
}

// AnsweredQuestionIDs feeds the quiz batch exclusion filter.
func (r *AnswerRepository) AnsweredQuestionIDs(userID string) ([]string, error) {
	var ids []string
	err := r.DB.Model(&model.UserAnswer{}).
		Where("user_id = ?", userID).
		Pluck("question_id", &ids).Error
	return ids, err
}
