package repository

import (
	"cosmic_quiz_backend/internal/model"

	"gorm.io/gorm"
)

type QuestionRepository struct {
	DB *gorm.DB
}

func NewQuestionRepository(db *gorm.DB) *QuestionRepository {
	return &QuestionRepository{DB: db}
}

func (r *QuestionRepository) Create(question *model.Question) error {
	return r.DB.Create(question).Error
}

// CreateOptions persists the option rows of a question in one insert.
func (r *QuestionRepository) CreateOptions(options []model.AnswerOption) error {
	return r.DB.Create(&options).Error
}

func (r *QuestionRepository) FindByIDWithOptions(id string) (*model.Question, error) {
	var question model.Question
	err := r.DB.Preload("AnswerOptions", func(db *gorm.DB) *gorm.DB {
		return db.Order("option_order")
	}).Where("id = ?", id).First(&question).Error
	return &question, err
}

func (r *QuestionRepository) FindByID(id string) (*model.Question, error) {
	var question model.Question
	err := r.DB.Where("id = ?", id).First(&question).Error
	return &question, err
}

func (r *QuestionRepository) Update(question *model.Question) error {
	return r.DB.Save(question).Error
}

// FindApprovedExcluding returns up to limit approved questions, newest first,
// skipping the given ids. The exclusion is a query-time filter only; nothing
// prevents a question answered concurrently from being served again.
func (r *QuestionRepository) FindApprovedExcluding(excludeIDs []string, limit int) ([]model.Question, error) {
	var questions []model.Question
	q := r.DB.Preload("Category").
		Preload("AnswerOptions", func(db *gorm.DB) *gorm.DB {
			return db.Order("option_order")
		}).
		Where("status = ?", model.StatusApproved).
		Order("created_at DESC").
		Limit(limit)
	if len(excludeIDs) > 0 {
		q = q.Where("id NOT IN ?", excludeIDs)
	}
	err := q.Find(&questions).Error
	return questions, err
}

// FindPending returns the full moderation queue, newest first, with the
// context a moderator needs to decide.
func (r *QuestionRepository) FindPending() ([]model.Question, error) {
	var questions []model.Question
	err := r.DB.Preload("User").
		Preload("Category").
		Preload("AnswerOptions", func(db *gorm.DB) *gorm.DB {
			return db.Order("option_order")
		}).
		Where("status = ?", model.StatusPending).
		Order("created_at DESC").
		Find(&questions).Error
	return questions, err
}

func (r *QuestionRepository) FindApproved(limit int) ([]model.Question, error) {
	var questions []model.Question
	err := r.DB.Preload("User").
		Preload("Category").
		Where("status = ?", model.StatusApproved).
		Order("approved_at DESC").
		Limit(limit).
		Find(&questions).Error
	return questions, err
}

func (r *QuestionRepository) FindRejected(limit int) ([]model.Question, error) {
	var questions []model.Question
	err := r.DB.Preload("User").
		Preload("Category").
		Where("status = ?", model.StatusRejected).
		Order("created_at DESC").
		Limit(limit).
		Find(&questions).Error
	return questions, err
}

func (r *QuestionRepository) FindByAuthor(userID string) ([]model.Question, error) {
	var questions []model.Question
	err := r.DB.Preload("Category").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&questions).Error
	return questions, err
}
