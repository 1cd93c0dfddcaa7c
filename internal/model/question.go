package model

import "time"

type DifficultyLevel string

const (
	DifficultyEasy   DifficultyLevel = "easy"
	DifficultyMedium DifficultyLevel = "medium"
	DifficultyHard   DifficultyLevel = "hard"
)

type QuestionStatus string

const (
	StatusPending  QuestionStatus = "pending"
	StatusApproved QuestionStatus = "approved"
	StatusRejected QuestionStatus = "rejected"
)

// Question is authored by a user and enters the playable pool only after a
// moderator approves it. Points are fixed at creation from the difficulty.
// swagger:model Question
type Question struct {
	UUIDBase
	UserID        string          `gorm:"index;type:varchar(36);not null" json:"userId"`
	User          *User           `gorm:"foreignKey:UserID" json:"user,omitempty"`
	CategoryID    string          `gorm:"index;type:varchar(36)" json:"categoryId"`
	Category      *Category       `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
	QuestionText  string          `gorm:"type:text;not null" json:"questionText"`
	Difficulty    DifficultyLevel `gorm:"type:enum('easy','medium','hard');default:'medium'" json:"difficulty"`
	Points        int             `gorm:"not null" json:"points"`
	Status        QuestionStatus  `gorm:"type:enum('pending','approved','rejected');default:'pending';index" json:"status"`
	ModeratorNote string          `gorm:"type:text" json:"moderatorNote,omitempty"`
	ApprovedAt    *time.Time      `json:"approvedAt,omitempty"`
	AnswerOptions []AnswerOption  `gorm:"foreignKey:QuestionID" json:"answerOptions,omitempty"`
}

func (Question) TableName() string {
	return "questions"
}

// CorrectOption returns the option flagged correct, or nil when none is.
func (q *Question) CorrectOption() *AnswerOption {
	for i := range q.AnswerOptions {
		if q.AnswerOptions[i].IsCorrect {
			return &q.AnswerOptions[i]
		}
	}
	return nil
}

// AnswerOption belongs to exactly one question and is immutable after creation.
// OptionOrder preserves the 0-based submission order.
// swagger:model AnswerOption
type AnswerOption struct {
	UUIDBase
	QuestionID  string `gorm:"index;type:varchar(36);not null" json:"questionId"`
	OptionText  string `gorm:"size:500;not null" json:"optionText"`
	IsCorrect   bool   `gorm:"default:false" json:"isCorrect"`
	OptionOrder int    `gorm:"default:0" json:"optionOrder"`
}

func (AnswerOption) TableName() string {
	return "answer_options"
}
