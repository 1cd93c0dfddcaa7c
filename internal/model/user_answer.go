package model

import "time"

// UserAnswer is an append-only record of one submission. There is deliberately
// no uniqueness constraint on (user_id, question_id): the quiz flow excludes
// answered questions at query time only.
// swagger:model UserAnswer
type UserAnswer struct {
	UUIDBase
	UserID           string    `gorm:"index;type:varchar(36);not null" json:"userId"`
	QuestionID       string    `gorm:"index;type:varchar(36);not null" json:"questionId"`
	Question         *Question `gorm:"foreignKey:QuestionID" json:"question,omitempty"`
	SelectedOptionID string    `gorm:"type:varchar(36);not null" json:"selectedOptionId"`
	IsCorrect        bool      `gorm:"default:false" json:"isCorrect"`
	PointsEarned     int       `gorm:"default:0" json:"pointsEarned"`
	AnsweredAt       time.Time `gorm:"default:CURRENT_TIMESTAMP(3)" json:"answeredAt"`
}

func (UserAnswer) TableName() string {
	return "user_answers"
}
