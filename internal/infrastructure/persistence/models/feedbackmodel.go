package models

import (
	"time"

	"tavern/internal/shared/constants"
)

// FeedbackModel represents the database persistence model for feedback
type FeedbackModel struct {
	ID        uint   `gorm:"primarykey"`
	UserID    uint   `gorm:"not null;index:idx_feedback_user"`
	Category  string `gorm:"not null;size:20"`
	Subject   string `gorm:"not null;size:200"`
	Body      string `gorm:"type:text;not null"`
	CreatedAt time.Time
}

// TableName specifies the table name for GORM
func (FeedbackModel) TableName() string {
	return constants.TableFeedback
}
