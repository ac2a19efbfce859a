package models

import (
	"time"

	"tavern/internal/shared/constants"
)

// JoinRequestModel represents the database persistence model for join requests
type JoinRequestModel struct {
	ID         uint   `gorm:"primarykey"`
	CampaignID uint   `gorm:"not null;index:idx_join_requests_campaign"`
	UserID     uint   `gorm:"not null;index:idx_join_requests_user"`
	Message    string `gorm:"size:500"`
	Status     string `gorm:"not null;default:pending;size:20"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// TableName specifies the table name for GORM
func (JoinRequestModel) TableName() string {
	return constants.TableJoinRequests
}
