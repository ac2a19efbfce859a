package models

import (
	"time"

	"tavern/internal/shared/constants"
)

// UserLimitsModel represents the database persistence model for per-user
// enforcement limits. One row per user, bootstrapped lazily on first quota
// check and rewritten when the plan changes.
type UserLimitsModel struct {
	ID                    uint `gorm:"primarykey"`
	UserID                uint `gorm:"uniqueIndex;not null"`
	MaxCampaignsCreated   int  `gorm:"not null"`
	MaxPlayersPerCampaign int  `gorm:"not null"`
	MaxCharactersPlayer   int  `gorm:"not null"`
	MaxCharactersGM       int  `gorm:"not null"`
	MaxJoinedCampaigns    int  `gorm:"not null"`
	CreatedAt             time.Time
	UpdatedAt             time.Time
}

// TableName specifies the table name for GORM
func (UserLimitsModel) TableName() string {
	return constants.TableUserLimits
}
