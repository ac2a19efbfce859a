package models

import (
	"time"

	"tavern/internal/shared/constants"
)

// CampaignMemberModel represents the database persistence model for campaign
// membership. The composite unique index makes repeated joins idempotent at
// the storage layer.
type CampaignMemberModel struct {
	ID         uint   `gorm:"primarykey"`
	CampaignID uint   `gorm:"not null;uniqueIndex:idx_campaign_user,priority:1"`
	UserID     uint   `gorm:"not null;uniqueIndex:idx_campaign_user,priority:2;index:idx_members_user"`
	Role       string `gorm:"not null;size:20"`
	CreatedAt  time.Time
}

// TableName specifies the table name for GORM
func (CampaignMemberModel) TableName() string {
	return constants.TableCampaignMembers
}
