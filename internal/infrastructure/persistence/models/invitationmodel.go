package models

import (
	"time"

	"tavern/internal/shared/constants"
)

// InvitationModel represents the database persistence model for invitations
type InvitationModel struct {
	ID         uint   `gorm:"primarykey"`
	CampaignID uint   `gorm:"not null;index:idx_invitations_campaign"`
	InviterID  uint   `gorm:"not null"`
	InviteeID  uint   `gorm:"not null;index:idx_invitations_invitee"`
	Status     string `gorm:"not null;default:pending;size:20"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// TableName specifies the table name for GORM
func (InvitationModel) TableName() string {
	return constants.TableInvitations
}
