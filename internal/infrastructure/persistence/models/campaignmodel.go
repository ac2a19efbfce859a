package models

import (
	"time"

	"gorm.io/datatypes"

	"tavern/internal/shared/constants"
)

// CampaignModel represents the database persistence model for campaigns
type CampaignModel struct {
	ID          uint   `gorm:"primarykey"`
	OwnerID     uint   `gorm:"not null;index:idx_campaigns_owner"`
	Name        string `gorm:"not null;size:200"`
	Description string `gorm:"type:text"`
	Settings    datatypes.JSON
	Version     int `gorm:"not null;default:1"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// TableName specifies the table name for GORM
func (CampaignModel) TableName() string {
	return constants.TableCampaigns
}
