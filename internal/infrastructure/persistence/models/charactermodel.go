package models

import (
	"time"

	"gorm.io/datatypes"

	"tavern/internal/shared/constants"
)

// CharacterModel represents the database persistence model for characters.
// The sheet column holds the free-form character sheet as JSON.
type CharacterModel struct {
	ID         uint  `gorm:"primarykey"`
	OwnerID    uint  `gorm:"not null;index:idx_characters_owner"`
	CampaignID *uint `gorm:"index:idx_characters_campaign"`
	Name       string `gorm:"not null;size:100"`
	Sheet      datatypes.JSON
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// TableName specifies the table name for GORM
func (CharacterModel) TableName() string {
	return constants.TableCharacters
}
