// Package character contains the player character aggregate.
package character

import (
	"fmt"
	"time"
)

// Character represents a player character sheet. A character may be linked
// into a campaign; the link also counts as participation for the
// joined-campaigns quota.
type Character struct {
	id         uint
	ownerID    uint
	campaignID *uint
	name       string
	sheet      map[string]any
	createdAt  time.Time
	updatedAt  time.Time
}

func NewCharacter(ownerID uint, name string, sheet map[string]any) (*Character, error) {
	if ownerID == 0 {
		return nil, fmt.Errorf("owner ID is required")
	}
	if name == "" {
		return nil, fmt.Errorf("character name is required")
	}
	if len(name) > 100 {
		return nil, fmt.Errorf("character name too long (max 100 characters)")
	}
	if sheet == nil {
		sheet = make(map[string]any)
	}

	now := time.Now()
	return &Character{
		ownerID:   ownerID,
		name:      name,
		sheet:     sheet,
		createdAt: now,
		updatedAt: now,
	}, nil
}

// ReconstructCharacter reconstructs a character from persistence
func ReconstructCharacter(id, ownerID uint, campaignID *uint, name string,
	sheet map[string]any, createdAt, updatedAt time.Time) (*Character, error) {

	if id == 0 {
		return nil, fmt.Errorf("character ID cannot be zero")
	}
	if sheet == nil {
		sheet = make(map[string]any)
	}
	return &Character{
		id:         id,
		ownerID:    ownerID,
		campaignID: campaignID,
		name:       name,
		sheet:      sheet,
		createdAt:  createdAt,
		updatedAt:  updatedAt,
	}, nil
}

func (c *Character) ID() uint {
	return c.id
}

func (c *Character) SetID(id uint) error {
	if c.id != 0 {
		return fmt.Errorf("character ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("character ID cannot be zero")
	}
	c.id = id
	return nil
}

func (c *Character) OwnerID() uint {
	return c.ownerID
}

// GetOwnerID implements authorization.OwnedResource
func (c *Character) GetOwnerID() uint {
	return c.ownerID
}

func (c *Character) CampaignID() *uint {
	return c.campaignID
}

func (c *Character) Name() string {
	return c.name
}

func (c *Character) Sheet() map[string]any {
	return c.sheet
}

func (c *Character) CreatedAt() time.Time {
	return c.createdAt
}

func (c *Character) UpdatedAt() time.Time {
	return c.updatedAt
}

// LinkToCampaign attaches the character to a campaign
func (c *Character) LinkToCampaign(campaignID uint) error {
	if campaignID == 0 {
		return fmt.Errorf("campaign ID is required")
	}
	c.campaignID = &campaignID
	c.updatedAt = time.Now()
	return nil
}

// Unlink detaches the character from its campaign
func (c *Character) Unlink() {
	c.campaignID = nil
	c.updatedAt = time.Now()
}
