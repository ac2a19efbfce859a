// Package campaign contains the campaign aggregate: ownership, membership
// and join requests. The owning user is the GM; everyone else joins with
// the player role.
package campaign

import (
	"fmt"
	"time"
)

// Campaign represents the campaign aggregate root
type Campaign struct {
	id          uint
	ownerID     uint
	name        string
	description string
	settings    map[string]any
	createdAt   time.Time
	updatedAt   time.Time
	version     int
}

// NewCampaign creates a new campaign owned by the given GM
func NewCampaign(ownerID uint, name, description string) (*Campaign, error) {
	if ownerID == 0 {
		return nil, fmt.Errorf("owner ID is required")
	}
	if name == "" {
		return nil, fmt.Errorf("campaign name is required")
	}
	if len(name) > 120 {
		return nil, fmt.Errorf("campaign name too long (max 120 characters)")
	}

	now := time.Now()
	return &Campaign{
		ownerID:     ownerID,
		name:        name,
		description: description,
		settings:    make(map[string]any),
		createdAt:   now,
		updatedAt:   now,
		version:     1,
	}, nil
}

// ReconstructCampaign reconstructs a campaign from persistence
func ReconstructCampaign(id, ownerID uint, name, description string,
	settings map[string]any, createdAt, updatedAt time.Time, version int) (*Campaign, error) {

	if id == 0 {
		return nil, fmt.Errorf("campaign ID cannot be zero")
	}
	if ownerID == 0 {
		return nil, fmt.Errorf("owner ID is required")
	}
	if settings == nil {
		settings = make(map[string]any)
	}

	return &Campaign{
		id:          id,
		ownerID:     ownerID,
		name:        name,
		description: description,
		settings:    settings,
		createdAt:   createdAt,
		updatedAt:   updatedAt,
		version:     version,
	}, nil
}

func (c *Campaign) ID() uint {
	return c.id
}

// SetID sets the campaign ID (only for persistence layer use)
func (c *Campaign) SetID(id uint) error {
	if c.id != 0 {
		return fmt.Errorf("campaign ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("campaign ID cannot be zero")
	}
	c.id = id
	return nil
}

func (c *Campaign) OwnerID() uint {
	return c.ownerID
}

// GetOwnerID implements authorization.OwnedResource
func (c *Campaign) GetOwnerID() uint {
	return c.ownerID
}

func (c *Campaign) Name() string {
	return c.name
}

func (c *Campaign) Description() string {
	return c.description
}

func (c *Campaign) Settings() map[string]any {
	return c.settings
}

func (c *Campaign) CreatedAt() time.Time {
	return c.createdAt
}

func (c *Campaign) UpdatedAt() time.Time {
	return c.updatedAt
}

func (c *Campaign) Version() int {
	return c.version
}

// Rename updates the campaign name
func (c *Campaign) Rename(name string) error {
	if name == "" {
		return fmt.Errorf("campaign name is required")
	}
	c.name = name
	c.updatedAt = time.Now()
	c.version++
	return nil
}

// UpdateDescription updates the campaign description
func (c *Campaign) UpdateDescription(description string) {
	c.description = description
	c.updatedAt = time.Now()
	c.version++
}

// SetSetting stores a session setting value (grid size, fog defaults, ...)
func (c *Campaign) SetSetting(key string, value any) {
	if c.settings == nil {
		c.settings = make(map[string]any)
	}
	c.settings[key] = value
	c.updatedAt = time.Now()
	c.version++
}

// IsOwnedBy reports whether the user is this campaign's GM
func (c *Campaign) IsOwnedBy(userID uint) bool {
	return c.ownerID == userID
}
