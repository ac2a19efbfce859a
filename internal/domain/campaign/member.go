package campaign

import (
	"fmt"
	"time"
)

type MemberRole string

const (
	MemberRoleGM     MemberRole = "gm"
	MemberRolePlayer MemberRole = "player"
)

func (r MemberRole) IsValid() bool {
	return r == MemberRoleGM || r == MemberRolePlayer
}

func (r MemberRole) String() string {
	return string(r)
}

// Member is a user's membership record in a campaign. The GM holds a
// membership row too, with the gm role; player-capacity counts exclude it.
type Member struct {
	campaignID uint
	userID     uint
	role       MemberRole
	joinedAt   time.Time
}

func NewMember(campaignID, userID uint, role MemberRole) (*Member, error) {
	if campaignID == 0 {
		return nil, fmt.Errorf("campaign ID is required")
	}
	if userID == 0 {
		return nil, fmt.Errorf("user ID is required")
	}
	if !role.IsValid() {
		return nil, fmt.Errorf("invalid member role: %s", role)
	}
	return &Member{
		campaignID: campaignID,
		userID:     userID,
		role:       role,
		joinedAt:   time.Now(),
	}, nil
}

func (m *Member) CampaignID() uint {
	return m.campaignID
}

func (m *Member) UserID() uint {
	return m.userID
}

func (m *Member) Role() MemberRole {
	return m.role
}

func (m *Member) JoinedAt() time.Time {
	return m.joinedAt
}

func (m *Member) IsPlayer() bool {
	return m.role == MemberRolePlayer
}
