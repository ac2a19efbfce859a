// Package invitation contains campaign invitations and the accept-intent
// normalization used by the invitation-accept quota gate.
package invitation

import (
	"fmt"
	"strings"
	"time"
)

type Status string

const (
	StatusPending  Status = "pending"
	StatusAccepted Status = "accepted"
	StatusDeclined Status = "declined"
)

func (s Status) IsValid() bool {
	return s == StatusPending || s == StatusAccepted || s == StatusDeclined
}

// acceptSynonyms are the raw status/action values treated as an intent to
// accept. Anything else passes through the gate untouched.
var acceptSynonyms = map[string]bool{
	"accepted": true,
	"accept":   true,
	"approve":  true,
	"ok":       true,
	"yes":      true,
}

// IsAcceptIntent reports whether a raw status/action field expresses the
// intent to accept an invitation. Matching is case-insensitive and ignores
// surrounding whitespace.
func IsAcceptIntent(raw string) bool {
	return acceptSynonyms[strings.ToLower(strings.TrimSpace(raw))]
}

// Invitation is a GM's invitation for a specific user to join a campaign.
type Invitation struct {
	id         uint
	campaignID uint
	inviterID  uint
	inviteeID  uint
	status     Status
	createdAt  time.Time
	updatedAt  time.Time
}

func NewInvitation(campaignID, inviterID, inviteeID uint) (*Invitation, error) {
	if campaignID == 0 {
		return nil, fmt.Errorf("campaign ID is required")
	}
	if inviterID == 0 {
		return nil, fmt.Errorf("inviter ID is required")
	}
	if inviteeID == 0 {
		return nil, fmt.Errorf("invitee ID is required")
	}
	if inviterID == inviteeID {
		return nil, fmt.Errorf("cannot invite yourself")
	}

	now := time.Now()
	return &Invitation{
		campaignID: campaignID,
		inviterID:  inviterID,
		inviteeID:  inviteeID,
		status:     StatusPending,
		createdAt:  now,
		updatedAt:  now,
	}, nil
}

// ReconstructInvitation reconstructs an invitation from persistence
func ReconstructInvitation(id, campaignID, inviterID, inviteeID uint,
	status Status, createdAt, updatedAt time.Time) (*Invitation, error) {

	if id == 0 {
		return nil, fmt.Errorf("invitation ID cannot be zero")
	}
	if !status.IsValid() {
		return nil, fmt.Errorf("invalid invitation status: %s", status)
	}
	return &Invitation{
		id:         id,
		campaignID: campaignID,
		inviterID:  inviterID,
		inviteeID:  inviteeID,
		status:     status,
		createdAt:  createdAt,
		updatedAt:  updatedAt,
	}, nil
}

func (i *Invitation) ID() uint {
	return i.id
}

func (i *Invitation) SetID(id uint) error {
	if i.id != 0 {
		return fmt.Errorf("invitation ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("invitation ID cannot be zero")
	}
	i.id = id
	return nil
}

func (i *Invitation) CampaignID() uint {
	return i.campaignID
}

func (i *Invitation) InviterID() uint {
	return i.inviterID
}

func (i *Invitation) InviteeID() uint {
	return i.inviteeID
}

func (i *Invitation) Status() Status {
	return i.status
}

func (i *Invitation) CreatedAt() time.Time {
	return i.createdAt
}

func (i *Invitation) IsPending() bool {
	return i.status == StatusPending
}

// IsFor reports whether the user is the rightful invitee
func (i *Invitation) IsFor(userID uint) bool {
	return i.inviteeID == userID
}

// Accept marks the invitation accepted. Accepting twice is a no-op.
func (i *Invitation) Accept() error {
	if i.status == StatusAccepted {
		return nil
	}
	if i.status == StatusDeclined {
		return fmt.Errorf("cannot accept a declined invitation")
	}
	i.status = StatusAccepted
	i.updatedAt = time.Now()
	return nil
}

// Decline marks the invitation declined. Declining twice is a no-op.
func (i *Invitation) Decline() error {
	if i.status == StatusDeclined {
		return nil
	}
	if i.status == StatusAccepted {
		return fmt.Errorf("cannot decline an accepted invitation")
	}
	i.status = StatusDeclined
	i.updatedAt = time.Now()
	return nil
}
