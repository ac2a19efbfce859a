package campaign

import (
	"fmt"
	"time"
)

type JoinRequestStatus string

const (
	JoinRequestPending  JoinRequestStatus = "pending"
	JoinRequestApproved JoinRequestStatus = "approved"
	JoinRequestDeclined JoinRequestStatus = "declined"
)

func (s JoinRequestStatus) IsValid() bool {
	return s == JoinRequestPending || s == JoinRequestApproved || s == JoinRequestDeclined
}

// JoinRequest is a user's request to join a campaign as a player,
// awaiting GM approval.
type JoinRequest struct {
	id         uint
	campaignID uint
	userID     uint
	message    string
	status     JoinRequestStatus
	createdAt  time.Time
	updatedAt  time.Time
}

func NewJoinRequest(campaignID, userID uint, message string) (*JoinRequest, error) {
	if campaignID == 0 {
		return nil, fmt.Errorf("campaign ID is required")
	}
	if userID == 0 {
		return nil, fmt.Errorf("user ID is required")
	}

	now := time.Now()
	return &JoinRequest{
		campaignID: campaignID,
		userID:     userID,
		message:    message,
		status:     JoinRequestPending,
		createdAt:  now,
		updatedAt:  now,
	}, nil
}

// ReconstructJoinRequest reconstructs a join request from persistence
func ReconstructJoinRequest(id, campaignID, userID uint, message string,
	status JoinRequestStatus, createdAt, updatedAt time.Time) (*JoinRequest, error) {

	if id == 0 {
		return nil, fmt.Errorf("join request ID cannot be zero")
	}
	if !status.IsValid() {
		return nil, fmt.Errorf("invalid join request status: %s", status)
	}
	return &JoinRequest{
		id:         id,
		campaignID: campaignID,
		userID:     userID,
		message:    message,
		status:     status,
		createdAt:  createdAt,
		updatedAt:  updatedAt,
	}, nil
}

func (r *JoinRequest) ID() uint {
	return r.id
}

func (r *JoinRequest) SetID(id uint) error {
	if r.id != 0 {
		return fmt.Errorf("join request ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("join request ID cannot be zero")
	}
	r.id = id
	return nil
}

func (r *JoinRequest) CampaignID() uint {
	return r.campaignID
}

func (r *JoinRequest) UserID() uint {
	return r.userID
}

func (r *JoinRequest) Message() string {
	return r.message
}

func (r *JoinRequest) Status() JoinRequestStatus {
	return r.status
}

func (r *JoinRequest) CreatedAt() time.Time {
	return r.createdAt
}

func (r *JoinRequest) IsPending() bool {
	return r.status == JoinRequestPending
}

// Approve marks the request approved. Only pending requests transition.
func (r *JoinRequest) Approve() error {
	if r.status != JoinRequestPending {
		return fmt.Errorf("join request is not pending")
	}
	r.status = JoinRequestApproved
	r.updatedAt = time.Now()
	return nil
}

// Decline marks the request declined. Only pending requests transition.
func (r *JoinRequest) Decline() error {
	if r.status != JoinRequestPending {
		return fmt.Errorf("join request is not pending")
	}
	r.status = JoinRequestDeclined
	r.updatedAt = time.Now()
	return nil
}
