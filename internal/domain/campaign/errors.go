package campaign

import "errors"

var (
	// ErrCampaignNotFound is returned when a campaign is not found
	ErrCampaignNotFound = errors.New("campaign not found")

	// ErrAlreadyMember is returned when a membership record already exists
	ErrAlreadyMember = errors.New("user is already a campaign member")

	// ErrCampaignCapReached is returned by the conditional campaign insert
	// when the owner is at their campaign ceiling
	ErrCampaignCapReached = errors.New("campaign limit reached")

	// ErrPlayerCapReached is returned by the conditional member insert when
	// the campaign is at its player ceiling
	ErrPlayerCapReached = errors.New("campaign player limit reached")

	// ErrJoinRequestNotFound is returned when a join request is not found
	ErrJoinRequestNotFound = errors.New("join request not found")
)
