package campaign

import "context"

// Repository persists campaigns and answers the ownership predicates the
// quota gates depend on.
type Repository interface {
	Create(ctx context.Context, c *Campaign) error

	// CreateWithCap inserts the campaign only while the owner holds fewer
	// than maxOwned campaigns, in a single conditional statement. Returns
	// ErrCampaignCapReached when the cap would be exceeded. The request-time
	// gate remains the friendly fast path; this is the hard guarantee.
	CreateWithCap(ctx context.Context, c *Campaign, maxOwned int) error

	GetByID(ctx context.Context, id uint) (*Campaign, error)

	// GetOwnerID returns the owning user's ID, or 0 when the campaign
	// does not exist.
	GetOwnerID(ctx context.Context, id uint) (uint, error)

	CountOwnedByUser(ctx context.Context, userID uint) (int64, error)

	// HasOwnedCampaign is the cheap existence probe behind the GM/player
	// character-quota split.
	HasOwnedCampaign(ctx context.Context, userID uint) (bool, error)

	ListByOwner(ctx context.Context, userID uint) ([]*Campaign, error)
}

// MembershipRepository persists campaign membership and answers the
// player-count predicates.
type MembershipRepository interface {
	AddMember(ctx context.Context, m *Member) error

	// AddPlayerWithCap inserts a player membership only while the campaign
	// holds fewer than maxPlayers player-role members, in a single
	// conditional statement. Returns ErrPlayerCapReached at the cap and
	// ErrAlreadyMember on a duplicate pair.
	AddPlayerWithCap(ctx context.Context, campaignID, userID uint, maxPlayers int) error

	// IsMember reports whether a membership record exists for the pair,
	// regardless of role.
	IsMember(ctx context.Context, userID, campaignID uint) (bool, error)

	// CountPlayers counts player-role members only; the GM's row is excluded.
	CountPlayers(ctx context.Context, campaignID uint) (int64, error)

	// CountJoinedCampaignsAsPlayer counts distinct campaigns the user
	// participates in as a player through membership, accepted invitation,
	// or a character linked into the campaign, excluding campaigns the
	// user owns.
	CountJoinedCampaignsAsPlayer(ctx context.Context, userID uint) (int64, error)
}

// JoinRequestRepository persists join requests.
type JoinRequestRepository interface {
	Create(ctx context.Context, r *JoinRequest) error
	GetByID(ctx context.Context, id uint) (*JoinRequest, error)
	Update(ctx context.Context, r *JoinRequest) error
}
