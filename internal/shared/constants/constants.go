package constants

const (
	// Environment constants
	EnvDevelopment = "development"
	EnvTest        = "test"
	EnvProduction  = "production"

	// Default pagination
	DefaultPage     = 1
	DefaultPageSize = 20
	MaxPageSize     = 100

	// Context keys populated by the auth middleware
	ContextKeyUserID    = "user_id"
	ContextKeyUserRole  = "user_role"
	ContextKeyUserPlan  = "user_plan"
	ContextKeyRequestID = "request_id"

	// Database table names
	TableUsers           = "users"
	TableUserLimits      = "user_limits"
	TableCampaigns       = "campaigns"
	TableCampaignMembers = "campaign_members"
	TableCharacters      = "characters"
	TableInvitations     = "invitations"
	TableJoinRequests    = "join_requests"
	TableFeedback        = "feedback"

	// Campaign member roles
	MemberRoleGM     = "gm"
	MemberRolePlayer = "player"

	// Invitation / join-request statuses
	StatusPending  = "pending"
	StatusAccepted = "accepted"
	StatusDeclined = "declined"
	StatusApproved = "approved"

	// Quota resources reported in rejection payloads
	QuotaResourceCampaigns          = "campaigns"
	QuotaResourceCharacters         = "characters"
	QuotaResourcePlayersPerCampaign = "players_per_campaign"
	QuotaResourceJoinedCampaigns    = "joined_campaigns"

	// Error messages
	ErrMsgInternalServerError = "Internal server error occurred"
	ErrMsgResourceNotFound    = "Resource not found"
	ErrMsgUnauthorized        = "Unauthorized access"
	ErrMsgForbidden           = "Access forbidden"
)
