package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"tavern/internal/domain/campaign"
	"tavern/internal/infrastructure/persistence/models"
	"tavern/internal/shared/constants"
	apperrors "tavern/internal/shared/errors"
	"tavern/internal/shared/logger"
)

// MembershipRepository implements campaign.MembershipRepository with GORM
type MembershipRepository struct {
	db     *gorm.DB
	logger logger.Interface
}

// NewMembershipRepository creates a new membership repository
func NewMembershipRepository(db *gorm.DB, logger logger.Interface) campaign.MembershipRepository {
	return &MembershipRepository{
		db:     db,
		logger: logger,
	}
}

// AddMember creates a membership record
func (r *MembershipRepository) AddMember(ctx context.Context, m *campaign.Member) error {
	model := models.CampaignMemberModel{
		CampaignID: m.CampaignID(),
		UserID:     m.UserID(),
		Role:       m.Role().String(),
		CreatedAt:  m.JoinedAt(),
	}

	if err := r.db.WithContext(ctx).Create(&model).Error; err != nil {
		if apperrors.IsDuplicateError(err) {
			return campaign.ErrAlreadyMember
		}
		r.logger.Errorw("failed to add campaign member",
			"campaign_id", m.CampaignID(), "user_id", m.UserID(), "error", err)
		return fmt.Errorf("failed to add campaign member: %w", err)
	}

	r.logger.Infow("campaign member added",
		"campaign_id", m.CampaignID(), "user_id", m.UserID(), "role", m.Role().String())
	return nil
}

// AddPlayerWithCap inserts a player membership only while the campaign holds
// fewer than maxPlayers player-role members. Count and insert happen in one
// conditional statement; the composite unique index turns a racing duplicate
// into ErrAlreadyMember.
func (r *MembershipRepository) AddPlayerWithCap(ctx context.Context, campaignID, userID uint, maxPlayers int) error {
	member, err := campaign.NewMember(campaignID, userID, campaign.MemberRolePlayer)
	if err != nil {
		return err
	}

	insertSQL := fmt.Sprintf(`INSERT INTO %s (campaign_id, user_id, role, created_at)
		SELECT ?, ?, ?, ?
		WHERE (SELECT COUNT(*) FROM %s WHERE campaign_id = ? AND role = ?) < ?`,
		constants.TableCampaignMembers, constants.TableCampaignMembers)

	result := r.db.WithContext(ctx).Exec(insertSQL,
		campaignID, userID, constants.MemberRolePlayer, member.JoinedAt(),
		campaignID, constants.MemberRolePlayer, maxPlayers,
	)
	if result.Error != nil {
		if apperrors.IsDuplicateError(result.Error) {
			return campaign.ErrAlreadyMember
		}
		r.logger.Errorw("failed conditional member insert",
			"campaign_id", campaignID, "user_id", userID, "error", result.Error)
		return fmt.Errorf("failed to add campaign player: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return campaign.ErrPlayerCapReached
	}

	r.logger.Infow("campaign player added", "campaign_id", campaignID, "user_id", userID)
	return nil
}

// IsMember reports whether a membership record exists for the pair
func (r *MembershipRepository) IsMember(ctx context.Context, userID, campaignID uint) (bool, error) {
	var exists bool

	err := r.db.WithContext(ctx).
		Model(&models.CampaignMemberModel{}).
		Select("count(*) > 0").
		Where("user_id = ? AND campaign_id = ?", userID, campaignID).
		Find(&exists).Error
	if err != nil {
		r.logger.Errorw("failed to check membership",
			"user_id", userID, "campaign_id", campaignID, "error", err)
		return false, fmt.Errorf("failed to check membership: %w", err)
	}
	return exists, nil
}

// CountPlayers counts player-role members only; the GM's row is excluded
func (r *MembershipRepository) CountPlayers(ctx context.Context, campaignID uint) (int64, error) {
	var count int64

	err := r.db.WithContext(ctx).
		Model(&models.CampaignMemberModel{}).
		Where("campaign_id = ? AND role = ?", campaignID, constants.MemberRolePlayer).
		Count(&count).Error
	if err != nil {
		r.logger.Errorw("failed to count players", "campaign_id", campaignID, "error", err)
		return 0, fmt.Errorf("failed to count players: %w", err)
	}
	return count, nil
}

// CountJoinedCampaignsAsPlayer counts distinct campaigns the user participates
// in as a player. Participation comes through any of three channels: a
// player-role membership row, an accepted invitation, or a character linked
// into the campaign. Campaigns the user owns never count, whichever channel
// they arrived through.
func (r *MembershipRepository) CountJoinedCampaignsAsPlayer(ctx context.Context, userID uint) (int64, error) {
	var count int64

	query := fmt.Sprintf(`SELECT COUNT(*) FROM (
			SELECT campaign_id FROM %s WHERE user_id = ? AND role = ?
			UNION
			SELECT campaign_id FROM %s WHERE invitee_id = ? AND status = ?
			UNION
			SELECT campaign_id FROM %s WHERE owner_id = ? AND campaign_id IS NOT NULL
		) AS joined
		WHERE campaign_id NOT IN (SELECT id FROM %s WHERE owner_id = ?)`,
		constants.TableCampaignMembers,
		constants.TableInvitations,
		constants.TableCharacters,
		constants.TableCampaigns)

	err := r.db.WithContext(ctx).Raw(query,
		userID, constants.MemberRolePlayer,
		userID, constants.StatusAccepted,
		userID,
		userID,
	).Scan(&count).Error
	if err != nil {
		r.logger.Errorw("failed to count joined campaigns", "user_id", userID, "error", err)
		return 0, fmt.Errorf("failed to count joined campaigns: %w", err)
	}
	return count, nil
}
