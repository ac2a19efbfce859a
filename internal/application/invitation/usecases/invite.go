// Package usecases contains the invitation application services.
package usecases

import (
	"context"
	"fmt"

	"tavern/internal/domain/campaign"
	"tavern/internal/domain/invitation"
	"tavern/internal/domain/user"
	apperrors "tavern/internal/shared/errors"
	"tavern/internal/shared/logger"
)

type InviteCommand struct {
	CampaignID uint
	InviterID  uint
	InviteeID  uint
}

// InvitationMailer sends the best-effort invitation notification
type InvitationMailer interface {
	SendInvitation(to, campaignName, inviterName string) error
}

// InviteUseCase creates a campaign invitation and notifies the invitee.
// Only the campaign's GM may invite.
type InviteUseCase struct {
	campaignRepo   campaign.Repository
	invitationRepo invitation.Repository
	userRepo       user.Repository
	mailer         InvitationMailer
	logger         logger.Interface
}

func NewInviteUseCase(
	campaignRepo campaign.Repository,
	invitationRepo invitation.Repository,
	userRepo user.Repository,
	mailer InvitationMailer,
	logger logger.Interface,
) *InviteUseCase {
	return &InviteUseCase{
		campaignRepo:   campaignRepo,
		invitationRepo: invitationRepo,
		userRepo:       userRepo,
		mailer:         mailer,
		logger:         logger,
	}
}

func (uc *InviteUseCase) Execute(ctx context.Context, cmd InviteCommand) (*invitation.Invitation, error) {
	c, err := uc.campaignRepo.GetByID(ctx, cmd.CampaignID)
	if err != nil {
		if err == campaign.ErrCampaignNotFound {
			return nil, apperrors.NewNotFoundError("campaign not found")
		}
		return nil, fmt.Errorf("failed to get campaign: %w", err)
	}
	if !c.IsOwnedBy(cmd.InviterID) {
		return nil, apperrors.NewForbiddenError("only the GM can send invitations")
	}

	invitee, err := uc.userRepo.GetByID(ctx, cmd.InviteeID)
	if err != nil {
		if err == user.ErrUserNotFound {
			return nil, apperrors.NewNotFoundError("invitee not found")
		}
		return nil, fmt.Errorf("failed to get invitee: %w", err)
	}

	inv, err := invitation.NewInvitation(cmd.CampaignID, cmd.InviterID, cmd.InviteeID)
	if err != nil {
		return nil, apperrors.NewValidationError(err.Error())
	}
	if err := uc.invitationRepo.Create(ctx, inv); err != nil {
		return nil, fmt.Errorf("failed to create invitation: %w", err)
	}

	inviter, err := uc.userRepo.GetByID(ctx, cmd.InviterID)
	inviterName := "A GM"
	if err == nil {
		inviterName = inviter.Name()
	}
	if uc.mailer != nil {
		if err := uc.mailer.SendInvitation(invitee.Email(), c.Name(), inviterName); err != nil {
			uc.logger.Warnw("failed to send invitation email",
				"invitation_id", inv.ID(), "error", err)
		}
	}

	return inv, nil
}
