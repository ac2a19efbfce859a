package usecases

import (
	"context"
	"fmt"

	campaignUC "tavern/internal/application/campaign/usecases"
	"tavern/internal/domain/invitation"
	apperrors "tavern/internal/shared/errors"
	"tavern/internal/shared/logger"
)

type RespondCommand struct {
	InvitationID uint
	UserID       uint
	Accept       bool
}

// RespondUseCase records the invitee's answer. Accepting admits the user
// into the campaign under the player cap; the state change only lands when
// the admission succeeds.
type RespondUseCase struct {
	invitationRepo invitation.Repository
	addPlayer      *campaignUC.AddPlayerUseCase
	logger         logger.Interface
}

func NewRespondUseCase(
	invitationRepo invitation.Repository,
	addPlayer *campaignUC.AddPlayerUseCase,
	logger logger.Interface,
) *RespondUseCase {
	return &RespondUseCase{
		invitationRepo: invitationRepo,
		addPlayer:      addPlayer,
		logger:         logger,
	}
}

func (uc *RespondUseCase) Execute(ctx context.Context, cmd RespondCommand) (*invitation.Invitation, error) {
	inv, err := uc.invitationRepo.GetByID(ctx, cmd.InvitationID)
	if err != nil {
		if err == invitation.ErrInvitationNotFound {
			return nil, apperrors.NewNotFoundError("invitation not found")
		}
		return nil, fmt.Errorf("failed to get invitation: %w", err)
	}
	if !inv.IsFor(cmd.UserID) {
		return nil, apperrors.NewForbiddenError("this invitation is not addressed to you")
	}

	if cmd.Accept {
		if err := uc.addPlayer.Execute(ctx, campaignUC.AddPlayerCommand{
			CampaignID: inv.CampaignID(),
			UserID:     cmd.UserID,
		}); err != nil {
			return nil, err
		}
		if err := inv.Accept(); err != nil {
			return nil, apperrors.NewConflictError(err.Error())
		}
	} else {
		if err := inv.Decline(); err != nil {
			return nil, apperrors.NewConflictError(err.Error())
		}
	}

	if err := uc.invitationRepo.Update(ctx, inv); err != nil {
		return nil, fmt.Errorf("failed to update invitation: %w", err)
	}
	return inv, nil
}
