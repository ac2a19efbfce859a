package usecases

import (
	"context"
	"fmt"

	"tavern/internal/domain/invitation"
)

// ListInvitationsUseCase lists the invitations addressed to a user
type ListInvitationsUseCase struct {
	invitationRepo invitation.Repository
}

func NewListInvitationsUseCase(invitationRepo invitation.Repository) *ListInvitationsUseCase {
	return &ListInvitationsUseCase{invitationRepo: invitationRepo}
}

func (uc *ListInvitationsUseCase) Execute(ctx context.Context, inviteeID uint) ([]*invitation.Invitation, error) {
	invitations, err := uc.invitationRepo.ListByInvitee(ctx, inviteeID)
	if err != nil {
		return nil, fmt.Errorf("failed to list invitations: %w", err)
	}
	return invitations, nil
}
