package usecases

import (
	"context"
	"fmt"

	"tavern/internal/domain/campaign"
	apperrors "tavern/internal/shared/errors"
	"tavern/internal/shared/logger"
)

type RequestJoinCommand struct {
	CampaignID uint
	UserID     uint
	Message    string
}

// RequestJoinUseCase files a join request for GM review
type RequestJoinUseCase struct {
	campaignRepo    campaign.Repository
	membershipRepo  campaign.MembershipRepository
	joinRequestRepo campaign.JoinRequestRepository
	logger          logger.Interface
}

func NewRequestJoinUseCase(
	campaignRepo campaign.Repository,
	membershipRepo campaign.MembershipRepository,
	joinRequestRepo campaign.JoinRequestRepository,
	logger logger.Interface,
) *RequestJoinUseCase {
	return &RequestJoinUseCase{
		campaignRepo:    campaignRepo,
		membershipRepo:  membershipRepo,
		joinRequestRepo: joinRequestRepo,
		logger:          logger,
	}
}

func (uc *RequestJoinUseCase) Execute(ctx context.Context, cmd RequestJoinCommand) (*campaign.JoinRequest, error) {
	ownerID, err := uc.campaignRepo.GetOwnerID(ctx, cmd.CampaignID)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve campaign owner: %w", err)
	}
	if ownerID == 0 {
		return nil, apperrors.NewNotFoundError("campaign not found")
	}
	if ownerID == cmd.UserID {
		return nil, apperrors.NewConflictError("you already run this campaign")
	}

	isMember, err := uc.membershipRepo.IsMember(ctx, cmd.UserID, cmd.CampaignID)
	if err != nil {
		return nil, fmt.Errorf("failed to check membership: %w", err)
	}
	if isMember {
		return nil, apperrors.NewConflictError("already a campaign member")
	}

	req, err := campaign.NewJoinRequest(cmd.CampaignID, cmd.UserID, cmd.Message)
	if err != nil {
		return nil, apperrors.NewValidationError(err.Error())
	}
	if err := uc.joinRequestRepo.Create(ctx, req); err != nil {
		return nil, fmt.Errorf("failed to create join request: %w", err)
	}
	return req, nil
}

type ApproveJoinRequestCommand struct {
	RequestID  uint
	ApproverID uint
}

// ApproveJoinRequestUseCase approves a pending join request and admits the
// requester under the player cap.
type ApproveJoinRequestUseCase struct {
	campaignRepo    campaign.Repository
	joinRequestRepo campaign.JoinRequestRepository
	addPlayer       *AddPlayerUseCase
	logger          logger.Interface
}

func NewApproveJoinRequestUseCase(
	campaignRepo campaign.Repository,
	joinRequestRepo campaign.JoinRequestRepository,
	addPlayer *AddPlayerUseCase,
	logger logger.Interface,
) *ApproveJoinRequestUseCase {
	return &ApproveJoinRequestUseCase{
		campaignRepo:    campaignRepo,
		joinRequestRepo: joinRequestRepo,
		addPlayer:       addPlayer,
		logger:          logger,
	}
}

func (uc *ApproveJoinRequestUseCase) Execute(ctx context.Context, cmd ApproveJoinRequestCommand) error {
	req, err := uc.joinRequestRepo.GetByID(ctx, cmd.RequestID)
	if err != nil {
		if err == campaign.ErrJoinRequestNotFound {
			return apperrors.NewNotFoundError("join request not found")
		}
		return fmt.Errorf("failed to get join request: %w", err)
	}

	ownerID, err := uc.campaignRepo.GetOwnerID(ctx, req.CampaignID())
	if err != nil {
		return fmt.Errorf("failed to resolve campaign owner: %w", err)
	}
	if ownerID != cmd.ApproverID {
		return apperrors.NewForbiddenError("only the GM can approve join requests")
	}

	if err := req.Approve(); err != nil {
		return apperrors.NewConflictError(err.Error())
	}

	// admission first; an over-cap approval must not flip the request state
	if err := uc.addPlayer.Execute(ctx, AddPlayerCommand{
		CampaignID: req.CampaignID(),
		UserID:     req.UserID(),
	}); err != nil {
		return err
	}

	if err := uc.joinRequestRepo.Update(ctx, req); err != nil {
		return fmt.Errorf("failed to update join request: %w", err)
	}

	uc.logger.Infow("join request approved",
		"request_id", req.ID(), "campaign_id", req.CampaignID(), "user_id", req.UserID())
	return nil
}

type DeclineJoinRequestCommand struct {
	RequestID  uint
	DeclinerID uint
}

// DeclineJoinRequestUseCase declines a pending join request. Only the GM
// may decline; declining consumes no quota.
type DeclineJoinRequestUseCase struct {
	campaignRepo    campaign.Repository
	joinRequestRepo campaign.JoinRequestRepository
	logger          logger.Interface
}

func NewDeclineJoinRequestUseCase(
	campaignRepo campaign.Repository,
	joinRequestRepo campaign.JoinRequestRepository,
	logger logger.Interface,
) *DeclineJoinRequestUseCase {
	return &DeclineJoinRequestUseCase{
		campaignRepo:    campaignRepo,
		joinRequestRepo: joinRequestRepo,
		logger:          logger,
	}
}

func (uc *DeclineJoinRequestUseCase) Execute(ctx context.Context, cmd DeclineJoinRequestCommand) error {
	req, err := uc.joinRequestRepo.GetByID(ctx, cmd.RequestID)
	if err != nil {
		if err == campaign.ErrJoinRequestNotFound {
			return apperrors.NewNotFoundError("join request not found")
		}
		return fmt.Errorf("failed to get join request: %w", err)
	}

	ownerID, err := uc.campaignRepo.GetOwnerID(ctx, req.CampaignID())
	if err != nil {
		return fmt.Errorf("failed to resolve campaign owner: %w", err)
	}
	if ownerID != cmd.DeclinerID {
		return apperrors.NewForbiddenError("only the GM can decline join requests")
	}

	if err := req.Decline(); err != nil {
		return apperrors.NewConflictError(err.Error())
	}
	if err := uc.joinRequestRepo.Update(ctx, req); err != nil {
		return fmt.Errorf("failed to update join request: %w", err)
	}
	return nil
}
