// Package usecases contains the character application services.
package usecases

import (
	"context"
	"fmt"

	entitlementUC "tavern/internal/application/entitlement/usecases"
	"tavern/internal/domain/character"
	"tavern/internal/shared/constants"
	apperrors "tavern/internal/shared/errors"
	"tavern/internal/shared/logger"
)

type CreateCharacterCommand struct {
	OwnerID uint
	Name    string
	Sheet   map[string]any
}

// CreateCharacterUseCase creates a character under the owner's applicable
// character ceiling (GM or player, depending on campaign ownership).
type CreateCharacterUseCase struct {
	characterRepo     character.Repository
	getCharacterLimit *entitlementUC.GetCharacterLimitUseCase
	logger            logger.Interface
}

func NewCreateCharacterUseCase(
	characterRepo character.Repository,
	getCharacterLimit *entitlementUC.GetCharacterLimitUseCase,
	logger logger.Interface,
) *CreateCharacterUseCase {
	return &CreateCharacterUseCase{
		characterRepo:     characterRepo,
		getCharacterLimit: getCharacterLimit,
		logger:            logger,
	}
}

func (uc *CreateCharacterUseCase) Execute(ctx context.Context, cmd CreateCharacterCommand) (*character.Character, error) {
	ch, err := character.NewCharacter(cmd.OwnerID, cmd.Name, cmd.Sheet)
	if err != nil {
		return nil, apperrors.NewValidationError(err.Error())
	}

	limit, err := uc.getCharacterLimit.Execute(ctx, cmd.OwnerID)
	if err != nil {
		return nil, err
	}

	current, err := uc.characterRepo.CountByOwner(ctx, cmd.OwnerID)
	if err != nil {
		return nil, fmt.Errorf("failed to count characters: %w", err)
	}
	if current >= int64(limit) {
		return nil, apperrors.NewQuotaExceededError(
			constants.QuotaResourceCharacters, limit, int(current))
	}

	if err := uc.characterRepo.Create(ctx, ch); err != nil {
		return nil, fmt.Errorf("failed to create character: %w", err)
	}
	return ch, nil
}
