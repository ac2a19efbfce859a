package usecases

import (
	"context"
	"fmt"

	"tavern/internal/domain/character"
)

// ListCharactersUseCase lists the characters a user owns
type ListCharactersUseCase struct {
	characterRepo character.Repository
}

func NewListCharactersUseCase(characterRepo character.Repository) *ListCharactersUseCase {
	return &ListCharactersUseCase{characterRepo: characterRepo}
}

func (uc *ListCharactersUseCase) Execute(ctx context.Context, ownerID uint) ([]*character.Character, error) {
	characters, err := uc.characterRepo.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list characters: %w", err)
	}
	return characters, nil
}
