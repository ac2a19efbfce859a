package character

import "context"

// Repository persists characters and answers the character-count
// predicate used by the character-creation gate.
type Repository interface {
	Create(ctx context.Context, c *Character) error
	GetByID(ctx context.Context, id uint) (*Character, error)
	CountByOwner(ctx context.Context, ownerID uint) (int64, error)
	ListByOwner(ctx context.Context, ownerID uint) ([]*Character, error)
	Update(ctx context.Context, c *Character) error
}
