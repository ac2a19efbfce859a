package invitation

import (
	"context"
	"errors"
)

// ErrInvitationNotFound is returned when an invitation is not found
var ErrInvitationNotFound = errors.New("invitation not found")

// Repository persists invitations.
type Repository interface {
	Create(ctx context.Context, i *Invitation) error
	GetByID(ctx context.Context, id uint) (*Invitation, error)
	ListByInvitee(ctx context.Context, inviteeID uint) ([]*Invitation, error)
	Update(ctx context.Context, i *Invitation) error
}
