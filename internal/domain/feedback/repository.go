package feedback

import (
	"context"
	"errors"
)

// ErrFeedbackNotFound is returned when a feedback entry is not found
var ErrFeedbackNotFound = errors.New("feedback not found")

// Repository persists feedback entries.
type Repository interface {
	Create(ctx context.Context, f *Feedback) error
	GetByID(ctx context.Context, id uint) (*Feedback, error)
	List(ctx context.Context, page, pageSize int) ([]*Feedback, int64, error)
}
