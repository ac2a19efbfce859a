// Package feedback contains user-submitted feedback notes.
package feedback

import (
	"fmt"
	"time"
)

type Category string

const (
	CategoryBug     Category = "bug"
	CategoryFeature Category = "feature"
	CategoryGeneral Category = "general"
)

func (c Category) IsValid() bool {
	return c == CategoryBug || c == CategoryFeature || c == CategoryGeneral
}

// Feedback is a free-form note a user leaves for the operators. The body is
// markdown and is rendered to sanitized HTML at read time.
type Feedback struct {
	id        uint
	userID    uint
	category  Category
	subject   string
	body      string
	createdAt time.Time
}

func NewFeedback(userID uint, category Category, subject, body string) (*Feedback, error) {
	if userID == 0 {
		return nil, fmt.Errorf("user ID is required")
	}
	if !category.IsValid() {
		return nil, fmt.Errorf("invalid feedback category: %s", category)
	}
	if subject == "" {
		return nil, fmt.Errorf("subject is required")
	}
	if body == "" {
		return nil, fmt.Errorf("body is required")
	}
	return &Feedback{
		userID:    userID,
		category:  category,
		subject:   subject,
		body:      body,
		createdAt: time.Now(),
	}, nil
}

// ReconstructFeedback reconstructs feedback from persistence
func ReconstructFeedback(id, userID uint, category Category, subject, body string,
	createdAt time.Time) (*Feedback, error) {

	if id == 0 {
		return nil, fmt.Errorf("feedback ID cannot be zero")
	}
	return &Feedback{
		id:        id,
		userID:    userID,
		category:  category,
		subject:   subject,
		body:      body,
		createdAt: createdAt,
	}, nil
}

func (f *Feedback) ID() uint {
	return f.id
}

func (f *Feedback) SetID(id uint) error {
	if f.id != 0 {
		return fmt.Errorf("feedback ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("feedback ID cannot be zero")
	}
	f.id = id
	return nil
}

func (f *Feedback) UserID() uint {
	return f.userID
}

func (f *Feedback) Category() Category {
	return f.category
}

func (f *Feedback) Subject() string {
	return f.subject
}

func (f *Feedback) Body() string {
	return f.body
}

func (f *Feedback) CreatedAt() time.Time {
	return f.createdAt
}
