// Package user contains the user aggregate.
package user

import (
	"fmt"
	"strings"
	"time"

	"tavern/internal/shared/authorization"
)

type Status string

const (
	StatusActive   Status = "active"
	StatusInactive Status = "inactive"
)

// User represents a registered account. Plan and role feed the quota and
// feature gates through the auth context.
type User struct {
	id           uint
	email        string
	name         string
	passwordHash string
	role         authorization.UserRole
	plan         string
	status       Status
	createdAt    time.Time
	updatedAt    time.Time
}

func NewUser(email, name, passwordHash string) (*User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || !strings.Contains(email, "@") {
		return nil, fmt.Errorf("valid email is required")
	}
	if name == "" {
		return nil, fmt.Errorf("name is required")
	}
	if passwordHash == "" {
		return nil, fmt.Errorf("password hash is required")
	}

	now := time.Now()
	return &User{
		email:        email,
		name:         name,
		passwordHash: passwordHash,
		role:         authorization.RoleUser,
		plan:         "FREE",
		status:       StatusActive,
		createdAt:    now,
		updatedAt:    now,
	}, nil
}

// ReconstructUser reconstructs a user from persistence
func ReconstructUser(id uint, email, name, passwordHash, role, plan string,
	status Status, createdAt, updatedAt time.Time) (*User, error) {

	if id == 0 {
		return nil, fmt.Errorf("user ID cannot be zero")
	}
	return &User{
		id:           id,
		email:        email,
		name:         name,
		passwordHash: passwordHash,
		role:         authorization.ParseUserRole(role),
		plan:         plan,
		status:       status,
		createdAt:    createdAt,
		updatedAt:    updatedAt,
	}, nil
}

func (u *User) ID() uint {
	return u.id
}

func (u *User) SetID(id uint) error {
	if u.id != 0 {
		return fmt.Errorf("user ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("user ID cannot be zero")
	}
	u.id = id
	return nil
}

func (u *User) Email() string {
	return u.email
}

func (u *User) Name() string {
	return u.name
}

func (u *User) PasswordHash() string {
	return u.passwordHash
}

func (u *User) Role() authorization.UserRole {
	return u.role
}

func (u *User) Plan() string {
	return u.plan
}

func (u *User) Status() Status {
	return u.status
}

func (u *User) CreatedAt() time.Time {
	return u.createdAt
}

func (u *User) IsAdmin() bool {
	return u.role.IsAdmin()
}

func (u *User) IsActive() bool {
	return u.status == StatusActive
}

// ChangePlan records a new plan key on the user. The per-user enforcement
// limits are rewritten separately at the plan-change boundary.
func (u *User) ChangePlan(plan string) {
	u.plan = plan
	u.updatedAt = time.Now()
}

// Promote grants the admin role
func (u *User) Promote() {
	u.role = authorization.RoleAdmin
	u.updatedAt = time.Now()
}

// Deactivate disables the account
func (u *User) Deactivate() {
	u.status = StatusInactive
	u.updatedAt = time.Now()
}
