package domain

import (
	"time"

	"github.com/google/uuid"
)

type Role string

const (
	RoleClient   Role = "client"
	RoleOperator Role = "operator"
	RoleAdmin    Role = "admin"
)

func (r Role) Valid() bool {
	switch r {
	case RoleClient, RoleOperator, RoleAdmin:
		return true
	}
	return false
}

// Profile is the application-level user record. UserID references the identity provider account.
type Profile struct {
	ID          uuid.UUID
	UserID      uuid.UUID
	FullName    string
	Phone       *string
	Email       *string
	Role        Role
	Rating      float64
	ReviewCount int
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Session is the authenticated caller of a request.
type Session struct {
	UserID uuid.UUID
	Email  string
}
