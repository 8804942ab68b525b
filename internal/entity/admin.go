package entity

import (
	"time"

	"github.com/gofrs/uuid/v5"
)

type AdminRole = string

const (
	AdminRoleAdmin AdminRole = "admin"
)

type Admin struct {
	ID           uuid.UUID
	Name         string
	Email        string
	PasswordHash string
	Role         AdminRole
	IsActive     bool
	LastLogin    *time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
