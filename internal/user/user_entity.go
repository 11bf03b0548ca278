package user

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	RoleEmployee   = "EMPLOYEE"
	RoleManager    = "MANAGER"
	RoleMaintainer = "MAINTAINER"
)

type User struct {
	ID           uuid.UUID      `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()"`
	Name         string         `gorm:"column:name;type:varchar(120);not null"`
	Email        string         `gorm:"column:email;type:varchar(120);not null;uniqueIndex"`
	PasswordHash string         `gorm:"column:password_hash;type:varchar(100);not null"`
	Role         string         `gorm:"column:role;type:varchar(20);not null;default:EMPLOYEE"`
	IsActive     bool           `gorm:"column:is_active;not null;default:true"`
	CreatedAt    time.Time      `gorm:"column:created_at"`
	UpdatedAt    time.Time      `gorm:"column:updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"column:deleted_at;index"`
}

func (User) TableName() string {
	return "users"
}

// FirstName is what fits on the device display greeting.
func (u User) FirstName() string {
	for i := 0; i < len(u.Name); i++ {
		if u.Name[i] == ' ' {
			return u.Name[:i]
		}
	}
	if u.Name == "" {
		return "Usuario"
	}
	return u.Name
}

// AtLeastManager reports whether the role sits in the manager tier or above.
func AtLeastManager(role string) bool {
	return role == RoleManager || role == RoleMaintainer
}
