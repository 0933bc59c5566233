package models

import (
	"time"

	"github.com/lib/pq"
	"gorm.io/datatypes"
)

type UserRole string

const (
	RoleUser   UserRole = "user"
	RoleAdmin  UserRole = "admin"
	RoleViewer UserRole = "viewer"
)

type User struct {
	ID           string `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	Name         string `gorm:"column:name;type:text" json:"name"`
	Email        string `gorm:"column:email;type:text;uniqueIndex" json:"email"`
	PasswordHash string `gorm:"column:password_hash;type:text" json:"-"`
	Phone        string `gorm:"column:phone;type:text" json:"phone"`
	Address      string `gorm:"column:address;type:text" json:"address"`

	WorkTypes pq.StringArray `gorm:"column:work_types;type:text[]" json:"work_types"`

	// Free-form app preferences (preferred language etc.)
	Preferences datatypes.JSON `gorm:"column:preferences;type:jsonb" json:"preferences"`

	Role      UserRole  `gorm:"column:role;type:text" json:"role"`
	CreatedAt time.Time `gorm:"column:created_at;type:timestamptz" json:"created_at"`
}

func (User) TableName() string { return "users" }
