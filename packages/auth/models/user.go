package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"

	"gorm.io/gorm"
)

type Roles []string

// Value implements driver.Valuer for GORM
func (r Roles) Value() (driver.Value, error) {
	if len(r) == 0 {
		return json.Marshal([]string{"user"})
	}
	return json.Marshal(r)
}

// Scan implements sql.Scanner for GORM
func (r *Roles) Scan(value interface{}) error {
	if value == nil {
		*r = Roles{"user"}
		return nil
	}

	bytes, ok := value.([]byte)
	if !ok {
		if s, ok := value.(string); ok {
			bytes = []byte(s)
		} else {
			return errors.New("type assertion to []byte failed")
		}
	}

	return json.Unmarshal(bytes, &r)
}

type User struct {
	ID        uint           `json:"id" gorm:"primaryKey"`
	Email     string         `json:"email" gorm:"uniqueIndex;not null"`
	Username  string         `json:"username" gorm:"uniqueIndex"`
	Password  string         `json:"-" gorm:"not null"`
	Enabled   bool           `json:"enabled" gorm:"default:true"`
	Roles     Roles          `json:"roles" gorm:"type:jsonb;default:'[\"user\"]'"`
	LastLogin *time.Time     `json:"last_login"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`
}

func (User) TableName() string {
	return "users"
}

// HasRole checks whether the user has a specific role
func (u *User) HasRole(role string) bool {
	for _, r := range u.Roles {
		if r == role {
			return true
		}
	}
	return false
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type RegisterRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required,min=6"`
}

type AuthResponse struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" binding:"required"`
	NewPassword     string `json:"newPassword" binding:"required,min=6"`
}

type ChangePasswordResponse struct {
	Success bool `json:"success"`
}
