package models

import (
	"time"

	"github.com/google/uuid"
)

// Role - роль пользователя в системе
type Role string

const (
	RoleCitizen Role = "CITIZEN"
	RolePolice  Role = "POLICE"
	RoleNGO     Role = "NGO"
	RoleWatch   Role = "WATCH"
)

// Valid проверяет, что роль входит в перечисление
func (r Role) Valid() bool {
	switch r {
	case RoleCitizen, RolePolice, RoleNGO, RoleWatch:
		return true
	}
	return false
}

type User struct {
	ID           uuid.UUID `json:"id"`
	FullName     string    `json:"full_name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Phone        string    `json:"phone,omitempty"`
	Role         Role      `json:"role"`
	Active       bool      `json:"active"`
	PushToken    *string   `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// HasPushToken сообщает, зарегистрирован ли у пользователя токен push-уведомлений
func (u *User) HasPushToken() bool {
	return u.PushToken != nil && *u.PushToken != ""
}
