package models

import (
	"time"

	"gorm.io/gorm"
)

// Role is the organization-wide role of a user. It is orthogonal to group
// membership: sub-admins author messages for their groups, admins see
// everything.
type Role string

const (
	RoleUser            Role = "user"
	RoleSubAdmin        Role = "subAdmin"
	RoleUserAndSubAdmin Role = "userAndSubAdmin"
	RoleAdmin           Role = "admin"
)

func (r Role) Valid() bool {
	switch r {
	case RoleUser, RoleSubAdmin, RoleUserAndSubAdmin, RoleAdmin:
		return true
	}
	return false
}

type User struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Name           string  `gorm:"size:100;not null" json:"name"`
	Email          string  `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash   string  `gorm:"not null" json:"-"`
	Phone          string  `gorm:"size:20" json:"phone"`
	Department     string  `gorm:"size:100" json:"department"`
	EmployeeNumber string  `gorm:"size:40" json:"employee_number"`
	Avatar         string  `json:"avatar"`
	Role           Role    `gorm:"type:varchar(20);not null;default:user" json:"role"`
	Active         bool    `gorm:"not null;default:true" json:"active"`
	FCMToken       *string `json:"-"`

	Messages []Message `gorm:"foreignKey:CreatedByID" json:"-"`
}

type UserResponse struct {
	ID             uint   `json:"id"`
	Name           string `json:"name"`
	Email          string `json:"email"`
	Phone          string `json:"phone"`
	Department     string `json:"department"`
	EmployeeNumber string `json:"employee_number"`
	Avatar         string `json:"avatar"`
	Role           Role   `json:"role"`
	Active         bool   `json:"active"`
}

func (u *User) ToResponse() UserResponse {
	return UserResponse{
		ID:             u.ID,
		Name:           u.Name,
		Email:          u.Email,
		Phone:          u.Phone,
		Department:     u.Department,
		EmployeeNumber: u.EmployeeNumber,
		Avatar:         u.Avatar,
		Role:           u.Role,
		Active:         u.Active,
	}
}

// MemberEntry is the compact user shape embedded in read-status and member
// listings.
type MemberEntry struct {
	ID     uint   `json:"id"`
	Name   string `json:"name"`
	Avatar string `json:"avatar"`
	Email  string `json:"email"`
}

func (u *User) ToMemberEntry() MemberEntry {
	return MemberEntry{
		ID:     u.ID,
		Name:   u.Name,
		Avatar: u.Avatar,
		Email:  u.Email,
	}
}
