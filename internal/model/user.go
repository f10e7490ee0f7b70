package model

import (
	"time"
)

type UserRole string

const (
	Student UserRole = "student"
	Admin   UserRole = "admin"
)

// swagger:model User
type User struct {
	BaseModel
	Nickname   string    `gorm:"size:100;unique;not null" json:"nickname"`
	Email      string    `gorm:"size:100;unique;not null" json:"email"`
	Password   string    `gorm:"size:100;not null" json:"-"`
	Role       UserRole  `gorm:"size:20;default:'student'" json:"role"`
	XP         int       `gorm:"default:0" json:"xp"`
	Level      int       `gorm:"default:1" json:"level"`
	Rank       string    `gorm:"size:20;default:'Iniciado'" json:"rank"`
	StreakDays int       `gorm:"default:0" json:"streakDays"`
	LastActive time.Time `json:"lastActive"`
	LastSeen   time.Time `json:"lastSeen"`
	Disabled   bool      `gorm:"default:false" json:"disabled"`
}

func (User) TableName() string {
	return "users"
}
