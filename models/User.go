package models

import (
	"gorm.io/gorm"
)

type User struct {
	gorm.Model
	Name     string  `json:"name"`
	Email    string  `json:"email" gorm:"uniqueIndex"`
	Password string  `json:"-"` // bcrypt hash, never serialized
	Places   []Place `json:"-" gorm:"foreignKey:OwnerID;references:ID"`
}
